package usecase

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/gestao-profissionais/internal/application/auth"
	"github.com/jhoicas/gestao-profissionais/internal/application/dto"
	"github.com/jhoicas/gestao-profissionais/internal/domain"
	"github.com/jhoicas/gestao-profissionais/internal/domain/entity"
	"github.com/jhoicas/gestao-profissionais/internal/domain/repository"
	"github.com/jhoicas/gestao-profissionais/pkg/access"
	"github.com/jhoicas/gestao-profissionais/pkg/form"
	"github.com/jhoicas/gestao-profissionais/pkg/mask"
)

// UserUseCase cadastro e edição de usuários.
type UserUseCase struct {
	repo repository.UserRepository
	tx   TxRunner
	log  zerolog.Logger
	now  func() time.Time
}

// NewUserUseCase constrói o caso de uso com a porta de persistência.
func NewUserUseCase(repo repository.UserRepository, log zerolog.Logger) *UserUseCase {
	return &UserUseCase{repo: repo, log: log, now: time.Now}
}

// WithTxRunner faz a checagem de unicidade e a gravação rodarem na mesma transação.
func (uc *UserUseCase) WithTxRunner(tx TxRunner) *UserUseCase {
	uc.tx = tx
	return uc
}

// inTx executa fn na transação, ou direto no repositório quando não há runner.
func (uc *UserUseCase) inTx(ctx context.Context, fn func(repository.UserRepository) error) error {
	if uc.tx == nil {
		return fn(uc.repo)
	}
	return uc.tx.RunUsers(ctx, fn)
}

// Create cadastra um profissional. O cadastrado entra com primeiro acesso
// pendente: a senha foi escolhida por quem cadastrou.
func (uc *UserUseCase) Create(ctx context.Context, actor dto.Actor, in form.Registration) (*dto.UserResponse, error) {
	in = in.Normalized()
	if err := domain.NewValidationError(in.Validate()); err != nil {
		return nil, err
	}
	if !access.CanAssignRole(actor.Permissions, access.Role(in.Role)) || !actor.InScope(in.Region) {
		return nil, domain.ErrForbidden
	}
	createdBy := actor.UserID
	user, err := uc.insert(ctx, in, &createdBy)
	if err != nil {
		return nil, err
	}
	uc.log.Info().Int64("user_id", user.ID).Int64("por", actor.UserID).Str("cargo", user.Role).Msg("usuário cadastrado")
	resp := dto.ToUserResponse(user)
	return &resp, nil
}

// CreateAdmin cadastra um Administrador sem ator (instalação inicial e CLI).
// Administrador não tem lotação: só os dados pessoais e a senha são exigidos.
func (uc *UserUseCase) CreateAdmin(ctx context.Context, in form.Registration) (*dto.UserResponse, error) {
	in.Role = string(access.RoleAdministrador)
	in = in.Normalized()
	fields := in.ValidateStep(form.StepPersonal)
	for k, v := range in.ValidateStep(form.StepPassword) {
		fields[k] = v
	}
	if err := domain.NewValidationError(fields); err != nil {
		return nil, err
	}
	user, err := uc.insert(ctx, in, nil)
	if err != nil {
		return nil, err
	}
	uc.log.Info().Int64("user_id", user.ID).Msg("administrador cadastrado")
	resp := dto.ToUserResponse(user)
	return &resp, nil
}

func (uc *UserUseCase) insert(ctx context.Context, in form.Registration, createdBy *int64) (*entity.User, error) {
	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	user := &entity.User{
		Name:           in.Name,
		NormalizedName: mask.Normalize(in.Name),
		Email:          in.Email,
		CPF:            in.CPF,
		Phone:          in.Phone,
		Role:           in.Role,
		PasswordHash:   hash,
		Status:         entity.StatusActive,
		FirstAccess:    true,
		Region:         in.Region,
		City:           in.City,
		CEP:            in.CEP,
		Specialty:      in.Specialty,
		CreatedBy:      createdBy,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	err = uc.inTx(ctx, func(repo repository.UserRepository) error {
		if err := checkUnique(ctx, repo, 0, in.CPF, in.Email); err != nil {
			return err
		}
		return repo.Create(ctx, user)
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Update edita os dados cadastrais. Exige alcance sobre o cargo atual e o novo.
func (uc *UserUseCase) Update(ctx context.Context, actor dto.Actor, id int64, in form.Edit) (*dto.UserResponse, error) {
	in = in.Normalized()
	if err := domain.NewValidationError(in.Validate()); err != nil {
		return nil, err
	}
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if id != actor.UserID {
		if !actor.InScope(user.Region) || !access.CanAssignRole(actor.Permissions, access.Role(user.Role)) {
			return nil, domain.ErrForbidden
		}
	}
	if in.Role != user.Role && !access.CanAssignRole(actor.Permissions, access.Role(in.Role)) {
		return nil, domain.ErrForbidden
	}
	if in.Region != user.Region && !actor.InScope(in.Region) {
		return nil, domain.ErrForbidden
	}

	user.Name = in.Name
	user.NormalizedName = mask.Normalize(in.Name)
	user.Email = in.Email
	user.Phone = in.Phone
	user.CEP = in.CEP
	user.City = in.City
	user.Region = in.Region
	user.Role = in.Role
	user.Specialty = in.Specialty
	user.UpdatedAt = uc.now()
	err = uc.inTx(ctx, func(repo repository.UserRepository) error {
		if err := checkUnique(ctx, repo, id, "", in.Email); err != nil {
			return err
		}
		return repo.Update(ctx, user)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Int64("user_id", id).Int64("por", actor.UserID).Msg("usuário atualizado")
	resp := dto.ToUserResponse(user)
	return &resp, nil
}

// checkUnique antecipa o conflito de CPF/e-mail com erro por campo.
// A constraint do banco continua sendo a garantia final.
func checkUnique(ctx context.Context, repo repository.UserRepository, selfID int64, cpf, email string) error {
	fields := map[string]string{}
	if cpf != "" {
		u, err := repo.GetByCPF(ctx, cpf)
		if err != nil {
			return err
		}
		if u != nil && u.ID != selfID {
			fields[form.FieldCPF] = domain.ErrCPFAlreadyExists.Error()
		}
	}
	if email != "" {
		u, err := repo.GetByEmail(ctx, email)
		if err != nil {
			return err
		}
		if u != nil && u.ID != selfID {
			fields[form.FieldEmail] = domain.ErrEmailAlreadyExists.Error()
		}
	}
	return domain.NewValidationError(fields)
}
