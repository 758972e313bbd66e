package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/gestao-profissionais/internal/application/dto"
	"github.com/jhoicas/gestao-profissionais/internal/domain"
	"github.com/jhoicas/gestao-profissionais/internal/domain/entity"
	"github.com/jhoicas/gestao-profissionais/internal/domain/repository"
	"github.com/jhoicas/gestao-profissionais/pkg/access"
	"github.com/jhoicas/gestao-profissionais/pkg/jwt"
	"github.com/jhoicas/gestao-profissionais/pkg/mask"
	"github.com/jhoicas/gestao-profissionais/pkg/password"
)

// JWTConfig configuração para geração de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// Campo usado nos erros de validação da troca de senha.
const (
	FieldNewPassword = "nova_senha"
	FieldConfirm     = "confirmacao_senha"
)

// AuthUseCase casos de uso de autenticação: login, logout, troca e redefinição de senha.
type AuthUseCase struct {
	users   repository.UserRepository
	revoked repository.TokenRevocationStore
	jwtCfg  JWTConfig
	log     zerolog.Logger
	now     func() time.Time
}

// NewAuthUseCase constrói o caso de uso de auth.
func NewAuthUseCase(users repository.UserRepository, revoked repository.TokenRevocationStore, jwtCfg JWTConfig, log zerolog.Logger) *AuthUseCase {
	return &AuthUseCase{users: users, revoked: revoked, jwtCfg: jwtCfg, log: log, now: time.Now}
}

// HashPassword gera o hash bcrypt da senha.
func HashPassword(pw string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash senha: %w", err)
	}
	return string(hash), nil
}

// Login aceita CPF ou e-mail. Usuário inexistente e senha errada dão o mesmo erro.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	ident := strings.TrimSpace(in.Identifier)
	if ident == "" || in.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	var user *entity.User
	var err error
	if strings.Contains(ident, "@") {
		user, err = uc.users.GetByEmail(ctx, ident)
	} else {
		user, err = uc.users.GetByCPF(ctx, mask.OnlyDigits(ident))
	}
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	if !user.IsActive() {
		return nil, domain.ErrInactiveUser
	}

	tok, err := uc.issue(user)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	if err := uc.users.TouchLogin(ctx, user.ID, now); err != nil {
		uc.log.Warn().Err(err).Int64("user_id", user.ID).Msg("falha ao registrar último login")
	} else {
		user.LastLoginAt = &now
	}
	uc.log.Info().Int64("user_id", user.ID).Str("cargo", user.Role).Msg("login")

	return &dto.LoginResponse{
		Token:       tok.Value,
		ExpiresAt:   tok.ExpiresAt,
		User:        dto.ToUserResponse(user),
		Permissions: user.Permissions(),
	}, nil
}

// Logout revoga o token até a sua expiração.
func (uc *AuthUseCase) Logout(ctx context.Context, tokenID string, expiresAt time.Time) error {
	if tokenID == "" {
		return nil
	}
	if err := uc.revoked.Revoke(ctx, tokenID, expiresAt); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

// VerifyToken valida assinatura, expiração e revogação, e confere o usuário no
// repositório: removido ou inativo não autentica. Cargo, região e troca de
// senha vêm do cadastro atual, não dos claims emitidos no login.
func (uc *AuthUseCase) VerifyToken(ctx context.Context, token string) (*jwt.Claims, error) {
	claims, err := jwt.Parse(uc.jwtCfg.Secret, token)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}
	if claims.ID != "" {
		revoked, err := uc.revoked.IsRevoked(ctx, claims.ID)
		if err != nil {
			return nil, err
		}
		if revoked {
			return nil, domain.ErrUnauthorized
		}
	}
	user, err := uc.users.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.IsActive() {
		return nil, domain.ErrUnauthorized
	}
	claims.Role = user.Role
	claims.Region = user.Region
	claims.MustChangePassword = user.MustChangePassword()
	return claims, nil
}

// ChangePassword troca a senha do próprio usuário, limpa as flags de primeiro acesso
// e senha provisória e emite um token novo. O token anterior é revogado.
func (uc *AuthUseCase) ChangePassword(ctx context.Context, actor dto.Actor, oldTokenExp time.Time, in dto.ChangePasswordRequest) (*dto.ChangePasswordResponse, error) {
	user, err := uc.users.GetByID(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}

	fields := map[string]string{}
	if in.NewPassword == "" {
		fields[FieldNewPassword] = "Senha é obrigatória"
	} else if v := password.Validate(in.NewPassword, password.WithCPF(user.CPF)); len(v) > 0 {
		fields[FieldNewPassword] = v[0]
	}
	if in.Confirm != in.NewPassword {
		fields[FieldConfirm] = "As senhas não conferem"
	}
	if err := domain.NewValidationError(fields); err != nil {
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.NewPassword)) == nil {
		return nil, domain.NewValidationError(map[string]string{FieldNewPassword: domain.ErrSamePassword.Error()})
	}

	hash, err := HashPassword(in.NewPassword)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	if err := uc.users.UpdatePassword(ctx, user.ID, hash, false, false, now); err != nil {
		return nil, err
	}
	user.PasswordHash = hash
	user.FirstAccess = false
	user.ProvisionalPassword = false
	user.UpdatedAt = now

	if actor.TokenID != "" {
		if err := uc.revoked.Revoke(ctx, actor.TokenID, oldTokenExp); err != nil {
			uc.log.Warn().Err(err).Int64("user_id", user.ID).Msg("falha ao revogar token anterior")
		}
	}
	tok, err := uc.issue(user)
	if err != nil {
		return nil, err
	}
	uc.log.Info().Int64("user_id", user.ID).Msg("senha alterada")

	return &dto.ChangePasswordResponse{Token: tok.Value, ExpiresAt: tok.ExpiresAt, User: dto.ToUserResponse(user)}, nil
}

// ResetPassword emite uma senha provisória para outro usuário. A senha volta
// em claro uma única vez; o usuário fica obrigado a trocá-la no próximo login.
func (uc *AuthUseCase) ResetPassword(ctx context.Context, actor dto.Actor, targetID int64) (*dto.ResetPasswordResponse, error) {
	if !actor.Permissions.ResetPasswords {
		return nil, domain.ErrForbidden
	}
	if targetID == actor.UserID {
		return nil, domain.ErrSelfAction
	}
	target, err := uc.users.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if target == nil || !actor.InScope(target.Region) {
		return nil, domain.ErrUserNotFound
	}
	if !access.CanAssignRole(actor.Permissions, access.Role(target.Role)) {
		return nil, domain.ErrForbidden
	}

	provisional, err := password.GenerateProvisional()
	if err != nil {
		return nil, err
	}
	hash, err := HashPassword(provisional)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	if err := uc.users.UpdatePassword(ctx, target.ID, hash, true, true, now); err != nil {
		return nil, err
	}
	target.FirstAccess = true
	target.ProvisionalPassword = true
	target.UpdatedAt = now
	uc.log.Info().Int64("user_id", target.ID).Int64("por", actor.UserID).Msg("senha redefinida")

	return &dto.ResetPasswordResponse{ProvisionalPassword: provisional, User: dto.ToUserResponse(target)}, nil
}

// Me devolve o usuário do token com as permissões atuais.
func (uc *AuthUseCase) Me(ctx context.Context, userID int64) (*dto.MeResponse, error) {
	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if !user.IsActive() {
		return nil, domain.ErrInactiveUser
	}
	return &dto.MeResponse{User: dto.ToUserResponse(user), Permissions: user.Permissions()}, nil
}

func (uc *AuthUseCase) issue(u *entity.User) (*jwt.Token, error) {
	tok, err := jwt.Generate(uc.jwtCfg.Secret, jwt.Subject{
		UserID:             u.ID,
		Role:               u.Role,
		Region:             u.Region,
		MustChangePassword: u.MustChangePassword(),
	}, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, fmt.Errorf("emitir token: %w", err)
	}
	return tok, nil
}
