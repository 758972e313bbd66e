package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/gestao-profissionais/internal/application/dto"
	"github.com/jhoicas/gestao-profissionais/internal/domain"
	"github.com/jhoicas/gestao-profissionais/internal/domain/entity"
	"github.com/jhoicas/gestao-profissionais/internal/domain/repository"
	"github.com/jhoicas/gestao-profissionais/pkg/access"
	"github.com/jhoicas/gestao-profissionais/pkg/mask"
)

// ScopeAllRegions rótulo do escopo de quem vê todas as regiões.
const ScopeAllRegions = "Todas as regiões"

// ProfessionalUseCase consulta, status, exclusão e exportação de profissionais.
// Quem não tem ViewAllRegions só alcança a própria região.
type ProfessionalUseCase struct {
	repo       repository.UserRepository
	generators map[ExportFormat]ReportGenerator
	log        zerolog.Logger
	now        func() time.Time
}

// NewProfessionalUseCase registra os geradores de exportação disponíveis.
func NewProfessionalUseCase(repo repository.UserRepository, log zerolog.Logger, generators ...ReportGenerator) *ProfessionalUseCase {
	m := make(map[ExportFormat]ReportGenerator, len(generators))
	for _, g := range generators {
		m[g.Format()] = g
	}
	return &ProfessionalUseCase{repo: repo, generators: m, log: log, now: time.Now}
}

// List aplica filtros, escopo regional e paginação.
func (uc *ProfessionalUseCase) List(ctx context.Context, actor dto.Actor, in dto.ProfessionalListRequest) (*dto.ProfessionalPage, error) {
	in.DefaultPage()
	f, err := uc.filter(actor, in)
	if err != nil {
		return nil, err
	}
	f.Limit = in.PerPage
	f.Offset = in.Offset()

	users, total, err := uc.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	items := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		items = append(items, dto.ToUserResponse(u))
	}
	return &dto.ProfessionalPage{
		Items:      items,
		Page:       in.Page,
		PerPage:    in.PerPage,
		Total:      total,
		TotalPages: dto.TotalPages(total, in.PerPage),
	}, nil
}

func (uc *ProfessionalUseCase) filter(actor dto.Actor, in dto.ProfessionalListRequest) (repository.UserFilter, error) {
	f := repository.UserFilter{
		Search: mask.Normalize(in.Search),
		Status: strings.ToLower(strings.TrimSpace(in.Status)),
		Region: strings.TrimSpace(in.Region),
	}
	fields := map[string]string{}
	if in.Role != "" {
		role, ok := access.ParseRole(in.Role)
		if !ok {
			fields["cargo"] = "Cargo inválido"
		}
		f.Role = string(role)
	}
	if f.Status != "" && !entity.ValidStatus(f.Status) {
		fields["status"] = "Status inválido"
	}
	if err := domain.NewValidationError(fields); err != nil {
		return f, err
	}
	if !actor.Permissions.ViewAllRegions {
		if actor.Region == "" || (f.Region != "" && f.Region != actor.Region) {
			return f, domain.ErrForbidden
		}
		f.Region = actor.Region
	}
	return f, nil
}

// Get devolve um profissional no escopo do ator.
func (uc *ProfessionalUseCase) Get(ctx context.Context, actor dto.Actor, id int64) (*dto.UserResponse, error) {
	u, err := uc.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	resp := dto.ToUserResponse(u)
	return &resp, nil
}

// load busca e aplica o escopo regional; fora do escopo responde como inexistente.
func (uc *ProfessionalUseCase) load(ctx context.Context, actor dto.Actor, id int64) (*entity.User, error) {
	u, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil || (u.ID != actor.UserID && !actor.InScope(u.Region)) {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

// UpdateStatus ativa ou inativa. Ninguém altera o próprio status.
func (uc *ProfessionalUseCase) UpdateStatus(ctx context.Context, actor dto.Actor, id int64, status string) (*dto.UserResponse, error) {
	status = strings.ToLower(strings.TrimSpace(status))
	if !entity.ValidStatus(status) {
		return nil, domain.NewValidationError(map[string]string{"status": "Status inválido"})
	}
	if id == actor.UserID {
		return nil, domain.ErrSelfAction
	}
	u, err := uc.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if !access.CanAssignRole(actor.Permissions, access.Role(u.Role)) {
		return nil, domain.ErrForbidden
	}
	now := uc.now()
	if err := uc.repo.UpdateStatus(ctx, id, status, now); err != nil {
		return nil, err
	}
	u.Status = status
	u.UpdatedAt = now
	uc.log.Info().Int64("user_id", id).Int64("por", actor.UserID).Str("status", status).Msg("status alterado")
	resp := dto.ToUserResponse(u)
	return &resp, nil
}

// Delete remove o profissional. Ninguém exclui a si mesmo.
func (uc *ProfessionalUseCase) Delete(ctx context.Context, actor dto.Actor, id int64) error {
	if id == actor.UserID {
		return domain.ErrSelfAction
	}
	u, err := uc.load(ctx, actor, id)
	if err != nil {
		return err
	}
	if !access.CanAssignRole(actor.Permissions, access.Role(u.Role)) {
		return domain.ErrForbidden
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.log.Info().Int64("user_id", id).Int64("por", actor.UserID).Msg("usuário excluído")
	return nil
}

// Export gera o arquivo com todos os registros que a listagem mostraria (sem paginação).
func (uc *ProfessionalUseCase) Export(ctx context.Context, actor dto.Actor, format string, in dto.ProfessionalListRequest) (*dto.ExportFile, error) {
	ef := ExportFormat(strings.ToLower(strings.TrimSpace(format)))
	if ef == "" {
		ef = ExportCSV
	}
	gen, ok := uc.generators[ef]
	if !ok {
		return nil, domain.NewValidationError(map[string]string{"formato": "Formato inválido: use csv ou pdf"})
	}
	f, err := uc.filter(actor, in)
	if err != nil {
		return nil, err
	}
	users, _, err := uc.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	scope := ScopeAllRegions
	if f.Region != "" {
		scope = f.Region
	}
	body, err := gen.Generate(ctx, &ProfessionalReport{
		GeneratedAt:   now,
		Scope:         scope,
		Filters:       describeFilter(in),
		Professionals: users,
	})
	if err != nil {
		return nil, fmt.Errorf("exportar %s: %w", ef, err)
	}
	uc.log.Info().Int64("por", actor.UserID).Str("formato", string(ef)).Int("registros", len(users)).Msg("exportação")
	return &dto.ExportFile{
		Name:        fmt.Sprintf("profissionais-%s.%s", now.Format("20060102-1504"), ef),
		ContentType: gen.ContentType(),
		Body:        body,
	}, nil
}

func describeFilter(in dto.ProfessionalListRequest) string {
	var parts []string
	if s := strings.TrimSpace(in.Search); s != "" {
		parts = append(parts, "busca: "+s)
	}
	if in.Role != "" {
		parts = append(parts, "cargo: "+in.Role)
	}
	if in.Status != "" {
		parts = append(parts, "status: "+in.Status)
	}
	if in.Region != "" {
		parts = append(parts, "região: "+in.Region)
	}
	if len(parts) == 0 {
		return "sem filtros"
	}
	return strings.Join(parts, "; ")
}
