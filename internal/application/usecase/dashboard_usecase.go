package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/gestao-profissionais/internal/application/dto"
	"github.com/jhoicas/gestao-profissionais/internal/domain/entity"
	"github.com/jhoicas/gestao-profissionais/internal/domain/repository"
	"github.com/jhoicas/gestao-profissionais/pkg/access"
)

// Summary monta o resumo do painel no escopo do ator: totais por status e por cargo.
//
// Uma contagem por status e uma por cargo, em paralelo. Cada consulta usa
// Limit 1: só o total interessa.
func (uc *ProfessionalUseCase) Summary(ctx context.Context, actor dto.Actor) (*dto.DashboardSummary, error) {
	base, err := uc.filter(actor, dto.ProfessionalListRequest{})
	if err != nil {
		return nil, err
	}

	type countResult struct {
		key   string
		total int
		err   error
	}
	count := func(key string, f repository.UserFilter, out chan<- countResult) {
		f.Limit = 1
		_, total, err := uc.repo.List(ctx, f)
		out <- countResult{key: key, total: total, err: err}
	}

	roles := access.Roles()
	results := make(chan countResult, len(roles)+2)
	for _, status := range []string{entity.StatusActive, entity.StatusInactive} {
		f := base
		f.Status = status
		go count("status:"+status, f, results)
	}
	for _, role := range roles {
		f := base
		f.Role = string(role)
		go count(string(role), f, results)
	}

	summary := &dto.DashboardSummary{
		Scope:     ScopeAllRegions,
		ByRole:    make(map[string]int, len(roles)),
		DateLabel: monthLabel(uc.now()),
	}
	if !actor.Permissions.ViewAllRegions {
		summary.Scope = actor.Region
	}
	var firstErr error
	for i := 0; i < cap(results); i++ {
		r := <-results
		if r.err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("dashboard: contagem %s: %w", r.key, r.err)
			}
			continue
		}
		switch r.key {
		case "status:" + entity.StatusActive:
			summary.Active = r.total
		case "status:" + entity.StatusInactive:
			summary.Inactive = r.total
		default:
			summary.ByRole[r.key] = r.total
		}
	}
	if firstErr != nil {
		return nil, firstErr
	}
	summary.Total = summary.Active + summary.Inactive
	return summary, nil
}

var monthNames = [...]string{
	"Janeiro", "Fevereiro", "Março", "Abril", "Maio", "Junho",
	"Julho", "Agosto", "Setembro", "Outubro", "Novembro", "Dezembro",
}

// monthLabel devolve o mês legível, ex.: "Outubro 2026".
func monthLabel(t time.Time) string {
	return fmt.Sprintf("%s %d", monthNames[t.Month()-1], t.Year())
}
