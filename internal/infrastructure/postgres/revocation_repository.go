package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/gestao-profissionais/internal/domain/repository"
)

var _ repository.TokenRevocationStore = (*RevocationRepo)(nil)

// RevocationRepo guarda jti revogados na tabela tokens_revogados.
type RevocationRepo struct {
	q Querier
}

// NewRevocationRepository constrói o adaptador.
func NewRevocationRepository(q Querier) *RevocationRepo {
	return &RevocationRepo{q: q}
}

// Revoke insere (ou estende) a revogação do jti.
func (r *RevocationRepo) Revoke(ctx context.Context, jti string, until time.Time) error {
	query := `
		INSERT INTO tokens_revogados (jti, expira_em) VALUES ($1, $2)
		ON CONFLICT (jti) DO UPDATE SET expira_em = GREATEST(tokens_revogados.expira_em, EXCLUDED.expira_em)`
	if _, err := r.q.Exec(ctx, query, jti, until); err != nil {
		return fmt.Errorf("revogar token: %w", err)
	}
	return nil
}

// IsRevoked consulta se o jti está revogado e ainda vigente.
func (r *RevocationRepo) IsRevoked(ctx context.Context, jti string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM tokens_revogados WHERE jti = $1 AND expira_em > NOW())`, jti,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("consultar revogação: %w", err)
	}
	return exists, nil
}

// Purge apaga as revogações vencidas.
func (r *RevocationRepo) Purge(ctx context.Context, now time.Time) (int, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM tokens_revogados WHERE expira_em <= $1`, now)
	if err != nil {
		return 0, fmt.Errorf("purgar revogações: %w", err)
	}
	return int(tag.RowsAffected()), nil
}
