package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/gestao-profissionais/internal/domain"
)

const codeUniqueViolation = "23505"

// uniqueViolationErr traduz 23505 para o erro de domínio da constraint violada.
// Devolve nil se err não for violação de unicidade.
func uniqueViolationErr(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != codeUniqueViolation {
		return nil
	}
	switch pgErr.ConstraintName {
	case "usuarios_cpf_key":
		return domain.ErrCPFAlreadyExists
	case "usuarios_email_key":
		return domain.ErrEmailAlreadyExists
	default:
		return domain.ErrConflict
	}
}

// escapeLike protege %, _ e \ em padrões LIKE.
func escapeLike(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if r == '%' || r == '_' || r == '\\' {
			out = append(out, '\\')
		}
		out = append(out, r)
	}
	return string(out)
}
