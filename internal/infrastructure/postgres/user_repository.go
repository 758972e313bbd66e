package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/gestao-profissionais/internal/domain"
	"github.com/jhoicas/gestao-profissionais/internal/domain/entity"
	"github.com/jhoicas/gestao-profissionais/internal/domain/repository"
	"github.com/jhoicas/gestao-profissionais/pkg/mask"
)

var _ repository.UserRepository = (*UserRepo)(nil)

const userColumns = `id, nome_completo, nome_busca, email, cpf, telefone, cargo, senha_hash, status,
	primeiro_acesso, senha_provisoria, regiao, municipio, cep, especialidade, criado_por,
	ultimo_login_em, created_at, updated_at`

// UserRepo implementação de UserRepository sobre PostgreSQL (pool ou tx).
type UserRepo struct {
	q Querier
}

// NewUserRepository constrói o adaptador de persistência para usuários.
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

// Create persiste um novo usuário e preenche ID e timestamps.
func (r *UserRepo) Create(ctx context.Context, u *entity.User) error {
	query := `
		INSERT INTO usuarios (nome_completo, nome_busca, email, cpf, telefone, cargo, senha_hash, status,
			primeiro_acesso, senha_provisoria, regiao, municipio, cep, especialidade, criado_por,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		RETURNING id`
	if u.NormalizedName == "" {
		u.NormalizedName = mask.Normalize(u.Name)
	}
	err := r.q.QueryRow(ctx, query,
		u.Name, u.NormalizedName, u.Email, u.CPF, u.Phone, u.Role, u.PasswordHash, u.Status,
		u.FirstAccess, u.ProvisionalPassword, u.Region, u.City, u.CEP, u.Specialty, u.CreatedBy,
		u.CreatedAt, u.UpdatedAt,
	).Scan(&u.ID)
	if err != nil {
		if derr := uniqueViolationErr(err); derr != nil {
			return derr
		}
		return fmt.Errorf("insert usuario: %w", err)
	}
	return nil
}

// GetByID obtém um usuário pelo ID.
func (r *UserRepo) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	return r.getOne(ctx, "id = $1", id)
}

// GetByEmail obtém um usuário pelo e-mail (sem diferenciar maiúsculas).
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.getOne(ctx, "lower(email) = lower($1)", strings.TrimSpace(email))
}

// GetByCPF obtém um usuário pelo CPF (com ou sem máscara).
func (r *UserRepo) GetByCPF(ctx context.Context, cpf string) (*entity.User, error) {
	return r.getOne(ctx, "cpf = $1", mask.OnlyDigits(cpf))
}

func (r *UserRepo) getOne(ctx context.Context, where string, arg any) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM usuarios WHERE ` + where
	u, err := scanUser(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get usuario: %w", err)
	}
	return u, nil
}

// Update regrava os dados cadastrais. Senha, status e flags têm métodos próprios.
func (r *UserRepo) Update(ctx context.Context, u *entity.User) error {
	query := `
		UPDATE usuarios SET nome_completo = $2, nome_busca = $3, email = $4, cpf = $5, telefone = $6,
			cargo = $7, regiao = $8, municipio = $9, cep = $10, especialidade = $11, updated_at = $12
		WHERE id = $1`
	u.NormalizedName = mask.Normalize(u.Name)
	tag, err := r.q.Exec(ctx, query,
		u.ID, u.Name, u.NormalizedName, u.Email, u.CPF, u.Phone,
		u.Role, u.Region, u.City, u.CEP, u.Specialty, u.UpdatedAt,
	)
	if err != nil {
		if derr := uniqueViolationErr(err); derr != nil {
			return derr
		}
		return fmt.Errorf("update usuario: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// UpdatePassword troca o hash e as flags de primeiro acesso/senha provisória.
func (r *UserRepo) UpdatePassword(ctx context.Context, id int64, hash string, firstAccess, provisional bool, at time.Time) error {
	query := `
		UPDATE usuarios SET senha_hash = $2, primeiro_acesso = $3, senha_provisoria = $4, updated_at = $5
		WHERE id = $1`
	return r.execOne(ctx, "update senha", query, id, hash, firstAccess, provisional, at)
}

// UpdateStatus ativa ou inativa o usuário.
func (r *UserRepo) UpdateStatus(ctx context.Context, id int64, status string, at time.Time) error {
	return r.execOne(ctx, "update status",
		`UPDATE usuarios SET status = $2, updated_at = $3 WHERE id = $1`, id, status, at)
}

// TouchLogin registra o último login.
func (r *UserRepo) TouchLogin(ctx context.Context, id int64, at time.Time) error {
	return r.execOne(ctx, "update ultimo login",
		`UPDATE usuarios SET ultimo_login_em = $2 WHERE id = $1`, id, at)
}

// Delete remove o usuário.
func (r *UserRepo) Delete(ctx context.Context, id int64) error {
	return r.execOne(ctx, "delete usuario", `DELETE FROM usuarios WHERE id = $1`, id)
}

func (r *UserRepo) execOne(ctx context.Context, op, query string, args ...any) error {
	tag, err := r.q.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// List aplica os filtros e devolve a página pedida mais o total sem paginação.
// Limit <= 0 devolve todos os registros (usado na exportação).
func (r *UserRepo) List(ctx context.Context, f repository.UserFilter) ([]*entity.User, int, error) {
	where, args := buildUserWhere(f)

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM usuarios`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count usuarios: %w", err)
	}

	query := `SELECT ` + userColumns + ` FROM usuarios` + where + ` ORDER BY nome_busca, id`
	if f.Limit > 0 {
		args = append(args, f.Limit, f.Offset)
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))
	}
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list usuarios: %w", err)
	}
	defer rows.Close()

	list := make([]*entity.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan usuario: %w", err)
		}
		list = append(list, u)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list usuarios: %w", err)
	}
	return list, total, nil
}

func buildUserWhere(f repository.UserFilter) (string, []any) {
	var conds []string
	var args []any
	add := func(cond string, v any) {
		args = append(args, v)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		args = append(args, "%"+escapeLike(s)+"%")
		n := len(args)
		c := fmt.Sprintf("(nome_busca LIKE $%d OR lower(email) LIKE $%d", n, n)
		if d := mask.OnlyDigits(s); d != "" {
			args = append(args, "%"+d+"%")
			c += fmt.Sprintf(" OR cpf LIKE $%d", len(args))
		}
		conds = append(conds, c+")")
	}
	if f.Role != "" {
		add("cargo = $%d", f.Role)
	}
	if f.Status != "" {
		add("status = $%d", f.Status)
	}
	if f.Region != "" {
		add("regiao = $%d", f.Region)
	}
	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func scanUser(row pgx.Row) (*entity.User, error) {
	var u entity.User
	err := row.Scan(
		&u.ID, &u.Name, &u.NormalizedName, &u.Email, &u.CPF, &u.Phone, &u.Role, &u.PasswordHash, &u.Status,
		&u.FirstAccess, &u.ProvisionalPassword, &u.Region, &u.City, &u.CEP, &u.Specialty, &u.CreatedBy,
		&u.LastLoginAt, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}
