package repository

import (
	"context"
	"time"

	"github.com/jhoicas/gestao-profissionais/internal/domain/entity"
)

// UserFilter critérios de listagem de profissionais.
// Search já deve vir normalizado (mask.Normalize) e casa com nome, e-mail ou CPF.
type UserFilter struct {
	Search string
	Role   string
	Status string
	Region string
	Limit  int
	Offset int
}

// UserRepository define a porta de persistência para User.
// Os Get* devolvem (nil, nil) quando o registro não existe.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByCPF(ctx context.Context, cpf string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	UpdatePassword(ctx context.Context, id int64, hash string, firstAccess, provisional bool, at time.Time) error
	UpdateStatus(ctx context.Context, id int64, status string, at time.Time) error
	TouchLogin(ctx context.Context, id int64, at time.Time) error
	List(ctx context.Context, f UserFilter) ([]*entity.User, int, error)
	Delete(ctx context.Context, id int64) error
}
