package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jhoicas/gestao-profissionais/internal/domain"
	"github.com/jhoicas/gestao-profissionais/internal/domain/entity"
	"github.com/jhoicas/gestao-profissionais/internal/domain/repository"
	"github.com/jhoicas/gestao-profissionais/pkg/mask"
)

var _ repository.UserRepository = (*UserRepository)(nil)

// UserRepository guarda usuários em memória (DB_DRIVER=memory e testes).
// Devolve cópias; alterações só valem via métodos do repositório.
type UserRepository struct {
	mu    sync.RWMutex
	seq   int64
	users map[int64]*entity.User
}

// NewUserRepository cria o repositório, opcionalmente com usuários iniciais.
func NewUserRepository(seed ...*entity.User) *UserRepository {
	r := &UserRepository{users: make(map[int64]*entity.User)}
	for _, u := range seed {
		_ = r.Create(context.Background(), u)
	}
	return r
}

// Create atribui ID (se zero) e grava.
func (r *UserRepository) Create(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.checkUniqueLocked(u); err != nil {
		return err
	}
	if u.ID == 0 {
		r.seq++
		u.ID = r.seq
	} else if u.ID > r.seq {
		r.seq = u.ID
	}
	if u.NormalizedName == "" {
		u.NormalizedName = mask.Normalize(u.Name)
	}
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *UserRepository) checkUniqueLocked(u *entity.User) error {
	for id, other := range r.users {
		if id == u.ID {
			continue
		}
		if other.CPF == u.CPF {
			return domain.ErrCPFAlreadyExists
		}
		if strings.EqualFold(other.Email, u.Email) {
			return domain.ErrEmailAlreadyExists
		}
	}
	return nil
}

// GetByID (nil, nil) se não existir.
func (r *UserRepository) GetByID(_ context.Context, id int64) (*entity.User, error) {
	return r.find(func(u *entity.User) bool { return u.ID == id }), nil
}

// GetByEmail sem diferenciar maiúsculas.
func (r *UserRepository) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	email = strings.TrimSpace(email)
	return r.find(func(u *entity.User) bool { return strings.EqualFold(u.Email, email) }), nil
}

// GetByCPF aceita CPF com máscara.
func (r *UserRepository) GetByCPF(_ context.Context, cpf string) (*entity.User, error) {
	cpf = mask.OnlyDigits(cpf)
	return r.find(func(u *entity.User) bool { return u.CPF == cpf }), nil
}

func (r *UserRepository) find(match func(*entity.User) bool) *entity.User {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if match(u) {
			cp := *u
			return &cp
		}
	}
	return nil
}

// Update regrava os dados cadastrais, mantendo senha, status e flags.
func (r *UserRepository) Update(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.users[u.ID]
	if !ok {
		return domain.ErrUserNotFound
	}
	if err := r.checkUniqueLocked(u); err != nil {
		return err
	}
	cur.Name = u.Name
	cur.NormalizedName = mask.Normalize(u.Name)
	cur.Email = u.Email
	cur.CPF = u.CPF
	cur.Phone = u.Phone
	cur.Role = u.Role
	cur.Region = u.Region
	cur.City = u.City
	cur.CEP = u.CEP
	cur.Specialty = u.Specialty
	cur.UpdatedAt = u.UpdatedAt
	return nil
}

// UpdatePassword troca hash e flags.
func (r *UserRepository) UpdatePassword(_ context.Context, id int64, hash string, firstAccess, provisional bool, at time.Time) error {
	return r.mutate(id, func(u *entity.User) {
		u.PasswordHash = hash
		u.FirstAccess = firstAccess
		u.ProvisionalPassword = provisional
		u.UpdatedAt = at
	})
}

// UpdateStatus ativa ou inativa.
func (r *UserRepository) UpdateStatus(_ context.Context, id int64, status string, at time.Time) error {
	return r.mutate(id, func(u *entity.User) {
		u.Status = status
		u.UpdatedAt = at
	})
}

// TouchLogin registra o último login.
func (r *UserRepository) TouchLogin(_ context.Context, id int64, at time.Time) error {
	return r.mutate(id, func(u *entity.User) { u.LastLoginAt = &at })
}

func (r *UserRepository) mutate(id int64, fn func(*entity.User)) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	fn(u)
	return nil
}

// Delete remove o usuário.
func (r *UserRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

// List mesma semântica do repositório PostgreSQL: ordena por nome normalizado e ID.
func (r *UserRepository) List(_ context.Context, f repository.UserFilter) ([]*entity.User, int, error) {
	r.mu.RLock()
	matched := make([]*entity.User, 0, len(r.users))
	for _, u := range r.users {
		if matches(u, f) {
			cp := *u
			matched = append(matched, &cp)
		}
	}
	r.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		if matched[i].NormalizedName != matched[j].NormalizedName {
			return matched[i].NormalizedName < matched[j].NormalizedName
		}
		return matched[i].ID < matched[j].ID
	})
	total := len(matched)
	if f.Limit <= 0 {
		return matched, total, nil
	}
	start := f.Offset
	if start > total {
		start = total
	}
	end := start + f.Limit
	if end > total {
		end = total
	}
	return matched[start:end], total, nil
}

func matches(u *entity.User, f repository.UserFilter) bool {
	if f.Role != "" && u.Role != f.Role {
		return false
	}
	if f.Status != "" && u.Status != f.Status {
		return false
	}
	if f.Region != "" && u.Region != f.Region {
		return false
	}
	s := strings.TrimSpace(f.Search)
	if s == "" {
		return true
	}
	if strings.Contains(u.NormalizedName, s) || strings.Contains(strings.ToLower(u.Email), s) {
		return true
	}
	d := mask.OnlyDigits(s)
	return d != "" && strings.Contains(u.CPF, d)
}
