package entity

import (
	"time"

	"github.com/jhoicas/gestao-profissionais/pkg/access"
)

// Status válidos de User.
const (
	StatusActive   = "ativo"
	StatusInactive = "inativo"
)

// ValidStatus informa se s é um status conhecido.
func ValidStatus(s string) bool {
	return s == StatusActive || s == StatusInactive
}

// User representa um profissional com acesso ao sistema.
type User struct {
	ID                  int64
	Name                string
	NormalizedName      string // nome sem acentos, minúsculo; usado na busca
	Email               string
	CPF                 string // só dígitos
	Phone               string // só dígitos
	Role                string // um dos cargos de access.Roles()
	PasswordHash        string // bcrypt
	Status              string // ativo, inativo
	FirstAccess         bool   // obriga troca de senha antes de qualquer outra ação
	ProvisionalPassword bool   // senha emitida por um administrador
	Region              string
	City                string
	CEP                 string
	Specialty           string
	CreatedBy           *int64
	CreatedAt           time.Time
	UpdatedAt           time.Time
	LastLoginAt         *time.Time
}

// IsActive informa se o usuário pode autenticar.
func (u *User) IsActive() bool { return u.Status == StatusActive }

// MustChangePassword: primeiro acesso ou senha provisória.
func (u *User) MustChangePassword() bool { return u.FirstAccess || u.ProvisionalPassword }

// Permissions deriva as permissões do cargo.
func (u *User) Permissions() access.Permissions {
	return access.Resolve(access.Role(u.Role))
}
