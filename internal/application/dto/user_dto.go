package dto

import (
	"time"

	"github.com/jhoicas/gestao-profissionais/internal/domain/entity"
)

// UserResponse usuário como trafega na API (sem hash de senha).
type UserResponse struct {
	ID                  int64      `json:"id"`
	Name                string     `json:"nome_completo"`
	Email               string     `json:"email"`
	CPF                 string     `json:"cpf"`
	Phone               string     `json:"telefone"`
	Role                string     `json:"cargo"`
	Status              string     `json:"status"`
	FirstAccess         bool       `json:"primeiro_acesso"`
	ProvisionalPassword bool       `json:"senha_provisoria"`
	Region              string     `json:"regiao,omitempty"`
	City                string     `json:"municipio,omitempty"`
	CEP                 string     `json:"cep,omitempty"`
	Specialty           string     `json:"especialidade,omitempty"`
	LastLoginAt         *time.Time `json:"ultimo_login_em,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

// ToUserResponse converte a entidade.
func ToUserResponse(u *entity.User) UserResponse {
	return UserResponse{
		ID:                  u.ID,
		Name:                u.Name,
		Email:               u.Email,
		CPF:                 u.CPF,
		Phone:               u.Phone,
		Role:                u.Role,
		Status:              u.Status,
		FirstAccess:         u.FirstAccess,
		ProvisionalPassword: u.ProvisionalPassword,
		Region:              u.Region,
		City:                u.City,
		CEP:                 u.CEP,
		Specialty:           u.Specialty,
		LastLoginAt:         u.LastLoginAt,
		CreatedAt:           u.CreatedAt,
		UpdatedAt:           u.UpdatedAt,
	}
}
