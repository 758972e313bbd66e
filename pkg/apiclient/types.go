package apiclient

import (
	"time"

	"github.com/jhoicas/gestao-profissionais/pkg/access"
)

// User é o usuário (profissional) como trafega na API e como fica
// gravado no snapshot da sessão.
type User struct {
	ID                  int64     `json:"id"`
	Name                string    `json:"nome_completo"`
	Email               string    `json:"email"`
	CPF                 string    `json:"cpf"`
	Phone               string    `json:"telefone"`
	Role                string    `json:"cargo"`
	Status              string    `json:"status"`
	FirstAccess         bool      `json:"primeiro_acesso"`
	ProvisionalPassword bool      `json:"senha_provisoria"`
	Region              string    `json:"regiao,omitempty"`
	City                string    `json:"municipio,omitempty"`
	CEP                 string    `json:"cep,omitempty"`
	Specialty           string    `json:"especialidade,omitempty"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// LoginRequest aceita CPF ou e-mail no identificador.
type LoginRequest struct {
	Identifier string `json:"identificador"`
	Password   string `json:"senha"`
}

// LoginData é a resposta de POST /auth/login.
type LoginData struct {
	Token       string             `json:"token"`
	ExpiresAt   time.Time          `json:"expira_em"`
	User        User               `json:"usuario"`
	Permissions access.Permissions `json:"permissoes"`
}

// ChangePasswordRequest corpo de POST /auth/alterar-senha.
type ChangePasswordRequest struct {
	NewPassword string `json:"nova_senha"`
	Confirm     string `json:"confirmacao_senha"`
}

// ChangePasswordData traz o usuário atualizado e um token novo.
type ChangePasswordData struct {
	Token string `json:"token"`
	User  User   `json:"usuario"`
}

// ResetPasswordData traz a senha provisória, exibida uma única vez.
type ResetPasswordData struct {
	ProvisionalPassword string `json:"senha_provisoria"`
	User                User   `json:"usuario"`
}

// MeData resposta de GET /auth/me.
type MeData struct {
	User        User               `json:"usuario"`
	Permissions access.Permissions `json:"permissoes"`
}

// ProfessionalFilter filtros e paginação da listagem.
type ProfessionalFilter struct {
	Search  string
	Role    string
	Status  string
	Region  string
	Page    int
	PerPage int
}

// ProfessionalPage página da listagem.
type ProfessionalPage struct {
	Items      []User `json:"itens"`
	Page       int    `json:"pagina"`
	PerPage    int    `json:"por_pagina"`
	Total      int    `json:"total"`
	TotalPages int    `json:"total_paginas"`
}

// StatusRequest corpo de PUT /profissionais/{id}/status.
type StatusRequest struct {
	Status string `json:"status"`
}

// File é um download (CSV/PDF).
type File struct {
	Name        string
	ContentType string
	Body        []byte
}
