package dto

import (
	"time"

	"github.com/jhoicas/gestao-profissionais/pkg/access"
)

// LoginRequest identificador é CPF (com ou sem máscara) ou e-mail.
type LoginRequest struct {
	Identifier string `json:"identificador"`
	Password   string `json:"senha"`
}

// LoginResponse token, usuário e permissões já resolvidas.
type LoginResponse struct {
	Token       string             `json:"token"`
	ExpiresAt   time.Time          `json:"expira_em"`
	User        UserResponse       `json:"usuario"`
	Permissions access.Permissions `json:"permissoes"`
}

// ChangePasswordRequest corpo de POST /auth/alterar-senha.
type ChangePasswordRequest struct {
	NewPassword string `json:"nova_senha"`
	Confirm     string `json:"confirmacao_senha"`
}

// ChangePasswordResponse usuário atualizado e token novo (sem a flag de troca).
type ChangePasswordResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expira_em"`
	User      UserResponse `json:"usuario"`
}

// ResetPasswordResponse senha provisória, devolvida uma única vez.
type ResetPasswordResponse struct {
	ProvisionalPassword string       `json:"senha_provisoria"`
	User                UserResponse `json:"usuario"`
}

// MeResponse resposta de GET /auth/me.
type MeResponse struct {
	User        UserResponse       `json:"usuario"`
	Permissions access.Permissions `json:"permissoes"`
}
