package apiclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/jhoicas/gestao-profissionais/pkg/form"
)

// Login autentica por CPF ou e-mail.
func (c *Client) Login(ctx context.Context, identifier, secret string) Result[LoginData] {
	return Do[LoginData](ctx, c, http.MethodPost, "/auth/login", LoginRequest{Identifier: identifier, Password: secret})
}

// Logout avisa o servidor para revogar o token atual.
func (c *Client) Logout(ctx context.Context) Result[struct{}] {
	return Do[struct{}](ctx, c, http.MethodPost, "/auth/logout", nil)
}

// Me devolve o usuário e as permissões do token atual.
func (c *Client) Me(ctx context.Context) Result[MeData] {
	return Do[MeData](ctx, c, http.MethodGet, "/auth/me", nil)
}

// ChangePassword troca a senha do usuário da sessão.
func (c *Client) ChangePassword(ctx context.Context, newSecret string) Result[ChangePasswordData] {
	return Do[ChangePasswordData](ctx, c, http.MethodPost, "/auth/alterar-senha",
		ChangePasswordRequest{NewPassword: newSecret, Confirm: newSecret})
}

// ResetPassword emite uma senha provisória para o usuário id.
func (c *Client) ResetPassword(ctx context.Context, id int64) Result[ResetPasswordData] {
	return Do[ResetPasswordData](ctx, c, http.MethodPost, fmt.Sprintf("/auth/redefinir-senha/%d", id), nil)
}

// CreateUser cadastra um profissional.
func (c *Client) CreateUser(ctx context.Context, in form.Registration) Result[User] {
	return Do[User](ctx, c, http.MethodPost, "/usuarios", in)
}

// UpdateUser atualiza dados cadastrais.
func (c *Client) UpdateUser(ctx context.Context, id int64, in form.Edit) Result[User] {
	return Do[User](ctx, c, http.MethodPut, fmt.Sprintf("/usuarios/%d", id), in)
}

// ListProfessionals lista com filtros e paginação.
func (c *Client) ListProfessionals(ctx context.Context, f ProfessionalFilter) Result[ProfessionalPage] {
	return Do[ProfessionalPage](ctx, c, http.MethodGet, "/profissionais"+f.query(), nil)
}

// GetProfessional busca um profissional.
func (c *Client) GetProfessional(ctx context.Context, id int64) Result[User] {
	return Do[User](ctx, c, http.MethodGet, fmt.Sprintf("/profissionais/%d", id), nil)
}

// UpdateProfessional edita um profissional pela tela de listagem.
func (c *Client) UpdateProfessional(ctx context.Context, id int64, in form.Edit) Result[User] {
	return Do[User](ctx, c, http.MethodPut, fmt.Sprintf("/profissionais/%d", id), in)
}

// UpdateProfessionalStatus ativa ou inativa.
func (c *Client) UpdateProfessionalStatus(ctx context.Context, id int64, status string) Result[User] {
	return Do[User](ctx, c, http.MethodPut, fmt.Sprintf("/profissionais/%d/status", id), StatusRequest{Status: status})
}

// DeleteProfessional remove um profissional.
func (c *Client) DeleteProfessional(ctx context.Context, id int64) Result[struct{}] {
	return Do[struct{}](ctx, c, http.MethodDelete, fmt.Sprintf("/profissionais/%d", id), nil)
}

// ExportProfessionals baixa a listagem filtrada em "csv" ou "pdf".
func (c *Client) ExportProfessionals(ctx context.Context, format string, f ProfessionalFilter) Result[File] {
	q := f.values()
	q.Set("formato", format)
	return Download(ctx, c, "/profissionais/exportar?"+q.Encode())
}

func (f ProfessionalFilter) values() url.Values {
	q := url.Values{}
	if f.Search != "" {
		q.Set("busca", f.Search)
	}
	if f.Role != "" {
		q.Set("cargo", f.Role)
	}
	if f.Status != "" {
		q.Set("status", f.Status)
	}
	if f.Region != "" {
		q.Set("regiao", f.Region)
	}
	if f.Page > 0 {
		q.Set("pagina", strconv.Itoa(f.Page))
	}
	if f.PerPage > 0 {
		q.Set("por_pagina", strconv.Itoa(f.PerPage))
	}
	return q
}

func (f ProfessionalFilter) query() string {
	q := f.values()
	if len(q) == 0 {
		return ""
	}
	return "?" + q.Encode()
}
