package dto

import "github.com/jhoicas/gestao-profissionais/pkg/access"

// Paginação padrão das listagens.
const (
	DefaultPerPage = 20
	MaxPerPage     = 100
)

// PageRequest paginação por número de página (1-based).
type PageRequest struct {
	Page    int `query:"pagina"`
	PerPage int `query:"por_pagina"`
}

// DefaultPage aplica os valores padrão e o limite máximo.
func (p *PageRequest) DefaultPage() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PerPage <= 0 {
		p.PerPage = DefaultPerPage
	}
	if p.PerPage > MaxPerPage {
		p.PerPage = MaxPerPage
	}
}

// Offset devolve o deslocamento da página atual.
func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// TotalPages calcula o número de páginas para total registros.
func TotalPages(total, perPage int) int {
	if perPage <= 0 || total <= 0 {
		return 0
	}
	return (total + perPage - 1) / perPage
}

// ErrorResponse corpo de erro HTTP. Details traz erros por campo (422).
type ErrorResponse struct {
	Code    string            `json:"code"`
	Message string            `json:"error"`
	Details map[string]string `json:"details,omitempty"`
}

// Actor é quem executa a operação, extraído do token.
type Actor struct {
	UserID      int64
	Role        access.Role
	Region      string
	Permissions access.Permissions
	TokenID     string
}

// NewActor resolve as permissões do cargo.
func NewActor(userID int64, role, region, tokenID string) Actor {
	r := access.Role(role)
	return Actor{UserID: userID, Role: r, Region: region, Permissions: access.Resolve(r), TokenID: tokenID}
}

// InScope informa se o ator alcança registros da região informada.
func (a Actor) InScope(region string) bool {
	return a.Permissions.ViewAllRegions || (a.Region != "" && a.Region == region)
}
