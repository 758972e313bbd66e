package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/gestao-profissionais/internal/application/dto"
	"github.com/jhoicas/gestao-profissionais/internal/application/usecase"
)

// ProfessionalHandler listagem, consulta, status, exclusão e exportação.
type ProfessionalHandler struct {
	uc  *usecase.ProfessionalUseCase
	log zerolog.Logger
}

// NewProfessionalHandler constrói o handler.
func NewProfessionalHandler(uc *usecase.ProfessionalUseCase, log zerolog.Logger) *ProfessionalHandler {
	return &ProfessionalHandler{uc: uc, log: log}
}

// List godoc
// @Summary      Listar profissionais
// @Tags         profissionais
// @Security     Bearer
// @Produce      json
// @Param        busca       query  string  false  "Nome (sem acento), e-mail ou CPF"
// @Param        cargo       query  string  false  "Cargo"
// @Param        status      query  string  false  "ativo ou inativo"
// @Param        regiao      query  string  false  "Região"
// @Param        pagina      query  int     false  "Página"            default(1)
// @Param        por_pagina  query  int     false  "Itens por página"  default(20)
// @Success      200  {object}  dto.ProfessionalPage
// @Router       /api/profissionais [get]
func (h *ProfessionalHandler) List(c *fiber.Ctx) error {
	var in dto.ProfessionalListRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "Parâmetros de consulta inválidos"})
	}
	out, err := h.uc.List(c.UserContext(), GetActor(c), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// Export godoc
// @Summary      Exportar profissionais (CSV ou PDF)
// @Tags         profissionais
// @Security     Bearer
// @Produce      text/csv
// @Produce      application/pdf
// @Param        formato  query  string  false  "csv ou pdf"  default(csv)
// @Success      200
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/profissionais/exportar [get]
func (h *ProfessionalHandler) Export(c *fiber.Ctx) error {
	var in dto.ProfessionalListRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "Parâmetros de consulta inválidos"})
	}
	file, err := h.uc.Export(c.UserContext(), GetActor(c), c.Query("formato"), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	c.Set(fiber.HeaderContentType, file.ContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, file.Name))
	return c.Send(file.Body)
}

// Get godoc
// @Summary      Consultar profissional
// @Tags         profissionais
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID do profissional"
// @Success      200  {object}  dto.UserResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/profissionais/{id} [get]
func (h *ProfessionalHandler) Get(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return badID(c)
	}
	out, err := h.uc.Get(c.UserContext(), GetActor(c), id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// UpdateStatus godoc
// @Summary      Ativar ou inativar profissional
// @Tags         profissionais
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                true  "ID do profissional"
// @Param        body  body  dto.StatusRequest  true  "Novo status"
// @Success      200   {object}  dto.UserResponse
// @Router       /api/profissionais/{id}/status [put]
func (h *ProfessionalHandler) UpdateStatus(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return badID(c)
	}
	var in dto.StatusRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.UpdateStatus(c.UserContext(), GetActor(c), id, in.Status)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Excluir profissional
// @Tags         profissionais
// @Security     Bearer
// @Param        id   path  int  true  "ID do profissional"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/profissionais/{id} [delete]
func (h *ProfessionalHandler) Delete(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return badID(c)
	}
	if err := h.uc.Delete(c.UserContext(), GetActor(c), id); err != nil {
		return respondError(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
