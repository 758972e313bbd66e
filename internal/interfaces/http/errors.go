package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/gestao-profissionais/internal/application/dto"
	"github.com/jhoicas/gestao-profissionais/internal/domain"
)

type errorMapping struct {
	target  error
	status  int
	code    string
	message string
}

// Ordem importa: o primeiro errors.Is que casar vence.
var errorMappings = []errorMapping{
	{domain.ErrInvalidCredentials, fiber.StatusUnauthorized, "INVALID_CREDENTIALS", "CPF/e-mail ou senha incorretos"},
	{domain.ErrUnauthorized, fiber.StatusUnauthorized, "UNAUTHORIZED", "Sessão expirada. Faça login novamente"},
	{domain.ErrInactiveUser, fiber.StatusForbidden, "INACTIVE_USER", "Usuário inativo. Procure o administrador"},
	{domain.ErrPasswordChangeRequired, fiber.StatusForbidden, "PASSWORD_CHANGE_REQUIRED", "Altere sua senha para continuar"},
	{domain.ErrSelfAction, fiber.StatusForbidden, "SELF_ACTION", "Operação não permitida sobre o próprio usuário"},
	{domain.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN", "Você não tem permissão para esta ação"},
	{domain.ErrUserNotFound, fiber.StatusNotFound, "NOT_FOUND", "Profissional não encontrado"},
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND", "Recurso não encontrado"},
	{domain.ErrCPFAlreadyExists, fiber.StatusConflict, "CPF_EXISTS", "CPF já cadastrado"},
	{domain.ErrEmailAlreadyExists, fiber.StatusConflict, "EMAIL_EXISTS", "E-mail já cadastrado"},
	{domain.ErrConflict, fiber.StatusConflict, "CONFLICT", "Conflito com o estado atual"},
}

// respondError traduz erros de domínio para status e ErrorResponse.
// Erros desconhecidos viram 500 sem expor detalhes; o erro vai para o log.
func respondError(c *fiber.Ctx, log zerolog.Logger, err error) error {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{
			Code: "VALIDATION", Message: "Verifique os campos destacados", Details: ve.Fields,
		})
	}
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			return c.Status(m.status).JSON(dto.ErrorResponse{Code: m.code, Message: m.message})
		}
	}
	log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("erro interno")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Code: "INTERNAL", Message: "Erro interno do servidor. Tente novamente mais tarde",
	})
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "Corpo da requisição inválido"})
}

func badID(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "ID inválido"})
}

// paramID lê :id como int64 positivo.
func paramID(c *fiber.Ctx) (int64, bool) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, false
	}
	return int64(id), true
}
