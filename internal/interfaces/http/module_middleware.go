package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/gestao-profissionais/internal/application/dto"
	"github.com/jhoicas/gestao-profissionais/pkg/access"
)

// RequirePermission bloqueia com 403 quem não satisfaz a capability.
// Deve vir depois do AuthMiddleware (lê o cargo de LocalRole).
func RequirePermission(capability access.Capability) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_ROLE", Message: "Token sem cargo"})
		}
		if !access.Resolve(access.Role(role)).Can(capability) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "FORBIDDEN",
				Message: "Você não tem permissão para esta ação",
			})
		}
		return c.Next()
	}
}

// RequireModule como RequirePermission, para as capabilities de módulo (modulo_*).
// Responde MODULE_DISABLED para o front esconder o módulo inteiro.
func RequireModule(module access.Capability) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !access.Resolve(access.Role(GetRole(c))).Can(module) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "MODULE_DISABLED",
				Message: "Módulo '" + string(module) + "' não disponível para o seu cargo",
			})
		}
		return c.Next()
	}
}

// RequirePasswordChanged barra qualquer rota enquanto o primeiro acesso
// ou a senha provisória estiverem pendentes.
func RequirePasswordChanged() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if MustChangePassword(c) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "PASSWORD_CHANGE_REQUIRED",
				Message: "Altere sua senha para continuar",
			})
		}
		return c.Next()
	}
}
