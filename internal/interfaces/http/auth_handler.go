package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/gestao-profissionais/internal/application/auth"
	"github.com/jhoicas/gestao-profissionais/internal/application/dto"
)

// CookieConfig cookie de sessão usado pelas telas servidas pelo backend.
type CookieConfig struct {
	Name   string
	Secure bool
}

// AuthHandler login, logout, troca e redefinição de senha.
type AuthHandler struct {
	uc      *auth.AuthUseCase
	cookie  CookieConfig
	metrics *Metrics
	log     zerolog.Logger
}

// NewAuthHandler constrói o handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase, cookie CookieConfig, metrics *Metrics, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{uc: uc, cookie: cookie, metrics: metrics, log: log}
}

func (h *AuthHandler) setCookie(c *fiber.Ctx, token string, exp time.Time) {
	if h.cookie.Name == "" {
		return
	}
	c.Cookie(&fiber.Cookie{
		Name:     h.cookie.Name,
		Value:    token,
		Path:     "/",
		Expires:  exp,
		HTTPOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func (h *AuthHandler) clearCookie(c *fiber.Ctx) {
	if h.cookie.Name == "" {
		return
	}
	c.Cookie(&fiber.Cookie{
		Name:     h.cookie.Name,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		HTTPOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// Login godoc
// @Summary      Iniciar sessão
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "CPF ou e-mail e senha"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if in.Identifier == "" || in.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "Informe CPF ou e-mail e a senha"})
	}
	out, err := h.uc.Login(c.UserContext(), in)
	if err != nil {
		h.metrics.ObserveLogin(false)
		return respondError(c, h.log, err)
	}
	h.metrics.ObserveLogin(true)
	h.setCookie(c, out.Token, out.ExpiresAt)
	return c.JSON(out)
}

// Logout godoc
// @Summary      Encerrar sessão (revoga o token)
// @Tags         auth
// @Security     Bearer
// @Success      204
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	jti, _ := c.Locals(LocalTokenID).(string)
	if err := h.uc.Logout(c.UserContext(), jti, GetTokenExpiry(c)); err != nil {
		return respondError(c, h.log, err)
	}
	h.clearCookie(c)
	return c.SendStatus(fiber.StatusNoContent)
}

// ChangePassword godoc
// @Summary      Alterar a própria senha
// @Tags         auth
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ChangePasswordRequest  true  "Nova senha e confirmação"
// @Success      200   {object}  dto.ChangePasswordResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/auth/alterar-senha [post]
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	var in dto.ChangePasswordRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.ChangePassword(c.UserContext(), GetActor(c), GetTokenExpiry(c), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	h.setCookie(c, out.Token, out.ExpiresAt)
	return c.JSON(out)
}

// ResetPassword godoc
// @Summary      Redefinir senha de um profissional (senha provisória)
// @Tags         auth
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID do profissional"
// @Success      200  {object}  dto.ResetPasswordResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/auth/redefinir-senha/{id} [post]
func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return badID(c)
	}
	out, err := h.uc.ResetPassword(c.UserContext(), GetActor(c), id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// Me godoc
// @Summary      Usuário da sessão e permissões
// @Tags         auth
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.MeResponse
// @Router       /api/auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	out, err := h.uc.Me(c.UserContext(), GetUserID(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}
