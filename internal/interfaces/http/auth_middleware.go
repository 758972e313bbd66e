package http

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/gestao-profissionais/internal/application/dto"
	"github.com/jhoicas/gestao-profissionais/pkg/apiclient"
	"github.com/jhoicas/gestao-profissionais/pkg/jwt"
)

// Locals preenchidos pelo AuthMiddleware.
const (
	LocalUserID     = "user_id"
	LocalRole       = "role"
	LocalRegion     = "region"
	LocalMustChange = "must_change_password"
	LocalTokenID    = "token_id"
	LocalTokenExp   = "token_exp"
)

// tokenVerifier é implementado por *auth.AuthUseCase.
type tokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (*jwt.Claims, error)
}

// extractToken lê o Bearer do header Authorization ou, na falta dele, o cookie de sessão.
func extractToken(c *fiber.Ctx, cookieName string) (string, bool) {
	if h := c.Get(fiber.HeaderAuthorization); h != "" {
		parts := strings.SplitN(h, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return "", false
		}
		tok := strings.TrimSpace(parts[1])
		return tok, tok != ""
	}
	if cookieName != "" {
		if tok := c.Cookies(cookieName); tok != "" {
			return tok, true
		}
	}
	return "", false
}

// AuthMiddleware valida o token (assinatura, expiração, revogação) e carrega os claims em c.Locals.
// Se o cliente enviar X-User-Id, ele precisa coincidir com o usuário do token.
func AuthMiddleware(v tokenVerifier, cookieName string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tok, ok := extractToken(c, cookieName)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Faça login para continuar"})
		}
		claims, err := v.VerifyToken(c.UserContext(), tok)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "Sessão expirada. Faça login novamente"})
		}
		if hdr := c.Get(apiclient.HeaderUserID); hdr != "" {
			if id, err := strconv.ParseInt(hdr, 10, 64); err != nil || id != claims.UserID {
				return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "USER_MISMATCH", Message: "Usuário da requisição não confere com a sessão"})
			}
		}
		setClaims(c, claims)
		return c.Next()
	}
}

func setClaims(c *fiber.Ctx, claims *jwt.Claims) {
	c.Locals(LocalUserID, claims.UserID)
	c.Locals(LocalRole, claims.Role)
	c.Locals(LocalRegion, claims.Region)
	c.Locals(LocalMustChange, claims.MustChangePassword)
	c.Locals(LocalTokenID, claims.ID)
	c.Locals(LocalTokenExp, claims.ExpiresAtTime())
}

// GetUserID devolve o usuário autenticado (0 se ausente).
func GetUserID(c *fiber.Ctx) int64 {
	id, _ := c.Locals(LocalUserID).(int64)
	return id
}

// GetRole devolve o cargo do token.
func GetRole(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalRole).(string)
	return s
}

// GetRegion devolve a região do token.
func GetRegion(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalRegion).(string)
	return s
}

// MustChangePassword informa se o token ainda exige troca de senha.
func MustChangePassword(c *fiber.Ctx) bool {
	b, _ := c.Locals(LocalMustChange).(bool)
	return b
}

// GetTokenExpiry devolve a expiração do token atual.
func GetTokenExpiry(c *fiber.Ctx) time.Time {
	t, _ := c.Locals(LocalTokenExp).(time.Time)
	return t
}

// GetActor monta o ator da requisição a partir dos Locals.
func GetActor(c *fiber.Ctx) dto.Actor {
	jti, _ := c.Locals(LocalTokenID).(string)
	return dto.NewActor(GetUserID(c), GetRole(c), GetRegion(c), jti)
}
