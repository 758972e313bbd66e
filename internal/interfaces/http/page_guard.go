package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/gestao-profissionais/pkg/access"
)

// PageConfig onde está o shell da SPA e qual cookie carrega a sessão.
type PageConfig struct {
	IndexPath  string
	CookieName string
}

// ServeIndex entrega o index.html da SPA (telas públicas).
func ServeIndex(cfg PageConfig) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Set(fiber.HeaderCacheControl, "no-store")
		return c.SendFile(cfg.IndexPath)
	}
}

// PageGuard protege uma tela do navegador com a mesma decisão usada no cliente:
// sem sessão vai para /login, sem permissão para /nao-autorizado ou /dashboard.
// Com troca de senha pendente, toda tela protegida leva a /alterar-senha.
func PageGuard(v tokenVerifier, cfg PageConfig, required access.Capability, showUnauthorized bool) fiber.Handler {
	index := ServeIndex(cfg)
	return func(c *fiber.Ctx) error {
		authenticated := false
		var perms access.Permissions
		if tok := c.Cookies(cfg.CookieName); tok != "" {
			if claims, err := v.VerifyToken(c.UserContext(), tok); err == nil {
				authenticated = true
				perms = access.Resolve(access.Role(claims.Role))
				if claims.MustChangePassword && c.Path() != access.ChangePasswordPath {
					return c.Redirect(access.ChangePasswordPath, fiber.StatusFound)
				}
			}
		}
		decision := access.Guard(authenticated, perms, required, showUnauthorized)
		if decision != access.Allow {
			return c.Redirect(decision.Path(), fiber.StatusFound)
		}
		return index(c)
	}
}
