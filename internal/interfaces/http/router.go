package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/gestao-profissionais/internal/application/auth"
	"github.com/jhoicas/gestao-profissionais/internal/application/usecase"
	"github.com/jhoicas/gestao-profissionais/pkg/access"
)

// RouterDeps dependências do router.
type RouterDeps struct {
	AuthUC         *auth.AuthUseCase
	UserUC         *usecase.UserUseCase
	ProfessionalUC *usecase.ProfessionalUseCase
	Cookie         CookieConfig
	IndexPath      string // index.html da SPA; vazio desliga as telas
	StaticDir      string
	Metrics        *Metrics
	MetricsToken   string
	Logger         zerolog.Logger
}

// Router registra as rotas da API e as telas do navegador.
func Router(app *fiber.App, deps RouterDeps) {
	if deps.Metrics != nil {
		app.Use(deps.Metrics.Middleware())
		app.Get("/metrics", deps.Metrics.Handler(deps.MetricsToken))
	}

	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC, deps.Cookie, deps.Metrics, deps.Logger)
	api.Post("/auth/login", authHandler.Login)

	// Rotas protegidas (Bearer ou cookie de sessão)
	protected := api.Group("", AuthMiddleware(deps.AuthUC, deps.Cookie.Name))

	// Liberadas durante o primeiro acesso
	protected.Post("/auth/logout", authHandler.Logout)
	protected.Get("/auth/me", authHandler.Me)
	protected.Post("/auth/alterar-senha", authHandler.ChangePassword)

	// Demais rotas exigem a troca de senha concluída
	ready := protected.Group("", RequirePasswordChanged())
	ready.Post("/auth/redefinir-senha/:id", RequirePermission(access.CapResetPassword), authHandler.ResetPassword)

	userHandler := NewUserHandler(deps.UserUC, deps.Logger)
	users := ready.Group("/usuarios", RequireModule(access.CapModuleRegistry))
	users.Post("/", RequirePermission(access.CapCreateProfessionals), userHandler.Create)
	users.Put("/:id", RequirePermission(access.CapEditProfessionals), userHandler.Update)

	dashboardHandler := NewDashboardHandler(deps.ProfessionalUC, deps.Logger)
	ready.Get("/dashboard/resumo", RequirePermission(access.CapViewProfessionals), dashboardHandler.GetSummary)

	profHandler := NewProfessionalHandler(deps.ProfessionalUC, deps.Logger)
	profs := ready.Group("/profissionais", RequireModule(access.CapModuleRegistry))
	profs.Get("/", RequirePermission(access.CapViewProfessionals), profHandler.List)
	profs.Get("/exportar", RequirePermission(access.CapExport), profHandler.Export)
	profs.Get("/:id", RequirePermission(access.CapViewProfessionals), profHandler.Get)
	profs.Put("/:id", RequirePermission(access.CapEditProfessionals), userHandler.Update)
	profs.Put("/:id/status", RequirePermission(access.CapChangeStatus), profHandler.UpdateStatus)
	profs.Delete("/:id", RequirePermission(access.CapDeleteProfessionals), profHandler.Delete)

	if deps.IndexPath != "" {
		pages(app, deps)
	}
}

// pages registra as telas da SPA atrás do PageGuard.
func pages(app *fiber.App, deps RouterDeps) {
	cfg := PageConfig{IndexPath: deps.IndexPath, CookieName: deps.Cookie.Name}
	if deps.StaticDir != "" {
		app.Static("/assets", deps.StaticDir)
	}

	app.Get("/", func(c *fiber.Ctx) error {
		return c.Redirect(access.LandingPath, fiber.StatusFound)
	})
	app.Get(access.LoginPath, ServeIndex(cfg))
	app.Get(access.UnauthorizedPath, ServeIndex(cfg))

	app.Get(access.LandingPath, PageGuard(deps.AuthUC, cfg, "", false))
	app.Get(access.ChangePasswordPath, PageGuard(deps.AuthUC, cfg, "", false))
	app.Get("/profissionais", PageGuard(deps.AuthUC, cfg, access.CapViewProfessionals, true))
	app.Get("/profissionais/novo", PageGuard(deps.AuthUC, cfg, access.CapCreateProfessionals, true))
	app.Get("/profissionais/:id/editar", PageGuard(deps.AuthUC, cfg, access.CapEditProfessionals, true))
	app.Get("/cadastro", PageGuard(deps.AuthUC, cfg, access.CapModuleRegistry, false))
	app.Get("/formacao", PageGuard(deps.AuthUC, cfg, access.CapModuleTraining, false))
	app.Get("/monitoramento", PageGuard(deps.AuthUC, cfg, access.CapModuleMonitoring, false))
	app.Get("/relatorios", PageGuard(deps.AuthUC, cfg, access.CapModuleReports, false))
}
