package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/gestao-profissionais/internal/application/auth"
	"github.com/jhoicas/gestao-profissionais/internal/application/usecase"
	"github.com/jhoicas/gestao-profissionais/internal/domain"
	infracsv "github.com/jhoicas/gestao-profissionais/internal/infrastructure/csv"
	infrapdf "github.com/jhoicas/gestao-profissionais/internal/infrastructure/pdf"
	"github.com/jhoicas/gestao-profissionais/internal/jobs"
	httpRouter "github.com/jhoicas/gestao-profissionais/internal/interfaces/http"
	"github.com/jhoicas/gestao-profissionais/pkg/config"
	"github.com/jhoicas/gestao-profissionais/pkg/form"
	"github.com/jhoicas/gestao-profissionais/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("carregar configuração: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("db_driver", cfg.DB.Driver).
		Msg("iniciando aplicação")

	ctx := context.Background()
	store, err := openStorage(ctx, cfg, log.Component("storage"))
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar persistência")
	}
	defer store.Close()

	authUC := auth.NewAuthUseCase(store.Users, store.Revoked, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, log.Component("auth"))
	userUC := usecase.NewUserUseCase(store.Users, log.Component("usuarios")).WithTxRunner(store.Tx)
	professionalUC := usecase.NewProfessionalUseCase(store.Users, log.Component("profissionais"),
		infracsv.NewProfessionalReportGenerator(),
		infrapdf.NewProfessionalReportGenerator(),
	)

	if cfg.Admin.Enabled() {
		bootstrapAdmin(ctx, userUC, cfg.Admin, log)
	}

	scheduler := jobs.NewScheduler(store.Revoked, log.Component("jobs"))
	if err := scheduler.Start(); err != nil {
		log.Fatal().Err(err).Msg("iniciar scheduler")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Gestão de Profissionais API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "db_driver": cfg.DB.Driver})
	})

	var metrics *httpRouter.Metrics
	if cfg.Metrics.Enabled {
		metrics = httpRouter.NewMetrics()
	}
	indexPath := cfg.Web.IndexPath
	if _, err := os.Stat(indexPath); err != nil {
		log.Warn().Str("index", indexPath).Msg("index.html não encontrado; telas desativadas")
		indexPath = ""
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		UserUC:         userUC,
		ProfessionalUC: professionalUC,
		Cookie:         httpRouter.CookieConfig{Name: cfg.Web.CookieName, Secure: cfg.Web.CookieSecure},
		IndexPath:      indexPath,
		StaticDir:      cfg.Web.StaticDir,
		Metrics:        metrics,
		MetricsToken:   cfg.Metrics.Token,
		Logger:         log.Component("http"),
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("sinal de encerramento recebido, fechando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("encerramento do servidor")
	}
	scheduler.Stop(shutdownCtx)

	log.Info().Msg("aplicação encerrada")
}

// bootstrapAdmin cria o administrador configurado por ADMIN_*. E-mail já
// cadastrado não é erro: a subida é idempotente.
func bootstrapAdmin(ctx context.Context, uc *usecase.UserUseCase, cfg config.AdminConfig, log *logger.Logger) {
	_, err := uc.CreateAdmin(ctx, form.Registration{
		Name:            cfg.Name,
		CPF:             cfg.CPF,
		Email:           cfg.Email,
		Phone:           cfg.Phone,
		Password:        cfg.Password,
		PasswordConfirm: cfg.Password,
	})
	var ve *domain.ValidationError
	switch {
	case err == nil:
		log.Info().Str("email", cfg.Email).Msg("administrador inicial criado")
	case errors.As(err, &ve) && ve.Fields[form.FieldEmail] == domain.ErrEmailAlreadyExists.Error():
		log.Debug().Str("email", cfg.Email).Msg("administrador inicial já existe")
	default:
		log.Fatal().Err(err).Msg("criar administrador inicial")
	}
}
