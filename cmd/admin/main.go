// Comando admin: tarefas de operação fora da API (migrations e administrador inicial).
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/jhoicas/gestao-profissionais/internal/infrastructure/postgres"
	"github.com/jhoicas/gestao-profissionais/pkg/config"
	"github.com/jhoicas/gestao-profissionais/pkg/logger"
)

var (
	cfg *config.Config
	log *logger.Logger
)

var rootCmd = &cobra.Command{
	Use:           "gp-admin",
	Short:         "Operação da gestão de profissionais",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return err
		}
		if c.DB.Driver != config.DriverPostgres {
			return fmt.Errorf("gp-admin exige DB_DRIVER=%s", config.DriverPostgres)
		}
		cfg = c
		log = logger.New(logger.Config{Env: c.App.Env, Level: c.App.LogLevel})
		return nil
	},
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rootCmd.AddCommand(migrateCmd, createAdminCmd)
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "erro:", err)
		os.Exit(1)
	}
}

// withPool abre o pool, executa fn e fecha.
func withPool(ctx context.Context, fn func(*pgxpool.Pool) error) error {
	pool, err := postgres.NewPool(ctx, cfg.DB, log.Component("postgres"))
	if err != nil {
		return err
	}
	defer pool.Close()
	return fn(pool)
}
