package main

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/jhoicas/gestao-profissionais/internal/application/usecase"
	"github.com/jhoicas/gestao-profissionais/internal/domain/repository"
	"github.com/jhoicas/gestao-profissionais/internal/infrastructure/memory"
	"github.com/jhoicas/gestao-profissionais/internal/infrastructure/postgres"
	infraredis "github.com/jhoicas/gestao-profissionais/internal/infrastructure/redis"
	"github.com/jhoicas/gestao-profissionais/pkg/config"
)

// storage agrupa as portas de persistência escolhidas pela configuração.
type storage struct {
	Users   repository.UserRepository
	Revoked repository.TokenRevocationStore
	Tx      usecase.TxRunner
	closers []func()
}

// Close libera conexões na ordem inversa de abertura.
func (s *storage) Close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		s.closers[i]()
	}
}

// openStorage escolhe usuários em PostgreSQL (ou memória) e revogações em
// Redis quando REDIS_ADDR está definido.
func openStorage(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*storage, error) {
	s := &storage{}

	switch cfg.DB.Driver {
	case config.DriverMemory:
		log.Warn().Msg("DB_DRIVER=memory: dados são perdidos ao reiniciar")
		users := memory.NewUserRepository()
		s.Users = users
		s.Tx = memory.NewTxRunner(users)
		s.Revoked = memory.NewRevocationStore()
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB, log)
		if err != nil {
			return nil, err
		}
		s.closers = append(s.closers, pool.Close)
		if cfg.DB.AutoMigrate {
			if err := postgres.Migrate(ctx, pool); err != nil {
				s.Close()
				return nil, err
			}
			log.Info().Msg("migrations aplicadas")
		}
		s.Users = postgres.NewUserRepository(pool)
		s.Tx = postgres.NewTxRunner(pool)
		s.Revoked = postgres.NewRevocationRepository(pool)
	}

	if cfg.Redis.Enabled() {
		client, err := infraredis.NewClient(ctx, cfg.Redis)
		if err != nil {
			s.Close()
			return nil, err
		}
		s.closers = append(s.closers, func() { _ = client.Close() })
		s.Revoked = infraredis.NewRevocationStore(client)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("revogações de token no Redis")
	}
	return s, nil
}
