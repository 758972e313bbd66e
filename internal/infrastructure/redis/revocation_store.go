package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/jhoicas/gestao-profissionais/internal/domain/repository"
	"github.com/jhoicas/gestao-profissionais/pkg/config"
)

var _ repository.TokenRevocationStore = (*RevocationStore)(nil)

const keyPrefix = "gp:revogado:"

// NewClient abre e testa a conexão com o Redis.
func NewClient(ctx context.Context, cfg config.RedisConfig) (*goredis.Client, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

// RevocationStore guarda jti revogados como chaves com TTL até a expiração do token.
type RevocationStore struct {
	client *goredis.Client
	now    func() time.Time
}

// NewRevocationStore constrói o store sobre um cliente já conectado.
func NewRevocationStore(client *goredis.Client) *RevocationStore {
	return &RevocationStore{client: client, now: time.Now}
}

// Revoke marca o jti como revogado até until. Tokens já vencidos são ignorados.
func (s *RevocationStore) Revoke(ctx context.Context, jti string, until time.Time) error {
	ttl := until.Sub(s.now())
	if ttl <= 0 {
		return nil
	}
	if err := s.client.Set(ctx, keyPrefix+jti, 1, ttl).Err(); err != nil {
		return fmt.Errorf("redis revoke: %w", err)
	}
	return nil
}

// IsRevoked consulta a chave do jti.
func (s *RevocationStore) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := s.client.Exists(ctx, keyPrefix+jti).Result()
	if err != nil {
		return false, fmt.Errorf("redis exists: %w", err)
	}
	return n > 0, nil
}

// Purge não tem trabalho: o Redis expira as chaves sozinho.
func (s *RevocationStore) Purge(context.Context, time.Time) (int, error) {
	return 0, nil
}
