package redis_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/gestao-profissionais/internal/infrastructure/redis"
	"github.com/jhoicas/gestao-profissionais/pkg/config"
)

// Requer um Redis real: REDIS_TEST_ADDR=localhost:6379 go test ./...
func newStore(t *testing.T) *redis.RevocationStore {
	t.Helper()
	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		t.Skip("REDIS_TEST_ADDR não definido")
	}
	client, err := redis.NewClient(context.Background(), config.RedisConfig{Addr: addr})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return redis.NewRevocationStore(client)
}

func TestRevocationStore_RevokeEConsulta(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	jti := uuid.NewString()

	revoked, err := s.IsRevoked(ctx, jti)
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, s.Revoke(ctx, jti, time.Now().Add(time.Minute)))
	revoked, err = s.IsRevoked(ctx, jti)
	require.NoError(t, err)
	assert.True(t, revoked)
}

func TestRevocationStore_TokenJaVencidoIgnorado(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	jti := uuid.NewString()

	require.NoError(t, s.Revoke(ctx, jti, time.Now().Add(-time.Minute)))
	revoked, err := s.IsRevoked(ctx, jti)
	require.NoError(t, err)
	assert.False(t, revoked)
}
