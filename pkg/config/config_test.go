package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/gestao-profissionais/pkg/config"
)

func TestLoad_ValoresPadrao(t *testing.T) {
	t.Setenv("JWT_SECRET", "segredo")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, 480, cfg.JWT.Expiration)
	assert.False(t, cfg.Redis.Enabled())
	assert.Equal(t, "sessao", cfg.Web.CookieName)
	assert.True(t, cfg.DB.AutoMigrate)
	assert.Equal(t, config.DriverPostgres, cfg.DB.Driver)
	assert.False(t, cfg.Admin.Enabled())
	assert.Equal(t, int32(10), cfg.DB.MaxConns)
}

func TestLoad_VariaveisDeAmbiente(t *testing.T) {
	t.Setenv("JWT_SECRET", "segredo")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("DB_AUTO_MIGRATE", "false")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.True(t, cfg.Redis.Enabled())
	assert.False(t, cfg.DB.AutoMigrate)
	assert.Equal(t, "0.0.0.0:9090", cfg.HTTP.Addr())
}

func TestLoad_SemSegredo(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	_, err := config.Load()
	assert.Error(t, err)
}

func TestDBConfig_DSNComCaracteresEspeciais(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss:w/rd", DBName: "gp", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%3Aw%2Frd@db:5432/gp?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://x"
	assert.Equal(t, "postgres://x", c.ConnectionString())
}

func TestLoad_DriverInvalido(t *testing.T) {
	t.Setenv("JWT_SECRET", "segredo")
	t.Setenv("DB_DRIVER", "sqlite")
	_, err := config.Load()
	assert.Error(t, err)
}

func TestLoad_PoolInvalido(t *testing.T) {
	t.Setenv("JWT_SECRET", "segredo")
	t.Setenv("DB_MAX_CONNS", "2")
	t.Setenv("DB_MIN_CONNS", "5")
	_, err := config.Load()
	assert.Error(t, err)
}
