package logger_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/gestao-profissionais/pkg/logger"
)

func TestNew_JSONEmProducao(t *testing.T) {
	var buf bytes.Buffer
	l := logger.New(logger.Config{Env: "production", Level: "warn", Out: &buf})

	l.Info().Msg("não aparece")
	l.Warn().Str("campo", "x").Msg("aparece")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "aparece", entry["message"])
	assert.Equal(t, "x", entry["campo"])
	assert.Equal(t, "warn", entry["level"])
}

func TestComponent(t *testing.T) {
	var buf bytes.Buffer
	l := logger.New(logger.Config{Env: "production", Level: "", Out: &buf})
	zl := l.Component("auth")
	zl.Info().Msg("ok")
	assert.Contains(t, buf.String(), `"component":"auth"`)
}
