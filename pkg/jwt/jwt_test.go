package jwt_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/jhoicas/gestao-profissionais/pkg/jwt"
)

const testSecret = "test-secret-key-for-unit-tests"

func TestGenerateAndParse(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, pkgjwt.Subject{
		UserID: 9, Role: "Preceptor", Region: "2ª Região", MustChangePassword: true,
	}, "gp-test", 60)
	require.NoError(t, err)
	require.NotEmpty(t, tok.ID)
	assert.WithinDuration(t, time.Now().Add(time.Hour), tok.ExpiresAt, 5*time.Second)

	claims, err := pkgjwt.Parse(testSecret, tok.Value)
	require.NoError(t, err)
	assert.Equal(t, int64(9), claims.UserID)
	assert.Equal(t, "Preceptor", claims.Role)
	assert.Equal(t, "2ª Região", claims.Region)
	assert.True(t, claims.MustChangePassword)
	assert.Equal(t, tok.ID, claims.ID)
	assert.Equal(t, "9", claims.Subject)
}

func TestParse_TokenExpirado(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, pkgjwt.Subject{UserID: 1, Role: "Administrador"}, "gp-test", -1)
	require.NoError(t, err)
	_, err = pkgjwt.Parse(testSecret, tok.Value)
	assert.Error(t, err)
}

func TestParse_SecretIncorreto(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, pkgjwt.Subject{UserID: 1, Role: "Administrador"}, "gp-test", 60)
	require.NoError(t, err)
	_, err = pkgjwt.Parse("outro-secret", tok.Value)
	assert.Error(t, err)
}

func TestParse_SemUserID(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, pkgjwt.Subject{Role: "Administrador"}, "gp-test", 60)
	require.NoError(t, err)
	_, err = pkgjwt.Parse(testSecret, tok.Value)
	assert.Error(t, err)
}

func TestGenerate_SecretVazio(t *testing.T) {
	_, err := pkgjwt.Generate("", pkgjwt.Subject{UserID: 1}, "gp-test", 60)
	assert.Error(t, err)
}
