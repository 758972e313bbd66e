package auth_test

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/gestao-profissionais/internal/application/auth"
	"github.com/jhoicas/gestao-profissionais/internal/application/dto"
	"github.com/jhoicas/gestao-profissionais/internal/domain"
	"github.com/jhoicas/gestao-profissionais/internal/domain/entity"
	"github.com/jhoicas/gestao-profissionais/internal/infrastructure/memory"
)

const senhaAtual = "Atual@2024x"

type fixture struct {
	uc      *auth.AuthUseCase
	users   *memory.UserRepository
	revoked *memory.RevocationStore
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	hash, err := auth.HashPassword(senhaAtual)
	require.NoError(t, err)
	now := time.Now()
	users := memory.NewUserRepository(
		&entity.User{ID: 1, Name: "Admin Geral", Email: "admin@example.com", CPF: "52998224725",
			Role: "Administrador", PasswordHash: hash, Status: entity.StatusActive, CreatedAt: now},
		&entity.User{ID: 2, Name: "Rita Regional", Email: "rita@example.com", CPF: "11144477735",
			Role: "Coordenador Regional", Region: "Norte", PasswordHash: hash, Status: entity.StatusActive, CreatedAt: now},
		&entity.User{ID: 3, Name: "Paulo Preceptor", Email: "paulo@example.com", CPF: "39053344705",
			Role: "Preceptor", Region: "Norte", PasswordHash: hash, Status: entity.StatusActive, FirstAccess: true, CreatedAt: now},
		&entity.User{ID: 4, Name: "Inês Inativa", Email: "ines@example.com", CPF: "12345678909",
			Role: "Residente", Region: "Sul", PasswordHash: hash, Status: entity.StatusInactive, CreatedAt: now},
		&entity.User{ID: 5, Name: "Saulo Sul", Email: "saulo@example.com", CPF: "98765432100",
			Role: "Residente", Region: "Sul", PasswordHash: hash, Status: entity.StatusActive, CreatedAt: now},
		&entity.User{ID: 6, Name: "Nilo Norte", Email: "nilo@example.com", CPF: "24681357928",
			Role: "Coordenador Regional", Region: "Norte", PasswordHash: hash, Status: entity.StatusActive, CreatedAt: now},
	)
	revoked := memory.NewRevocationStore()
	uc := auth.NewAuthUseCase(users, revoked, auth.JWTConfig{Secret: "segredo-teste", ExpMinutes: 60, Issuer: "gp-test"},
		zerolog.New(io.Discard))
	return fixture{uc: uc, users: users, revoked: revoked}
}

// ─── Login ───────────────────────────────────────────────────────────────────

func TestLogin_PorCPFComMascara(t *testing.T) {
	f := newFixture(t)
	resp, err := f.uc.Login(context.Background(), dto.LoginRequest{Identifier: "529.982.247-25", Password: senhaAtual})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, int64(1), resp.User.ID)
	assert.True(t, resp.Permissions.FullAccess)
	require.NotNil(t, resp.User.LastLoginAt)
}

func TestLogin_PorEmailSemDiferenciarCaixa(t *testing.T) {
	f := newFixture(t)
	resp, err := f.uc.Login(context.Background(), dto.LoginRequest{Identifier: "RITA@example.com", Password: senhaAtual})
	require.NoError(t, err)
	assert.Equal(t, "Coordenador Regional", resp.User.Role)
	assert.False(t, resp.Permissions.ViewAllRegions)
}

func TestLogin_CredenciaisInvalidas(t *testing.T) {
	f := newFixture(t)
	cases := []dto.LoginRequest{
		{Identifier: "admin@example.com", Password: "errada"},
		{Identifier: "naoexiste@example.com", Password: senhaAtual},
		{Identifier: "", Password: senhaAtual},
	}
	for _, in := range cases {
		_, err := f.uc.Login(context.Background(), in)
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials, in.Identifier)
	}
}

func TestLogin_UsuarioInativo(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.Login(context.Background(), dto.LoginRequest{Identifier: "ines@example.com", Password: senhaAtual})
	assert.ErrorIs(t, err, domain.ErrInactiveUser)
}

func TestLogin_TokenCarregaTrocaObrigatoria(t *testing.T) {
	f := newFixture(t)
	resp, err := f.uc.Login(context.Background(), dto.LoginRequest{Identifier: "paulo@example.com", Password: senhaAtual})
	require.NoError(t, err)
	assert.True(t, resp.User.FirstAccess)

	claims, err := f.uc.VerifyToken(context.Background(), resp.Token)
	require.NoError(t, err)
	assert.True(t, claims.MustChangePassword)
	assert.Equal(t, "Norte", claims.Region)
}

// ─── Logout / VerifyToken ────────────────────────────────────────────────────

func TestLogout_RevogaToken(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	resp, err := f.uc.Login(ctx, dto.LoginRequest{Identifier: "admin@example.com", Password: senhaAtual})
	require.NoError(t, err)
	claims, err := f.uc.VerifyToken(ctx, resp.Token)
	require.NoError(t, err)

	require.NoError(t, f.uc.Logout(ctx, claims.ID, claims.ExpiresAtTime()))
	_, err = f.uc.VerifyToken(ctx, resp.Token)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestVerifyToken_Invalido(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.VerifyToken(context.Background(), "nao.e.token")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestVerifyToken_UsaCadastroAtual(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	resp, err := f.uc.Login(ctx, dto.LoginRequest{Identifier: "saulo@example.com", Password: senhaAtual})
	require.NoError(t, err)

	u, err := f.users.GetByID(ctx, 5)
	require.NoError(t, err)
	u.Role = "Apoiador"
	u.Region = "Norte"
	require.NoError(t, f.users.Update(ctx, u))

	claims, err := f.uc.VerifyToken(ctx, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "Apoiador", claims.Role)
	assert.Equal(t, "Norte", claims.Region)

	require.NoError(t, f.users.UpdateStatus(ctx, 5, entity.StatusInactive, time.Now()))
	_, err = f.uc.VerifyToken(ctx, resp.Token)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	require.NoError(t, f.users.Delete(ctx, 5))
	_, err = f.uc.VerifyToken(ctx, resp.Token)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

// ─── ChangePassword ──────────────────────────────────────────────────────────

func TestChangePassword_LimpaFlagsERenovaToken(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	login, err := f.uc.Login(ctx, dto.LoginRequest{Identifier: "paulo@example.com", Password: senhaAtual})
	require.NoError(t, err)
	claims, err := f.uc.VerifyToken(ctx, login.Token)
	require.NoError(t, err)

	actor := dto.NewActor(3, "Preceptor", "Norte", claims.ID)
	resp, err := f.uc.ChangePassword(ctx, actor, claims.ExpiresAtTime(), dto.ChangePasswordRequest{
		NewPassword: "Nova#Senha9", Confirm: "Nova#Senha9",
	})
	require.NoError(t, err)
	assert.False(t, resp.User.FirstAccess)
	assert.False(t, resp.User.ProvisionalPassword)

	_, err = f.uc.VerifyToken(ctx, login.Token)
	assert.ErrorIs(t, err, domain.ErrUnauthorized, "token anterior revogado")

	newClaims, err := f.uc.VerifyToken(ctx, resp.Token)
	require.NoError(t, err)
	assert.False(t, newClaims.MustChangePassword)

	_, err = f.uc.Login(ctx, dto.LoginRequest{Identifier: "paulo@example.com", Password: "Nova#Senha9"})
	assert.NoError(t, err)
}

func TestChangePassword_Politica(t *testing.T) {
	f := newFixture(t)
	actor := dto.NewActor(1, "Administrador", "", "")
	cases := []struct {
		name  string
		in    dto.ChangePasswordRequest
		field string
	}{
		{"curta", dto.ChangePasswordRequest{NewPassword: "Ab1!", Confirm: "Ab1!"}, auth.FieldNewPassword},
		{"sem especial", dto.ChangePasswordRequest{NewPassword: "Abcdefg1", Confirm: "Abcdefg1"}, auth.FieldNewPassword},
		{"contém CPF", dto.ChangePasswordRequest{NewPassword: "Xy!52998224725", Confirm: "Xy!52998224725"}, auth.FieldNewPassword},
		{"confirmação diferente", dto.ChangePasswordRequest{NewPassword: "Nova#Senha9", Confirm: "Nova#Senha8"}, auth.FieldConfirm},
		{"igual à atual", dto.ChangePasswordRequest{NewPassword: senhaAtual, Confirm: senhaAtual}, auth.FieldNewPassword},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.uc.ChangePassword(context.Background(), actor, time.Now().Add(time.Hour), tc.in)
			var ve *domain.ValidationError
			require.True(t, errors.As(err, &ve), "esperava ValidationError, veio %v", err)
			assert.Contains(t, ve.Fields, tc.field)
		})
	}
}

// ─── ResetPassword ───────────────────────────────────────────────────────────

func TestResetPassword_EmiteProvisoria(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	actor := dto.NewActor(2, "Coordenador Regional", "Norte", "")

	resp, err := f.uc.ResetPassword(ctx, actor, 3)
	require.NoError(t, err)
	assert.Len(t, resp.ProvisionalPassword, 12)
	assert.True(t, resp.User.FirstAccess)
	assert.True(t, resp.User.ProvisionalPassword)

	login, err := f.uc.Login(ctx, dto.LoginRequest{Identifier: "paulo@example.com", Password: resp.ProvisionalPassword})
	require.NoError(t, err)
	assert.True(t, login.User.ProvisionalPassword)
}

func TestResetPassword_Restricoes(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	regional := dto.NewActor(2, "Coordenador Regional", "Norte", "")

	_, err := f.uc.ResetPassword(ctx, regional, 5)
	assert.ErrorIs(t, err, domain.ErrUserNotFound, "outra região não revela existência")

	_, err = f.uc.ResetPassword(ctx, regional, 6)
	assert.ErrorIs(t, err, domain.ErrForbidden, "mesmo nível hierárquico")

	_, err = f.uc.ResetPassword(ctx, regional, 2)
	assert.ErrorIs(t, err, domain.ErrSelfAction)

	_, err = f.uc.ResetPassword(ctx, regional, 99)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	preceptor := dto.NewActor(3, "Preceptor", "Norte", "")
	_, err = f.uc.ResetPassword(ctx, preceptor, 5)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// ─── Me ──────────────────────────────────────────────────────────────────────

func TestMe(t *testing.T) {
	f := newFixture(t)
	resp, err := f.uc.Me(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, "Saulo Sul", resp.User.Name)
	assert.False(t, resp.Permissions.ViewProfessionals)

	_, err = f.uc.Me(context.Background(), 4)
	assert.ErrorIs(t, err, domain.ErrInactiveUser)
}
