package apiclient_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/gestao-profissionais/pkg/access"
	"github.com/jhoicas/gestao-profissionais/pkg/apiclient"
)

type fakeSession struct {
	id    int64
	token string
}

func (s fakeSession) UserID() (int64, bool) { return s.id, s.id != 0 }
func (s fakeSession) Token() string         { return s.token }

func newServer(t *testing.T, h http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return srv
}

func TestDo_SucessoDecodificaDados(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/login", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		var in apiclient.LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		assert.Equal(t, "maria@saude.gov.br", in.Identifier)
		_ = json.NewEncoder(w).Encode(apiclient.LoginData{
			Token:       "tok",
			User:        apiclient.User{ID: 7, Name: "Maria", Role: "Apoiador"},
			Permissions: access.Resolve(access.RoleApoiador),
		})
	})

	c := apiclient.New(srv.URL + "/api/")
	res := c.Login(context.Background(), "maria@saude.gov.br", "x")
	require.True(t, res.OK)
	require.Nil(t, res.Error)
	assert.NoError(t, res.Err())
	assert.Equal(t, int64(7), res.Data.User.ID)
	assert.True(t, res.Data.Permissions.ViewOnly)
}

func TestDo_InjetaCabecalhoDeSessao(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "42", r.Header.Get(apiclient.HeaderUserID))
		assert.Equal(t, "Bearer abc", r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusNoContent)
	})
	c := apiclient.New(srv.URL, apiclient.WithSession(fakeSession{id: 42, token: "abc"}))
	res := c.DeleteProfessional(context.Background(), 3)
	assert.True(t, res.OK)
}

func TestDo_SemSessaoNaoEnviaCabecalho(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get(apiclient.HeaderUserID))
		assert.Empty(t, r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusNoContent)
	})
	c := apiclient.New(srv.URL, apiclient.WithSession(fakeSession{}))
	assert.True(t, c.Logout(context.Background()).OK)
}

func TestDo_MensagemDoServidor(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{"campo error", `{"error":"CPF já cadastrado"}`, "CPF já cadastrado"},
		{"campo message", `{"code":"CONFLICT","message":"E-mail já cadastrado"}`, "E-mail já cadastrado"},
		{"sem mensagem", `{}`, apiclient.StatusMessage(http.StatusConflict)},
		{"corpo não JSON", `<html>`, apiclient.StatusMessage(http.StatusConflict)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusConflict)
				_, _ = w.Write([]byte(tc.body))
			})
			res := apiclient.New(srv.URL).GetProfessional(context.Background(), 1)
			require.False(t, res.OK)
			assert.Equal(t, http.StatusConflict, res.Error.Status)
			assert.Equal(t, tc.want, res.Error.Message)
		})
	}
}

func TestDo_TabelaDeStatus(t *testing.T) {
	for _, status := range []int{400, 401, 403, 404, 409, 422, 500, 502, 503} {
		assert.NotEqual(t, apiclient.MsgGeneric, apiclient.StatusMessage(status), "status %d", status)
	}
	assert.Equal(t, apiclient.MsgGeneric, apiclient.StatusMessage(418))
}

func TestDo_Details(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"message":"dados inválidos","details":{"cpf":"CPF inválido"}}`))
	})
	res := apiclient.New(srv.URL).GetProfessional(context.Background(), 1)
	require.NotNil(t, res.Error)
	var details map[string]string
	require.NoError(t, json.Unmarshal(res.Error.Details, &details))
	assert.Equal(t, "CPF inválido", details["cpf"])
}

func TestDo_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})
	defer close(release)

	c := apiclient.New(srv.URL, apiclient.WithTimeout(50*time.Millisecond))
	res := c.GetProfessional(context.Background(), 1)
	require.False(t, res.OK)
	assert.Equal(t, apiclient.MsgTimeout, res.Error.Message)
	assert.Zero(t, res.Error.Status)
}

func TestDo_SemConexao(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	res := apiclient.New(url).GetProfessional(context.Background(), 1)
	require.False(t, res.OK)
	assert.Equal(t, apiclient.MsgNetwork, res.Error.Message)
}

func TestListProfessionals_QueryString(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "joão", q.Get("busca"))
		assert.Equal(t, "Residente", q.Get("cargo"))
		assert.Equal(t, "2", q.Get("pagina"))
		assert.Empty(t, q.Get("status"))
		_, _ = w.Write([]byte(`{"itens":[{"id":1,"nome_completo":"João"}],"pagina":2,"por_pagina":10,"total":11,"total_paginas":2}`))
	})
	res := apiclient.New(srv.URL).ListProfessionals(context.Background(), apiclient.ProfessionalFilter{
		Search: "joão", Role: "Residente", Page: 2,
	})
	require.True(t, res.OK)
	assert.Len(t, res.Data.Items, 1)
	assert.Equal(t, 2, res.Data.TotalPages)
}

func TestExportProfessionals_Arquivo(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "csv", r.URL.Query().Get("formato"))
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="profissionais.csv"`)
		_, _ = w.Write([]byte("id;nome\n1;Maria\n"))
	})
	res := apiclient.New(srv.URL).ExportProfessionals(context.Background(), "csv", apiclient.ProfessionalFilter{})
	require.True(t, res.OK)
	assert.Equal(t, "profissionais.csv", res.Data.Name)
	assert.Contains(t, string(res.Data.Body), "Maria")
}

func TestExportProfessionals_AcimaDoLimite(t *testing.T) {
	pdf := strings.Repeat("x", 2048)
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write([]byte(pdf))
	})

	res := apiclient.New(srv.URL, apiclient.WithMaxDownloadBytes(2047)).
		ExportProfessionals(context.Background(), "pdf", apiclient.ProfessionalFilter{})
	require.False(t, res.OK, "arquivo truncado não pode ser entregue como sucesso")
	assert.Equal(t, apiclient.MsgTooLarge, res.Error.Message)
	assert.Equal(t, http.StatusOK, res.Error.Status)

	res = apiclient.New(srv.URL, apiclient.WithMaxDownloadBytes(2048)).
		ExportProfessionals(context.Background(), "pdf", apiclient.ProfessionalFilter{})
	require.True(t, res.OK)
	assert.Len(t, res.Data.Body, 2048)
}

func TestDo_JSONAcimaDoLimite(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`"` + strings.Repeat("a", 11<<20) + `"`))
	})
	res := apiclient.Do[string](context.Background(), apiclient.New(srv.URL), http.MethodGet, "/grande", nil)
	require.False(t, res.OK)
	assert.Equal(t, apiclient.MsgTooLarge, res.Error.Message)
}
