// Package session mantém a sessão do usuário no cliente: usuário atual,
// permissões derivadas do cargo, snapshot persistido e logout automático
// por inatividade.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/gestao-profissionais/pkg/access"
	"github.com/jhoicas/gestao-profissionais/pkg/apiclient"
)

// DefaultIdleTimeout é a janela de inatividade.
const DefaultIdleTimeout = 30 * time.Minute

// ErrNotAuthenticated: operação exige sessão.
var ErrNotAuthenticated = errors.New("session: usuário não autenticado")

// AuthError carrega a mensagem do servidor quando o login falha.
type AuthError struct {
	Message string
	Status  int
}

func (e *AuthError) Error() string { return e.Message }

// Authenticator é a parte do apiclient.Client usada pela sessão.
type Authenticator interface {
	Login(ctx context.Context, identifier, secret string) apiclient.Result[apiclient.LoginData]
	Logout(ctx context.Context) apiclient.Result[struct{}]
	ChangePassword(ctx context.Context, newSecret string) apiclient.Result[apiclient.ChangePasswordData]
}

// Navigator troca a tela atual.
type Navigator interface {
	Redirect(path string)
}

// NavigatorFunc adapta uma função a Navigator.
type NavigatorFunc func(path string)

func (f NavigatorFunc) Redirect(path string) { f(path) }

var (
	_ Authenticator           = (*apiclient.Client)(nil)
	_ apiclient.SessionSource = (*Manager)(nil)
)

type snapshot struct {
	User  apiclient.User `json:"usuario"`
	Token string         `json:"token,omitempty"`
}

// Manager é o dono exclusivo da sessão e do snapshot persistido.
type Manager struct {
	auth  Authenticator
	store Store
	nav   Navigator
	log   zerolog.Logger
	idle  time.Duration

	mu     sync.Mutex
	user   *apiclient.User
	token  string
	perms  access.Permissions
	timer   *time.Timer
	gen     uint64
	closed  bool
	tearing bool
}

// Option configura o Manager.
type Option func(*Manager)

// WithNavigator define para onde vão os redirecionamentos.
func WithNavigator(n Navigator) Option { return func(m *Manager) { m.nav = n } }

// WithLogger define o logger.
func WithLogger(l zerolog.Logger) Option { return func(m *Manager) { m.log = l } }

// WithIdleTimeout troca a janela de inatividade.
func WithIdleTimeout(d time.Duration) Option { return func(m *Manager) { m.idle = d } }

// NewManager cria o gerenciador e restaura o snapshot, se houver.
// Snapshot corrompido é descartado e a sessão começa deslogada.
func NewManager(auth Authenticator, store Store, opts ...Option) *Manager {
	m := &Manager{
		auth:  auth,
		store: store,
		log:   zerolog.Nop(),
		idle:  DefaultIdleTimeout,
		perms: access.Baseline,
	}
	for _, o := range opts {
		o(m)
	}
	m.restore()
	return m
}

func (m *Manager) restore() {
	raw, err := m.store.Load()
	if err != nil {
		if !errors.Is(err, ErrNoSnapshot) {
			m.log.Warn().Err(err).Msg("não foi possível ler a sessão salva")
		}
		return
	}
	var snap snapshot
	if err := json.Unmarshal(raw, &snap); err != nil || snap.User.ID == 0 {
		m.log.Warn().Err(err).Msg("sessão salva corrompida, descartando")
		if rmErr := m.store.Remove(); rmErr != nil {
			m.log.Warn().Err(rmErr).Msg("remover sessão corrompida")
		}
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.setLocked(snap.User, snap.Token)
	m.armLocked()
}

// Login autentica e inicia a sessão.
func (m *Manager) Login(ctx context.Context, identifier, secret string) (*apiclient.User, error) {
	res := m.auth.Login(ctx, identifier, secret)
	if !res.OK {
		ae := &AuthError{Message: apiclient.MsgGeneric}
		if res.Error != nil {
			ae.Message = res.Error.Message
			ae.Status = res.Error.Status
		}
		return nil, ae
	}

	m.mu.Lock()
	m.closed = false
	m.setLocked(res.Data.User, res.Data.Token)
	m.persistLocked()
	m.armLocked()
	u := *m.user
	m.mu.Unlock()

	m.log.Info().Int64("user_id", u.ID).Str("cargo", u.Role).Msg("login efetuado")
	return &u, nil
}

// Logout avisa o servidor (falha só é registrada) e limpa a sessão local
// incondicionalmente, redirecionando para o login. Sem sessão não faz nada.
func (m *Manager) Logout(ctx context.Context) {
	m.teardown(ctx, "manual")
}

// teardown encerra a sessão uma única vez: quem chega com outro encerramento
// em andamento, ou sem sessão, não notifica nem redireciona de novo.
func (m *Manager) teardown(ctx context.Context, reason string) {
	m.mu.Lock()
	if m.user == nil || m.tearing {
		m.mu.Unlock()
		return
	}
	m.tearing = true
	m.stopLocked()
	m.mu.Unlock()

	if res := m.auth.Logout(ctx); !res.OK {
		ev := m.log.Warn().Str("motivo", reason)
		if res.Error != nil {
			ev = ev.Int("status", res.Error.Status).Str("erro", res.Error.Message)
		}
		ev.Msg("falha ao notificar logout ao servidor")
	}

	m.mu.Lock()
	m.clearLocked()
	m.mu.Unlock()

	if err := m.store.Remove(); err != nil {
		m.log.Warn().Err(err).Msg("remover sessão salva")
	}
	m.log.Info().Str("motivo", reason).Msg("sessão encerrada")
	m.redirect(access.LoginPath)
}

// ChangePassword troca a senha do usuário logado e incorpora os campos
// devolvidos pelo servidor (primeiro acesso, senha provisória, token).
func (m *Manager) ChangePassword(ctx context.Context, newSecret string) (*apiclient.User, error) {
	if !m.IsAuthenticated() {
		return nil, ErrNotAuthenticated
	}
	res := m.auth.ChangePassword(ctx, newSecret)
	if !res.OK {
		if res.Error != nil {
			return nil, res.Error
		}
		return nil, &apiclient.APIError{Message: apiclient.MsgGeneric}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.user == nil {
		// logout concorrente durante a chamada
		return nil, ErrNotAuthenticated
	}
	merged := mergeUser(*m.user, res.Data.User)
	token := m.token
	if res.Data.Token != "" {
		token = res.Data.Token
	}
	m.setLocked(merged, token)
	m.persistLocked()
	m.armLocked()
	u := *m.user
	return &u, nil
}

// RecordActivity reinicia o timer de inatividade quando ev é um evento de
// usuário e há sessão ativa.
func (m *Manager) RecordActivity(ev ActivityEvent) {
	if !ev.Valid() {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.user == nil {
		return
	}
	m.armLocked()
}

// Close para o timer (desmontagem). A sessão persistida continua válida e um
// Login posterior no mesmo Manager volta a armar o timer.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	m.stopLocked()
}

// Guard aplica access.Guard à sessão atual e executa o redirecionamento
// quando a decisão pede.
func (m *Manager) Guard(required access.Capability, showUnauthorized bool) access.Decision {
	m.mu.Lock()
	d := access.Guard(m.user != nil, m.perms, required, showUnauthorized)
	m.mu.Unlock()
	if d == access.RedirectLogin || d == access.RedirectLanding {
		m.redirect(d.Path())
	}
	return d
}

// IsAuthenticated informa se há usuário carregado.
func (m *Manager) IsAuthenticated() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.user != nil
}

// CurrentUser devolve uma cópia do usuário, ou nil.
func (m *Manager) CurrentUser() *apiclient.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.user == nil {
		return nil
	}
	u := *m.user
	return &u
}

// Permissions devolve o conjunto atual (Baseline sem sessão).
func (m *Manager) Permissions() access.Permissions {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.perms
}

// Can avalia uma capability na sessão atual.
func (m *Manager) Can(c access.Capability) bool {
	return m.Permissions().Can(c)
}

// MustChangePassword: primeiro acesso ou senha provisória bloqueiam o
// restante do sistema até a troca.
func (m *Manager) MustChangePassword() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.user != nil && (m.user.FirstAccess || m.user.ProvisionalPassword)
}

// UserID implementa apiclient.SessionSource.
func (m *Manager) UserID() (int64, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.user == nil {
		return 0, false
	}
	return m.user.ID, true
}

// Token implementa apiclient.SessionSource.
func (m *Manager) Token() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token
}

func (m *Manager) setLocked(u apiclient.User, token string) {
	m.user = &u
	m.token = token
	m.perms = access.Resolve(access.Role(u.Role))
}

func (m *Manager) clearLocked() {
	m.stopLocked()
	m.tearing = false
	m.user = nil
	m.token = ""
	m.perms = access.Baseline
}

func (m *Manager) persistLocked() {
	raw, err := json.Marshal(snapshot{User: *m.user, Token: m.token})
	if err != nil {
		m.log.Error().Err(err).Msg("serializar sessão")
		return
	}
	if err := m.store.Save(raw); err != nil {
		m.log.Error().Err(err).Msg("persistir sessão")
	}
}

// armLocked (re)inicia o único timer. gen invalida disparos de timers antigos.
func (m *Manager) armLocked() {
	m.stopLocked()
	if m.closed || m.idle <= 0 {
		return
	}
	gen := m.gen
	m.timer = time.AfterFunc(m.idle, func() { m.expire(gen) })
}

func (m *Manager) stopLocked() {
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
	m.gen++
}

func (m *Manager) expire(gen uint64) {
	m.mu.Lock()
	if gen != m.gen || m.user == nil || m.closed {
		m.mu.Unlock()
		return
	}
	m.timer = nil
	m.gen++
	m.mu.Unlock()

	m.teardown(context.Background(), "inatividade")
}

func (m *Manager) redirect(path string) {
	if m.nav != nil {
		m.nav.Redirect(path)
	}
}

// mergeUser sobrepõe em base os campos preenchidos em upd. As flags de
// primeiro acesso e senha provisória sempre vêm do servidor.
func mergeUser(base, upd apiclient.User) apiclient.User {
	if upd.ID != 0 {
		base.ID = upd.ID
	}
	if upd.Name != "" {
		base.Name = upd.Name
	}
	if upd.Email != "" {
		base.Email = upd.Email
	}
	if upd.CPF != "" {
		base.CPF = upd.CPF
	}
	if upd.Phone != "" {
		base.Phone = upd.Phone
	}
	if upd.Role != "" {
		base.Role = upd.Role
	}
	if upd.Status != "" {
		base.Status = upd.Status
	}
	if upd.Region != "" {
		base.Region = upd.Region
	}
	if upd.City != "" {
		base.City = upd.City
	}
	if upd.CEP != "" {
		base.CEP = upd.CEP
	}
	if upd.Specialty != "" {
		base.Specialty = upd.Specialty
	}
	if !upd.CreatedAt.IsZero() {
		base.CreatedAt = upd.CreatedAt
	}
	if !upd.UpdatedAt.IsZero() {
		base.UpdatedAt = upd.UpdatedAt
	}
	base.FirstAccess = upd.FirstAccess
	base.ProvisionalPassword = upd.ProvisionalPassword
	return base
}
