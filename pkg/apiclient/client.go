// Package apiclient é o cliente HTTP da API de profissionais.
//
// Toda chamada devolve um Result: {OK: true, Data} ou {OK: false, Error}.
// Falhas de rede, timeout e respostas não-2xx viram mensagens legíveis;
// nenhuma chamada devolve o erro bruto do transporte.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// DefaultTimeout é o limite por requisição.
const DefaultTimeout = 15 * time.Second

// HeaderUserID identifica o usuário da sessão em cada chamada.
const HeaderUserID = "X-User-Id"

// Limites de corpo de resposta; acima deles a chamada falha com MsgTooLarge.
const (
	maxBodyBytes            = 10 << 20
	DefaultMaxDownloadBytes = 100 << 20
)

// Mensagens de falha fora do HTTP.
const (
	MsgTimeout         = "A requisição demorou muito para responder. Verifique sua conexão e tente novamente."
	MsgNetwork         = "Não foi possível conectar ao servidor. Verifique sua conexão e tente novamente."
	MsgGeneric         = "Ocorreu um erro inesperado. Tente novamente."
	MsgInvalidResponse = "Resposta inválida do servidor."
	MsgTooLarge        = "A resposta do servidor excede o tamanho permitido."
)

// statusMessages é usada quando o corpo de erro não traz mensagem.
var statusMessages = map[int]string{
	http.StatusBadRequest:          "Dados inválidos. Verifique as informações enviadas.",
	http.StatusUnauthorized:        "Sessão expirada ou credenciais inválidas. Faça login novamente.",
	http.StatusForbidden:           "Você não tem permissão para realizar esta ação.",
	http.StatusNotFound:            "Recurso não encontrado.",
	http.StatusConflict:            "Já existe um registro com estes dados.",
	http.StatusUnprocessableEntity: "Não foi possível processar os dados enviados.",
	http.StatusInternalServerError: "Erro interno do servidor. Tente novamente mais tarde.",
	http.StatusBadGateway:          "Servidor indisponível no momento. Tente novamente mais tarde.",
	http.StatusServiceUnavailable:  "Serviço temporariamente indisponível. Tente novamente mais tarde.",
}

// StatusMessage devolve a mensagem padrão do status, ou MsgGeneric.
func StatusMessage(status int) string {
	if msg, ok := statusMessages[status]; ok {
		return msg
	}
	return MsgGeneric
}

// APIError é o formato uniforme de erro. Status 0 indica falha antes de
// haver resposta HTTP.
type APIError struct {
	Message string          `json:"message"`
	Status  int             `json:"status"`
	Details json.RawMessage `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	if e.Status == 0 {
		return e.Message
	}
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

// Result é o retorno de toda chamada.
type Result[T any] struct {
	OK    bool
	Data  T
	Error *APIError
}

// Err devolve o erro como error (nil em sucesso), para quem prefere o idioma Go.
func (r Result[T]) Err() error {
	if r.OK || r.Error == nil {
		return nil
	}
	return r.Error
}

func fail[T any](e *APIError) Result[T] { return Result[T]{Error: e} }

// SessionSource fornece a identidade da sessão atual. A implementação
// principal é *session.Manager.
type SessionSource interface {
	UserID() (int64, bool)
	Token() string
}

// Client fala com a API.
type Client struct {
	baseURL string
	http    *http.Client
	session SessionSource
	timeout time.Duration
	maxDown int64
	log     zerolog.Logger
}

// Option configura o Client.
type Option func(*Client)

// WithHTTPClient troca o http.Client (útil em testes).
func WithHTTPClient(hc *http.Client) Option { return func(c *Client) { c.http = hc } }

// WithSession liga o cliente à sessão para injetar o cabeçalho de usuário.
func WithSession(s SessionSource) Option { return func(c *Client) { c.session = s } }

// WithTimeout troca o limite por requisição.
func WithTimeout(d time.Duration) Option { return func(c *Client) { c.timeout = d } }

// WithMaxDownloadBytes troca o limite de tamanho das exportações.
func WithMaxDownloadBytes(n int64) Option { return func(c *Client) { c.maxDown = n } }

// WithLogger define o logger.
func WithLogger(l zerolog.Logger) Option { return func(c *Client) { c.log = l } }

// New constrói o cliente. baseURL inclui o prefixo da API, ex. http://localhost:8080/api.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		timeout: DefaultTimeout,
		maxDown: DefaultMaxDownloadBytes,
		log:     zerolog.Nop(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// SetSession liga a sessão depois da construção; o Manager precisa do
// Client e o Client da sessão.
func (c *Client) SetSession(s SessionSource) { c.session = s }

// Do executa uma chamada JSON e decodifica a resposta em T.
func Do[T any](ctx context.Context, c *Client, method, path string, body any) Result[T] {
	raw, _, apiErr := c.send(ctx, method, path, body, maxBodyBytes)
	if apiErr != nil {
		return fail[T](apiErr)
	}
	var out Result[T]
	out.OK = true
	if len(bytes.TrimSpace(raw)) == 0 {
		return out
	}
	if err := json.Unmarshal(raw, &out.Data); err != nil {
		c.log.Warn().Err(err).Str("path", path).Msg("resposta JSON inválida")
		return fail[T](&APIError{Message: MsgInvalidResponse, Status: http.StatusOK})
	}
	return out
}

// Download executa uma chamada cujo corpo não é JSON (exportações).
func Download(ctx context.Context, c *Client, path string) Result[File] {
	raw, header, apiErr := c.send(ctx, http.MethodGet, path, nil, c.maxDown)
	if apiErr != nil {
		return fail[File](apiErr)
	}
	return Result[File]{OK: true, Data: File{
		Name:        filenameFrom(header.Get("Content-Disposition")),
		ContentType: header.Get("Content-Type"),
		Body:        raw,
	}}
}

func (c *Client) send(ctx context.Context, method, path string, body any, limit int64) ([]byte, http.Header, *APIError) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, nil, &APIError{Message: MsgGeneric}
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, nil, &APIError{Message: MsgGeneric}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.session != nil {
		if id, ok := c.session.UserID(); ok {
			req.Header.Set(HeaderUserID, strconv.FormatInt(id, 10))
		}
		if tok := c.session.Token(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		apiErr := transportError(ctx, err)
		c.log.Warn().Err(err).Str("method", method).Str("path", path).Msg("falha de transporte")
		return nil, nil, apiErr
	}
	defer resp.Body.Close()

	// um byte a mais denuncia corpo acima do limite
	raw, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, nil, transportError(ctx, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, nil, responseError(resp.StatusCode, raw)
	}
	if int64(len(raw)) > limit {
		c.log.Warn().Str("method", method).Str("path", path).Int64("limite", limit).Msg("resposta acima do limite")
		return nil, nil, &APIError{Message: MsgTooLarge, Status: resp.StatusCode}
	}
	return raw, resp.Header, nil
}

func transportError(ctx context.Context, err error) *APIError {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) || ctx.Err() != nil {
		return &APIError{Message: MsgTimeout}
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return &APIError{Message: MsgTimeout}
	}
	return &APIError{Message: MsgNetwork}
}

// errorBody aceita tanto {"error": "..."} quanto {"message": "..."}.
type errorBody struct {
	Error   any             `json:"error"`
	Message string          `json:"message"`
	Details json.RawMessage `json:"details"`
}

func responseError(status int, raw []byte) *APIError {
	e := &APIError{Status: status}
	var body errorBody
	if len(raw) > 0 && json.Unmarshal(raw, &body) == nil {
		if s, ok := body.Error.(string); ok && strings.TrimSpace(s) != "" {
			e.Message = s
		} else if strings.TrimSpace(body.Message) != "" {
			e.Message = body.Message
		}
		if len(body.Details) > 0 && string(body.Details) != "null" {
			e.Details = body.Details
		}
	}
	if e.Message == "" {
		e.Message = StatusMessage(status)
	}
	return e
}

func filenameFrom(disposition string) string {
	const key = "filename="
	i := strings.Index(disposition, key)
	if i < 0 {
		return ""
	}
	name := disposition[i+len(key):]
	if j := strings.Index(name, ";"); j >= 0 {
		name = name[:j]
	}
	return strings.Trim(strings.TrimSpace(name), `"`)
}
