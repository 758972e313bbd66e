package http

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/gestao-profissionais/internal/application/dto"
)

var processStartedAt = time.Now()

// Metrics coletores Prometheus da API. Métodos aceitam receptor nil.
type Metrics struct {
	registry *prometheus.Registry
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	logins   *prometheus.CounterVec
}

// NewMetrics cria um registry próprio com coletores de runtime e da API.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	reg.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "gp_uptime_seconds",
		Help: "Tempo de atividade do processo em segundos.",
	}, func() float64 {
		return time.Since(processStartedAt).Seconds()
	}))

	m := &Metrics{
		registry: reg,
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gp_http_requests_total",
			Help: "Requisições HTTP por método, rota e status.",
		}, []string{"method", "route", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "gp_http_request_duration_seconds",
			Help:    "Duração das requisições HTTP.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gp_logins_total",
			Help: "Tentativas de login por resultado.",
		}, []string{"result"}),
	}
	reg.MustRegister(m.requests, m.duration, m.logins)
	return m
}

// Middleware registra contagem e duração usando o padrão da rota (sem IDs).
func (m *Metrics) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if m == nil {
			return c.Next()
		}
		start := time.Now()
		err := c.Next()
		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		route := c.Route().Path
		m.requests.WithLabelValues(c.Method(), route, strconv.Itoa(status)).Inc()
		m.duration.WithLabelValues(c.Method(), route).Observe(time.Since(start).Seconds())
		return err
	}
}

// ObserveLogin conta um login bem-sucedido ou falho.
func (m *Metrics) ObserveLogin(ok bool) {
	if m == nil {
		return
	}
	result := "falha"
	if ok {
		result = "sucesso"
	}
	m.logins.WithLabelValues(result).Inc()
}

// Handler expõe /metrics. Com token configurado, exige Authorization: Bearer <token>.
func (m *Metrics) Handler(token string) fiber.Handler {
	h := adaptor.HTTPHandler(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
	token = strings.TrimSpace(token)
	return func(c *fiber.Ctx) error {
		if token != "" && c.Get(fiber.HeaderAuthorization) != "Bearer "+token {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "unauthorized"})
		}
		return h(c)
	}
}
