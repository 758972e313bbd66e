package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Config agrupa a configuração da aplicação (lida via Viper do ambiente e, opcionalmente, de arquivo).
type Config struct {
	App     AppConfig
	DB      DBConfig
	JWT     JWTConfig
	HTTP    HTTPConfig
	Redis   RedisConfig
	Web     WebConfig
	Metrics MetricsConfig
	Admin   AdminConfig
}

// AppConfig configuração geral.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// DBConfig configuração do PostgreSQL.
// Se DatabaseURL não estiver vazio, é usado como connection string completa.
type DBConfig struct {
	Driver      string // postgres (padrão) ou memory
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
	AutoMigrate bool // aplica as migrations do goose na subida
	MaxConns    int32
	MinConns    int32
}

// Drivers de persistência aceitos.
const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// ConnectionString devolve DATABASE_URL se definido; senão o DSN montado.
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN monta a connection string com URL encoding para caracteres especiais na senha.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}
	return u.String()
}

// JWTConfig configuração do token de sessão.
type JWTConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
}

// HTTPConfig configuração do servidor HTTP.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devolve host:port.
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// RedisConfig guarda a lista de tokens revogados. Addr vazio = store em memória.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// Enabled informa se o Redis está configurado.
func (c RedisConfig) Enabled() bool { return c.Addr != "" }

// WebConfig controla o shell da SPA e o cookie de sessão.
type WebConfig struct {
	IndexPath    string // index.html da SPA
	StaticDir    string // assets (js/css)
	CookieName   string
	CookieSecure bool
}

// MetricsConfig expõe /metrics.
type MetricsConfig struct {
	Enabled bool
	Token   string // se definido, exige Authorization: Bearer <token>
}

// AdminConfig administrador criado na subida quando o e-mail ainda não existe.
// Sem ADMIN_EMAIL nada é criado.
type AdminConfig struct {
	Name     string
	Email    string
	CPF      string
	Phone    string
	Password string
}

// Enabled informa se o bootstrap do administrador está configurado.
func (c AdminConfig) Enabled() bool { return c.Email != "" }

// Load lê a configuração das variáveis de ambiente (e opcionalmente de arquivo).
// As env vars têm prioridade. Nomes esperados: APP_ENV, DB_HOST, JWT_SECRET, REDIS_ADDR etc.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // arquivo opcional

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "gestao-profissionais"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		DB: DBConfig{
			Driver:      strings.ToLower(getString(v, "DB_DRIVER", DriverPostgres)),
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "gestao_profissionais"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
			AutoMigrate: getBool(v, "DB_AUTO_MIGRATE", true),
			MaxConns:    int32(getInt(v, "DB_MAX_CONNS", 10)),
			MinConns:    int32(getInt(v, "DB_MIN_CONNS", 1)),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 480),
			Issuer:     getString(v, "JWT_ISSUER", "gestao-profissionais"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		Redis: RedisConfig{
			Addr:     getString(v, "REDIS_ADDR", ""),
			Password: getString(v, "REDIS_PASSWORD", ""),
			DB:       getInt(v, "REDIS_DB", 0),
		},
		Web: WebConfig{
			IndexPath:    getString(v, "WEB_INDEX_PATH", "./web/dist/index.html"),
			StaticDir:    getString(v, "WEB_STATIC_DIR", "./web/dist/assets"),
			CookieName:   getString(v, "SESSION_COOKIE_NAME", "sessao"),
			CookieSecure: getBool(v, "SESSION_COOKIE_SECURE", false),
		},
		Metrics: MetricsConfig{
			Enabled: getBool(v, "METRICS_ENABLED", true),
			Token:   getString(v, "METRICS_TOKEN", ""),
		},
		Admin: AdminConfig{
			Name:     getString(v, "ADMIN_NAME", "Administrador do Sistema"),
			Email:    getString(v, "ADMIN_EMAIL", ""),
			CPF:      getString(v, "ADMIN_CPF", ""),
			Phone:    getString(v, "ADMIN_PHONE", ""),
			Password: getString(v, "ADMIN_PASSWORD", ""),
		},
	}

	if cfg.JWT.Secret == "" {
		return nil, fmt.Errorf("config: JWT_SECRET é obrigatório")
	}
	if cfg.DB.MaxConns < 1 || cfg.DB.MinConns < 0 || cfg.DB.MinConns > cfg.DB.MaxConns {
		return nil, fmt.Errorf("config: DB_MAX_CONNS/DB_MIN_CONNS inválidos (%d/%d)", cfg.DB.MaxConns, cfg.DB.MinConns)
	}
	if cfg.DB.Driver != DriverPostgres && cfg.DB.Driver != DriverMemory {
		return nil, fmt.Errorf("config: DB_DRIVER inválido: %q", cfg.DB.Driver)
	}
	return cfg, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(v.GetString(key))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}

func getBool(v *viper.Viper, key string, def bool) bool {
	if v.IsSet(key) {
		return v.GetBool(key)
	}
	return def
}
