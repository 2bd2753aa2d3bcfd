package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App       AppConfig
	HTTP      HTTPConfig
	Backend   BackendConfig
	Session   SessionConfig
	DB        DBConfig
	Redis     RedisConfig
	Locale    LocaleConfig
	RateLimit RateLimitConfig
	Docs      DocsConfig
	Metrics   MetricsConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	ShopName string // nombre impreso en vistas y recibos
	LogLevel string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// BackendConfig API REST de la librería.
type BackendConfig struct {
	BaseURL string
	Timeout time.Duration
}

// Drivers de almacenamiento de sesión.
const (
	SessionMemory   = "memory"
	SessionRedis    = "redis"
	SessionPostgres = "postgres"
)

// SessionConfig sesión del navegador. La cookie es de sesión (sin Expires);
// Expiration es la inactividad máxima en el almacenamiento.
type SessionConfig struct {
	Driver     string
	CookieName string
	Expiration time.Duration
	Secure     bool
}

// DBConfig configuración de PostgreSQL (solo con Session.Driver = postgres).
// Si DatabaseURL no está vacío, se usa como connection string completo.
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
}

// ConnectionString devuelve el DSN a usar: DATABASE_URL si está definido, si no el construido con DSN().
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN devuelve el connection string para PostgreSQL con URL encoding para caracteres especiales.
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

// RedisConfig sesiones y rate limit de login.
type RedisConfig struct {
	URL      string
	PoolSize int
}

// Enabled indica si hay Redis configurado.
func (c RedisConfig) Enabled() bool { return c.URL != "" }

// LocaleConfig idioma de la interfaz y plan telefónico de la tienda.
type LocaleConfig struct {
	Lang        string
	CountryCode string
	PhoneDigits int
	Currency    string
}

// RateLimitConfig intentos de login por minuto y por IP (0 = sin límite).
type RateLimitConfig struct {
	LoginPerMinute int
}

// DocsConfig documentación OpenAPI servida en /docs.
type DocsConfig struct {
	Enabled  bool
	FilePath string
}

// MetricsConfig exposición de /metrics, sin autenticación. Apagado por defecto.
type MetricsConfig struct {
	Enabled bool
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, BACKEND_URL, SESSION_DRIVER, etc.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "bookshop-pos"),
			ShopName: getString(v, "SHOP_NAME", "Pahana Edu"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 3000),
		},
		Backend: BackendConfig{
			BaseURL: strings.TrimRight(getString(v, "BACKEND_URL", "http://localhost:8080/back_end/api/v1"), "/"),
			Timeout: getDuration(v, "BACKEND_TIMEOUT", 10*time.Second),
		},
		Session: SessionConfig{
			Driver:     strings.ToLower(getString(v, "SESSION_DRIVER", SessionMemory)),
			CookieName: getString(v, "SESSION_COOKIE", "bookshop_session"),
			Expiration: getDuration(v, "SESSION_EXPIRATION", 8*time.Hour),
			Secure:     getBool(v, "SESSION_SECURE", false),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "bookshop_pos"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			URL:      getString(v, "REDIS_URL", ""),
			PoolSize: getInt(v, "REDIS_POOL_SIZE", 10),
		},
		Locale: LocaleConfig{
			Lang:        getString(v, "LOCALE_LANG", "en"),
			CountryCode: getString(v, "LOCALE_COUNTRY_CODE", "+94"),
			PhoneDigits: getInt(v, "LOCALE_PHONE_DIGITS", 9),
			Currency:    getString(v, "LOCALE_CURRENCY", "Rs."),
		},
		RateLimit: RateLimitConfig{
			LoginPerMinute: getInt(v, "RATE_LIMIT_LOGIN_PER_MINUTE", 10),
		},
		Docs: DocsConfig{
			Enabled:  getBool(v, "DOCS_ENABLED", true),
			FilePath: getString(v, "DOCS_FILE", "./docs/swagger.json"),
		},
		Metrics: MetricsConfig{
			Enabled: getBool(v, "METRICS_ENABLED", false),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Session.Driver {
	case SessionMemory:
	case SessionRedis:
		if !c.Redis.Enabled() {
			return fmt.Errorf("config: SESSION_DRIVER=redis requiere REDIS_URL")
		}
	case SessionPostgres:
	default:
		return fmt.Errorf("config: SESSION_DRIVER desconocido %q", c.Session.Driver)
	}
	if _, err := url.ParseRequestURI(c.Backend.BaseURL); err != nil {
		return fmt.Errorf("config: BACKEND_URL inválida: %w", err)
	}
	if c.Locale.PhoneDigits <= 0 {
		return fmt.Errorf("config: LOCALE_PHONE_DIGITS debe ser positivo")
	}
	return nil
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
			n, err := strconv.Atoi(strings.TrimSpace(v.GetString(key)))
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
		b, err := strconv.ParseBool(strings.TrimSpace(v.GetString(key)))
		if err != nil {
			return def
		}
		return b
	}
	return def
}

// getDuration acepta "30s", "8h" o un entero en segundos.
func getDuration(v *viper.Viper, key string, def time.Duration) time.Duration {
	if !v.IsSet(key) {
		return def
	}
	raw := strings.TrimSpace(v.GetString(key))
	if n, err := strconv.Atoi(raw); err == nil {
		return time.Duration(n) * time.Second
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return def
}
