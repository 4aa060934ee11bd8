package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// DefaultBasePath is the API path prefix used when none is configured.
// It can be overridden at build time:
//
//	go build -ldflags "-X github.com/lupon/admin-client/internal/infrastructure/config.DefaultBasePath=/v2/api"
var DefaultBasePath = "/api"

// Storage drivers
const (
	StorageMemory   = "memory"
	StorageSQLite   = "sqlite"
	StoragePostgres = "postgres"
	StorageRedis    = "redis"
)

// Config holds all client configuration
type Config struct {
	App     AppConfig
	API     APIConfig
	Auth    AuthConfig
	Storage StorageConfig
	Cache   CacheConfig
	Log     LogConfig
	Proxy   ProxyConfig
}

// AppConfig holds application-specific settings
type AppConfig struct {
	Name string
	Env  string
}

// APIConfig holds settings for the backend REST API
type APIConfig struct {
	BaseURL   string        // scheme://host[:port] of the backend
	BasePath  string        // path prefix prepended to every resource path
	Timeout   time.Duration // per-request timeout
	UserAgent string
	RateLimit float64 // requests per second, 0 disables limiting
	RateBurst int
}

// AuthConfig holds token endpoint settings
type AuthConfig struct {
	TokenEndpoint   string
	RefreshEndpoint string
}

// StorageConfig selects where persisted client state lives
type StorageConfig struct {
	Driver              string // memory, sqlite, postgres, redis
	SQLitePath          string
	PostgresDSN         string
	Redis               RedisConfig
	KeyPrefix           string // namespace for redis keys
	AllowMemoryFallback bool
	TraceEnabled        bool // trace gorm queries with otelgorm
}

// RedisConfig holds Redis connection settings
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// CacheConfig holds cache settings
type CacheConfig struct {
	ReferenceTTL time.Duration // TTL for persisted reference data (clientes, productos)
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

// ProxyConfig holds the development reverse proxy settings
type ProxyConfig struct {
	Listen string
	Target string
}

// Load loads configuration from a TOML file and environment variables.
// Priority (highest to lowest):
// 1. Environment variables with LUPON_ prefix (e.g., LUPON_API_BASE_URL)
// 2. lupon.toml (configFile when given, otherwise searched in ., $HOME/.lupon, /etc/lupon)
// 3. Built-in defaults
func Load(configFile string) (*Config, error) {
	v := viper.New()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("lupon")
		v.SetConfigType("toml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.lupon")
		v.AddConfigPath("/etc/lupon")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, we'll use defaults and env vars
	}

	v.SetEnvPrefix("LUPON")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("storage.allow_memory_fallback", true)

	cfg := &Config{
		App: AppConfig{
			Name: v.GetString("app.name"),
			Env:  v.GetString("app.env"),
		},
		API: APIConfig{
			BaseURL:   v.GetString("api.base_url"),
			BasePath:  v.GetString("api.base_path"),
			Timeout:   v.GetDuration("api.timeout"),
			UserAgent: v.GetString("api.user_agent"),
			RateLimit: v.GetFloat64("api.rate_limit"),
			RateBurst: v.GetInt("api.rate_burst"),
		},
		Auth: AuthConfig{
			TokenEndpoint:   v.GetString("auth.token_endpoint"),
			RefreshEndpoint: v.GetString("auth.refresh_endpoint"),
		},
		Storage: StorageConfig{
			Driver:      v.GetString("storage.driver"),
			SQLitePath:  v.GetString("storage.sqlite_path"),
			PostgresDSN: v.GetString("storage.postgres_dsn"),
			Redis: RedisConfig{
				Host:     v.GetString("storage.redis.host"),
				Port:     v.GetInt("storage.redis.port"),
				Password: v.GetString("storage.redis.password"),
				DB:       v.GetInt("storage.redis.db"),
			},
			KeyPrefix:           v.GetString("storage.key_prefix"),
			AllowMemoryFallback: v.GetBool("storage.allow_memory_fallback"),
			TraceEnabled:        v.GetBool("storage.trace_enabled"),
		},
		Cache: CacheConfig{
			ReferenceTTL: v.GetDuration("cache.reference_ttl"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		Proxy: ProxyConfig{
			Listen: v.GetString("proxy.listen"),
			Target: v.GetString("proxy.target"),
		},
	}

	applyDefaults(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Default returns a configuration populated only with built-in defaults
func Default() *Config {
	cfg := &Config{Storage: StorageConfig{AllowMemoryFallback: true}}
	applyDefaults(cfg)
	return cfg
}

// applyDefaults sets default values for any empty config fields
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "lupon-client"
	}
	if cfg.App.Env == "" {
		cfg.App.Env = "development"
	}
	if cfg.API.BaseURL == "" {
		cfg.API.BaseURL = "http://127.0.0.1:8000"
	}
	if cfg.API.BasePath == "" {
		cfg.API.BasePath = DefaultBasePath
	}
	if cfg.API.Timeout == 0 {
		cfg.API.Timeout = 30 * time.Second
	}
	if cfg.API.UserAgent == "" {
		cfg.API.UserAgent = "lupon-client/1.0"
	}
	if cfg.API.RateLimit > 0 && cfg.API.RateBurst == 0 {
		cfg.API.RateBurst = 1
	}
	if cfg.Auth.TokenEndpoint == "" {
		cfg.Auth.TokenEndpoint = "/token/"
	}
	if cfg.Auth.RefreshEndpoint == "" {
		cfg.Auth.RefreshEndpoint = "/token/refresh/"
	}
	if cfg.Storage.Driver == "" {
		cfg.Storage.Driver = StorageSQLite
	}
	if cfg.Storage.SQLitePath == "" {
		cfg.Storage.SQLitePath = "lupon-state.db"
	}
	if cfg.Storage.Redis.Host == "" {
		cfg.Storage.Redis.Host = "localhost"
	}
	if cfg.Storage.Redis.Port == 0 {
		cfg.Storage.Redis.Port = 6379
	}
	if cfg.Storage.KeyPrefix == "" {
		cfg.Storage.KeyPrefix = "lupon:"
	}
	if cfg.Cache.ReferenceTTL == 0 {
		cfg.Cache.ReferenceTTL = 24 * time.Hour
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
	if cfg.Log.Output == "" {
		cfg.Log.Output = "stderr"
	}
	if cfg.Proxy.Listen == "" {
		cfg.Proxy.Listen = ":5173"
	}
	if cfg.Proxy.Target == "" {
		cfg.Proxy.Target = cfg.API.BaseURL
	}
}

// validate performs validation on the configuration
func (c *Config) validate() error {
	u, err := url.Parse(c.API.BaseURL)
	if err != nil {
		return fmt.Errorf("api.base_url is invalid: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("api.base_url must use http or https, got %q", c.API.BaseURL)
	}
	if !strings.HasPrefix(c.API.BasePath, "/") {
		return fmt.Errorf("api.base_path must start with '/', got %q", c.API.BasePath)
	}
	if c.API.Timeout < 0 {
		return fmt.Errorf("api.timeout cannot be negative")
	}
	if c.API.RateLimit < 0 {
		return fmt.Errorf("api.rate_limit cannot be negative")
	}

	switch c.Storage.Driver {
	case StorageMemory, StorageSQLite, StorageRedis:
	case StoragePostgres:
		if c.Storage.PostgresDSN == "" {
			return fmt.Errorf("storage.postgres_dsn is required for the postgres driver")
		}
	default:
		return fmt.Errorf("storage.driver must be one of memory, sqlite, postgres, redis; got %q", c.Storage.Driver)
	}

	if c.Cache.ReferenceTTL < 0 {
		return fmt.Errorf("cache.reference_ttl cannot be negative")
	}

	return nil
}

// Addr returns the host:port address of the Redis server
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// APIRoot returns the base URL joined with the base path, without a trailing slash
func (a APIConfig) APIRoot() string {
	return strings.TrimRight(a.BaseURL, "/") + "/" + strings.Trim(a.BasePath, "/")
}
