package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Store       StoreConfig
	Redis       RedisConfig
	CORS        CORSConfig
	Log         LogConfig
	Preferences PreferencesConfig
	Auth        AuthConfig
	Views       ViewsConfig
	Exports     ExportsConfig
	Cache       CacheConfig
}

// StoreConfig points at the remote REST collection host.
type StoreConfig struct {
	BaseURL string
	Timeout time.Duration
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// PreferencesConfig controls where theme and auth flags are persisted.
type PreferencesConfig struct {
	Key          string
	DefaultTheme string
}

// AuthConfig gates record routes behind the isAuthenticated flag.
type AuthConfig struct {
	GateEnabled bool
}

// ViewsConfig tunes list view sessions and their background loads.
type ViewsConfig struct {
	ItemsPerPage  int
	IdleTTL       time.Duration
	SweepInterval time.Duration
	LoaderWorkers int
	LoaderBuffer  int
}

// ExportsConfig toggles CSV/PDF export of a view.
type ExportsConfig struct {
	Enabled bool
}

// CacheConfig controls the Redis read-through cache of record details.
type CacheConfig struct {
	Enabled bool
	TTL     time.Duration
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Store = StoreConfig{
		BaseURL: strings.TrimRight(v.GetString("STORE_BASE_URL"), "/"),
		Timeout: parseDuration(v.GetString("STORE_TIMEOUT"), 10*time.Second),
	}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Preferences = PreferencesConfig{
		Key:          v.GetString("PREFERENCES_KEY"),
		DefaultTheme: v.GetString("PREFERENCES_DEFAULT_THEME"),
	}

	cfg.Auth = AuthConfig{
		GateEnabled: v.GetBool("AUTH_GATE_ENABLED"),
	}

	perPage := v.GetInt("VIEWS_ITEMS_PER_PAGE")
	if perPage <= 0 {
		perPage = 8
	}
	cfg.Views = ViewsConfig{
		ItemsPerPage:  perPage,
		IdleTTL:       parseDuration(v.GetString("VIEWS_IDLE_TTL"), 30*time.Minute),
		SweepInterval: parseDuration(v.GetString("VIEWS_SWEEP_INTERVAL"), time.Minute),
		LoaderWorkers: v.GetInt("VIEWS_LOADER_WORKERS"),
		LoaderBuffer:  v.GetInt("VIEWS_LOADER_BUFFER"),
	}

	cfg.Exports = ExportsConfig{
		Enabled: v.GetBool("ENABLE_EXPORTS"),
	}

	cfg.Cache = CacheConfig{
		Enabled: v.GetBool("ENABLE_RECORD_CACHE"),
		TTL:     parseDuration(v.GetString("RECORD_CACHE_TTL"), time.Minute),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("STORE_BASE_URL", "https://692376893ad095fb84709f35.mockapi.io")
	v.SetDefault("STORE_TIMEOUT", "10s")

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("PREFERENCES_KEY", "dashboard:preferences")
	v.SetDefault("PREFERENCES_DEFAULT_THEME", "light")
	v.SetDefault("AUTH_GATE_ENABLED", true)

	v.SetDefault("VIEWS_ITEMS_PER_PAGE", 8)
	v.SetDefault("VIEWS_IDLE_TTL", "30m")
	v.SetDefault("VIEWS_SWEEP_INTERVAL", "1m")
	v.SetDefault("VIEWS_LOADER_WORKERS", 4)
	v.SetDefault("VIEWS_LOADER_BUFFER", 32)

	v.SetDefault("ENABLE_EXPORTS", true)
	v.SetDefault("ENABLE_RECORD_CACHE", true)
	v.SetDefault("RECORD_CACHE_TTL", "1m")
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
