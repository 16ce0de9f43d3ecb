package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App       AppConfig
	Store     StoreConfig
	JWT       JWTConfig
	Password  PasswordConfig
	Session   SessionConfig
	Presence  PresenceConfig
	Analytics AnalyticsConfig
	Catalog   CatalogConfig
	Publish   PublishConfig
	CORS      CORSConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"EMPRENDIA_APP_ENV" default:"dev"`
	Port         string `envconfig:"EMPRENDIA_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"EMPRENDIA_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"EMPRENDIA_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type StoreConfig struct {
	DataDir     string        `envconfig:"EMPRENDIA_STORE_DATA_DIR" default:"data"`
	FileName    string        `envconfig:"EMPRENDIA_STORE_FILE_NAME" default:"marketplace.json"`
	LockTimeout time.Duration `envconfig:"EMPRENDIA_STORE_LOCK_TIMEOUT" default:"10s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"EMPRENDIA_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"EMPRENDIA_JWT_ISSUER" default:"emprendia"`
	ExpirationMinutes int    `envconfig:"EMPRENDIA_JWT_EXPIRATION_MINUTES" default:"720"`
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"EMPRENDIA_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"EMPRENDIA_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"EMPRENDIA_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"EMPRENDIA_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"EMPRENDIA_ARGON_KEY_LEN" default:"32"`

	MinLength int `envconfig:"EMPRENDIA_PASSWORD_MIN_LENGTH" default:"8"`

	ResetTokenTTLMinutes int `envconfig:"EMPRENDIA_RESET_TOKEN_TTL_MINUTES" default:"30"`
}

// ResetTokenTTL returns the reset token validity window.
func (p PasswordConfig) ResetTokenTTL() time.Duration {
	if p.ResetTokenTTLMinutes <= 0 {
		return 30 * time.Minute
	}
	return time.Duration(p.ResetTokenTTLMinutes) * time.Minute
}

type SessionConfig struct {
	TTL           time.Duration `envconfig:"EMPRENDIA_SESSION_TTL" default:"12h"`
	SweepInterval time.Duration `envconfig:"EMPRENDIA_SESSION_SWEEP_INTERVAL" default:"5m"`
}

type PresenceConfig struct {
	TTLSeconds int `envconfig:"EMPRENDIA_PRESENCE_TTL_SECONDS" default:"90"`
}

// TTL returns the presence window as a duration.
func (p PresenceConfig) TTL() time.Duration {
	if p.TTLSeconds <= 0 {
		return 90 * time.Second
	}
	return time.Duration(p.TTLSeconds) * time.Second
}

type AnalyticsConfig struct {
	MaxEvents       int `envconfig:"EMPRENDIA_ANALYTICS_MAX_EVENTS" default:"5000"`
	MaxQueryLength  int `envconfig:"EMPRENDIA_ANALYTICS_MAX_QUERY_LENGTH" default:"120"`
	TrendWindowDays int `envconfig:"EMPRENDIA_ANALYTICS_TREND_WINDOW_DAYS" default:"30"`
}

type CatalogConfig struct {
	PageSize    int `envconfig:"EMPRENDIA_CATALOG_PAGE_SIZE" default:"9"`
	MaxFeatured int `envconfig:"EMPRENDIA_CATALOG_MAX_FEATURED" default:"12"`
}

type PublishConfig struct {
	DefaultMaxProducts int `envconfig:"EMPRENDIA_PUBLISH_DEFAULT_MAX_PRODUCTS" default:"5"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"EMPRENDIA_CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`
}
