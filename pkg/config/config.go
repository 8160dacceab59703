package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const EnvPrefix = "INVOICEHUB"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	Uploads      UploadsConfig
	CORS         CORSConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"INVOICEHUB_APP_ENV" default:"dev"`
	Port         string `envconfig:"INVOICEHUB_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"INVOICEHUB_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"INVOICEHUB_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN string `envconfig:"INVOICEHUB_DB_DSN"`

	Host     string `envconfig:"INVOICEHUB_DB_HOST"`
	Port     int    `envconfig:"INVOICEHUB_DB_PORT" default:"5432"`
	User     string `envconfig:"INVOICEHUB_DB_USER"`
	Password string `envconfig:"INVOICEHUB_DB_PASSWORD"`
	Name     string `envconfig:"INVOICEHUB_DB_NAME"`
	SSLMode  string `envconfig:"INVOICEHUB_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"INVOICEHUB_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"INVOICEHUB_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"INVOICEHUB_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"INVOICEHUB_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// ensureDSN assembles a postgres DSN from the discrete fields when one was not
// provided directly.
func (d *DBConfig) ensureDSN() error {
	if d.DSN != "" {
		return nil
	}
	if d.Host == "" || d.User == "" || d.Name == "" {
		return fmt.Errorf("db config requires either INVOICEHUB_DB_DSN or host/user/name fields")
	}
	d.DSN = fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode,
	)
	return nil
}

type RedisConfig struct {
	URL          string        `envconfig:"INVOICEHUB_REDIS_URL"`
	Address      string        `envconfig:"INVOICEHUB_REDIS_ADDR"`
	Password     string        `envconfig:"INVOICEHUB_REDIS_PASSWORD"`
	DB           int           `envconfig:"INVOICEHUB_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"INVOICEHUB_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"INVOICEHUB_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"INVOICEHUB_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"INVOICEHUB_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"INVOICEHUB_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// Enabled reports whether a redis endpoint was configured at all. Idempotency
// replay protection is skipped when it is not.
func (r RedisConfig) Enabled() bool {
	return r.URL != "" || r.Address != ""
}

type UploadsConfig struct {
	Dir            string `envconfig:"INVOICEHUB_UPLOADS_DIR" default:"uploads"`
	PublicPath     string `envconfig:"INVOICEHUB_UPLOADS_PUBLIC_PATH" default:"/uploads"`
	MaxUploadBytes int64  `envconfig:"INVOICEHUB_UPLOADS_MAX_BYTES" default:"10485760"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"INVOICEHUB_CORS_ALLOWED_ORIGINS" default:"http://127.0.0.1:5173,http://localhost:5173"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"INVOICEHUB_FEATURE_AUTO_MIGRATE" default:"true"`
}
