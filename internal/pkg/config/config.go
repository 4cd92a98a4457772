package config

import (
	"context"
	"errors"
	"time"

	"github.com/sethvargo/go-envconfig"
)

const (
	EnvDevelopment = "development"
	EnvTest        = "test"

	devSecret      = "secret-dev"
	devEmailSecret = "email-secret-dev"
)

type Config struct {
	Port     string `env:"PORT,      default=3001"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Auth     AuthConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	Mongo    MongoConfig
	Mail     MailConfig
}

type AuthConfig struct {
	SecretKey string `env:"SECRET_KEY"`
	// TokenTTL of zero issues tokens that never expire.
	TokenTTL         time.Duration `env:"TOKEN_TTL,          default=24h"`
	BcryptWorkFactor int           `env:"BCRYPT_WORK_FACTOR, default=13"`
	EmailSecretKey   string        `env:"EMAIL_SECRET_KEY"`
	EmailTokenTTL    time.Duration `env:"EMAIL_TOKEN_TTL,    default=24h"`
	VerificationURL  string        `env:"VERIFICATION_URL,   default=http://localhost:5173/email-verification/"`
}

type PostgresConfig struct {
	URL     string `env:"DATABASE_URL,     default=postgres://localhost:5432/deadeye_laserworks?sslmode=disable"`
	Migrate bool   `env:"DATABASE_MIGRATE, default=true"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// MongoConfig points at the audit trail. An empty URI disables auditing.
type MongoConfig struct {
	URI      string `env:"MONGO_URI"`
	Database string `env:"MONGO_DB, default=deadeye_laserworks"`
}

// MailConfig selects the mail backend. Without an API key mail is only logged.
type MailConfig struct {
	From         string `env:"MAIL_FROM,      default=Deadeye Laserworks <no-reply@deadeyelaserworks.com>"`
	ResendAPIKey string `env:"RESEND_API_KEY"`
	Workers      int    `env:"MAIL_WORKERS,   default=2"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// IsDevelopment reports whether the process runs outside production.
func (c *Config) IsDevelopment() bool {
	return c.Env == EnvDevelopment || c.Env == EnvTest
}

// validate fills development secrets and rejects missing ones elsewhere.
func (c *Config) validate() error {
	if c.Auth.SecretKey == "" {
		if !c.IsDevelopment() {
			return errors.New("config: SECRET_KEY is required")
		}
		c.Auth.SecretKey = devSecret
	}
	if c.Auth.EmailSecretKey == "" {
		if !c.IsDevelopment() {
			return errors.New("config: EMAIL_SECRET_KEY is required")
		}
		c.Auth.EmailSecretKey = devEmailSecret
	}
	if c.Auth.TokenTTL < 0 {
		return errors.New("config: TOKEN_TTL must not be negative")
	}
	return nil
}
