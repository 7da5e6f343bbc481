package config

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port            string        `env:"PORT,             default=8080"`
	Env             string        `env:"ENV,              default=development"`
	LogLevel        string        `env:"LOG_LEVEL,        default=info"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT, default=15s"`

	Auth       AuthConfig
	Store      StoreConfig
	Attachment AttachmentConfig

	Mongo MongoConfig
	Redis RedisConfig
	SQL   SQLConfig
}

// AuthConfig enables bearer-token protection of the /v1 API when JWTSecret
// is set.
type AuthConfig struct {
	JWTSecret         string        `env:"JWT_SECRET"`
	AdminUsername     string        `env:"ADMIN_USERNAME,      default=admin"`
	AdminPasswordHash string        `env:"ADMIN_PASSWORD_HASH"`
	TokenTTL          time.Duration `env:"TOKEN_TTL,           default=12h"`
}

type StoreConfig struct {
	Driver     string `env:"STORE_DRIVER,     default=sqlite"`
	KeyPrefix  string `env:"STORE_KEY_PREFIX, default=crud_app_"`
	SeedSample bool   `env:"SEED_SAMPLE_DATA, default=true"`
}

type AttachmentConfig struct {
	MaxBytes int64 `env:"ATTACHMENT_MAX_BYTES, default=5242880"`
}

type MongoConfig struct {
	URI        string `env:"MONGO_URI,        default=mongodb://localhost:27017"`
	Database   string `env:"MONGO_DB,         default=record_admin"`
	Collection string `env:"MONGO_COLLECTION, default=kv_entries"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

type SQLConfig struct {
	DSN string `env:"SQL_DSN, default=record-admin.db"`
}

var drivers = map[string]struct{}{
	"memory": {}, "redis": {}, "mongo": {}, "sqlite": {}, "postgres": {},
}

// Load reads configuration from environment variables using go-envconfig.
// A .env file in the working directory, when present, is loaded first and
// never overrides variables that are already set.
func Load(ctx context.Context) (*Config, error) {
	_ = godotenv.Load()
	return LoadFrom(ctx, envconfig.OsLookuper())
}

// LoadFrom reads configuration through an arbitrary lookuper.
func LoadFrom(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks cross-field constraints envconfig cannot express.
func (c *Config) Validate() error {
	if _, ok := drivers[c.Store.Driver]; !ok {
		return fmt.Errorf("config: unknown STORE_DRIVER %q", c.Store.Driver)
	}
	if c.Auth.JWTSecret != "" && c.Auth.AdminPasswordHash == "" {
		return errors.New("config: ADMIN_PASSWORD_HASH is required when JWT_SECRET is set")
	}
	if c.Attachment.MaxBytes <= 0 {
		return errors.New("config: ATTACHMENT_MAX_BYTES must be positive")
	}
	return nil
}

// AuthEnabled reports whether the /v1 API requires a bearer token.
func (c *Config) AuthEnabled() bool {
	return c.Auth.JWTSecret != ""
}

// Development reports whether the service runs with ENV=development.
func (c *Config) Development() bool {
	return c.Env == "development"
}
