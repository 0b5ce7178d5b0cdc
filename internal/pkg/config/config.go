package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// minJWTSecretLen mirrors the HS256 key size; shorter secrets are refused.
const minJWTSecretLen = 32

type Config struct {
	Port     string `env:"PORT,      default=3001"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Auth     AuthConfig
	CORS     CORSConfig
	Postgres PostgresConfig
	Mongo    MongoConfig
	Redis    RedisConfig
	Audit    AuditConfig
}

type AuthConfig struct {
	JWTSecret    string        `env:"JWT_SECRET, required"`
	JWTExpiresIn time.Duration `env:"JWT_EXPIRES_IN, default=24h"`
	BcryptCost   int           `env:"BCRYPT_COST, default=10"`
}

type CORSConfig struct {
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS, default=http://localhost:3000,http://localhost:3001,https://frontend-marketplace-dawa.vercel.app"`
	FrontendURL    string   `env:"FRONTEND_URL"`
}

type PostgresConfig struct {
	DSN         string `env:"DATABASE_URL, required"`
	AutoMigrate bool   `env:"DB_AUTO_MIGRATE, default=true"`
}

// MongoConfig is optional; an empty URI disables persistence of the audit trail.
type MongoConfig struct {
	URI      string `env:"MONGO_URI"`
	Database string `env:"MONGO_DB, default=marketplace"`
}

// RedisConfig is optional; an empty address disables the catalog cache.
type RedisConfig struct {
	Addr     string        `env:"REDIS_ADDR"`
	Password string        `env:"REDIS_PASSWORD"`
	DB       int           `env:"REDIS_DB,  default=0"`
	CacheTTL time.Duration `env:"CACHE_TTL, default=5m"`
}

type AuditConfig struct {
	Workers int `env:"AUDIT_WORKERS, default=4"`
}

// IsProduction reports whether the service runs with ENV=production.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Origins returns the CORS allow-list including FRONTEND_URL when set.
func (c *Config) Origins() []string {
	origins := make([]string, 0, len(c.CORS.AllowedOrigins)+1)
	origins = append(origins, c.CORS.AllowedOrigins...)
	if c.CORS.FrontendURL != "" {
		origins = append(origins, c.CORS.FrontendURL)
	}
	return origins
}

// Load reads configuration from environment variables using go-envconfig.
// It fails when a required value is missing or the JWT secret is too weak,
// so the service never starts with a guessable signing key.
func Load(ctx context.Context) (*Config, error) {
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	if len(cfg.Auth.JWTSecret) < minJWTSecretLen {
		return nil, fmt.Errorf("config: JWT_SECRET must be at least %d bytes", minJWTSecretLen)
	}
	if cfg.Auth.JWTExpiresIn <= 0 {
		return nil, fmt.Errorf("config: JWT_EXPIRES_IN must be positive")
	}
	return &cfg, nil
}
