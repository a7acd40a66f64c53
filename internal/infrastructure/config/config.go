package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,     default=8080"`
	Env      string `env:"ENV,      default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// JWTSecret signs session tokens. When empty the process starts with an
	// insecure development fallback and must log a loud warning.
	JWTSecret            string `env:"JWT_SECRET"`
	TokenExpirationHours int    `env:"TOKEN_EXPIRATION_HOURS, default=24"`

	IngestWorkers int `env:"INGEST_WORKERS, default=8"`

	Postgres PostgresConfig
	Redis    RedisConfig
	ML       MLConfig
}

type PostgresConfig struct {
	URL string `env:"DATABASE_URL, default=postgres://localhost:5432/monitor"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR, default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,   default=0"`
}

type MLConfig struct {
	ServiceURL string `env:"ML_SERVICE_URL, default=http://ml-service:5001"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
