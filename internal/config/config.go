package config

import (
	"fmt"
	"time"

	"github.com/trustmarket/trustmarket/pkg/config"
	"github.com/trustmarket/trustmarket/pkg/database"
)

// Catalog source backends.
const (
	CatalogSourceMemory   = "memory"
	CatalogSourcePostgres = "postgres"
)

// Config is the full service configuration, loaded from the environment.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	HTTPPort    int    `env:"HTTP_PORT" envDefault:"8080"`

	// CatalogSource selects where the catalog snapshot comes from: the seeded
	// in-memory catalog for local development, or postgres.
	CatalogSource string `env:"CATALOG_SOURCE" envDefault:"memory"`

	Postgres PostgresConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	Tracing  TracingConfig

	// ModerationURL is the base URL of the moderation service submissions are
	// dispatched to.
	ModerationURL string `env:"MODERATION_URL" envDefault:"http://localhost:8090"`

	// JWTSecret verifies session tokens. Empty means anonymous sessions only.
	JWTSecret string `env:"JWT_SECRET" envDefault:""`

	// CacheTTL bounds how stale the cached catalog snapshot may be.
	CacheTTL time.Duration `env:"CATALOG_CACHE_TTL" envDefault:"5m"`

	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"15s"`
}

// PostgresConfig holds the database settings.
type PostgresConfig struct {
	Host     string `env:"POSTGRES_HOST" envDefault:"localhost"`
	Port     int    `env:"POSTGRES_PORT" envDefault:"5432"`
	User     string `env:"POSTGRES_USER" envDefault:"trustmarket"`
	Password string `env:"POSTGRES_PASSWORD" envDefault:"trustmarket_secret"`
	DBName   string `env:"POSTGRES_DB" envDefault:"trustmarket"`
	SSLMode  string `env:"POSTGRES_SSLMODE" envDefault:"disable"`
}

// RedisConfig holds the cache settings. Redis is optional: an empty host
// disables the snapshot cache.
type RedisConfig struct {
	Host     string `env:"REDIS_HOST" envDefault:""`
	Port     int    `env:"REDIS_PORT" envDefault:"6379"`
	Password string `env:"REDIS_PASSWORD" envDefault:""`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
}

// KafkaConfig holds the event broker settings. Kafka is optional: no brokers
// disables event publication.
type KafkaConfig struct {
	Brokers []string `env:"KAFKA_BROKERS" envSeparator:","`
}

// TracingConfig holds the OpenTelemetry settings.
type TracingConfig struct {
	Enabled      bool    `env:"OTEL_ENABLED" envDefault:"false"`
	OTLPEndpoint string  `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:"localhost:4318"`
	SampleRate   float64 `env:"OTEL_SAMPLE_RATE" envDefault:"1.0"`
}

// Load reads the configuration from the environment and validates it.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := config.Load(cfg); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.HTTPPort <= 0 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP_PORT %d", c.HTTPPort)
	}

	switch c.CatalogSource {
	case CatalogSourceMemory, CatalogSourcePostgres:
	default:
		return fmt.Errorf("invalid CATALOG_SOURCE %q (want %q or %q)",
			c.CatalogSource, CatalogSourceMemory, CatalogSourcePostgres)
	}

	if c.ModerationURL == "" {
		return fmt.Errorf("MODERATION_URL is required")
	}

	return nil
}

// PostgresPoolConfig maps the env settings onto the database package's pool
// configuration.
func (c *Config) PostgresPoolConfig() *database.PostgresConfig {
	pg := database.DefaultPostgresConfig()
	pg.Host = c.Postgres.Host
	pg.Port = c.Postgres.Port
	pg.User = c.Postgres.User
	pg.Password = c.Postgres.Password
	pg.DBName = c.Postgres.DBName
	pg.SSLMode = c.Postgres.SSLMode
	return &pg
}

// RedisClientConfig maps the env settings onto the database package's Redis
// configuration.
func (c *Config) RedisClientConfig() database.RedisConfig {
	rc := database.DefaultRedisConfig()
	rc.Host = c.Redis.Host
	rc.Port = c.Redis.Port
	rc.Password = c.Redis.Password
	rc.DB = c.Redis.DB
	return rc
}
