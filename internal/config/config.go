package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Server      ServerConfig      `envconfig:"SERVER"`
	Postgres    PostgresConfig    `envconfig:"POSTGRES"`
	Redis       RedisConfig       `envconfig:"REDIS"`
	Auth        AuthConfig        `envconfig:"AUTH"`
	RabbitMQ    RabbitMQConfig    `envconfig:"RABBITMQ"`
	S3          S3Config          `envconfig:"S3"`
	Upload      UploadConfig      `envconfig:"UPLOAD"`
	BookingRate BookingRateConfig `envconfig:"BOOKING_RATE"`
	Slots       SlotsConfig       `envconfig:"SLOTS"`
	Reconcile   ReconcileConfig   `envconfig:"RECONCILE"`
	Log         LogConfig         `envconfig:"LOG"`

	CacheTTL       time.Duration `split_words:"true" default:"30s"`
	IdempotencyTTL time.Duration `split_words:"true" default:"24h"`
}

// Leaf fields carry no envconfig name tag: a tag becomes a fallback key that
// envconfig reads without the section prefix.

type ServerConfig struct {
	Host            string        `default:"localhost"`
	Port            int           `default:"8080"`
	ShutdownTimeout time.Duration `split_words:"true" default:"5s"`
	CORSOrigins     []string      `split_words:"true" default:"*"`
}

type PostgresConfig struct {
	User     string `required:"true"`
	Password string `required:"true"`
	DB       string `required:"true"`
	Host     string `default:"localhost"`
	Port     int    `default:"5432"`
	SSLMode  string `split_words:"true" default:"disable"`
	MaxConns int32  `split_words:"true" default:"10"`
}

type RedisConfig struct {
	Addr     string `default:"localhost:6380"`
	Password string
	DB       int `default:"0"`
}

type AuthConfig struct {
	JWTSecret string `split_words:"true" required:"true"`
}

// RabbitMQConfig with an empty URL disables domain events.
type RabbitMQConfig struct {
	URL      string
	Exchange string `default:"courtbook.events"`
}

// S3Config with an empty bucket disables image uploads.
type S3Config struct {
	Endpoint      string
	Region        string `default:"us-east-1"`
	Bucket        string
	AccessKey     string `split_words:"true"`
	SecretKey     string `split_words:"true"`
	PublicBaseURL string `split_words:"true"`
	UsePathStyle  bool   `split_words:"true" default:"true"`
}

type UploadConfig struct {
	Timeout  time.Duration `default:"10s"`
	MaxBytes int64         `split_words:"true" default:"5242880"`
}

type BookingRateConfig struct {
	Limit  int           `default:"10"`
	Window time.Duration `default:"1m"`
}

type SlotsConfig struct {
	SavePolicy       string `split_words:"true" default:"diff"`
	AllowLegacyClaim bool   `split_words:"true" default:"false"`
}

// ReconcileConfig takes a robfig/cron schedule. An empty schedule disables the
// periodic pass.
type ReconcileConfig struct {
	Schedule string `default:"@every 5m"`
}

type LogConfig struct {
	Level  string `default:"info"`
	Format string `default:"text"`
	File   string
}

// New loads .env when present and reads the configuration from the
// environment.
func New() (*Config, error) {
	_ = godotenv.Load()

	return Load()
}

// Load reads the configuration from the environment only.
func Load() (*Config, error) {
	const op = "config.Load"

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid SERVER_PORT %d", c.Server.Port)
	}

	switch c.Slots.SavePolicy {
	case "diff", "replace":
	default:
		return fmt.Errorf("invalid SLOTS_SAVE_POLICY %q", c.Slots.SavePolicy)
	}

	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("invalid LOG_FORMAT %q", c.Log.Format)
	}

	if c.BookingRate.Limit < 0 {
		return fmt.Errorf("invalid BOOKING_RATE_LIMIT %d", c.BookingRate.Limit)
	}

	if c.S3.Bucket != "" && c.S3.PublicBaseURL == "" {
		return fmt.Errorf("S3_PUBLIC_BASE_URL is required when S3_BUCKET is set")
	}

	return nil
}
