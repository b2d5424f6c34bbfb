package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"github.com/ulule/limiter/v3"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL    string
	Port           string
	IsProduction   bool
	LogLevel       string
	MigrationsPath string
	PgsqlMaxConns  int32

	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	CORSAllowedOrigins []string
	RateLimit          string // ulule formatted, e.g. "100-M"

	// Lifecycle event publishing. No brokers means events are only logged.
	KafkaBrokers          []string
	KafkaEntryEventsTopic string
	EventWorkerPoolSize   int

	// Optional first administrator, created at start-up if missing.
	BootstrapAdminEmail    string
	BootstrapAdminPassword string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("MIGRATIONS_PATH", "migrations")
	v.SetDefault("PGSQL_MAX_CONNS", 10)
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("JWT_EXPIRY_DURATION", "1h")
	v.SetDefault("JWT_ISSUER", "journal-workflow-app")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("RATE_LIMIT", "100-M")
	v.SetDefault("KAFKA_BROKERS", "")
	v.SetDefault("KAFKA_ENTRY_EVENTS_TOPIC", "journal-entry-events")
	v.SetDefault("EVENT_WORKER_POOL_SIZE", 8)
	v.SetDefault("BOOTSTRAP_ADMIN_EMAIL", "")
	v.SetDefault("BOOTSTRAP_ADMIN_PASSWORD", "")
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		DatabaseURL:            v.GetString("PGSQL_URL"),
		Port:                   v.GetString("PORT"),
		IsProduction:           v.GetBool("IS_PRODUCTION"),
		LogLevel:               v.GetString("LOG_LEVEL"),
		MigrationsPath:         v.GetString("MIGRATIONS_PATH"),
		PgsqlMaxConns:          v.GetInt32("PGSQL_MAX_CONNS"),
		JWTSecret:              v.GetString("JWT_SECRET"),
		JWTIssuer:              v.GetString("JWT_ISSUER"),
		CORSAllowedOrigins:     splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		RateLimit:              v.GetString("RATE_LIMIT"),
		KafkaBrokers:           splitList(v.GetString("KAFKA_BROKERS")),
		KafkaEntryEventsTopic:  v.GetString("KAFKA_ENTRY_EVENTS_TOPIC"),
		EventWorkerPoolSize:    v.GetInt("EVENT_WORKER_POOL_SIZE"),
		BootstrapAdminEmail:    strings.TrimSpace(v.GetString("BOOTSTRAP_ADMIN_EMAIL")),
		BootstrapAdminPassword: v.GetString("BOOTSTRAP_ADMIN_PASSWORD"),
	}

	var problems []string

	jwtExpiryStr := v.GetString("JWT_EXPIRY_DURATION")
	jwtExpiry, err := time.ParseDuration(jwtExpiryStr)
	if err != nil || jwtExpiry <= 0 {
		problems = append(problems, fmt.Sprintf("JWT_EXPIRY_DURATION %q is not a positive duration", jwtExpiryStr))
	}
	cfg.JWTExpiryDuration = jwtExpiry

	problems = append(problems, cfg.validate()...)
	if len(problems) > 0 {
		return nil, errors.New("invalid configuration: " + strings.Join(problems, ", "))
	}
	return cfg, nil
}

// validate lists every problem rather than stopping at the first one.
func (c *Config) validate() []string {
	var problems []string

	if c.DatabaseURL == "" {
		problems = append(problems, "PGSQL_URL is required")
	}
	if c.Port == "" {
		problems = append(problems, "PORT is required")
	}
	if c.JWTSecret == "" {
		problems = append(problems, "JWT_SECRET is required")
	} else if c.IsProduction && len(c.JWTSecret) < 32 {
		problems = append(problems, "JWT_SECRET must be at least 32 characters in production")
	}
	if c.PgsqlMaxConns <= 0 {
		problems = append(problems, "PGSQL_MAX_CONNS must be greater than 0")
	}
	if _, err := limiter.NewRateFromFormatted(c.RateLimit); err != nil {
		problems = append(problems, fmt.Sprintf("RATE_LIMIT %q is invalid: %v", c.RateLimit, err))
	}
	if c.EventWorkerPoolSize <= 0 {
		problems = append(problems, "EVENT_WORKER_POOL_SIZE must be greater than 0")
	}
	if len(c.KafkaBrokers) > 0 && c.KafkaEntryEventsTopic == "" {
		problems = append(problems, "KAFKA_ENTRY_EVENTS_TOPIC is required when KAFKA_BROKERS is set")
	}
	if (c.BootstrapAdminEmail == "") != (c.BootstrapAdminPassword == "") {
		problems = append(problems, "BOOTSTRAP_ADMIN_EMAIL and BOOTSTRAP_ADMIN_PASSWORD must be set together")
	}
	if _, err := c.SlogLevel(); err != nil {
		problems = append(problems, err.Error())
	}
	return problems
}

// SlogLevel parses LogLevel ("debug", "info", "warn", "error").
func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("LOG_LEVEL %q is invalid", c.LogLevel)
	}
	return level, nil
}

// EventsEnabled reports whether lifecycle events go to Kafka.
func (c *Config) EventsEnabled() bool {
	return len(c.KafkaBrokers) > 0
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
