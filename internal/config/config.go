package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// DefaultSessionSecret is only acceptable outside production
const DefaultSessionSecret = "ecoscan-development-secret"

const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"

	SessionStoreMemory = "memory"
	SessionStoreRedis  = "redis"
)

// Config contains server configuration parameters.
type Config struct {
	ServiceName    string `env:"SERVICE_NAME" envDefault:"ecoscan-api"`
	ServiceVersion string `env:"SERVICE_VERSION" envDefault:"1.0.0"`
	Environment    string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel       string `env:"LOG_LEVEL" envDefault:"info"`
	JaegerEndpoint string `env:"JAEGER_ENDPOINT" envDefault:"http://localhost:14268/api/traces"`

	HTTP      HTTP      `envPrefix:"HTTP_"`
	GRPC      GRPC      `envPrefix:"GRPC_"`
	Database  Database  `envPrefix:"DATABASE_"`
	Session   Session   `envPrefix:"SESSION_"`
	Redis     Redis     `envPrefix:"REDIS_"`
	Kafka     Kafka     `envPrefix:"KAFKA_"`
	Tracing   Tracing   `envPrefix:"TRACING_"`
	CORS      CORS      `envPrefix:"CORS_"`
	RateLimit RateLimit `envPrefix:"RATE_LIMIT_"`
}

// HTTP contains HTTP server parameters.
type HTTP struct {
	Port            string        `env:"PORT" envDefault:"8080"`
	ReadTimeout     time.Duration `env:"READ_TIMEOUT" envDefault:"15s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" envDefault:"35s"`
	IdleTimeout     time.Duration `env:"IDLE_TIMEOUT" envDefault:"60s"`
	RequestTimeout  time.Duration `env:"REQUEST_TIMEOUT" envDefault:"30s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// GRPC contains gRPC health server parameters.
type GRPC struct {
	Enabled bool   `env:"ENABLED" envDefault:"true"`
	Port    string `env:"PORT" envDefault:"9090"`
}

// Database selects and configures the data store.
type Database struct {
	Driver          string        `env:"DRIVER" envDefault:"memory"`
	URL             string        `env:"URL"`
	MaxOpenConns    int           `env:"MAX_OPEN_CONNS" envDefault:"25"`
	MaxIdleConns    int           `env:"MAX_IDLE_CONNS" envDefault:"5"`
	ConnMaxLifetime time.Duration `env:"CONN_MAX_LIFETIME" envDefault:"5m"`
	LogQueries      bool          `env:"LOG_QUERIES" envDefault:"false"`
}

// Session contains session cookie and store parameters.
type Session struct {
	Secret     string        `env:"SECRET" envDefault:"ecoscan-development-secret"`
	TTL        time.Duration `env:"TTL" envDefault:"24h"`
	Store      string        `env:"STORE" envDefault:"memory"`
	CookieName string        `env:"COOKIE_NAME" envDefault:"ecoscan.sid"`
	Secure     bool          `env:"SECURE" envDefault:"false"`
}

// Redis contains Redis connection parameters.
type Redis struct {
	Addr     string `env:"ADDR" envDefault:"localhost:6379"`
	Password string `env:"PASSWORD"`
	DB       int    `env:"DB" envDefault:"0"`
}

// Kafka contains activity event publisher parameters.
type Kafka struct {
	Brokers  []string `env:"BROKERS" envSeparator:","`
	Topic    string   `env:"TOPIC" envDefault:"ecoscan-activity"`
	ClientID string   `env:"CLIENT_ID" envDefault:"ecoscan-api"`
	GroupID  string   `env:"GROUP_ID" envDefault:"ecoscan-activity-log"`
}

// Tracing contains OpenTelemetry parameters.
type Tracing struct {
	Enabled     bool    `env:"ENABLED" envDefault:"false"`
	SampleRatio float64 `env:"SAMPLE_RATIO" envDefault:"1"`
}

// CORS contains allowed origins for the browser client.
type CORS struct {
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:5173,http://localhost:3000"`
}

// RateLimit limits login and register attempts per client. Requires Redis.
type RateLimit struct {
	Enabled  bool          `env:"ENABLED" envDefault:"false"`
	Requests int           `env:"REQUESTS" envDefault:"10"`
	Window   time.Duration `env:"WINDOW" envDefault:"1m"`
}

// Load reads an optional .env file and then the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}
	return NewConfig()
}

// NewConfig loads configuration from environment variables.
func NewConfig() (*Config, error) {
	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// IsProduction reports whether the service runs in production
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// UsesRedis reports whether any component needs a Redis client
func (c *Config) UsesRedis() bool {
	return c.Session.Store == SessionStoreRedis || c.RateLimit.Enabled
}

// Validate checks cross-field constraints env tags cannot express.
func (c *Config) Validate() error {
	var errs []error

	switch c.Database.Driver {
	case DriverMemory:
	case DriverPostgres:
		if c.Database.URL == "" {
			errs = append(errs, errors.New("DATABASE_URL is required for the postgres driver"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown DATABASE_DRIVER %q", c.Database.Driver))
	}

	switch c.Session.Store {
	case SessionStoreMemory, SessionStoreRedis:
	default:
		errs = append(errs, fmt.Errorf("unknown SESSION_STORE %q", c.Session.Store))
	}

	if c.Session.Secret == "" {
		errs = append(errs, errors.New("SESSION_SECRET must not be empty"))
	}
	if c.IsProduction() && c.Session.Secret == DefaultSessionSecret {
		errs = append(errs, errors.New("SESSION_SECRET must be set in production"))
	}
	if c.Session.TTL <= 0 {
		errs = append(errs, errors.New("SESSION_TTL must be positive"))
	}

	if c.RateLimit.Enabled && (c.RateLimit.Requests <= 0 || c.RateLimit.Window <= 0) {
		errs = append(errs, errors.New("RATE_LIMIT_REQUESTS and RATE_LIMIT_WINDOW must be positive"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}
