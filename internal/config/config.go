package config

import (
	"errors"
	"fmt"
	"net/netip"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Auth      AuthConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
	Events    EventsConfig
}

type ServerConfig struct {
	Port               string        `env:"PORT,required,notEmpty"`
	RequestTimeout     time.Duration `env:"REQUEST_TIMEOUT" envDefault:"10s"`
	ShutdownTimeout    time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
	CORSAllowedOrigins []string      `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`
	StorageDriver      string        `env:"STORAGE_DRIVER" envDefault:"postgres"`
	// Addresses or CIDRs whose X-Forwarded-For / X-Real-IP headers are believed.
	TrustedProxies     []string      `env:"TRUSTED_PROXIES" envSeparator:","`
}

type DatabaseConfig struct {
	Host string `env:"DB_HOST,required,notEmpty"`
	Port int    `env:"DB_PORT,required,notEmpty"`
	User string `env:"DB_USER,required,notEmpty"`
	// Must be present but may be empty for trust-auth databases.
	Password string `env:"DB_PASSWORD,required"`
	Name     string `env:"DB_NAME,required,notEmpty"`
	SSLMode  string `env:"DB_SSLMODE" envDefault:"disable"`

	MaxConns        int32         `env:"DB_MAX_CONNS" envDefault:"10"`
	MinConns        int32         `env:"DB_MIN_CONNS" envDefault:"0"`
	MaxConnLifetime time.Duration `env:"DB_MAX_CONN_LIFETIME" envDefault:"1h"`
	MaxConnIdleTime time.Duration `env:"DB_MAX_CONN_IDLE_TIME" envDefault:"30m"`
}

type AuthConfig struct {
	JWTSecret  string `env:"JWT_SECRET,required,notEmpty"`
	BcryptCost int    `env:"BCRYPT_COST" envDefault:"12"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
}

type RateLimitConfig struct {
	Enabled  bool          `env:"RATE_LIMIT_ENABLED" envDefault:"false"`
	Requests int           `env:"RATE_LIMIT_REQUESTS" envDefault:"10"`
	Window   time.Duration `env:"RATE_LIMIT_WINDOW" envDefault:"1m"`
}

type EventsConfig struct {
	StreamName string `env:"AUTH_EVENTS_STREAM" envDefault:"auth:events"`
}

// MinSecretLength is the recommended JWT_SECRET length for HS256.
const MinSecretLength = 32

// MissingKeysError names every required variable that was absent or empty.
type MissingKeysError struct {
	Keys []string
}

func (e *MissingKeysError) Error() string {
	return "missing required configuration: " + strings.Join(e.Keys, ", ")
}

func Load() (*Config, error) {
	// Load .env if it exists (local dev), ignore if not (K8s uses ConfigMaps/Secrets)
	_ = godotenv.Load()

	return Parse()
}

// Parse reads the configuration from the process environment only.
func Parse() (*Config, error) {
	return parse(env.Options{})
}

// ParseMap reads the configuration from environ instead of the process
// environment.
func ParseMap(environ map[string]string) (*Config, error) {
	return parse(env.Options{Environment: environ})
}

func parse(opts env.Options) (*Config, error) {
	cfg, err := env.ParseAsWithOptions[Config](opts)
	if err != nil {
		if missing := missingKeys(err); len(missing) > 0 {
			return nil, &MissingKeysError{Keys: missing}
		}
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Database.MaxConns < 1 {
		return fmt.Errorf("DB_MAX_CONNS must be at least 1, got %d", c.Database.MaxConns)
	}
	if c.Database.MinConns > c.Database.MaxConns {
		return fmt.Errorf("DB_MIN_CONNS (%d) exceeds DB_MAX_CONNS (%d)", c.Database.MinConns, c.Database.MaxConns)
	}
	switch c.Server.StorageDriver {
	case "postgres", "memory":
	default:
		return fmt.Errorf("STORAGE_DRIVER must be postgres or memory, got %q", c.Server.StorageDriver)
	}
	for _, proxy := range c.Server.TrustedProxies {
		if !validProxy(strings.TrimSpace(proxy)) {
			return fmt.Errorf("TRUSTED_PROXIES entry %q is not an IP address or CIDR", proxy)
		}
	}
	if c.RateLimit.Enabled && c.RateLimit.Requests < 1 {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be at least 1, got %d", c.RateLimit.Requests)
	}
	return nil
}

// WeakSecret reports whether JWT_SECRET is shorter than MinSecretLength.
func (c *Config) WeakSecret() bool {
	return len(c.Auth.JWTSecret) < MinSecretLength
}

func (c *Config) RedisEnabled() bool {
	return c.Redis.Addr != ""
}

func validProxy(entry string) bool {
	if strings.Contains(entry, "/") {
		_, err := netip.ParsePrefix(entry)
		return err == nil
	}
	_, err := netip.ParseAddr(entry)
	return err == nil
}

func missingKeys(err error) []string {
	var aggErr env.AggregateError
	if !errors.As(err, &aggErr) {
		return nil
	}

	var keys []string
	for _, e := range aggErr.Errors {
		var notSet env.EnvVarIsNotSetError
		var empty env.EmptyVarError
		switch {
		case errors.As(e, &notSet):
			keys = append(keys, notSet.Key)
		case errors.As(e, &empty):
			keys = append(keys, empty.Key)
		}
	}
	return keys
}
