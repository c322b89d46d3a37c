package confs

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// DevSessionSecret is the fallback signing key for local runs.
const DevSessionSecret = "dev-session-secret"

// Config contains server configuration parameters.
type Config struct {
	LogLevel     int      `env:"LOG_LEVEL" envDefault:"0"`
	PasswordCost int      `env:"PASSWORD_COST" envDefault:"10"`
	HTTP         HTTP     `envPrefix:"HTTP_"`
	Database     Database `envPrefix:"DB_"`
	Session      Session  `envPrefix:"SESSION_"`
	CORS         CORS     `envPrefix:"CORS_"`
}

// HTTP contains HTTP server parameters.
type HTTP struct {
	Addr            string        `env:"ADDR" envDefault:"0.0.0.0:5555"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// Database contains database connection parameters.
// URL wins over the individual Host/Port/... fields.
type Database struct {
	Driver     string `env:"DRIVER" envDefault:"sqlite"`
	URL        string `env:"URL"`
	Host       string `env:"HOST"`
	Port       string `env:"PORT"`
	User       string `env:"USER"`
	Password   string `env:"PASSWORD"`
	Name       string `env:"NAME"`
	SQLitePath string `env:"SQLITE_PATH" envDefault:"app.db"`
	Debug      bool   `env:"DEBUG" envDefault:"false"`
}

// Session contains session cookie parameters.
type Session struct {
	Secret     string        `env:"SECRET" envDefault:"dev-session-secret"`
	CookieName string        `env:"COOKIE_NAME" envDefault:"session"`
	TTL        time.Duration `env:"TTL" envDefault:"168h"`
	Secure     bool          `env:"SECURE" envDefault:"false"`
}

// CORS contains allowed browser origins.
type CORS struct {
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`
}

// LoadConfig loads environment variables from a .env file if present
// and parses them into a Config.
func LoadConfig() (*Config, error) {
	// Load .env if it exists; ignore error if file not found
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			log.Printf("warning: could not load .env: %v", err)
		}
	}

	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Database.Driver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.Database.Driver)
	}
	if c.Session.Secret == "" {
		return fmt.Errorf("SESSION_SECRET must not be empty")
	}
	if c.Session.TTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive")
	}
	if c.PasswordCost < 4 || c.PasswordCost > 31 {
		return fmt.Errorf("PASSWORD_COST must be between 4 and 31")
	}
	return nil
}

// UsesDevSecret reports whether sessions are signed with the built-in secret.
func (c *Config) UsesDevSecret() bool {
	return c.Session.Secret == DevSessionSecret
}
