package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Port        string `env:"PORT" envDefault:"4000"`
	DatabaseURL string `env:"DATABASE_URL,required"`

	DBMaxOpen     int           `env:"DB_MAX_OPEN" envDefault:"25"`
	DBMaxIdle     int           `env:"DB_MAX_IDLE" envDefault:"25"`
	DBMaxLifetime time.Duration `env:"DB_MAX_LIFETIME" envDefault:"5m"`
	DBMigrate     bool          `env:"DB_MIGRATE" envDefault:"false"`

	// AccessSecret signs login tokens and has no default.
	AccessSecret string        `env:"ACCESS_SECRET,required,notEmpty"`
	AccessTTL    time.Duration `env:"ACCESS_TTL" envDefault:"15m"`
	// RequireToken makes a bearer token mandatory on the role-gated creation
	// endpoints instead of trusting creator_role from the body.
	RequireToken bool `env:"REQUIRE_TOKEN" envDefault:"false"`
	BcryptCost   int  `env:"BCRYPT_COST" envDefault:"10"`

	CORSOrigins []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"*"`

	SuperadminEmail    string `env:"SUPERADMIN_EMAIL"`
	SuperadminPassword string `env:"SUPERADMIN_PASSWORD"`

	LogConfig string `env:"LOG_CONFIG" envDefault:"<root>=INFO"`
}

// Load reads an optional .env file and parses the environment into a Config.
// A missing .env file is not an error.
func Load(files ...string) (*Config, bool, error) {
	dotenv := godotenv.Load(files...) == nil

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, dotenv, fmt.Errorf("parse env: %w", err)
	}
	cfg.DatabaseURL = strings.TrimSpace(cfg.DatabaseURL)
	if cfg.DatabaseURL == "" {
		return nil, dotenv, fmt.Errorf("parse env: DATABASE_URL is required")
	}
	if strings.TrimSpace(cfg.AccessSecret) == "" {
		return nil, dotenv, fmt.Errorf("parse env: ACCESS_SECRET is required")
	}
	if cfg.AccessTTL <= 0 {
		return nil, dotenv, fmt.Errorf("parse env: ACCESS_TTL must be positive, got %s", cfg.AccessTTL)
	}
	return &cfg, dotenv, nil
}

// SeedSuperadmin reports whether a superadmin account should be ensured at startup.
func (c *Config) SeedSuperadmin() bool {
	return c.SuperadminEmail != "" && c.SuperadminPassword != ""
}
