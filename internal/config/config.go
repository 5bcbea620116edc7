// Package config loads service configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Config is the full service configuration
type Config struct {
	Host    string `env:"HOST" envDefault:"0.0.0.0"`
	Port    int    `env:"PORT" envDefault:"8080"`
	Version string `env:"APP_VERSION" envDefault:"dev"`

	// AppSecret seeds the state signing key and the cookie sealing key
	AppSecret string `env:"APP_SECRET,required,unset"`

	// BaseURL is the public origin used to build published site URLs
	BaseURL       string   `env:"BASE_URL" envDefault:"http://localhost:8080"`
	DashboardPath string   `env:"DASHBOARD_PATH" envDefault:"/dashboard"`
	CORSOrigins   []string `env:"CORS_ORIGINS" envSeparator:","`
	CookieSecure  bool     `env:"COOKIE_SECURE" envDefault:"true"`

	DatabaseURL string `env:"DATABASE_URL,required"`
	RedisURL    string `env:"REDIS_URL"`

	Design   DesignConfig
	Listings ListingsConfig
	Upstream UpstreamConfig
	Log      LogConfig
}

// DesignConfig configures the design provider integration
type DesignConfig struct {
	ClientID     string   `env:"DESIGN_CLIENT_ID,required"`
	ClientSecret string   `env:"DESIGN_CLIENT_SECRET,required,unset"`
	AuthURL      string   `env:"DESIGN_AUTH_URL" envDefault:"https://www.canva.com/api/oauth/authorize"`
	TokenURL     string   `env:"DESIGN_TOKEN_URL" envDefault:"https://api.canva.com/rest/v1/oauth/token"`
	APIBaseURL   string   `env:"DESIGN_API_URL" envDefault:"https://api.canva.com/rest"`
	RedirectURL  string   `env:"DESIGN_REDIRECT_URL,required"`
	Scopes       []string `env:"DESIGN_SCOPES" envSeparator:" " envDefault:"design:meta:read design:content:read brandtemplate:meta:read"`

	StateTTL        time.Duration `env:"DESIGN_STATE_TTL" envDefault:"10m"`
	ExportRecordTTL time.Duration `env:"DESIGN_EXPORT_RECORD_TTL" envDefault:"1h"`
	ExportPoll      time.Duration `env:"DESIGN_EXPORT_POLL_INTERVAL" envDefault:"2s"`
}

// ListingsConfig configures the listings API
type ListingsConfig struct {
	BaseURL string `env:"LISTINGS_API_URL" envDefault:"https://api.repliers.io"`
	APIKey  string `env:"LISTINGS_API_KEY,required,unset"`
}

// UpstreamConfig tunes the shared outbound HTTP client
type UpstreamConfig struct {
	Timeout time.Duration `env:"UPSTREAM_TIMEOUT" envDefault:"15s"`
}

// LogConfig configures logging output
type LogConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`

	// File enables rotating file output in addition to stdout
	File       string `env:"LOG_FILE"`
	MaxSizeMB  int    `env:"LOG_MAX_SIZE_MB" envDefault:"100"`
	MaxBackups int    `env:"LOG_MAX_BACKUPS" envDefault:"5"`
	MaxAgeDays int    `env:"LOG_MAX_AGE_DAYS" envDefault:"28"`
}

// Load reads an optional .env file and parses the environment.
// Variables already set in the environment win over .env entries.
func Load(dotenvPaths ...string) (*Config, error) {
	if len(dotenvPaths) == 0 {
		dotenvPaths = []string{".env"}
	}
	for _, p := range dotenvPaths {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", p, err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks cross-field constraints env tags cannot express
func (c *Config) Validate() error {
	if len(c.AppSecret) < 32 {
		return errors.New("APP_SECRET must be at least 32 bytes")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("PORT %d out of range", c.Port)
	}
	if !strings.HasPrefix(c.DashboardPath, "/") || strings.HasPrefix(c.DashboardPath, "//") {
		return fmt.Errorf("DASHBOARD_PATH %q must be a local path", c.DashboardPath)
	}
	for name, raw := range map[string]string{
		"BASE_URL":            c.BaseURL,
		"DESIGN_REDIRECT_URL": c.Design.RedirectURL,
		"DESIGN_API_URL":      c.Design.APIBaseURL,
		"LISTINGS_API_URL":    c.Listings.BaseURL,
	} {
		u, err := url.Parse(raw)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("%s %q must be an absolute URL", name, raw)
		}
	}
	return nil
}
