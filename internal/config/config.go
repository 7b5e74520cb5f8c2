// Package config loads client configuration from the environment.
package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config is the externally configurable surface of the client: the API base
// URL and the request timeout, plus the web origin used for browser pages.
type Config struct {
	// APIURL is the platform REST API base URL.
	APIURL string `env:"CAMPUS_API_URL" envDefault:"http://localhost:4000/api"`
	// APITimeoutMS is the fixed transport timeout in milliseconds.
	APITimeoutMS int `env:"CAMPUS_API_TIMEOUT" envDefault:"30000"`
	// BaseURL is the web origin for terms/privacy pages. Derived from
	// APIURL when unset.
	BaseURL string `env:"CAMPUS_BASE_URL"`
}

// Load reads configuration from a .env file (when present) and the process
// environment. Missing variables fall back to documented defaults.
func Load() (Config, error) {
	godotenv.Load() //nolint:errcheck // .env is optional

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.APITimeoutMS <= 0 {
		cfg.APITimeoutMS = 30000
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = deriveBaseURL(cfg.APIURL)
	}
	return cfg, nil
}

// Timeout returns the transport timeout as a duration.
func (c Config) Timeout() time.Duration {
	return time.Duration(c.APITimeoutMS) * time.Millisecond
}

// deriveBaseURL strips the API path and api. host prefix to reach the web
// origin, e.g. https://api.linkcode.dev/api -> https://linkcode.dev.
func deriveBaseURL(apiURL string) string {
	u, err := url.Parse(apiURL)
	if err != nil {
		return strings.TrimSuffix(apiURL, "/api")
	}
	host := u.Hostname()
	if strings.HasPrefix(host, "api.") {
		port := u.Port()
		u.Host = strings.TrimPrefix(host, "api.")
		if port != "" {
			u.Host += ":" + port
		}
	}
	u.Path = ""
	return u.String()
}
