// Package config defines the application configuration structures.
//
// Client and server settings come from the environment (optionally
// primed from a .env file by the cmd package). AI provider settings
// live in ~/.askdb/config.json, see ai_config.go.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
)

// DefaultBackendURL is used when no backend URL is configured.
const DefaultBackendURL = "http://localhost:8000"

// Client holds the chat client settings.
type Client struct {
	// BackendURL is the agent base URL; "/chat" is appended per request.
	BackendURL string `env:"ASKDB_BACKEND_URL"`
	// PublicBackendURL is honoured so an existing web deployment's
	// environment works unchanged.
	PublicBackendURL string `env:"NEXT_PUBLIC_BACKEND_URL"`
	// Timeout bounds a single request. Zero means no timeout.
	Timeout time.Duration `env:"ASKDB_TIMEOUT" envDefault:"0s"`
}

// LoadClient reads client settings from the process environment.
func LoadClient() (*Client, error) {
	return loadClient(env.Options{})
}

func loadClient(opts env.Options) (*Client, error) {
	cfg := &Client{}
	if err := env.Parse(cfg, opts); err != nil {
		return nil, fmt.Errorf("parse client config: %w", err)
	}
	return cfg, nil
}

// Backend returns the resolved base URL without a trailing slash.
func (c Client) Backend() string {
	url := c.BackendURL
	if url == "" {
		url = c.PublicBackendURL
	}
	if url == "" {
		url = DefaultBackendURL
	}
	return strings.TrimRight(strings.TrimSpace(url), "/")
}

// Server holds the reference agent backend settings.
type Server struct {
	Port           string    `env:"PORT" envDefault:"8000"`
	DatabaseURL    string    `env:"DATABASE_URL"`
	Schema         string    `env:"ASKDB_DB_SCHEMA" envDefault:"public"`
	AllowedOrigins []string  `env:"ASKDB_ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`
	MaxRows        int       `env:"ASKDB_MAX_ROWS" envDefault:"200"`
	SSH            SSHConfig `envPrefix:"ASKDB_SSH_"`
}

// SSHConfig holds SSH tunnel settings for reaching the database.
type SSHConfig struct {
	Enabled       bool   `env:"ENABLED"`
	Host          string `env:"HOST"`
	Port          int    `env:"PORT" envDefault:"22"`
	User          string `env:"USER"`
	KeyPath       string `env:"KEY_PATH"`
	KeyPassphrase string `env:"KEY_PASSPHRASE"`
	KnownHosts    string `env:"KNOWN_HOSTS"`
}

// LoadServer reads server settings from the process environment.
func LoadServer() (*Server, error) {
	return loadServer(env.Options{})
}

func loadServer(opts env.Options) (*Server, error) {
	cfg := &Server{}
	if err := env.Parse(cfg, opts); err != nil {
		return nil, fmt.Errorf("parse server config: %w", err)
	}
	if cfg.MaxRows <= 0 {
		return nil, fmt.Errorf("invalid ASKDB_MAX_ROWS value: %d", cfg.MaxRows)
	}
	return cfg, nil
}

// Addr turns Port into a listen address. "8000", ":8000" and
// "127.0.0.1:8000" are all accepted.
func (s Server) Addr() (string, error) {
	port := strings.TrimSpace(s.Port)
	if port == "" {
		port = "8000"
	}
	if strings.Contains(port, ":") {
		return port, nil
	}
	if strings.Contains(port, " ") {
		return "", fmt.Errorf("invalid PORT value: %q", port)
	}
	return ":" + port, nil
}
