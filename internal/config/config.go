// Package config loads process-wide configuration from the environment.
//
// All configuration is read exactly once at startup into a Config struct,
// which is then passed into the wiring in internal/server. Nothing else in
// the codebase reads environment variables.
package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds everything the server needs at startup.
//
// The three secrets are required: envconfig returns an error when any of
// them is unset, which aborts startup. Everything else has a development
// default.
//
// TokenRedirectURL is where the OAuth callback sends the browser after a
// successful login, with the issued token appended as a path segment. The
// default targets the editor extension's local listener.
type Config struct {
	Port               int    `envconfig:"PORT" default:"8080"`
	DBPath             string `envconfig:"DB_PATH" default:"data/todo.db"`
	JWTSecret          string `envconfig:"JWT_SECRET" required:"true"`
	GitHubClientID     string `envconfig:"GITHUB_CLIENT_ID" required:"true"`
	GitHubClientSecret string `envconfig:"GITHUB_CLIENT_SECRET" required:"true"`
	GitHubCallbackURL  string `envconfig:"GITHUB_CALLBACK_URL"`
	TokenRedirectURL   string `envconfig:"TOKEN_REDIRECT_URL" default:"http://localhost:54321/auth/"`
}

// Load reads a .env file if one exists, then parses the environment into a
// Config. Missing required values are a startup error.
func Load() (*Config, error) {
	// .env is optional — absence is the normal case in production, where
	// the environment is set by the process manager.
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	if cfg.GitHubCallbackURL == "" {
		cfg.GitHubCallbackURL = fmt.Sprintf("http://localhost:%d/auth/github/callback", cfg.Port)
	}

	return &cfg, nil
}
