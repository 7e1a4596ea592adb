// Package config loads application configuration from a TOML file with
// environment-variable overrides for secrets.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// ErrMissingSpotifyCredentials is returned when no Spotify client id/secret
// is present in either the config file or the environment.
var ErrMissingSpotifyCredentials = errors.New("missing Spotify client credentials (set SPOTIFY_ID and SPOTIFY_SECRET)")

// Config is the application configuration.
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Spotify  SpotifyConfig  `toml:"spotify"`
	Database DatabaseConfig `toml:"database"`
	Access   AccessConfig   `toml:"access"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// SpotifyConfig contains Spotify API credentials.
type SpotifyConfig struct {
	ClientID     string `toml:"client_id"`
	ClientSecret string `toml:"client_secret"`
	RedirectURI  string `toml:"redirect_uri"`
}

// DatabaseConfig contains the credential-store connection settings.
// When URL is empty the server falls back to the static codes in [access].
type DatabaseConfig struct {
	URL string `toml:"url"`
}

// AccessConfig contains static team and admin codes for running without
// a database, e.g. local development or a single-evening event.
type AccessConfig struct {
	Teams  []CodeEntry `toml:"teams"`
	Admins []CodeEntry `toml:"admins"`
}

// CodeEntry pairs a display name with its login code.
type CodeEntry struct {
	Name string `toml:"name"`
	Code string `toml:"code"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{Addr: "127.0.0.1:8080"},
		Spotify: SpotifyConfig{
			RedirectURI: "http://127.0.0.1:8080/api/callback",
		},
	}
}

// Load reads a TOML configuration file and applies environment overrides.
// A missing file is not an error; defaults plus the environment are used.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err == nil {
			if err := toml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parsing config file: %w", err)
			}
		}
	}

	cfg.applyEnv()

	if cfg.Spotify.ClientID == "" || cfg.Spotify.ClientSecret == "" {
		return nil, ErrMissingSpotifyCredentials
	}

	return cfg, nil
}

// applyEnv overrides file values with environment variables when set.
func (c *Config) applyEnv() {
	if v := os.Getenv("SPOTIFY_ID"); v != "" {
		c.Spotify.ClientID = v
	}
	if v := os.Getenv("SPOTIFY_SECRET"); v != "" {
		c.Spotify.ClientSecret = v
	}
	if v := os.Getenv("SPOTIFY_REDIRECT_URI"); v != "" {
		c.Spotify.RedirectURI = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		c.Database.URL = v
	}
	if v := os.Getenv("SONGQUEUE_ADDR"); v != "" {
		c.Server.Addr = v
	}
}
