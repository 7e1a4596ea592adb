package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func setCredentials(t *testing.T, id, secret string) {
	t.Helper()
	t.Setenv("SPOTIFY_ID", id)
	t.Setenv("SPOTIFY_SECRET", secret)
	t.Setenv("SPOTIFY_REDIRECT_URI", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("SONGQUEUE_ADDR", "")
}

func TestLoad_FromFile(t *testing.T) {
	setCredentials(t, "", "")

	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[server]
addr = "0.0.0.0:9000"

[spotify]
client_id = "file-id"
client_secret = "file-secret"
redirect_uri = "https://example.com/api/callback"

[database]
url = "postgres://localhost/songqueue"

[[access.teams]]
name = "Red"
code = "red-123"

[[access.admins]]
name = "dj"
code = "admin-456"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Addr != "0.0.0.0:9000" {
		t.Errorf("Server.Addr = %q, want %q", cfg.Server.Addr, "0.0.0.0:9000")
	}
	if cfg.Spotify.ClientID != "file-id" {
		t.Errorf("Spotify.ClientID = %q, want %q", cfg.Spotify.ClientID, "file-id")
	}
	if cfg.Database.URL != "postgres://localhost/songqueue" {
		t.Errorf("Database.URL = %q, want postgres URL", cfg.Database.URL)
	}
	if len(cfg.Access.Teams) != 1 || cfg.Access.Teams[0].Code != "red-123" {
		t.Errorf("Access.Teams = %v, want one entry with code red-123", cfg.Access.Teams)
	}
	if len(cfg.Access.Admins) != 1 || cfg.Access.Admins[0].Name != "dj" {
		t.Errorf("Access.Admins = %v, want one entry named dj", cfg.Access.Admins)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	setCredentials(t, "env-id", "env-secret")

	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[spotify]
client_id = "file-id"
client_secret = "file-secret"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Spotify.ClientID != "env-id" {
		t.Errorf("Spotify.ClientID = %q, want env override %q", cfg.Spotify.ClientID, "env-id")
	}
	if cfg.Spotify.ClientSecret != "env-secret" {
		t.Errorf("Spotify.ClientSecret = %q, want env override", cfg.Spotify.ClientSecret)
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	setCredentials(t, "env-id", "env-secret")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Addr != "127.0.0.1:8080" {
		t.Errorf("Server.Addr = %q, want default", cfg.Server.Addr)
	}
}

func TestLoad_MissingCredentials(t *testing.T) {
	setCredentials(t, "", "")

	_, err := Load("")
	if !errors.Is(err, ErrMissingSpotifyCredentials) {
		t.Errorf("Load() error = %v, want ErrMissingSpotifyCredentials", err)
	}
}
