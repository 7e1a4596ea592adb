// Command songqueue runs the collaborative song queue web application.
package main

import (
	"context"
	"flag"
	"fmt"
	"io/fs"
	"os"

	"github.com/charmbracelet/log"

	"github.com/hackfest/songqueue/internal/config"
	"github.com/hackfest/songqueue/internal/db"
	"github.com/hackfest/songqueue/internal/identity"
	"github.com/hackfest/songqueue/internal/queue"
	"github.com/hackfest/songqueue/internal/web"
	webfs "github.com/hackfest/songqueue/web"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "config.toml", "path to the configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "songqueue",
	})

	verifier, cleanup, err := buildVerifier(cfg, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	// Create sub-filesystems for templates and static files
	templates, err := fs.Sub(webfs.TemplatesFS, "templates")
	if err != nil {
		return fmt.Errorf("creating templates filesystem: %w", err)
	}

	static, err := fs.Sub(webfs.StaticFS, "static")
	if err != nil {
		return fmt.Errorf("creating static filesystem: %w", err)
	}

	server, err := web.NewServer(web.ServerConfig{
		Addr:         cfg.Server.Addr,
		ClientID:     cfg.Spotify.ClientID,
		ClientSecret: cfg.Spotify.ClientSecret,
		RedirectURI:  cfg.Spotify.RedirectURI,
		Verifier:     verifier,
		Queue:        queue.NewStore(),
		TemplatesFS:  templates,
		StaticFS:     static,
		Logger:       logger,
	})
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	return server.Run()
}

// buildVerifier wires the credential store: PostgreSQL when a database URL
// is configured, otherwise the static codes from the config file.
func buildVerifier(cfg *config.Config, logger *log.Logger) (identity.Verifier, func(), error) {
	if cfg.Database.URL != "" {
		database, err := db.New(context.Background(), cfg.Database.URL)
		if err != nil {
			return nil, nil, fmt.Errorf("connecting to database: %w", err)
		}
		logger.Info("using database credential store")
		return identity.NewDBVerifier(database), database.Close, nil
	}

	static := identity.NewStaticVerifier()
	for _, t := range cfg.Access.Teams {
		static.AddTeam(t.Code, t.Name)
	}
	for _, a := range cfg.Access.Admins {
		static.AddAdmin(a.Code, a.Name)
	}
	logger.Info("using static credential store",
		"teams", len(cfg.Access.Teams),
		"admins", len(cfg.Access.Admins),
	)
	return static, func() {}, nil
}
