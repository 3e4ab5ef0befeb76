package app

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/five82/shelf/internal/catalog"
	"github.com/five82/shelf/internal/config"
	"github.com/five82/shelf/internal/prefs"
	"github.com/five82/shelf/internal/ui"
)

// Options configure the shelf application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/shelf/prefs.toml
	BaseURL    string // overrides base_url from the config file
	StartPath  string // initial route; empty opens the catalog
}

// Run boots the shelf TUI until the user quits or the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := load(opts)
	if err != nil {
		return err
	}

	logFile, err := openLog(cfg)
	if err != nil {
		return err
	}
	defer logFile.Close()

	log.SetOutput(logFile)
	defer log.SetOutput(os.Stderr)

	client, err := catalog.NewClient(cfg.BaseURL, catalog.WithTimeout(cfg.RequestTimeout))
	if err != nil {
		return fmt.Errorf("init catalog client: %w", err)
	}
	cfg.BaseURL = client.BaseURL()

	userPrefs := prefs.Load(opts.PrefsPath)
	log.Printf("shelf starting against %s", cfg.BaseURL)

	uiOpts := ui.Options{
		Context:   ctx,
		Client:    client,
		Config:    &cfg,
		ThemeName: userPrefs.Theme,
		PrefsPath: opts.PrefsPath,
		StartPath: opts.StartPath,
	}
	if err := ui.Run(uiOpts); err != nil {
		log.Printf("shelf stopped: %v", err)
		return fmt.Errorf("run ui: %w", err)
	}
	log.Printf("shelf stopped")
	return nil
}

// load reads the config file and applies command line overrides.
func load(opts Options) (config.Config, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	if url := strings.TrimSpace(opts.BaseURL); url != "" {
		cfg.BaseURL = url
	}
	return cfg, nil
}

// openLog opens the activity log for appending. The TUI owns the terminal,
// so the standard logger writes here instead.
func openLog(cfg config.Config) (*os.File, error) {
	if err := os.MkdirAll(cfg.LogDir(), 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}
