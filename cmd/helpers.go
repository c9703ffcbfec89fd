package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ziadkadry99/bookshell/internal/config"
	"github.com/ziadkadry99/bookshell/internal/content"
	"github.com/ziadkadry99/bookshell/internal/db"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `bookshell init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cfgFile, err)
	}
	return cfg, nil
}

// openDatabase opens the site database under the data directory.
func openDatabase(cfg *config.Config) (*db.DB, error) {
	dbPath := filepath.Join(cfg.DataDir, "bookshell.db")
	database, err := db.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	return database, nil
}

// loadContent reads the content directory into the store.
func loadContent(ctx context.Context, cfg *config.Config, loader *content.Loader) (content.Result, error) {
	if _, err := os.Stat(cfg.Content.Dir); os.IsNotExist(err) {
		return content.Result{}, fmt.Errorf("content directory not found at %s\nCreate it or set content.dir in %s", cfg.Content.Dir, cfgFile)
	}
	res, err := loader.Load(ctx)
	if err != nil {
		return res, fmt.Errorf("loading content: %w", err)
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "Loaded %d posts from %s (%d skipped)\n", res.Posts, cfg.Content.Dir, res.Skipped)
	}
	return res, nil
}

func newLoader(cfg *config.Config, database *db.DB) *content.Loader {
	return content.NewLoader(content.NewStore(database), cfg.Content.Dir, cfg.Content.Include, cfg.Content.Exclude)
}
