package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"

	"depwarn/internal/config"
	"depwarn/internal/storage"
	"depwarn/internal/version"

	"github.com/spf13/cobra"
)

var (
	rootCmd = &cobra.Command{
		Use:   "depwarn",
		Short: "Make @deprecated JavaScript functions warn at runtime",
		Long: `depwarn rewrites JavaScript sources so that every function documented
with a JSDoc @deprecated tag emits a console.warn carrying its name,
package and location each time it is called.`,
	}
	configPath string
	dbPath     string
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rootCmd.Version = version.Version
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultPath, "Path to the depwarn configuration file")
	rootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "", "Path to the deprecation inventory database (SQLite); overrides inventory.db")

	rootCmd.AddCommand(rewriteCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig loads the configuration and applies the persistent flags on top.
func loadConfig() *config.Config {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.Fatalf("Failed to load config %s: %v", configPath, err)
	}
	if dbPath != "" {
		cfg.Inventory.DB = dbPath
	}
	return cfg
}

// newStore opens the inventory database at path.
var newStore = func(path string) (storage.Store, error) {
	return storage.NewSQLiteStore(path)
}

// openStore opens the inventory database, or returns nil when none is configured.
func openStore(cfg *config.Config) (storage.Store, error) {
	if cfg.Inventory.DB == "" {
		return nil, nil
	}
	store, err := newStore(cfg.Inventory.DB)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	return store, nil
}

// displayPath shortens path relative to the working directory when possible.
func displayPath(path string) string {
	wd, err := os.Getwd()
	if err != nil {
		return path
	}
	if rel, err := filepath.Rel(wd, path); err == nil && !filepath.IsAbs(rel) && len(rel) < len(path) {
		return rel
	}
	return path
}
