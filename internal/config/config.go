package config

import (
	"errors"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file looked up in the working directory.
const DefaultPath = "depwarn.yaml"

type Config struct {
	Project struct {
		Root       string   `yaml:"root"`
		Extensions []string `yaml:"extensions"` // e.g. [".js", ".mjs"]
		Ignore     []string `yaml:"ignore"`     // directory names skipped while crawling
	} `yaml:"project"`
	Inventory struct {
		DB string `yaml:"db"` // SQLite file; empty disables the inventory
	} `yaml:"inventory"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	var cfg Config
	cfg.Project.Root = "."
	cfg.Project.Extensions = []string{".js", ".jsx", ".mjs", ".cjs"}
	cfg.Project.Ignore = []string{".git", "node_modules", "vendor", "testdata", "dist"}
	return &cfg
}

func LoadConfig(path string) (*Config, error) {
	// 1. Load .env if exists
	_ = godotenv.Load()

	// 2. Load YAML config on top of the defaults
	cfg := Default()
	file, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(file, cfg); err != nil {
			return nil, err
		}
	case errors.Is(err, fs.ErrNotExist):
		// defaults only
	default:
		return nil, err
	}

	// 3. Override with Environment Variables if present
	if root := os.Getenv("DEPWARN_ROOT"); root != "" {
		cfg.Project.Root = root
	}
	if db := os.Getenv("DEPWARN_DB"); db != "" {
		cfg.Inventory.DB = db
	}
	if exts := os.Getenv("DEPWARN_EXTENSIONS"); exts != "" {
		cfg.Project.Extensions = splitList(exts)
	}

	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
