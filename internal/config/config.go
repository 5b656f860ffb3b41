// Package config handles global configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents configuration stored in ~/.config/cvcheck/config.yml.
// Every field is optional; flags and environment variables override it.
type Config struct {
	CrossrefMailto  string   `yaml:"crossref_mailto,omitempty"`
	CrossrefBaseURL string   `yaml:"crossref_base_url,omitempty"`
	CandidateRows   int      `yaml:"candidate_rows,omitempty"`
	CachePath       string   `yaml:"cache_path,omitempty"`
	OwnerName       string   `yaml:"owner_name,omitempty"`
	OwnerVariants   []string `yaml:"owner_variants,omitempty"`
}

const (
	// Dir is the directory name under XDG_CONFIG_HOME.
	Dir = "cvcheck"
	// File is the config file name.
	File = "config.yml"
)

// Path returns the path to the global config file.
// Respects XDG_CONFIG_HOME, defaults to ~/.config/cvcheck/config.yml.
func Path() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, Dir, File)
}

// Load loads the global configuration file.
// Returns an empty config (not an error) if the file doesn't exist.
func Load() (*Config, error) {
	path := Path()
	if path == "" {
		return &Config{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return &cfg, nil
}

// Save writes the configuration to the global config file, creating the
// directory if needed.
func Save(cfg *Config) error {
	path := Path()
	if path == "" {
		return fmt.Errorf("cannot determine config path")
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// DefaultCachePath returns the configured cache path, or the default
// location under the user cache directory.
func (c *Config) DefaultCachePath() string {
	if c.CachePath != "" {
		return c.CachePath
	}
	cacheHome, err := os.UserCacheDir()
	if err != nil {
		return "cvcheck-cache.db"
	}
	return filepath.Join(cacheHome, Dir, "lookups.db")
}
