package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

// Config holds runtime settings, read from the environment and an optional
// .env file.
type Config struct {
	// Source is a directory or http(s) base URL holding clusters.json.
	Source string
	// ThumbnailDir is prepended to each cluster's thumbnail filename.
	ThumbnailDir string
	Port         string
	LogLevel     string
	Watch        bool
}

// Load reads the configuration. Values already present in the environment
// take precedence over .env.
func Load() (Config, error) {
	_ = godotenv.Load()

	watch, err := strconv.ParseBool(envOrDefault("WATCH", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("WATCH: %w", err)
	}

	cfg := Config{
		Source:       envOrDefault("CLUSTERS_SOURCE", "."),
		ThumbnailDir: envOrDefault("THUMBNAIL_DIR", "cluster_thumbnails/"),
		Port:         envOrDefault("PORT", "8990"),
		LogLevel:     envOrDefault("LOG_LEVEL", "info"),
		Watch:        watch,
	}

	if _, err := log.ParseLevel(cfg.LogLevel); err != nil {
		return Config{}, fmt.Errorf("LOG_LEVEL: %w", err)
	}

	return cfg, nil
}

// ApplyLogLevel configures the default logger. An unknown level leaves the
// logger as it was.
func (c Config) ApplyLogLevel() error {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	log.SetLevel(level)
	return nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
