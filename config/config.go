// Package config loads the console configuration from a YAML file with
// environment variable overrides.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the console's runtime configuration.
type Config struct {
	// Listen is the address the console binds to.
	Listen string `yaml:"listen"`
	// BackendURL is the base URL of the billing platform REST API.
	BackendURL string `yaml:"backend_url"`
	// DataDir holds the durable session store and the keeper secret.
	DataDir string `yaml:"data_dir"`
	Log     Log    `yaml:"log"`
}

// Log configures the structured logger.
type Log struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json or text
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Listen:     ":8089",
		BackendURL: "http://localhost:8080/api",
		DataDir:    "./data",
		Log:        Log{Level: "info", Format: "json"},
	}
}

// Load reads the configuration file at path, falling back to defaults when
// path is empty or the file does not exist, then applies environment
// overrides (ALX_LISTEN, ALX_BACKEND_URL, ALX_DATA_DIR, ALX_LOG_LEVEL,
// ALX_LOG_FORMAT).
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
			}
		case os.IsNotExist(err):
			// Defaults apply.
		default:
			return Config{}, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	if v := os.Getenv("ALX_LISTEN"); v != "" {
		cfg.Listen = v
	}
	if v := os.Getenv("ALX_BACKEND_URL"); v != "" {
		cfg.BackendURL = v
	}
	if v := os.Getenv("ALX_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv("ALX_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("ALX_LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Listen == "" {
		return fmt.Errorf("listen address is required")
	}
	if c.BackendURL == "" {
		return fmt.Errorf("backend_url is required")
	}
	if c.DataDir == "" {
		return fmt.Errorf("data_dir is required")
	}
	switch strings.ToLower(c.Log.Format) {
	case "json", "text", "":
	default:
		return fmt.Errorf("log format must be json or text, got %q", c.Log.Format)
	}
	if _, err := c.slogLevel(); err != nil {
		return err
	}
	return nil
}

func (c Config) slogLevel() (slog.Level, error) {
	switch strings.ToLower(c.Log.Level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log level %q", c.Log.Level)
	}
}

// Logger builds the configured slog.Logger writing to stderr.
func (c Config) Logger() *slog.Logger {
	level, err := c.slogLevel()
	if err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if strings.EqualFold(c.Log.Format, "text") {
		handler = slog.NewTextHandler(os.Stderr, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	}
	return slog.New(handler)
}
