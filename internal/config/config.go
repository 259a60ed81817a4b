// Package config reads rawsh settings from the environment.
package config

import (
	"fmt"
	"strconv"
	"time"
)

// Config holds every setting the shell reads at startup.
type Config struct {
	Interpreter  string
	Flag         string
	Prompt       string
	PollInterval time.Duration
	StrictKeys   bool
	LogLevel     string
	LogFile      string
	NoColor      bool
}

// Default returns the settings used when the environment is empty.
func Default() Config {
	return Config{
		Interpreter:  "sh",
		Flag:         "-c",
		Prompt:       "> ",
		PollInterval: 500 * time.Millisecond,
		LogLevel:     "error",
	}
}

// FromEnv overlays the RAWSH_* variables (and NO_COLOR) found through getenv
// on the defaults.
func FromEnv(getenv func(string) string) (Config, error) {
	cfg := Default()

	if v := getenv("RAWSH_SHELL"); v != "" {
		cfg.Interpreter = v
	}
	if v := getenv("RAWSH_SHELL_FLAG"); v != "" {
		cfg.Flag = v
	}
	if v := getenv("RAWSH_PROMPT"); v != "" {
		cfg.Prompt = v
	}
	if v := getenv("RAWSH_POLL_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("RAWSH_POLL_INTERVAL: %w", err)
		}
		if d <= 0 {
			return Config{}, fmt.Errorf("RAWSH_POLL_INTERVAL: must be positive, got %s", v)
		}
		cfg.PollInterval = d
	}
	if v := getenv("RAWSH_STRICT_KEYS"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("RAWSH_STRICT_KEYS: %w", err)
		}
		cfg.StrictKeys = b
	}
	if v := getenv("RAWSH_LOG"); v != "" {
		cfg.LogLevel = v
	}
	cfg.LogFile = getenv("RAWSH_LOG_FILE")
	cfg.NoColor = getenv("NO_COLOR") != ""

	return cfg, nil
}
