package config

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Config holds user configuration values.
type Config struct {
	// Style names the chroma stylesheet used for highlighted markup.
	Style string
	// DebounceMS is the live-typing debounce window in milliseconds.
	DebounceMS int
}

// Default returns the builtin configuration.
func Default() *Config {
	return &Config{Style: "monokai", DebounceMS: 300}
}

// Load loads configuration from the provided path. If the file does not
// exist, defaults are returned.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.SplitN(line, ":", 2)
		if len(parts) != 2 {
			return nil, errors.New("invalid config line: " + line)
		}
		key := strings.TrimSpace(parts[0])
		val := strings.TrimSpace(parts[1])
		switch key {
		case "style":
			if val == "" {
				return nil, errors.New("style must not be empty")
			}
			cfg.Style = val
		case "debounce_ms":
			n, err := strconv.Atoi(val)
			if err != nil || n <= 0 {
				return nil, errors.New("invalid debounce_ms: " + val)
			}
			cfg.DebounceMS = n
		default:
			return nil, errors.New("unknown config key: " + key)
		}
	}
	return cfg, nil
}

// LoadDefault attempts to read ~/.litepad/config.yaml.
func LoadDefault() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Default(), nil
	}
	return Load(filepath.Join(home, ".litepad", "config.yaml"))
}

// Delay returns the debounce window as a duration.
func (c *Config) Delay() time.Duration {
	return time.Duration(c.DebounceMS) * time.Millisecond
}
