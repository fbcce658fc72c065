// internal/config/write.go
package config

import (
	_ "embed"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

//go:embed default_config.toml
var defaultConfig string

const redacted = "********"

// WriteDefault writes the commented example config to path, creating
// parent directories.
func WriteDefault(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	return os.WriteFile(path, []byte(defaultConfig), 0644)
}

// Encode writes the config as TOML. Durations are written as strings
// ("10s") so the output loads back unchanged.
func (c *Config) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}

// Write saves the config as TOML at path, creating parent directories.
func (c *Config) Write(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := c.Encode(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("encode config: %w", err)
	}
	return f.Close()
}

// Redacted returns a copy with source API keys and cookies masked.
func (c *Config) Redacted() *Config {
	out := *c
	out.Sources = make(map[string]SourceConfig, len(c.Sources))
	for name, s := range c.Sources {
		if s.APIKey != "" {
			s.APIKey = redacted
		}
		if s.Cookie != "" {
			s.Cookie = redacted
		}
		out.Sources[name] = s
	}
	return &out
}
