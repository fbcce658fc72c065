// Package config handles TOML configuration loading with environment variable substitution.
package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/vmunix/arrscout/internal/jobs"
	"github.com/vmunix/arrscout/internal/source"
)

// Config is the root configuration structure.
type Config struct {
	Log       LogConfig               `toml:"log"`
	Database  DatabaseConfig          `toml:"database"`
	Scrape    ScrapeConfig            `toml:"scrape"`
	Sources   map[string]SourceConfig `toml:"sources"`
	Wordlists WordlistsConfig         `toml:"wordlists"`
}

type LogConfig struct {
	Level      string `toml:"level"`
	File       string `toml:"file"`
	MaxSizeMB  int    `toml:"max_size_mb"`
	MaxBackups int    `toml:"max_backups"`
	MaxAgeDays int    `toml:"max_age_days"`
	Compress   bool   `toml:"compress"`
}

type DatabaseConfig struct {
	Path string `toml:"path"`
}

// ScrapeConfig tunes fetching, paging and job scheduling.
type ScrapeConfig struct {
	RetryAttempts     uint          `toml:"retry_attempts"`
	RetryDelay        time.Duration `toml:"retry_delay"`
	RequestTimeout    time.Duration `toml:"request_timeout"`
	JobTimeout        time.Duration `toml:"job_timeout"`
	RequestsPerSecond float64       `toml:"requests_per_second"` // per host; negative disables limiting
	Burst             int           `toml:"burst"`
	MaxPages          int           `toml:"max_pages"`
	MissThreshold     int           `toml:"miss_threshold"`
	ResolveWorkers    int           `toml:"resolve_workers"`
	JobWorkers        int           `toml:"job_workers"`
	UserAgent         string        `toml:"user_agent"`
}

type SourceConfig struct {
	Enabled bool   `toml:"enabled"`
	URL     string `toml:"url"`
	APIKey  string `toml:"api_key"`
	Cookie  string `toml:"cookie"`
}

// WordlistsConfig optionally replaces the embedded matcher dictionaries.
type WordlistsConfig struct {
	English string `toml:"english"`
	Banned  string `toml:"banned"`
}

// Load reads, parses and validates the configuration file.
func Load(path string) (*Config, error) {
	cfg, missing, err := load(path)
	if err != nil {
		return nil, err
	}

	cfgErr := &ConfigError{Path: path, Missing: missing, Errors: cfg.Validate()}
	if cfgErr.HasErrors() {
		return nil, cfgErr
	}
	return cfg, nil
}

// LoadWithoutValidation reads and parses the configuration file,
// ignoring unresolved environment variables and validation errors.
func LoadWithoutValidation(path string) (*Config, error) {
	cfg, _, err := load(path)
	return cfg, err
}

func load(path string) (*Config, []string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("reading config: %w", err)
	}

	content, missing := substituteEnvVars(string(data))

	var cfg Config
	if _, err := toml.Decode(content, &cfg); err != nil {
		return nil, nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.applyDefaults()
	return &cfg, missing, nil
}

// Default returns a configuration with every default applied and no sources.
func Default() *Config {
	var cfg Config
	cfg.applyDefaults()
	return &cfg
}

func (c *Config) applyDefaults() {
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.MaxSizeMB == 0 {
		c.Log.MaxSizeMB = 10
	}
	if c.Log.MaxBackups == 0 {
		c.Log.MaxBackups = 3
	}
	if c.Log.MaxAgeDays == 0 {
		c.Log.MaxAgeDays = 28
	}
	if c.Database.Path == "" {
		c.Database.Path = "./data/arrscout.db"
	}

	fetch := source.DefaultFetchConfig()
	limits := source.DefaultLimits()
	s := &c.Scrape
	if s.RetryAttempts == 0 {
		s.RetryAttempts = fetch.Attempts
	}
	if s.RetryDelay == 0 {
		s.RetryDelay = fetch.Delay
	}
	if s.RequestTimeout == 0 {
		s.RequestTimeout = fetch.Timeout
	}
	if s.JobTimeout == 0 {
		s.JobTimeout = 10 * time.Minute
	}
	if s.RequestsPerSecond == 0 {
		s.RequestsPerSecond = fetch.RequestsPerSecond
	}
	if s.Burst == 0 {
		s.Burst = fetch.Burst
	}
	if s.MaxPages == 0 {
		s.MaxPages = limits.MaxPages
	}
	if s.MissThreshold == 0 {
		s.MissThreshold = limits.MissThreshold
	}
	if s.ResolveWorkers == 0 {
		s.ResolveWorkers = limits.ResolveWorkers
	}
	if s.JobWorkers == 0 {
		s.JobWorkers = 2
	}
	if s.UserAgent == "" {
		s.UserAgent = fetch.UserAgent
	}
}

// FetchConfig returns the settings for the shared HTTP fetcher.
func (c *Config) FetchConfig() source.FetchConfig {
	return source.FetchConfig{
		Attempts:          c.Scrape.RetryAttempts,
		Delay:             c.Scrape.RetryDelay,
		Timeout:           c.Scrape.RequestTimeout,
		RequestsPerSecond: c.Scrape.RequestsPerSecond,
		Burst:             c.Scrape.Burst,
		UserAgent:         c.Scrape.UserAgent,
	}
}

// Limits returns the per-query paging limits.
func (c *Config) Limits() source.Limits {
	return source.Limits{
		MaxPages:       c.Scrape.MaxPages,
		MissThreshold:  c.Scrape.MissThreshold,
		ResolveWorkers: c.Scrape.ResolveWorkers,
	}
}

// Jobs returns the job runner settings.
func (c *Config) Jobs() jobs.Config {
	return jobs.Config{Workers: c.Scrape.JobWorkers, Timeout: c.Scrape.JobTimeout}
}

// Sites returns the adapter settings keyed by source name.
func (c *Config) Sites() map[string]source.SiteConfig {
	sites := make(map[string]source.SiteConfig, len(c.Sources))
	for name, s := range c.Sources {
		sites[name] = source.SiteConfig{
			Enabled: s.Enabled,
			URL:     strings.TrimRight(s.URL, "/"),
			APIKey:  s.APIKey,
			Cookie:  s.Cookie,
		}
	}
	return sites
}

// envVarPattern matches ${VAR}, ${VAR:-default} and ${VAR:?message}.
var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(?:(:-|:\?)([^}]*))?\}`)

// substituteEnvVars replaces environment references and reports the ones
// that could not be resolved. Unresolved references are left unchanged.
func substituteEnvVars(content string) (string, []string) {
	var missing []string
	out := envVarPattern.ReplaceAllStringFunc(content, func(match string) string {
		m := envVarPattern.FindStringSubmatch(match)
		name, op, arg := m[1], m[2], m[3]
		value, ok := os.LookupEnv(name)

		switch op {
		case ":-":
			if !ok || value == "" {
				return arg
			}
			return value
		case ":?":
			if !ok || value == "" {
				missing = append(missing, name+": "+arg)
				return match
			}
			return value
		}

		if !ok {
			missing = append(missing, name)
			return match
		}
		return value
	})
	return out, missing
}
