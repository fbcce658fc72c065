// internal/config/validate.go
package config

import (
	"fmt"
	"net/url"
	"os"
	"sort"

	"github.com/vmunix/arrscout/internal/source"
)

var validLogLevels = map[string]bool{
	"debug": true, "info": true, "warn": true, "error": true, "": true,
}

// Sources that cannot run without an API key.
var needsAPIKey = map[string]bool{
	"torznab": true, "prowlarr": true,
}

// Validate checks the configuration for errors.
// Returns a slice of error messages (empty if valid).
func (c *Config) Validate() []string {
	var errs []string

	if !validLogLevels[c.Log.Level] {
		errs = append(errs, fmt.Sprintf("log.level: must be one of debug, info, warn, error; got %q", c.Log.Level))
	}
	if c.Log.File != "" && c.Log.MaxSizeMB < 0 {
		errs = append(errs, fmt.Sprintf("log.max_size_mb: must not be negative, got %d", c.Log.MaxSizeMB))
	}

	s := c.Scrape
	if s.RetryDelay < 0 {
		errs = append(errs, "scrape.retry_delay: must not be negative")
	}
	if s.RequestTimeout < 0 {
		errs = append(errs, "scrape.request_timeout: must not be negative")
	}
	if s.JobTimeout < 0 {
		errs = append(errs, "scrape.job_timeout: must not be negative")
	}
	if s.Burst < 0 {
		errs = append(errs, fmt.Sprintf("scrape.burst: must not be negative, got %d", s.Burst))
	}
	for field, v := range map[string]int{
		"max_pages":       s.MaxPages,
		"miss_threshold":  s.MissThreshold,
		"resolve_workers": s.ResolveWorkers,
		"job_workers":     s.JobWorkers,
	} {
		if v < 0 {
			errs = append(errs, fmt.Sprintf("scrape.%s: must not be negative, got %d", field, v))
		}
	}

	names := make([]string, 0, len(c.Sources))
	for name := range c.Sources {
		names = append(names, name)
	}
	sort.Strings(names)

	enabled := 0
	for _, name := range names {
		src := c.Sources[name]
		if !source.Known(name) {
			errs = append(errs, fmt.Sprintf("sources.%s: unknown source", name))
			continue
		}
		if !src.Enabled {
			continue
		}
		enabled++
		if src.URL != "" {
			if u, err := url.Parse(src.URL); err != nil || u.Scheme == "" || u.Host == "" {
				errs = append(errs, fmt.Sprintf("sources.%s.url: invalid URL %q", name, src.URL))
			}
		}
		if needsAPIKey[name] {
			if src.URL == "" {
				errs = append(errs, fmt.Sprintf("sources.%s.url: required", name))
			}
			if src.APIKey == "" {
				errs = append(errs, fmt.Sprintf("sources.%s.api_key: required", name))
			}
		}
	}
	if enabled == 0 {
		errs = append(errs, "sources: at least one source must be enabled")
	}

	for field, path := range map[string]string{"english": c.Wordlists.English, "banned": c.Wordlists.Banned} {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); err != nil {
			errs = append(errs, fmt.Sprintf("wordlists.%s: %v", field, err))
		}
	}

	sort.Strings(errs)
	return errs
}
