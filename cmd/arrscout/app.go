package main

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/vmunix/arrscout/internal/config"
	"github.com/vmunix/arrscout/internal/jobs"
	"github.com/vmunix/arrscout/internal/results"
	"github.com/vmunix/arrscout/internal/search"
	"github.com/vmunix/arrscout/internal/source"
	"github.com/vmunix/arrscout/pkg/infohash"
)

// loadConfig loads --config, or the discovered config file. Commands that
// can run without one get the defaults when nothing is found.
func loadConfig(required bool) (*config.Config, error) {
	path := configPath
	if path == "" {
		found, err := config.Discover()
		if err != nil {
			if !required && errors.Is(err, config.ErrNoConfig) {
				return config.Default(), nil
			}
			if errors.Is(err, config.ErrNoConfig) {
				return nil, fmt.Errorf("%w (run 'arrscout config init' to create one)", err)
			}
			return nil, err
		}
		path = found
	}

	if !required {
		return config.LoadWithoutValidation(path)
	}
	return config.Load(path)
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// newLogger writes text logs to stderr, and to a rotated file when one is
// configured. The returned closer releases the file.
func newLogger(cfg config.LogConfig, override string) (*slog.Logger, io.Closer, error) {
	level := cfg.Level
	if override != "" {
		level = override
	}

	var (
		w      io.Writer = os.Stderr
		closer io.Closer = nopCloser{}
	)
	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0755); err != nil {
			return nil, nil, fmt.Errorf("create log dir: %w", err)
		}
		fileWriter := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   cfg.Compress,
		}
		w = io.MultiWriter(os.Stderr, fileWriter)
		closer = fileWriter
	}

	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: parseLogLevel(level)})
	return slog.New(handler), closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// app holds the components built from the config for a scrape run.
type app struct {
	db     *sql.DB
	store  *results.SQLiteStore
	runner *jobs.Runner
}

func (a *app) Close() error {
	return a.db.Close()
}

func newApp(cfg *config.Config, log *slog.Logger) (*app, error) {
	matcher, err := cfg.Matcher()
	if err != nil {
		return nil, err
	}

	fetchCfg := cfg.FetchConfig()
	resolver := infohash.NewResolver(infohash.Options{
		Timeout:   fetchCfg.Timeout,
		UserAgent: fetchCfg.UserAgent,
	}, log)

	sources, err := source.NewRegistry(cfg.Sites(), source.Deps{
		Fetcher:  source.NewFetcher(fetchCfg, log),
		Matcher:  matcher,
		Resolver: resolver,
		Limits:   cfg.Limits(),
		Log:      log,
	})
	if err != nil {
		return nil, err
	}

	db, err := results.Open(cfg.Database.Path)
	if err != nil {
		return nil, err
	}
	store := results.NewSQLiteStore(db)

	pipeline := search.NewPipeline(search.NewOrchestrator(sources, log), matcher, log)
	return &app{
		db:     db,
		store:  store,
		runner: jobs.NewRunner(pipeline, store, cfg.Jobs(), log),
	}, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// formatSize renders a size in megabytes.
func formatSize(mb float64) string {
	switch {
	case mb <= 0:
		return "-"
	case mb >= 1024*1024:
		return fmt.Sprintf("%.1f TB", mb/(1024*1024))
	case mb >= 1024:
		return fmt.Sprintf("%.1f GB", mb/1024)
	default:
		return fmt.Sprintf("%.0f MB", mb)
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
