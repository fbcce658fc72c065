// internal/jobs/runner.go
package jobs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/vmunix/arrscout/internal/media"
	"github.com/vmunix/arrscout/internal/results"
	"github.com/vmunix/arrscout/internal/source"
)

// Pipeline produces the ranked results for a single job.
type Pipeline interface {
	Run(ctx context.Context, id media.Identity, md media.Metadata) ([]source.Result, error)
}

// Config for the job runner.
type Config struct {
	Workers int
	Timeout time.Duration
}

// Options for a single Run call.
type Options struct {
	// Force reruns keys that are already marked done.
	Force bool
}

// Outcome reports what happened to one job.
type Outcome struct {
	Key      string
	Results  []source.Result
	Skipped  bool
	Err      error
	Duration time.Duration
}

// Runner expands identities into jobs and runs them.
type Runner struct {
	pipeline Pipeline
	store    results.Store
	config   Config
	logger   *slog.Logger
}

// NewRunner creates a new runner.
func NewRunner(pipeline Pipeline, store results.Store, cfg Config, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	return &Runner{
		pipeline: pipeline,
		store:    store,
		config:   cfg,
		logger:   logger.With("component", "jobs"),
	}
}

// Run scrapes every job of id and stores each successful result set under
// its key, marked done. Failed, timed out and canceled jobs write nothing.
// Outcomes are returned in job order; the error joins every job failure.
func (r *Runner) Run(ctx context.Context, id media.Identity, md media.Metadata, opts Options) ([]Outcome, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	jobs := media.Jobs(id, md)
	if len(jobs) == 0 {
		return nil, fmt.Errorf("%s: %w", id, ErrNoJobs)
	}

	outcomes := make([]Outcome, len(jobs))

	var g errgroup.Group
	g.SetLimit(r.config.Workers)
	for i, job := range jobs {
		g.Go(func() error {
			outcomes[i] = r.runJob(ctx, job, md, opts)
			return nil
		})
	}
	_ = g.Wait()

	var errs []error
	for _, o := range outcomes {
		if o.Err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", o.Key, o.Err))
		}
	}
	return outcomes, errors.Join(errs...)
}

func (r *Runner) runJob(ctx context.Context, id media.Identity, md media.Metadata, opts Options) Outcome {
	key := id.Key()
	out := Outcome{Key: key}
	log := r.logger.With("key", key)

	if !opts.Force && r.store.IsDone(ctx, key) {
		log.Debug("job already done, skipping")
		out.Skipped = true
		return out
	}

	if r.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.config.Timeout)
		defer cancel()
	}

	start := time.Now()
	ranked, err := r.pipeline.Run(ctx, id, md)
	out.Duration = time.Since(start)
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		log.Warn("job failed", "error", err, "duration_ms", out.Duration.Milliseconds())
		out.Err = err
		return out
	}

	// A finished scrape is saved even if the deadline passes mid-write.
	saveCtx := context.WithoutCancel(ctx)
	if err := r.store.SaveResults(saveCtx, key, ranked, results.SaveOptions{MarkDone: true, Replace: true}); err != nil {
		log.Error("save results failed", "error", err)
		out.Err = err
		return out
	}

	out.Results = ranked
	log.Info("job complete", "results", len(ranked), "duration_ms", out.Duration.Milliseconds())
	return out
}
