package search

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/vmunix/arrscout/internal/source"
)

// Orchestrator runs queries against every source.
type Orchestrator struct {
	sources []source.Source
	log     *slog.Logger
}

// NewOrchestrator creates an orchestrator. Source order is significant:
// results are merged in this order.
func NewOrchestrator(sources []source.Source, log *slog.Logger) *Orchestrator {
	if log == nil {
		log = slog.Default()
	}
	return &Orchestrator{sources: sources, log: log.With("component", "orchestrator")}
}

// Sources returns the source names in merge order.
func (o *Orchestrator) Sources() []string {
	names := make([]string, len(o.sources))
	for i, s := range o.sources {
		names[i] = s.Name()
	}
	return names
}

// Scrape runs the queries one after another. For each query all sources
// are searched in parallel and joined, and their results appended in
// source order. It stops early, returning what it has and the context
// error, when ctx is done.
func (o *Orchestrator) Scrape(ctx context.Context, queries []source.Query) ([]source.Result, error) {
	if len(o.sources) == 0 {
		return nil, ErrNoSources
	}
	start := time.Now()

	var all []source.Result
	for _, q := range queries {
		if err := ctx.Err(); err != nil {
			return all, err
		}
		all = append(all, o.scrapeOne(ctx, q)...)
	}

	o.log.Info("scrape complete", "queries", len(queries), "sources", len(o.sources),
		"results", len(all), "duration_ms", time.Since(start).Milliseconds())
	return all, ctx.Err()
}

func (o *Orchestrator) scrapeOne(ctx context.Context, q source.Query) []source.Result {
	start := time.Now()
	perSource := make([][]source.Result, len(o.sources))

	var g errgroup.Group
	for i, s := range o.sources {
		g.Go(func() error {
			sourceStart := time.Now()
			perSource[i] = s.Search(ctx, q)
			o.log.Debug("source returned", "source", s.Name(), "query", q.Text,
				"results", len(perSource[i]), "duration_ms", time.Since(sourceStart).Milliseconds())
			return nil
		})
	}
	_ = g.Wait()

	var merged []source.Result
	for _, rs := range perSource {
		merged = append(merged, rs...)
	}
	o.log.Debug("query complete", "query", q.Text, "results", len(merged), "duration_ms", time.Since(start).Milliseconds())
	return merged
}
