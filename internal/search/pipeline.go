package search

import (
	"context"
	"log/slog"
	"time"

	"github.com/vmunix/arrscout/internal/media"
	"github.com/vmunix/arrscout/internal/source"
	"github.com/vmunix/arrscout/pkg/release"
)

// Pipeline produces the ranked result set for one job.
type Pipeline struct {
	orch    *Orchestrator
	matcher *release.Matcher
	log     *slog.Logger
}

// NewPipeline creates a pipeline. A nil matcher uses the embedded wordlists.
func NewPipeline(orch *Orchestrator, matcher *release.Matcher, log *slog.Logger) *Pipeline {
	if matcher == nil {
		matcher = release.DefaultMatcher()
	}
	if log == nil {
		log = slog.Default()
	}
	return &Pipeline{orch: orch, matcher: matcher, log: log.With("component", "pipeline")}
}

// Run normalizes the metadata, scrapes every query and returns the
// deduplicated results grouped by canonical title. Every returned result
// matches at least one of the job's title variants.
func (p *Pipeline) Run(ctx context.Context, id media.Identity, md media.Metadata) ([]source.Result, error) {
	start := time.Now()

	vs := media.Normalize(md, id.Season)
	if len(vs.Titles) == 0 {
		return nil, ErrNoTitles
	}
	queries := Queries(id, vs)
	p.log.Debug("queries built", "key", id.Key(), "titles", len(vs.Titles), "queries", len(queries))

	raw, err := p.orch.Scrape(ctx, queries)
	if err != nil {
		return nil, err
	}

	// Filter before grouping so dropped results do not weigh on group order.
	ranked := GroupByParsedTitle(p.revalidate(Dedupe(raw), vs))

	p.log.Info("pipeline complete", "key", id.Key(), "raw", len(raw), "results", len(ranked),
		"duration_ms", time.Since(start).Milliseconds())
	return ranked, nil
}

func (p *Pipeline) revalidate(results []source.Result, vs media.VariantSet) []source.Result {
	years := vs.Years()
	out := results[:0]
	debug := p.log.Enabled(context.Background(), slog.LevelDebug)
	for _, r := range results {
		kept := false
		for _, title := range vs.Titles {
			if p.matcher.MeetsConditions(title, years, r.Title) {
				out = append(out, r)
				kept = true
				break
			}
		}
		if !kept && debug {
			sim := release.ScoreRelease(vs.Titles, years, r.Title)
			p.log.Debug("result dropped", "title", r.Title, "closest", sim.Best,
				"similarity", sim.Score, "year", sim.Year)
		}
	}
	return out
}
