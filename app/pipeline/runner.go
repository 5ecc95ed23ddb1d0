package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/eventcomb/eventcomb/app/calendar"
	"github.com/eventcomb/eventcomb/app/cfg"
	"github.com/eventcomb/eventcomb/app/config"
	"github.com/eventcomb/eventcomb/app/curated"
	"github.com/eventcomb/eventcomb/app/event"
	"github.com/eventcomb/eventcomb/app/fetch"
	"github.com/eventcomb/eventcomb/app/parser"
	"github.com/eventcomb/eventcomb/app/report"
	"github.com/eventcomb/eventcomb/app/tasks"
)

// Result bundles everything one run produced.
type Result struct {
	Report         *report.RunReport
	CuratedSummary curated.Summary
	Events         []event.Event
}

// Runner executes one full aggregation run: dispatch every enabled
// source through the task pool, aggregate, dedup, sort, write the
// combined and per-source calendars, the run report, and the curated
// feeds. Per-source and per-feed failures are isolated; only output
// write failures mark the run itself as failed.
type Runner struct {
	fetcher    *fetch.Fetcher
	registry   *parser.Registry
	normalizer *parser.Normalizer
	writer     *calendar.Writer
}

func NewRunner(httpClient *http.Client) *Runner {
	c := cfg.Get()

	return &Runner{
		fetcher: fetch.NewFetcher(httpClient, c.UserAgent, c.FetchRetries,
			time.Duration(c.BackoffUnit)*time.Second),
		registry:   parser.NewRegistry(),
		normalizer: parser.NewNormalizer(),
		writer:     calendar.NewWriter(c.Version),
	}
}

func (r *Runner) Run(ctx context.Context) (*Result, error) {
	c := cfg.Get()
	startedAt := time.Now().UTC()
	rep := report.New(c.Version, startedAt)

	sources, err := config.LoadSources(c.SourcesFile)
	if err != nil {
		rep.Fail(err)
		r.writeBestEffortReport(rep)
		return &Result{Report: rep}, err
	}

	enabled := make([]config.SourceConfig, 0, len(sources))
	for _, src := range sources {
		if src.Enabled {
			enabled = append(enabled, src)
		}
	}

	slog.Info("Run started", "sources", len(sources), "enabled", len(enabled))

	results := r.processSources(ctx, enabled)

	aggregator := event.NewAggregator()
	for i, src := range enabled {
		res, ok := results[i]
		if !ok {
			// Task never delivered a result (run cancelled mid-flight).
			res = tasks.SourceResult{
				Index: i,
				Log: report.SourceLog{
					Name:  src.Name,
					Type:  src.Type,
					URL:   src.URL,
					Error: "run cancelled before source was processed",
				},
			}
		}
		rep.AddSource(res.Log)
		// Failed and empty sources are registered too, so every enabled
		// source still yields a (possibly empty) calendar artifact.
		aggregator.Add(src.Name, res.Events)
	}

	all := aggregator.Aggregate()
	rep.SetEvents(all, c.PreviewLimit)

	slog.Info("Aggregation completed", "total", len(all), "sources_processed", rep.SourcesProcessed)

	if err := r.writeCalendars(aggregator, all); err != nil {
		rep.Fail(err)
		r.writeBestEffortReport(rep)
		return &Result{Report: rep, Events: all}, err
	}

	if err := rep.WriteFile(filepath.Join(c.OutputDir, "report.json")); err != nil {
		rep.Fail(err)
		return &Result{Report: rep, Events: all}, err
	}

	summary, err := r.runCurated(all, startedAt)
	if err != nil {
		rep.Fail(err)
		r.writeBestEffortReport(rep)
		return &Result{Report: rep, CuratedSummary: summary, Events: all}, err
	}

	return &Result{Report: rep, CuratedSummary: summary, Events: all}, nil
}

// processSources fans the enabled sources out onto the worker pool and
// collects results keyed by configuration index.
func (r *Runner) processSources(ctx context.Context, enabled []config.SourceConfig) map[int]tasks.SourceResult {
	c := cfg.Get()
	loc := c.Location()

	results := make(chan tasks.SourceResult, len(enabled))

	pool := tasks.NewPool(c.WorkerCount)
	pool.Start(ctx)

	for i, src := range enabled {
		pool.Enqueue(tasks.NewProcessSourceTask(i, src, r.fetcher, r.registry, r.normalizer, loc, results))
	}

	pool.Wait()
	close(results)

	collected := make(map[int]tasks.SourceResult, len(enabled))
	for res := range results {
		collected[res.Index] = res
	}

	return collected
}

func (r *Runner) writeCalendars(aggregator *event.Aggregator, all []event.Event) error {
	c := cfg.Get()

	if err := r.writer.WriteFile(filepath.Join(c.OutputDir, "combined.ics"), "All Events", all); err != nil {
		return fmt.Errorf("failed to write combined calendar: %w", err)
	}

	bySource, order := aggregator.BySource()
	// Distinct source names can collapse to the same slug; suffix the
	// later ones so no source's artifact overwrites another's.
	used := make(map[string]int, len(order))
	for _, name := range order {
		slug := slugify(name)
		used[slug]++
		if n := used[slug]; n > 1 {
			slug = fmt.Sprintf("%s_%d", slug, n)
		}

		path := filepath.Join(c.OutputDir, fmt.Sprintf("source_%s.ics", slug))
		if err := r.writer.WriteFile(path, name, bySource[name]); err != nil {
			return fmt.Errorf("failed to write calendar for source %q: %w", name, err)
		}
	}

	return nil
}

func (r *Runner) runCurated(all []event.Event, now time.Time) (curated.Summary, error) {
	c := cfg.Get()

	feeds, err := config.LoadCurated(c.CuratedFile)
	if err != nil {
		return curated.Summary{}, err
	}

	runner := curated.NewRunner(r.writer, c.OutputDir)
	summary := runner.Run(all, feeds, now)

	if err := writeJSON(filepath.Join(c.OutputDir, "curated_summary.json"), summary); err != nil {
		return summary, err
	}

	return summary, nil
}

func (r *Runner) writeBestEffortReport(rep *report.RunReport) {
	path := filepath.Join(cfg.Get().OutputDir, "report.json")
	if err := rep.WriteFile(path); err != nil {
		slog.Error("Failed to write best-effort report", "error", err)
	}
}

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

// slugify turns a source display name into a safe file name fragment.
func slugify(name string) string {
	slug := slugPattern.ReplaceAllString(strings.ToLower(name), "_")
	return strings.Trim(slug, "_")
}
