package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/eventcomb/eventcomb/app/config"
	"github.com/eventcomb/eventcomb/app/event"
	"github.com/eventcomb/eventcomb/app/fetch"
	"github.com/eventcomb/eventcomb/app/parser"
	"github.com/eventcomb/eventcomb/app/report"
)

// SourceResult carries one source's outcome back to the pipeline. Index
// is the source's position in configuration order so results collected
// from concurrent workers stay attributable and ordered.
type SourceResult struct {
	Index  int
	Log    report.SourceLog
	Events []event.Event
}

// ProcessSourceTask runs one source's fetch, parse, normalize and
// per-source dedup chain. Failures are recorded in the result's log
// entry; they never abort the run.
type ProcessSourceTask struct {
	Task
	Index      int
	Source     config.SourceConfig
	fetcher    *fetch.Fetcher
	registry   *parser.Registry
	normalizer *parser.Normalizer
	location   *time.Location
	results    chan<- SourceResult
}

func NewProcessSourceTask(index int, source config.SourceConfig, fetcher *fetch.Fetcher,
	registry *parser.Registry, normalizer *parser.Normalizer, location *time.Location,
	results chan<- SourceResult) *ProcessSourceTask {
	return &ProcessSourceTask{
		Task:       NewTask(TaskTypeProcessSource, source.Name),
		Index:      index,
		Source:     source,
		fetcher:    fetcher,
		registry:   registry,
		normalizer: normalizer,
		location:   location,
		results:    results,
	}
}

func (t *ProcessSourceTask) Execute(ctx context.Context) {
	result := SourceResult{
		Index: t.Index,
		Log: report.SourceLog{
			Name: t.Source.Name,
			Type: t.Source.Type,
			URL:  t.Source.URL,
		},
	}

	events, diag, err := t.process(ctx)
	if err != nil {
		result.Log.OK = false
		result.Log.Error = err.Error()
		slog.Error("Source processing failed", "source", t.Source.Name, "error", err)
	} else {
		result.Log.OK = true
		result.Log.Count = len(events)
		result.Events = events

		slog.Info("Task completed",
			"type", TaskTypeProcessSource,
			"source", t.Source.Name,
			"duration", t.GetDuration(),
			"count", len(events))
	}
	result.Log.Diag = diag

	t.results <- result
}

func (t *ProcessSourceTask) process(ctx context.Context) ([]event.Event, string, error) {
	p, err := t.registry.Get(t.Source.Type)
	if err != nil {
		return nil, "", err
	}

	data, err := t.fetcher.Run(ctx, t.Source.URL)
	if err != nil {
		return nil, "", fmt.Errorf("failed to fetch source: %w", err)
	}

	src := parser.Source{
		Name:     t.Source.Name,
		Calendar: t.Source.Calendar,
		BaseURL:  t.Source.URL,
		Location: t.location,
	}

	candidates, err := p.Parse(data, src)
	if err != nil {
		return nil, "", fmt.Errorf("failed to parse source: %w", err)
	}

	events := t.normalizer.Run(candidates, src)
	events = event.Dedupe(events)

	diag := ""
	if t.Source.MinExpected > 0 && len(events) < t.Source.MinExpected {
		diag = fmt.Sprintf("count %d below min_expected %d", len(events), t.Source.MinExpected)
	}

	return events, diag, nil
}
