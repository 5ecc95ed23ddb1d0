package curated

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/eventcomb/eventcomb/app/calendar"
	"github.com/eventcomb/eventcomb/app/config"
	"github.com/eventcomb/eventcomb/app/event"
)

// FeedSummary is one curated feed's entry in the processing summary.
type FeedSummary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Enabled     bool   `json:"enabled"`
	Count       int    `json:"count"`
	Path        string `json:"path"`
	ManualCount int    `json:"manual_count"`
	AutoCount   int    `json:"auto_count"`
	Error       string `json:"error,omitempty"`
}

// Summary is the curated processing result returned to the caller and
// written alongside the run report.
type Summary struct {
	GeneratedAt  string        `json:"generated_at"`
	TotalFeeds   int           `json:"total_feeds"`
	EnabledFeeds int           `json:"enabled_feeds"`
	Feeds        []FeedSummary `json:"feeds"`
}

// Runner drives selection and calendar output for every enabled curated
// feed. One feed's failure is isolated into its summary entry and never
// blocks the others.
type Runner struct {
	selector *Selector
	writer   *calendar.Writer
	outDir   string
}

func NewRunner(writer *calendar.Writer, outDir string) *Runner {
	return &Runner{
		selector: NewSelector(),
		writer:   writer,
		outDir:   outDir,
	}
}

func (r *Runner) Run(all []event.Event, feeds []config.CuratedFeedConfig, now time.Time) Summary {
	summary := Summary{
		GeneratedAt: now.UTC().Format(time.RFC3339),
		TotalFeeds:  len(feeds),
		Feeds:       []FeedSummary{},
	}

	for _, feed := range feeds {
		if !feed.Enabled {
			continue
		}
		summary.EnabledFeeds++

		entry := FeedSummary{
			ID:      feed.ID,
			Name:    feed.Name,
			Enabled: feed.Enabled,
		}

		sel := r.selector.Run(all, feed, now)
		entry.Count = len(sel.Events)
		entry.ManualCount = sel.ManualCount
		entry.AutoCount = sel.AutoCount

		path := filepath.Join(r.outDir, fmt.Sprintf("curated_%s.ics", feed.ID))
		if err := r.writer.WriteFile(path, feed.Name, sel.Events); err != nil {
			entry.Error = err.Error()
			slog.Error("Curated feed output failed", "feed", feed.ID, "error", err)
		} else {
			entry.Path = path
		}

		slog.Info("Curated feed processed",
			"feed", feed.ID,
			"count", entry.Count,
			"manual", entry.ManualCount,
			"auto", entry.AutoCount)

		summary.Feeds = append(summary.Feeds, entry)
	}

	return summary
}
