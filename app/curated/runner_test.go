package curated

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/eventcomb/eventcomb/app/calendar"
	"github.com/eventcomb/eventcomb/app/config"
	"github.com/eventcomb/eventcomb/app/event"
)

func TestRunner_WritesEnabledFeedsAndSkipsDisabled(t *testing.T) {
	outDir := t.TempDir()
	runner := NewRunner(calendar.NewWriter("test"), outDir)

	all := []event.Event{
		futureEvent("u1", "Jazz Night", 1),
	}

	feeds := []config.CuratedFeedConfig{
		{
			ID:      "jazz",
			Name:    "Jazz Events",
			Enabled: true,
			Preferences: &config.Preferences{
				Keywords: []string{"jazz"},
			},
		},
		{
			ID:      "disabled",
			Name:    "Disabled Feed",
			Enabled: false,
		},
	}

	summary := runner.Run(all, feeds, now)

	if summary.TotalFeeds != 2 {
		t.Errorf("Expected total_feeds 2, got %d", summary.TotalFeeds)
	}
	if summary.EnabledFeeds != 1 {
		t.Errorf("Expected enabled_feeds 1, got %d", summary.EnabledFeeds)
	}
	if len(summary.Feeds) != 1 {
		t.Fatalf("Expected 1 feed entry, got %d", len(summary.Feeds))
	}

	entry := summary.Feeds[0]
	if entry.ID != "jazz" {
		t.Errorf("Expected feed id 'jazz', got %q", entry.ID)
	}
	if entry.Count != 1 || entry.AutoCount != 1 || entry.ManualCount != 0 {
		t.Errorf("Unexpected counts: %+v", entry)
	}
	if entry.Error != "" {
		t.Errorf("Unexpected error: %q", entry.Error)
	}

	wantPath := filepath.Join(outDir, "curated_jazz.ics")
	if entry.Path != wantPath {
		t.Errorf("Expected path %q, got %q", wantPath, entry.Path)
	}

	data, err := os.ReadFile(wantPath)
	if err != nil {
		t.Fatalf("Expected curated calendar file: %v", err)
	}
	if !strings.Contains(string(data), "Jazz Night") {
		t.Error("Expected selected event in curated calendar")
	}

	if _, err := os.Stat(filepath.Join(outDir, "curated_disabled.ics")); !os.IsNotExist(err) {
		t.Error("Expected no output for disabled feed")
	}
}

func TestRunner_FeedErrorIsIsolated(t *testing.T) {
	outDir := t.TempDir()
	// Make the output directory unwritable for the first feed by using
	// a path whose parent is a file.
	blocker := filepath.Join(outDir, "blocked")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	runner := NewRunner(calendar.NewWriter("test"), filepath.Join(blocker, "sub"))
	good := NewRunner(calendar.NewWriter("test"), outDir)

	feeds := []config.CuratedFeedConfig{
		{ID: "a", Name: "A", Enabled: true, Preferences: &config.Preferences{}},
		{ID: "b", Name: "B", Enabled: true, Preferences: &config.Preferences{}},
	}

	summary := runner.Run(nil, feeds, now)

	if len(summary.Feeds) != 2 {
		t.Fatalf("Expected both feeds in summary, got %d", len(summary.Feeds))
	}
	for _, entry := range summary.Feeds {
		if entry.Error == "" {
			t.Errorf("Expected write error recorded for feed %q", entry.ID)
		}
	}

	// A healthy runner processes the same definitions without errors.
	summary = good.Run(nil, feeds, now)
	for _, entry := range summary.Feeds {
		if entry.Error != "" {
			t.Errorf("Unexpected error for feed %q: %s", entry.ID, entry.Error)
		}
	}
}
