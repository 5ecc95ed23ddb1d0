package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/eventcomb/eventcomb/app/event"
)

// SourceLog is one source's outcome within a run. Field names are a
// frozen contract consumed by external tooling.
type SourceLog struct {
	Name  string `json:"name"`
	Type  string `json:"type"`
	URL   string `json:"url"`
	Count int    `json:"count"`
	OK    bool   `json:"ok"`
	Error string `json:"error"`
	Diag  string `json:"diag"`
}

// RunReport is the machine-readable record of one aggregation run.
// Built once, written as the terminal output of the pipeline, never
// mutated after write.
type RunReport struct {
	Version            string        `json:"version"`
	RunStartedUTC      string        `json:"run_started_utc"`
	Success            bool          `json:"success"`
	TotalEvents        int           `json:"total_events"`
	SourcesProcessed   int           `json:"sources_processed"`
	SourceLogs         []SourceLog   `json:"source_logs"`
	EventsPreview      []event.Event `json:"events_preview"`
	EventsPreviewCount int           `json:"events_preview_count"`

	RunError string `json:"run_error,omitempty"`
}

func New(version string, startedAt time.Time) *RunReport {
	return &RunReport{
		Version:       version,
		RunStartedUTC: startedAt.UTC().Format(time.RFC3339),
		Success:       true,
		SourceLogs:    []SourceLog{},
		EventsPreview: []event.Event{},
	}
}

func (r *RunReport) AddSource(entry SourceLog) {
	r.SourceLogs = append(r.SourceLogs, entry)
	r.SourcesProcessed = len(r.SourceLogs)
}

// SetEvents records the final aggregate and fills the bounded preview.
func (r *RunReport) SetEvents(events []event.Event, previewLimit int) {
	r.TotalEvents = len(events)

	preview := events
	if previewLimit > 0 && len(preview) > previewLimit {
		preview = preview[:previewLimit]
	}
	r.EventsPreview = preview
	r.EventsPreviewCount = len(preview)
}

// Fail marks the run as unsuccessful with its causing error. Per-source
// failures do not call this; only whole-pipeline failures do.
func (r *RunReport) Fail(err error) {
	r.Success = false
	if err != nil {
		r.RunError = err.Error()
	}
}

func (r *RunReport) WriteFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	return nil
}
