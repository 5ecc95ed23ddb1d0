package calendar

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/eventcomb/eventcomb/app/event"
)

// Writer serializes event collections to the iCalendar wire format.
type Writer struct {
	prodID string
}

func NewWriter(version string) *Writer {
	return &Writer{
		prodID: fmt.Sprintf("-//Event Comb//Event Comb %s//EN", version),
	}
}

// Run renders name + events as a VCALENDAR document.
func (w *Writer) Run(name string, events []event.Event) string {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(w.prodID)
	cal.SetXWRCalName(name)

	now := time.Now().UTC()

	for _, ev := range events {
		ve := cal.AddEvent(ev.UID)
		ve.SetDtStampTime(now)
		ve.SetSummary(ev.Title)
		ve.SetStartAt(ev.StartUTC)

		if ev.EndUTC != nil {
			ve.SetEndAt(*ev.EndUTC)
		}
		if ev.Description != "" {
			ve.SetDescription(ev.Description)
		}
		if ev.Location != "" {
			ve.SetLocation(ev.Location)
		}
		if ev.URL != "" {
			ve.SetURL(ev.URL)
		}
	}

	return cal.Serialize()
}

// WriteFile renders and writes a calendar, creating the parent directory
// when needed.
func (w *Writer) WriteFile(path, name string, events []event.Event) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	content := w.Run(name, events)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write calendar file: %w", err)
	}

	return nil
}
