package parser

import (
	"log/slog"
	"strings"
	"time"

	"github.com/eventcomb/eventcomb/app/event"
)

// Normalizer enforces the canonical event contract uniformly over every
// parser variant's output: required title and start, UTC conversion,
// per-variant end defaulting, stable UID derivation.
type Normalizer struct{}

func NewNormalizer() *Normalizer {
	return &Normalizer{}
}

// Run converts candidates into canonical events. Candidates missing a
// title or a parseable start are skipped silently; the skip is only
// visible through the source's final count.
func (n *Normalizer) Run(candidates []Candidate, src Source) []event.Event {
	events := make([]event.Event, 0, len(candidates))
	skipped := 0

	for _, c := range candidates {
		ev, ok := n.normalize(c, src)
		if !ok {
			skipped++
			continue
		}
		events = append(events, ev)
	}

	if skipped > 0 {
		slog.Debug("Skipped invalid candidates", "source", src.Name, "skipped", skipped, "kept", len(events))
	}

	return events
}

func (n *Normalizer) normalize(c Candidate, src Source) (event.Event, bool) {
	title := strings.TrimSpace(c.Title)
	if title == "" {
		return event.Event{}, false
	}

	start, ok := n.resolveTime(c.StartParsed, c.Start, src.Location)
	if !ok {
		return event.Event{}, false
	}

	var end *time.Time
	if endTime, ok := n.resolveTime(c.EndParsed, c.End, src.Location); ok {
		end = &endTime
	} else {
		fallback := start
		if c.EndDefault == EndDefaultPlusHour {
			fallback = start.Add(time.Hour)
		}
		end = &fallback
	}

	calendar := src.Calendar
	if calendar == "" {
		calendar = src.Name
	}

	return event.Event{
		UID:         event.UID(src.Name, title, start, c.URL),
		Title:       title,
		Description: strings.TrimSpace(c.Description),
		URL:         c.URL,
		Location:    strings.TrimSpace(c.Location),
		StartUTC:    start,
		EndUTC:      end,
		SourceName:  src.Name,
		Calendar:    calendar,
	}, true
}

func (n *Normalizer) resolveTime(parsed *time.Time, raw string, loc *time.Location) (time.Time, bool) {
	if parsed != nil && !parsed.IsZero() {
		return parsed.UTC(), true
	}
	if raw == "" {
		return time.Time{}, false
	}
	t, err := ParseTime(raw, loc)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
