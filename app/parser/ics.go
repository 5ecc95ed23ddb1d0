package parser

import (
	"bytes"
	"fmt"
	"log/slog"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/teambition/rrule-go"
)

const (
	// Recurring events are expanded into concrete occurrences within a
	// bounded window around the run time.
	expandLookbehind = 24 * time.Hour
	expandLookahead  = 365 * 24 * time.Hour
	maxOccurrences   = 500
)

// ICSParser extracts candidates from an iCalendar payload. Recurring
// VEVENTs (RRULE) are expanded into individual occurrences; EXDATEs are
// honored. End default policy: mirror.
type ICSParser struct{}

func NewICSParser() *ICSParser {
	return &ICSParser{}
}

func (p *ICSParser) Parse(data []byte, src Source) ([]Candidate, error) {
	cal, err := ical.ParseCalendar(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse ICS: %w", err)
	}

	now := time.Now().UTC()
	windowStart := now.Add(-expandLookbehind)
	windowEnd := now.Add(expandLookahead)

	candidates := make([]Candidate, 0, len(cal.Events()))

	for _, ve := range cal.Events() {
		base, ok := p.extractVEvent(ve)
		if !ok {
			continue
		}

		rawRRule := ""
		if prop := ve.GetProperty(ical.ComponentPropertyRrule); prop != nil {
			rawRRule = prop.Value
		}

		if rawRRule == "" {
			candidates = append(candidates, base)
			continue
		}

		occurrences := p.expand(ve, base, rawRRule, windowStart, windowEnd, src)
		candidates = append(candidates, occurrences...)
	}

	return candidates, nil
}

func (p *ICSParser) extractVEvent(ve *ical.VEvent) (Candidate, bool) {
	c := Candidate{EndDefault: EndDefaultMirror}

	if prop := ve.GetProperty(ical.ComponentPropertySummary); prop != nil {
		c.Title = prop.Value
	}
	if prop := ve.GetProperty(ical.ComponentPropertyDescription); prop != nil {
		c.Description = prop.Value
	}
	if prop := ve.GetProperty(ical.ComponentPropertyLocation); prop != nil {
		c.Location = prop.Value
	}
	if prop := ve.GetProperty(ical.ComponentPropertyUrl); prop != nil {
		c.URL = prop.Value
	}

	start, err := ve.GetStartAt()
	if err != nil || start.IsZero() {
		return c, false
	}
	c.StartParsed = &start

	if end, err := ve.GetEndAt(); err == nil && !end.IsZero() {
		c.EndParsed = &end
	}

	return c, true
}

// expand turns a recurring VEVENT into one candidate per occurrence in
// the window, preserving the base event's duration.
func (p *ICSParser) expand(ve *ical.VEvent, base Candidate, rawRRule string, windowStart, windowEnd time.Time, src Source) []Candidate {
	r, err := rrule.StrToRRule(rawRRule)
	if err != nil {
		slog.Debug("Skipping unparseable RRULE", "source", src.Name, "rrule", rawRRule, "error", err)
		return []Candidate{base}
	}

	start := *base.StartParsed
	r.DTStart(start)

	var set rrule.Set
	set.RRule(r)

	for _, ex := range p.exDates(ve, start.Location()) {
		set.ExDate(ex)
	}

	times := set.Between(windowStart.In(start.Location()), windowEnd.In(start.Location()), true)
	if len(times) > maxOccurrences {
		slog.Debug("Truncating recurrence expansion", "source", src.Name, "occurrences", len(times), "cap", maxOccurrences)
		times = times[:maxOccurrences]
	}

	var duration time.Duration
	if base.EndParsed != nil {
		duration = base.EndParsed.Sub(start)
	}

	out := make([]Candidate, 0, len(times))
	for _, occStart := range times {
		occ := base
		s := occStart
		occ.StartParsed = &s
		if base.EndParsed != nil {
			e := occStart.Add(duration)
			occ.EndParsed = &e
		} else {
			occ.EndParsed = nil
		}
		out = append(out, occ)
	}

	return out
}

func (p *ICSParser) exDates(ve *ical.VEvent, loc *time.Location) []time.Time {
	var out []time.Time

	for _, prop := range ve.GetProperties(ical.ComponentPropertyExdate) {
		for _, part := range strings.Split(prop.Value, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			if t, err := ParseTime(part, loc); err == nil {
				out = append(out, t.In(loc))
			}
		}
	}

	return out
}
