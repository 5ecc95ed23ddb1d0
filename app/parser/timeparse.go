package parser

import (
	"fmt"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// TimeStrategy is one named step in the ordered datetime fallback chain.
// Keeping the chain as data makes the fallback order auditable and each
// step testable in isolation.
type TimeStrategy struct {
	Name  string
	Parse func(value string, loc *time.Location) (time.Time, error)
}

func layoutStrategy(name, layout string) TimeStrategy {
	return TimeStrategy{
		Name: name,
		Parse: func(value string, loc *time.Location) (time.Time, error) {
			return time.ParseInLocation(layout, value, loc)
		},
	}
}

// timeStrategies is tried in order; the first success wins. Zone-aware
// layouts come first so an explicit offset is never reinterpreted in
// the source zone. dateparse is the last resort for the long tail of
// scraped formats.
var timeStrategies = []TimeStrategy{
	{
		Name: "rfc3339",
		Parse: func(value string, _ *time.Location) (time.Time, error) {
			return time.Parse(time.RFC3339, value)
		},
	},
	{
		Name: "rfc3339-no-seconds",
		Parse: func(value string, _ *time.Location) (time.Time, error) {
			return time.Parse("2006-01-02T15:04Z07:00", value)
		},
	},
	{
		// A bare Z in a layout is a literal, so the compact ICS form
		// needs Z0700 to be recognized as a zone marker.
		Name: "ics-zoned",
		Parse: func(value string, _ *time.Location) (time.Time, error) {
			return time.Parse("20060102T150405Z0700", value)
		},
	},
	layoutStrategy("iso-local", "2006-01-02T15:04:05"),
	layoutStrategy("iso-local-no-seconds", "2006-01-02T15:04"),
	layoutStrategy("space-separated", "2006-01-02 15:04:05"),
	layoutStrategy("space-separated-no-seconds", "2006-01-02 15:04"),
	layoutStrategy("date-only", "2006-01-02"),
	layoutStrategy("ics-local", "20060102T150405"),
	layoutStrategy("long-us", "January 2, 2006 3:04 PM"),
	layoutStrategy("short-us", "Jan 2, 2006 3:04 PM"),
	{
		Name: "dateparse",
		Parse: func(value string, loc *time.Location) (time.Time, error) {
			return dateparse.ParseIn(value, loc)
		},
	},
}

// ParseTime parses value using the strategy chain, interpreting
// zoneless timestamps in loc (UTC when nil). The result is returned in
// UTC.
func ParseTime(value string, loc *time.Location) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("empty time value")
	}
	if loc == nil {
		loc = time.UTC
	}

	for _, strategy := range timeStrategies {
		if t, err := strategy.Parse(value, loc); err == nil {
			return t.UTC(), nil
		}
	}

	return time.Time{}, fmt.Errorf("unparseable time value: %q", value)
}
