package curated

import (
	"sort"
	"strings"
	"time"

	"github.com/eventcomb/eventcomb/app/config"
	"github.com/eventcomb/eventcomb/app/event"
)

// Selection is the outcome of selecting one curated feed's subset.
type Selection struct {
	Events      []event.Event
	ManualCount int
	AutoCount   int
}

// Selector picks the subset of the aggregated event stream a curated
// feed publishes. Selection is a pure function of (events, feed, now).
type Selector struct{}

func NewSelector() *Selector {
	return &Selector{}
}

// Run applies the manual phase (pinned uids, config order) then the
// auto phase (preference rules over the remaining events), and returns
// the union re-sorted chronologically. The same event is never selected
// twice.
func (s *Selector) Run(all []event.Event, feed config.CuratedFeedConfig, now time.Time) Selection {
	var sel Selection
	selected := make(map[string]struct{})

	byUID := make(map[string]event.Event, len(all))
	for _, ev := range all {
		if _, ok := byUID[ev.UID]; !ok {
			byUID[ev.UID] = ev
		}
	}

	// Manual phase. Pinned events that no longer exist or have already
	// started are skipped silently.
	for _, uid := range feed.SelectedEvents {
		ev, ok := byUID[uid]
		if !ok {
			continue
		}
		if !s.isFuture(ev, now) {
			continue
		}
		if _, dup := selected[uid]; dup {
			continue
		}
		selected[uid] = struct{}{}
		sel.Events = append(sel.Events, ev)
		sel.ManualCount++
	}

	// Auto phase.
	if feed.Preferences != nil {
		prefs := feed.Preferences
		for _, ev := range all {
			if prefs.MaxAutoEvents > 0 && sel.AutoCount >= prefs.MaxAutoEvents {
				break
			}
			if _, dup := selected[ev.UID]; dup {
				continue
			}
			if !s.qualifies(ev, prefs, now) {
				continue
			}
			selected[ev.UID] = struct{}{}
			sel.Events = append(sel.Events, ev)
			sel.AutoCount++
		}
	}

	sort.SliceStable(sel.Events, func(i, j int) bool {
		return sel.Events[i].StartUTC.Before(sel.Events[j].StartUTC)
	})

	return sel
}

func (s *Selector) qualifies(ev event.Event, prefs *config.Preferences, now time.Time) bool {
	if !s.isFuture(ev, now) {
		return false
	}

	if prefs.DaysAhead > 0 {
		horizon := now.Add(time.Duration(prefs.DaysAhead) * 24 * time.Hour)
		if ev.StartUTC.After(horizon) {
			return false
		}
	}

	if len(prefs.IncludeSources) > 0 && !matchesAnySource(ev.SourceName, prefs.IncludeSources) {
		return false
	}
	if len(prefs.ExcludeSources) > 0 && matchesAnySource(ev.SourceName, prefs.ExcludeSources) {
		return false
	}

	if len(prefs.Locations) > 0 && !containsAny(ev.Location, prefs.Locations) {
		return false
	}

	// Exclude keywords win over include keywords: an event matching both
	// is rejected outright.
	if len(prefs.ExcludeKeywords) > 0 && containsAny(ev.Title+" "+ev.Description, prefs.ExcludeKeywords) {
		return false
	}

	if len(prefs.Keywords) > 0 && !containsAny(ev.Title+" "+ev.Description+" "+ev.Location, prefs.Keywords) {
		return false
	}

	return true
}

// isFuture treats a zero start as not-future rather than erroring.
func (s *Selector) isFuture(ev event.Event, now time.Time) bool {
	if ev.StartUTC.IsZero() {
		return false
	}
	return !ev.StartUTC.Before(now)
}

func containsAny(value string, keywords []string) bool {
	value = strings.ToLower(value)
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw == "" {
			continue
		}
		if strings.Contains(value, kw) {
			return true
		}
	}
	return false
}

// matchesAnySource matches case-insensitively in either direction, so a
// configured "chamber" matches source "City Chamber of Commerce" and a
// configured "City Chamber of Commerce Events" matches source "City
// Chamber of Commerce".
func matchesAnySource(source string, listed []string) bool {
	source = strings.ToLower(strings.TrimSpace(source))
	for _, l := range listed {
		l = strings.ToLower(strings.TrimSpace(l))
		if l == "" {
			continue
		}
		if strings.Contains(source, l) || strings.Contains(l, source) {
			return true
		}
	}
	return false
}
