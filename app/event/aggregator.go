package event

import "sort"

// Aggregator accumulates per-source event batches in processing order
// and produces the combined, globally deduplicated, chronologically
// sorted set. It also retains the per-source partition so every enabled
// source yields an output artifact even when it produced nothing.
type Aggregator struct {
	order    []string
	bySource map[string][]Event
}

func NewAggregator() *Aggregator {
	return &Aggregator{
		bySource: make(map[string][]Event),
	}
}

// Add records a source's post-dedup events. Calling Add with an empty or
// nil slice still registers the source, which is how erroring sources
// keep their (empty) output artifact.
func (a *Aggregator) Add(sourceName string, events []Event) {
	if _, ok := a.bySource[sourceName]; !ok {
		a.order = append(a.order, sourceName)
	}
	a.bySource[sourceName] = append(a.bySource[sourceName], events...)
}

// Aggregate concatenates all sources in the order they were added,
// applies global dedup, and sorts ascending by start time. The sort is
// stable so equal start times keep their first-seen order.
func (a *Aggregator) Aggregate() []Event {
	var all []Event
	for _, name := range a.order {
		all = append(all, a.bySource[name]...)
	}

	all = Dedupe(all)

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].StartUTC.Before(all[j].StartUTC)
	})

	return all
}

// BySource returns the per-source partition (pre-global-dedup) keyed by
// source name, plus the source registration order.
func (a *Aggregator) BySource() (map[string][]Event, []string) {
	return a.bySource, a.order
}
