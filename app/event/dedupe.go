package event

// Dedupe removes events whose UID was already seen, keeping the first
// occurrence and preserving insertion order among survivors. It is used
// both within a single source's output and across the concatenation of
// all sources.
func Dedupe(events []Event) []Event {
	if len(events) < 2 {
		return events
	}

	seen := make(map[string]struct{}, len(events))
	survivors := make([]Event, 0, len(events))

	for _, ev := range events {
		if _, ok := seen[ev.UID]; ok {
			continue
		}
		seen[ev.UID] = struct{}{}
		survivors = append(survivors, ev)
	}

	return survivors
}
