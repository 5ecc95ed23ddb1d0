package parser

import "time"

// EndDefault names the policy a parser variant declares for candidates
// missing an end time. The two policies observed across source families
// are deliberately kept distinct; feed consumers depend on either
// behavior per family.
type EndDefault int

const (
	// EndDefaultMirror sets end := start.
	EndDefaultMirror EndDefault = iota
	// EndDefaultPlusHour sets end := start + 1h.
	EndDefaultPlusHour
)

// Source carries the per-source context a parser needs beyond the raw
// payload.
type Source struct {
	Name     string
	Calendar string
	BaseURL  string
	// Location is the zone assumed for zoneless wall-clock timestamps.
	// Nil means UTC.
	Location *time.Location
}

// Candidate is a raw, not-yet-validated record extracted by a parser.
// Start/End may be supplied pre-parsed (ICS, RSS) or as strings (HTML
// scraping); the normalizer prefers the parsed form.
type Candidate struct {
	Title       string
	Description string
	URL         string
	Location    string

	Start       string
	End         string
	StartParsed *time.Time
	EndParsed   *time.Time

	// EndDefault is the variant's declared fallback when End is absent.
	EndDefault EndDefault
}

// Parser extracts candidate events from a raw payload. Implementations
// apply source-family-specific heuristics; validation and canonical
// normalization happen downstream.
type Parser interface {
	Parse(data []byte, src Source) ([]Candidate, error)
}
