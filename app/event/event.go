package event

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// UIDNamespace is appended to every generated UID so events published by
// this service are distinguishable from upstream iCalendar UIDs.
const UIDNamespace = "@event-comb"

// Event is the canonical unit produced by normalization. All timestamps
// are UTC.
type Event struct {
	UID         string     `json:"uid"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	URL         string     `json:"url,omitempty"`
	Location    string     `json:"location,omitempty"`
	StartUTC    time.Time  `json:"start_utc"`
	EndUTC      *time.Time `json:"end_utc,omitempty"`
	SourceName  string     `json:"source_name"`
	Calendar    string     `json:"calendar"`
}

// UID derives the stable identity of an occurrence as observed by one
// source. Only immutable fields participate: description and location
// changes must not produce a new identity.
func UID(sourceName, title string, startUTC time.Time, url string) string {
	seed := fmt.Sprintf("%s|%s|%s|%s", sourceName, title, startUTC.UTC().Format(time.RFC3339), url)
	hash := sha256.Sum256([]byte(seed))
	return hex.EncodeToString(hash[:])[:32] + UIDNamespace
}
