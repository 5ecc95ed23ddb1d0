package parser

import (
	"encoding/json"
	"strings"
)

// jsonLDEvent is the loosely-typed shape of a schema.org Event node.
// Location and URL vary wildly across sites, so those fields stay
// untyped and are coerced by hand.
type jsonLDEvent struct {
	Type        any    `json:"@type"`
	Name        string `json:"name"`
	Description string `json:"description"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	URL         string `json:"url"`
	Location    any    `json:"location"`
}

// extractJSONLDEvents parses one <script type="application/ld+json">
// payload and returns the schema.org Event nodes it contains. Payloads
// may be a single object, an array, or a container with @graph.
func extractJSONLDEvents(raw string) []jsonLDEvent {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	var node any
	if err := json.Unmarshal([]byte(raw), &node); err != nil {
		return nil
	}

	var out []jsonLDEvent
	collectJSONLDEvents(node, &out)
	return out
}

func collectJSONLDEvents(node any, out *[]jsonLDEvent) {
	switch v := node.(type) {
	case []any:
		for _, item := range v {
			collectJSONLDEvents(item, out)
		}
	case map[string]any:
		if graph, ok := v["@graph"]; ok {
			collectJSONLDEvents(graph, out)
		}
		if !isEventType(v["@type"]) {
			return
		}
		data, err := json.Marshal(v)
		if err != nil {
			return
		}
		var ev jsonLDEvent
		if err := json.Unmarshal(data, &ev); err != nil {
			return
		}
		*out = append(*out, ev)
	}
}

// isEventType matches "Event" and subtypes like "MusicEvent" or
// "BusinessEvent", in either string or array form.
func isEventType(typ any) bool {
	switch v := typ.(type) {
	case string:
		return strings.Contains(v, "Event")
	case []any:
		for _, item := range v {
			if s, ok := item.(string); ok && strings.Contains(s, "Event") {
				return true
			}
		}
	}
	return false
}

// locationText flattens the schema.org location value (plain string,
// Place object, or array of either) into a display string.
func locationText(loc any) string {
	switch v := loc.(type) {
	case string:
		return strings.TrimSpace(v)
	case []any:
		for _, item := range v {
			if s := locationText(item); s != "" {
				return s
			}
		}
	case map[string]any:
		parts := make([]string, 0, 2)
		if name, ok := v["name"].(string); ok && strings.TrimSpace(name) != "" {
			parts = append(parts, strings.TrimSpace(name))
		}
		if addr := addressText(v["address"]); addr != "" {
			parts = append(parts, addr)
		}
		return strings.Join(parts, ", ")
	}
	return ""
}

func addressText(addr any) string {
	switch v := addr.(type) {
	case string:
		return strings.TrimSpace(v)
	case map[string]any:
		fields := []string{"streetAddress", "addressLocality", "addressRegion"}
		parts := make([]string, 0, len(fields))
		for _, field := range fields {
			if s, ok := v[field].(string); ok && strings.TrimSpace(s) != "" {
				parts = append(parts, strings.TrimSpace(s))
			}
		}
		return strings.Join(parts, ", ")
	}
	return ""
}
