package parser

import (
	"testing"

	"github.com/eventcomb/eventcomb/app/config"
)

const tecPage = `<!DOCTYPE html>
<html><head>
<script type="application/ld+json">
[
  {
    "@context": "https://schema.org",
    "@type": "Event",
    "name": "Farmers Market",
    "description": "Weekly market downtown",
    "startDate": "2025-06-07T08:00:00-04:00",
    "endDate": "2025-06-07T13:00:00-04:00",
    "url": "https://example.com/event/farmers-market",
    "location": {
      "@type": "Place",
      "name": "Court Square",
      "address": {
        "@type": "PostalAddress",
        "streetAddress": "1 Court Square",
        "addressLocality": "Springfield"
      }
    }
  },
  {
    "@type": "MusicEvent",
    "name": "Summer Concert",
    "startDate": "2025-06-14T19:00:00-04:00",
    "url": "/event/summer-concert",
    "location": "Riverside Park"
  }
]
</script>
</head><body></body></html>`

func TestHTMLParser_JSONLDEvents(t *testing.T) {
	p := NewHTMLParser(config.SourceTypeTEC, EndDefaultPlusHour)
	src := Source{Name: "Town Calendar", BaseURL: "https://example.com/events/"}

	candidates, err := p.Parse([]byte(tecPage), src)
	if err != nil {
		t.Fatal(err)
	}

	if len(candidates) != 2 {
		t.Fatalf("Expected 2 candidates, got %d", len(candidates))
	}

	market := candidates[0]
	if market.Title != "Farmers Market" {
		t.Errorf("Expected 'Farmers Market', got %q", market.Title)
	}
	if market.Start != "2025-06-07T08:00:00-04:00" {
		t.Errorf("Unexpected start: %q", market.Start)
	}
	if market.End != "2025-06-07T13:00:00-04:00" {
		t.Errorf("Unexpected end: %q", market.End)
	}
	if market.Location != "Court Square, 1 Court Square, Springfield" {
		t.Errorf("Unexpected location: %q", market.Location)
	}
	if market.EndDefault != EndDefaultPlusHour {
		t.Error("Expected variant end default to be carried on candidates")
	}

	concert := candidates[1]
	if concert.Title != "Summer Concert" {
		t.Errorf("Expected 'Summer Concert', got %q", concert.Title)
	}
	if concert.Location != "Riverside Park" {
		t.Errorf("Expected plain string location, got %q", concert.Location)
	}
	if concert.URL != "https://example.com/event/summer-concert" {
		t.Errorf("Expected relative URL resolved against base, got %q", concert.URL)
	}
}

const graphPage = `<html><head>
<script type="application/ld+json">
{
  "@context": "https://schema.org",
  "@graph": [
    {"@type": "WebPage", "name": "Events"},
    {
      "@type": ["Event", "BusinessEvent"],
      "name": "Ribbon Cutting",
      "startDate": "2025-06-10T16:00:00",
      "location": "Main Street"
    }
  ]
}
</script>
</head><body></body></html>`

func TestHTMLParser_JSONLDGraphContainer(t *testing.T) {
	p := NewHTMLParser(config.SourceTypeSimpleview, EndDefaultPlusHour)

	candidates, err := p.Parse([]byte(graphPage), Source{Name: "CVB"})
	if err != nil {
		t.Fatal(err)
	}

	if len(candidates) != 1 {
		t.Fatalf("Expected 1 candidate (non-event graph nodes skipped), got %d", len(candidates))
	}
	if candidates[0].Title != "Ribbon Cutting" {
		t.Errorf("Expected 'Ribbon Cutting', got %q", candidates[0].Title)
	}
}

const microdataPage = `<html><body>
<div itemscope itemtype="https://schema.org/Event">
  <span itemprop="name">Chamber Luncheon</span>
  <meta itemprop="startDate" content="2025-06-12T12:00:00" />
  <meta itemprop="endDate" content="2025-06-12T13:30:00" />
  <span itemprop="location">Hotel Ballroom</span>
  <a itemprop="url" href="/events/details/chamber-luncheon-1234">Details</a>
</div>
</body></html>`

func TestHTMLParser_GrowthZoneMicrodataFallback(t *testing.T) {
	p := NewHTMLParser(config.SourceTypeGrowthZone, EndDefaultPlusHour)
	src := Source{Name: "Chamber", BaseURL: "https://chamber.example.com/events"}

	candidates, err := p.Parse([]byte(microdataPage), src)
	if err != nil {
		t.Fatal(err)
	}

	if len(candidates) != 1 {
		t.Fatalf("Expected 1 candidate from microdata, got %d", len(candidates))
	}

	c := candidates[0]
	if c.Title != "Chamber Luncheon" {
		t.Errorf("Expected 'Chamber Luncheon', got %q", c.Title)
	}
	if c.Start != "2025-06-12T12:00:00" {
		t.Errorf("Expected content attribute start, got %q", c.Start)
	}
	if c.End != "2025-06-12T13:30:00" {
		t.Errorf("Expected content attribute end, got %q", c.End)
	}
	if c.Location != "Hotel Ballroom" {
		t.Errorf("Unexpected location: %q", c.Location)
	}
	if c.URL != "https://chamber.example.com/events/details/chamber-luncheon-1234" {
		t.Errorf("Expected resolved URL, got %q", c.URL)
	}
}

func TestHTMLParser_NoEventsYieldsEmpty(t *testing.T) {
	p := NewHTMLParser(config.SourceTypeAi1ec, EndDefaultMirror)

	candidates, err := p.Parse([]byte("<html><body><p>Nothing here</p></body></html>"), Source{Name: "Empty"})
	if err != nil {
		t.Fatal(err)
	}
	if len(candidates) != 0 {
		t.Errorf("Expected no candidates, got %d", len(candidates))
	}
}

func TestHTMLParser_MalformedJSONLDIgnored(t *testing.T) {
	page := `<html><head><script type="application/ld+json">{not json</script></head></html>`
	p := NewHTMLParser(config.SourceTypeTEC, EndDefaultPlusHour)

	candidates, err := p.Parse([]byte(page), Source{Name: "Broken"})
	if err != nil {
		t.Fatal(err)
	}
	if len(candidates) != 0 {
		t.Errorf("Expected malformed block to be skipped, got %d candidates", len(candidates))
	}
}
