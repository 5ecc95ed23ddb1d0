package parser

import (
	"bytes"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/eventcomb/eventcomb/app/config"
)

// HTMLParser covers the HTML scraping source families. All of them
// publish schema.org Event markup in JSON-LD script blocks; GrowthZone
// sites additionally fall back to microdata when no JSON-LD is present.
// The end default policy differs per family and is fixed at
// registration time.
type HTMLParser struct {
	family     string
	endDefault EndDefault
}

func NewHTMLParser(family string, endDefault EndDefault) *HTMLParser {
	return &HTMLParser{
		family:     family,
		endDefault: endDefault,
	}
}

func (p *HTMLParser) Parse(data []byte, src Source) ([]Candidate, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	candidates := p.fromJSONLD(doc, src)

	if len(candidates) == 0 && p.family == config.SourceTypeGrowthZone {
		candidates = p.fromMicrodata(doc, src)
	}

	return candidates, nil
}

func (p *HTMLParser) fromJSONLD(doc *goquery.Document, src Source) []Candidate {
	var candidates []Candidate

	doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, sel *goquery.Selection) {
		for _, ev := range extractJSONLDEvents(sel.Text()) {
			candidates = append(candidates, Candidate{
				Title:       ev.Name,
				Description: ev.Description,
				URL:         resolveURL(src.BaseURL, ev.URL),
				Location:    locationText(ev.Location),
				Start:       ev.StartDate,
				End:         ev.EndDate,
				EndDefault:  p.endDefault,
			})
		}
	})

	return candidates
}

// fromMicrodata scans schema.org microdata markup, the older convention
// on GrowthZone chamber calendars.
func (p *HTMLParser) fromMicrodata(doc *goquery.Document, src Source) []Candidate {
	var candidates []Candidate

	doc.Find(`[itemtype*="schema.org/Event"]`).Each(func(_ int, sel *goquery.Selection) {
		c := Candidate{EndDefault: p.endDefault}

		c.Title = strings.TrimSpace(sel.Find(`[itemprop="name"]`).First().Text())
		c.Description = strings.TrimSpace(sel.Find(`[itemprop="description"]`).First().Text())
		c.Location = strings.TrimSpace(sel.Find(`[itemprop="location"]`).First().Text())

		if v, ok := itempropValue(sel, "startDate"); ok {
			c.Start = v
		}
		if v, ok := itempropValue(sel, "endDate"); ok {
			c.End = v
		}
		if href, ok := sel.Find(`[itemprop="url"]`).First().Attr("href"); ok {
			c.URL = resolveURL(src.BaseURL, href)
		}

		candidates = append(candidates, c)
	})

	return candidates
}

// itempropValue prefers the machine-readable content/datetime attribute
// over node text.
func itempropValue(sel *goquery.Selection, prop string) (string, bool) {
	node := sel.Find(fmt.Sprintf(`[itemprop=%q]`, prop)).First()
	if node.Length() == 0 {
		return "", false
	}
	if v, ok := node.Attr("content"); ok && v != "" {
		return v, true
	}
	if v, ok := node.Attr("datetime"); ok && v != "" {
		return v, true
	}
	return strings.TrimSpace(node.Text()), true
}

// resolveURL resolves ref against base URL, returning ref unchanged when
// it is already absolute or base is unusable.
func resolveURL(base, ref string) string {
	if ref == "" || base == "" {
		return ref
	}

	refURL, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	if refURL.IsAbs() {
		return ref
	}

	baseURL, err := url.Parse(base)
	if err != nil {
		return ref
	}

	return baseURL.ResolveReference(refURL).String()
}
