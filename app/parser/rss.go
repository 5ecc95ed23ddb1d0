package parser

import (
	"bytes"
	"fmt"

	"github.com/mmcdole/gofeed"
)

// RSSParser treats RSS/Atom items as event candidates: the published
// time is the event start. End default policy: mirror.
type RSSParser struct {
	gofeedParser *gofeed.Parser
}

func NewRSSParser() *RSSParser {
	return &RSSParser{
		gofeedParser: gofeed.NewParser(),
	}
}

func (p *RSSParser) Parse(data []byte, src Source) ([]Candidate, error) {
	feed, err := p.gofeedParser.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	candidates := make([]Candidate, 0, len(feed.Items))
	for _, item := range feed.Items {
		c := Candidate{
			Title:       item.Title,
			Description: item.Description,
			URL:         item.Link,
			EndDefault:  EndDefaultMirror,
		}

		if item.PublishedParsed != nil {
			c.StartParsed = item.PublishedParsed
		} else {
			c.Start = item.Published
		}

		candidates = append(candidates, c)
	}

	return candidates, nil
}
