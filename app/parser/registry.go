package parser

import (
	"fmt"

	"github.com/eventcomb/eventcomb/app/config"
)

// UnsupportedTypeError is returned when a source declares a parser kind
// the registry does not know. Configuration loading already rejects
// unknown types, so hitting this at dispatch time indicates a registry
// wiring bug rather than user error.
type UnsupportedTypeError struct {
	Type string
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("unsupported source type: %q", e.Type)
}

// Registry maps source type tags to their Parser implementation. The
// set is closed: all supported kinds are registered at construction.
type Registry struct {
	parsers map[string]Parser
}

func NewRegistry() *Registry {
	return &Registry{
		parsers: map[string]Parser{
			config.SourceTypeICS:        NewICSParser(),
			config.SourceTypeRSS:        NewRSSParser(),
			config.SourceTypeTEC:        NewHTMLParser(config.SourceTypeTEC, EndDefaultPlusHour),
			config.SourceTypeGrowthZone: NewHTMLParser(config.SourceTypeGrowthZone, EndDefaultPlusHour),
			config.SourceTypeAi1ec:      NewHTMLParser(config.SourceTypeAi1ec, EndDefaultMirror),
			config.SourceTypeSimpleview: NewHTMLParser(config.SourceTypeSimpleview, EndDefaultPlusHour),
		},
	}
}

// Get returns the parser registered for typ.
func (r *Registry) Get(typ string) (Parser, error) {
	p, ok := r.parsers[typ]
	if !ok {
		return nil, &UnsupportedTypeError{Type: typ}
	}
	return p, nil
}
