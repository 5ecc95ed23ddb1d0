package parser

import (
	"errors"
	"testing"

	"github.com/eventcomb/eventcomb/app/config"
)

func TestRegistry_AllConfiguredTypesResolve(t *testing.T) {
	registry := NewRegistry()

	for _, typ := range []string{
		config.SourceTypeICS,
		config.SourceTypeRSS,
		config.SourceTypeTEC,
		config.SourceTypeGrowthZone,
		config.SourceTypeAi1ec,
		config.SourceTypeSimpleview,
	} {
		if _, err := registry.Get(typ); err != nil {
			t.Errorf("Expected parser for %q, got error: %v", typ, err)
		}
	}
}

func TestRegistry_UnknownTypeReturnsTypedError(t *testing.T) {
	registry := NewRegistry()

	_, err := registry.Get("facebook_html")
	if err == nil {
		t.Fatal("Expected error for unknown type")
	}

	var unsupported *UnsupportedTypeError
	if !errors.As(err, &unsupported) {
		t.Fatalf("Expected *UnsupportedTypeError, got %T", err)
	}
	if unsupported.Type != "facebook_html" {
		t.Errorf("Expected offending type in error, got %q", unsupported.Type)
	}
}
