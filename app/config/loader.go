package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

var validSourceTypes = map[string]bool{
	SourceTypeICS:        true,
	SourceTypeRSS:        true,
	SourceTypeTEC:        true,
	SourceTypeGrowthZone: true,
	SourceTypeAi1ec:      true,
	SourceTypeSimpleview: true,
}

// ValidSourceType reports whether typ names a supported parser kind.
func ValidSourceType(typ string) bool {
	return validSourceTypes[typ]
}

type sourcesFile struct {
	Sources []SourceConfig `yaml:"sources"`
}

// LoadSources loads the source list from a YAML file. A missing file is
// not an error: it yields an empty list so a run degrades to "no feeds
// processed". Invalid entries (missing url/name, unknown type) fail the
// whole load so configuration mistakes surface before any fetching.
func LoadSources(path string) ([]SourceConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read sources file: %w", err)
	}

	var file sourcesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse sources YAML: %w", err)
	}

	for i := range file.Sources {
		src := &file.Sources[i]
		if err := validateSource(src); err != nil {
			return nil, fmt.Errorf("invalid source at index %d: %w", i, err)
		}
		if src.Calendar == "" {
			src.Calendar = src.Name
		}
	}

	return file.Sources, nil
}

func validateSource(src *SourceConfig) error {
	if src.Name == "" {
		return fmt.Errorf("source name is required")
	}
	if src.URL == "" {
		return fmt.Errorf("source URL is required")
	}
	if !ValidSourceType(src.Type) {
		return fmt.Errorf("unsupported source type: %q", src.Type)
	}
	if src.MinExpected < 0 {
		return fmt.Errorf("min_expected must be non-negative")
	}
	return nil
}

type curatedFile struct {
	Feeds []CuratedFeedConfig `yaml:"feeds"`
}

// LoadCurated loads curated feed definitions. As with sources, absence
// of the file yields an empty set rather than an error.
func LoadCurated(path string) ([]CuratedFeedConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read curated file: %w", err)
	}

	var file curatedFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse curated YAML: %w", err)
	}

	for i, feed := range file.Feeds {
		if feed.ID == "" {
			return nil, fmt.Errorf("invalid curated feed at index %d: id is required", i)
		}
	}

	return file.Feeds, nil
}
