package config

// Source types supported by the parser registry. Unknown types are
// rejected when the sources file is loaded.
const (
	SourceTypeICS        = "ics"
	SourceTypeRSS        = "rss"
	SourceTypeTEC        = "tec_html"
	SourceTypeGrowthZone = "growthzone_html"
	SourceTypeAi1ec      = "ai1ec_html"
	SourceTypeSimpleview = "simpleview_html"
)

// SourceConfig describes one configured origin of event listings.
// Loaded once per run; immutable afterwards.
type SourceConfig struct {
	Name        string `yaml:"name"`
	Type        string `yaml:"type"`
	URL         string `yaml:"url"`
	Calendar    string `yaml:"calendar"`
	Enabled     bool   `yaml:"enabled"`
	MinExpected int    `yaml:"min_expected"`
}

// CuratedFeedConfig describes a user-defined subset of the aggregated
// event stream, selected by manual pinning and/or rule-based
// auto-selection.
type CuratedFeedConfig struct {
	ID             string       `yaml:"id"`
	Name           string       `yaml:"name"`
	Enabled        bool         `yaml:"enabled"`
	SelectedEvents []string     `yaml:"selected_events"`
	Preferences    *Preferences `yaml:"preferences"`
}

// Preferences holds the auto-selection rule set for a curated feed.
type Preferences struct {
	Keywords        []string `yaml:"keywords"`
	ExcludeKeywords []string `yaml:"exclude_keywords"`
	Locations       []string `yaml:"locations"`
	IncludeSources  []string `yaml:"include_sources"`
	ExcludeSources  []string `yaml:"exclude_sources"`
	DaysAhead       int      `yaml:"days_ahead"`
	MaxAutoEvents   int      `yaml:"max_auto_events"`
}
