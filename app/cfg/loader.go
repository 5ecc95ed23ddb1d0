package cfg

import (
	"fmt"
	"time"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	// cmp.Or(Version, "unknown") requires Go 1.22; expanded inline for Go 1.21.
	if Version != "" {
		return Version
	}
	return "unknown"
}

type rawCfg struct {
	// Input configuration
	SourcesFile string `long:"sources-file" env:"SOURCES_FILE" default:"./sources.yml" description:"YAML file listing event sources"`
	CuratedFile string `long:"curated-file" env:"CURATED_FILE" default:"./curated.yml" description:"YAML file listing curated feed definitions"`

	// Output configuration
	OutputDir    string `long:"output-dir" env:"OUTPUT_DIR" default:"./output" description:"Directory for generated calendars and reports"`
	PreviewLimit int    `long:"preview-limit" env:"PREVIEW_LIMIT" default:"25" description:"Maximum number of events included in the report preview"`

	// Fetch configuration
	FetchTimeout int `long:"fetch-timeout" env:"FETCH_TIMEOUT" default:"20" description:"Per-request fetch timeout in seconds"`
	FetchRetries int `long:"fetch-retries" env:"FETCH_RETRIES" default:"3" description:"Number of fetch attempts per source"`
	BackoffUnit  int `long:"backoff-unit" env:"BACKOFF_UNIT" default:"2" description:"Linear backoff unit between fetch attempts in seconds"`

	// Application configuration
	Port        string `long:"port" env:"PORT" default:"8080" description:"HTTP server port"`
	WorkerCount int    `long:"worker-count" env:"WORKER_COUNT" default:"4" description:"Number of workers processing sources"`
	Schedule    string `long:"schedule" env:"SCHEDULE" description:"Cron expression for periodic runs (empty runs once)"`

	// Application metadata
	UserAgent string `long:"user-agent" env:"USER_AGENT" default:"Event Comb/1.0" description:"User agent string for HTTP requests"`
	Timezone  string `long:"timezone" env:"TZ" default:"UTC" description:"Default timezone for zoneless source timestamps"`
	Debug     bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

var globalCfg *Cfg

func Load() (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		SourcesFile:  raw.SourcesFile,
		CuratedFile:  raw.CuratedFile,
		OutputDir:    raw.OutputDir,
		PreviewLimit: raw.PreviewLimit,
		FetchTimeout: raw.FetchTimeout,
		FetchRetries: raw.FetchRetries,
		BackoffUnit:  raw.BackoffUnit,
		Port:         raw.Port,
		WorkerCount:  raw.WorkerCount,
		Schedule:     raw.Schedule,
		UserAgent:    raw.UserAgent,
		Timezone:     raw.Timezone,
		Debug:        raw.Debug,
		Version:      GetVersion(),
	}

	globalCfg = cfg

	return cfg, nil
}

func Get() *Cfg {
	if globalCfg == nil {
		panic("configuration not loaded - call cfg.Load() first")
	}
	return globalCfg
}

// Location resolves the configured default timezone, falling back to UTC
// when the name does not resolve.
func (c *Cfg) Location() *time.Location {
	if c.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// SetForTesting replaces the global configuration. Test helper only.
func SetForTesting(c *Cfg) {
	globalCfg = c
}
