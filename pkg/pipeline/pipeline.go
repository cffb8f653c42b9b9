// Package pipeline provides the core path-log-to-map pipeline for pathmap.
//
// This package implements the complete load → parse → resolve → render flow
// that the CLI and the preview server share. By centralizing it, every entry
// point gets identical semantics and diagnostics.
//
// # Architecture
//
// The pipeline consists of four stages:
//
//  1. Load: build the device index from the coordinate and labels tables
//  2. Parse: normalize raw path-log rows into records and expand edges
//  3. Resolve: join edges against the index and aggregate into weighted links
//  4. Render: generate output artifacts (HTML map, JSON graph, DOT, SVG)
//
// The first three stages are a single-pass, in-memory batch transformation.
// The only slow and fallible step is the offline-node fetch, which runs
// between resolve and render and degrades to an empty offline set on
// failure.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, fetcher, logger)
//	opts := pipeline.Options{
//	    PathsFile:   "paths.csv",
//	    DevicesFile: "devices.csv",
//	    Formats:     []string{"html"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	html := result.Artifacts["html"]
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/hinewai/pathmap/pkg/device"
	"github.com/hinewai/pathmap/pkg/link"
	"github.com/hinewai/pathmap/pkg/pathlog"
	"github.com/hinewai/pathmap/pkg/status"
)

// Default values shared by the CLI and the preview server.
const (
	// DefaultZoom is the initial map zoom level.
	DefaultZoom = 9

	// DefaultMinCount is the aggregation threshold. 1 filters nothing.
	DefaultMinCount = 1

	// DefaultSeparator is the path-log delimiter mode.
	DefaultSeparator = "auto"
)

// Format constants for output formats.
const (
	FormatHTML = "html"
	FormatJSON = "json"
	FormatDOT  = "dot"
	FormatSVG  = "svg"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatHTML: true,
	FormatJSON: true,
	FormatDOT:  true,
	FormatSVG:  true,
}

// Options contains all configuration for the pipeline.
// The struct supports JSON serialization for the preview server.
type Options struct {
	// Input files
	PathsFile   string `json:"paths_file"`
	DevicesFile string `json:"devices_file"`
	LabelsFile  string `json:"labels_file,omitempty"`

	// Parse options
	Separator string `json:"separator,omitempty"` // comma, tab or auto
	Sample    int    `json:"sample,omitempty"`    // keep only the first N raw rows

	// Graph options
	NoAggregate bool `json:"no_aggregate,omitempty"` // keep every edge instance at count 1
	MinCount    int  `json:"min_count,omitempty"`    // drop aggregated links below this count

	// Offline-node options
	OfflineURL  string `json:"offline_url,omitempty"`
	SkipOffline bool   `json:"skip_offline,omitempty"`

	// Render options
	Formats     []string `json:"formats,omitempty"`
	CenterID    string   `json:"center_id,omitempty"` // device to center on; mean of all coordinates when empty or unknown
	Zoom        int      `json:"zoom,omitempty"`
	HideMarkers bool     `json:"hide_markers,omitempty"`
	Detailed    bool     `json:"detailed,omitempty"` // include name and location in DOT labels

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// Fetcher overrides the offline-node source. When nil, a dashboard
	// scraper for OfflineURL is used.
	Fetcher status.Fetcher `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
	// separator is the parsed form of Separator.
	separator pathlog.Separator
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Devices is the device index the edges were resolved against.
	Devices *device.Index

	// Links is the final link list in first-seen order.
	Links []link.Link

	// Offline is the fetched offline-node list, empty when the fetch was
	// skipped or failed.
	Offline []status.Node

	// Missing summarizes edges dropped for unresolved endpoints.
	Missing link.Missing

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains row counts and stage timings.
	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	RowsRead    int
	RowsSkipped int
	RecordCount int
	EdgeCount   int // directed edges before resolution
	LinkCount   int // links after aggregation and filtering
	OfflineHit  bool

	ParseTime  time.Duration
	FetchTime  time.Duration
	RenderTime time.Duration
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return fmt.Errorf("invalid format: %q (must be one of: html, json, dot, svg)", format)
	}
	return nil
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// The method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}

	if o.PathsFile == "" {
		return fmt.Errorf("paths file is required")
	}
	if o.DevicesFile == "" {
		return fmt.Errorf("devices file is required")
	}

	if o.Separator == "" {
		o.Separator = DefaultSeparator
	}
	sep, err := pathlog.ParseSeparator(o.Separator)
	if err != nil {
		return err
	}
	o.separator = sep

	if o.Sample < 0 {
		return fmt.Errorf("sample must not be negative")
	}
	if o.MinCount == 0 {
		o.MinCount = DefaultMinCount
	}
	if o.Zoom == 0 {
		o.Zoom = DefaultZoom
	}

	if len(o.Formats) == 0 {
		o.Formats = []string{FormatHTML}
	}
	for _, f := range o.Formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}

	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	o.validated = true
	return nil
}

// FetchesOffline reports whether the run will contact the offline-node
// source.
func (o *Options) FetchesOffline() bool {
	return !o.SkipOffline && o.OfflineURL != ""
}
