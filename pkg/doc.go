// Package pkg provides the core libraries for Pathmap network mapping.
//
// # Overview
//
// Pathmap turns a log of radio-network path observations into an interactive
// map of the network. Each observation lists the hops a message took between
// devices; pathmap resolves every hop to a surveyed coordinate, aggregates
// repeated sightings into weighted links, and renders the result.
//
// # Architecture
//
// The typical data flow through Pathmap:
//
//	Path log + device tables
//	         ↓
//	    [pathlog] package (normalize rows, expand directed edges)
//	         ↓
//	    [device] + [link] packages (resolve hops, aggregate weighted links)
//	         ↓
//	    [render/leaflet] / [render/dot] packages (interactive map, Graphviz)
//	         ↓
//	    HTML/JSON/DOT/SVG output
//
// # Quick Start
//
// Run the full pipeline and write the map:
//
//	import "github.com/hinewai/pathmap/pkg/pipeline"
//
//	runner := pipeline.NewRunner(nil, nil)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    PathsFile:   "paths.csv",
//	    DevicesFile: "devices.csv",
//	    Formats:     []string{pipeline.FormatHTML},
//	})
//	if err != nil {
//	    return err
//	}
//	os.WriteFile("map.html", result.Artifacts[pipeline.FormatHTML], 0o644)
//
// # Main Packages
//
// ## Core Domain Logic
//
// [pathlog] - Path-log parsing. Normalizes raw delimited rows into records
// with timezone extraction, day-first timestamps, and hop cleanup, then
// expands each record's hop sequence into directed edges.
//
// [device] - Device index built from the coordinate and labels tables.
// Identity is the uppercased, trimmed device ID; lookups are insensitive to
// case and padding.
//
// [link] - Edge resolution and aggregation. Joins directed edges against the
// device index, drops edges with unknown endpoints, groups the rest into
// weighted links, and computes display weights.
//
// [overlay] - The map's interaction model as a pure state machine: search
// filtering, click selection, and incident-edge highlighting. The embedded
// JavaScript in [render/leaflet] is a translation of this package.
//
// [status] - Offline-node scraping from the monitoring dashboard, with
// caching and retry. A failed fetch degrades to an empty offline set.
//
// ## Visualization
//
// [render/leaflet] - The self-contained interactive HTML map (Leaflet,
// markers, search, offline panel).
//
// [render/dot] - Graphviz DOT and SVG rendering of the connectivity graph.
//
// ## Infrastructure
//
// [pipeline] - Complete pipeline (load → parse → resolve → render) shared by
// the CLI and the preview server. Ensures consistent behavior across entry
// points.
//
// [cache] - Cache interface with file, Redis, and null backends, plus retry
// with backoff for transient network failures.
//
// [io] - JSON import and export of the derived graph.
//
// [errors] - Structured errors with codes and fatal/degradable
// classification.
//
// [observability] - Optional hooks for metrics and tracing without hard
// backend dependencies.
//
// [buildinfo] - Build-time version information set via ldflags.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...            # All tests
//	go test ./pkg/link/...       # Specific package
//
// [pathlog]: https://pkg.go.dev/github.com/hinewai/pathmap/pkg/pathlog
// [device]: https://pkg.go.dev/github.com/hinewai/pathmap/pkg/device
// [link]: https://pkg.go.dev/github.com/hinewai/pathmap/pkg/link
// [overlay]: https://pkg.go.dev/github.com/hinewai/pathmap/pkg/overlay
// [status]: https://pkg.go.dev/github.com/hinewai/pathmap/pkg/status
// [render/leaflet]: https://pkg.go.dev/github.com/hinewai/pathmap/pkg/render/leaflet
// [render/dot]: https://pkg.go.dev/github.com/hinewai/pathmap/pkg/render/dot
// [pipeline]: https://pkg.go.dev/github.com/hinewai/pathmap/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/hinewai/pathmap/pkg/cache
// [io]: https://pkg.go.dev/github.com/hinewai/pathmap/pkg/io
// [errors]: https://pkg.go.dev/github.com/hinewai/pathmap/pkg/errors
// [observability]: https://pkg.go.dev/github.com/hinewai/pathmap/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/hinewai/pathmap/pkg/buildinfo
package pkg
