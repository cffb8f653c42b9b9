package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/hinewai/pathmap/pkg/cache"
	"github.com/hinewai/pathmap/pkg/device"
	"github.com/hinewai/pathmap/pkg/errors"
	graphio "github.com/hinewai/pathmap/pkg/io"
	"github.com/hinewai/pathmap/pkg/link"
	"github.com/hinewai/pathmap/pkg/observability"
	"github.com/hinewai/pathmap/pkg/pathlog"
	"github.com/hinewai/pathmap/pkg/render/dot"
	"github.com/hinewai/pathmap/pkg/render/leaflet"
	"github.com/hinewai/pathmap/pkg/status"
)

// Runner encapsulates pipeline execution. The CLI and the preview server
// share one Runner so caching and diagnostics behave identically.
//
// The Runner is stateless except for the cache and logger; multiple
// goroutines can safely use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache.
// If c is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Logger: logger}
}

// Execute runs the complete load → parse → resolve → render pipeline.
//
// Only two conditions abort a run: unreadable input files and schema errors
// in the tabular inputs. Everything else degrades with warnings on the
// runner's logger and still produces artifacts.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	logger := opts.Logger
	if logger == nil {
		logger = r.Logger
	}

	result := &Result{Artifacts: make(map[string][]byte)}

	// Stage 1: device index
	ix, err := r.LoadDevices(opts)
	if err != nil {
		return nil, err
	}
	result.Devices = ix
	logger.Info("loaded devices", "count", ix.Len())

	// Stage 2: path log
	observability.Pipeline().OnParseStart(ctx, opts.PathsFile)
	parseStart := time.Now()
	parsed, err := r.ParsePaths(opts)
	if err != nil {
		return nil, err
	}
	edges := pathlog.ExpandEdges(parsed.Records)
	result.Stats.ParseTime = time.Since(parseStart)
	result.Stats.RowsRead = parsed.RowsRead
	result.Stats.RowsSkipped = parsed.RowsSkipped
	result.Stats.RecordCount = len(parsed.Records)
	result.Stats.EdgeCount = len(edges)
	observability.Pipeline().OnParseComplete(ctx, opts.PathsFile, parsed.RowsRead, len(parsed.Records), result.Stats.ParseTime)

	logger.Info("parsed path log",
		"rows", parsed.RowsRead,
		"records", len(parsed.Records),
		"edges", len(edges),
		"duration", result.Stats.ParseTime)

	// Stage 3: resolve and aggregate
	resolved, missing := link.Resolve(edges, ix)
	result.Missing = missing
	if missing.Dropped > 0 {
		if missing.IDs != nil {
			logger.Warn("dropped edges referencing unknown devices",
				"edges", missing.Dropped,
				"ids", strings.Join(missing.IDs, ", "))
		} else {
			logger.Warn("dropped edges referencing unknown devices",
				"edges", missing.Dropped,
				"distinct_ids", missing.Distinct)
		}
	}

	if opts.NoAggregate {
		result.Links = link.Expand(resolved)
	} else {
		result.Links = link.Aggregate(resolved, opts.MinCount)
	}
	result.Stats.LinkCount = len(result.Links)
	observability.Pipeline().OnResolveComplete(ctx, len(edges), len(result.Links), missing.Dropped)
	logger.Info("built links",
		"links", len(result.Links),
		"aggregated", !opts.NoAggregate)

	// Stage 4: offline nodes
	if opts.FetchesOffline() {
		fetchStart := time.Now()
		result.Offline = r.fetchOffline(ctx, opts, logger)
		result.Stats.FetchTime = time.Since(fetchStart)
		result.Stats.OfflineHit = len(result.Offline) > 0
	}

	// Stage 5: render
	observability.Pipeline().OnRenderStart(ctx, opts.Formats)
	renderStart := time.Now()
	for _, format := range opts.Formats {
		data, err := r.renderFormat(ctx, format, ix, result, opts)
		if err != nil {
			observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(renderStart), err)
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		result.Artifacts[format] = data
	}
	result.Stats.RenderTime = time.Since(renderStart)
	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, result.Stats.RenderTime, nil)

	logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// LoadDevices builds the device index from the configured coordinate table,
// applying the labels table when one is given. A missing required column in
// either table is fatal.
func (r *Runner) LoadDevices(opts Options) (*device.Index, error) {
	logger := opts.Logger
	if logger == nil {
		logger = r.Logger
	}

	f, err := os.Open(opts.DevicesFile)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open devices file %s", opts.DevicesFile)
	}
	defer f.Close()

	ix, err := device.LoadDevices(f, device.LoadOptions{
		Warn: func(format string, args ...any) {
			logger.Warn(fmt.Sprintf(format, args...))
		},
	})
	if err != nil {
		return nil, err
	}

	if opts.LabelsFile != "" {
		lf, err := os.Open(opts.LabelsFile)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open labels file %s", opts.LabelsFile)
		}
		defer lf.Close()

		labels, err := device.LoadLabels(lf)
		if err != nil {
			return nil, err
		}
		ix.ApplyLabels(labels)
		logger.Debug("applied labels", "count", len(labels))
	}

	return ix, nil
}

// ParsePaths reads and normalizes the configured path log.
func (r *Runner) ParsePaths(opts Options) (*pathlog.Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	logger := opts.Logger
	if logger == nil {
		logger = r.Logger
	}

	f, err := os.Open(opts.PathsFile)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open paths file %s", opts.PathsFile)
	}
	defer f.Close()

	return pathlog.Parse(f, pathlog.Options{
		Separator: opts.separator,
		Sample:    opts.Sample,
		Warn: func(format string, args ...any) {
			logger.Warn(fmt.Sprintf(format, args...))
		},
	})
}

// fetchOffline retrieves the offline-node list. Failure is never fatal: the
// offline set degrades to empty and the map still renders.
func (r *Runner) fetchOffline(ctx context.Context, opts Options, logger *log.Logger) []status.Node {
	fetcher := opts.Fetcher
	if fetcher == nil {
		fetcher = status.NewDashboard(opts.OfflineURL, r.Cache)
	}

	nodes, err := fetcher.Fetch(ctx)
	if err != nil {
		logger.Warn("offline-node fetch failed, continuing with empty offline set",
			"error", errors.UserMessage(err))
		return nil
	}
	logger.Info("fetched offline nodes", "count", len(nodes))
	return nodes
}

func (r *Runner) renderFormat(ctx context.Context, format string, ix *device.Index, result *Result, opts Options) ([]byte, error) {
	switch format {
	case FormatHTML:
		lat, lon := r.center(ix, opts)
		var buf bytes.Buffer
		err := leaflet.Render(&buf, ix.Devices(), result.Links, result.Offline, leaflet.Options{
			CenterLat:   lat,
			CenterLon:   lon,
			Zoom:        opts.Zoom,
			ShowMarkers: !opts.HideMarkers,
		})
		return buf.Bytes(), err

	case FormatJSON:
		var buf bytes.Buffer
		err := graphio.WriteJSON(graphio.Graph{
			Devices: ix.Devices(),
			Links:   result.Links,
			Offline: result.Offline,
		}, &buf)
		return buf.Bytes(), err

	case FormatDOT:
		src := dot.ToDOT(ix, result.Links, status.IDSet(result.Offline), dot.Options{Detailed: opts.Detailed})
		return []byte(src), nil

	case FormatSVG:
		src := dot.ToDOT(ix, result.Links, status.IDSet(result.Offline), dot.Options{Detailed: opts.Detailed})
		return dot.RenderSVG(ctx, src)

	default:
		return nil, ValidateFormat(format)
	}
}

// center resolves the initial viewport center: the configured device when
// it exists, otherwise the mean of all device coordinates.
func (r *Runner) center(ix *device.Index, opts Options) (lat, lon float64) {
	if opts.CenterID != "" {
		if d, ok := ix.Lookup(opts.CenterID); ok {
			return d.Latitude, d.Longitude
		}
		logger := opts.Logger
		if logger == nil {
			logger = r.Logger
		}
		logger.Warn("center device not found, using mean of all coordinates", "id", opts.CenterID)
	}
	lat, lon, _ = ix.MeanCenter()
	return lat, lon
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
