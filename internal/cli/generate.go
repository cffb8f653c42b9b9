package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hinewai/pathmap/pkg/pipeline"
)

// generateFlags collects the flag values for the generate command.
type generateFlags struct {
	devices     string
	labels      string
	out         string
	separator   string
	sample      int
	noAggregate bool
	minCount    int
	offlineURL  string
	skipOffline bool
	center      string
	zoom        int
	hideMarkers bool
	detailed    bool
	formats     string
	noCache     bool
}

func (c *CLI) generateCommand() *cobra.Command {
	var flags generateFlags

	cmd := &cobra.Command{
		Use:   "generate <paths-file>",
		Short: "Generate an interactive map from a path log",
		Long: `Generate parses a path log, resolves every hop against the device
coordinate table, aggregates repeated sightings into weighted links, and
renders the result as a self-contained HTML map.

Additional formats (json, dot, svg) can be requested with --format; each
artifact is written next to the map with the format as its extension.`,
		Example: `  pathmap generate paths.csv --devices devices.csv
  pathmap generate paths.csv --devices devices.csv --labels names.csv --center GW-001
  pathmap generate paths.csv --devices devices.csv --format html,json,dot --out network`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGenerate(cmd.Context(), args[0], flags)
		},
	}

	cmd.Flags().StringVarP(&flags.devices, "devices", "d", "", "device coordinate table (CSV, required)")
	cmd.Flags().StringVarP(&flags.labels, "labels", "l", "", "device labels table (CSV)")
	cmd.Flags().StringVarP(&flags.out, "out", "o", "map", "output base name (extension added per format)")
	cmd.Flags().StringVar(&flags.separator, "sep", "", "path-log delimiter: comma, tab or auto")
	cmd.Flags().IntVar(&flags.sample, "sample", 0, "keep only the first N rows (0 keeps all)")
	cmd.Flags().BoolVar(&flags.noAggregate, "no-aggregate", false, "keep every edge instance instead of aggregating")
	cmd.Flags().IntVar(&flags.minCount, "min-count", 0, "drop aggregated links seen fewer than N times")
	cmd.Flags().StringVar(&flags.offlineURL, "offline-url", "", "monitoring dashboard URL for offline-node status")
	cmd.Flags().BoolVar(&flags.skipOffline, "skip-offline", false, "skip the offline-node fetch")
	cmd.Flags().StringVar(&flags.center, "center", "", "device ID to center the map on")
	cmd.Flags().IntVar(&flags.zoom, "zoom", 0, "initial zoom level")
	cmd.Flags().BoolVar(&flags.hideMarkers, "hide-markers", false, "render edges only, without device markers")
	cmd.Flags().BoolVar(&flags.detailed, "detailed", false, "include device names and locations in dot/svg labels")
	cmd.Flags().StringVarP(&flags.formats, "format", "f", "", "comma-separated output formats: html, json, dot, svg")
	cmd.Flags().BoolVar(&flags.noCache, "no-cache", false, "disable the response cache")

	return cmd
}

func (c *CLI) runGenerate(ctx context.Context, pathsFile string, flags generateFlags) error {
	opts := pipeline.Options{
		PathsFile:   pathsFile,
		DevicesFile: flags.devices,
		LabelsFile:  flags.labels,
		Separator:   flags.separator,
		Sample:      flags.sample,
		NoAggregate: flags.noAggregate,
		MinCount:    flags.minCount,
		OfflineURL:  flags.offlineURL,
		SkipOffline: flags.skipOffline,
		CenterID:    flags.center,
		Zoom:        flags.zoom,
		HideMarkers: flags.hideMarkers,
		Detailed:    flags.detailed,
		Formats:     parseFormatsFlag(flags.formats),
		Logger:      c.Logger,
	}

	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	cfg.apply(&opts)

	runner := c.newRunner(flags.noCache)
	defer runner.Close()

	p := newProgress(c.Logger)
	spinner := newSpinnerWithContext(ctx, "building map...")
	spinner.Start()
	result, err := runner.Execute(ctx, opts)
	if err != nil {
		if spinner.Cancelled() {
			spinner.Stop()
			return ctx.Err()
		}
		spinner.StopWithError(err.Error())
		return err
	}
	spinner.Stop()

	written, err := writeArtifacts(flags.out, result.Artifacts, opts.Formats)
	if err != nil {
		return err
	}
	p.done(fmt.Sprintf("Generated map with %d links", len(result.Links)))

	printSuccess("map generated")
	printStats(result.Devices.Len(), len(result.Links), len(result.Offline))
	if result.Missing.Dropped > 0 {
		printWarning("%d edges dropped for unknown devices", result.Missing.Dropped)
	}
	for _, path := range written {
		printFile(path)
	}
	if htmlPath, ok := artifactPath(flags.out, pipeline.FormatHTML, opts.Formats); ok {
		printNewline()
		printNextStep("Open the map", "open "+htmlPath)
	}
	return nil
}

// parseFormatsFlag is like parseFormats but leaves an empty flag empty so
// config-file formats can still apply.
func parseFormatsFlag(s string) []string {
	if s == "" {
		return nil
	}
	return parseFormats(s)
}

// writeArtifacts writes each rendered artifact to <out>.<format>. When out
// already carries the format's extension it is used as-is.
func writeArtifacts(out string, artifacts map[string][]byte, formats []string) ([]string, error) {
	var written []string
	for _, format := range formats {
		data, ok := artifacts[format]
		if !ok {
			continue
		}
		path, _ := artifactPath(out, format, formats)
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create output directory: %w", err)
			}
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return nil, fmt.Errorf("write %s: %w", path, err)
		}
		written = append(written, path)
	}
	return written, nil
}

// artifactPath derives the output path for a format. The second return
// reports whether the format was requested.
func artifactPath(out, format string, formats []string) (string, bool) {
	requested := false
	for _, f := range formats {
		if f == format {
			requested = true
			break
		}
	}
	if !requested {
		return "", false
	}
	if strings.EqualFold(filepath.Ext(out), "."+format) {
		return out, true
	}
	return out + "." + format, true
}
