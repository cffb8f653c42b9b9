package cli

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"

	graphio "github.com/hinewai/pathmap/pkg/io"
	"github.com/hinewai/pathmap/pkg/pipeline"
)

func (c *CLI) parseCommand() *cobra.Command {
	var (
		devices     string
		labels      string
		output      string
		separator   string
		sample      int
		noAggregate bool
		minCount    int
	)

	cmd := &cobra.Command{
		Use:   "parse <paths-file>",
		Short: "Parse a path log and export the connectivity graph as JSON",
		Long: `Parse runs the pipeline up to the graph stage and writes the devices
and weighted links as JSON, without rendering a map. The output can be
re-imported by other tools or inspected directly.`,
		Example: `  pathmap parse paths.csv --devices devices.csv
  pathmap parse paths.csv --devices devices.csv -o graph.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := pipeline.Options{
				PathsFile:   args[0],
				DevicesFile: devices,
				LabelsFile:  labels,
				Separator:   separator,
				Sample:      sample,
				NoAggregate: noAggregate,
				MinCount:    minCount,
				SkipOffline: true,
				Formats:     []string{pipeline.FormatJSON},
				Logger:      c.Logger,
			}

			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			cfg.apply(&opts)

			return c.runParse(cmd.Context(), opts, output)
		},
	}

	cmd.Flags().StringVarP(&devices, "devices", "d", "", "device coordinate table (CSV, required)")
	cmd.Flags().StringVarP(&labels, "labels", "l", "", "device labels table (CSV)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().StringVar(&separator, "sep", "", "path-log delimiter: comma, tab or auto")
	cmd.Flags().IntVar(&sample, "sample", 0, "keep only the first N rows (0 keeps all)")
	cmd.Flags().BoolVar(&noAggregate, "no-aggregate", false, "keep every edge instance instead of aggregating")
	cmd.Flags().IntVar(&minCount, "min-count", 0, "drop aggregated links seen fewer than N times")

	return cmd
}

func (c *CLI) runParse(ctx context.Context, opts pipeline.Options, output string) error {
	runner := c.newRunner(true)
	defer runner.Close()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		return err
	}

	w, closer, err := openOutput(output)
	if err != nil {
		return err
	}
	defer closer.Close()

	if err := graphio.WriteJSON(graphio.Graph{
		Devices: result.Devices.Devices(),
		Links:   result.Links,
	}, w); err != nil {
		return err
	}

	if output != "" {
		printSuccess("graph exported")
		printStats(result.Devices.Len(), len(result.Links), 0)
		printFile(output)
	}
	return nil
}

// openOutput returns a writer for the given path, stdout when empty.
func openOutput(path string) (io.Writer, io.Closer, error) {
	if path == "" || path == "-" {
		return os.Stdout, nopCloser{}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return f, f, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
