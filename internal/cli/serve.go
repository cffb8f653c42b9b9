package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/exec"
	"runtime"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	graphio "github.com/hinewai/pathmap/pkg/io"
	"github.com/hinewai/pathmap/pkg/pipeline"
)

// serveShutdownTimeout bounds graceful shutdown after Ctrl-C.
const serveShutdownTimeout = 5 * time.Second

func (c *CLI) serveCommand() *cobra.Command {
	var (
		flags generateFlags
		addr  string
		open  bool
	)

	cmd := &cobra.Command{
		Use:   "serve <paths-file>",
		Short: "Serve the generated map over HTTP for preview",
		Long: `Serve runs the pipeline and serves the rendered map on a local HTTP
server. The map is regenerated on every page load, so editing the input
files and reloading the browser shows the updated network. The derived
graph is also available as JSON at /graph.json.`,
		Example: `  pathmap serve paths.csv --devices devices.csv
  pathmap serve paths.csv --devices devices.csv --addr :9000 --open`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), args[0], flags, addr, open)
		},
	}

	cmd.Flags().StringVarP(&flags.devices, "devices", "d", "", "device coordinate table (CSV, required)")
	cmd.Flags().StringVarP(&flags.labels, "labels", "l", "", "device labels table (CSV)")
	cmd.Flags().StringVar(&flags.separator, "sep", "", "path-log delimiter: comma, tab or auto")
	cmd.Flags().BoolVar(&flags.noAggregate, "no-aggregate", false, "keep every edge instance instead of aggregating")
	cmd.Flags().IntVar(&flags.minCount, "min-count", 0, "drop aggregated links seen fewer than N times")
	cmd.Flags().StringVar(&flags.offlineURL, "offline-url", "", "monitoring dashboard URL for offline-node status")
	cmd.Flags().BoolVar(&flags.skipOffline, "skip-offline", false, "skip the offline-node fetch")
	cmd.Flags().StringVar(&flags.center, "center", "", "device ID to center the map on")
	cmd.Flags().IntVar(&flags.zoom, "zoom", 0, "initial zoom level")
	cmd.Flags().BoolVar(&flags.hideMarkers, "hide-markers", false, "render edges only, without device markers")
	cmd.Flags().BoolVar(&flags.noCache, "no-cache", false, "disable the response cache")
	cmd.Flags().StringVar(&addr, "addr", "localhost:8089", "listen address")
	cmd.Flags().BoolVar(&open, "open", false, "open the map in the default browser")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, pathsFile string, flags generateFlags, addr string, open bool) error {
	opts := pipeline.Options{
		PathsFile:   pathsFile,
		DevicesFile: flags.devices,
		LabelsFile:  flags.labels,
		Separator:   flags.separator,
		NoAggregate: flags.noAggregate,
		MinCount:    flags.minCount,
		OfflineURL:  flags.offlineURL,
		SkipOffline: flags.skipOffline,
		CenterID:    flags.center,
		Zoom:        flags.zoom,
		HideMarkers: flags.hideMarkers,
		Formats:     []string{pipeline.FormatHTML},
		Logger:      c.Logger,
	}

	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	cfg.apply(&opts)
	opts.Formats = []string{pipeline.FormatHTML}

	runner := c.newRunner(flags.noCache)
	defer runner.Close()

	// Run once up front so configuration errors surface before listening.
	if _, err := runner.Execute(ctx, opts); err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           c.previewRouter(runner, opts),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	url := "http://" + addr
	printSuccess("serving map")
	fmt.Println("  " + StyleLink.Render(url))
	printDetail("press Ctrl-C to stop")
	if open {
		if err := openBrowser(url); err != nil {
			c.Logger.Debug("could not open browser", "error", err)
		}
	}

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), serveShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return ctx.Err()
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// previewRouter builds the HTTP routes for the preview server. Pipeline
// results are regenerated per request and never cached in the handler, so a
// reload always reflects the input files on disk.
func (c *CLI) previewRouter(runner *pipeline.Runner, opts pipeline.Options) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			next.ServeHTTP(w, req.WithContext(withLogger(req.Context(), c.Logger)))
		})
	})

	var mu sync.Mutex
	execute := func(ctx context.Context) (*pipeline.Result, error) {
		mu.Lock()
		defer mu.Unlock()
		return runner.Execute(ctx, opts)
	}

	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		result, err := execute(req.Context())
		if err != nil {
			loggerFromContext(req.Context()).Error("regenerate failed", "error", err)
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(result.Artifacts[pipeline.FormatHTML])
	})

	r.Get("/graph.json", func(w http.ResponseWriter, req *http.Request) {
		result, err := execute(req.Context())
		if err != nil {
			loggerFromContext(req.Context()).Error("regenerate failed", "error", err)
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		graphio.WriteJSON(graphio.Graph{
			Devices: result.Devices.Devices(),
			Links:   result.Links,
			Offline: result.Offline,
		}, w)
	})

	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	return r
}

// openBrowser opens the given URL in the platform's default browser.
func openBrowser(url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "linux":
		cmd = exec.Command("xdg-open", url)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", url)
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}
	return cmd.Start()
}
