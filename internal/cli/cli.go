// Package cli implements the pathmap command-line interface.
//
// This package provides commands for generating interactive path maps from
// radio-network path logs, exporting the derived connectivity graph, and
// managing the response cache. The CLI is built using cobra and supports
// verbose logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - generate: Build the map (and other artifacts) from a path log
//   - parse: Export the derived graph as JSON without rendering a map
//   - offline: Query the monitoring dashboard for offline nodes
//   - serve: Generate the map and serve it over HTTP for preview
//   - cache: Manage the response cache
//
// # Configuration
//
// Flag defaults can be supplied by a pathmap.toml file; explicit flags
// always win. See [CLI.loadConfig] for the search order.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/hinewai/pathmap/pkg/buildinfo"
	"github.com/hinewai/pathmap/pkg/cache"
	"github.com/hinewai/pathmap/pkg/pipeline"
)

const (
	// appName is the application name used for directories and display.
	appName = "pathmap"

	// redisEnv names the environment variable selecting the Redis cache
	// backend. When unset, a file cache under the XDG cache dir is used.
	redisEnv = "PATHMAP_REDIS_ADDR"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// configPath overrides the config file search when set via --config.
	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		}),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Pathmap turns radio-network path logs into interactive maps",
		Long:         `Pathmap ingests a log of radio-network path observations, resolves every device to a coordinate, derives a weighted connectivity graph, and renders it as an interactive map with search and live offline-status highlighting.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: ./pathmap.toml, then $XDG_CONFIG_HOME/pathmap/)")

	root.AddCommand(c.generateCommand())
	root.AddCommand(c.parseCommand())
	root.AddCommand(c.offlineCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(noCache bool) *pipeline.Runner {
	return pipeline.NewRunner(c.newCache(noCache), c.Logger)
}

// newCache selects the cache backend: disabled, Redis when PATHMAP_REDIS_ADDR
// is set, file cache otherwise. Backend failures fall back to no caching
// rather than failing the command.
func (c *CLI) newCache(noCache bool) cache.Cache {
	if noCache {
		return cache.NewNullCache()
	}
	if addr := os.Getenv(redisEnv); addr != "" {
		rc, err := cache.NewRedisCache(context.Background(), addr)
		if err != nil {
			c.Logger.Warn("redis cache unavailable, continuing without caching", "addr", addr, "error", err)
			return cache.NewNullCache()
		}
		return rc
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache()
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return cache.NewNullCache()
	}
	return fc
}

// cacheDir returns the cache directory using XDG standard (~/.cache/pathmap/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatHTML}
	}
	var formats []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			formats = append(formats, f)
		}
	}
	return formats
}
