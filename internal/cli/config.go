package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/hinewai/pathmap/pkg/pipeline"
)

// configFile is the name of the optional configuration file.
const configFile = "pathmap.toml"

// Config holds flag defaults loaded from pathmap.toml. Every field is
// optional; explicit flags always override config values.
type Config struct {
	Devices    string   `toml:"devices"`
	Labels     string   `toml:"labels"`
	Separator  string   `toml:"separator"`
	MinCount   int      `toml:"min_count"`
	OfflineURL string   `toml:"offline_url"`
	Center     string   `toml:"center"`
	Zoom       int      `toml:"zoom"`
	Formats    []string `toml:"formats"`
}

// loadConfig reads the config file. An explicit --config path must exist;
// otherwise pathmap.toml is searched in the working directory, then in the
// XDG config dir (~/.config/pathmap/). A missing file yields an empty
// config; a malformed file is an error.
func (c *CLI) loadConfig() (Config, error) {
	var cfg Config
	if c.configPath != "" {
		if _, err := toml.DecodeFile(c.configPath, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", c.configPath, err)
		}
		return cfg, nil
	}
	for _, path := range configPaths() {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", path, err)
		}
		return cfg, nil
	}
	return cfg, nil
}

func configPaths() []string {
	paths := []string{configFile}
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		paths = append(paths, filepath.Join(configHome, appName, configFile))
	} else if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", appName, configFile))
	}
	return paths
}

// apply fills unset pipeline options from the config.
func (c Config) apply(opts *pipeline.Options) {
	if opts.DevicesFile == "" {
		opts.DevicesFile = c.Devices
	}
	if opts.LabelsFile == "" {
		opts.LabelsFile = c.Labels
	}
	if opts.Separator == "" {
		opts.Separator = c.Separator
	}
	if opts.MinCount == 0 {
		opts.MinCount = c.MinCount
	}
	if opts.OfflineURL == "" {
		opts.OfflineURL = c.OfflineURL
	}
	if opts.CenterID == "" {
		opts.CenterID = c.Center
	}
	if opts.Zoom == 0 {
		opts.Zoom = c.Zoom
	}
	if len(opts.Formats) == 0 && len(c.Formats) > 0 {
		opts.Formats = append([]string(nil), c.Formats...)
	}
}
