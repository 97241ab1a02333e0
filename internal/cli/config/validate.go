package config

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"
)

// OutputFormats lists the accepted values of the output option.
var OutputFormats = []string{"auto", "text", "markdown", "json"}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	files := map[string]string{
		"node_file":  c.NodeFile,
		"edge_file":  c.EdgeFile,
		"stats_file": c.StatsFile,
	}
	for _, key := range []string{"node_file", "edge_file", "stats_file"} {
		name := files[key]
		if name == "" {
			return fmt.Errorf("%s is required", key)
		}
		if filepath.Base(name) != name {
			return fmt.Errorf("%s must be a file name inside the graph folder, got %q", key, name)
		}
	}
	if c.NodeFile == c.EdgeFile {
		return fmt.Errorf("node_file and edge_file must differ, both are %q", c.NodeFile)
	}
	if c.StatsFile == c.NodeFile || c.StatsFile == c.EdgeFile {
		return fmt.Errorf("stats_file %q would overwrite a graph table", c.StatsFile)
	}

	if err := c.NodeDialect().Validate(); err != nil {
		return fmt.Errorf("invalid node table format: %w", err)
	}
	if err := c.EdgeDialect().Validate(); err != nil {
		return fmt.Errorf("invalid edge table format: %w", err)
	}

	if c.OutputFormat != "" && !slices.Contains(OutputFormats, c.OutputFormat) {
		return fmt.Errorf("invalid output format %q: expected one of %v", c.OutputFormat, OutputFormats)
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return fmt.Errorf("invalid log_level %q: expected debug, info, warn or error", c.LogLevel)
	}
	return nil
}
