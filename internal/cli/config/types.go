// Package config provides configuration management for the kgprune CLI.
//
// Configuration is layered: built-in defaults, then a kgprune.yaml file,
// then KGPRUNE_* environment variables, then command-line flags.
package config

import (
	"fmt"
	"unicode/utf8"

	"github.com/leapstack-labs/kgprune/internal/engine"
	"github.com/leapstack-labs/kgprune/pkg/table"
)

// Config holds all CLI configuration options.
type Config struct {
	NodeFile      string `koanf:"node_file" yaml:"node_file"`
	EdgeFile      string `koanf:"edge_file" yaml:"edge_file"`
	StatsFile     string `koanf:"stats_file" yaml:"stats_file"`
	NodeDelimiter Char   `koanf:"node_delimiter" yaml:"node_delimiter"`
	EdgeDelimiter Char   `koanf:"edge_delimiter" yaml:"edge_delimiter"`
	Quote         Char   `koanf:"quote" yaml:"quote"`
	WriteStats    bool   `koanf:"write_stats" yaml:"write_stats"`
	OutputFormat  string `koanf:"output" yaml:"output"`
	LogLevel      string `koanf:"log_level" yaml:"log_level"`
	Verbose       bool   `koanf:"verbose" yaml:"verbose,omitempty"`
}

// Default configuration values
const (
	DefaultNodeFile      = engine.DefaultNodeFile
	DefaultEdgeFile      = engine.DefaultEdgeFile
	DefaultStatsFile     = engine.DefaultStatsFile
	DefaultNodeDelimiter = Char('\t')
	DefaultEdgeDelimiter = Char(',')
	DefaultQuote         = Char('"')
	DefaultOutput        = "auto" // Auto-detect: TTY=text, non-TTY=markdown
	DefaultLogLevel      = "warn"
)

// Default returns a Config populated with the default values.
func Default() *Config {
	return &Config{
		NodeFile:      DefaultNodeFile,
		EdgeFile:      DefaultEdgeFile,
		StatsFile:     DefaultStatsFile,
		NodeDelimiter: DefaultNodeDelimiter,
		EdgeDelimiter: DefaultEdgeDelimiter,
		Quote:         DefaultQuote,
		WriteStats:    true,
		OutputFormat:  DefaultOutput,
		LogLevel:      DefaultLogLevel,
	}
}

// NodeDialect returns the dialect used for the node table.
func (c *Config) NodeDialect() table.Dialect {
	return table.Dialect{Delimiter: rune(c.NodeDelimiter), Quote: rune(c.Quote)}
}

// EdgeDialect returns the dialect used for the edge table.
func (c *Config) EdgeDialect() table.Dialect {
	return table.Dialect{Delimiter: rune(c.EdgeDelimiter), Quote: rune(c.Quote)}
}

// EngineConfig builds the engine configuration for the graph folder dir.
func (c *Config) EngineConfig(dir string) engine.Config {
	return engine.Config{
		Dir:         dir,
		NodeFile:    c.NodeFile,
		EdgeFile:    c.EdgeFile,
		StatsFile:   c.StatsFile,
		NodeDialect: c.NodeDialect(),
		EdgeDialect: c.EdgeDialect(),
		WriteStats:  c.WriteStats,
	}
}

// Char is a single delimiter or quote character. In configuration it may be
// spelled as the character itself, as an escape such as \t, or by name.
type Char rune

var charNames = map[string]rune{
	"tab":       '\t',
	"comma":     ',',
	"semicolon": ';',
	"pipe":      '|',
	"space":     ' ',
}

var charEscapes = map[string]rune{
	`\t`: '\t',
	`\\`: '\\',
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Char) UnmarshalText(text []byte) error {
	s := string(text)
	if r, ok := charNames[s]; ok {
		*c = Char(r)
		return nil
	}
	if r, ok := charEscapes[s]; ok {
		*c = Char(r)
		return nil
	}
	r, size := utf8.DecodeRuneInString(s)
	if s == "" || size != len(s) || r == utf8.RuneError {
		return fmt.Errorf("invalid character %q: expected a single character or one of tab, comma, semicolon, pipe, space", s)
	}
	*c = Char(r)
	return nil
}

// MarshalText implements encoding.TextMarshaler. Whitespace characters are
// written by name so they survive a round trip through YAML.
func (c Char) MarshalText() ([]byte, error) {
	switch rune(c) {
	case '\t':
		return []byte("tab"), nil
	case ' ':
		return []byte("space"), nil
	}
	return []byte(string(rune(c))), nil
}

// String returns the configuration spelling of c.
func (c Char) String() string {
	b, _ := c.MarshalText()
	return string(b)
}
