// Package engine runs subgraph extraction over a graph folder.
//
// A graph folder holds a node table and an edge table. The engine reads both,
// prunes them to the requested node types and writes them back over the
// original files, optionally leaving a statistics report next to them.
package engine

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/leapstack-labs/kgprune/pkg/table"
)

// Default file names inside a graph folder.
const (
	DefaultNodeFile  = "node.csv"
	DefaultEdgeFile  = "edges.csv"
	DefaultStatsFile = "subgraph_stats.txt"
)

// Engine prunes one graph folder.
type Engine struct {
	logger *slog.Logger

	dir         string
	nodePath    string
	edgePath    string
	statsPath   string
	nodeDialect table.Dialect
	edgeDialect table.Dialect
	writeStats  bool
}

// Config holds engine configuration.
type Config struct {
	// Dir is the graph folder.
	Dir string
	// NodeFile, EdgeFile and StatsFile are file names relative to Dir.
	// Empty values fall back to the Default* names.
	NodeFile  string
	EdgeFile  string
	StatsFile string
	// NodeDialect defaults to tab separated, EdgeDialect to comma separated.
	NodeDialect table.Dialect
	EdgeDialect table.Dialect
	// WriteStats enables the statistics report.
	WriteStats bool
	// Logger is the structured logger (optional, uses discard if nil)
	Logger *slog.Logger
}

// New creates an engine for cfg.Dir. The folder itself is checked when the
// engine runs, not here.
func New(cfg Config) (*Engine, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	if cfg.Dir == "" {
		return nil, errors.New("graph folder is required")
	}

	nodeDialect := cfg.NodeDialect
	if nodeDialect == (table.Dialect{}) {
		nodeDialect = table.TSV
	}
	edgeDialect := cfg.EdgeDialect
	if edgeDialect == (table.Dialect{}) {
		edgeDialect = table.CSV
	}
	if err := nodeDialect.Validate(); err != nil {
		return nil, fmt.Errorf("invalid node table dialect: %w", err)
	}
	if err := edgeDialect.Validate(); err != nil {
		return nil, fmt.Errorf("invalid edge table dialect: %w", err)
	}

	logger.Debug("initializing engine", "dir", cfg.Dir, "write_stats", cfg.WriteStats)

	return &Engine{
		logger:      logger,
		dir:         cfg.Dir,
		nodePath:    filepath.Join(cfg.Dir, orDefault(cfg.NodeFile, DefaultNodeFile)),
		edgePath:    filepath.Join(cfg.Dir, orDefault(cfg.EdgeFile, DefaultEdgeFile)),
		statsPath:   filepath.Join(cfg.Dir, orDefault(cfg.StatsFile, DefaultStatsFile)),
		nodeDialect: nodeDialect,
		edgeDialect: edgeDialect,
		writeStats:  cfg.WriteStats,
	}, nil
}

// Dir returns the graph folder.
func (e *Engine) Dir() string { return e.dir }

// NodePath returns the node table path.
func (e *Engine) NodePath() string { return e.nodePath }

// EdgePath returns the edge table path.
func (e *Engine) EdgePath() string { return e.edgePath }

// StatsPath returns where the statistics report is written.
func (e *Engine) StatsPath() string { return e.statsPath }

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
