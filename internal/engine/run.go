package engine

// run.go - read, prune and write orchestration

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/leapstack-labs/kgprune/pkg/prune"
	"github.com/leapstack-labs/kgprune/pkg/table"
)

// RunOptions tunes a single run.
type RunOptions struct {
	// DryRun reads and prunes but writes nothing.
	DryRun bool
}

// Report describes a completed run.
type Report struct {
	RunID  string `json:"run_id"`
	Folder string `json:"folder"`

	NodePath  string `json:"node_path"`
	EdgePath  string `json:"edge_path"`
	StatsPath string `json:"stats_path,omitempty"`

	KeptTypes   []string       `json:"kept_types"`
	NodesRead   int            `json:"nodes_read"`
	EdgesRead   int            `json:"edges_read"`
	Nodes       int            `json:"nodes"`
	Edges       int            `json:"edges"`
	NodesByType map[string]int `json:"nodes_by_type"`
	Repaired    int            `json:"repaired_rows"`

	DryRun   bool          `json:"dry_run"`
	Duration time.Duration `json:"duration_ns"`
}

// Run prunes the graph folder to the node types in keep.
//
// Phase 1 reads both tables and prunes them in memory; any missing file or
// missing column aborts here and leaves the folder untouched. Phase 2 replaces
// the node table, then the edge table, then writes the statistics report.
// ctx is only consulted between the phases.
func (e *Engine) Run(ctx context.Context, keep prune.KeepSet, opts RunOptions) (*Report, error) {
	start := time.Now()
	runID := uuid.New().String()
	logger := e.logger.With("run_id", runID)

	logger.Info("starting run", "dir", e.dir, "kept_types", keep.Sorted(), "dry_run", opts.DryRun)

	if err := e.checkInputs(); err != nil {
		return nil, err
	}

	// Phase 1: read and prune
	logger.Debug("reading node table", "path", e.nodePath)
	nodes, err := table.NewReader(e.nodeDialect, logger).ReadFile(e.nodePath)
	if err != nil {
		return nil, err
	}
	logger.Debug("reading edge table", "path", e.edgePath)
	edges, err := table.NewReader(e.edgeDialect, logger).ReadFile(e.edgePath)
	if err != nil {
		return nil, err
	}

	result, err := prune.Prune(nodes, edges, keep)
	if err != nil {
		var schemaErr *prune.SchemaError
		if errors.As(err, &schemaErr) && schemaErr.Table == "edge table" {
			return nil, fmt.Errorf("%s: %w", e.edgePath, err)
		}
		return nil, fmt.Errorf("%s: %w", e.nodePath, err)
	}

	for _, t := range keep.Sorted() {
		if result.NodesByType[t] == 0 {
			logger.Warn("node type matched no rows", "node_type", t)
		}
	}

	logger.Info("pruned",
		"nodes_read", nodes.Len(), "nodes", result.NodeCount(),
		"edges_read", edges.Len(), "edges", result.EdgeCount(),
		"repaired_rows", nodes.Repaired+edges.Repaired)

	report := &Report{
		RunID:       runID,
		Folder:      folderName(e.dir),
		NodePath:    e.nodePath,
		EdgePath:    e.edgePath,
		KeptTypes:   keep.Sorted(),
		NodesRead:   nodes.Len(),
		EdgesRead:   edges.Len(),
		Nodes:       result.NodeCount(),
		Edges:       result.EdgeCount(),
		NodesByType: result.NodesByType,
		Repaired:    nodes.Repaired + edges.Repaired,
		DryRun:      opts.DryRun,
	}

	if opts.DryRun {
		report.Duration = time.Since(start)
		logger.Info("dry run, nothing written")
		return report, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Phase 2: write
	if err := table.NewWriter(e.nodeDialect).WriteFile(e.nodePath, result.Nodes); err != nil {
		return nil, err
	}
	logger.Info("wrote node table", "path", e.nodePath, "rows", result.NodeCount())

	if err := table.NewWriter(e.edgeDialect).WriteFile(e.edgePath, result.Edges); err != nil {
		return nil, err
	}
	logger.Info("wrote edge table", "path", e.edgePath, "rows", result.EdgeCount())

	if e.writeStats {
		stats := prune.NewStats(report.Folder, keep, result)
		if err := stats.WriteFile(e.statsPath); err != nil {
			return nil, err
		}
		report.StatsPath = e.statsPath
		logger.Info("wrote statistics", "path", e.statsPath)
	}

	report.Duration = time.Since(start)
	logger.Info("run completed", "duration", report.Duration)
	return report, nil
}

// checkInputs verifies the folder and both tables exist before anything is read.
func (e *Engine) checkInputs() error {
	info, err := os.Stat(e.dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &table.MissingFileError{Path: e.dir}
		}
		return fmt.Errorf("failed to access graph folder: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("graph folder is not a directory: %s", e.dir)
	}

	for _, p := range []string{e.nodePath, e.edgePath} {
		if _, err := os.Stat(p); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return &table.MissingFileError{Path: p}
			}
			return fmt.Errorf("failed to access %s: %w", p, err)
		}
	}
	return nil
}

// folderName is the base name of dir, resolved so that "." names the real folder.
func folderName(dir string) string {
	if abs, err := filepath.Abs(dir); err == nil {
		return filepath.Base(abs)
	}
	return filepath.Base(dir)
}
