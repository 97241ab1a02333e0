package commands

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/kgprune/internal/cli/output"
	"github.com/leapstack-labs/kgprune/internal/engine"
	"github.com/leapstack-labs/kgprune/pkg/prune"
)

// PruneOptions holds options for the prune command.
type PruneOptions struct {
	DryRun  bool
	NoStats bool
}

// NewPruneCommand creates the prune command.
func NewPruneCommand() *cobra.Command {
	opts := &PruneOptions{}

	cmd := &cobra.Command{
		Use:   "prune <folder> <node_type>...",
		Short: "Reduce a graph folder to the given node types",
		Long: `Reduce the node and edge tables of a graph folder to the given node types.

Nodes whose node_type is not listed are dropped, then every edge whose
x_index or y_index no longer names a kept node is dropped. Both tables are
rewritten in place and a statistics summary is written next to them.

Nothing is written if a table is missing or lacks a required column.`,
		Example: `  # Keep only drugs and proteins
  kgprune prune data/primekg drug protein

  # Show what would be kept without touching the files
  kgprune prune data/primekg drug --dry-run

  # Machine-readable report
  kgprune prune data/primekg drug -o json`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) < 2 {
				return fmt.Errorf("requires a graph folder and at least one node type, received %d argument(s)", len(args))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPrune(cmd, args[0], args[1:], opts)
		},
	}

	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "Read and prune but write nothing")
	cmd.Flags().BoolVar(&opts.NoStats, "no-stats", false, "Do not write the statistics file")

	return cmd
}

func runPrune(cmd *cobra.Command, folder string, types []string, opts *PruneOptions) error {
	c := NewCommandContext(cmd)

	engCfg := c.Cfg.EngineConfig(folder)
	engCfg.Logger = c.Logger
	if opts.NoStats {
		engCfg.WriteStats = false
	}

	eng, err := engine.New(engCfg)
	if err != nil {
		return err
	}

	report, err := eng.Run(cmd.Context(), prune.NewKeepSet(types...), engine.RunOptions{DryRun: opts.DryRun})
	if err != nil {
		return err
	}

	switch c.Renderer.EffectiveMode() {
	case output.ModeJSON:
		return c.Renderer.JSON(report)
	case output.ModeMarkdown:
		pruneMarkdown(c.Renderer, report)
	default:
		pruneText(c.Renderer, report)
	}
	return nil
}

func pruneText(r *output.Renderer, rep *engine.Report) {
	title := "Pruned " + rep.Folder
	if rep.DryRun {
		title = "Dry run: " + rep.Folder
	}

	r.Println("")
	r.Header(1, title)
	r.StatusLine(filepath.Base(rep.NodePath), tableStatus(rep), fmt.Sprintf("%d of %d nodes", rep.Nodes, rep.NodesRead))
	r.StatusLine(filepath.Base(rep.EdgePath), tableStatus(rep), fmt.Sprintf("%d of %d edges", rep.Edges, rep.EdgesRead))
	if rep.Repaired > 0 {
		r.Muted(fmt.Sprintf("  %d malformed rows repaired", rep.Repaired))
	}
	r.Println("")

	r.Table([]string{"Node type", "Nodes"}, typeRows(rep))
	warnUnmatched(r, rep)
	r.Println("")

	pruneSummary(r, rep)
}

func pruneMarkdown(r *output.Renderer, rep *engine.Report) {
	title := "Pruned graph: " + rep.Folder
	if rep.DryRun {
		title = "Dry run: " + rep.Folder
	}

	r.Header(1, title)
	r.Println(output.FormatKeyValue("Run", rep.RunID))
	r.Println(output.FormatKeyValue("Node types kept", strings.Join(rep.KeptTypes, ", ")))
	r.Println(output.FormatKeyValue("Nodes", fmt.Sprintf("%d of %d", rep.Nodes, rep.NodesRead)))
	r.Println(output.FormatKeyValue("Edges", fmt.Sprintf("%d of %d", rep.Edges, rep.EdgesRead)))
	if rep.Repaired > 0 {
		r.Println(output.FormatKeyValue("Repaired rows", strconv.Itoa(rep.Repaired)))
	}
	r.Println("")

	r.Header(2, "Nodes by type")
	r.Table([]string{"Node type", "Nodes"}, typeRows(rep))
	r.Println("")
	warnUnmatched(r, rep)

	pruneSummary(r, rep)
}

func pruneSummary(r *output.Renderer, rep *engine.Report) {
	if rep.DryRun {
		r.Success(fmt.Sprintf("Dry run. Would keep %d nodes and %d edges; nothing was written.", rep.Nodes, rep.Edges))
		return
	}
	r.Success(fmt.Sprintf("Done. Kept %d nodes and %d edges.", rep.Nodes, rep.Edges))
	if rep.StatsPath != "" {
		r.Muted("Statistics written to: " + rep.StatsPath)
	}
}

func typeRows(rep *engine.Report) [][]string {
	rows := make([][]string, 0, len(rep.KeptTypes))
	for _, t := range rep.KeptTypes {
		rows = append(rows, []string{t, strconv.Itoa(rep.NodesByType[t])})
	}
	return rows
}

func warnUnmatched(r *output.Renderer, rep *engine.Report) {
	for _, t := range rep.KeptTypes {
		if rep.NodesByType[t] == 0 {
			r.Warning(fmt.Sprintf("node type %q matched no nodes", t))
		}
	}
}

func tableStatus(rep *engine.Report) string {
	if rep.DryRun {
		return "skipped"
	}
	return "success"
}
