// Package main provides end-to-end tests for the kgprune CLI.
package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/kgprune/internal/cli"
	"github.com/leapstack-labs/kgprune/internal/cli/config"
	"github.com/leapstack-labs/kgprune/internal/engine"
	"github.com/leapstack-labs/kgprune/internal/testutil"
)

// run executes the root command in an empty working directory and returns
// stdout and stderr.
func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Chdir(t.TempDir())
	t.Cleanup(config.ResetConfig)

	cmd := cli.NewRootCmd()
	out, errOut := new(bytes.Buffer), new(bytes.Buffer)
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, _, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "kgprune v"+cli.Version)
}

func TestHelpCommand(t *testing.T) {
	out, _, err := run(t, "--help")
	require.NoError(t, err)

	for _, expected := range []string{"prune", "init", "completion", "version", "--node-delimiter", "--output"} {
		assert.Contains(t, out, expected)
	}
}

func TestCompletionCommand(t *testing.T) {
	out, _, err := run(t, "completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, out, "kgprune")

	_, _, err = run(t, "completion", "tcsh")
	assert.Error(t, err)
}

func TestPruneCommand(t *testing.T) {
	dir := testutil.WriteGraph(t, testutil.NodeFixture, testutil.EdgeFixture)

	out, _, err := run(t, "prune", dir, "drug")
	require.NoError(t, err)

	assert.Contains(t, out, "Done. Kept 1 nodes and 0 edges.")
	assert.Equal(t, "node_index\tnode_id\tnode_type\n0\tD1\tdrug\n", testutil.ReadFile(t, filepath.Join(dir, "node.csv")))
	assert.Equal(t, "x_index,y_index,relation\n", testutil.ReadFile(t, filepath.Join(dir, "edges.csv")))

	stats := testutil.ReadFile(t, filepath.Join(dir, "subgraph_stats.txt"))
	assert.Equal(t, "Subgraph folder: "+filepath.Base(dir)+"\nNode types kept: drug\nNodes: 1\nEdges: 0\n", stats)
}

func TestPruneCommandJSON(t *testing.T) {
	dir := testutil.WriteGraph(t, testutil.NodeFixture, testutil.EdgeFixture)

	out, _, err := run(t, "prune", dir, "protein", "drug", "--output", "json")
	require.NoError(t, err)

	var report engine.Report
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, 2, report.Nodes)
	assert.Equal(t, 2, report.Edges)
	assert.Equal(t, []string{"drug", "protein"}, report.KeptTypes)
	assert.Equal(t, map[string]int{"drug": 1, "protein": 1}, report.NodesByType)
	assert.NotEmpty(t, report.RunID)
}

func TestPruneCommandOutputFromEnv(t *testing.T) {
	dir := testutil.WriteGraph(t, testutil.NodeFixture, testutil.EdgeFixture)
	t.Setenv("KGPRUNE_OUTPUT", "json")
	t.Setenv("KGPRUNE_WRITE_STATS", "false")

	out, _, err := run(t, "prune", dir, "drug")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "{"), "expected JSON, got %q", out)
	_, err = os.Stat(filepath.Join(dir, "subgraph_stats.txt"))
	assert.True(t, os.IsNotExist(err))
}

func TestPruneCommandCustomFormat(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteFile(t, filepath.Join(dir, "nodes.csv"), "node_index,node_type\n0,drug\n1,gene\n")
	testutil.WriteFile(t, filepath.Join(dir, "edges.tsv"), "x_index\ty_index\n0\t0\n0\t1\n")

	_, _, err := run(t, "prune", dir, "drug",
		"--node-file", "nodes.csv", "--node-delimiter", "comma",
		"--edge-file", "edges.tsv", "--edge-delimiter", `\t`,
		"--stats-file", "summary.txt")
	require.NoError(t, err)

	assert.Equal(t, "node_index,node_type\n0,drug\n", testutil.ReadFile(t, filepath.Join(dir, "nodes.csv")))
	assert.Equal(t, "x_index\ty_index\n0\t0\n", testutil.ReadFile(t, filepath.Join(dir, "edges.tsv")))
	assert.FileExists(t, filepath.Join(dir, "summary.txt"))
}

func TestPruneCommandConfigInGraphFolder(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteFile(t, filepath.Join(dir, "kgprune.yaml"), "node_file: nodes.psv\nnode_delimiter: pipe\nwrite_stats: false\n")
	testutil.WriteFile(t, filepath.Join(dir, "nodes.psv"), "node_index|node_type\n0|drug\n1|gene\n")
	testutil.WriteFile(t, filepath.Join(dir, "edges.csv"), "x_index,y_index\n1,0\n")

	out, _, err := run(t, "prune", dir, "gene")
	require.NoError(t, err)

	assert.Contains(t, out, "Kept 1 nodes and 0 edges")
	assert.Equal(t, "node_index|node_type\n1|gene\n", testutil.ReadFile(t, filepath.Join(dir, "nodes.psv")))
	assert.NoFileExists(t, filepath.Join(dir, "subgraph_stats.txt"))
}

func TestPruneCommandVerboseLogging(t *testing.T) {
	dir := testutil.WriteGraph(t, "node_index\tnode_type\n0\tdrug\textra\n", testutil.EdgeFixture)

	_, errOut, err := run(t, "prune", dir, "drug", "-v")
	require.NoError(t, err)

	assert.Contains(t, errOut, "level=DEBUG")
	assert.Contains(t, errOut, "repaired malformed row")
	assert.Contains(t, errOut, "run_id=")
}

func TestPruneCommandQuietByDefault(t *testing.T) {
	dir := testutil.WriteGraph(t, testutil.NodeFixture, testutil.EdgeFixture)

	_, errOut, err := run(t, "prune", dir, "drug")
	require.NoError(t, err)
	assert.Empty(t, errOut)
}

func TestPruneCommandErrors(t *testing.T) {
	tests := []struct {
		name      string
		args      func(dir string) []string
		errSubstr string
	}{
		{
			name:      "missing folder",
			args:      func(dir string) []string { return []string{"prune", filepath.Join(dir, "absent"), "drug"} },
			errSubstr: "file does not exist",
		},
		{
			name:      "missing node type",
			args:      func(dir string) []string { return []string{"prune", dir} },
			errSubstr: "at least one node type",
		},
		{
			name:      "invalid quote",
			args:      func(dir string) []string { return []string{"prune", dir, "drug", "--quote", "ab"} },
			errSubstr: "invalid character",
		},
		{
			name:      "invalid output",
			args:      func(dir string) []string { return []string{"prune", dir, "drug", "-o", "xml"} },
			errSubstr: "invalid output format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := testutil.WriteGraph(t, testutil.NodeFixture, testutil.EdgeFixture)

			_, _, err := run(t, tt.args(dir)...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errSubstr)
			assert.Equal(t, testutil.NodeFixture, testutil.ReadFile(t, filepath.Join(dir, "node.csv")))
		})
	}
}

func TestInitThenPrune(t *testing.T) {
	dir := testutil.WriteGraph(t, testutil.NodeFixture, testutil.EdgeFixture)

	_, _, err := run(t, "init", dir)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "kgprune.yaml"))

	_, _, err = run(t, "prune", dir, "protein")
	require.NoError(t, err)
	assert.Equal(t, "node_index\tnode_id\tnode_type\n1\tP1\tprotein\n", testutil.ReadFile(t, filepath.Join(dir, "node.csv")))
}
