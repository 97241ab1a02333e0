package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/leapstack-labs/kgprune/internal/cli"
	"github.com/leapstack-labs/kgprune/internal/cli/config"
)

var configDescriptions = map[string]string{
	"node_file":      "Node table file name inside the graph folder.",
	"edge_file":      "Edge table file name inside the graph folder.",
	"stats_file":     "Statistics file written next to the tables.",
	"node_delimiter": "Node table delimiter: one character or tab, comma, semicolon, pipe, space.",
	"edge_delimiter": "Edge table delimiter, same spellings as node_delimiter.",
	"quote":          "Quote character for both tables.",
	"write_stats":    "Whether the statistics file is written.",
	"output":         "Report format: auto, text, markdown or json. auto is text on a terminal, markdown otherwise.",
	"log_level":      "Diagnostics level on stderr: debug, info, warn or error.",
	"verbose":        "Forces debug logging.",
}

// configKey describes one configuration key.
type configKey struct {
	Name    string
	Default string
	Env     string
	Flag    string
}

// configKeys lists the keys of config.Config in declaration order.
func configKeys() []configKey {
	flags := cli.NewRootCmd().PersistentFlags()
	def := reflect.ValueOf(config.Default()).Elem()
	typ := def.Type()

	keys := make([]configKey, 0, typ.NumField())
	for i := range typ.NumField() {
		name := typ.Field(i).Tag.Get("koanf")
		if name == "" {
			continue
		}
		key := configKey{
			Name:    name,
			Default: fmt.Sprint(def.Field(i).Interface()),
			Env:     "KGPRUNE_" + strings.ToUpper(name),
		}
		if f := flags.Lookup(strings.ReplaceAll(name, "_", "-")); f != nil {
			key.Flag = "--" + f.Name
		}
		keys = append(keys, key)
	}
	return keys
}

// generateConfigDocs generates the configuration reference page.
func generateConfigDocs(outDir string) error {
	log.Printf("Generating config docs to %s", outDir)

	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	w := NewMarkdownWriter()
	w.Frontmatter("Configuration", "Configuration keys for kgprune")
	w.GeneratedMarker()

	w.Header(1, "Configuration")
	w.Paragraph("kgprune reads `kgprune.yaml` (or `kgprune.yml`) from the working directory, " +
		"falling back to the graph folder being pruned. `--config` names a file explicitly.")
	w.Paragraph("Values are layered: defaults, then the file, then `KGPRUNE_*` environment variables, then flags.")

	w.Header(2, "Keys")
	var rows [][]string
	for _, k := range configKeys() {
		flag := ""
		if k.Flag != "" {
			flag = InlineCode(k.Flag)
		}
		rows = append(rows, []string{
			InlineCode(k.Name),
			InlineCode(k.Default),
			InlineCode(k.Env),
			flag,
			configDescriptions[k.Name],
		})
	}
	w.Table([]string{"Key", "Default", "Environment", "Flag", "Description"}, rows)

	w.Header(2, "Example")
	w.Paragraph("`kgprune init` writes this file with the defaults:")
	w.CodeBlock("yaml", `node_file: node.csv
edge_file: edges.csv
stats_file: subgraph_stats.txt
node_delimiter: tab
edge_delimiter: ','
quote: '"'
write_stats: true
output: auto
log_level: warn`)

	filename := filepath.Join(outDir, "index.md")
	return os.WriteFile(filename, w.Bytes(), 0600)
}
