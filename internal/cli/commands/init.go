package commands

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/leapstack-labs/kgprune/internal/cli/config"
)

const configHeader = `# kgprune configuration
#
# Every key can be overridden with a KGPRUNE_<KEY> environment variable or
# the matching --kebab-case flag. Delimiters and the quote character accept
# a single character or one of: tab, comma, semicolon, pipe, space.

`

// NewInitCommand creates the init command.
func NewInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Write a default kgprune.yaml",
		Long: `Write a kgprune.yaml holding the default configuration.

Place it in the working directory or inside a graph folder; a file in the
working directory takes precedence.`,
		Example: `  # Initialize in current directory
  kgprune init

  # Configure a single graph folder
  kgprune init data/primekg

  # Force overwrite existing config
  kgprune init --force`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			return runInit(NewCommandContext(cmd), dir, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing configuration")

	return cmd
}

func runInit(c *CommandContext, dir string, force bool) error {
	r := c.Renderer

	if dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	configPath := filepath.Join(dir, config.ConfigFileNames[0])
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("%s already exists. Use --force to overwrite", configPath)
	}

	content, err := defaultConfigYAML()
	if err != nil {
		return err
	}
	if err := os.WriteFile(configPath, content, 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", configPath, err)
	}
	c.Logger.Debug("wrote configuration", "path", configPath)

	r.StatusLine(configPath, "success", "")
	r.Println("")
	r.Success("kgprune configuration initialized!")
	r.Println("")
	r.Println("Next steps:")
	r.Println("  1. Adjust file names and delimiters to match your graph folder")
	r.Println("  2. Run 'kgprune prune <folder> <node_type>...'")

	return nil
}

func defaultConfigYAML() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(configHeader)

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(config.Default()); err != nil {
		return nil, fmt.Errorf("failed to encode configuration: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode configuration: %w", err)
	}
	return buf.Bytes(), nil
}
