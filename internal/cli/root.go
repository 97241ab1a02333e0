// Package cli provides the command-line interface for kgprune.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/kgprune/internal/cli/commands"
	"github.com/leapstack-labs/kgprune/internal/cli/config"
)

var cfgFile string

// Version is the release version (set at build time).
var Version = "0.1.0"

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "kgprune",
		Short: "kgprune - referential subgraph pruning",
		Long: `kgprune reduces a knowledge graph stored as a node table and an edge table
to the nodes of selected types, dropping every edge that would dangle.

It is meant for shrinking large biomedical graphs before training, and
rewrites the tables in place in the same format they were read in.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Skip config loading for help, completion and version commands
			switch cmd.Name() {
			case "help", "completion", "__complete", "version":
				return nil
			}

			// The graph folder may hold its own kgprune.yaml
			dataDir := ""
			if cmd.Name() == "prune" && len(args) > 0 {
				dataDir = args[0]
			}

			cfg, err := config.LoadConfig(cfgFile, dataDir, cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}

			logger := cfg.NewLogger(cmd.ErrOrStderr())
			ctx := context.WithValue(cmd.Context(), config.LoggerKey(), logger)
			cmd.SetContext(ctx)

			if configFile := config.GetConfigFileUsed(); configFile != "" {
				logger.Debug("using config file", "path", configFile)
			}

			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate(`{{.Name}} {{.Version}}
`)

	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./kgprune.yaml, then <folder>/kgprune.yaml)")
	rootCmd.PersistentFlags().String("node-file", "", "Node table file name inside the graph folder (default node.csv)")
	rootCmd.PersistentFlags().String("edge-file", "", "Edge table file name inside the graph folder (default edges.csv)")
	rootCmd.PersistentFlags().String("stats-file", "", "Statistics file name inside the graph folder (default subgraph_stats.txt)")
	rootCmd.PersistentFlags().String("node-delimiter", "", "Node table delimiter (default tab)")
	rootCmd.PersistentFlags().String("edge-delimiter", "", "Edge table delimiter (default comma)")
	rootCmd.PersistentFlags().String("quote", "", "Quote character for both tables (default \")")
	rootCmd.PersistentFlags().String("log-level", "", "Log level (debug|info|warn|error)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Verbose output (debug logging)")
	rootCmd.PersistentFlags().StringP("output", "o", "", "Output format (auto|text|markdown|json)")

	// Register completion for output flag
	_ = rootCmd.RegisterFlagCompletionFunc("output", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return config.OutputFormats, cobra.ShellCompDirectiveNoFileComp
	})
	_ = rootCmd.RegisterFlagCompletionFunc("log-level", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"debug", "info", "warn", "error"}, cobra.ShellCompDirectiveNoFileComp
	})
	for _, name := range []string{"node-delimiter", "edge-delimiter"} {
		_ = rootCmd.RegisterFlagCompletionFunc(name, func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
			return []string{"tab", "comma", "semicolon", "pipe", "space"}, cobra.ShellCompDirectiveNoFileComp
		})
	}

	// Add subcommands
	rootCmd.AddCommand(commands.NewVersionCommand(Version))
	rootCmd.AddCommand(commands.NewPruneCommand())
	rootCmd.AddCommand(commands.NewInitCommand())
	rootCmd.AddCommand(NewCompletionCommand())

	return rootCmd
}

// Execute runs the root command. An interrupt cancels the run before any
// table is rewritten.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd := NewRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

// NewCompletionCommand creates the completion command.
func NewCompletionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for kgprune.

To load completions:

Bash:
  $ source <(kgprune completion bash)

Zsh:
  $ kgprune completion zsh > "${fpath[1]}/_kgprune"

Fish:
  $ kgprune completion fish | source

PowerShell:
  PS> kgprune completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
	return cmd
}
