// Package cli implements the socql command line interface.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/soclabs/socql/internal/cli/output"
	"github.com/soclabs/socql/internal/config"
	"github.com/soclabs/socql/pkg/schema"
)

// Build information, set via ldflags.
var (
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "none"
)

type contextKey int

const (
	configKey contextKey = iota
	rendererKey
	registryKey
)

// GetConfig retrieves the loaded configuration from the command context.
func GetConfig(cmd *cobra.Command) *config.Config {
	if cfg, ok := cmd.Context().Value(configKey).(*config.Config); ok {
		return cfg
	}
	return &config.Config{}
}

// GetRenderer retrieves the output renderer from the command context.
func GetRenderer(cmd *cobra.Command) *output.Renderer {
	if r, ok := cmd.Context().Value(rendererKey).(*output.Renderer); ok {
		return r
	}
	return output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.ModeAuto)
}

// GetRegistry retrieves the schema registry from the command context.
func GetRegistry(cmd *cobra.Command) *schema.Registry {
	if reg, ok := cmd.Context().Value(registryKey).(*schema.Registry); ok {
		return reg
	}
	return schema.Default()
}

// NewRootCommand creates the root socql command.
func NewRootCommand() *cobra.Command {
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:   "socql",
		Short: "Query language tooling for security event search",
		Long: `socql tokenizes, validates, and analyzes SOCQL queries, the hybrid
pipe/SQL language used to search security events. It also serves the
same capabilities over HTTP for editor and UI integrations.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Help and shell completion must work without a config file.
			switch cmd.Name() {
			case "help", "completion", cobra.ShellCompRequestCmd, cobra.ShellCompNoDescRequestCmd:
				return nil
			}

			cfg, err := config.Load(cfgFile, cmd.Flags())
			if err != nil {
				return err
			}

			r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(cfg.OutputFormat))

			reg := schema.Default()
			if cfg.SchemaPath != "" {
				snap, err := schema.LoadSnapshotFile(cfg.SchemaPath)
				if err != nil {
					return fmt.Errorf("failed to load schema %s: %w", cfg.SchemaPath, err)
				}
				reg.Import(snap)
			}

			ctx := cmd.Context()
			ctx = context.WithValue(ctx, configKey, cfg)
			ctx = context.WithValue(ctx, rendererKey, r)
			ctx = context.WithValue(ctx, registryKey, reg)
			cmd.SetContext(ctx)

			if cfg.Verbose {
				if used := config.GetConfigFileUsed(); used != "" {
					fmt.Fprintln(cmd.ErrOrStderr(), "Using config file:", used)
				}
			}
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: socql.yaml, searched upward)")
	rootCmd.PersistentFlags().String("schema", "", "schema file to merge over the built-in schema")
	rootCmd.PersistentFlags().StringP("output", "o", config.DefaultOutput, "output format: auto, text, markdown, or json")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable verbose output")

	rootCmd.AddCommand(
		NewValidateCommand(),
		NewTokenizeCommand(),
		NewContextCommand(),
		NewCompleteCommand(),
		NewSchemaCommand(),
		NewServeCommand(),
		NewVersionCommand(),
		NewCompletionCommand(),
	)

	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	return NewRootCommand().Execute()
}

// NewCompletionCommand generates shell completion scripts.
func NewCompletionCommand() *cobra.Command {
	return &cobra.Command{
		Use:       "completion [bash|zsh|fish|powershell]",
		Short:     "Generate shell completion scripts",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(os.Stdout)
			case "zsh":
				return cmd.Root().GenZshCompletion(os.Stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(os.Stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
			}
			return nil
		},
	}
}
