package cli

import (
	"runtime"

	"github.com/spf13/cobra"

	"github.com/soclabs/socql/internal/cli/output"
)

// NewVersionCommand creates the version command.
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r := GetRenderer(cmd)
			if r.EffectiveMode() == output.ModeJSON {
				return r.JSON(struct {
					Version   string `json:"version"`
					BuildDate string `json:"buildDate"`
					GitCommit string `json:"gitCommit"`
					GoVersion string `json:"goVersion"`
				}{Version, BuildDate, GitCommit, runtime.Version()})
			}
			r.Printf("socql %s (commit %s, built %s, %s)\n", Version, GitCommit, BuildDate, runtime.Version())
			return nil
		},
	}
}
