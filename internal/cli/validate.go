package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/soclabs/socql/internal/cli/output"
	"github.com/soclabs/socql/pkg/validate"
)

// readQuery returns the query text. The argument is taken literally unless
// it names an existing file, in which case the file contents are used.
// Absent or "-", the query is read from stdin.
func readQuery(cmd *cobra.Command, args []string) (string, error) {
	if len(args) > 0 && args[0] != "-" {
		if fi, err := os.Stat(args[0]); err == nil && !fi.IsDir() {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return "", fmt.Errorf("failed to read query file: %w", err)
			}
			return strings.TrimRight(string(data), "\n"), nil
		}
		return args[0], nil
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("failed to read query from stdin: %w", err)
	}
	return strings.TrimRight(string(data), "\n"), nil
}

func severityStyle(styles *output.Styles, sev validate.Severity) lipgloss.Style {
	switch sev {
	case validate.SeverityError:
		return styles.Error
	case validate.SeverityWarning:
		return styles.Warning
	case validate.SeverityInfo:
		return styles.Info
	default:
		return styles.Hint
	}
}

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [query|file]",
		Short: "Validate a SOCQL query",
		Long: `Validate a SOCQL query against the schema and report diagnostics.
The query comes from the argument (a literal query or a file path), or
from stdin when the argument is omitted or "-". The exit code is
non-zero when the query is invalid.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query, err := readQuery(cmd, args)
			if err != nil {
				return err
			}

			cfg := GetConfig(cmd)
			vcfg, err := cfg.ValidatorConfig()
			if err != nil {
				return err
			}

			res := validate.NewWithConfig(GetRegistry(cmd), vcfg).Validate(query)

			r := GetRenderer(cmd)
			if r.EffectiveMode() == output.ModeJSON {
				if err := r.JSON(res); err != nil {
					return err
				}
			} else {
				renderDiagnostics(r, res)
			}

			if !res.IsValid {
				return fmt.Errorf("query is invalid")
			}
			return nil
		},
	}
}

func renderDiagnostics(r *output.Renderer, res validate.Result) {
	styles := r.Styles()

	if len(res.Errors) == 0 {
		r.Success("query is valid")
		return
	}

	counts := map[validate.Severity]int{}
	for _, d := range res.Errors {
		counts[d.Severity]++
		style := severityStyle(styles, d.Severity)
		r.Printf("%d:%d %s %s %s\n",
			d.StartLine, d.StartColumn,
			style.Render(d.Severity.String()),
			styles.Muted.Render(d.Code),
			d.Message,
		)
	}

	r.Println()
	parts := make([]string, 0, 4)
	for _, sev := range []validate.Severity{
		validate.SeverityError,
		validate.SeverityWarning,
		validate.SeverityInfo,
		validate.SeverityHint,
	} {
		if counts[sev] > 0 {
			parts = append(parts, fmt.Sprintf("%d %s(s)", counts[sev], sev))
		}
	}
	if res.IsValid {
		r.Success("query is valid (" + strings.Join(parts, ", ") + ")")
	} else {
		r.Println(styles.Error.Render("query is invalid") + " (" + strings.Join(parts, ", ") + ")")
	}
}
