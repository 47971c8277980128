package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/soclabs/socql/internal/cli/output"
	"github.com/soclabs/socql/pkg/schema"
)

// NewSchemaCommand creates the schema command group.
func NewSchemaCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Inspect and manage the schema registry",
	}
	cmd.AddCommand(
		newSchemaListCommand(),
		newSchemaExportCommand(),
		newSchemaImportCommand(),
	)
	return cmd
}

func newSchemaListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List fields, functions, operators, and pipe commands",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			reg := GetRegistry(cmd)
			r := GetRenderer(cmd)

			if r.EffectiveMode() == output.ModeJSON {
				return r.JSON(reg.Export())
			}

			styles := r.Styles()

			r.Println(styles.Header.Render("Fields"))
			rows := make([][]string, 0)
			for _, f := range reg.Fields() {
				rows = append(rows, []string{f.Name, f.Type, f.Category, strings.Join(f.AllowedOperators, " ")})
			}
			r.Table([]string{"NAME", "TYPE", "CATEGORY", "OPERATORS"}, rows)

			r.Println()
			r.Println(styles.Header.Render("Functions"))
			rows = rows[:0]
			for _, fn := range reg.Functions() {
				rows = append(rows, []string{fn.Name, fn.Category, fn.ReturnType})
			}
			r.Table([]string{"NAME", "CATEGORY", "RETURNS"}, rows)

			r.Println()
			r.Println(styles.Header.Render("Pipe commands"))
			rows = rows[:0]
			for _, pc := range reg.PipeCommands() {
				rows = append(rows, []string{pc.Name, pc.Description})
			}
			r.Table([]string{"NAME", "DESCRIPTION"}, rows)

			return nil
		},
	}
}

func newSchemaExportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "export [file]",
		Short: "Export the schema as YAML",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg := GetRegistry(cmd)

			if len(args) == 1 {
				if err := schema.SaveSnapshotFile(args[0], reg.Export()); err != nil {
					return fmt.Errorf("failed to write schema: %w", err)
				}
				GetRenderer(cmd).Success("schema written to " + args[0])
				return nil
			}

			data, err := schema.MarshalSnapshot(reg.Export())
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

func newSchemaImportCommand() *cobra.Command {
	var replace bool

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import a schema file and print the merged result",
		Long: `Import a YAML schema file into the registry and print the resulting
schema. By default the file merges over the current schema; with
--replace it becomes the entire schema.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read schema file: %w", err)
			}
			snap, err := schema.ParseSnapshot(data)
			if err != nil {
				return fmt.Errorf("failed to parse %s: %w", args[0], err)
			}

			reg := GetRegistry(cmd)
			if replace {
				reg.Replace(snap)
			} else {
				reg.Import(snap)
			}

			r := GetRenderer(cmd)
			if r.EffectiveMode() == output.ModeJSON {
				return r.JSON(reg.Export())
			}
			out, err := schema.MarshalSnapshot(reg.Export())
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}

	cmd.Flags().BoolVar(&replace, "replace", false, "replace the schema instead of merging")
	return cmd
}
