package cli

import (
	"github.com/spf13/cobra"

	"github.com/soclabs/socql/internal/cli/output"
	"github.com/soclabs/socql/pkg/analyzer"
	"github.com/soclabs/socql/pkg/complete"
)

// NewContextCommand creates the context command.
func NewContextCommand() *cobra.Command {
	var offset int
	var suggest bool

	cmd := &cobra.Command{
		Use:   "context [text]",
		Short: "Analyze the cursor context of a partial query",
		Long: `Analyze a partial SOCQL query at a cursor position and report the
current clause, the expected completion type, and related context. The
cursor defaults to the end of the text.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readQuery(cmd, args)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("offset") {
				offset = len(text)
			}

			reg := GetRegistry(cmd)
			ctx := analyzer.Analyze(text, offset, reg)

			var suggestions []complete.Suggestion
			if suggest {
				suggestions = complete.Build(ctx, reg)
			}

			r := GetRenderer(cmd)
			if r.EffectiveMode() == output.ModeJSON {
				return r.JSON(struct {
					Context     analyzer.CursorContext `json:"context"`
					Suggestions []complete.Suggestion  `json:"suggestions,omitempty"`
				}{ctx, suggestions})
			}

			renderContext(r, ctx)
			if suggest {
				r.Println()
				renderSuggestions(r, suggestions)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&offset, "offset", -1, "cursor byte offset (default: end of text)")
	cmd.Flags().BoolVar(&suggest, "suggest", false, "also print completion suggestions")
	return cmd
}

// NewCompleteCommand creates the complete command.
func NewCompleteCommand() *cobra.Command {
	var offset int

	cmd := &cobra.Command{
		Use:   "complete [text]",
		Short: "Suggest completions for a partial query",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readQuery(cmd, args)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("offset") {
				offset = len(text)
			}

			reg := GetRegistry(cmd)
			suggestions := complete.Build(analyzer.Analyze(text, offset, reg), reg)

			r := GetRenderer(cmd)
			if r.EffectiveMode() == output.ModeJSON {
				return r.JSON(suggestions)
			}
			renderSuggestions(r, suggestions)
			return nil
		},
	}

	cmd.Flags().IntVar(&offset, "offset", -1, "cursor byte offset (default: end of text)")
	return cmd
}

func renderContext(r *output.Renderer, ctx analyzer.CursorContext) {
	styles := r.Styles()
	r.Println(styles.Bold.Render("Clause:"), string(ctx.CurrentClause))
	r.Println(styles.Bold.Render("Expected:"), string(ctx.ExpectedType))
	if ctx.WordAtCursor != "" {
		r.Println(styles.Bold.Render("Word at cursor:"), ctx.WordAtCursor)
	}
	if ctx.ParentField != "" {
		r.Println(styles.Bold.Render("Parent field:"), ctx.ParentField)
	}
	r.Println(styles.Bold.Render("After pipe:"), ctx.IsAfterPipe)
	r.Println(styles.Bold.Render("After operator:"), ctx.IsAfterOperator)
}

func renderSuggestions(r *output.Renderer, suggestions []complete.Suggestion) {
	if len(suggestions) == 0 {
		r.Println(r.Styles().Muted.Render("no suggestions"))
		return
	}
	rows := make([][]string, 0, len(suggestions))
	for _, s := range suggestions {
		rows = append(rows, []string{s.Label, s.Kind, s.Detail})
	}
	r.Table([]string{"LABEL", "KIND", "DETAIL"}, rows)
}
