package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/soclabs/socql/internal/cli/output"
	"github.com/soclabs/socql/pkg/lexer"
	"github.com/soclabs/socql/pkg/normalize"
	"github.com/soclabs/socql/pkg/token"
)

type tokenJSON struct {
	Type   string `json:"type"`
	Value  string `json:"value"`
	Start  int    `json:"start"`
	End    int    `json:"end"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
}

type lexErrorJSON struct {
	Message string `json:"message"`
	Line    int    `json:"line"`
	Column  int    `json:"column"`
	Start   int    `json:"start"`
	End     int    `json:"end"`
}

// NewTokenizeCommand creates the tokenize command.
func NewTokenizeCommand() *cobra.Command {
	var applyNormalize bool

	cmd := &cobra.Command{
		Use:   "tokenize [query]",
		Short: "Tokenize a SOCQL query",
		Long: `Tokenize a SOCQL query and print the token stream. With --normalize
the stream includes the zero-width AND tokens inserted between
juxtaposed conditions.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query, err := readQuery(cmd, args)
			if err != nil {
				return err
			}

			res := lexer.Tokenize(query)
			tokens := res.Tokens
			if applyNormalize {
				tokens = normalize.Normalize(tokens)
			}

			r := GetRenderer(cmd)
			if r.EffectiveMode() == output.ModeJSON {
				out := struct {
					Tokens []tokenJSON    `json:"tokens"`
					Errors []lexErrorJSON `json:"errors"`
				}{
					Tokens: make([]tokenJSON, 0, len(tokens)),
					Errors: make([]lexErrorJSON, 0, len(res.Errors)),
				}
				for _, t := range tokens {
					out.Tokens = append(out.Tokens, tokenJSON{
						Type: t.Type.String(), Value: t.Value,
						Start: t.Start, End: t.End,
						Line: t.Line, Column: t.Column,
					})
				}
				for _, e := range res.Errors {
					out.Errors = append(out.Errors, lexErrorJSON{
						Message: e.Message,
						Line:    e.Line, Column: e.Column,
						Start: e.Start, End: e.End,
					})
				}
				return r.JSON(out)
			}

			renderTokenTable(r, tokens)
			if len(res.Errors) > 0 {
				r.Println()
				for _, e := range res.Errors {
					r.Errorf("%d:%d %s", e.Line, e.Column, e.Message)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&applyNormalize, "normalize", false, "insert implicit AND tokens")
	return cmd
}

func renderTokenTable(r *output.Renderer, tokens []token.Token) {
	rows := make([][]string, 0, len(tokens))
	for _, t := range tokens {
		rows = append(rows, []string{
			t.Type.String(),
			t.Value,
			strconv.Itoa(t.Start),
			strconv.Itoa(t.End),
			strconv.Itoa(t.Line),
			strconv.Itoa(t.Column),
		})
	}
	r.Table([]string{"TYPE", "VALUE", "START", "END", "LINE", "COL"}, rows)
}
