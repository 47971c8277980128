// Package output renders command results as styled terminal text, plain
// markdown, or JSON. The mode is auto-detected from the output stream
// unless forced by configuration.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/muesli/termenv"
)

// Mode selects the rendering style.
type Mode string

// Rendering modes.
const (
	ModeAuto     Mode = "auto"
	ModeText     Mode = "text"
	ModeMarkdown Mode = "markdown"
	ModeJSON     Mode = "json"
)

// Renderer writes command output in a single mode.
type Renderer struct {
	out       io.Writer
	errOut    io.Writer
	mode      Mode
	effective Mode
	styles    *Styles
}

// NewRenderer creates a renderer. ModeAuto resolves to text on a color
// terminal and markdown otherwise.
func NewRenderer(out, errOut io.Writer, mode Mode) *Renderer {
	effective := mode
	switch mode {
	case ModeText, ModeMarkdown, ModeJSON:
	default:
		effective = detectMode(out)
	}
	return &Renderer{
		out:       out,
		errOut:    errOut,
		mode:      mode,
		effective: effective,
		styles:    newStyles(effective == ModeText),
	}
}

// detectMode picks text for a color-capable terminal, markdown otherwise.
func detectMode(out io.Writer) Mode {
	if f, ok := out.(*os.File); ok {
		if termenv.NewOutput(f).ColorProfile() != termenv.Ascii {
			return ModeText
		}
	}
	return ModeMarkdown
}

// EffectiveMode returns the resolved rendering mode.
func (r *Renderer) EffectiveMode() Mode {
	return r.effective
}

// Styles returns the style set for the effective mode. In non-text modes
// every style renders as plain text.
func (r *Renderer) Styles() *Styles {
	return r.styles
}

// Println writes a line to the output stream.
func (r *Renderer) Println(a ...any) {
	fmt.Fprintln(r.out, a...)
}

// Printf writes formatted text to the output stream.
func (r *Renderer) Printf(format string, a ...any) {
	fmt.Fprintf(r.out, format, a...)
}

// Success writes a success line.
func (r *Renderer) Success(msg string) {
	fmt.Fprintln(r.out, r.styles.Success.Render(msg))
}

// Errorf writes a formatted error line to the error stream.
func (r *Renderer) Errorf(format string, a ...any) {
	fmt.Fprintln(r.errOut, r.styles.Error.Render(fmt.Sprintf(format, a...)))
}

// JSON writes v as indented JSON.
func (r *Renderer) JSON(v any) error {
	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Table renders a table: light box drawing in text mode, pipe tables in
// markdown mode.
func (r *Renderer) Table(header []string, rows [][]string) {
	t := table.NewWriter()
	t.SetOutputMirror(r.out)

	hr := make(table.Row, 0, len(header))
	for _, h := range header {
		hr = append(hr, h)
	}
	t.AppendHeader(hr)

	for _, row := range rows {
		tr := make(table.Row, 0, len(row))
		for _, cell := range row {
			tr = append(tr, cell)
		}
		t.AppendRow(tr)
	}

	if r.effective == ModeMarkdown {
		t.RenderMarkdown()
		return
	}
	t.SetStyle(table.StyleLight)
	t.Render()
}
