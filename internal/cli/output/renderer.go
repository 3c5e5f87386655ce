// Package output renders command results as styled text, markdown
// tables, or machine-readable JSON, picking a sensible default based
// on whether stdout is a terminal.
package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/muesli/termenv"
)

// Renderer writes command output in a single render mode.
type Renderer struct {
	stdout io.Writer
	stderr io.Writer
	mode   Mode
	styles Styles
}

// NewRenderer creates a renderer for the given mode. ModeAuto (and the
// empty mode) resolves to text on a terminal and markdown otherwise.
func NewRenderer(stdout, stderr io.Writer, mode Mode) *Renderer {
	r := &Renderer{stdout: stdout, stderr: stderr, mode: mode}
	if mode == ModeAuto || mode == "" {
		if isTerminal() {
			r.mode = ModeText
		} else {
			r.mode = ModeMarkdown
		}
	}

	profile := termenv.Ascii
	if r.mode == ModeText && isTerminal() {
		profile = termenv.ColorProfile()
	}
	r.styles = newStyles(profile)

	return r
}

// EffectiveMode returns the resolved render mode (never ModeAuto).
func (r *Renderer) EffectiveMode() Mode {
	return r.mode
}

// Styles returns the terminal styles for the active mode.
func (r *Renderer) Styles() Styles {
	return r.styles
}

// Printf writes formatted text to stdout.
func (r *Renderer) Printf(format string, args ...any) {
	_, _ = fmt.Fprintf(r.stdout, format, args...)
}

// Println writes a line to stdout.
func (r *Renderer) Println(args ...any) {
	_, _ = fmt.Fprintln(r.stdout, args...)
}

// Errorf writes formatted text to stderr.
func (r *Renderer) Errorf(format string, args ...any) {
	_, _ = fmt.Fprintf(r.stderr, format, args...)
}

// Success writes a success line, styled in text mode.
func (r *Renderer) Success(msg string) {
	r.Println(r.styles.Success(msg))
}

// JSON writes v to stdout as indented JSON.
func (r *Renderer) JSON(v any) error {
	enc := json.NewEncoder(r.stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Table renders a header and rows as a table in the active mode.
// In JSON mode callers should use JSON instead; Table falls back to
// markdown there so it never silently drops data.
func (r *Renderer) Table(header []string, rows [][]string) {
	t := table.NewWriter()
	t.SetOutputMirror(r.stdout)

	headerRow := make(table.Row, len(header))
	for i, h := range header {
		headerRow[i] = h
	}
	t.AppendHeader(headerRow)

	for _, row := range rows {
		tr := make(table.Row, len(row))
		for i, cell := range row {
			tr[i] = cell
		}
		t.AppendRow(tr)
	}

	if r.mode == ModeText {
		t.SetStyle(table.StyleLight)
		t.Render()
		return
	}
	t.RenderMarkdown()
}
