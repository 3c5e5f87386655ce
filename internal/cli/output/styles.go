package output

import "github.com/muesli/termenv"

// Styles holds the terminal styles used by text-mode output.
type Styles struct {
	Bold    func(string) string
	Muted   func(string) string
	Success func(string) string
	Warning func(string) string
	Error   func(string) string
	Info    func(string) string
}

// newStyles builds styles for the given color profile.
// With termenv.Ascii every style is a no-op, which is what
// piped and JSON output want.
func newStyles(profile termenv.Profile) Styles {
	style := func(fn func(termenv.Style) termenv.Style) func(string) string {
		return func(s string) string {
			return fn(profile.String(s)).String()
		}
	}
	return Styles{
		Bold:    style(func(s termenv.Style) termenv.Style { return s.Bold() }),
		Muted:   style(func(s termenv.Style) termenv.Style { return s.Foreground(profile.Color("8")) }),
		Success: style(func(s termenv.Style) termenv.Style { return s.Foreground(profile.Color("2")) }),
		Warning: style(func(s termenv.Style) termenv.Style { return s.Foreground(profile.Color("3")) }),
		Error:   style(func(s termenv.Style) termenv.Style { return s.Foreground(profile.Color("1")) }),
		Info:    style(func(s termenv.Style) termenv.Style { return s.Foreground(profile.Color("6")) }),
	}
}
