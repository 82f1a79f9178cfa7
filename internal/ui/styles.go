package ui

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Themes accepted by the theme config key.
const (
	ThemeAuto = "auto"
	ThemeNone = "none"
)

var (
	colorRed    = lipgloss.Color("196")
	colorGreen  = lipgloss.Color("42")
	colorYellow = lipgloss.Color("220")
	colorCyan   = lipgloss.Color("81")
	colorGray   = lipgloss.Color("245")
	colorBorder = lipgloss.Color("62")
)

// Styles holds the rendering styles for one output stream.
type Styles struct {
	plain bool

	Title    lipgloss.Style
	Error    lipgloss.Style
	Solution lipgloss.Style
	Success  lipgloss.Style
	Warning  lipgloss.Style
	Dim      lipgloss.Style
	Box      lipgloss.Style
}

// NewStyles builds styles bound to w. When plain is set no colour or border
// is ever emitted.
func NewStyles(w io.Writer, plain bool) Styles {
	if plain {
		return Styles{plain: true}
	}
	r := lipgloss.NewRenderer(w)
	return Styles{
		Title:    r.NewStyle().Bold(true).Foreground(colorCyan),
		Error:    r.NewStyle().Bold(true).Foreground(colorRed),
		Solution: r.NewStyle().Foreground(colorCyan),
		Success:  r.NewStyle().Foreground(colorGreen),
		Warning:  r.NewStyle().Foreground(colorYellow),
		Dim:      r.NewStyle().Foreground(colorGray),
		Box: r.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1),
	}
}

// Plain reports whether the styles render plain text.
func (s Styles) Plain() bool { return s.plain }

func (s Styles) render(st lipgloss.Style, text string) string {
	if s.plain {
		return text
	}
	return st.Render(text)
}

// Note renders body under title, boxed when styled.
func (s Styles) Note(title, body string) string {
	body = strings.TrimRight(body, "\n")
	if s.plain {
		return "[" + title + "]\n" + body + "\n"
	}
	return s.Title.Render(title) + "\n" + s.Box.Render(body) + "\n"
}

// UsePlain decides whether theme renders plain text on f.
func UsePlain(theme string, f *os.File) bool {
	switch theme {
	case ThemeNone:
		return true
	default:
		if os.Getenv("NO_COLOR") != "" {
			return true
		}
		return !IsTerminal(f)
	}
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return f != nil && term.IsTerminal(int(f.Fd()))
}
