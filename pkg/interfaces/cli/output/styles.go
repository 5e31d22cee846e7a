package output

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const bannerWidth = 35

var (
	bannerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#39BAE6")).
			Bold(true)

	labelStyle = lipgloss.NewStyle().
			Bold(true)

	unknownStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C7680")).
			Italic(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#7FD962")).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFB454")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F07178")).
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C7680"))
)

// Styles renders terminal text, with or without color
type Styles struct {
	color bool
}

// NewStyles returns styles that emit ANSI color only when color is true
func NewStyles(color bool) Styles {
	return Styles{color: color}
}

func (s Styles) render(style lipgloss.Style, text string) string {
	if !s.color {
		return text
	}
	return style.Render(text)
}

// Banner frames title between two rule lines
func (s Styles) Banner(title string) string {
	rule := strings.Repeat("┅", bannerWidth)
	return s.render(bannerStyle, rule+"\n  "+title+"\n"+rule)
}

func (s Styles) Label(text string) string   { return s.render(labelStyle, text) }
func (s Styles) Unknown(text string) string { return s.render(unknownStyle, text) }
func (s Styles) Success(text string) string { return s.render(successStyle, text) }
func (s Styles) Warning(text string) string { return s.render(warningStyle, text) }
func (s Styles) Error(text string) string   { return s.render(errorStyle, text) }
func (s Styles) Dim(text string) string     { return s.render(dimStyle, text) }
