package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

var (
	TitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("5"))
	DimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	ErrorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	HeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("5"))
)

// DisableColor renders every style as plain text.
func DisableColor() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

// Diagnostic formats the line printed when a session ends on an error. It
// carries no line terminator.
func Diagnostic(err error) string {
	return ErrorStyle.Render("rawsh: " + err.Error())
}
