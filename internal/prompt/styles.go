package prompt

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color definitions
var (
	PrimaryColor   = lipgloss.Color("#7D56F4")
	SecondaryColor = lipgloss.Color("#04B575")
	DangerColor    = lipgloss.Color("#F25D94")

	LightGray = lipgloss.Color("#D9D9D9")
	Gray      = lipgloss.Color("#8B8B8B")
	DarkGray  = lipgloss.Color("#383838")
)

var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Bold(true).
			Padding(1, 2)

	BorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Gray).
			Padding(1)

	LabelStyle = lipgloss.NewStyle().
			Foreground(LightGray).
			Width(14)

	FieldStyle = lipgloss.NewStyle().
			Foreground(LightGray).
			Padding(0, 1)

	FocusedFieldStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#FAFAFA")).
				Background(PrimaryColor).
				Bold(true).
				Padding(0, 1)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(DangerColor).
			Bold(true)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(SecondaryColor).
			Bold(true)

	HelpStyle = lipgloss.NewStyle().
			Foreground(Gray).
			Italic(true).
			Padding(1, 0, 0, 0)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(DarkGray).
			Padding(0, 1)
)

// Row is one label/value line of a summary box.
type Row struct {
	Label string
	Value interface{}
}

// RenderSummary draws a titled box of label/value rows.
func RenderSummary(title string, rows []Row) string {
	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		lines = append(lines, LabelStyle.Render(r.Label)+FieldStyle.Render(fmt.Sprint(r.Value)))
	}
	body := SuccessStyle.Render(title) + "\n\n" + strings.Join(lines, "\n")
	return BorderStyle.Render(body)
}
