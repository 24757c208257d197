package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/TWRT/task-king/internal/app"
	"github.com/TWRT/task-king/internal/models"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252"))
	mutedStyle   = lipgloss.NewStyle().Faint(true)
	helpStyle    = lipgloss.NewStyle().Faint(true)
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	noticeDetailStyle = lipgloss.NewStyle().Faint(true)

	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	doneStyle     = lipgloss.NewStyle().Faint(true).Strikethrough(true)

	formPanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8")).
			Padding(0, 1)
	listPanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("42")).
			Padding(0, 1)
	focusedBorder = lipgloss.Color("12")

	boxChecked   = "☑"
	boxUnchecked = "☐"
)

var priorityColors = map[models.Priority]lipgloss.Color{
	models.PriorityHigh:   lipgloss.Color("#F56565"),
	models.PriorityMedium: lipgloss.Color("#ED8936"),
	models.PriorityLow:    lipgloss.Color("#48BB78"),
}

func priorityColor(p models.Priority) lipgloss.Color {
	if c, ok := priorityColors[p]; ok {
		return c
	}
	return lipgloss.Color("245")
}

func priorityStyle(p models.Priority) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(priorityColor(p)).Bold(true)
}

var noticeColors = map[app.Severity]lipgloss.Color{
	app.SeveritySuccess: lipgloss.Color("42"),
	app.SeverityWarning: lipgloss.Color("214"),
	app.SeverityError:   lipgloss.Color("9"),
	app.SeverityInfo:    lipgloss.Color("12"),
}

var noticeIcons = map[app.Severity]string{
	app.SeveritySuccess: "✔",
	app.SeverityWarning: "!",
	app.SeverityError:   "✖",
	app.SeverityInfo:    "i",
}

func noticeStyle(sev app.Severity) lipgloss.Style {
	c, ok := noticeColors[sev]
	if !ok {
		c = noticeColors[app.SeverityInfo]
	}
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("0")).
		Background(c).
		Padding(0, 1)
}
