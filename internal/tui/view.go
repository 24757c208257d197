package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/TWRT/task-king/internal/models"
)

const appName = "Task King"

func (m *Model) View() string {
	formWidth := max(m.width*2/5-2, 30)
	listWidth := max(m.width-formWidth-6, 30)
	m.title.Width = formWidth - 4
	m.description.SetWidth(formWidth - 4)

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		m.panel(formPanelStyle, m.focus != focusList, formWidth).Render(m.formView()),
		" ",
		m.panel(listPanelStyle, m.focus == focusList, listWidth).Render(m.listView(listWidth-4)),
	)

	sections := []string{}
	if n := m.state.Notice; n != nil {
		text := noticeIcons[n.Severity] + " " + n.Message
		if n.Err != nil {
			text += " " + noticeDetailStyle.Render("("+n.Err.Error()+")")
		}
		sections = append(sections, noticeStyle(n.Severity).Width(max(m.width-2, 10)).Render(text))
	}
	sections = append(sections, body, helpStyle.Render(m.help.View(m.keys)))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *Model) panel(base lipgloss.Style, focused bool, width int) lipgloss.Style {
	s := base.Width(width)
	if focused {
		s = s.BorderForeground(focusedBorder)
	}
	return s
}

func (m *Model) formView() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(appName) + "\n\n")
	b.WriteString(headingStyle.Render("Add New Task") + "\n\n")

	b.WriteString(m.fieldLabel("Title", focusTitle) + "\n")
	b.WriteString(m.title.View() + "\n\n")
	b.WriteString(m.fieldLabel("Description", focusDescription) + "\n")
	b.WriteString(m.description.View() + "\n\n")

	b.WriteString(m.fieldLabel("Priority", focusPriority) + "\n")
	levels := make([]string, 0, len(models.Priorities))
	for _, p := range models.Priorities {
		if p == m.state.Form.Priority {
			levels = append(levels, lipgloss.NewStyle().
				Background(priorityColor(p)).
				Foreground(lipgloss.Color("0")).
				Bold(true).
				Padding(0, 1).
				Render(string(p)))
		} else {
			levels = append(levels, lipgloss.NewStyle().
				Foreground(priorityColor(p)).
				Padding(0, 1).
				Render(string(p)))
		}
	}
	b.WriteString(strings.Join(levels, " ") + "\n\n")
	b.WriteString(mutedStyle.Render("enter / ctrl+s: Create Task"))
	return b.String()
}

func (m *Model) fieldLabel(label string, f focusArea) string {
	if m.focus == f {
		return selectedStyle.Render("> " + label)
	}
	return labelStyle.Render("  " + label)
}

func (m *Model) listView(width int) string {
	var b strings.Builder
	b.WriteString(headingStyle.Render(fmt.Sprintf("Task List (%d Pending)", m.state.PendingCount())) + "\n\n")

	sorted := m.state.Sorted()
	if len(sorted) == 0 {
		if m.state.Loaded {
			b.WriteString(mutedStyle.Render("No tasks found. Start adding one!"))
		} else {
			b.WriteString(mutedStyle.Render("Loading tasks..."))
		}
		return b.String()
	}

	for i, t := range sorted {
		b.WriteString(m.taskView(t, i == m.cursor && m.focus == focusList, width))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m *Model) taskView(t models.Task, selected bool, width int) string {
	title := titleStyle.Render(t.Title)
	box, status := boxUnchecked, "Mark as done"
	if t.Completed {
		title = doneStyle.Render(t.Title)
		box, status = boxChecked, "Done"
	}

	prefix := "  "
	if selected {
		prefix = selectedStyle.Render("> ")
	}

	lines := []string{
		prefix + title,
		"  " + labelStyle.Render("Priority: ") + priorityStyle(t.Priority).Render(string(t.Priority)) +
			"   " + box + " " + status,
		"  " + labelStyle.Render("Description: ") + t.Description,
	}

	card := lipgloss.NewStyle().
		Border(lipgloss.ThickBorder(), false, false, false, true).
		BorderForeground(priorityColor(t.Priority)).
		Width(max(width-2, 10))
	if t.Completed {
		card = card.Faint(true)
	}
	return card.Render(strings.Join(lines, "\n"))
}
