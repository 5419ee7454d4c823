package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

// renderHelp renders the help overlay.
func (m Model) renderHelp() string {
	styles := m.theme.Styles()

	sections := []helpSection{
		{
			title: "app.title",
			bindings: []key.Binding{
				m.keys.Up, m.keys.Top, m.keys.Bottom, m.keys.Open, m.keys.Add,
				m.keys.Edit, m.keys.Delete, m.keys.Refresh,
			},
		},
		{
			title:    "app.filter.status",
			bindings: []key.Binding{m.keys.ToggleAlive, m.keys.YearFilter, m.keys.Reset},
		},
		{
			title:    "form.titleAdd",
			bindings: []key.Binding{m.keys.Next, m.keys.Toggle, m.keys.Submit, m.keys.Cancel},
		},
		{
			title: "help.title",
			bindings: []key.Binding{
				m.keys.Back, m.keys.CycleTheme, m.keys.CycleLocale, m.keys.Help, m.keys.Quit,
			},
		},
	}

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render(m.locale.T("help.title")))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", 30)))
	b.WriteString("\n\n")

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.theme.Warning)).
		Width(12)

	for i, section := range sections {
		b.WriteString(styles.AccentText.Bold(true).Render(m.locale.T(section.title)))
		b.WriteString("\n")

		for _, binding := range section.bindings {
			h := binding.Help()
			b.WriteString(keyStyle.Render(h.Key))
			b.WriteString(styles.Text.Render(m.locale.T(h.Desc)))
			b.WriteString("\n")
		}

		if i < len(sections)-1 {
			b.WriteString("\n")
		}
	}

	return renderModal(m.theme, m.width, m.height, m.theme.Border, b.String())
}

type helpSection struct {
	title    string
	bindings []key.Binding
}
