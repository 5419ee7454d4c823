package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Modal is a dialog drawn over the current screen. Update returns the next
// modal, a command, and whether the modal should close.
type Modal interface {
	Update(msg tea.KeyMsg, keys keyMap) (Modal, tea.Cmd, bool)
	View(theme Theme, width, height int) string
}

// renderModal centers a bordered dialog.
func renderModal(theme Theme, width, height int, borderColor, content string) string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(borderColor)).
		Padding(1, 2).
		Width(modalWidth).
		Render(content)

	return lipgloss.Place(
		width,
		height,
		lipgloss.Center,
		lipgloss.Center,
		box,
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(theme.Background)),
	)
}

// confirmModal asks a yes/no question and runs onConfirm on yes.
type confirmModal struct {
	message   string
	hint      string
	onConfirm tea.Cmd
}

func (c confirmModal) Update(msg tea.KeyMsg, keys keyMap) (Modal, tea.Cmd, bool) {
	switch {
	case key.Matches(msg, keys.Confirm):
		return c, c.onConfirm, true
	case key.Matches(msg, keys.Decline):
		return c, nil, true
	}
	return c, nil, false
}

func (c confirmModal) View(theme Theme, width, height int) string {
	styles := theme.Styles()
	content := styles.Text.Render(c.message) + "\n\n" + styles.FaintText.Render(c.hint)
	return renderModal(theme, width, height, theme.Warning, content)
}

// alertModal shows a message until dismissed.
type alertModal struct {
	message string
	hint    string
}

func (a alertModal) Update(msg tea.KeyMsg, keys keyMap) (Modal, tea.Cmd, bool) {
	if key.Matches(msg, keys.Dismiss) {
		return a, nil, true
	}
	return a, nil, false
}

func (a alertModal) View(theme Theme, width, height int) string {
	styles := theme.Styles()
	content := styles.DangerText.Render(a.message) + "\n\n" + styles.FaintText.Render(a.hint)
	return renderModal(theme, width, height, theme.Danger, content)
}

// yearFilterMsg carries the bounds entered in the year filter dialog.
type yearFilterMsg struct {
	start string
	end   string
}

// yearModal edits the release-year range.
type yearModal struct {
	title    string
	to       string
	hint     string
	inputs   [2]textinput.Model
	focusIdx int
}

func newYearModal(title, to, placeholder, hint, start, end string) yearModal {
	y := yearModal{title: title, to: to, hint: hint}
	for i, value := range []string{start, end} {
		input := textinput.New()
		input.Placeholder = placeholder
		input.CharLimit = 6
		input.Width = 8
		input.Prompt = ""
		input.Cursor.SetMode(cursor.CursorStatic)
		input.SetValue(value)
		y.inputs[i] = input
	}
	// Focus returns a blink command; the static cursor never needs it.
	_ = y.inputs[0].Focus()
	return y
}

func (y yearModal) Update(msg tea.KeyMsg, keys keyMap) (Modal, tea.Cmd, bool) {
	switch {
	case key.Matches(msg, keys.Cancel):
		return y, nil, true

	case key.Matches(msg, keys.Submit):
		start := y.inputs[0].Value()
		end := y.inputs[1].Value()
		return y, func() tea.Msg { return yearFilterMsg{start: start, end: end} }, true

	case key.Matches(msg, keys.Next), key.Matches(msg, keys.Prev):
		y.inputs[y.focusIdx].Blur()
		y.focusIdx = (y.focusIdx + 1) % len(y.inputs)
		_ = y.inputs[y.focusIdx].Focus()
		return y, nil, false
	}

	var cmd tea.Cmd
	y.inputs[y.focusIdx], cmd = y.inputs[y.focusIdx].Update(msg)
	return y, cmd, false
}

func (y yearModal) View(theme Theme, width, height int) string {
	styles := theme.Styles()

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render(y.title))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", 40)))
	b.WriteString("\n\n")

	for i, input := range y.inputs {
		field := "[" + lipgloss.NewStyle().Width(input.Width+1).Render(input.View()) + "]"
		if i == y.focusIdx {
			b.WriteString(styles.AccentText.Render(field))
		} else {
			b.WriteString(styles.MutedText.Render(field))
		}
		if i == 0 {
			b.WriteString("  " + styles.Text.Render(y.to) + "  ")
		}
	}
	b.WriteString("\n\n")
	b.WriteString(styles.FaintText.Render(y.hint))

	return renderModal(theme, width, height, theme.Accent, b.String())
}
