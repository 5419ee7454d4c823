package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Terminal width thresholds for responsive layouts.
const (
	// LayoutCompactWidth is the width below which secondary columns hide.
	LayoutCompactWidth = 80

	// LayoutWideWidth is the width from which the list shows every column.
	LayoutWideWidth = 120
)

// Chrome sizes.
const (
	// chromeHeight covers the header and command bar lines.
	chromeHeight = 2

	// modalWidth is the width of confirm, alert and filter dialogs.
	modalWidth = 56

	// formLabelWidth aligns form inputs.
	formLabelWidth = 32
)

// renderTitledBox draws content inside a border with the title embedded in
// the top edge. Content is clipped or padded to fill height.
func (m Model) renderTitledBox(title, content string, width, height int) string {
	bg := NewBgStyle(m.theme.FocusBg)
	borderStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.BorderFocus))
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.theme.Text))

	innerWidth := max(width-2, 0)
	title = truncate(title, max(innerWidth-4, 1))
	titleLen := lipgloss.Width(title)
	leftPad := max((innerWidth-titleLen-2)/2, 0)
	rightPad := max(innerWidth-titleLen-2-leftPad, 0)

	top := bg.Render("┌", borderStyle) +
		bg.Render(strings.Repeat("─", leftPad), borderStyle) +
		bg.Render(" "+title+" ", titleStyle) +
		bg.Render(strings.Repeat("─", rightPad), borderStyle) +
		bg.Render("┐", borderStyle)

	bottom := bg.Render("└", borderStyle) +
		bg.Render(strings.Repeat("─", innerWidth), borderStyle) +
		bg.Render("┘", borderStyle)

	contentStyle := lipgloss.NewStyle().
		Width(innerWidth).
		MaxWidth(innerWidth).
		Background(lipgloss.Color(m.theme.FocusBg))

	lines := strings.Split(content, "\n")
	boxHeight := max(height-2, 0)
	rows := make([]string, 0, boxHeight)
	for i := 0; i < boxHeight; i++ {
		var line string
		if i < len(lines) {
			line = lines[i]
		}
		rows = append(rows,
			bg.Render("│", borderStyle)+contentStyle.Render(line)+bg.Render("│", borderStyle))
	}

	return top + "\n" + strings.Join(rows, "\n") + "\n" + bottom
}
