package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"github.com/five82/piecebook/internal/state"
)

// renderHeader renders the status bar: app name, filter badge, piece count,
// and the active language.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	sep := bg.Spaces(2)
	compact := m.width < LayoutCompactWidth

	parts := []string{
		bg.Render("piecebook", styles.Title),
	}

	status := m.nav.FilterStatus()
	parts = append(parts, styles.StatusStyle(string(status)).Render(m.locale.T("app.filter."+string(status))))

	switch {
	case m.list.loading:
		parts = append(parts, bg.Render(m.locale.T("list.loading"), styles.WarningText))
	case m.list.failed:
		parts = append(parts, bg.Render(m.locale.T("list.error"), styles.DangerText))
	default:
		parts = append(parts, bg.Render("#", styles.MutedText)+bg.Render(strconv.Itoa(len(m.list.pieces)), styles.Text))
	}

	if !compact && m.nav.Screen() == state.ScreenListing {
		parts = append(parts, bg.Render(m.filterStatusText(), styles.MutedText))
	}

	parts = append(parts, bg.Render(m.locale.Name(), styles.InfoText))

	return styles.Header.Width(m.width).Render(bg.Join(parts, sep))
}

// renderCommandBar renders the key hints for the visible screen.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	colon := bg.Sep(":")
	sep := bg.Spaces(2)

	var bindings []key.Binding
	switch m.nav.Screen() {
	case state.ScreenEditing:
		bindings = []key.Binding{m.keys.Next, m.keys.Toggle, m.keys.Submit, m.keys.Cancel}
	case state.ScreenViewing:
		bindings = []key.Binding{m.keys.Back, m.keys.Up, m.keys.CycleLocale, m.keys.Help, m.keys.Quit}
	default:
		bindings = []key.Binding{
			m.keys.Up, m.keys.Open, m.keys.Add, m.keys.Edit, m.keys.Delete,
			m.keys.ToggleAlive, m.keys.YearFilter, m.keys.Reset,
			m.keys.CycleLocale, m.keys.Help, m.keys.Quit,
		}
	}

	segments := make([]string, 0, len(bindings)+1)
	for _, b := range bindings {
		h := b.Help()
		segments = append(segments,
			bg.Render(h.Key, styles.AccentText)+colon+bg.Render(m.locale.T(h.Desc), styles.MutedText))
	}

	segments = append(segments,
		bg.Render("T", styles.AccentText)+colon+bg.Render(m.theme.Name, styles.FaintText))

	return styles.Header.Width(m.width).Render(strings.Join(segments, sep))
}

// hintLine renders bindings as a plain "key desc" line for dialogs.
func (m Model) hintLine(bindings ...key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, h.Key+" "+m.locale.T(h.Desc))
	}
	return strings.Join(parts, "  ")
}
