package ui

import (
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/piecebook/internal/pieces"
	"github.com/five82/piecebook/internal/state"
)

// listState holds the piece list and its cursor.
type listState struct {
	pieces   []pieces.Piece
	loading  bool
	failed   bool
	selected int
}

// Messages

type listLoadedMsg struct {
	result pieces.Result[pieces.PieceList]
}

type deleteDoneMsg struct {
	id     string
	result pieces.Result[pieces.DeleteResult]
}

// Commands

// fetchListCmd issues exactly one list request for q.
func (m Model) fetchListCmd(q state.Query) tea.Cmd {
	ctx, catalog := m.ctx, m.catalog
	return func() tea.Msg {
		switch q.Kind {
		case state.QueryYears:
			return listLoadedMsg{result: catalog.PiecesBetweenYears(ctx, q.Start, q.End)}
		case state.QueryAlive:
			return listLoadedMsg{result: catalog.PiecesByAlive(ctx, q.Alive)}
		default:
			return listLoadedMsg{result: catalog.AllPieces(ctx)}
		}
	}
}

func (m Model) deleteCmd(id string) tea.Cmd {
	ctx, catalog := m.ctx, m.catalog
	return func() tea.Msg {
		return deleteDoneMsg{id: id, result: catalog.DeletePiece(ctx, id)}
	}
}

// applyList stores a list response. Responses are applied in arrival order.
func (m *Model) applyList(msg listLoadedMsg) {
	m.list.loading = false
	if !msg.result.OK() {
		m.list.failed = true
		m.list.pieces = nil
		m.list.selected = 0
		return
	}
	m.list.failed = false
	m.list.pieces = msg.result.Value.Pieces
	m.clampSelection()
}

// applyDelete removes the piece locally on success. Anything short of an
// explicit success raises the delete alert.
func (m *Model) applyDelete(msg deleteDoneMsg) {
	if !msg.result.OK() || !msg.result.Value.Success {
		m.modal = m.alert("list.deleteError")
		return
	}
	m.list.pieces = slices.DeleteFunc(m.list.pieces, func(p pieces.Piece) bool {
		return p.ID == msg.id
	})
	m.clampSelection()
}

func (m *Model) clampSelection() {
	if m.list.selected >= len(m.list.pieces) {
		m.list.selected = len(m.list.pieces) - 1
	}
	if m.list.selected < 0 {
		m.list.selected = 0
	}
}

func (m Model) selectedPiece() (pieces.Piece, bool) {
	if m.list.selected < 0 || m.list.selected >= len(m.list.pieces) {
		return pieces.Piece{}, false
	}
	return m.list.pieces[m.list.selected], true
}

// handleListKey processes keyboard input for the list screen.
func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Add):
		return m.transition(m.nav.OpenCreate())

	case key.Matches(msg, m.keys.ToggleAlive):
		return m.transition(m.nav.ToggleAlive())

	case key.Matches(msg, m.keys.YearFilter):
		m.modal = newYearModal(
			m.locale.T("app.filter.years"),
			m.locale.T("app.filter.to"),
			m.locale.T("app.filter.yearPlaceholder"),
			m.hintLine(m.keys.Next, m.keys.Submit, m.keys.Cancel),
			m.nav.YearStart,
			m.nav.YearEnd,
		)
		return m, nil

	case key.Matches(msg, m.keys.Reset):
		return m.transition(m.nav.ResetFilters())

	case key.Matches(msg, m.keys.Refresh):
		return m.transition(m.nav.Reload())
	}

	// Rows on screen belong to the previous query until the fetch lands.
	count := len(m.list.pieces)
	if count == 0 || m.list.loading {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Down):
		if m.list.selected < count-1 {
			m.list.selected++
		}
	case key.Matches(msg, m.keys.Up):
		if m.list.selected > 0 {
			m.list.selected--
		}
	case key.Matches(msg, m.keys.Top):
		m.list.selected = 0
	case key.Matches(msg, m.keys.Bottom):
		m.list.selected = count - 1

	case key.Matches(msg, m.keys.Open):
		if p, ok := m.selectedPiece(); ok {
			return m.transition(m.nav.SelectPiece(p.ID))
		}

	case key.Matches(msg, m.keys.Edit):
		if p, ok := m.selectedPiece(); ok {
			return m.transition(m.nav.OpenEdit(p))
		}

	case key.Matches(msg, m.keys.Delete):
		if p, ok := m.selectedPiece(); ok {
			m.modal = confirmModal{
				message:   m.locale.T("list.deleteConfirm", p.PieceName),
				hint:      m.hintLine(m.keys.Confirm, m.keys.Decline),
				onConfirm: m.deleteCmd(p.ID),
			}
		}
	}

	return m, nil
}

// filterStatusText renders the status line for the active filters.
func (m Model) filterStatusText() string {
	status := m.nav.FilterStatus()
	if status == state.StatusYears {
		return m.locale.T("app.filter.status.years", m.nav.YearStart, m.nav.YearEnd)
	}
	return m.locale.T("app.filter.status." + string(status))
}

// renderList renders the list screen.
func (m Model) renderList(height int) string {
	styles := m.theme.Styles().WithBackground(m.theme.FocusBg)
	innerWidth := max(m.width-2, 0)

	var lines []string
	status := m.nav.FilterStatus()
	lines = append(lines,
		styles.StatusStyle(string(status)).Render(m.locale.T("app.filter."+string(status)))+
			styles.MutedText.Render(" "+m.filterStatusText()),
		"")

	switch {
	case m.list.loading:
		lines = append(lines, styles.MutedText.Render(m.locale.T("list.loading")))
	case m.list.failed:
		lines = append(lines, styles.DangerText.Render(m.locale.T("list.error")))
	case len(m.list.pieces) == 0:
		lines = append(lines, styles.FaintText.Render(m.locale.T("list.empty")))
	default:
		rowsHeight := max(height-2-len(lines), 1)
		lines = append(lines, m.renderRows(innerWidth, rowsHeight)...)
	}

	return m.renderTitledBox(m.locale.T("app.title"), strings.Join(lines, "\n"), m.width, height)
}

// renderRows renders the visible window of rows around the selection.
func (m Model) renderRows(width, height int) []string {
	styles := m.theme.Styles().WithBackground(m.theme.FocusBg)

	start := 0
	if m.list.selected >= height {
		start = m.list.selected - height + 1
	}
	end := min(start+height, len(m.list.pieces))

	compact := m.width < LayoutCompactWidth
	wide := m.width >= LayoutWideWidth

	nameWidth := max(width/2, 12)
	composerWidth := max(width/3, 10)
	if wide {
		nameWidth = max(width*2/5, 12)
		composerWidth = max(width/4, 10)
	}

	rows := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		p := m.list.pieces[i]
		marker := "○"
		if p.CompositorIsAlive {
			marker = "●"
		}

		cols := []string{
			marker,
			padRight(truncate(p.PieceName, nameWidth), nameWidth),
		}
		if !compact {
			cols = append(cols, padRight(truncate(p.CompositorName, composerWidth), composerWidth))
		}
		cols = append(cols, strconv.Itoa(p.ReleaseYear()))
		if wide {
			cols = append(cols, m.locale.T("piece.difficultyLevel", p.DifficultyLevel))
		}
		row := padRight(strings.Join(cols, "  "), width)

		if i == m.list.selected {
			rows = append(rows, styles.Selected.Render(row))
		} else {
			rows = append(rows, styles.Text.Render(row))
		}
	}
	return rows
}
