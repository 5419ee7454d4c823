package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/piecebook/internal/pieces"
)

// detailState holds the piece shown on the detail screen.
type detailState struct {
	id       string
	piece    *pieces.Piece
	loading  bool
	failed   bool
	notFound bool
}

type detailLoadedMsg struct {
	id     string
	result pieces.Result[pieces.PieceOne]
}

func (m Model) fetchDetailCmd(id string) tea.Cmd {
	ctx, catalog := m.ctx, m.catalog
	return func() tea.Msg {
		return detailLoadedMsg{id: id, result: catalog.PieceByID(ctx, id)}
	}
}

// applyDetail stores a detail response. Responses for any id other than the
// current selection are dropped.
func (m *Model) applyDetail(msg detailLoadedMsg) {
	if msg.id != m.nav.SelectedID {
		return
	}
	m.detail = detailState{id: msg.id}
	switch {
	case msg.result.OK() && msg.result.Value.Piece != nil:
		p := *msg.result.Value.Piece
		m.detail.piece = &p
	case msg.result.OK(), msg.result.Failure == pieces.FailureNotFound:
		m.detail.notFound = true
	default:
		m.detail.failed = true
	}
	m.syncDetailViewport()
}

// handleDetailKey processes keyboard input for the detail screen.
func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Back) {
		return m.transition(m.nav.Back())
	}

	var cmd tea.Cmd
	m.detailViewport, cmd = m.detailViewport.Update(msg)
	return m, cmd
}

// syncDetailViewport re-renders the detail body into the viewport. Called on
// load, resize, and locale or theme changes.
func (m *Model) syncDetailViewport() {
	if !m.ready {
		return
	}
	m.detailViewport.Width = max(m.width-2, 0)
	m.detailViewport.Height = max(m.height-chromeHeight-2, 0)
	m.detailViewport.Style = lipgloss.NewStyle().Background(lipgloss.Color(m.theme.FocusBg))
	m.detailViewport.SetContent(m.renderDetailContent())
}

// renderDetailContent renders the body for the current detail state.
func (m Model) renderDetailContent() string {
	styles := m.theme.Styles().WithBackground(m.theme.FocusBg)

	switch {
	case m.detail.loading:
		return styles.MutedText.Render(m.locale.T("piece.loading"))
	case m.detail.failed:
		return styles.DangerText.Render(m.locale.T("piece.error"))
	case m.detail.notFound || m.detail.piece == nil:
		return styles.WarningText.Render(m.locale.T("piece.notFound"))
	}

	p := m.detail.piece
	labelWidth := 20

	row := func(label, value string) string {
		return styles.MutedText.Render(padRight(label, labelWidth)) + styles.Text.Render(value)
	}

	status := "deceased"
	statusKey := "piece.deceased"
	if p.CompositorIsAlive {
		status = "alive"
		statusKey = "piece.alive"
	}

	var b strings.Builder
	b.WriteString(styles.Title.Render(p.PieceName))
	b.WriteString("\n\n")
	b.WriteString(row(m.locale.T("piece.composer"), p.CompositorName))
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render(padRight("", labelWidth)))
	b.WriteString(styles.StatusStyle(status).Render(m.locale.T(statusKey)))
	b.WriteString("\n")
	b.WriteString(row(m.locale.T("piece.duration"), m.locale.T("piece.minutes", m.locale.Number(p.DurationMinutes))))
	b.WriteString("\n")
	b.WriteString(row(m.locale.T("piece.releaseDate"), m.locale.FormatDate(p.DateOfRelease)))
	b.WriteString("\n")
	b.WriteString(row(m.locale.T("piece.difficulty"), m.locale.T("piece.difficultyLevel", p.DifficultyLevel)))
	b.WriteString("\n\n")

	b.WriteString(styles.AccentText.Bold(true).Render(m.locale.T("piece.instruments")))
	b.WriteString("\n")
	for _, item := range p.Instruments {
		b.WriteString(styles.Text.Render("  • " + item))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(styles.AccentText.Bold(true).Render(m.locale.T("piece.styles")))
	b.WriteString("\n")
	for _, item := range p.Styles {
		b.WriteString(styles.Text.Render("  • " + item))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(row(m.locale.T("piece.image"), p.CompositorImageURL))
	return b.String()
}

// renderDetail renders the detail screen.
func (m Model) renderDetail(height int) string {
	var title string
	switch {
	case m.detail.piece != nil:
		title = m.detail.piece.PieceName
	case m.detail.failed:
		title = m.locale.T("piece.error")
	case m.detail.notFound:
		title = m.locale.T("piece.notFound")
	default:
		title = m.locale.T("piece.loading")
	}
	return m.renderTitledBox(title, m.detailViewport.View(), m.width, height)
}
