package ui

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/piecebook/internal/locale"
	"github.com/five82/piecebook/internal/pieces"
	"github.com/five82/piecebook/internal/prefs"
	"github.com/five82/piecebook/internal/state"
)

// Options configures the UI.
type Options struct {
	Context   context.Context
	Catalog   pieces.Catalog
	Locale    locale.Locale
	ThemeName string
	PrefsPath string
	Now       func() time.Time
	Logger    *slog.Logger
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	catalog   pieces.Catalog
	prefsPath string
	now       func() time.Time
	logger    *slog.Logger
	keys      keyMap

	// UI state
	theme  Theme
	locale locale.Locale
	width  int
	height int
	ready  bool

	// Navigation and filters
	nav state.Nav

	list   listState
	detail detailState
	form   formState

	detailViewport viewport.Model

	// Overlays
	showHelp bool
	modal    Modal
}

// New creates the root model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = prefs.Defaults().Theme
	}

	now := opts.Now
	if now == nil {
		now = time.Now
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(discardHandler{})
	}

	return Model{
		ctx:       ctx,
		catalog:   opts.Catalog,
		prefsPath: opts.PrefsPath,
		now:       now,
		logger:    logger,
		keys:      DefaultKeyMap(),
		theme:     GetTheme(themeName),
		locale:    opts.Locale,
		list:      listState{loading: true},
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return m.fetchListCmd(m.nav.Query())
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.detailViewport = viewport.New(0, 0)
		}
		m.ready = true
		m.syncDetailViewport()
		m.resizeFormInputs()
		return m, nil

	case listLoadedMsg:
		m.applyList(msg)
		return m, nil

	case detailLoadedMsg:
		m.applyDetail(msg)
		return m, nil

	case deleteDoneMsg:
		m.applyDelete(msg)
		return m, nil

	case saveDoneMsg:
		return m.applySave(msg)

	case yearFilterMsg:
		next, err := m.nav.ApplyYearFilter(msg.start, msg.end)
		if err != nil {
			m.modal = m.alert("app.filter.yearValidation")
			return m, nil
		}
		return m.transition(next)
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return m.locale.T("list.loading")
	}

	if m.showHelp {
		return m.renderHelp()
	}

	if m.modal != nil {
		return m.modal.View(m.theme, m.width, m.height)
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")
	b.WriteString(m.renderContent())
	return b.String()
}

// renderContent renders the active screen.
func (m Model) renderContent() string {
	height := m.height - chromeHeight
	switch m.nav.Screen() {
	case state.ScreenEditing:
		return m.renderForm(height)
	case state.ScreenViewing:
		return m.renderDetail(height)
	default:
		return m.renderList(height)
	}
}

// handleKey routes keyboard input: overlays first, then the form, then
// global keys, then the visible screen.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	if m.modal != nil {
		next, cmd, done := m.modal.Update(msg, m.keys)
		if done {
			m.modal = nil
		} else {
			m.modal = next
		}
		return m, cmd
	}

	if m.nav.Screen() == state.ScreenEditing {
		return m.handleFormKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.savePrefs()
		m.syncDetailViewport()
		return m, nil

	case key.Matches(msg, m.keys.CycleLocale):
		m.locale = m.locale.Next()
		m.syncDetailViewport()
		return m, nil
	}

	if m.nav.Screen() == state.ScreenViewing {
		return m.handleDetailKey(msg)
	}
	return m.handleListKey(msg)
}

// transition moves to next and issues whatever fetch the new state needs.
// The list reloads when it becomes visible again or when its query or
// refresh counter changed. The detail loads when the selection changed.
func (m Model) transition(next state.Nav) (Model, tea.Cmd) {
	prev := m.nav
	m.nav = next

	var cmds []tea.Cmd
	switch next.Screen() {
	case state.ScreenListing:
		if prev.Screen() != state.ScreenListing ||
			prev.Query() != next.Query() ||
			prev.Refresh != next.Refresh {
			m.list.loading = true
			cmds = append(cmds, m.fetchListCmd(next.Query()))
		}
	case state.ScreenViewing:
		if prev.SelectedID != next.SelectedID {
			m.detail = detailState{id: next.SelectedID, loading: true}
			m.syncDetailViewport()
			cmds = append(cmds, m.fetchDetailCmd(next.SelectedID))
		}
	case state.ScreenEditing:
		if !prev.FormOpen {
			m.openForm(next.EditTarget)
		}
	}
	return m, tea.Batch(cmds...)
}

// savePrefs persists the theme choice. Failures are logged, not shown.
func (m Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	if err := prefs.Save(m.prefsPath, prefs.Prefs{Theme: m.theme.Name}); err != nil {
		m.logger.Warn("save preferences", slog.String("path", m.prefsPath), slog.Any("error", err))
	}
}

// alert builds an alert modal for a message key.
func (m Model) alert(messageKey string) Modal {
	return alertModal{
		message: m.locale.T(messageKey),
		hint:    m.hintLine(m.keys.Dismiss),
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	programOpts := []tea.ProgramOption{tea.WithAltScreen()}
	if opts.Context != nil {
		programOpts = append(programOpts, tea.WithContext(opts.Context))
	}
	p := tea.NewProgram(m, programOpts...)
	if _, err := p.Run(); err != nil {
		// Cancelling the context kills the program; that is a normal exit.
		if errors.Is(err, tea.ErrProgramKilled) && opts.Context != nil && opts.Context.Err() != nil {
			return nil
		}
		return err
	}
	return nil
}
