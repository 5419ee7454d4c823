package ui

import (
	"context"
	"slices"
	"strconv"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/piecebook/internal/locale"
	"github.com/five82/piecebook/internal/pieces"
	"github.com/five82/piecebook/internal/pieces/piecestest"
)

var testToday = time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

// fakeCatalog serves pieces from memory and records every call.
type fakeCatalog struct {
	mu     sync.Mutex
	pieces []pieces.Piece
	calls  []string
	saved  []pieces.Piece

	listFailure   pieces.FailureKind
	oneFailure    pieces.FailureKind
	saveFailure   pieces.FailureKind
	deleteFailure pieces.FailureKind
	deleteDenied  bool
}

var _ pieces.Catalog = (*fakeCatalog)(nil)

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{pieces: piecestest.Sample()}
}

func (f *fakeCatalog) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

func (f *fakeCatalog) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeCatalog) list(keep func(pieces.Piece) bool) pieces.Result[pieces.PieceList] {
	if f.listFailure != pieces.FailureNone {
		return pieces.Result[pieces.PieceList]{Failure: f.listFailure}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	out := pieces.PieceList{Pieces: []pieces.Piece{}}
	for _, p := range f.pieces {
		if keep(p) {
			out.Pieces = append(out.Pieces, p)
		}
	}
	return pieces.Result[pieces.PieceList]{Value: &out}
}

func (f *fakeCatalog) AllPieces(ctx context.Context) pieces.Result[pieces.PieceList] {
	f.record("all")
	return f.list(func(pieces.Piece) bool { return true })
}

func (f *fakeCatalog) PieceByID(ctx context.Context, id string) pieces.Result[pieces.PieceOne] {
	f.record("one:" + id)
	if f.oneFailure != pieces.FailureNone {
		return pieces.Result[pieces.PieceOne]{Failure: f.oneFailure}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.pieces {
		if p.ID == id {
			return pieces.Result[pieces.PieceOne]{Value: &pieces.PieceOne{Piece: &p}}
		}
	}
	return pieces.Result[pieces.PieceOne]{Failure: pieces.FailureNotFound}
}

func (f *fakeCatalog) PiecesByAlive(ctx context.Context, alive bool) pieces.Result[pieces.PieceList] {
	f.record("alive:" + strconv.FormatBool(alive))
	return f.list(func(p pieces.Piece) bool { return p.CompositorIsAlive == alive })
}

func (f *fakeCatalog) PiecesBetweenYears(ctx context.Context, start, end int) pieces.Result[pieces.PieceList] {
	f.record("between:" + strconv.Itoa(start) + ":" + strconv.Itoa(end))
	return f.list(func(p pieces.Piece) bool {
		year := p.ReleaseYear()
		return year >= start && year <= end
	})
}

func (f *fakeCatalog) save(call string, piece pieces.Piece) pieces.Result[pieces.PieceOne] {
	f.record(call)
	if f.saveFailure != pieces.FailureNone {
		return pieces.Result[pieces.PieceOne]{Failure: f.saveFailure}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saved = append(f.saved, piece)
	return pieces.Result[pieces.PieceOne]{Value: &pieces.PieceOne{Piece: &piece}}
}

func (f *fakeCatalog) AddPiece(ctx context.Context, piece pieces.Piece) pieces.Result[pieces.PieceOne] {
	return f.save("add", piece)
}

func (f *fakeCatalog) UpdatePiece(ctx context.Context, piece pieces.Piece) pieces.Result[pieces.PieceOne] {
	return f.save("update:"+piece.ID, piece)
}

func (f *fakeCatalog) DeletePiece(ctx context.Context, id string) pieces.Result[pieces.DeleteResult] {
	f.record("delete:" + id)
	if f.deleteFailure != pieces.FailureNone {
		return pieces.Result[pieces.DeleteResult]{Failure: f.deleteFailure}
	}
	if f.deleteDenied {
		return pieces.Result[pieces.DeleteResult]{Value: &pieces.DeleteResult{Success: false}}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pieces = slices.DeleteFunc(f.pieces, func(p pieces.Piece) bool { return p.ID == id })
	return pieces.Result[pieces.DeleteResult]{Value: &pieces.DeleteResult{Success: true}}
}

// newTestModel builds a sized model over catalog and runs its initial load.
func newTestModel(t *testing.T, catalog pieces.Catalog, lang string) Model {
	t.Helper()
	m := New(Options{
		Catalog: catalog,
		Locale:  locale.New(lang),
		Now:     func() time.Time { return testToday },
	})
	m = send(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	return run(t, m, m.Init())
}

// send delivers msg and runs any resulting commands to completion.
func send(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, cmd := m.Update(msg)
	return run(t, next.(Model), cmd)
}

// run executes cmd, feeding every produced message back into the model.
func run(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	if cmd == nil {
		return m
	}
	switch msg := cmd().(type) {
	case nil:
		return m
	case tea.QuitMsg:
		return m
	case tea.BatchMsg:
		for _, c := range msg {
			m = run(t, m, c)
		}
		return m
	default:
		return send(t, m, msg)
	}
}

// press sends each key in turn.
func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		m = send(t, m, keyMsg(k))
	}
	return m
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "ctrl+r":
		return tea.KeyMsg{Type: tea.KeyCtrlR}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
}
