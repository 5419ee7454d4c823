package ui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/piecebook/internal/form"
	"github.com/five82/piecebook/internal/pieces"
	"github.com/five82/piecebook/internal/state"
)

// fillCreateForm types a valid piece into an empty form, leaving focus on
// the styles input.
func fillCreateForm(t *testing.T, m Model) Model {
	t.Helper()
	return press(t, m,
		"Nocturne", "tab",
		"Frédéric Chopin", "tab",
		"https://example.com/chopin.jpg", "tab",
		"tab",
		"backspace", "4.5", "tab",
		"tab",
		"1830-01-01", "tab",
		"Piano", "tab",
		"Romantic",
	)
}

func TestCreateFormDefaults(t *testing.T) {
	m := newTestModel(t, newFakeCatalog(), "en")

	m = press(t, m, "a")
	require.Equal(t, state.ScreenEditing, m.nav.Screen())
	assert.Equal(t, form.Defaults(), m.form.values)
	assert.Empty(t, m.form.editID)
	assert.Contains(t, m.View(), "Add a piece")
}

func TestEmptySubmitShowsErrorsWithoutRequest(t *testing.T) {
	catalog := newFakeCatalog()
	m := newTestModel(t, catalog, "en")

	m = press(t, m, "a", "enter")
	assert.Equal(t, form.ErrPieceNameRequired, m.form.errors[form.FieldPieceName])
	assert.Equal(t, form.ErrDurationPositive, m.form.errors[form.FieldDurationMinutes])
	assert.Equal(t, form.ErrDateRequired, m.form.errors[form.FieldDateOfRelease])
	assert.NotContains(t, m.form.errors, form.FieldDifficultyLevel)
	assert.False(t, m.form.saving)
	assert.Equal(t, []string{"all"}, catalog.Calls())
	assert.Contains(t, m.View(), "The piece name is required.")
}

func TestTypingClearsFieldError(t *testing.T) {
	m := newTestModel(t, newFakeCatalog(), "en")

	m = press(t, m, "a", "enter")
	require.Contains(t, m.form.errors, form.FieldPieceName)
	require.Equal(t, 0, m.form.focus)

	m = press(t, m, "N")
	assert.NotContains(t, m.form.errors, form.FieldPieceName)
	assert.Contains(t, m.form.errors, form.FieldCompositorName)
}

func TestErrorsFollowLocale(t *testing.T) {
	m := newTestModel(t, newFakeCatalog(), "fr")

	m = press(t, m, "a", "enter")
	key := m.form.errors[form.FieldPieceName]
	require.NotEmpty(t, key)

	french := m.View()
	m.locale = m.locale.Next()
	assert.NotEqual(t, french, m.View())
	assert.Contains(t, m.View(), "The piece name is required.")
}

func TestCreateSubmitsAndReloads(t *testing.T) {
	catalog := newFakeCatalog()
	m := newTestModel(t, catalog, "en")

	m = press(t, m, "a")
	m = fillCreateForm(t, m)
	m = press(t, m, "enter")

	require.Equal(t, state.ScreenListing, m.nav.Screen(), "errors: %v", m.form.errors)
	assert.Equal(t, 1, m.nav.Refresh)
	assert.Equal(t, []string{"all", "add", "all"}, catalog.Calls())

	require.Len(t, catalog.saved, 1)
	saved := catalog.saved[0]
	assert.Empty(t, saved.ID)
	assert.Equal(t, "Nocturne", saved.PieceName)
	assert.Equal(t, "Frédéric Chopin", saved.CompositorName)
	assert.Equal(t, 4.5, saved.DurationMinutes)
	assert.Equal(t, 5, saved.DifficultyLevel)
	assert.Equal(t, time.Date(1830, 1, 1, 0, 0, 0, 0, time.UTC), saved.DateOfRelease)
	assert.Equal(t, []string{"Piano"}, saved.Instruments)
	assert.Equal(t, []string{"Romantic"}, saved.Styles)
	assert.False(t, saved.CompositorIsAlive)
}

func TestCheckboxToggle(t *testing.T) {
	m := newTestModel(t, newFakeCatalog(), "en")

	m = press(t, m, "a", "tab", "tab", "tab")
	field, ok := m.focusedField()
	require.True(t, ok)
	require.Equal(t, form.FieldCompositorIsAlive, field)

	m = press(t, m, "space")
	assert.True(t, m.form.values.CompositorIsAlive)
	m = press(t, m, "space")
	assert.False(t, m.form.values.CompositorIsAlive)
}

func TestFocusWraps(t *testing.T) {
	m := newTestModel(t, newFakeCatalog(), "en")

	m = press(t, m, "a", "shift+tab")
	assert.Equal(t, len(form.Fields), m.form.focus)

	m = press(t, m, "tab")
	assert.Equal(t, 0, m.form.focus)
}

func TestEditSubmitsUpdate(t *testing.T) {
	catalog := newFakeCatalog()
	m := newTestModel(t, catalog, "en")

	m = press(t, m, "e")
	assert.Contains(t, m.View(), "Edit piece")
	m = press(t, m, " (arr.)", "enter")

	require.Equal(t, state.ScreenListing, m.nav.Screen(), "errors: %v", m.form.errors)
	assert.Equal(t, []string{"all", "update:clair-de-lune", "all"}, catalog.Calls())
	require.Len(t, catalog.saved, 1)
	assert.Equal(t, "Clair de lune (arr.)", catalog.saved[0].PieceName)
	assert.Equal(t, "clair-de-lune", catalog.saved[0].ID)
}

func TestSaveFailureKeepsFormOpen(t *testing.T) {
	catalog := newFakeCatalog()
	catalog.saveFailure = pieces.FailureStatus
	m := newTestModel(t, catalog, "en")

	m = press(t, m, "a")
	m = fillCreateForm(t, m)
	m = press(t, m, "enter")

	assert.Equal(t, state.ScreenEditing, m.nav.Screen())
	assert.False(t, m.form.saving)
	assert.Equal(t, form.Errors{form.FieldPieceName: form.ErrSaveFailed}, m.form.errors)
	assert.Contains(t, m.View(), "Saving the piece failed.")
}

func TestSubmitIgnoredWhileSaving(t *testing.T) {
	catalog := newFakeCatalog()
	m := newTestModel(t, catalog, "en")

	m = press(t, m, "a")
	m = fillCreateForm(t, m)

	next, cmd := m.Update(keyMsg("enter"))
	m = next.(Model)
	require.NotNil(t, cmd)
	require.True(t, m.form.saving)
	assert.Contains(t, m.View(), "Saving...")

	next, again := m.Update(keyMsg("enter"))
	m = next.(Model)
	assert.Nil(t, again)

	m = run(t, m, cmd)
	assert.Equal(t, state.ScreenListing, m.nav.Screen())
	assert.Equal(t, []string{"all", "add", "all"}, catalog.Calls())
}

func TestCancelDiscardsWithoutSaving(t *testing.T) {
	catalog := newFakeCatalog()
	m := newTestModel(t, catalog, "en")

	m = press(t, m, "a", "Draft", "esc")
	assert.Equal(t, state.ScreenListing, m.nav.Screen())
	assert.Equal(t, 0, m.nav.Refresh)
	assert.Empty(t, catalog.saved)

	m = press(t, m, "a")
	assert.Empty(t, m.form.values.PieceName)
}

func TestLateSaveAfterCancelReloadsList(t *testing.T) {
	catalog := newFakeCatalog()
	m := newTestModel(t, catalog, "en")

	m = press(t, m, "a")
	m = fillCreateForm(t, m)
	next, cmd := m.Update(keyMsg("enter"))
	m = next.(Model)
	require.NotNil(t, cmd)

	m = press(t, m, "esc")
	require.Equal(t, state.ScreenListing, m.nav.Screen())
	refreshBefore := m.nav.Refresh

	m = run(t, m, cmd)
	assert.Equal(t, refreshBefore+1, m.nav.Refresh)
	assert.Equal(t, state.ScreenListing, m.nav.Screen())
	assert.Equal(t, []string{"all", "all", "add", "all"}, catalog.Calls())
}

func TestFormKeysDoNotLeakToGlobals(t *testing.T) {
	m := newTestModel(t, newFakeCatalog(), "en")

	m = press(t, m, "a", "q", "L", "T", "?")
	assert.Equal(t, state.ScreenEditing, m.nav.Screen())
	assert.Equal(t, "qLT?", m.form.values.PieceName)
	assert.Equal(t, "en", m.locale.Name())
	assert.False(t, m.showHelp)
}
