package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/piecebook/internal/pieces"
)

func TestScreenPrecedence(t *testing.T) {
	var n Nav
	assert.Equal(t, ScreenListing, n.Screen())

	n = n.SelectPiece("abc")
	assert.Equal(t, ScreenViewing, n.Screen())

	n = n.OpenCreate()
	assert.Equal(t, ScreenEditing, n.Screen())

	n = n.FormCancelled()
	assert.Equal(t, ScreenViewing, n.Screen())

	n = n.Back()
	assert.Equal(t, ScreenListing, n.Screen())
	assert.Equal(t, "listing", n.Screen().String())
}

func TestToggleAliveCyclesAndClearsYears(t *testing.T) {
	n, err := Nav{}.ApplyYearFilter("1900", "1950")
	require.NoError(t, err)

	n = n.ToggleAlive()
	assert.Equal(t, AliveOnly, n.Alive)
	assert.False(t, n.YearActive)
	assert.Empty(t, n.YearStart)
	assert.Empty(t, n.YearEnd)

	n = n.ToggleAlive()
	assert.Equal(t, DeceasedOnly, n.Alive)

	n = n.ToggleAlive()
	assert.Equal(t, AliveAny, n.Alive)
}

func TestApplyYearFilter(t *testing.T) {
	start := Nav{}.ToggleAlive()

	n, err := start.ApplyYearFilter("1900", "1950")
	require.NoError(t, err)
	assert.True(t, n.YearActive)
	assert.Equal(t, AliveAny, n.Alive)
	assert.Equal(t, Query{Kind: QueryYears, Start: 1900, End: 1950}, n.Query())

	same, err := start.ApplyYearFilter("1950", "1950")
	require.NoError(t, err)
	assert.Equal(t, QueryYears, same.Query().Kind)

	lenient, err := start.ApplyYearFilter(" 1900s", "2000")
	require.NoError(t, err)
	assert.Equal(t, 1900, lenient.Query().Start)

	for _, bad := range [][2]string{{"1950", "1900"}, {"", "1900"}, {"abc", "1900"}, {"1900", ""}} {
		got, err := start.ApplyYearFilter(bad[0], bad[1])
		assert.ErrorIs(t, err, ErrInvalidYearRange, "range %v", bad)
		assert.Equal(t, start, got, "state must not change for %v", bad)
	}
}

func TestQueryPrecedence(t *testing.T) {
	assert.Equal(t, Query{Kind: QueryAll}, Nav{}.Query())
	assert.Equal(t, Query{Kind: QueryAlive, Alive: true}, Nav{Alive: AliveOnly}.Query())
	assert.Equal(t, Query{Kind: QueryAlive, Alive: false}, Nav{Alive: DeceasedOnly}.Query())

	both := Nav{Alive: AliveOnly, YearStart: "1800", YearEnd: "1900", YearActive: true}
	assert.Equal(t, Query{Kind: QueryYears, Start: 1800, End: 1900}, both.Query())

	zeroBound := Nav{Alive: DeceasedOnly, YearStart: "0", YearEnd: "1900", YearActive: true}
	assert.Equal(t, Query{Kind: QueryAlive, Alive: false}, zeroBound.Query())

	inactive := Nav{YearStart: "1800", YearEnd: "1900"}
	assert.Equal(t, Query{Kind: QueryAll}, inactive.Query())
	assert.False(t, inactive.FilterActive())
	assert.True(t, both.FilterActive())
}

func TestFilterStatus(t *testing.T) {
	assert.Equal(t, StatusAll, Nav{}.FilterStatus())
	assert.Equal(t, StatusAlive, Nav{Alive: AliveOnly}.FilterStatus())
	assert.Equal(t, StatusDeceased, Nav{Alive: DeceasedOnly}.FilterStatus())
	assert.Equal(t, StatusYears, Nav{YearStart: "1", YearEnd: "2", YearActive: true}.FilterStatus())
	assert.Equal(t, StatusAlive, Nav{Alive: AliveOnly, YearStart: "1", YearEnd: "2", YearActive: true}.FilterStatus())
}

func TestResetFilters(t *testing.T) {
	n, err := Nav{SelectedID: "x"}.ApplyYearFilter("1900", "1950")
	require.NoError(t, err)
	n = n.ResetFilters()
	assert.Equal(t, Nav{SelectedID: "x"}, n)
}

func TestFormTransitions(t *testing.T) {
	p := pieces.Piece{ID: "p1", Instruments: []string{"Piano"}}

	n := Nav{}.OpenEdit(p)
	require.NotNil(t, n.EditTarget)
	assert.True(t, n.FormOpen)
	assert.Equal(t, "p1", n.EditTarget.ID)

	p.Instruments[0] = "Harp"
	assert.Equal(t, "Piano", n.EditTarget.Instruments[0], "edit target must be a copy")

	done := n.FormSucceeded()
	assert.False(t, done.FormOpen)
	assert.Nil(t, done.EditTarget)
	assert.Equal(t, 1, done.Refresh)

	cancelled := n.FormCancelled()
	assert.Equal(t, 0, cancelled.Refresh)
	assert.Nil(t, cancelled.EditTarget)

	create := n.OpenCreate()
	assert.Nil(t, create.EditTarget)
	assert.True(t, create.FormOpen)
}

func TestTransitionsDoNotMutateReceiver(t *testing.T) {
	n := Nav{SelectedID: "a"}
	_ = n.Back()
	_ = n.ToggleAlive()
	_ = n.OpenCreate()
	assert.Equal(t, Nav{SelectedID: "a"}, n)
}

func TestReloadKeepsNavigation(t *testing.T) {
	n := Nav{SelectedID: "a", Alive: AliveOnly, FormOpen: true}
	r := n.Reload()
	assert.Equal(t, 1, r.Refresh)
	assert.Equal(t, "a", r.SelectedID)
	assert.Equal(t, AliveOnly, r.Alive)
	assert.True(t, r.FormOpen)
}
