package state

import (
	"errors"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/five82/piecebook/internal/pieces"
)

// ErrInvalidYearRange is returned when a year filter does not hold two
// integers in ascending order.
var ErrInvalidYearRange = errors.New("invalid year range")

// Screen is the view the root shows.
type Screen int

const (
	ScreenListing Screen = iota
	ScreenViewing
	ScreenEditing
)

func (s Screen) String() string {
	switch s {
	case ScreenViewing:
		return "viewing"
	case ScreenEditing:
		return "editing"
	default:
		return "listing"
	}
}

// AliveFilter is the composer life-status filter.
type AliveFilter int

const (
	AliveAny AliveFilter = iota
	AliveOnly
	DeceasedOnly
)

// FilterStatus names the status line shown above the list.
type FilterStatus string

const (
	StatusAll      FilterStatus = "all"
	StatusAlive    FilterStatus = "alive"
	StatusDeceased FilterStatus = "deceased"
	StatusYears    FilterStatus = "years"
)

// QueryKind selects the list endpoint.
type QueryKind int

const (
	QueryAll QueryKind = iota
	QueryAlive
	QueryYears
)

// Query is the single list request implied by the filters.
type Query struct {
	Kind  QueryKind
	Alive bool
	Start int
	End   int
}

// Nav is the root navigation and filter state. It is a value: transitions
// return a new Nav and never modify the receiver.
type Nav struct {
	SelectedID string
	Alive      AliveFilter
	YearStart  string
	YearEnd    string
	YearActive bool
	FormOpen   bool
	EditTarget *pieces.Piece
	Refresh    int
}

// Screen derives the visible view. An open form wins over a selection.
func (n Nav) Screen() Screen {
	switch {
	case n.FormOpen:
		return ScreenEditing
	case n.SelectedID != "":
		return ScreenViewing
	default:
		return ScreenListing
	}
}

// SelectPiece shows the detail view for id.
func (n Nav) SelectPiece(id string) Nav {
	n.SelectedID = id
	return n
}

// Back returns from the detail view to the list.
func (n Nav) Back() Nav {
	n.SelectedID = ""
	return n
}

// ToggleAlive cycles any → alive → deceased → any and clears the year filter
// along with its inputs.
func (n Nav) ToggleAlive() Nav {
	switch n.Alive {
	case AliveAny:
		n.Alive = AliveOnly
	case AliveOnly:
		n.Alive = DeceasedOnly
	default:
		n.Alive = AliveAny
	}
	n.YearActive = false
	n.YearStart = ""
	n.YearEnd = ""
	return n
}

// ApplyYearFilter activates the release-year range and clears the life-status
// filter. The receiver is returned unchanged with ErrInvalidYearRange when the
// bounds are not integers or are out of order.
func (n Nav) ApplyYearFilter(start, end string) (Nav, error) {
	s, okStart := parseYear(start)
	e, okEnd := parseYear(end)
	if !okStart || !okEnd || s > e {
		return n, ErrInvalidYearRange
	}
	n.YearStart = start
	n.YearEnd = end
	n.YearActive = true
	n.Alive = AliveAny
	return n, nil
}

// ResetFilters drops every filter.
func (n Nav) ResetFilters() Nav {
	n.Alive = AliveAny
	n.YearStart = ""
	n.YearEnd = ""
	n.YearActive = false
	return n
}

// OpenCreate opens an empty form.
func (n Nav) OpenCreate() Nav {
	n.FormOpen = true
	n.EditTarget = nil
	return n
}

// OpenEdit opens the form seeded with a copy of p.
func (n Nav) OpenEdit(p pieces.Piece) Nav {
	p.Instruments = slices.Clone(p.Instruments)
	p.Styles = slices.Clone(p.Styles)
	n.FormOpen = true
	n.EditTarget = &p
	return n
}

// FormSucceeded closes the form and asks the list to reload.
func (n Nav) FormSucceeded() Nav {
	n.FormOpen = false
	n.EditTarget = nil
	n.Refresh++
	return n
}

// FormCancelled closes the form without reloading.
func (n Nav) FormCancelled() Nav {
	n.FormOpen = false
	n.EditTarget = nil
	return n
}

// Reload asks the list to fetch again without touching navigation.
func (n Nav) Reload() Nav {
	n.Refresh++
	return n
}

// FilterActive reports whether any filter narrows the list.
func (n Nav) FilterActive() bool {
	return n.Query().Kind != QueryAll
}

// Query applies the filter precedence: a year range with both bounds set and
// non-zero, then the life-status filter, then everything.
func (n Nav) Query() Query {
	if n.YearActive {
		start, okStart := parseYear(n.YearStart)
		end, okEnd := parseYear(n.YearEnd)
		if okStart && okEnd && start != 0 && end != 0 {
			return Query{Kind: QueryYears, Start: start, End: end}
		}
	}
	switch n.Alive {
	case AliveOnly:
		return Query{Kind: QueryAlive, Alive: true}
	case DeceasedOnly:
		return Query{Kind: QueryAlive, Alive: false}
	}
	return Query{Kind: QueryAll}
}

// FilterStatus picks the status line. Life status is checked first.
func (n Nav) FilterStatus() FilterStatus {
	switch n.Alive {
	case AliveOnly:
		return StatusAlive
	case DeceasedOnly:
		return StatusDeceased
	}
	if n.YearActive && strings.TrimSpace(n.YearStart) != "" && strings.TrimSpace(n.YearEnd) != "" {
		return StatusYears
	}
	return StatusAll
}

var leadingInt = regexp.MustCompile(`^[+-]?\d+`)

// parseYear reads the leading integer of s, ignoring surrounding spaces and
// any trailing text.
func parseYear(s string) (int, bool) {
	match := leadingInt.FindString(strings.TrimSpace(s))
	if match == "" {
		return 0, false
	}
	year, err := strconv.Atoi(match)
	if err != nil {
		return 0, false
	}
	return year, true
}
