// Package form holds the piece editor's raw state: seeding from a piece,
// validating on submit and converting back into a piece.
package form

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/five82/piecebook/internal/pieces"
)

// Field names a form input. Values match the JSON field names.
type Field string

const (
	FieldPieceName          Field = "pieceName"
	FieldCompositorName     Field = "compositorName"
	FieldCompositorImageURL Field = "compositorImageUrl"
	FieldCompositorIsAlive  Field = "compositorIsAlive"
	FieldDurationMinutes    Field = "durationMinutes"
	FieldDifficultyLevel    Field = "difficultyLevel"
	FieldDateOfRelease      Field = "dateOfRelease"
	FieldInstruments        Field = "instruments"
	FieldStyles             Field = "styles"
)

// Fields lists the inputs in display order.
var Fields = []Field{
	FieldPieceName,
	FieldCompositorName,
	FieldCompositorImageURL,
	FieldCompositorIsAlive,
	FieldDurationMinutes,
	FieldDifficultyLevel,
	FieldDateOfRelease,
	FieldInstruments,
	FieldStyles,
}

// DateLayout is the calendar-date form of DateOfRelease.
const DateLayout = "2006-01-02"

const defaultDifficulty = 5

// Values is the live form state. Lists stay comma-joined strings until submit.
type Values struct {
	PieceName          string
	CompositorName     string
	DurationMinutes    float64
	DateOfRelease      string
	CompositorIsAlive  bool
	Instruments        string
	DifficultyLevel    float64
	Styles             string
	CompositorImageURL string
}

// Defaults returns the state of an empty create form.
func Defaults() Values {
	return Values{DifficultyLevel: defaultDifficulty}
}

// FromPiece seeds the form from an existing piece.
func FromPiece(p pieces.Piece) Values {
	return Values{
		PieceName:          p.PieceName,
		CompositorName:     p.CompositorName,
		DurationMinutes:    p.DurationMinutes,
		DateOfRelease:      FormatDate(p.DateOfRelease),
		CompositorIsAlive:  p.CompositorIsAlive,
		Instruments:        strings.Join(p.Instruments, ", "),
		DifficultyLevel:    float64(p.DifficultyLevel),
		Styles:             strings.Join(p.Styles, ", "),
		CompositorImageURL: p.CompositorImageURL,
	}
}

// FormatDate renders t as a UTC calendar date.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(DateLayout)
}

// ParseDate reads a calendar date as UTC midnight.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, strings.TrimSpace(s), time.UTC)
}

// SplitList splits a comma-joined list, trimming items and dropping empties.
func SplitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if item := strings.TrimSpace(part); item != "" {
			out = append(out, item)
		}
	}
	return out
}

var numberPrefix = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

// ParseNumber reads a numeric input the lenient way: the longest numeric
// prefix counts, anything unparseable is 0.
func ParseNumber(s string) float64 {
	match := numberPrefix.FindString(strings.TrimSpace(s))
	if match == "" {
		return 0
	}
	n, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0
	}
	return n
}

// FormatNumber renders a number input without trailing zeros.
func FormatNumber(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}

// Piece converts validated values into a piece carrying id. Names and URL
// are trimmed and lists re-split.
func (v Values) Piece(id string) (pieces.Piece, error) {
	released, err := ParseDate(v.DateOfRelease)
	if err != nil {
		return pieces.Piece{}, fmt.Errorf("parse release date: %w", err)
	}
	return pieces.Piece{
		ID:                 id,
		PieceName:          strings.TrimSpace(v.PieceName),
		CompositorName:     strings.TrimSpace(v.CompositorName),
		DurationMinutes:    v.DurationMinutes,
		DateOfRelease:      released,
		CompositorIsAlive:  v.CompositorIsAlive,
		Instruments:        SplitList(v.Instruments),
		DifficultyLevel:    int(v.DifficultyLevel),
		Styles:             SplitList(v.Styles),
		CompositorImageURL: strings.TrimSpace(v.CompositorImageURL),
	}, nil
}
