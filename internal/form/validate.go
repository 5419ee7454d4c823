package form

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Message keys attached to fields.
const (
	ErrPieceNameRequired      = "form.error.pieceNameRequired"
	ErrPieceNameLength        = "form.error.pieceNameLength"
	ErrCompositorNameRequired = "form.error.compositorNameRequired"
	ErrCompositorNameLength   = "form.error.compositorNameLength"
	ErrDurationPositive       = "form.error.durationPositive"
	ErrDateRequired           = "form.error.dateRequired"
	ErrDateInvalid            = "form.error.dateInvalid"
	ErrDateFuture             = "form.error.dateFuture"
	ErrInstrumentsRequired    = "form.error.instrumentsRequired"
	ErrInstrumentLength       = "form.error.instrumentLength"
	ErrInstrumentsDuplicate   = "form.error.instrumentsDuplicate"
	ErrDifficultyRange        = "form.error.difficultyRange"
	ErrStylesRequired         = "form.error.stylesRequired"
	ErrStyleLength            = "form.error.styleLength"
	ErrStylesDuplicate        = "form.error.stylesDuplicate"
	ErrImageURLRequired       = "form.error.imageUrlRequired"
	ErrImageURLLength         = "form.error.imageUrlLength"
	ErrSaveFailed             = "form.error.saveFailed"
	ErrGeneric                = "form.error.generic"
)

const (
	maxNameLength       = 100
	maxInstrumentLength = 100
	maxStyleLength      = 50
	maxImageURLLength   = 200
	minDifficulty       = 1
	maxDifficulty       = 6
)

// Errors maps a field to the message key of its first failing rule.
type Errors map[Field]string

// Empty reports whether submission may proceed.
func (e Errors) Empty() bool {
	return len(e) == 0
}

// Clear drops the error for f, if any.
func (e Errors) Clear(f Field) {
	delete(e, f)
}

var (
	validate       = validator.New()
	difficultyRule = "min=" + strconv.Itoa(minDifficulty) + ",max=" + strconv.Itoa(maxDifficulty)
)

func passes(value any, tag string) bool {
	return validate.Var(value, tag) == nil
}

// Validate checks every field against its rules. Only the calendar date of
// today matters for the future-date rule.
func Validate(v Values, today time.Time) Errors {
	errs := Errors{}

	if msg := checkText(v.PieceName, maxNameLength, ErrPieceNameRequired, ErrPieceNameLength); msg != "" {
		errs[FieldPieceName] = msg
	}
	if msg := checkText(v.CompositorName, maxNameLength, ErrCompositorNameRequired, ErrCompositorNameLength); msg != "" {
		errs[FieldCompositorName] = msg
	}
	if !passes(v.DurationMinutes, "gt=0") {
		errs[FieldDurationMinutes] = ErrDurationPositive
	}
	if msg := checkDate(v.DateOfRelease, today); msg != "" {
		errs[FieldDateOfRelease] = msg
	}
	if msg := checkList(v.Instruments, maxInstrumentLength, ErrInstrumentsRequired, ErrInstrumentLength, ErrInstrumentsDuplicate); msg != "" {
		errs[FieldInstruments] = msg
	}
	if math.Trunc(v.DifficultyLevel) != v.DifficultyLevel ||
		!passes(int(v.DifficultyLevel), difficultyRule) {
		errs[FieldDifficultyLevel] = ErrDifficultyRange
	}
	if msg := checkList(v.Styles, maxStyleLength, ErrStylesRequired, ErrStyleLength, ErrStylesDuplicate); msg != "" {
		errs[FieldStyles] = msg
	}
	if msg := checkText(v.CompositorImageURL, maxImageURLLength, ErrImageURLRequired, ErrImageURLLength); msg != "" {
		errs[FieldCompositorImageURL] = msg
	}
	return errs
}

// checkText requires a non-blank value and bounds the raw rune count.
func checkText(value string, max int, required, length string) string {
	if !passes(strings.TrimSpace(value), "required") {
		return required
	}
	if !passes(value, "max="+strconv.Itoa(max)) {
		return length
	}
	return ""
}

func checkDate(value string, today time.Time) string {
	if !passes(value, "required") {
		return ErrDateRequired
	}
	released, err := ParseDate(value)
	if err != nil {
		return ErrDateInvalid
	}
	y, m, d := today.Date()
	if released.After(time.Date(y, m, d, 0, 0, 0, 0, time.UTC)) {
		return ErrDateFuture
	}
	return ""
}

// checkList runs the required, per-item length and uniqueness rules. Both of
// the last two run; a duplicate wins over a length violation.
func checkList(value string, max int, required, length, duplicate string) string {
	items := SplitList(value)
	if !passes(items, "min=1") {
		return required
	}
	msg := ""
	if !passes(items, "dive,max="+strconv.Itoa(max)) {
		msg = length
	}
	if !passes(items, "unique") {
		msg = duplicate
	}
	return msg
}
