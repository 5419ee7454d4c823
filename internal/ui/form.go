package ui

import (
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/piecebook/internal/form"
	"github.com/five82/piecebook/internal/pieces"
)

// formState is the editor's live state. inputs is indexed like form.Fields;
// the checkbox slot holds an unused input.
type formState struct {
	values     form.Values
	errors     form.Errors
	inputs     []textinput.Model
	focus      int
	editID     string
	saving     bool
	generation int
}

type saveDoneMsg struct {
	generation int
	result     pieces.Result[pieces.PieceOne]
}

var formLabels = map[form.Field]string{
	form.FieldPieceName:          "form.pieceName",
	form.FieldCompositorName:     "form.compositorName",
	form.FieldCompositorImageURL: "form.compositorImage",
	form.FieldCompositorIsAlive:  "form.compositorAlive",
	form.FieldDurationMinutes:    "form.duration",
	form.FieldDifficultyLevel:    "form.difficulty",
	form.FieldDateOfRelease:      "form.releaseDate",
	form.FieldInstruments:        "form.instruments",
	form.FieldStyles:             "form.styles",
}

var formPlaceholders = map[form.Field]string{
	form.FieldInstruments: "form.instrumentsPlaceholder",
	form.FieldStyles:      "form.stylesPlaceholder",
}

// openForm seeds a fresh form from target, or from defaults when target is nil.
func (m *Model) openForm(target *pieces.Piece) {
	values := form.Defaults()
	editID := ""
	if target != nil {
		values = form.FromPiece(*target)
		editID = target.ID
	}

	m.form = formState{
		values:     values,
		errors:     form.Errors{},
		inputs:     make([]textinput.Model, len(form.Fields)),
		editID:     editID,
		generation: m.form.generation + 1,
	}
	for i, f := range form.Fields {
		input := textinput.New()
		input.Prompt = ""
		input.Cursor.SetMode(cursor.CursorStatic)
		if placeholder, ok := formPlaceholders[f]; ok {
			input.Placeholder = m.locale.T(placeholder)
		}
		input.SetValue(fieldText(values, f))
		m.form.inputs[i] = input
	}
	m.resizeFormInputs()
	m.focusFormField(0)
}

// fieldText renders a field's current value for its input.
func fieldText(v form.Values, f form.Field) string {
	switch f {
	case form.FieldPieceName:
		return v.PieceName
	case form.FieldCompositorName:
		return v.CompositorName
	case form.FieldCompositorImageURL:
		return v.CompositorImageURL
	case form.FieldDurationMinutes:
		return form.FormatNumber(v.DurationMinutes)
	case form.FieldDifficultyLevel:
		return form.FormatNumber(v.DifficultyLevel)
	case form.FieldDateOfRelease:
		return v.DateOfRelease
	case form.FieldInstruments:
		return v.Instruments
	case form.FieldStyles:
		return v.Styles
	}
	return ""
}

// setFieldText stores an input's text. Numbers parse leniently.
func setFieldText(v *form.Values, f form.Field, text string) {
	switch f {
	case form.FieldPieceName:
		v.PieceName = text
	case form.FieldCompositorName:
		v.CompositorName = text
	case form.FieldCompositorImageURL:
		v.CompositorImageURL = text
	case form.FieldDurationMinutes:
		v.DurationMinutes = form.ParseNumber(text)
	case form.FieldDifficultyLevel:
		v.DifficultyLevel = form.ParseNumber(text)
	case form.FieldDateOfRelease:
		v.DateOfRelease = text
	case form.FieldInstruments:
		v.Instruments = text
	case form.FieldStyles:
		v.Styles = text
	}
}

func (m *Model) resizeFormInputs() {
	width := max(m.width-formLabelWidth-8, 10)
	for i := range m.form.inputs {
		m.form.inputs[i].Width = width
	}
}

// focusFormField moves focus to index i; len(form.Fields) is the submit button.
func (m *Model) focusFormField(i int) {
	count := len(form.Fields) + 1
	i = ((i % count) + count) % count
	if m.form.focus < len(m.form.inputs) {
		m.form.inputs[m.form.focus].Blur()
	}
	m.form.focus = i
	if i < len(form.Fields) && form.Fields[i] != form.FieldCompositorIsAlive {
		// Focus returns a blink command; the static cursor never needs it.
		_ = m.form.inputs[i].Focus()
	}
}

func (m Model) focusedField() (form.Field, bool) {
	if m.form.focus < 0 || m.form.focus >= len(form.Fields) {
		return "", false
	}
	return form.Fields[m.form.focus], true
}

// handleFormKey processes keyboard input while the form is open. Only the
// navigation keys are intercepted; everything else goes to the input.
func (m Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	field, onField := m.focusedField()

	switch {
	case key.Matches(msg, m.keys.ForceQuit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Cancel):
		return m.transition(m.nav.FormCancelled())

	case key.Matches(msg, m.keys.Next):
		m.focusFormField(m.form.focus + 1)
		return m, nil

	case key.Matches(msg, m.keys.Prev):
		m.focusFormField(m.form.focus - 1)
		return m, nil

	case key.Matches(msg, m.keys.Submit):
		return m.submitForm()

	case key.Matches(msg, m.keys.Toggle) && (!onField || field == form.FieldCompositorIsAlive):
		if onField {
			m.form.values.CompositorIsAlive = !m.form.values.CompositorIsAlive
			m.form.errors.Clear(field)
		}
		return m, nil
	}

	if !onField || field == form.FieldCompositorIsAlive {
		return m, nil
	}

	input := m.form.inputs[m.form.focus]
	before := input.Value()
	var cmd tea.Cmd
	input, cmd = input.Update(msg)
	m.form.inputs[m.form.focus] = input
	if input.Value() != before {
		setFieldText(&m.form.values, field, input.Value())
		m.form.errors.Clear(field)
	}
	return m, cmd
}

// submitForm validates and dispatches the save. Submitting while a save is
// in flight does nothing.
func (m Model) submitForm() (tea.Model, tea.Cmd) {
	if m.form.saving {
		return m, nil
	}

	errs := form.Validate(m.form.values, m.now())
	if !errs.Empty() {
		m.form.errors = errs
		for i, f := range form.Fields {
			if _, failed := errs[f]; failed {
				m.focusFormField(i)
				break
			}
		}
		return m, nil
	}
	m.form.errors = form.Errors{}

	piece, err := m.form.values.Piece(m.form.editID)
	if err != nil {
		m.logger.Error("convert form values", slog.Any("error", err))
		m.form.errors = form.Errors{form.FieldPieceName: form.ErrGeneric}
		return m, nil
	}

	m.form.saving = true
	return m, m.saveCmd(piece, m.form.editID != "", m.form.generation)
}

func (m Model) saveCmd(piece pieces.Piece, update bool, generation int) tea.Cmd {
	ctx, catalog := m.ctx, m.catalog
	return func() tea.Msg {
		if update {
			return saveDoneMsg{generation: generation, result: catalog.UpdatePiece(ctx, piece)}
		}
		return saveDoneMsg{generation: generation, result: catalog.AddPiece(ctx, piece)}
	}
}

// applySave handles a save response. A response for a form that has since
// closed or been reopened only reloads the list.
func (m Model) applySave(msg saveDoneMsg) (tea.Model, tea.Cmd) {
	if !m.nav.FormOpen || msg.generation != m.form.generation {
		return m.transition(m.nav.Reload())
	}

	m.form.saving = false
	if !msg.result.OK() {
		m.form.errors = form.Errors{form.FieldPieceName: form.ErrSaveFailed}
		return m, nil
	}
	return m.transition(m.nav.FormSucceeded())
}

// renderForm renders the editor screen.
func (m Model) renderForm(height int) string {
	styles := m.theme.Styles().WithBackground(m.theme.FocusBg)
	labelWidth := min(formLabelWidth, max(m.width/3, 12))

	var lines []string
	for i, f := range form.Fields {
		focused := i == m.form.focus

		label := m.locale.T(formLabels[f])
		if f != form.FieldCompositorIsAlive {
			label += " " + m.locale.T("form.required")
		}
		label = padRight(truncate(label, labelWidth-1), labelWidth)

		labelStyle := styles.MutedText
		if focused {
			labelStyle = styles.AccentText
		}

		var field string
		if f == form.FieldCompositorIsAlive {
			box := "[ ]"
			if m.form.values.CompositorIsAlive {
				box = "[x]"
			}
			field = styles.Text.Render(box)
		} else {
			field = m.form.inputs[i].View()
		}

		marker := "  "
		if focused {
			marker = "› "
		}
		lines = append(lines, styles.AccentText.Render(marker)+labelStyle.Render(label)+field)

		if errKey := m.form.errors[f]; errKey != "" {
			lines = append(lines,
				styles.Text.Render(strings.Repeat(" ", labelWidth+2))+styles.DangerText.Render(m.locale.T(errKey)))
		}
	}

	submitKey := "form.submit"
	if m.form.editID != "" {
		submitKey = "form.update"
	}
	if m.form.saving {
		submitKey = "form.saving"
	}
	button := "[ " + m.locale.T(submitKey) + " ]"
	buttonStyle := styles.MutedText
	if m.form.focus == len(form.Fields) {
		buttonStyle = styles.Selected
	}

	lines = append(lines, "",
		styles.Text.Render(strings.Repeat(" ", labelWidth+2))+buttonStyle.Render(button)+
			styles.FaintText.Render("  esc "+m.locale.T("form.cancel")))

	title := m.locale.T("form.titleAdd")
	if m.form.editID != "" {
		title = m.locale.T("form.titleEdit")
	}
	return m.renderTitledBox(title, strings.Join(lines, "\n"), m.width, height)
}
