package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/jbonatakis/cabinlog/internal/trip"
)

type detailsField int

const (
	detailsLine detailsField = iota
	detailsTrack
	detailsDate
	detailsTechnician
	detailsPKStart
	detailsPKEnd
	detailsFieldCount
)

var detailsFieldKeys = [detailsFieldCount]string{
	trip.FieldLine,
	trip.FieldTrack,
	trip.FieldDate,
	trip.FieldTechnician,
	trip.FieldPKStart,
	trip.FieldPKEnd,
}

var detailsFieldLabels = [detailsFieldCount]string{
	"Línea",
	"Vía",
	"Fecha (AAAA-MM-DD)",
	"Técnico",
	"PK inicio",
	"PK fin",
}

// DetailsForm is the first wizard step: the trip header fields.
type DetailsForm struct {
	inputs  [detailsFieldCount]textinput.Model
	focused detailsField
	errors  trip.FieldErrors
}

func NewDetailsForm(d trip.Details) DetailsForm {
	values := [detailsFieldCount]string{d.Line, d.Track, d.Date, d.Technician, d.PKStart, d.PKEnd}
	var f DetailsForm
	for i := range f.inputs {
		ti := textinput.New()
		ti.Prompt = "│ "
		ti.CharLimit = 120
		ti.Width = 40
		ti.SetValue(values[i])
		f.inputs[i] = ti
	}
	f.inputs[detailsPKStart].Placeholder = "p. ej. 120.5"
	f.inputs[detailsPKEnd].Placeholder = "p. ej. 135.2"
	return f.focus(detailsLine)
}

// Values returns the form contents as entered.
func (f DetailsForm) Values() trip.Details {
	v := func(i detailsField) string { return f.inputs[i].Value() }
	return trip.Details{
		Line:       v(detailsLine),
		Track:      v(detailsTrack),
		Date:       strings.TrimSpace(v(detailsDate)),
		Technician: v(detailsTechnician),
		PKStart:    strings.TrimSpace(v(detailsPKStart)),
		PKEnd:      strings.TrimSpace(v(detailsPKEnd)),
	}
}

// SetErrors shows errs inline and moves focus to the first invalid field.
func (f *DetailsForm) SetErrors(errs trip.FieldErrors) {
	f.errors = errs
	for i, key := range detailsFieldKeys {
		if _, bad := errs[key]; bad {
			*f = f.focus(detailsField(i))
			return
		}
	}
}

func (f DetailsForm) Update(msg tea.Msg) (DetailsForm, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "tab", "down":
			return f.focus((f.focused + 1) % detailsFieldCount), nil
		case "shift+tab", "up":
			return f.focus((f.focused + detailsFieldCount - 1) % detailsFieldCount), nil
		}
	}
	var cmd tea.Cmd
	f.inputs[f.focused], cmd = f.inputs[f.focused].Update(msg)
	return f, cmd
}

func (f DetailsForm) focus(field detailsField) DetailsForm {
	for i := range f.inputs {
		if detailsField(i) == field {
			f.inputs[i].Focus()
		} else {
			f.inputs[i].Blur()
		}
	}
	f.focused = field
	return f
}

func (f DetailsForm) View() string {
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	focusedLabelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("69")).Bold(true)
	errorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("196"))

	var lines []string
	for i := range f.inputs {
		label := detailsFieldLabels[i]
		if detailsField(i) == f.focused {
			label = focusedLabelStyle.Render(label)
		} else {
			label = labelStyle.Render(label)
		}
		lines = append(lines, label, f.inputs[i].View())
		if msg, bad := f.errors[detailsFieldKeys[i]]; bad {
			lines = append(lines, errorStyle.Render("⚠ "+msg))
		}
		lines = append(lines, "")
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
