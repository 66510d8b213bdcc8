package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/jbonatakis/cabinlog/internal/catalog"
	"github.com/jbonatakis/cabinlog/internal/trip"
	"github.com/jbonatakis/cabinlog/internal/wizard"
)

type anomalyField int

const (
	anomalyElement anomalyField = iota
	anomalyDefect
	anomalyPK
	anomalyNotes
	anomalyPhoto
	anomalyLat
	anomalyLng
	anomalyFieldCount
)

// text inputs cover the fields from anomalyPK on
const firstTextField = anomalyPK

// AnomalyForm is the add/edit anomaly modal. Element and defect are pickers over the
// catalog; changing the element re-derives the defect so the pair is always consistent.
type AnomalyForm struct {
	cat      catalog.Catalog
	editID   string
	elements []string
	// element is -1 until the user picks one.
	element int
	defects []catalog.Defect
	defect  int
	inputs  [anomalyFieldCount - firstTextField]textinput.Model
	// photo is the stored data URI; a new path in the photo input replaces it on submit.
	photo   string
	focused anomalyField
	errors  trip.FieldErrors
	width   int
}

// NewAnomalyForm opens an empty form for a new anomaly.
func NewAnomalyForm(cat catalog.Catalog) AnomalyForm {
	f := AnomalyForm{
		cat:      cat,
		elements: cat.Elements(),
		element:  -1,
		width:    70,
	}
	for i := range f.inputs {
		ti := textinput.New()
		ti.Prompt = "│ "
		ti.CharLimit = 500
		ti.Width = 50
		f.inputs[i] = ti
	}
	f.input(anomalyPK).Placeholder = "p. ej. 123.450"
	f.input(anomalyPhoto).Placeholder = "ruta a una imagen (opcional)"
	f.input(anomalyLat).Placeholder = "latitud (opcional)"
	f.input(anomalyLng).Placeholder = "longitud (opcional)"
	return f.focus(anomalyElement)
}

// EditAnomalyForm opens the form prefilled from a.
func EditAnomalyForm(cat catalog.Catalog, a trip.Anomaly) AnomalyForm {
	f := NewAnomalyForm(cat)
	f.editID = a.ID
	for i, name := range f.elements {
		if name == a.Element {
			f.setElement(i, a.Defect)
			break
		}
	}
	f.input(anomalyPK).SetValue(a.PK)
	f.input(anomalyNotes).SetValue(a.Notes)
	f.photo = a.Photo
	if a.Location != nil {
		f.input(anomalyLat).SetValue(strconv.FormatFloat(a.Location.Lat, 'f', -1, 64))
		f.input(anomalyLng).SetValue(strconv.FormatFloat(a.Location.Lng, 'f', -1, 64))
	}
	return f
}

func (f *AnomalyForm) input(field anomalyField) *textinput.Model {
	return &f.inputs[field-firstTextField]
}

func (f *AnomalyForm) SetWidth(width int) {
	f.width = width - 10
	if f.width > 100 {
		f.width = 100
	}
	if f.width < 40 {
		f.width = 40
	}
	for i := range f.inputs {
		f.inputs[i].Width = f.width - 8
	}
}

// Element returns the picked element, or "" when none is picked.
func (f AnomalyForm) Element() string {
	if f.element < 0 || f.element >= len(f.elements) {
		return ""
	}
	return f.elements[f.element]
}

// Defect returns the picked defect, or the zero Defect when none is picked.
func (f AnomalyForm) Defect() catalog.Defect {
	if f.defect < 0 || f.defect >= len(f.defects) {
		return catalog.Defect{}
	}
	return f.defects[f.defect]
}

func (f *AnomalyForm) setElement(i int, currentDefect string) {
	f.element = i
	f.defects = f.cat.DefectsFor(f.elements[i])
	f.defect = -1
	d, ok := f.cat.Reconcile(f.elements[i], currentDefect)
	if !ok {
		return
	}
	for j, cand := range f.defects {
		if cand.Name == d.Name {
			f.defect = j
			break
		}
	}
}

func (f *AnomalyForm) cycle(delta int) {
	switch f.focused {
	case anomalyElement:
		if len(f.elements) == 0 {
			return
		}
		next := f.element + delta
		if f.element < 0 {
			next = 0
			if delta < 0 {
				next = len(f.elements) - 1
			}
		}
		next = (next + len(f.elements)) % len(f.elements)
		f.setElement(next, f.Defect().Name)
	case anomalyDefect:
		if len(f.defects) == 0 {
			return
		}
		f.defect = (f.defect + delta + len(f.defects)) % len(f.defects)
	}
}

func (f AnomalyForm) Update(msg tea.Msg) (AnomalyForm, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "tab", "down":
			return f.focus((f.focused + 1) % anomalyFieldCount), nil
		case "shift+tab", "up":
			return f.focus((f.focused + anomalyFieldCount - 1) % anomalyFieldCount), nil
		case "left", "right":
			if f.focused < firstTextField {
				delta := 1
				if key.String() == "left" {
					delta = -1
				}
				f.cycle(delta)
				return f, nil
			}
		}
	}
	if f.focused < firstTextField {
		return f, nil
	}
	var cmd tea.Cmd
	*f.input(f.focused), cmd = f.input(f.focused).Update(msg)
	return f, cmd
}

func (f AnomalyForm) focus(field anomalyField) AnomalyForm {
	for i := range f.inputs {
		if anomalyField(i)+firstTextField == field {
			f.inputs[i].Focus()
		} else {
			f.inputs[i].Blur()
		}
	}
	f.focused = field
	return f
}

// PhotoPath is the image path typed in the form, empty when none.
func (f AnomalyForm) PhotoPath() string {
	return strings.TrimSpace(f.input(anomalyPhoto).Value())
}

// Input converts the form into an AnomalyInput. A typed photo path must be loaded into
// the form before calling it. Problems the user can fix come back as FieldErrors.
func (f AnomalyForm) Input() (trip.AnomalyInput, error) {
	in := trip.AnomalyInput{
		Element: f.Element(),
		Defect:  f.Defect().Name,
		PK:      strings.TrimSpace(f.input(anomalyPK).Value()),
		Notes:   strings.TrimSpace(f.input(anomalyNotes).Value()),
		Photo:   f.photo,
	}

	lat := strings.TrimSpace(f.input(anomalyLat).Value())
	lng := strings.TrimSpace(f.input(anomalyLng).Value())
	if lat != "" || lng != "" {
		la, errLat := strconv.ParseFloat(lat, 64)
		ln, errLng := strconv.ParseFloat(lng, 64)
		if errLat != nil || errLng != nil {
			return in, trip.FieldErrors{trip.FieldLocation: "Introduzca latitud y longitud numéricas."}
		}
		in.Location = &trip.Location{Lat: la, Lng: ln}
	}
	return in, nil
}

// HandleAnomalyFormKey handles keys while the anomaly modal is open.
func HandleAnomalyFormKey(m Model, msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.anomalyForm == nil {
		m.actionMode = ActionModeNone
		return m, nil
	}
	if msg.String() == "esc" {
		m = m.stopPhotoLoad()
		m.anomalyForm = nil
		m.actionMode = ActionModeNone
		return m, nil
	}
	if m.photoLoading {
		return m, nil
	}
	if msg.String() == "enter" {
		if m.actionInProgress {
			return m, nil
		}
		if path := m.anomalyForm.PhotoPath(); path != "" {
			return m.startPhotoLoad(path)
		}
		return m.submitAnomalyForm(), nil
	}
	form, cmd := m.anomalyForm.Update(msg)
	m.anomalyForm = &form
	return m, cmd
}

func (m Model) submitAnomalyForm() Model {
	form := *m.anomalyForm
	if m.flow == nil {
		m.anomalyForm = nil
		m.actionMode = ActionModeNone
		return m
	}
	in, err := form.Input()
	if err == nil {
		var a trip.Anomaly
		if form.editID != "" {
			a, err = m.flow.UpdateAnomaly(form.editID, in)
		} else {
			a, err = m.flow.AddAnomaly(in)
		}
		if err == nil {
			m.anomalyForm = nil
			m.actionMode = ActionModeNone
			m.anomalyCursor = anomalyIndex(m.flow.Draft().Anomalies, a.ID)
			return m
		}
	}
	if fe, ok := trip.AsFieldErrors(err); ok {
		form.errors = fe
		m.anomalyForm = &form
		return m
	}
	if errors.Is(err, wizard.ErrAnomalyNotFound) || errors.Is(err, wizard.ErrWrongStep) || errors.Is(err, wizard.ErrClosed) {
		m.anomalyForm = nil
		m.actionMode = ActionModeNone
	}
	m.actionOutput = &ActionOutput{Message: err.Error(), IsError: true}
	return m
}

func anomalyIndex(list trip.Anomalies, id string) int {
	for i, a := range list {
		if a.ID == id {
			return i
		}
	}
	return 0
}

// RenderAnomalyFormModal renders the anomaly add/edit modal
func RenderAnomalyFormModal(m Model, form AnomalyForm) string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("69"))
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	focusedLabelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("69")).Bold(true)
	mutedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	errorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	title := "Añadir anomalía"
	if form.editID != "" {
		title = "Editar anomalía"
	}

	label := func(field anomalyField, text string) string {
		if form.focused == field {
			return focusedLabelStyle.Render(text)
		}
		return labelStyle.Render(text)
	}
	fieldError := func(key string) []string {
		if msg, bad := form.errors[key]; bad {
			return []string{errorStyle.Render("⚠ " + msg)}
		}
		return nil
	}

	lines := []string{titleStyle.Render(title), ""}

	element := form.Element()
	if element == "" {
		element = mutedStyle.Render("(seleccione un elemento)")
	}
	lines = append(lines, label(anomalyElement, "Elemento"), "‹ "+element+" ›")
	lines = append(lines, fieldError(trip.FieldElement)...)
	lines = append(lines, "")

	defect := form.Defect()
	defectText := mutedStyle.Render("(seleccione un defecto)")
	if defect.Name != "" {
		defectText = defect.Name + "  " + severityStyle(defect.Severity).Render(string(defect.Severity))
	}
	lines = append(lines, label(anomalyDefect, "Defecto"), "‹ "+defectText+" ›")
	lines = append(lines, fieldError(trip.FieldDefect)...)
	lines = append(lines, "")

	lines = append(lines, label(anomalyPK, "PK"), form.input(anomalyPK).View(), "")
	lines = append(lines, label(anomalyNotes, "Observaciones"), form.input(anomalyNotes).View(), "")

	photoLabel := "Fotografía"
	if form.photo != "" {
		photoLabel += mutedStyle.Render(" (ya adjunta; indique otra ruta para reemplazarla)")
	}
	lines = append(lines, label(anomalyPhoto, photoLabel), form.input(anomalyPhoto).View())
	lines = append(lines, fieldError(trip.FieldPhoto)...)
	lines = append(lines, "")

	lines = append(lines,
		label(anomalyLat, "Ubicación"),
		form.input(anomalyLat).View(),
		form.input(anomalyLng).View(),
	)
	lines = append(lines, fieldError(trip.FieldLocation)...)
	lines = append(lines, "")

	if msg, bad := form.errors[""]; bad {
		lines = append(lines, errorStyle.Render("⚠ "+msg), "")
	}
	lines = append(lines, helpStyle.Render("Tab: siguiente campo • ←/→: cambiar selección • Enter: guardar • Esc: cerrar"))

	modalWidth := form.width
	if m.windowWidth > 0 && m.windowWidth < modalWidth+4 {
		modalWidth = m.windowWidth - 4
	}
	modalStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("69")).
		Padding(1, 2).
		Width(modalWidth)
	return modalStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func formatLocation(l *trip.Location) string {
	if l == nil {
		return ""
	}
	return fmt.Sprintf("%.5f, %.5f", l.Lat, l.Lng)
}
