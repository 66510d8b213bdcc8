package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/jbonatakis/cabinlog/internal/trip"
	"github.com/jbonatakis/cabinlog/internal/wizard"
)

// openWizard switches to the wizard for flow. Cancel or finalize returns to back.
func (m Model) openWizard(flow *wizard.Flow, back ViewMode) Model {
	m.flow = flow
	m.flowReturn = back
	m.viewMode = ViewModeWizard
	m.anomalyCursor = 0
	m.anomalyForm = nil
	m.detailsForm = NewDetailsForm(flow.Draft().Details())
	return m
}

func (m Model) closeWizard() Model {
	m = cancelRunningAction(m)
	m.flow = nil
	m.anomalyForm = nil
	m.actionMode = ActionModeNone
	m.viewMode = m.flowReturn
	if m.viewMode == ViewModeDetail && m.deps.State != nil {
		if _, ok := m.deps.State.Trip(m.detailID); !ok {
			m.viewMode = ViewModeDashboard
		}
	}
	return m
}

func HandleWizardKey(m Model, msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.flow == nil || m.flow.Closed() {
		return m.closeWizard(), nil
	}
	if msg.String() == "esc" {
		m.flow.Cancel()
		return m.closeWizard(), nil
	}

	switch m.flow.Step() {
	case wizard.StepDetails:
		return handleDetailsStepKey(m, msg)
	case wizard.StepAnomalies:
		return handleAnomaliesStepKey(m, msg)
	default:
		return handleSummaryStepKey(m, msg)
	}
}

func handleDetailsStepKey(m Model, msg tea.KeyMsg) (Model, tea.Cmd) {
	if msg.String() != "enter" {
		var cmd tea.Cmd
		m.detailsForm, cmd = m.detailsForm.Update(msg)
		return m, cmd
	}
	if err := m.flow.SetDetails(m.detailsForm.Values()); err != nil {
		m.actionOutput = &ActionOutput{Message: err.Error(), IsError: true}
		return m, nil
	}
	if err := m.flow.Next(); err != nil {
		if fe, ok := trip.AsFieldErrors(err); ok {
			m.detailsForm.SetErrors(fe)
			return m, nil
		}
		m.actionOutput = &ActionOutput{Message: err.Error(), IsError: true}
		return m, nil
	}
	m.detailsForm.SetErrors(nil)
	return m, nil
}

func handleAnomaliesStepKey(m Model, msg tea.KeyMsg) (Model, tea.Cmd) {
	anomalies := m.flow.Draft().Anomalies
	switch msg.String() {
	case "up", "k":
		if m.anomalyCursor > 0 {
			m.anomalyCursor--
		}
	case "down", "j":
		if m.anomalyCursor < len(anomalies)-1 {
			m.anomalyCursor++
		}
	case "a":
		return m.openAnomalyForm(NewAnomalyForm(m.flow.Catalog())), nil
	case "e":
		if m.anomalyCursor < len(anomalies) {
			return m.openAnomalyForm(EditAnomalyForm(m.flow.Catalog(), anomalies[m.anomalyCursor])), nil
		}
	case "x":
		if m.anomalyCursor < len(anomalies) {
			if _, err := m.flow.RemoveAnomaly(anomalies[m.anomalyCursor].ID); err != nil {
				m.actionOutput = &ActionOutput{Message: err.Error(), IsError: true}
			}
			if m.anomalyCursor >= len(anomalies)-1 && m.anomalyCursor > 0 {
				m.anomalyCursor--
			}
		}
	case "n", "enter":
		if err := m.flow.Next(); err != nil {
			m.actionOutput = &ActionOutput{Message: err.Error(), IsError: true}
		}
	case "b":
		return m.wizardBack(), nil
	}
	return m, nil
}

func handleSummaryStepKey(m Model, msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "g":
		return m.startSummary()
	case "s":
		if m.actionInProgress {
			return m, nil
		}
		return m.finalizeWizard(), nil
	case "b":
		if m.actionInProgress {
			return m, nil
		}
		return m.wizardBack(), nil
	}
	return m, nil
}

func (m Model) openAnomalyForm(form AnomalyForm) Model {
	form.SetWidth(m.windowWidth)
	m.anomalyForm = &form
	m.actionMode = ActionModeAnomalyForm
	return m
}

func (m Model) wizardBack() Model {
	if err := m.flow.Back(); err != nil {
		m.actionOutput = &ActionOutput{Message: err.Error(), IsError: true}
		return m
	}
	if m.flow.Step() == wizard.StepDetails {
		m.detailsForm = NewDetailsForm(m.flow.Draft().Details())
	}
	return m
}

func (m Model) finalizeWizard() Model {
	saved, err := m.flow.Finalize(context.Background(), m.deps.State)
	if err != nil && errors.Is(err, wizard.ErrWrongStep) {
		m.actionOutput = &ActionOutput{Message: err.Error(), IsError: true}
		return m
	}
	back := m.flowReturn
	m = m.closeWizard()
	if saved.ID != "" {
		m = m.selectTrip(saved.ID)
		if back == ViewModeDetail {
			m.detailID = saved.ID
			m.viewMode = ViewModeDetail
		}
	}
	if err != nil {
		m.actionOutput = &ActionOutput{Message: storageNotice(err), IsError: true}
		return m
	}
	m.actionOutput = &ActionOutput{Message: "Viaje guardado: " + saved.Code}
	return m
}

func RenderWizardView(m Model, availableHeight int) string {
	if m.flow == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(renderStepIndicator(m.flow.Step()))
	b.WriteString("\n\n")

	switch m.flow.Step() {
	case wizard.StepDetails:
		b.WriteString(m.detailsForm.View())
	case wizard.StepAnomalies:
		b.WriteString(renderAnomalyStep(m))
	default:
		b.WriteString(renderSummaryStep(m))
	}

	title := "Nuevo viaje"
	if code := m.flow.Draft().Code; code != "" {
		title = "Editar " + code
	}
	return renderPane(strings.TrimRight(b.String(), "\n"), paneWidth(m.windowWidth), availableHeight, title, true)
}

func renderStepIndicator(current wizard.Step) string {
	activeStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("69")).Padding(0, 1)
	doneStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Padding(0, 1)
	todoStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Padding(0, 1)

	steps := []wizard.Step{wizard.StepDetails, wizard.StepAnomalies, wizard.StepSummary}
	parts := make([]string, 0, len(steps))
	for _, s := range steps {
		text := fmt.Sprintf("%d. %s", int(s), s)
		switch {
		case s == current:
			parts = append(parts, activeStyle.Render(text))
		case s < current:
			parts = append(parts, doneStyle.Render("✓ "+text))
		default:
			parts = append(parts, todoStyle.Render(text))
		}
	}
	return strings.Join(parts, " › ")
}

func renderAnomalyStep(m Model) string {
	mutedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	selectedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("69")).Bold(true)

	anomalies := m.flow.Draft().Anomalies
	if len(anomalies) == 0 {
		return mutedStyle.Render("Aún no hay anomalías. Pulse [a] para añadir una.")
	}
	var b strings.Builder
	b.WriteString(anomalyCountLine(anomalies))
	b.WriteString("\n\n")
	for i, a := range anomalies {
		cursor := "  "
		line := fmt.Sprintf("%s · %s", a.Element, a.Defect)
		if i == m.anomalyCursor {
			cursor = selectedStyle.Render("› ")
			line = selectedStyle.Render(line)
		}
		b.WriteString(cursor + severityStyle(a.Level).Render(fmt.Sprintf("%-3s", a.Level)) + " " + line + "\n")
		b.WriteString("      " + mutedStyle.Render(anomalyMeta(a)) + "\n")
	}
	return b.String()
}

func anomalyMeta(a trip.Anomaly) string {
	parts := []string{"PK " + orDash(a.PK)}
	if a.Location != nil {
		parts = append(parts, formatLocation(a.Location))
	}
	if a.Photo != "" {
		parts = append(parts, "📷")
	}
	if a.Notes != "" {
		parts = append(parts, a.Notes)
	}
	return strings.Join(parts, " · ")
}

func renderSummaryStep(m Model) string {
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("69"))
	mutedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	draft := m.flow.Draft()
	var b strings.Builder
	writeSectionHeader(&b, headerStyle, "Viaje")
	fmt.Fprintf(&b, "Línea %s · Vía %s · PK %s–%s\n", orDash(draft.Line), orDash(draft.Track), draft.PKStart, draft.PKEnd)
	b.WriteString(anomalyCountLine(draft.Anomalies))
	b.WriteString("\n\n")

	writeSectionHeader(&b, headerStyle, "Resumen IA")
	switch {
	case m.actionInProgress:
		b.WriteString(m.spinner.View() + " " + m.actionName + "\n")
	case draft.AISummary == "":
		b.WriteString(mutedStyle.Render("Pulse [g] para generar un resumen de las anomalías (opcional).") + "\n")
	default:
		b.WriteString(renderMarkdown(draft.AISummary, paneWidth(m.windowWidth)-2))
	}
	return b.String()
}
