package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/jbonatakis/cabinlog/internal/catalog"
	"github.com/jbonatakis/cabinlog/internal/report"
	"github.com/jbonatakis/cabinlog/internal/trip"
	"github.com/jbonatakis/cabinlog/internal/wizard"
)

const emptyDashboardMessage = "No hay viajes registrados. Pulse [n] para crear el primero."

func HandleDashboardKey(m Model, msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "up", "k":
		if m.selected > 0 {
			m.selected--
		}
	case "down", "j":
		if m.selected < len(m.trips())-1 {
			m.selected++
		}
	case "n":
		return m.openWizard(wizard.New(m.deps.Catalog, m.deps.Now()), ViewModeDashboard), nil
	case "enter":
		if t, ok := m.selectedTrip(); ok {
			m.viewMode = ViewModeDetail
			m.detailID = t.ID
			m.detailOffset = 0
		}
	case "d":
		if t, ok := m.selectedTrip(); ok {
			m.pendingDeleteID = t.ID
			m.actionMode = ActionModeConfirmDelete
		}
	}
	return m, nil
}

func RenderDashboardView(m Model, availableHeight int) string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("69"))
	mutedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	width := paneWidth(m.windowWidth)
	var b strings.Builder
	b.WriteString(titleStyle.Render("Viajes en cabina"))
	b.WriteString("\n\n")

	trips := m.trips()
	if len(trips) == 0 {
		b.WriteString(mutedStyle.Render(emptyDashboardMessage))
		return renderPane(b.String(), width, availableHeight, "cabinlog", true)
	}

	for i, t := range trips {
		b.WriteString(renderTripCard(t, i == m.selected, width))
		b.WriteString("\n")
	}
	return renderPane(strings.TrimRight(b.String(), "\n"), width, availableHeight, "cabinlog", true)
}

func renderTripCard(t trip.Trip, selected bool, width int) string {
	codeStyle := lipgloss.NewStyle().Bold(true)
	mutedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	borderColor := lipgloss.Color("240")
	if selected {
		borderColor = lipgloss.Color("69")
		codeStyle = codeStyle.Foreground(lipgloss.Color("69"))
	}

	line1 := codeStyle.Render(t.Code)
	line2 := fmt.Sprintf("Línea %s · Vía %s · %s", orDash(t.Line), orDash(t.Track), report.FormatDate(t.Date))
	line3 := mutedStyle.Render(fmt.Sprintf("Técnico: %s · PK %s–%s", orDash(t.Technician), t.PKStart, t.PKEnd))
	line4 := anomalyCountLine(t.Anomalies)

	style := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(borderColor).
		Padding(0, 1)
	if width > 6 {
		style = style.Width(width - 4)
	}
	return style.Render(strings.Join([]string{line1, line2, line3, line4}, "\n"))
}

func anomalyCountLine(list trip.Anomalies) string {
	if len(list) == 0 {
		return lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Render("Sin anomalías")
	}
	counts := list.Counts()
	parts := []string{fmt.Sprintf("%d anomalías", len(list))}
	for _, sev := range catalog.Severities() {
		if n := counts[sev]; n > 0 {
			parts = append(parts, severityStyle(sev).Render(fmt.Sprintf("%d %s", n, sev)))
		}
	}
	return strings.Join(parts, "  ")
}

func severityStyle(s catalog.Severity) lipgloss.Style {
	style := lipgloss.NewStyle().Bold(true)
	switch s {
	case catalog.SeverityIAL:
		return style.Foreground(lipgloss.Color("196"))
	case catalog.SeverityIL:
		return style.Foreground(lipgloss.Color("214"))
	case catalog.SeverityAL:
		return style.Foreground(lipgloss.Color("220"))
	}
	return style.Foreground(lipgloss.Color("240"))
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "—"
	}
	return s
}
