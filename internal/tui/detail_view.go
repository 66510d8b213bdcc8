package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/jbonatakis/cabinlog/internal/maps"
	"github.com/jbonatakis/cabinlog/internal/report"
	"github.com/jbonatakis/cabinlog/internal/trip"
	"github.com/jbonatakis/cabinlog/internal/wizard"
)

func HandleDetailKey(m Model, msg tea.KeyMsg) (Model, tea.Cmd) {
	t, ok := m.deps.State.Trip(m.detailID)
	if !ok {
		m.viewMode = ViewModeDashboard
		m.detailID = ""
		return m, nil
	}
	switch msg.String() {
	case "esc", "q":
		m.viewMode = ViewModeDashboard
		m.detailOffset = 0
	case "up", "k":
		if m.detailOffset > 0 {
			m.detailOffset--
		}
	case "down", "j":
		if m.detailOffset < m.detailMaxOffset(t) {
			m.detailOffset++
		}
	case "pgup":
		m.detailOffset -= m.detailPageSize()
		if m.detailOffset < 0 {
			m.detailOffset = 0
		}
	case "pgdown":
		m.detailOffset += m.detailPageSize()
		if last := m.detailMaxOffset(t); m.detailOffset > last {
			m.detailOffset = last
		}
	case "a":
		m = m.openWizard(wizard.Edit(m.deps.Catalog, t, wizard.StepAnomalies), ViewModeDetail)
		return m.openAnomalyForm(NewAnomalyForm(m.deps.Catalog)), nil
	case "r":
		return m.startReport(t)
	}
	return m, nil
}

func (m Model) detailPageSize() int {
	height := m.windowHeight - 5
	if height < 1 {
		return 1
	}
	return height
}

// detailMaxOffset is the last scroll position that still fills the pane.
func (m Model) detailMaxOffset(t trip.Trip) int {
	content := tripDetailContent(t, m.deps.MapsKey, paneWidth(m.windowWidth)-2)
	return maxViewportOffset(content, m.detailPageSize())
}

func RenderTripDetailView(m Model, availableHeight int) string {
	t, ok := m.deps.State.Trip(m.detailID)
	if !ok {
		return emptyDetailView("Viaje no encontrado.")
	}
	width := paneWidth(m.windowWidth)
	content := tripDetailContent(t, m.deps.MapsKey, width-2)
	return renderPane(applyViewport(content, width, availableHeight, m.detailOffset), width, availableHeight, t.Code, true)
}

func tripDetailContent(t trip.Trip, mapsKey string, width int) string {
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("69"))
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	mutedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	var b strings.Builder
	writeSectionHeader(&b, headerStyle, "Detalles del viaje")
	writeLabeledLine(&b, labelStyle, "Código", t.Code)
	writeLabeledLine(&b, labelStyle, "Línea", orDash(t.Line))
	writeLabeledLine(&b, labelStyle, "Vía", orDash(t.Track))
	writeLabeledLine(&b, labelStyle, "Fecha", report.FormatDate(t.Date))
	writeLabeledLine(&b, labelStyle, "Técnico", orDash(t.Technician))
	writeLabeledLine(&b, labelStyle, "Tramo", fmt.Sprintf("PK %s – PK %s", t.PKStart, t.PKEnd))
	b.WriteString("\n")

	writeSectionHeader(&b, headerStyle, fmt.Sprintf("Anomalías (%d)", len(t.Anomalies)))
	if len(t.Anomalies) == 0 {
		b.WriteString(mutedStyle.Render("No se registraron anomalías en este viaje.") + "\n")
	}
	for _, a := range t.Anomalies {
		b.WriteString(severityStyle(a.Level).Render(fmt.Sprintf("%-3s", a.Level)) + " " + a.Element + " · " + a.Defect + "\n")
		b.WriteString("    " + mutedStyle.Render(anomalyMeta(a)) + "\n")
		if a.Location != nil {
			if img, ok := maps.StaticImageURL(mapsKey, *a.Location); ok {
				b.WriteString("    " + labelStyle.Render("Vista satélite: ") + img + "\n")
			}
		}
	}
	b.WriteString("\n")

	writeSectionHeader(&b, headerStyle, "Mapa")
	if link, ok := maps.Link(mapsKey, maps.Points(t.Anomalies)); ok {
		b.WriteString(link + "\n")
	} else {
		b.WriteString(mutedStyle.Render(maps.UnavailableMessage) + "\n")
	}
	b.WriteString("\n")

	writeSectionHeader(&b, headerStyle, "Resumen IA")
	if strings.TrimSpace(t.AISummary) == "" {
		b.WriteString(mutedStyle.Render("Sin resumen.") + "\n")
	} else {
		b.WriteString(renderMarkdown(t.AISummary, width))
	}
	return strings.TrimRight(b.String(), "\n")
}

// renderMarkdown renders summary text for the terminal, falling back to the raw text.
func renderMarkdown(text string, width int) string {
	if width < 20 {
		width = 80
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return text + "\n"
	}
	out, err := renderer.Render(text)
	if err != nil {
		return text + "\n"
	}
	return out
}

func emptyDetailView(message string) string {
	style := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("240"))
	return style.Render(message)
}

func writeSectionHeader(b *strings.Builder, style lipgloss.Style, title string) {
	b.WriteString(style.Render(title))
	b.WriteString("\n")
}

func writeLabeledLine(b *strings.Builder, labelStyle lipgloss.Style, label string, value string) {
	b.WriteString(labelStyle.Render(label + ": "))
	b.WriteString(value)
	b.WriteString("\n")
}

// applyViewport shows the window of content starting at offset, clamped to the end.
func applyViewport(content string, width, height, offset int) string {
	if height <= 0 || width <= 0 {
		return content
	}
	view := viewport.New(width, height)
	view.SetContent(content)
	if maxOffset := maxViewportOffset(content, height); offset > maxOffset {
		offset = maxOffset
	}
	if offset < 0 {
		offset = 0
	}
	view.SetYOffset(offset)
	return view.View()
}

func maxViewportOffset(content string, height int) int {
	n := len(strings.Split(content, "\n")) - height
	if n < 0 {
		return 0
	}
	return n
}
