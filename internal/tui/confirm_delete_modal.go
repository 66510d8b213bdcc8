package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// HandleConfirmDeleteKey handles key presses in confirm-delete mode
func HandleConfirmDeleteKey(m Model, key string) (Model, tea.Cmd) {
	switch key {
	case "esc", "n", "N":
		m.actionMode = ActionModeNone
		m.pendingDeleteID = ""
		return m, nil
	case "y", "Y", "enter":
		id := m.pendingDeleteID
		m.actionMode = ActionModeNone
		m.pendingDeleteID = ""
		if m.deps.State == nil || id == "" {
			return m, nil
		}
		if _, err := m.deps.State.DeleteTrip(context.Background(), id); err != nil {
			m.actionOutput = &ActionOutput{Message: storageNotice(err), IsError: true}
		}
		if m.detailID == id {
			m.detailID = ""
			m.viewMode = ViewModeDashboard
		}
		return m.clampSelection(), nil
	}
	return m, nil
}

// RenderConfirmDeleteModal renders the confirmation modal for deleting a trip
func RenderConfirmDeleteModal(m Model) string {
	if m.deps.State == nil {
		return ""
	}
	t, ok := m.deps.State.Trip(m.pendingDeleteID)
	if !ok {
		return ""
	}

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("220"))
	textStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	buttonStyle := lipgloss.NewStyle().
		Padding(0, 2).
		Margin(0, 1).
		Background(lipgloss.Color("240")).
		Foreground(lipgloss.Color("15"))
	yesButtonStyle := buttonStyle.Background(lipgloss.Color("196")).Bold(true)
	noButtonStyle := buttonStyle.Bold(true)

	title := titleStyle.Render("⚠ Eliminar viaje")
	message := textStyle.Render(fmt.Sprintf("¿Seguro que desea eliminar el viaje %s? Esta acción no se puede deshacer.", t.Code))
	buttons := lipgloss.JoinHorizontal(lipgloss.Left, yesButtonStyle.Render("[ Sí ]"), noButtonStyle.Render("[ No ]"))
	helpText := helpStyle.Render("Y/Enter: Sí • N/ESC: No")

	modalWidth := 60
	if m.windowWidth > 0 && m.windowWidth < modalWidth+4 {
		modalWidth = m.windowWidth - 4
	}

	modalStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("220")).
		Padding(1, 2).
		Width(modalWidth)

	return modalStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, "", message, "", buttons, "", helpText))
}

// storageNotice is the non-blocking message for a change kept in memory but not written.
func storageNotice(err error) string {
	return fmt.Sprintf("El cambio se mantiene en esta sesión pero no se pudo guardar: %v", err)
}
