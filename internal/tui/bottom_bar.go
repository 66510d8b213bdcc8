package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jbonatakis/cabinlog/internal/wizard"
)

func RenderBottomBar(model Model) string {
	actions := actionHints(model)
	left := strings.Join(actions, " ")

	if model.actionInProgress {
		left = fmt.Sprintf("%s | %s %s", left, model.spinner.View(), model.actionName)
	}

	right := fmt.Sprintf("viajes:%d", len(model.trips()))
	if model.viewMode == ViewModeWizard && model.flow != nil {
		right = fmt.Sprintf("paso %d/3", int(model.flow.Step()))
	}

	contentWidth := model.windowWidth
	padding := 1
	if contentWidth > 0 {
		contentWidth = contentWidth - padding*2
		if contentWidth < 0 {
			contentWidth = 0
		}
	}
	bar := layoutBar(left, right, contentWidth)

	style := lipgloss.NewStyle().Reverse(true).Padding(0, padding)
	return style.Render(bar)
}

func actionHints(model Model) []string {
	if model.photoLoading {
		return []string{"[esc]cerrar", "[ctrl+c]salir"}
	}
	if model.actionInProgress {
		return []string{"[ctrl+c]salir"}
	}
	switch model.actionMode {
	case ActionModeConfirmDelete:
		return []string{"[y]sí", "[n]no"}
	case ActionModeAnomalyForm:
		return []string{"[tab]campo", "[←/→]elegir", "[enter]guardar", "[esc]cerrar"}
	}

	switch model.viewMode {
	case ViewModeWizard:
		if model.flow == nil {
			return []string{"[esc]cancelar"}
		}
		switch model.flow.Step() {
		case wizard.StepDetails:
			return []string{"[tab]campo", "[enter]siguiente", "[esc]cancelar"}
		case wizard.StepAnomalies:
			actions := []string{"[a]ñadir", "[e]ditar", "[x]borrar", "[n]siguiente", "[b]atrás", "[esc]cancelar"}
			if len(model.flow.Draft().Anomalies) == 0 {
				actions = removeAction(actions, "[e]ditar")
				actions = removeAction(actions, "[x]borrar")
			}
			return actions
		default:
			return []string{"[g]enerar resumen", "[s]guardar", "[b]atrás", "[esc]cancelar"}
		}
	case ViewModeDetail:
		return []string{"[a]ñadir anomalía", "[r]informe", "[↑/↓]desplazar", "[esc]volver"}
	}

	actions := []string{"[n]uevo", "[enter]abrir", "[d]borrar", "[q]salir"}
	if len(model.trips()) == 0 {
		actions = removeAction(actions, "[enter]abrir")
		actions = removeAction(actions, "[d]borrar")
	}
	return actions
}

func removeAction(actions []string, remove string) []string {
	filtered := make([]string, 0, len(actions))
	for _, action := range actions {
		if action == remove {
			continue
		}
		filtered = append(filtered, action)
	}
	return filtered
}

func layoutBar(left string, right string, width int) string {
	if width <= 0 {
		return left + " " + right
	}
	leftWidth := lipgloss.Width(left)
	rightWidth := lipgloss.Width(right)
	gap := width - leftWidth - rightWidth
	if gap < 1 {
		availableLeft := width - rightWidth - 1
		if availableLeft < 0 {
			return truncate(right, width)
		}
		left = truncate(left, availableLeft)
		leftWidth = lipgloss.Width(left)
		gap = width - leftWidth - rightWidth
		if gap < 1 {
			gap = 1
		}
	}
	bar := left + strings.Repeat(" ", gap) + right
	return truncate(bar, width)
}

func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width])
}
