package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/jbonatakis/cabinlog/internal/photo"
	"github.com/jbonatakis/cabinlog/internal/report"
	"github.com/jbonatakis/cabinlog/internal/trip"
	"github.com/jbonatakis/cabinlog/internal/wizard"
	"go.uber.org/zap"
)

// ActionOutput represents the result of an action to display to the user
type ActionOutput struct {
	Message string
	IsError bool
}

// RenderActionOutput renders action output or error messages
func RenderActionOutput(output *ActionOutput, width int) string {
	if output == nil {
		return ""
	}

	style := lipgloss.NewStyle().
		Padding(0, 1).
		Border(lipgloss.RoundedBorder())

	if output.IsError {
		style = style.BorderForeground(lipgloss.Color("196"))
	} else {
		style = style.BorderForeground(lipgloss.Color("46"))
	}

	if width > 0 {
		style = style.Width(width - 4)
	}

	return style.Render(output.Message)
}

// summaryDoneMsg carries the flow that asked for the summary; results for any
// other flow are dropped.
type summaryDoneMsg struct {
	Flow *wizard.Flow
	Text string
}

type photoLoadedMsg struct {
	Seq int
	URI string
	Err error
}

type reportDoneMsg struct {
	Path    string
	Err     error
	OpenErr error
}

func summarizeCmd(ctx context.Context, s Summarizer, flow *wizard.Flow) tea.Cmd {
	anomalies := flow.Draft().Anomalies
	return func() tea.Msg {
		return summaryDoneMsg{Flow: flow, Text: s.Summarize(ctx, anomalies)}
	}
}

func loadPhotoCmd(seq int, path string, opts photo.Options) tea.Cmd {
	return func() tea.Msg {
		uri, err := photo.Load(path, opts)
		return photoLoadedMsg{Seq: seq, URI: uri, Err: err}
	}
}

func reportCmd(r Reporter, open func(string) error, t trip.Trip) tea.Cmd {
	return func() tea.Msg {
		path, err := r.Publish(t)
		if err != nil {
			return reportDoneMsg{Err: err}
		}
		var openErr error
		if open != nil {
			openErr = open(path)
		}
		return reportDoneMsg{Path: path, OpenErr: openErr}
	}
}

// startSummary kicks off AI summary generation for the wizard draft. A request
// already in flight wins; the key is ignored until it finishes.
func (m Model) startSummary() (Model, tea.Cmd) {
	if m.actionInProgress || m.flow == nil {
		return m, nil
	}
	if m.deps.Summarizer == nil {
		m.actionOutput = &ActionOutput{Message: "El servicio de resumen IA no está disponible.", IsError: true}
		return m, nil
	}
	ctx, cancel := context.WithCancel(context.Background())
	m.actionInProgress = true
	m.actionName = "Generando resumen IA..."
	m.actionCancel = cancel
	return m, tea.Batch(m.spinner.Tick, summarizeCmd(ctx, m.deps.Summarizer, m.flow))
}

func (m Model) applySummary(msg summaryDoneMsg) Model {
	if msg.Flow == nil || msg.Flow != m.flow {
		m.deps.Logger.Debug("dropping ai summary for a closed wizard")
		return m
	}
	m = cancelRunningAction(m)
	if m.flow.Closed() || m.flow.Step() != wizard.StepSummary {
		m.deps.Logger.Debug("dropping ai summary outside the summary step")
		return m
	}
	if err := m.flow.SetSummary(msg.Text); err != nil {
		m.actionOutput = &ActionOutput{Message: err.Error(), IsError: true}
	}
	return m
}

// startPhotoLoad reads the image at path off the update loop. The anomaly form
// ignores input until the result arrives.
func (m Model) startPhotoLoad(path string) (Model, tea.Cmd) {
	m.photoSeq++
	m.photoLoading = true
	m.actionInProgress = true
	m.actionName = "Cargando fotografía..."
	return m, tea.Batch(m.spinner.Tick, loadPhotoCmd(m.photoSeq, path, m.deps.Photo))
}

// stopPhotoLoad abandons a pending load; its result will be dropped.
func (m Model) stopPhotoLoad() Model {
	if !m.photoLoading {
		return m
	}
	m.photoLoading = false
	m.photoSeq++
	return cancelRunningAction(m)
}

func (m Model) applyPhoto(msg photoLoadedMsg) Model {
	if !m.photoLoading || msg.Seq != m.photoSeq || m.anomalyForm == nil {
		m.deps.Logger.Debug("dropping photo for a closed anomaly form")
		return m
	}
	m.photoLoading = false
	m = cancelRunningAction(m)

	form := *m.anomalyForm
	if msg.Err != nil {
		m.deps.Logger.Warn("photo load failed", zap.Error(msg.Err))
		text := "No se pudo leer la fotografía."
		if errors.Is(msg.Err, photo.ErrNotImage) {
			text = "El archivo seleccionado no es una imagen."
		}
		form.errors = trip.FieldErrors{trip.FieldPhoto: text}
		m.anomalyForm = &form
		return m
	}
	form.photo = msg.URI
	form.input(anomalyPhoto).SetValue("")
	m.anomalyForm = &form
	return m.submitAnomalyForm()
}

func (m Model) startReport(t trip.Trip) (Model, tea.Cmd) {
	if m.actionInProgress {
		return m, nil
	}
	if m.deps.Reporter == nil {
		m.actionOutput = &ActionOutput{Message: "La generación de informes no está disponible.", IsError: true}
		return m, nil
	}
	m.actionInProgress = true
	m.actionName = "Generando informe..."
	return m, tea.Batch(m.spinner.Tick, reportCmd(m.deps.Reporter, m.deps.OpenReport, t))
}

func (m Model) applyReport(msg reportDoneMsg) Model {
	m = cancelRunningAction(m)
	switch {
	case msg.Err != nil:
		m.deps.Logger.Warn("report generation failed", zap.Error(msg.Err))
		m.actionOutput = &ActionOutput{Message: fmt.Sprintf("No se pudo generar el informe: %v", msg.Err), IsError: true}
	case msg.OpenErr != nil:
		m.deps.Logger.Warn("report open failed", zap.String("path", msg.Path), zap.Error(msg.OpenErr))
		m.actionOutput = &ActionOutput{Message: report.OpenFailureMessage(msg.Path), IsError: true}
	default:
		m.actionOutput = &ActionOutput{Message: "Informe generado: " + msg.Path}
	}
	return m
}
