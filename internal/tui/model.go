package tui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/jbonatakis/cabinlog/internal/app"
	"github.com/jbonatakis/cabinlog/internal/catalog"
	"github.com/jbonatakis/cabinlog/internal/photo"
	"github.com/jbonatakis/cabinlog/internal/trip"
	"github.com/jbonatakis/cabinlog/internal/wizard"
	"go.uber.org/zap"
)

type ViewMode int

const (
	ViewModeDashboard ViewMode = iota
	ViewModeWizard
	ViewModeDetail
)

type ActionMode int

const (
	ActionModeNone ActionMode = iota
	ActionModeConfirmDelete
	ActionModeAnomalyForm
)

// Summarizer produces the AI summary text for a list of anomalies. It never fails.
type Summarizer interface {
	Summarize(ctx context.Context, anomalies []trip.Anomaly) string
}

// Reporter writes a trip report and returns its path.
type Reporter interface {
	Publish(t trip.Trip) (string, error)
}

// Deps are the collaborators the UI drives.
type Deps struct {
	State      *app.State
	Catalog    catalog.Catalog
	Summarizer Summarizer
	Reporter   Reporter
	// OpenReport hands a report file to the browser.
	OpenReport func(path string) error
	MapsKey    string
	Photo      photo.Options
	Logger     *zap.Logger
	Now        func() time.Time
}

type Model struct {
	deps Deps

	viewMode   ViewMode
	actionMode ActionMode

	selected int
	detailID string
	// detailOffset is the scroll position of the trip detail view.
	detailOffset int

	flow          *wizard.Flow
	flowReturn    ViewMode
	detailsForm   DetailsForm
	anomalyForm   *AnomalyForm
	anomalyCursor int

	pendingDeleteID string

	actionInProgress bool
	actionName       string
	actionCancel     context.CancelFunc
	actionOutput     *ActionOutput
	spinner          spinner.Model

	// photoSeq identifies the pending photo load; results with another value are stale.
	photoSeq     int
	photoLoading bool

	windowWidth  int
	windowHeight int
}

func NewModel(deps Deps) Model {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	sp := spinner.New()
	sp.Spinner = spinner.Line
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("69"))
	return Model{
		deps:     deps,
		viewMode: ViewModeDashboard,
		spinner:  sp,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.windowWidth = msg.Width
		m.windowHeight = msg.Height
		if m.anomalyForm != nil {
			m.anomalyForm.SetWidth(msg.Width)
		}
		return m, nil
	case spinner.TickMsg:
		if !m.actionInProgress {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case summaryDoneMsg:
		return m.applySummary(msg), nil
	case reportDoneMsg:
		return m.applyReport(msg), nil
	case photoLoadedMsg:
		return m.applyPhoto(msg), nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m = cancelRunningAction(m)
			return m, tea.Quit
		}
		if m.actionOutput != nil && !m.actionInProgress {
			m.actionOutput = nil
		}

		switch m.actionMode {
		case ActionModeConfirmDelete:
			return HandleConfirmDeleteKey(m, msg.String())
		case ActionModeAnomalyForm:
			return HandleAnomalyFormKey(m, msg)
		}

		switch m.viewMode {
		case ViewModeWizard:
			return HandleWizardKey(m, msg)
		case ViewModeDetail:
			return HandleDetailKey(m, msg)
		default:
			return HandleDashboardKey(m, msg)
		}
	}
	return m, nil
}

func cancelRunningAction(m Model) Model {
	if m.actionCancel != nil {
		m.actionCancel()
		m.actionCancel = nil
	}
	m.actionInProgress = false
	m.actionName = ""
	return m
}

func (m Model) View() string {
	// Pane height plus its two border lines, a newline and the bottom bar stay
	// strictly below windowHeight.
	availableHeight := m.windowHeight - 5
	if availableHeight < 0 {
		availableHeight = 0
	}

	var content string
	switch m.viewMode {
	case ViewModeWizard:
		content = RenderWizardView(m, availableHeight)
	case ViewModeDetail:
		content = RenderTripDetailView(m, availableHeight)
	default:
		content = RenderDashboardView(m, availableHeight)
	}

	if m.actionOutput != nil && !m.actionInProgress {
		content = RenderActionOutput(m.actionOutput, m.windowWidth) + "\n" + content
	}

	switch m.actionMode {
	case ActionModeConfirmDelete:
		if modal := RenderConfirmDeleteModal(m); modal != "" {
			content = modal
		}
	case ActionModeAnomalyForm:
		if m.anomalyForm != nil {
			content = RenderAnomalyFormModal(m, *m.anomalyForm)
		}
	}

	if m.windowHeight > 1 {
		return content + "\n" + RenderBottomBar(m)
	}
	return content
}

func (m Model) trips() []trip.Trip {
	if m.deps.State == nil {
		return nil
	}
	return m.deps.State.Trips()
}

func (m Model) selectedTrip() (trip.Trip, bool) {
	trips := m.trips()
	if m.selected < 0 || m.selected >= len(trips) {
		return trip.Trip{}, false
	}
	return trips[m.selected], true
}

func (m Model) clampSelection() Model {
	n := len(m.trips())
	if m.selected >= n {
		m.selected = n - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
	return m
}

func (m Model) selectTrip(id string) Model {
	for i, t := range m.trips() {
		if t.ID == id {
			m.selected = i
			break
		}
	}
	return m
}

func renderPane(content string, width int, height int, title string, active bool) string {
	borderColor := lipgloss.Color("240")
	titleColor := lipgloss.Color("240")
	if active {
		borderColor = lipgloss.Color("69")
		titleColor = lipgloss.Color("69")
	}

	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Padding(0, 1)
	if width > 0 {
		style = style.Width(width)
	}
	if height > 0 {
		style = style.Height(height).MaxHeight(height + 2)
	}

	rendered := style.Render(content)
	if title == "" {
		return rendered
	}

	// Rebuild the top border so the title sits inside it. Width comes from the first
	// content line since the border line carries escape codes.
	lines := strings.Split(rendered, "\n")
	if len(lines) < 2 {
		return rendered
	}
	targetWidth := lipgloss.Width(lines[1])
	borderStyle := lipgloss.NewStyle().Foreground(borderColor)
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(titleColor)
	nMiddle := targetWidth - 5 - lipgloss.Width(title)
	if nMiddle < 0 {
		nMiddle = 0
	}
	lines[0] = borderStyle.Render("╭ ") +
		titleStyle.Render(" "+title+" ") +
		borderStyle.Render(strings.Repeat("─", nMiddle)+"╮")
	return strings.Join(lines, "\n")
}

// paneWidth is the content width of a full-width pane.
func paneWidth(total int) int {
	if total <= 0 {
		return 0
	}
	w := total - 4
	if w < 20 {
		w = 20
	}
	return w
}
