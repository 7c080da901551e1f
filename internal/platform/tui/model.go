package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/skyrunner/internal/analyzer"
	"github.com/vovakirdan/skyrunner/internal/config"
	"github.com/vovakirdan/skyrunner/internal/core"
	"github.com/vovakirdan/skyrunner/internal/dda"
	"github.com/vovakirdan/skyrunner/internal/difficulty"
)

// cycleDoneMsg carries a planned adjustment back from the background
// plan goroutine. The profile is applied from Update so that all game
// state mutation stays on the goroutine running Step.
type cycleDoneMsg struct {
	profile *difficulty.Profile
	symptom analyzer.Symptom
	err     error
}

// Model is the Bubble Tea model for a play session: the runner on the
// left, the live adaptation panel on the right.
type Model struct {
	session *Session
	screen  *core.Screen
	config  core.RuntimeConfig
	keys    *KeyMapper
	frame   core.InputFrame
	state   core.GameState
	spin    spinner.Model

	symptom      analyzer.Symptom
	hasSymptom   bool
	cycleRunning bool
	enabled      bool
	quitting     bool
}

// NewModel creates the play model around a wired session. The runtime
// config's width is the full terminal width; the game view gets what is
// left after the panel.
func NewModel(session *Session, cfg core.RuntimeConfig) Model {
	gameW := gameWidth(cfg.ScreenW)
	session.Runner.Resize(gameW, cfg.ScreenH)

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		session: session,
		screen:  core.NewScreen(gameW, cfg.ScreenH),
		config:  cfg,
		keys:    NewKeyMapper(),
		frame:   core.NewInputFrame(),
		spin:    sp,
		enabled: true,
	}
}

func gameWidth(total int) int {
	w := total - PanelWidth
	if w < 20 {
		w = 20
	}
	return w
}

// Init starts the tick loop and the spinner.
func (m Model) Init() tea.Cmd {
	return tea.Batch(tickCmd(m.config.TickRate), m.spin.Tick)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		gameW := gameWidth(msg.Width)
		m.screen.Resize(gameW, msg.Height)
		m.session.Runner.Resize(gameW, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick()

	case cycleDoneMsg:
		return m.handleCycleDone(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.keys.MapKeyToFrame(msg, &m.frame) {
		m.quitting = true
		m.session.Close()
		return m, tea.Quit
	}
	return m, nil
}

// handleTick advances the simulation by one tick and kicks off an
// adaptation cycle when the trigger condition holds.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.frame.Has(core.ActionReset) {
		m.session.Manager.ResetSession()
		m.session.Runner.ResetSession()
		m.hasSymptom = false
	}

	m.state = m.session.Runner.Step(m.frame)
	m.frame.Clear()

	if m.state.Quit {
		m.quitting = true
		m.session.Close()
		return m, tea.Quit
	}

	cmds := []tea.Cmd{tickCmd(m.config.TickRate)}

	// Cycles run between runs: the avatar is dead and waiting to respawn.
	if m.state.Dead && !m.cycleRunning && m.session.Manager.ShouldTrigger() {
		m.cycleRunning = true
		m.symptom = m.session.Analyzer.Classify(m.session.Monitor.Snapshot())
		m.hasSymptom = true
		cmds = append(cmds, runCycleCmd(m.session.Manager))
	}

	return m, tea.Batch(cmds...)
}

// handleCycleDone commits a planned adjustment on the UI goroutine, the
// same one that runs Step, so the effector never races the simulation.
func (m Model) handleCycleDone(msg cycleDoneMsg) (tea.Model, tea.Cmd) {
	m.cycleRunning = false
	if msg.err != nil || msg.profile == nil {
		// Provider trouble already degraded to "no change" inside the
		// engine; the session keeps playing either way.
		return m, nil
	}
	m.symptom = msg.symptom
	m.hasSymptom = true
	m.session.Manager.Commit(msg.profile, msg.symptom)
	return m, nil
}

// runCycleCmd plans one adaptation cycle off the UI goroutine. The
// returned profile is committed by handleCycleDone.
func runCycleCmd(mgr *dda.Manager) tea.Cmd {
	return func() tea.Msg {
		profile, symptom, err := mgr.PlanCycle(context.Background())
		return cycleDoneMsg{profile: profile, symptom: symptom, err: err}
	}
}

// View renders the game next to the adaptation panel.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.session.Runner.Render(m.screen)
	gameView := RenderScreen(m.screen)

	panel := RenderPanel(PanelState{
		Symptom:     m.symptom,
		HasSymptom:  m.hasSymptom,
		Profile:     m.session.Engine.CurrentProfile(),
		Deaths:      m.session.Manager.Deaths(),
		Adjustments: m.session.Manager.Adjustments(),
		InFlight:    m.session.Engine.InFlight(),
		Spinner:     m.spin.View(),
		Enabled:     m.enabled,
	}, m.config.ScreenH)

	return lipgloss.JoinHorizontal(lipgloss.Top, gameView, panel)
}

// Run starts the Bubble Tea program for a local terminal session.
func Run(cfg *config.Config, runtime core.RuntimeConfig, session *Session) error {
	model := NewModel(session, runtime)
	model.enabled = cfg.DDA.Enabled

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
