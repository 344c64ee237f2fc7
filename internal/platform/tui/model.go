package tui

import (
	"io"
	"math/rand"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/tropigo/beachbites/internal/audio"
	"github.com/tropigo/beachbites/internal/config"
	"github.com/tropigo/beachbites/internal/core"
	"github.com/tropigo/beachbites/internal/dal"
	"github.com/tropigo/beachbites/internal/fsm"
	"github.com/tropigo/beachbites/internal/progression"
	"github.com/tropigo/beachbites/internal/states"
	"github.com/tropigo/beachbites/internal/world"
)

// Deps bundles everything a game session needs. The store connection is
// owned by the caller; sessions only reach it through the DAL.
type Deps struct {
	DAL       *dal.DAL
	Cfg       config.Game
	Logger    *log.Logger
	Runtime   core.RuntimeConfig
	AudioSink io.Writer // bell output, nil for silent sessions
}

// Model is the Bubble Tea model driving one game session: it feeds input and
// ticks into the state machine and renders its screen buffer.
type Model struct {
	machine  *fsm.Machine
	screen   *core.Screen
	keys     *KeyMapper
	tickRate int
	quitting bool
}

// NewModel builds the state machine with all concrete states registered and
// wraps it in a Bubble Tea model.
func NewModel(deps Deps) Model {
	rt := deps.Runtime
	if rt.Seed == 0 {
		rt.Seed = time.Now().UnixNano()
	}

	ctx := &fsm.Context{
		DAL:      deps.DAL,
		Goals:    progression.GoalsFromConfig(deps.Cfg.Tutorial),
		Cfg:      deps.Cfg,
		World:    world.NewProvider(deps.Logger, deps.Cfg.Map.Width, deps.Cfg.Map.Height),
		Audio:    audio.NewPlayer(deps.Logger, deps.AudioSink),
		Logger:   deps.Logger,
		Rng:      rand.New(rand.NewSource(rt.Seed)),
		PlayerID: dal.DefaultPlayerID,
	}
	if rt.Diag {
		ctx.ToggleDiag()
	}

	machine := fsm.New(ctx, deps.Logger)
	machine.Register(states.NewTitle())
	machine.Register(states.NewTutorial())
	machine.Register(states.NewTutorialComplete())
	machine.Register(states.NewGameplay())

	return Model{
		machine:  machine,
		screen:   core.NewScreen(rt.ScreenW, rt.ScreenH),
		keys:     NewKeyMapper(),
		tickRate: rt.TickRate,
	}
}

// Init enters the title screen and starts the tick loop.
func (m Model) Init() tea.Cmd {
	//nolint:errcheck // Title is always registered by NewModel
	m.machine.Start(fsm.StateTitle)
	return tickCmd(m.tickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil
	case TickMsg:
		return m.handleTick()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action, isQuit := m.keys.MapKey(msg)
	if action != core.ActionNone {
		m.machine.Dispatch(action)
	}
	if isQuit || m.machine.Context().QuitRequested() {
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) handleTick() (tea.Model, tea.Cmd) {
	m.machine.Tick(1.0 / float64(m.tickRate))
	if m.machine.Context().QuitRequested() {
		m.quitting = true
		return m, tea.Quit
	}
	return m, tickCmd(m.tickRate)
}

// View renders the active state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	m.machine.Render(m.screen)
	return RenderScreen(m.screen)
}

// Run starts the Bubble Tea program for a local session and blocks until it
// exits.
func Run(deps Deps) error {
	p := tea.NewProgram(
		NewModel(deps),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
