package fsm

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"github.com/tropigo/beachbites/internal/core"
)

// transitions is the rule table: source state to allowed destinations.
// A request not present here is a logged no-op; the machine never ends up
// without a current state.
var transitions = map[StateID][]StateID{
	StateTitle:            {StateTutorial, StateGameplay},
	StateTutorial:         {StateTutorialComplete},
	StateTutorialComplete: {StateTitle},
	StateGameplay:         {StateTitle},
}

// Allowed reports whether the (from, to) pair is in the transition table.
func Allowed(from, to StateID) bool {
	for _, dest := range transitions[from] {
		if dest == to {
			return true
		}
	}
	return false
}

// Machine holds the current state and drives dispatch. It is driven by a
// single-threaded frame loop: Dispatch, Tick, and Render are never called
// concurrently.
type Machine struct {
	ctx     *Context
	states  map[StateID]State
	current State
	logger  *log.Logger
}

// New creates a machine with no states registered and no current state.
func New(ctx *Context, logger *log.Logger) *Machine {
	if logger == nil {
		logger = log.New(os.Stderr)
	}
	return &Machine{
		ctx:    ctx,
		states: make(map[StateID]State),
		logger: logger,
	}
}

// Register adds a state implementation. Panics on duplicate IDs since that
// is a wiring bug, not a runtime condition.
func (m *Machine) Register(s State) {
	if _, exists := m.states[s.ID()]; exists {
		panic(fmt.Sprintf("fsm: state %s already registered", s.ID()))
	}
	m.states[s.ID()] = s
}

// Start enters the initial state. Must be called once before Tick.
func (m *Machine) Start(id StateID) error {
	s, ok := m.states[id]
	if !ok {
		return fmt.Errorf("fsm: unknown start state %s", id)
	}
	m.current = s
	m.safeEnter(s)
	return nil
}

// Current returns the active state's ID.
func (m *Machine) Current() StateID {
	if m.current == nil {
		return StateTitle
	}
	return m.current.ID()
}

// CurrentName returns the active state's name for diagnostics.
func (m *Machine) CurrentName() string {
	return m.Current().String()
}

// Context exposes the shared context to the platform layer.
func (m *Machine) Context() *Context {
	return m.ctx
}

// Dispatch delivers a logical input action to the active state and applies
// any transition it requested.
func (m *Machine) Dispatch(act core.Action) {
	if m.current == nil {
		return
	}
	if act == core.ActionDebugToggle {
		m.ctx.ToggleDiag()
		return
	}

	func() {
		defer m.recoverHook("handle-action")
		m.current.HandleAction(m.ctx, act)
	}()

	m.applyPendingTransition()
}

// Tick advances the active state by dt seconds and applies any transition it
// requested.
func (m *Machine) Tick(dt float64) {
	if m.current == nil {
		return
	}

	func() {
		defer m.recoverHook("update")
		m.current.Update(m.ctx, dt)
	}()

	m.applyPendingTransition()
}

// Render draws the active state into the screen buffer.
func (m *Machine) Render(scr *core.Screen) {
	if m.current == nil {
		return
	}
	func() {
		defer m.recoverHook("render")
		m.current.Render(m.ctx, scr)
	}()
}

// Request validates a transition to target and performs it if legal.
// Returns false (with a diagnostic log entry, no state change) otherwise.
func (m *Machine) Request(target StateID) bool {
	if m.current == nil {
		return false
	}
	from := m.current.ID()

	if !Allowed(from, target) {
		m.logger.Warn("invalid transition rejected", "from", from, "to", target)
		return false
	}

	next, ok := m.states[target]
	if !ok {
		m.logger.Error("transition target not registered", "to", target)
		return false
	}

	if g, guarded := m.current.(Guard); guarded && !g.AllowTransition(m.ctx, target) {
		m.logger.Warn("transition vetoed by state guard", "from", from, "to", target)
		return false
	}

	m.safeExit(m.current)
	m.current = next
	m.safeEnter(next)
	m.logger.Debug("state transition", "from", from, "to", target)
	return true
}

func (m *Machine) applyPendingTransition() {
	if target, ok := m.ctx.takeRequest(); ok {
		m.Request(target)
	}
}

// safeEnter and safeExit contain lifecycle failures at the machine boundary:
// a panic or error is logged and the frame loop keeps running.

func (m *Machine) safeEnter(s State) {
	defer m.recoverHook("enter")
	if err := s.Enter(m.ctx); err != nil {
		m.logger.Error("state enter failed", "state", s.ID(), "error", err)
	}
}

func (m *Machine) safeExit(s State) {
	defer m.recoverHook("exit")
	if err := s.Exit(m.ctx); err != nil {
		m.logger.Error("state exit failed", "state", s.ID(), "error", err)
	}
}

func (m *Machine) recoverHook(hook string) {
	if r := recover(); r != nil {
		m.logger.Error("panic in state hook", "hook", hook, "state", m.Current(), "panic", r)
	}
}
