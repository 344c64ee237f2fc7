// Package fsm implements the game state machine: a closed set of mutually
// exclusive interactive modes, an explicit transition-rule table consulted
// before any state change, and per-frame update/render dispatch to the
// active state.
package fsm

import (
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/tropigo/beachbites/internal/config"
	"github.com/tropigo/beachbites/internal/core"
	"github.com/tropigo/beachbites/internal/dal"
	"github.com/tropigo/beachbites/internal/progression"
	"github.com/tropigo/beachbites/internal/world"
)

// StateID identifies one of the interactive modes. The set is closed: the
// shop is a sub-mode of Gameplay, not a top-level state, because it must
// resume exactly where gameplay left off.
type StateID int

const (
	StateTitle StateID = iota
	StateTutorial
	StateTutorialComplete
	StateGameplay
)

// String returns the state's name for logs and diagnostics.
func (id StateID) String() string {
	switch id {
	case StateTitle:
		return "title"
	case StateTutorial:
		return "tutorial"
	case StateTutorialComplete:
		return "tutorial-complete"
	case StateGameplay:
		return "gameplay"
	default:
		return "unknown"
	}
}

// MapProvider loads tile maps for states that need a world. A load failure
// yields a usable fallback map rather than propagating.
type MapProvider interface {
	// Load returns the map at path, or a generated fallback map with
	// fallback=true when the file is missing or invalid.
	Load(path string) (m *world.Map, fallback bool)
}

// Guard is an optional extension of State. A state implementing it can veto
// a transition out of itself even when the transition table allows the pair,
// e.g. the tutorial refusing to complete before its goal is met.
type Guard interface {
	AllowTransition(ctx *Context, target StateID) bool
}

// CuePlayer triggers audio cues on transitions and deliveries. Missing cues
// are log-and-continue, never an error the state machine sees.
type CuePlayer interface {
	Play(cue string)
}

// State is the contract every interactive mode implements. Enter and Exit
// are lifecycle hooks invoked by the machine around a validated transition;
// panics inside either are caught at the machine boundary.
type State interface {
	ID() StateID

	// Enter is called when the state becomes active. It may load maps,
	// query the DAL for display data, and reset session counters.
	Enter(ctx *Context) error

	// Exit is called when the state is deactivated. It releases transient
	// resources and flushes pending persistence writes.
	Exit(ctx *Context) error

	// HandleAction delivers one logical input action.
	HandleAction(ctx *Context, act core.Action)

	// Update advances timers and counters by dt seconds. States request
	// transitions through ctx; the machine validates them.
	Update(ctx *Context, dt float64)

	// Render draws the state into the screen buffer.
	Render(ctx *Context, scr *core.Screen)
}

// Context carries the injected collaborators into every lifecycle hook.
// States hold no global references; everything they touch arrives here.
type Context struct {
	DAL      *dal.DAL
	Goals    progression.Goals
	Cfg      config.Game
	World    MapProvider
	Audio    CuePlayer
	Logger   *log.Logger
	Rng      *rand.Rand
	PlayerID int64

	// Resume asks the next Gameplay entry to restore a save slot. Title sets
	// it; Gameplay consumes and clears it. ResumeSlot picks a specific slot
	// from the Load menu; zero means the most recent save.
	Resume     bool
	ResumeSlot int64

	requested   StateID
	hasRequest  bool
	quitRequest bool
	diagOverlay bool
}

// RequestTransition asks the machine to move to target. The request is
// validated against the transition table during the current tick; an illegal
// request is logged and dropped.
func (c *Context) RequestTransition(target StateID) {
	c.requested = target
	c.hasRequest = true
}

// RequestQuit asks the platform layer to end the session gracefully.
func (c *Context) RequestQuit() {
	c.quitRequest = true
}

// QuitRequested reports whether a graceful quit was requested.
func (c *Context) QuitRequested() bool {
	return c.quitRequest
}

// ToggleDiag flips the diagnostic overlay.
func (c *Context) ToggleDiag() {
	c.diagOverlay = !c.diagOverlay
}

// DiagEnabled reports whether the diagnostic overlay is visible.
func (c *Context) DiagEnabled() bool {
	return c.diagOverlay
}

func (c *Context) takeRequest() (StateID, bool) {
	if !c.hasRequest {
		return 0, false
	}
	target := c.requested
	c.hasRequest = false
	return target, true
}
