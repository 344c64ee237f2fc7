// Package audio triggers sound cues for state transitions and deliveries.
// The terminal has no mixer, so cues resolve to a best-effort bell; what
// matters to callers is the contract: a missing cue is logged and skipped,
// never an error.
package audio

import (
	"io"
	"sync"

	"github.com/charmbracelet/log"
)

// Well-known cue names used across the states.
const (
	CueMenuMove   = "menu_move"
	CueMenuSelect = "menu_select"
	CueDelivery   = "delivery_good"
	CueMiss       = "delivery_miss"
	CuePurchase   = "purchase"
	CueFanfare    = "fanfare"
	CueGameOver   = "game_over"
)

// Player resolves cue names against a cue table and rings the terminal bell
// for known cues. Unknown cues are logged once each and ignored.
type Player struct {
	logger *log.Logger
	sink   io.Writer

	mu      sync.Mutex
	cues    map[string]bool
	missing map[string]bool
}

// NewPlayer builds a Player writing bell characters to sink. A nil sink
// disables output but keeps the cue bookkeeping.
func NewPlayer(logger *log.Logger, sink io.Writer) *Player {
	cues := map[string]bool{
		CueMenuMove:   true,
		CueMenuSelect: true,
		CueDelivery:   true,
		CueMiss:       true,
		CuePurchase:   true,
		CueFanfare:    true,
		CueGameOver:   true,
	}
	return &Player{
		logger:  logger,
		sink:    sink,
		cues:    cues,
		missing: make(map[string]bool),
	}
}

// Play triggers a cue. Missing cues log-and-continue.
func (p *Player) Play(cue string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.cues[cue] {
		if !p.missing[cue] {
			p.missing[cue] = true
			p.logger.Debug("unknown audio cue, skipping", "cue", cue)
		}
		return
	}
	if p.sink != nil {
		// Best effort; a write error is not worth surfacing.
		_, _ = p.sink.Write([]byte("\a"))
	}
}

// Nop is a cue player that does nothing. Used in tests and headless runs.
type Nop struct{}

func (Nop) Play(string) {}
