// Package states contains the concrete game modes: Title, Tutorial,
// TutorialComplete, and Gameplay with its Shop overlay. Each state is wired
// to the machine through the fsm contract and reaches persistence only
// through the DAL handed to it in the context.
package states

import (
	"fmt"

	"github.com/tropigo/beachbites/internal/audio"
	"github.com/tropigo/beachbites/internal/core"
	"github.com/tropigo/beachbites/internal/dal"
	"github.com/tropigo/beachbites/internal/fsm"
)

// maxLoadSlots caps how many saves the Load menu lists.
const maxLoadSlots = 5

type titleEntry struct {
	label   string
	enabled bool
}

// Title is the entry screen. It decides where "start" leads based on the
// persisted tutorial flag, exposes Continue only to graduated players, and
// offers a Load menu over the recent save slots.
type Title struct {
	entries []titleEntry
	cursor  int

	tutorialDone bool
	degraded     bool
	highScore    int

	saves      []dal.SaveGame
	loadOpen   bool
	loadCursor int
}

// NewTitle creates the title state.
func NewTitle() *Title { return &Title{} }

func (t *Title) ID() fsm.StateID { return fsm.StateTitle }

// Enter queries the profile to build the menu. A degraded store is treated
// as tutorial-incomplete so the player is re-taught rather than silently
// skipped past the tutorial.
func (t *Title) Enter(ctx *fsm.Context) error {
	t.degraded = !ctx.DAL.Live()
	t.tutorialDone = !t.degraded && ctx.DAL.IsTutorialComplete(ctx.PlayerID)

	t.highScore = 0
	if profile, err := ctx.DAL.GetProfile(ctx.PlayerID); err == nil {
		t.highScore = profile.HighScore
	}

	t.saves = nil
	if t.tutorialDone {
		if saves, err := ctx.DAL.ListSaves(ctx.PlayerID, maxLoadSlots); err == nil {
			t.saves = saves
		} else {
			ctx.Logger.Warn("save slots unavailable", "error", err)
		}
	}

	startLabel := "Play Tutorial"
	if t.tutorialDone {
		startLabel = "New Game"
	}
	// Continue is gated on graduation; a graduated player with no save
	// simply starts a fresh run from it. Load needs at least one slot.
	t.entries = []titleEntry{
		{label: startLabel, enabled: true},
		{label: "Continue", enabled: t.tutorialDone},
		{label: "Load", enabled: t.tutorialDone && len(t.saves) > 0},
		{label: "Quit", enabled: true},
	}
	t.cursor = 0
	t.loadOpen = false
	t.loadCursor = 0
	return nil
}

func (t *Title) Exit(ctx *fsm.Context) error { return nil }

func (t *Title) HandleAction(ctx *fsm.Context, act core.Action) {
	if t.loadOpen {
		t.handleLoad(ctx, act)
		return
	}
	switch act {
	case core.ActionUp:
		t.moveCursor(ctx, -1)
	case core.ActionDown:
		t.moveCursor(ctx, 1)
	case core.ActionConfirm:
		t.activate(ctx)
	case core.ActionCancel, core.ActionQuit:
		ctx.RequestQuit()
	}
}

func (t *Title) handleLoad(ctx *fsm.Context, act core.Action) {
	switch act {
	case core.ActionUp:
		if t.loadCursor > 0 {
			t.loadCursor--
			ctx.Audio.Play(audio.CueMenuMove)
		}
	case core.ActionDown:
		if t.loadCursor < len(t.saves)-1 {
			t.loadCursor++
			ctx.Audio.Play(audio.CueMenuMove)
		}
	case core.ActionConfirm:
		ctx.Audio.Play(audio.CueMenuSelect)
		ctx.Resume = true
		ctx.ResumeSlot = t.saves[t.loadCursor].SlotID
		ctx.RequestTransition(fsm.StateGameplay)
	case core.ActionCancel:
		t.loadOpen = false
	}
}

func (t *Title) moveCursor(ctx *fsm.Context, delta int) {
	next := t.cursor
	for i := 0; i < len(t.entries); i++ {
		next = (next + delta + len(t.entries)) % len(t.entries)
		if t.entries[next].enabled {
			break
		}
	}
	if next != t.cursor {
		t.cursor = next
		ctx.Audio.Play(audio.CueMenuMove)
	}
}

func (t *Title) activate(ctx *fsm.Context) {
	entry := t.entries[t.cursor]
	if !entry.enabled {
		return
	}
	ctx.Audio.Play(audio.CueMenuSelect)

	switch t.cursor {
	case 0:
		if t.tutorialDone {
			ctx.RequestTransition(fsm.StateGameplay)
		} else {
			ctx.RequestTransition(fsm.StateTutorial)
		}
	case 1:
		ctx.Resume = true
		ctx.ResumeSlot = 0
		ctx.RequestTransition(fsm.StateGameplay)
	case 2:
		t.loadOpen = true
		t.loadCursor = 0
	case 3:
		ctx.RequestQuit()
	}
}

func (t *Title) Update(ctx *fsm.Context, dt float64) {}

func (t *Title) Render(ctx *fsm.Context, scr *core.Screen) {
	scr.Clear()
	mid := scr.Height() / 2

	scr.DrawTextCentered(mid-5, "B E A C H   B I T E S", core.ColorBrightYellow)
	scr.DrawTextCentered(mid-4, "~ deliver the vibes ~", core.ColorCyan)

	if t.loadOpen {
		t.renderLoad(scr, mid)
	} else {
		for i, e := range t.entries {
			color := core.ColorWhite
			prefix := "  "
			if !e.enabled {
				color = core.ColorGray
			}
			if i == t.cursor {
				color = core.ColorBrightGreen
				prefix = "> "
			}
			scr.DrawTextCentered(mid-1+i, prefix+e.label, color)
		}
	}

	if t.highScore > 0 {
		scr.DrawTextCentered(mid+5, fmt.Sprintf("High score: %d", t.highScore), core.ColorYellow)
	}
	if t.degraded {
		scr.DrawText(1, scr.Height()-1, "offline mode: progress will not be saved", core.ColorBrightRed)
	}
}

func (t *Title) renderLoad(scr *core.Screen, mid int) {
	scr.DrawTextCentered(mid-2, "L O A D   G A M E", core.ColorBrightCyan)
	for i, s := range t.saves {
		name := s.SlotName
		if name == "" {
			name = "save"
		}
		color := core.ColorWhite
		prefix := "  "
		if i == t.loadCursor {
			color = core.ColorBrightGreen
			prefix = "> "
		}
		line := fmt.Sprintf("%s%-12s %s", prefix, name, s.Date().Format("Jan 02 15:04"))
		scr.DrawTextCentered(mid+i, line, color)
	}
	scr.DrawTextCentered(mid+len(t.saves)+1, "esc back", core.ColorGray)
}
