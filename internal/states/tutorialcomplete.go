package states

import (
	"github.com/tropigo/beachbites/internal/audio"
	"github.com/tropigo/beachbites/internal/core"
	"github.com/tropigo/beachbites/internal/fsm"
)

// TutorialComplete is the graduation overlay. Its one job is ordering: the
// tutorial_complete flag must be durably written before the machine is
// allowed back to Title. If the write fails the player stays here and the
// confirm input retries, so a crash in between re-prompts instead of
// silently losing the graduation.
type TutorialComplete struct {
	persisted    bool
	persistError bool
}

// NewTutorialComplete creates the graduation state.
func NewTutorialComplete() *TutorialComplete { return &TutorialComplete{} }

func (s *TutorialComplete) ID() fsm.StateID { return fsm.StateTutorialComplete }

func (s *TutorialComplete) Enter(ctx *fsm.Context) error {
	s.persisted = false
	s.persistError = false
	ctx.Audio.Play(audio.CueFanfare)
	return nil
}

func (s *TutorialComplete) Exit(ctx *fsm.Context) error { return nil }

// AllowTransition holds the machine here until the graduation write has
// succeeded.
func (s *TutorialComplete) AllowTransition(ctx *fsm.Context, target fsm.StateID) bool {
	if target == fsm.StateTitle {
		return s.persisted
	}
	return true
}

func (s *TutorialComplete) HandleAction(ctx *fsm.Context, act core.Action) {
	switch act {
	case core.ActionConfirm:
		s.acknowledge(ctx)
	case core.ActionQuit:
		ctx.RequestQuit()
	}
}

func (s *TutorialComplete) acknowledge(ctx *fsm.Context) {
	if !s.persisted {
		if err := ctx.DAL.MarkTutorialComplete(ctx.PlayerID); err != nil {
			s.persistError = true
			ctx.Logger.Error("could not persist tutorial graduation", "error", err)
			return
		}
		s.persisted = true
		s.persistError = false
	}
	ctx.RequestTransition(fsm.StateTitle)
}

func (s *TutorialComplete) Update(ctx *fsm.Context, dt float64) {}

func (s *TutorialComplete) Render(ctx *fsm.Context, scr *core.Screen) {
	scr.Clear()
	mid := scr.Height() / 2

	scr.DrawTextCentered(mid-3, "T U T O R I A L   C O M P L E T E", core.ColorBrightGreen)
	scr.DrawTextCentered(mid-1, "You know the beach. The beach knows you.", core.ColorGreen)

	if s.persistError {
		scr.DrawTextCentered(mid+2, "Could not save your progress.", core.ColorBrightRed)
		scr.DrawTextCentered(mid+3, "Press Enter to try again.", core.ColorRed)
	} else {
		scr.DrawTextCentered(mid+2, "Press Enter to continue", core.ColorWhite)
	}
}
