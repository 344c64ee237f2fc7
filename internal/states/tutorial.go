package states

import (
	"fmt"

	"github.com/tropigo/beachbites/internal/audio"
	"github.com/tropigo/beachbites/internal/core"
	"github.com/tropigo/beachbites/internal/fsm"
	"github.com/tropigo/beachbites/internal/sim"
)

// Tutorial teaches the delivery loop in forgiving mode: food is free, wrong
// serves carry no penalty, and the session never game-overs. Graduation is
// evaluated on each qualifying event; once either goal is met the state
// requests TutorialComplete.
type Tutorial struct {
	session *sim.Session

	// Session-scoped progress, reset on every entry. Distinct from the
	// lifetime counters the profile keeps.
	deliveries   int
	moneyEarned  int
	goalMet      bool
	usedFallback bool
}

// NewTutorial creates the tutorial state.
func NewTutorial() *Tutorial { return &Tutorial{} }

func (t *Tutorial) ID() fsm.StateID { return fsm.StateTutorial }

func (t *Tutorial) Enter(ctx *fsm.Context) error {
	m, fallback := ctx.World.Load(ctx.Cfg.Map.Path)
	t.usedFallback = fallback

	settings := ctx.DAL.Settings()
	t.session = sim.New(ctx.Cfg, m, ctx.Rng, true, settings.StartingMoney, nil)
	t.deliveries = 0
	t.moneyEarned = 0
	t.goalMet = false
	return nil
}

func (t *Tutorial) Exit(ctx *fsm.Context) error {
	t.session = nil
	return nil
}

// AllowTransition rejects graduation before the goal is met.
func (t *Tutorial) AllowTransition(ctx *fsm.Context, target fsm.StateID) bool {
	if target == fsm.StateTutorialComplete {
		return t.goalMet
	}
	return true
}

func (t *Tutorial) HandleAction(ctx *fsm.Context, act core.Action) {
	if t.session == nil {
		return
	}
	if dx, dy := act.Direction(); dx != 0 || dy != 0 {
		t.session.Move(dx, dy)
		return
	}
	if idx := act.FoodIndex(); idx >= 0 {
		t.session.SelectFood(idx)
		return
	}
	switch act {
	case core.ActionThrow, core.ActionConfirm:
		t.serve(ctx)
	case core.ActionQuit:
		ctx.RequestQuit()
	}
}

func (t *Tutorial) serve(ctx *fsm.Context) {
	switch t.session.Serve() {
	case sim.ServeCorrect:
		t.deliveries++
		t.moneyEarned += t.session.SelectedFood().SellPrice
		ctx.Audio.Play(audio.CueDelivery)
		t.evaluate(ctx)
	case sim.ServeWrong:
		ctx.Audio.Play(audio.CueMiss)
	}
}

// evaluate runs the progression check. Called on qualifying events; safe to
// call redundantly.
func (t *Tutorial) evaluate(ctx *fsm.Context) {
	if t.goalMet {
		return
	}
	if ctx.Goals.TutorialMet(t.deliveries, t.moneyEarned) {
		t.goalMet = true
		ctx.Audio.Play(audio.CueFanfare)
		ctx.RequestTransition(fsm.StateTutorialComplete)
	}
}

func (t *Tutorial) Update(ctx *fsm.Context, dt float64) {
	if t.session == nil {
		return
	}
	t.session.Update(dt)
}

func (t *Tutorial) Render(ctx *fsm.Context, scr *core.Screen) {
	scr.Clear()
	drawSession(scr, t.session)

	remD, remM := ctx.Goals.Remaining(t.deliveries, t.moneyEarned)
	scr.DrawText(1, 0, "TUTORIAL", core.ColorBrightCyan)
	scr.DrawText(11, 0,
		fmt.Sprintf("deliver %d more or earn $%d more", remD, remM),
		core.ColorCyan)
	drawHUD(scr, t.session)

	if t.usedFallback {
		scr.DrawText(1, scr.Height()-1, "practice beach (map unavailable)", core.ColorGray)
	}
	if ctx.DiagEnabled() {
		drawDiag(ctx, scr, fmt.Sprintf("tutorial d=%d $=%d", t.deliveries, t.moneyEarned))
	}
}
