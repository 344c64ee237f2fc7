package states

import (
	"encoding/json"
	"fmt"

	"github.com/tropigo/beachbites/internal/audio"
	"github.com/tropigo/beachbites/internal/core"
	"github.com/tropigo/beachbites/internal/dal"
	"github.com/tropigo/beachbites/internal/fsm"
	"github.com/tropigo/beachbites/internal/sim"
)

const autosaveSlotName = "autosave"

// snapshot is the serialized save-slot payload.
type snapshot struct {
	PlayerX    int            `json:"player_x"`
	PlayerY    int            `json:"player_y"`
	Money      int            `json:"money"`
	Earned     int            `json:"earned"`
	Score      int            `json:"score"`
	Deliveries int            `json:"deliveries"`
	Missed     int            `json:"missed"`
	Elapsed    float64        `json:"elapsed"`
	Selected   int            `json:"selected"`
	Stock      map[string]int `json:"stock"`
}

// Gameplay runs the real delivery loop: full economy, miss limit, shop
// overlay, autosave, and run recording on the way out.
type Gameplay struct {
	session *sim.Session
	shop    *shopOverlay

	paused        bool
	usedFallback  bool
	runRecorded   bool
	gameOverSeen  bool
	autosaveEvery float64
	autosaveIn    float64
}

// NewGameplay creates the gameplay state.
func NewGameplay() *Gameplay { return &Gameplay{} }

func (g *Gameplay) ID() fsm.StateID { return fsm.StateGameplay }

func (g *Gameplay) Enter(ctx *fsm.Context) error {
	m, fallback := ctx.World.Load(ctx.Cfg.Map.Path)
	g.usedFallback = fallback

	settings := ctx.DAL.Settings()
	stock, err := ctx.DAL.StartingStock()
	if err != nil {
		ctx.Logger.Warn("starting stock unavailable, using catalog defaults", "error", err)
		stock = nil
	}
	g.session = sim.New(ctx.Cfg, m, ctx.Rng, false, settings.StartingMoney, stock)

	g.shop = newShopOverlay()
	if owned, err := ctx.DAL.OwnedUpgrades(ctx.PlayerID); err == nil {
		g.shop.markOwned(owned)
		g.session.ApplyUpgrades(owned)
	}

	if ctx.Resume {
		ctx.Resume = false
		g.restore(ctx)
	}

	g.paused = false
	g.runRecorded = false
	g.gameOverSeen = false
	g.autosaveEvery = ctx.Cfg.Session.AutosaveSec
	g.autosaveIn = g.autosaveEvery
	return nil
}

// Exit records the run if nothing has yet; a panic elsewhere must not lose
// the row.
func (g *Gameplay) Exit(ctx *fsm.Context) error {
	g.recordRun(ctx)
	g.session = nil
	return nil
}

// AllowTransition holds the machine in gameplay until the run is recorded.
func (g *Gameplay) AllowTransition(ctx *fsm.Context, target fsm.StateID) bool {
	if target == fsm.StateTitle {
		return g.runRecorded
	}
	return true
}

func (g *Gameplay) HandleAction(ctx *fsm.Context, act core.Action) {
	if g.session == nil {
		return
	}

	if g.session.Over() {
		// Game-over screen: any confirm-ish input returns to the title.
		if act == core.ActionConfirm || act == core.ActionCancel {
			g.leave(ctx)
		}
		return
	}

	if g.shop.visible {
		g.shop.handle(ctx, g.session, act)
		return
	}

	if g.paused {
		if act == core.ActionPause || act == core.ActionConfirm {
			g.paused = false
		}
		return
	}

	if dx, dy := act.Direction(); dx != 0 || dy != 0 {
		g.session.Move(dx, dy)
		if g.session.SpeedBoost {
			g.session.Move(dx, dy)
		}
		return
	}
	if idx := act.FoodIndex(); idx >= 0 {
		g.session.SelectFood(idx)
		return
	}

	switch act {
	case core.ActionThrow, core.ActionConfirm:
		g.serve(ctx)
	case core.ActionShop:
		g.shop.open(ctx)
	case core.ActionPause:
		g.paused = true
	case core.ActionCancel:
		g.leave(ctx)
	case core.ActionQuit:
		g.recordRun(ctx)
		ctx.RequestQuit()
	}
}

func (g *Gameplay) serve(ctx *fsm.Context) {
	switch g.session.Serve() {
	case sim.ServeCorrect:
		ctx.Audio.Play(audio.CueDelivery)
	case sim.ServeWrong, sim.ServeNoStock:
		ctx.Audio.Play(audio.CueMiss)
	}
}

// leave records the run and requests the title screen.
func (g *Gameplay) leave(ctx *fsm.Context) {
	g.recordRun(ctx)
	ctx.RequestTransition(fsm.StateTitle)
}

func (g *Gameplay) Update(ctx *fsm.Context, dt float64) {
	if g.session == nil || g.paused || g.shop.visible {
		return
	}

	g.session.Update(dt)

	if g.session.Over() {
		if !g.gameOverSeen {
			g.gameOverSeen = true
			ctx.Audio.Play(audio.CueGameOver)
			g.recordRun(ctx)
		}
		return
	}

	if g.autosaveEvery > 0 {
		g.autosaveIn -= dt
		if g.autosaveIn <= 0 {
			g.autosaveIn = g.autosaveEvery
			g.autosave(ctx)
		}
	}
}

// recordRun persists the run outcome exactly once. Persistence failures are
// logged, not fatal: a dead store must not trap the player in gameplay.
func (g *Gameplay) recordRun(ctx *fsm.Context) {
	if g.runRecorded || g.session == nil {
		return
	}
	g.runRecorded = true
	s := g.session

	if _, err := ctx.DAL.RecordRun(ctx.PlayerID, s.Score, s.Earned, s.Missed, s.Elapsed); err != nil {
		ctx.Logger.Error("run not recorded", "error", err)
	}
	if _, err := ctx.DAL.UpdateHighScore(ctx.PlayerID, s.Score); err != nil {
		ctx.Logger.Error("high score not updated", "error", err)
	}
	if err := ctx.DAL.UpdateLifetimeCounters(ctx.PlayerID, s.Money, s.Deliveries); err != nil {
		ctx.Logger.Warn("lifetime counters not updated", "error", err)
	}
}

func (g *Gameplay) autosave(ctx *fsm.Context) {
	s := g.session
	snap := snapshot{
		PlayerX:    s.Player.X,
		PlayerY:    s.Player.Y,
		Money:      s.Money,
		Earned:     s.Earned,
		Score:      s.Score,
		Deliveries: s.Deliveries,
		Missed:     s.Missed,
		Elapsed:    s.Elapsed,
		Selected:   s.Selected,
		Stock:      s.Stock,
	}
	data, err := json.Marshal(snap)
	if err != nil {
		ctx.Logger.Error("snapshot marshal failed", "error", err)
		return
	}
	if _, err := ctx.DAL.SaveSlot(ctx.PlayerID, autosaveSlotName, string(data)); err != nil {
		ctx.Logger.Warn("autosave not persisted", "error", err)
	}
}

// restore loads a save slot into the fresh session: the slot picked in the
// Load menu when one was requested, otherwise the most recent save. Anything
// wrong with the slot falls back to the fresh state.
func (g *Gameplay) restore(ctx *fsm.Context) {
	slotID := ctx.ResumeSlot
	ctx.ResumeSlot = 0

	var save *dal.SaveGame
	var err error
	if slotID != 0 {
		save, err = ctx.DAL.GetSave(ctx.PlayerID, slotID)
	} else {
		save, err = ctx.DAL.LatestSave(ctx.PlayerID)
	}
	if err != nil || save == nil {
		if err != nil {
			ctx.Logger.Warn("no save restored", "error", err)
		}
		return
	}
	var snap snapshot
	if err := json.Unmarshal([]byte(save.StateJSON), &snap); err != nil {
		ctx.Logger.Warn("save slot unreadable, starting fresh", "slot", save.SlotID, "error", err)
		return
	}

	s := g.session
	if s.Map().Walkable(snap.PlayerX, snap.PlayerY) {
		s.Player = core.Point{X: snap.PlayerX, Y: snap.PlayerY}
	}
	s.Money = snap.Money
	s.Earned = snap.Earned
	s.Score = snap.Score
	s.Deliveries = snap.Deliveries
	s.Missed = snap.Missed
	s.Elapsed = snap.Elapsed
	s.SelectFood(snap.Selected)
	for name, qty := range snap.Stock {
		s.Stock[name] = qty
	}
	ctx.Logger.Info("resumed from save", "slot", save.SlotID, "saved", save.Date())
}

func (g *Gameplay) Render(ctx *fsm.Context, scr *core.Screen) {
	scr.Clear()
	drawSession(scr, g.session)

	scr.DrawText(1, 0, "DELIVERY RUN", core.ColorBrightYellow)
	drawHUD(scr, g.session)

	if g.session != nil && g.session.Over() {
		mid := scr.Height() / 2
		scr.DrawTextCentered(mid-1, "G A M E   O V E R", core.ColorBrightRed)
		scr.DrawTextCentered(mid, g.session.Reason().String(), core.ColorRed)
		scr.DrawTextCentered(mid+2, fmt.Sprintf("final score %d", g.session.Score), core.ColorWhite)
		scr.DrawTextCentered(mid+3, "Press Enter", core.ColorGray)
	} else if g.shop.visible {
		g.shop.render(scr, g.session)
	} else if g.paused {
		scr.DrawTextCentered(scr.Height()/2, "P A U S E D", core.ColorBrightCyan)
	}

	if !ctx.DAL.Live() {
		scr.DrawText(1, scr.Height()-3, "offline: progress won't be saved", core.ColorBrightRed)
	}
	if g.usedFallback {
		scr.DrawText(1, scr.Height()-1, "spare beach (map unavailable)", core.ColorGray)
	}
	if ctx.DiagEnabled() {
		extra := ""
		if g.session != nil {
			extra = fmt.Sprintf("gameplay t=%.1f cust=%d", g.session.Elapsed, len(g.session.Customers))
		}
		drawDiag(ctx, scr, extra)
	}
}
