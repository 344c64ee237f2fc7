package states

import (
	"fmt"

	"github.com/tropigo/beachbites/internal/audio"
	"github.com/tropigo/beachbites/internal/core"
	"github.com/tropigo/beachbites/internal/fsm"
	"github.com/tropigo/beachbites/internal/sim"
)

// shopItem is one purchasable row: a food restock or a permanent upgrade.
type shopItem struct {
	label   string
	price   int
	food    string // set for restocks
	upgrade string // set for upgrades
}

// shopOverlay is the Gameplay sub-mode. While visible it swallows input and
// the simulation does not advance; closing it resumes the run in place.
type shopOverlay struct {
	visible bool
	cursor  int
	items   []shopItem
	owned   map[string]bool
	notice  string
}

func newShopOverlay() *shopOverlay {
	return &shopOverlay{owned: make(map[string]bool)}
}

// open rebuilds the item list from the catalog and current ownership.
func (o *shopOverlay) open(ctx *fsm.Context) {
	o.items = o.items[:0]
	for _, f := range ctx.Cfg.Foods {
		o.items = append(o.items, shopItem{
			label: fmt.Sprintf("Restock %s", f.Name),
			price: f.BuyPrice,
			food:  f.Name,
		})
	}
	for _, u := range ctx.Cfg.Upgrades {
		o.items = append(o.items, shopItem{
			label:   u.Name,
			price:   u.Price,
			upgrade: u.ID,
		})
	}
	o.cursor = 0
	o.notice = ""
	o.visible = true
}

func (o *shopOverlay) close() {
	o.visible = false
}

func (o *shopOverlay) handle(ctx *fsm.Context, s *sim.Session, act core.Action) {
	switch act {
	case core.ActionUp:
		if len(o.items) > 0 {
			o.cursor = (o.cursor - 1 + len(o.items)) % len(o.items)
			ctx.Audio.Play(audio.CueMenuMove)
		}
	case core.ActionDown:
		if len(o.items) > 0 {
			o.cursor = (o.cursor + 1) % len(o.items)
			ctx.Audio.Play(audio.CueMenuMove)
		}
	case core.ActionConfirm:
		o.purchase(ctx, s)
	case core.ActionShop, core.ActionCancel:
		o.close()
	}
}

func (o *shopOverlay) purchase(ctx *fsm.Context, s *sim.Session) {
	if o.cursor >= len(o.items) {
		return
	}
	item := o.items[o.cursor]

	if item.food != "" {
		if !s.BuyStock(item.food) {
			o.notice = "can't restock that right now"
			return
		}
		o.notice = fmt.Sprintf("restocked %s", item.food)
		ctx.Audio.Play(audio.CuePurchase)
		return
	}

	if o.owned[item.upgrade] {
		o.notice = "already owned"
		return
	}
	if s.Money < item.price {
		o.notice = "not enough money"
		return
	}

	// Duplicate purchase is a no-op at the DAL too; added=false means a
	// previous session already bought it, so only charge when it is new.
	added, err := ctx.DAL.OwnUpgrade(ctx.PlayerID, item.upgrade)
	if err != nil {
		ctx.Logger.Warn("upgrade purchase not persisted", "upgrade", item.upgrade, "error", err)
	}
	o.owned[item.upgrade] = true
	if added || err != nil {
		s.Money -= item.price
	}
	s.ApplyUpgrades([]string{item.upgrade})
	o.notice = fmt.Sprintf("bought %s", item.label)
	ctx.Audio.Play(audio.CuePurchase)
}

// markOwned preloads ownership from persistence at session start.
func (o *shopOverlay) markOwned(ids []string) {
	for _, id := range ids {
		o.owned[id] = true
	}
}

func (o *shopOverlay) render(scr *core.Screen, s *sim.Session) {
	w := 44
	h := len(o.items) + 6
	x := (scr.Width() - w) / 2
	y := (scr.Height() - h) / 2
	box := core.NewRect(x, y, w, h)

	scr.FillRect(box, ' ', core.ColorDefault)
	scr.DrawBox(box, core.ColorBrightCyan)
	scr.DrawTextCentered(y+1, "~ BEACH SHOP ~", core.ColorBrightYellow)

	for i, item := range o.items {
		color := core.ColorWhite
		prefix := "  "
		if i == o.cursor {
			color = core.ColorBrightGreen
			prefix = "> "
		}
		line := fmt.Sprintf("%s%-28s $%d", prefix, item.label, item.price)
		if item.upgrade != "" && o.owned[item.upgrade] {
			line = fmt.Sprintf("%s%-28s owned", prefix, item.label)
			if i != o.cursor {
				color = core.ColorGray
			}
		}
		scr.DrawText(x+2, y+3+i, line, color)
	}

	footer := fmt.Sprintf("$%d  (o closes)", s.Money)
	if o.notice != "" {
		footer = o.notice
	}
	scr.DrawText(x+2, y+h-2, footer, core.ColorCyan)
}
