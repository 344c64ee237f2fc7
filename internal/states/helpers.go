package states

import (
	"fmt"
	"strings"

	"github.com/tropigo/beachbites/internal/core"
	"github.com/tropigo/beachbites/internal/fsm"
	"github.com/tropigo/beachbites/internal/sim"
)

// mapOriginY leaves the top row free for the header line.
const mapOriginY = 1

// drawSession renders the tile map, customers, and player.
func drawSession(scr *core.Screen, s *sim.Session) {
	if s == nil {
		return
	}
	m := s.Map()
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			tile := m.Tile(x, y)
			scr.SetCell(x, y+mapOriginY, tile.Glyph(), tile.Color())
		}
	}

	for _, c := range s.Customers {
		scr.SetCell(c.Pos.X, c.Pos.Y+mapOriginY, 'C', patienceColor(c))
		if g := s.FoodGlyph(c.Want); g != 0 {
			scr.SetCell(c.Pos.X+1, c.Pos.Y+mapOriginY, g, core.ColorBrightMagenta)
		}
	}

	scr.SetCell(s.Player.X, s.Player.Y+mapOriginY, '@', core.ColorBrightWhite)
}

func patienceColor(c *sim.Customer) core.Color {
	switch f := c.Fraction(); {
	case f > 0.5:
		return core.ColorBrightGreen
	case f > 0.2:
		return core.ColorBrightYellow
	default:
		return core.ColorBrightRed
	}
}

// drawHUD renders the bottom status bar: money, score, selected food, stock.
func drawHUD(scr *core.Screen, s *sim.Session) {
	if s == nil {
		return
	}
	y := scr.Height() - 2

	food := s.SelectedFood()
	left := fmt.Sprintf("$%d  score %d  miss %d", s.Money, s.Score, s.Missed)
	scr.DrawText(1, y, left, core.ColorBrightWhite)

	var b strings.Builder
	for i, f := range s.Foods() {
		marker := ' '
		if i == s.Selected {
			marker = '*'
		}
		fmt.Fprintf(&b, "%c%d:%s(%d) ", marker, i+1, f.Glyph, s.Stock[f.Name])
	}
	scr.DrawText(1, y+1, b.String(), core.ColorCyan)

	scr.DrawText(scr.Width()-len(food.Name)-2, y, food.Name, core.ColorBrightYellow)
}

// drawDiag renders the diagnostic overlay line.
func drawDiag(ctx *fsm.Context, scr *core.Screen, extra string) {
	status := "live"
	if !ctx.DAL.Live() {
		status = "degraded"
	}
	text := fmt.Sprintf("[diag] db=%s %s", status, extra)
	scr.DrawText(0, 0, text, core.ColorMagenta)
}
