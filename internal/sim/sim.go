// Package sim runs the delivery session: player movement on the tile grid,
// customer spawning with patience timers, serve resolution, stock and money
// bookkeeping, and the game-over condition. The tutorial and gameplay states
// drive it; rendering and persistence live elsewhere.
package sim

import (
	"math/rand"

	"github.com/tropigo/beachbites/internal/config"
	"github.com/tropigo/beachbites/internal/core"
	"github.com/tropigo/beachbites/internal/world"
)

// ServeResult describes the outcome of one serve attempt.
type ServeResult int

const (
	ServeNone    ServeResult = iota // no customer adjacent
	ServeCorrect                    // right food, paid
	ServeWrong                      // wrong food, penalized (or forgiven)
	ServeNoStock                    // selected food is out of stock
)

// OverReason explains why a session ended.
type OverReason int

const (
	NotOver OverReason = iota
	OverMissLimit
	OverBankrupt
	OverTimeUp
)

func (r OverReason) String() string {
	switch r {
	case OverMissLimit:
		return "too many missed customers"
	case OverBankrupt:
		return "out of stock and money"
	case OverTimeUp:
		return "time up"
	default:
		return "running"
	}
}

// Customer is one spawned patron waiting for a specific food.
type Customer struct {
	Pos      core.Point
	Want     string  // food name
	Patience float64 // seconds remaining
	MaxWait  float64
}

// Fraction returns remaining patience in [0, 1] for rendering.
func (c *Customer) Fraction() float64 {
	if c.MaxWait <= 0 {
		return 0
	}
	f := c.Patience / c.MaxWait
	if f < 0 {
		return 0
	}
	return f
}

// Session is one run of the delivery loop. Not safe for concurrent use; the
// frame loop owns it.
type Session struct {
	cfg       config.Game
	m         *world.Map
	rng       *rand.Rand
	forgiving bool

	Player        core.Point
	Selected      int // index into cfg.Foods
	Money         int
	Earned        int // sell revenue this session, never reduced by purchases
	Score         int
	Deliveries    int
	Missed        int
	Stock         map[string]int
	Customers     []*Customer
	Elapsed       float64
	MaxStock      int
	SpeedBoost    bool
	StockBoost    bool
	PatienceBoost bool
	spawnTimer    float64
	overReason    OverReason
}

// New starts a session on the given map. startingMoney and stock come from
// the persisted settings; forgiving disables wrong-serve penalties for the
// tutorial.
func New(cfg config.Game, m *world.Map, rng *rand.Rand, forgiving bool, startingMoney int, stock map[string]int) *Session {
	s := &Session{
		cfg:       cfg,
		m:         m,
		rng:       rng,
		forgiving: forgiving,
		Player:    m.PlayerSpawn(),
		Money:     startingMoney,
		MaxStock:  cfg.Economy.MaxStock,
		Stock:     make(map[string]int, len(cfg.Foods)),
	}
	for _, f := range cfg.Foods {
		s.Stock[f.Name] = f.StartQty
	}
	for name, qty := range stock {
		s.Stock[name] = qty
	}
	s.spawnTimer = cfg.Customers.SpawnIntervalSec
	return s
}

// ApplyUpgrades enables the effects of owned shop upgrades. Unknown IDs are
// ignored so removing an upgrade from the catalog cannot break old profiles.
func (s *Session) ApplyUpgrades(owned []string) {
	for _, id := range owned {
		switch id {
		case "faster_sandals":
			s.SpeedBoost = true
		case "bigger_cooler":
			if !s.StockBoost {
				s.StockBoost = true
				s.MaxStock += s.MaxStock / 2
			}
		case "sun_umbrella":
			s.PatienceBoost = true
		}
	}
}

// Move steps the player one tile in the given direction, blocked by terrain.
func (s *Session) Move(dx, dy int) {
	if s.Over() {
		return
	}
	next := s.Player.Add(dx, dy)
	if s.m.Walkable(next.X, next.Y) {
		s.Player = next
	}
}

// SelectFood switches the active food slot. Out-of-range indexes are ignored.
func (s *Session) SelectFood(idx int) {
	if idx >= 0 && idx < len(s.cfg.Foods) {
		s.Selected = idx
	}
}

// SelectedFood returns the catalog entry for the active slot.
func (s *Session) SelectedFood() config.FoodConfig {
	if s.Selected < 0 || s.Selected >= len(s.cfg.Foods) {
		return config.FoodConfig{}
	}
	return s.cfg.Foods[s.Selected]
}

// Update advances timers: customer spawning, patience decay and misses, the
// optional run clock, and the game-over check.
func (s *Session) Update(dt float64) {
	if s.Over() {
		return
	}
	s.Elapsed += dt

	if limit := s.cfg.Session.RunDurationSec; limit > 0 && s.Elapsed >= limit {
		s.overReason = OverTimeUp
		return
	}

	s.spawnTimer -= dt
	if s.spawnTimer <= 0 && len(s.Customers) < s.cfg.Customers.MaxActive {
		s.spawnCustomer()
		s.spawnTimer = s.cfg.Customers.SpawnIntervalSec
	}

	kept := s.Customers[:0]
	for _, c := range s.Customers {
		c.Patience -= dt
		if c.Patience <= 0 {
			s.Missed++
			continue
		}
		kept = append(kept, c)
	}
	s.Customers = kept

	s.checkOver()
}

// Serve attempts to serve the selected food to an adjacent customer.
func (s *Session) Serve() ServeResult {
	if s.Over() {
		return ServeNone
	}
	c := s.adjacentCustomer()
	if c == nil {
		return ServeNone
	}
	food := s.SelectedFood()
	// Forgiving sessions treat food as free: no stock is consumed.
	if !s.forgiving {
		if s.Stock[food.Name] <= 0 {
			return ServeNoStock
		}
		s.Stock[food.Name]--
	}

	if food.Name == c.Want {
		s.removeCustomer(c)
		s.Deliveries++
		s.Money += food.SellPrice
		s.Earned += food.SellPrice
		s.Score += food.SellPrice * scoreMultiplier(c)
		return ServeCorrect
	}

	// Wrong food. In forgiving mode the customer waits for another try.
	if !s.forgiving {
		s.removeCustomer(c)
		s.Missed++
		s.checkOver()
	}
	return ServeWrong
}

// BuyStock purchases one unit of a food, capped by MaxStock.
func (s *Session) BuyStock(name string) bool {
	food, ok := s.cfg.Food(name)
	if !ok {
		return false
	}
	if s.Money < food.BuyPrice || s.Stock[name] >= s.MaxStock {
		return false
	}
	s.Money -= food.BuyPrice
	s.Stock[name]++
	return true
}

// Map returns the tile map the session runs on.
func (s *Session) Map() *world.Map { return s.m }

// Foods returns the food catalog in slot order.
func (s *Session) Foods() []config.FoodConfig { return s.cfg.Foods }

// FoodGlyph returns the display rune for a food, or 0 when unknown.
func (s *Session) FoodGlyph(name string) rune {
	f, ok := s.cfg.Food(name)
	if !ok || f.Glyph == "" {
		return 0
	}
	return []rune(f.Glyph)[0]
}

// Over reports whether the session has ended.
func (s *Session) Over() bool {
	return s.overReason != NotOver
}

// Reason returns why the session ended.
func (s *Session) Reason() OverReason {
	return s.overReason
}

// TotalStock returns units across all foods.
func (s *Session) TotalStock() int {
	total := 0
	for _, q := range s.Stock {
		total += q
	}
	return total
}

func (s *Session) checkOver() {
	if !s.forgiving && s.cfg.Customers.MissLimit > 0 && s.Missed >= s.cfg.Customers.MissLimit {
		s.overReason = OverMissLimit
		return
	}
	if !s.forgiving && s.TotalStock() == 0 && s.Money < s.cheapestBuyPrice() {
		s.overReason = OverBankrupt
	}
}

func (s *Session) cheapestBuyPrice() int {
	cheapest := 0
	for i, f := range s.cfg.Foods {
		if i == 0 || f.BuyPrice < cheapest {
			cheapest = f.BuyPrice
		}
	}
	return cheapest
}

func (s *Session) spawnCustomer() {
	spots := s.m.SpawnPoints(world.SpawnCustomers)
	if len(spots) == 0 || len(s.cfg.Foods) == 0 {
		return
	}
	pos := spots[s.rng.Intn(len(spots))]
	for _, c := range s.Customers {
		if c.Pos == pos {
			return // spot occupied, skip this spawn window
		}
	}
	want := s.cfg.Foods[s.rng.Intn(len(s.cfg.Foods))].Name
	patience := s.cfg.Customers.PatienceSec
	if s.PatienceBoost {
		patience *= 1.25
	}
	s.Customers = append(s.Customers, &Customer{
		Pos:      pos,
		Want:     want,
		Patience: patience,
		MaxWait:  patience,
	})
}

func (s *Session) adjacentCustomer() *Customer {
	for _, c := range s.Customers {
		if s.Player.ManhattanDist(c.Pos) <= 1 {
			return c
		}
	}
	return nil
}

func (s *Session) removeCustomer(target *Customer) {
	for i, c := range s.Customers {
		if c == target {
			s.Customers = append(s.Customers[:i], s.Customers[i+1:]...)
			return
		}
	}
}

// scoreMultiplier rewards fast deliveries: serving a customer with most of
// their patience left doubles the points.
func scoreMultiplier(c *Customer) int {
	if c.Fraction() > 0.5 {
		return 2
	}
	return 1
}
