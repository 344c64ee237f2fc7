package sim

import (
	"math/rand"
	"testing"

	"github.com/tropigo/beachbites/internal/config"
	"github.com/tropigo/beachbites/internal/world"
)

func testConfig() config.Game {
	return config.Game{
		Economy: config.EconomyConfig{StartingMoney: 100, MaxStock: 10},
		Foods: []config.FoodConfig{
			{Name: "Tropical Pizza", BuyPrice: 4, SellPrice: 10, StartQty: 3},
			{Name: "Ska Smoothie", BuyPrice: 2, SellPrice: 6, StartQty: 3},
		},
		Customers: config.CustomerConfig{
			SpawnIntervalSec: 2,
			PatienceSec:      10,
			MaxActive:        3,
			MissLimit:        3,
		},
	}
}

func testSession(t *testing.T, forgiving bool) *Session {
	t.Helper()
	cfg := testConfig()
	m := world.Generate(20, 10)
	return New(cfg, m, rand.New(rand.NewSource(7)), forgiving, cfg.Economy.StartingMoney, nil)
}

// plantCustomer puts a customer right next to the player.
func plantCustomer(s *Session, want string) *Customer {
	c := &Customer{
		Pos:      s.Player.Add(1, 0),
		Want:     want,
		Patience: 10,
		MaxWait:  10,
	}
	s.Customers = append(s.Customers, c)
	return c
}

func TestMoveBlockedByTerrain(t *testing.T) {
	s := testSession(t, false)

	start := s.Player
	s.Move(1, 0)
	if s.Player == start {
		t.Fatal("move along the road should succeed")
	}

	// Walk into the water border; position must not change.
	for i := 0; i < 50; i++ {
		s.Move(-1, 0)
	}
	if !s.m.Walkable(s.Player.X, s.Player.Y) {
		t.Errorf("player ended on unwalkable tile %v", s.Player)
	}
}

func TestServeCorrectFood(t *testing.T) {
	s := testSession(t, false)
	plantCustomer(s, "Tropical Pizza")
	s.SelectFood(0)

	money, stock := s.Money, s.Stock["Tropical Pizza"]
	if got := s.Serve(); got != ServeCorrect {
		t.Fatalf("Serve() = %v, want correct", got)
	}
	if s.Deliveries != 1 {
		t.Errorf("Deliveries = %d", s.Deliveries)
	}
	if s.Money != money+10 {
		t.Errorf("Money = %d, want %d", s.Money, money+10)
	}
	if s.Earned != 10 {
		t.Errorf("Earned = %d, want 10", s.Earned)
	}
	if s.Stock["Tropical Pizza"] != stock-1 {
		t.Errorf("stock not decremented")
	}
	if len(s.Customers) != 0 {
		t.Error("served customer should leave")
	}
}

func TestServeFastDeliveryScoresDouble(t *testing.T) {
	s := testSession(t, false)
	c := plantCustomer(s, "Tropical Pizza")
	c.Patience = 9 // nearly full patience
	s.SelectFood(0)

	s.Serve()
	if s.Score != 20 {
		t.Errorf("Score = %d, want 20 for a fast delivery", s.Score)
	}
}

func TestServeWrongFoodPenalized(t *testing.T) {
	s := testSession(t, false)
	plantCustomer(s, "Ska Smoothie")
	s.SelectFood(0) // pizza

	if got := s.Serve(); got != ServeWrong {
		t.Fatalf("Serve() = %v, want wrong", got)
	}
	if s.Missed != 1 {
		t.Errorf("Missed = %d, want 1", s.Missed)
	}
	if len(s.Customers) != 0 {
		t.Error("offended customer should leave")
	}
}

func TestServeWrongFoodForgiving(t *testing.T) {
	s := testSession(t, true)
	plantCustomer(s, "Ska Smoothie")
	s.SelectFood(0)

	if got := s.Serve(); got != ServeWrong {
		t.Fatalf("Serve() = %v", got)
	}
	if s.Missed != 0 {
		t.Error("forgiving mode must not count a miss")
	}
	if len(s.Customers) != 1 {
		t.Error("forgiving mode keeps the customer for another try")
	}

	// Second attempt with the right food succeeds, and food stays free.
	s.SelectFood(1)
	if got := s.Serve(); got != ServeCorrect {
		t.Errorf("retry Serve() = %v, want correct", got)
	}
	if s.Stock["Ska Smoothie"] != 3 {
		t.Errorf("forgiving serve consumed stock: %d", s.Stock["Ska Smoothie"])
	}
}

func TestServeOutOfStock(t *testing.T) {
	s := testSession(t, false)
	plantCustomer(s, "Tropical Pizza")
	s.SelectFood(0)
	s.Stock["Tropical Pizza"] = 0

	if got := s.Serve(); got != ServeNoStock {
		t.Errorf("Serve() = %v, want no-stock", got)
	}
	if len(s.Customers) != 1 {
		t.Error("customer should still be waiting")
	}
}

func TestServeNoCustomerAdjacent(t *testing.T) {
	s := testSession(t, false)
	if got := s.Serve(); got != ServeNone {
		t.Errorf("Serve() = %v, want none", got)
	}
}

func TestPatienceExpiryCountsMiss(t *testing.T) {
	s := testSession(t, false)
	c := plantCustomer(s, "Tropical Pizza")
	c.Patience = 0.5

	s.Update(1.0)

	if s.Missed != 1 {
		t.Errorf("Missed = %d, want 1", s.Missed)
	}
	if len(s.Customers) != 0 {
		t.Error("expired customer should be removed")
	}
}

func TestMissLimitEndsSession(t *testing.T) {
	s := testSession(t, false)
	for i := 0; i < 3; i++ {
		c := plantCustomer(s, "Tropical Pizza")
		c.Patience = 0.1
		s.Update(1.0)
	}

	if !s.Over() {
		t.Fatal("session should end at the miss limit")
	}
	if s.Reason() != OverMissLimit {
		t.Errorf("Reason() = %v", s.Reason())
	}
}

func TestForgivingIgnoresMissLimit(t *testing.T) {
	s := testSession(t, true)
	for i := 0; i < 10; i++ {
		c := plantCustomer(s, "Tropical Pizza")
		c.Patience = 0.1
		s.Update(1.0)
	}

	if s.Over() {
		t.Error("forgiving sessions never end on misses")
	}
}

func TestBankruptcyEndsSession(t *testing.T) {
	s := testSession(t, false)
	for name := range s.Stock {
		s.Stock[name] = 0
	}
	s.Money = 1 // below the cheapest buy price of 2

	s.Update(0.1)

	if !s.Over() || s.Reason() != OverBankrupt {
		t.Errorf("Over=%v Reason=%v, want bankrupt", s.Over(), s.Reason())
	}
}

func TestBuyStock(t *testing.T) {
	s := testSession(t, false)

	if !s.BuyStock("Ska Smoothie") {
		t.Fatal("buy should succeed with money and room")
	}
	if s.Money != 98 || s.Stock["Ska Smoothie"] != 4 {
		t.Errorf("money=%d stock=%d", s.Money, s.Stock["Ska Smoothie"])
	}

	s.Stock["Ska Smoothie"] = s.MaxStock
	if s.BuyStock("Ska Smoothie") {
		t.Error("buy past MaxStock should fail")
	}

	s.Money = 0
	s.Stock["Ska Smoothie"] = 0
	if s.BuyStock("Ska Smoothie") {
		t.Error("buy without money should fail")
	}

	if s.BuyStock("Jerk Tofu") {
		t.Error("unknown food should fail")
	}
}

func TestSpawningRespectsMaxActive(t *testing.T) {
	s := testSession(t, false)

	for i := 0; i < 200; i++ {
		s.Update(0.5)
		if len(s.Customers) > s.cfg.Customers.MaxActive {
			t.Fatalf("active customers %d exceeds limit", len(s.Customers))
		}
		// Keep patience topped up so the cap is actually exercised.
		for _, c := range s.Customers {
			c.Patience = 10
		}
	}
	if len(s.Customers) == 0 {
		t.Error("expected customers to spawn")
	}
}

func TestTimedRunEnds(t *testing.T) {
	cfg := testConfig()
	cfg.Session.RunDurationSec = 5
	m := world.Generate(20, 10)
	s := New(cfg, m, rand.New(rand.NewSource(1)), false, 100, nil)

	for i := 0; i < 12; i++ {
		s.Update(0.5)
	}
	if !s.Over() || s.Reason() != OverTimeUp {
		t.Errorf("Over=%v Reason=%v, want time up", s.Over(), s.Reason())
	}
}

func TestUpgradeEffects(t *testing.T) {
	s := testSession(t, false)
	base := s.MaxStock

	s.ApplyUpgrades([]string{"bigger_cooler", "faster_sandals"})
	s.ApplyUpgrades([]string{"bigger_cooler"}) // re-applying must not stack

	if !s.SpeedBoost || !s.StockBoost {
		t.Error("upgrade flags not set")
	}
	if want := base + base/2; s.MaxStock != want {
		t.Errorf("MaxStock = %d, want %d", s.MaxStock, want)
	}
}

func TestPersistedStockOverridesCatalog(t *testing.T) {
	cfg := testConfig()
	m := world.Generate(20, 10)
	s := New(cfg, m, rand.New(rand.NewSource(1)), false, 100, map[string]int{"Tropical Pizza": 7})

	if s.Stock["Tropical Pizza"] != 7 {
		t.Errorf("stock = %d, want persisted 7", s.Stock["Tropical Pizza"])
	}
	if s.Stock["Ska Smoothie"] != 3 {
		t.Errorf("stock = %d, want catalog 3", s.Stock["Ska Smoothie"])
	}
}
