// Package config provides YAML-based game configuration: tutorial goals,
// economy defaults, food catalog, and customer tuning.
package config

// Game contains all tunable configuration for Beach Bites.
type Game struct {
	Tutorial  TutorialConfig  `yaml:"tutorial"`
	Economy   EconomyConfig   `yaml:"economy"`
	Foods     []FoodConfig    `yaml:"foods"`
	Customers CustomerConfig  `yaml:"customers"`
	Map       MapConfig       `yaml:"map"`
	Session   SessionConfig   `yaml:"session"`
	Upgrades  []UpgradeConfig `yaml:"upgrades"`
}

// TutorialConfig defines the graduation thresholds. Either threshold alone
// completes the tutorial.
type TutorialConfig struct {
	TargetDeliveries int `yaml:"target_deliveries"`
	TargetMoney      int `yaml:"target_money"`
}

// EconomyConfig defines starting-economy defaults. They mirror the values
// the first migration seeds into the settings row; at session start the
// persisted row wins, so editing the YAML does not rewrite saved settings.
type EconomyConfig struct {
	StartingMoney int `yaml:"starting_money"`
	MaxStock      int `yaml:"max_stock"`
}

// FoodConfig describes one entry of the food catalog.
type FoodConfig struct {
	Name      string `yaml:"name"`
	BuyPrice  int    `yaml:"buy_price"`
	SellPrice int    `yaml:"sell_price"`
	StartQty  int    `yaml:"start_qty"`
	Glyph     string `yaml:"glyph"`
}

// CustomerConfig tunes customer spawning and patience.
type CustomerConfig struct {
	SpawnIntervalSec float64 `yaml:"spawn_interval_sec"`
	PatienceSec      float64 `yaml:"patience_sec"`
	MaxActive        int     `yaml:"max_active"`
	MissLimit        int     `yaml:"miss_limit"`
}

// MapConfig points at the tile map file. An unreadable map falls back to a
// generated one rather than failing the launch.
type MapConfig struct {
	Path   string `yaml:"path"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

// SessionConfig tunes run-scoped behavior.
type SessionConfig struct {
	AutosaveSec    float64 `yaml:"autosave_sec"`
	RunDurationSec float64 `yaml:"run_duration_sec"` // 0 = untimed
}

// UpgradeConfig describes one purchasable shop upgrade.
type UpgradeConfig struct {
	ID    string `yaml:"id"`
	Name  string `yaml:"name"`
	Price int    `yaml:"price"`
}

// FoodNames returns the catalog names in declaration order.
func (g Game) FoodNames() []string {
	names := make([]string, 0, len(g.Foods))
	for _, f := range g.Foods {
		names = append(names, f.Name)
	}
	return names
}

// Food looks up a catalog entry by name.
func (g Game) Food(name string) (FoodConfig, bool) {
	for _, f := range g.Foods {
		if f.Name == name {
			return f, true
		}
	}
	return FoodConfig{}, false
}

// Upgrade looks up an upgrade by ID.
func (g Game) Upgrade(id string) (UpgradeConfig, bool) {
	for _, u := range g.Upgrades {
		if u.ID == id {
			return u, true
		}
	}
	return UpgradeConfig{}, false
}
