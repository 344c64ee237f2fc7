package config

import (
	_ "embed"
)

//go:embed defaults/game.yaml
var defaultGameYAML []byte

// DefaultGame returns the built-in configuration, used when no YAML file is
// found anywhere in the search path and the embedded copy fails to parse.
func DefaultGame() Game {
	return Game{
		Tutorial: TutorialConfig{
			TargetDeliveries: 5,
			TargetMoney:      50,
		},
		Economy: EconomyConfig{
			StartingMoney: 0,
			MaxStock:      10,
		},
		Foods: []FoodConfig{
			{Name: "Tropical Pizza", BuyPrice: 5, SellPrice: 10, StartQty: 5, Glyph: "P"},
			{Name: "Ska Smoothie", BuyPrice: 3, SellPrice: 7, StartQty: 5, Glyph: "S"},
			{Name: "Island Ice Cream", BuyPrice: 4, SellPrice: 8, StartQty: 5, Glyph: "I"},
			{Name: "Rasta Rice Pudding", BuyPrice: 2, SellPrice: 5, StartQty: 3, Glyph: "R"},
		},
		Customers: CustomerConfig{
			SpawnIntervalSec: 5.0,
			PatienceSec:      20.0,
			MaxActive:        5,
			MissLimit:        10,
		},
		Map: MapConfig{
			Path:   "maps/beach.yaml",
			Width:  60,
			Height: 20,
		},
		Session: SessionConfig{
			AutosaveSec: 30.0,
		},
		Upgrades: []UpgradeConfig{
			{ID: "bigger_cooler", Name: "Bigger Cooler", Price: 40},
			{ID: "faster_sandals", Name: "Faster Sandals", Price: 60},
			{ID: "sun_umbrella", Name: "Sun Umbrella", Price: 25},
		},
	}
}
