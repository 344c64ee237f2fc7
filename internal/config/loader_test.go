package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadEmbeddedDefault(t *testing.T) {
	// No custom path and no local configs dir: should fall through to the
	// embedded default.
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Tutorial.TargetDeliveries != 5 {
		t.Errorf("Expected default target_deliveries 5, got %d", cfg.Tutorial.TargetDeliveries)
	}
	if cfg.Tutorial.TargetMoney != 50 {
		t.Errorf("Expected default target_money 50, got %d", cfg.Tutorial.TargetMoney)
	}
	if len(cfg.Foods) != 4 {
		t.Errorf("Expected 4 default foods, got %d", len(cfg.Foods))
	}
}

func TestLoadCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "game.yaml")
	data := []byte("tutorial:\n  target_deliveries: 3\n  target_money: 25\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Tutorial.TargetDeliveries != 3 || cfg.Tutorial.TargetMoney != 25 {
		t.Errorf("Custom thresholds not applied: %+v", cfg.Tutorial)
	}

	// Unspecified sections should be backfilled from defaults.
	if len(cfg.Foods) == 0 {
		t.Error("Partial config should inherit default food catalog")
	}
	if cfg.Customers.MissLimit == 0 {
		t.Error("Partial config should inherit default miss limit")
	}
}

func TestLoadCustomPathMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Error("Explicit missing path should return an error")
	}
}

func TestFoodLookup(t *testing.T) {
	cfg := DefaultGame()

	f, ok := cfg.Food("Ska Smoothie")
	if !ok {
		t.Fatal("Expected to find Ska Smoothie")
	}
	if f.SellPrice != 7 {
		t.Errorf("Expected sell price 7, got %d", f.SellPrice)
	}

	if _, ok := cfg.Food("Deep Dish"); ok {
		t.Error("Unknown food should not be found")
	}
}
