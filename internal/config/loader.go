package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load loads the game configuration.
// Search order: customPath -> ~/.beachbites/configs/game.yaml ->
// ./configs/game.yaml -> embedded default -> hardcoded default.
func Load(customPath string) (Game, error) {
	var cfg Game

	// An explicit path must exist and parse; everything else is best-effort.
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return withDefaults(cfg), nil
	}

	if userCfgPath := userConfigPath("game.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err == nil {
				return withDefaults(cfg), nil
			}
		}
	}

	if data, err := os.ReadFile("configs/game.yaml"); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return withDefaults(cfg), nil
		}
	}

	if err := yaml.Unmarshal(defaultGameYAML, &cfg); err != nil {
		return DefaultGame(), nil
	}
	return withDefaults(cfg), nil
}

// userConfigPath returns the path to a user config file, or empty if home is
// unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".beachbites", "configs", filename)
}

// withDefaults fills zero-valued required fields from the built-in defaults,
// so a partial user config never yields unwinnable tutorial goals or an
// empty food catalog.
func withDefaults(cfg Game) Game {
	def := DefaultGame()

	if cfg.Tutorial.TargetDeliveries <= 0 {
		cfg.Tutorial.TargetDeliveries = def.Tutorial.TargetDeliveries
	}
	if cfg.Tutorial.TargetMoney <= 0 {
		cfg.Tutorial.TargetMoney = def.Tutorial.TargetMoney
	}
	if cfg.Economy.MaxStock <= 0 {
		cfg.Economy.MaxStock = def.Economy.MaxStock
	}
	if len(cfg.Foods) == 0 {
		cfg.Foods = def.Foods
	}
	if cfg.Customers.SpawnIntervalSec <= 0 {
		cfg.Customers.SpawnIntervalSec = def.Customers.SpawnIntervalSec
	}
	if cfg.Customers.PatienceSec <= 0 {
		cfg.Customers.PatienceSec = def.Customers.PatienceSec
	}
	if cfg.Customers.MaxActive <= 0 {
		cfg.Customers.MaxActive = def.Customers.MaxActive
	}
	if cfg.Customers.MissLimit <= 0 {
		cfg.Customers.MissLimit = def.Customers.MissLimit
	}
	if cfg.Map.Width <= 0 || cfg.Map.Height <= 0 {
		cfg.Map.Width = def.Map.Width
		cfg.Map.Height = def.Map.Height
	}
	if cfg.Session.AutosaveSec <= 0 {
		cfg.Session.AutosaveSec = def.Session.AutosaveSec
	}
	return cfg
}
