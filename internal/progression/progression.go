// Package progression contains the pure goal evaluation logic. It has no
// storage access and no side effects; it is cheap enough to call every frame
// and deterministic for a given set of session counters.
package progression

import "github.com/tropigo/beachbites/internal/config"

// Goals holds the tutorial graduation thresholds. Values come from
// configuration so they can be tuned without touching logic.
type Goals struct {
	TargetDeliveries int
	TargetMoney      int
}

// GoalsFromConfig builds Goals from the loaded game configuration.
func GoalsFromConfig(cfg config.TutorialConfig) Goals {
	return Goals{
		TargetDeliveries: cfg.TargetDeliveries,
		TargetMoney:      cfg.TargetMoney,
	}
}

// TutorialMet reports whether the tutorial goal is reached. Either threshold
// alone completes the tutorial (OR, boundary inclusive). Only positive
// progress is tracked: wrong deliveries never count against the player here.
func (g Goals) TutorialMet(deliveriesCorrect, moneyEarned int) bool {
	return deliveriesCorrect >= g.TargetDeliveries || moneyEarned >= g.TargetMoney
}

// Remaining returns how far each counter is from its threshold, floored at
// zero. Used by the tutorial HUD.
func (g Goals) Remaining(deliveriesCorrect, moneyEarned int) (deliveries, money int) {
	deliveries = max(0, g.TargetDeliveries-deliveriesCorrect)
	money = max(0, g.TargetMoney-moneyEarned)
	return deliveries, money
}
