package progression

import "testing"

func defaultGoals() Goals {
	return Goals{TargetDeliveries: 5, TargetMoney: 50}
}

func TestTutorialMetORSemantics(t *testing.T) {
	g := defaultGoals()

	tests := []struct {
		deliveries, money int
		want              bool
	}{
		{5, 0, true},   // deliveries alone
		{0, 50, true},  // money alone
		{4, 49, false}, // neither threshold reached
		{5, 50, true},  // both
		{0, 0, false},
		{6, 0, true},  // over threshold
		{4, 51, true}, // money carries it
	}

	for _, tt := range tests {
		if got := g.TutorialMet(tt.deliveries, tt.money); got != tt.want {
			t.Errorf("TutorialMet(%d, %d) = %v, want %v",
				tt.deliveries, tt.money, got, tt.want)
		}
	}
}

func TestTutorialMetIdempotent(t *testing.T) {
	g := defaultGoals()

	// Repeated polling must not change the answer.
	for i := 0; i < 100; i++ {
		if !g.TutorialMet(5, 0) {
			t.Fatal("Result changed across repeated calls")
		}
	}
}

func TestRemaining(t *testing.T) {
	g := defaultGoals()

	d, m := g.Remaining(3, 20)
	if d != 2 || m != 30 {
		t.Errorf("Remaining(3, 20) = (%d, %d), want (2, 30)", d, m)
	}

	// Floored at zero once a threshold is exceeded.
	d, m = g.Remaining(10, 100)
	if d != 0 || m != 0 {
		t.Errorf("Remaining(10, 100) = (%d, %d), want (0, 0)", d, m)
	}
}
