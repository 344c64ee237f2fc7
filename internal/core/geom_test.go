package core

import "testing"

func TestRectContains(t *testing.T) {
	r := NewRect(2, 2, 4, 3)

	tests := []struct {
		x, y int
		want bool
	}{
		{2, 2, true},
		{5, 4, true},
		{6, 2, false}, // right edge exclusive
		{2, 5, false}, // bottom edge exclusive
		{1, 2, false},
	}

	for _, tt := range tests {
		if got := r.Contains(tt.x, tt.y); got != tt.want {
			t.Errorf("Contains(%d, %d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestRectCenter(t *testing.T) {
	r := NewRect(0, 0, 10, 6)
	if c := r.Center(); c.X != 5 || c.Y != 3 {
		t.Errorf("Center() = %v", c)
	}
}

func TestPointManhattanDist(t *testing.T) {
	a := Point{X: 1, Y: 1}
	b := Point{X: 4, Y: 5}
	if d := a.ManhattanDist(b); d != 7 {
		t.Errorf("ManhattanDist = %d, want 7", d)
	}
	if d := b.ManhattanDist(a); d != 7 {
		t.Errorf("ManhattanDist should be symmetric, got %d", d)
	}
}

func TestClamp(t *testing.T) {
	if Clamp(5, 0, 10) != 5 {
		t.Error("Clamp should pass through in-range values")
	}
	if Clamp(-1, 0, 10) != 0 {
		t.Error("Clamp should raise to lower bound")
	}
	if Clamp(11, 0, 10) != 10 {
		t.Error("Clamp should lower to upper bound")
	}
}

func TestActionDirection(t *testing.T) {
	dx, dy := ActionLeft.Direction()
	if dx != -1 || dy != 0 {
		t.Errorf("ActionLeft.Direction() = (%d, %d)", dx, dy)
	}
	dx, dy = ActionConfirm.Direction()
	if dx != 0 || dy != 0 {
		t.Errorf("Non-directional action should return (0, 0), got (%d, %d)", dx, dy)
	}
}

func TestActionFoodIndex(t *testing.T) {
	if ActionFood1.FoodIndex() != 0 || ActionFood4.FoodIndex() != 3 {
		t.Error("Food action indices wrong")
	}
	if ActionThrow.FoodIndex() != -1 {
		t.Error("Non-food action should return -1")
	}
}
