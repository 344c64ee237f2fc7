package core

import (
	"strings"
	"testing"
)

func TestScreenSetGet(t *testing.T) {
	s := NewScreen(10, 5)

	s.SetCell(3, 2, '@', ColorYellow)

	cell := s.GetCell(3, 2)
	if cell.Rune != '@' {
		t.Errorf("Expected '@' at (3,2), got %q", cell.Rune)
	}
	if cell.Color != ColorYellow {
		t.Errorf("Expected yellow color, got %v", cell.Color)
	}
}

func TestScreenOutOfBounds(t *testing.T) {
	s := NewScreen(10, 5)

	// Should not panic
	s.Set(-1, 0, 'x')
	s.Set(0, -1, 'x')
	s.Set(10, 0, 'x')
	s.Set(0, 5, 'x')

	if cell := s.GetCell(-1, -1); cell.Rune != ' ' {
		t.Errorf("Out-of-bounds get should return blank, got %q", cell.Rune)
	}
}

func TestScreenClear(t *testing.T) {
	s := NewScreen(4, 4)
	s.SetCell(1, 1, 'x', ColorRed)

	s.Clear()

	cell := s.GetCell(1, 1)
	if cell.Rune != ' ' || cell.Color != ColorDefault {
		t.Errorf("Clear did not reset cell: %+v", cell)
	}
}

func TestScreenDrawText(t *testing.T) {
	s := NewScreen(10, 3)
	s.DrawText(2, 1, "hi", ColorDefault)

	if got := s.Row(1); got != "  hi      " {
		t.Errorf("Row(1) = %q", got)
	}
}

func TestScreenDrawTextClipped(t *testing.T) {
	s := NewScreen(5, 1)
	s.DrawText(3, 0, "long", ColorDefault)

	if got := s.Row(0); got != "   lo" {
		t.Errorf("Expected clipped text, got %q", got)
	}
}

func TestScreenResizePreservesContent(t *testing.T) {
	s := NewScreen(10, 5)
	s.Set(2, 2, '#')

	s.Resize(20, 10)

	if s.Width() != 20 || s.Height() != 10 {
		t.Errorf("Resize did not apply: %dx%d", s.Width(), s.Height())
	}
	if s.GetCell(2, 2).Rune != '#' {
		t.Error("Content lost after grow")
	}

	s.Resize(3, 3)
	if s.GetCell(2, 2).Rune != '#' {
		t.Error("Content lost after shrink within bounds")
	}
}

func TestScreenString(t *testing.T) {
	s := NewScreen(3, 2)
	s.Set(0, 0, 'a')
	s.Set(2, 1, 'b')

	got := s.String()
	lines := strings.Split(got, "\n")
	if len(lines) != 2 {
		t.Fatalf("Expected 2 lines, got %d", len(lines))
	}
	if lines[0] != "a  " || lines[1] != "  b" {
		t.Errorf("Unexpected output: %q", got)
	}
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(6, 4)
	s.DrawBox(NewRect(0, 0, 6, 4), ColorDefault)

	if s.GetCell(0, 0).Rune != '┌' || s.GetCell(5, 3).Rune != '┘' {
		t.Error("Box corners not drawn")
	}
	if s.GetCell(2, 0).Rune != '─' || s.GetCell(0, 2).Rune != '│' {
		t.Error("Box edges not drawn")
	}
}
