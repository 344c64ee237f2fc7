package tui

import (
	"bytes"
	"io"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/tropigo/beachbites/internal/config"
	"github.com/tropigo/beachbites/internal/core"
	"github.com/tropigo/beachbites/internal/dal"
	"github.com/tropigo/beachbites/internal/storage"
)

func TestKeyMapperBindings(t *testing.T) {
	km := NewKeyMapper()

	cases := []struct {
		key    string
		action core.Action
		quit   bool
	}{
		{"w", core.ActionUp, false},
		{"down", core.ActionDown, false},
		{"h", core.ActionLeft, false},
		{"enter", core.ActionConfirm, false},
		{"esc", core.ActionCancel, false},
		{" ", core.ActionThrow, false},
		{"o", core.ActionShop, false},
		{"2", core.ActionFood2, false},
		{"p", core.ActionPause, false},
		{"q", core.ActionQuit, true},
		{"ctrl+c", core.ActionQuit, true},
		{"x", core.ActionNone, false},
	}
	for _, c := range cases {
		msg := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(c.key)}
		switch c.key {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		case " ":
			msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
		case "ctrl+c":
			msg = tea.KeyMsg{Type: tea.KeyCtrlC}
		}
		action, quit := km.MapKey(msg)
		if action != c.action || quit != c.quit {
			t.Errorf("MapKey(%q) = (%v, %v), want (%v, %v)", c.key, action, quit, c.action, c.quit)
		}
	}
}

func TestRenderScreenShape(t *testing.T) {
	s := core.NewScreen(10, 4)
	s.DrawText(0, 1, "beach", core.ColorYellow)

	out := RenderScreen(s)

	if got := strings.Count(out, "\n"); got != 3 {
		t.Errorf("newline count = %d, want 3", got)
	}
	if !strings.Contains(out, "beach") {
		t.Error("rendered output missing drawn text")
	}
}

func testDeps(t *testing.T) Deps {
	t.Helper()
	logger := log.New(io.Discard)
	store, err := storage.OpenMemory(logger)
	if err != nil {
		t.Fatalf("OpenMemory() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return Deps{
		DAL:    dal.New(store, logger),
		Cfg:    config.DefaultGame(),
		Logger: logger,
		Runtime: core.RuntimeConfig{
			ScreenW:  80,
			ScreenH:  24,
			TickRate: 30,
			Seed:     7,
		},
	}
}

func TestModelTicksAndRenders(t *testing.T) {
	m := NewModel(testDeps(t))
	m.Init()

	next, cmd := m.Update(TickMsg{})
	m = next.(Model)
	if cmd == nil {
		t.Error("tick should schedule the next tick")
	}

	view := m.View()
	if !strings.Contains(view, "B E A C H") {
		t.Error("title screen not rendered")
	}
}

func TestModelAudioCuesReachSink(t *testing.T) {
	deps := testDeps(t)
	var bell bytes.Buffer
	deps.AudioSink = &bell
	m := NewModel(deps)
	m.Init()

	// Moving the menu cursor plays a cue through the sink.
	m.Update(tea.KeyMsg{Type: tea.KeyDown})

	if !strings.Contains(bell.String(), "\a") {
		t.Error("menu move should ring the terminal bell through the sink")
	}
}

func TestModelQuitKey(t *testing.T) {
	m := NewModel(testDeps(t))
	m.Init()

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	m = next.(Model)
	if cmd == nil {
		t.Fatal("quit key should produce a command")
	}
	if m.View() != "" {
		t.Error("quitting model should render nothing")
	}
}
