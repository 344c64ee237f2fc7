package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tropigo/beachbites/internal/core"
)

// KeyMapper translates Bubble Tea key messages to game actions. This
// centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to a logical action. Returns the action
// (may be ActionNone) and whether it is a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	switch msg.String() {
	case "ctrl+c", "q":
		return core.ActionQuit, true
	case "w", "up", "k":
		return core.ActionUp, false
	case "s", "down", "j":
		return core.ActionDown, false
	case "a", "left", "h":
		return core.ActionLeft, false
	case "d", "right", "l":
		return core.ActionRight, false
	case "enter":
		return core.ActionConfirm, false
	case "b", "esc":
		return core.ActionCancel, false
	case " ":
		return core.ActionThrow, false
	case "o":
		return core.ActionShop, false
	case "1":
		return core.ActionFood1, false
	case "2":
		return core.ActionFood2, false
	case "3":
		return core.ActionFood3, false
	case "4":
		return core.ActionFood4, false
	case "f3", "`":
		return core.ActionDebugToggle, false
	case "p":
		return core.ActionPause, false
	}
	return core.ActionNone, false
}
