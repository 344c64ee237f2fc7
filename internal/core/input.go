package core

// Action represents a semantic game action, abstracted from physical key
// presses. States consume high-level intents rather than raw key codes.
type Action int

const (
	ActionNone    Action = iota
	ActionUp             // W, Up arrow
	ActionDown           // S, Down arrow
	ActionLeft           // A, Left arrow
	ActionRight          // D, Right arrow
	ActionConfirm        // Enter - confirm selection / acknowledge overlay
	ActionCancel         // Esc, B - back out / quit to menu
	ActionThrow          // Space - throw the selected food
	ActionShop           // O - toggle the shop overlay
	ActionFood1          // 1..4 - select food type
	ActionFood2
	ActionFood3
	ActionFood4
	ActionDebugToggle // F3 - toggle diagnostic overlay
	ActionPause       // P - pause gameplay
	ActionQuit        // Q, Ctrl+C - exit session
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionConfirm:
		return "Confirm"
	case ActionCancel:
		return "Cancel"
	case ActionThrow:
		return "Throw"
	case ActionShop:
		return "Shop"
	case ActionFood1:
		return "Food1"
	case ActionFood2:
		return "Food2"
	case ActionFood3:
		return "Food3"
	case ActionFood4:
		return "Food4"
	case ActionDebugToggle:
		return "DebugToggle"
	case ActionPause:
		return "Pause"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// FoodIndex returns the 0-based food slot for selection actions, or -1.
func (a Action) FoodIndex() int {
	if a >= ActionFood1 && a <= ActionFood4 {
		return int(a - ActionFood1)
	}
	return -1
}

// Direction returns the movement delta for directional actions.
// Non-directional actions return (0, 0).
func (a Action) Direction() (dx, dy int) {
	switch a {
	case ActionUp:
		return 0, -1
	case ActionDown:
		return 0, 1
	case ActionLeft:
		return -1, 0
	case ActionRight:
		return 1, 0
	default:
		return 0, 0
	}
}
