package core

// Action represents a semantic session action, abstracted from physical key
// presses. Piece control goes through engine commands; actions cover the
// meta layer around the simulation.
type Action int

const (
	ActionNone    Action = iota
	ActionUp             // menu navigation
	ActionDown           // menu navigation
	ActionConfirm        // Enter - confirm selection in menu
	ActionBack           // Escape - go back to menu
	ActionRestart        // R key - restart after game over
	ActionQuit           // Q, Ctrl+C - exit session
	ActionPause          // P - pause/unpause
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
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionPause:
		return "Pause"
	default:
		return "Unknown"
	}
}
