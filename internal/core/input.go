package core

// Action represents a semantic input, abstracted from physical key presses
// or touches.
type Action int

const (
	ActionNone    Action = iota
	ActionJump           // Space, Up, W, touch
	ActionConfirm        // Enter - submit player name
	ActionRestart        // R - start a new run after game over
	ActionBack           // Esc - back to name entry
	ActionHelp           // ? - toggle key help
	ActionQuit           // Q, Ctrl+C
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionJump:
		return "Jump"
	case ActionConfirm:
		return "Confirm"
	case ActionRestart:
		return "Restart"
	case ActionBack:
		return "Back"
	case ActionHelp:
		return "Help"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}
