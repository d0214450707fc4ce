package types

// Mode represents the current mode of the TUI
type Mode int

const (
	// Normal is the default mode for column navigation
	Normal Mode = iota
	// Input is the mode for typing a name or path into the prompt
	Input
	// Confirm is the mode for answering a yes/no question
	Confirm
)

func (m Mode) String() string {
	switch m {
	case Input:
		return "input"
	case Confirm:
		return "confirm"
	default:
		return "normal"
	}
}
