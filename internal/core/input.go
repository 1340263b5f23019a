package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows the game to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone  Action = iota
	ActionLeft         // A, Left arrow - run back
	ActionRight        // D, Right arrow - run forward
	ActionJump         // Space, W, Up - jump when grounded
	ActionDown         // S, Down - drop faster while airborne
	ActionStart        // Enter, Space on the prompt - start or restart a run
	ActionQuit         // Q, Ctrl+C - exit session
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionJump:
		return "Jump"
	case ActionDown:
		return "Down"
	case ActionStart:
		return "Start"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// Source identifies where a local input edge came from.
type Source int

const (
	SourceKeyboard Source = iota
	SourceTouch
)

// Command is an action received from a remote controller.
// The numeric values are part of the wire protocol.
type Command int

const (
	CommandLeft  Command = 0
	CommandRight Command = 1
	CommandJump  Command = 2
	CommandIdle  Command = 3
	CommandStart Command = 100
	CommandReset Command = 101

	// CommandNone asks for an observation without acting. It answers
	// controller messages that carry no known action.
	CommandNone Command = -1
)

// String returns the wire name of the command.
func (c Command) String() string {
	switch c {
	case CommandLeft:
		return "Left"
	case CommandRight:
		return "Right"
	case CommandJump:
		return "Jump"
	case CommandIdle:
		return "Idle"
	case CommandStart:
		return "Start"
	case CommandReset:
		return "Reset"
	case CommandNone:
		return "None"
	default:
		return "Unknown"
	}
}

// Movement reports whether the command changes the input record.
// Start and Reset drive the session instead.
func (c Command) Movement() bool {
	return c >= CommandLeft && c <= CommandIdle
}

// Edge is a single press or release of a local action.
type Edge struct {
	Action  Action
	Source  Source
	Pressed bool
}

// InputFrame represents everything that happened to the controls during one
// simulation tick. Edges are applied in order; a remote command, if any, is
// applied after them.
type InputFrame struct {
	Edges  []Edge
	Remote *Command
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{}
}

// Press records a press edge.
func (f *InputFrame) Press(a Action, src Source) {
	f.Edges = append(f.Edges, Edge{Action: a, Source: src, Pressed: true})
}

// Release records a release edge.
func (f *InputFrame) Release(a Action, src Source) {
	f.Edges = append(f.Edges, Edge{Action: a, Source: src, Pressed: false})
}

// SetRemote stores the remote command for this frame.
func (f *InputFrame) SetRemote(c Command) {
	f.Remote = &c
}

// Clear resets all edges for the next frame.
func (f *InputFrame) Clear() {
	f.Edges = f.Edges[:0]
	f.Remote = nil
}
