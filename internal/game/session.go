package game

import "time"

// State is the session phase.
type State int

const (
	StateBefore State = iota
	StateDuring
	StateAfter
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateBefore:
		return "before"
	case StateDuring:
		return "during"
	case StateAfter:
		return "after"
	default:
		return "unknown"
	}
}

// Outcome is how a session ended.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeLost
	OutcomeWon
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case OutcomeLost:
		return "lost"
	case OutcomeWon:
		return "won"
	default:
		return "none"
	}
}

// Session is the mutable state of one play-through.
type Session struct {
	State           State
	Score           int // countdown seconds left, may go negative
	Clock           int // seconds elapsed while during
	Speed           float64
	WinnerTriggered bool
	Epoch           uint64
	Outcome         Outcome
	Passed          int
	StartedAt       time.Time
	EndedAt         time.Time
}

// CanStart reports whether a start control begins a new run.
func (s Session) CanStart() bool {
	return s.State != StateDuring
}

// Result is reported when a session ends.
type Result struct {
	Outcome   Outcome
	Score     int
	Clock     int
	Speed     float64
	Passed    int
	Remote    bool
	StartedAt time.Time
	EndedAt   time.Time
}
