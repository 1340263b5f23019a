package game

import "github.com/vovakirdan/hedgeheart/internal/core"

// Intent is the control record read every frame.
type Intent struct {
	Left  bool
	Right bool
	Jump  bool
	Down  bool
}

// Aggregator merges local and remote control into one Intent. Local edges
// set or clear single flags; a remote command replaces the whole record.
// The last writer wins.
type Aggregator struct {
	intent Intent
	remote bool // last write came from the remote controller
}

// Intent returns the current record.
func (a *Aggregator) Intent() Intent {
	return a.intent
}

// Remote reports whether the record was last written remotely.
func (a *Aggregator) Remote() bool {
	return a.remote
}

// Apply records a local press or release.
func (a *Aggregator) Apply(e core.Edge) {
	flag := a.flag(e.Action)
	if flag == nil {
		return
	}
	*flag = e.Pressed
	a.remote = false
}

// Command overwrites the record from a remote movement command. Session
// commands leave it untouched.
func (a *Aggregator) Command(c core.Command) {
	if !c.Movement() {
		return
	}
	a.intent = Intent{}
	switch c {
	case core.CommandLeft:
		a.intent.Left = true
	case core.CommandRight:
		a.intent.Right = true
	case core.CommandJump:
		a.intent.Jump = true
	}
	a.remote = true
}

// Clear releases everything.
func (a *Aggregator) Clear() {
	a.intent = Intent{}
	a.remote = false
}

func (a *Aggregator) flag(act core.Action) *bool {
	switch act {
	case core.ActionLeft:
		return &a.intent.Left
	case core.ActionRight:
		return &a.intent.Right
	case core.ActionJump:
		return &a.intent.Jump
	case core.ActionDown:
		return &a.intent.Down
	}
	return nil
}
