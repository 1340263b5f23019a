package core

// Observation is the message sent to a remote controller after it acted.
type Observation struct {
	State  [][]int `json:"state"`
	Reward int     `json:"reward"`
	Done   bool    `json:"done"`
}

// Grid markers.
const (
	CellEmpty  = 0
	CellPlayer = 1
)
