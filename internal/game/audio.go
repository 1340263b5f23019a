package game

// Cue is a sound effect.
type Cue int

const (
	CueHit Cue = iota
	CuePass
	CueJump
	CueMove
	CueWinner
)

// String returns the cue name.
func (c Cue) String() string {
	switch c {
	case CueHit:
		return "hit"
	case CuePass:
		return "pass"
	case CueJump:
		return "jump"
	case CueMove:
		return "move"
	case CueWinner:
		return "winner"
	default:
		return "unknown"
	}
}

// Audio plays sound cues. Rates are playback speed multipliers starting at 1.
type Audio interface {
	Play(c Cue)
	Rate(c Cue) float64
	SetRate(c Cue, rate float64)
}

// Silent is an Audio that plays nothing but remembers rates.
type Silent struct {
	rates map[Cue]float64
}

// NewSilent creates a silent audio sink.
func NewSilent() *Silent {
	return &Silent{rates: make(map[Cue]float64)}
}

// Play does nothing.
func (s *Silent) Play(Cue) {}

// Rate returns the playback rate of the cue.
func (s *Silent) Rate(c Cue) float64 {
	if r, ok := s.rates[c]; ok {
		return r
	}
	return 1
}

// SetRate changes the playback rate of the cue.
func (s *Silent) SetRate(c Cue, rate float64) { s.rates[c] = rate }
