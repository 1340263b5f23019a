package core

import "time"

// Property is an animatable attribute of a world entity.
type Property int

const (
	PropX      Property = iota // horizontal position, moves the collision box
	PropY                      // vertical position, moves the collision box
	PropDriftX                 // velocity added on top of the base horizontal velocity
	PropAngle                  // rotation in degrees, render only
	PropAlpha                  // opacity 0..1, render only
	PropScaleX                 // horizontal display scale, render only
	PropScaleY                 // vertical display scale, render only
)

// String returns the property name.
func (p Property) String() string {
	switch p {
	case PropX:
		return "x"
	case PropY:
		return "y"
	case PropDriftX:
		return "driftX"
	case PropAngle:
		return "angle"
	case PropAlpha:
		return "alpha"
	case PropScaleX:
		return "scaleX"
	case PropScaleY:
		return "scaleY"
	default:
		return "unknown"
	}
}

// Ease selects an easing curve.
type Ease int

const (
	EaseLinear Ease = iota
	EaseSineIn
	EaseSineOut
	EaseSineInOut
	EaseCubicInOut
	EaseQuadOut
	EaseBackIn
	EaseBackOut
	EaseBackInOut
)

// RepeatForever makes a tween repeat until its entity is destroyed.
const RepeatForever = -1

// Tween animates one property by a relative amount.
type Tween struct {
	Prop     Property
	By       float64
	Duration time.Duration
	Ease     Ease
	Delay    time.Duration // wait before the first run
	Yoyo     bool          // play back to the start after each forward run
	Repeat   int           // extra runs after the first, or RepeatForever
}

// Motion is a complete animation description for an entity. It is plain data
// so the game can describe movement without knowing the physics world.
type Motion struct {
	// Set assigns property values once before any tween starts.
	Set map[Property]float64
	// Tweens run in parallel unless Sequential is set.
	Tweens     []Tween
	Sequential bool
	// Loop restarts a sequential chain at step LoopFrom after its last step.
	Loop     bool
	LoopFrom int
}

// Empty reports whether the motion does nothing.
func (m Motion) Empty() bool {
	return len(m.Set) == 0 && len(m.Tweens) == 0
}
