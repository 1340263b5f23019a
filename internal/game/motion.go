package game

import (
	"time"

	"github.com/vovakirdan/hedgeheart/internal/core"
)

// MotionEnv carries the values a motion depends on at spawn time.
type MotionEnv struct {
	WorldW         float64
	WorldH         float64
	PlatformSpeed  float64
	VelocityFactor float64
	StartY         float64
	Delay          time.Duration // random start delay for patterns that use one
}

// Motion maps a pattern to its animation parameters. Every pattern moves the
// body or its cosmetic properties; none resizes the collision box.
func Motion(a Archetype, env MotionEnv) core.Motion {
	forever := func(tw core.Tween) core.Motion {
		tw.Yoyo = true
		tw.Repeat = core.RepeatForever
		return core.Motion{Tweens: []core.Tween{tw}}
	}

	switch a.Pattern {
	case PatternWobble:
		return forever(core.Tween{Prop: core.PropAngle, By: 10, Duration: 200 * time.Millisecond, Ease: core.EaseBackInOut})

	case PatternLeftRight:
		return forever(core.Tween{Prop: core.PropDriftX, By: -80, Duration: 200 * time.Millisecond, Ease: core.EaseSineInOut})

	case PatternLeftRightX:
		return forever(core.Tween{Prop: core.PropX, By: -15, Duration: 150 * time.Millisecond, Ease: core.EaseSineInOut, Delay: env.Delay})

	case PatternUpDown:
		return forever(core.Tween{Prop: core.PropY, By: -40, Duration: 500 * time.Millisecond, Ease: core.EaseSineInOut})

	case PatternTrot:
		return forever(core.Tween{Prop: core.PropY, By: -20, Duration: 200 * time.Millisecond, Ease: core.EaseCubicInOut})

	case PatternWinnerHeart:
		return forever(core.Tween{Prop: core.PropY, By: -200, Duration: time.Second, Ease: core.EaseSineInOut})

	case PatternFlyBy:
		d := a.MotionDuration
		if d <= 0 {
			d = 2 * time.Second
		}
		return core.Motion{Tweens: []core.Tween{{
			Prop: core.PropX, By: -(env.WorldW + 100), Duration: d,
			Ease: core.EaseSineIn, Delay: env.Delay, Repeat: core.RepeatForever,
		}}}

	case PatternDiveBomb:
		return core.Motion{Tweens: []core.Tween{{
			Prop: core.PropY, By: env.WorldH, Duration: swoopDuration(env), Ease: core.EaseBackIn,
		}}}

	case PatternLeapUp:
		return core.Motion{Tweens: []core.Tween{{
			Prop: core.PropY, By: -env.StartY, Duration: swoopDuration(env), Ease: core.EaseBackOut,
		}}}

	case PatternAppear:
		return core.Motion{
			Set:    map[core.Property]float64{core.PropAlpha: 0},
			Tweens: []core.Tween{{Prop: core.PropAlpha, By: 1, Duration: 2 * time.Second, Ease: core.EaseLinear}},
		}

	case PatternParty:
		return partyMotion(env.Delay)
	}
	return core.Motion{}
}

// swoopDuration shortens dives as the platform speeds up.
func swoopDuration(env MotionEnv) time.Duration {
	speed := env.PlatformSpeed
	if speed <= 0 {
		speed = 1
	}
	ms := env.VelocityFactor * 45 / speed
	return time.Duration(ms * float64(time.Millisecond))
}

// partyMotion pops the entity in, then loops a hop, shuffle and turn
// routine. Each loop is net zero so the dancer stays in place.
func partyMotion(delay time.Duration) core.Motion {
	hop := core.Tween{Prop: core.PropY, By: -20, Duration: 150 * time.Millisecond, Ease: core.EaseQuadOut, Yoyo: true, Repeat: 3}
	return core.Motion{
		Set: map[core.Property]float64{core.PropScaleX: 0},
		Tweens: []core.Tween{
			{Prop: core.PropScaleX, By: 1, Duration: 250 * time.Millisecond, Ease: core.EaseQuadOut, Delay: delay},
			hop,
			{Prop: core.PropX, By: -50, Duration: 500 * time.Millisecond, Ease: core.EaseCubicInOut},
			{Prop: core.PropScaleX, By: -2, Duration: 300 * time.Millisecond, Ease: core.EaseSineInOut},
			hop,
			{Prop: core.PropX, By: 50, Duration: 500 * time.Millisecond, Ease: core.EaseCubicInOut},
			{Prop: core.PropScaleX, By: 2, Duration: 300 * time.Millisecond, Ease: core.EaseSineInOut},
		},
		Sequential: true,
		Loop:       true,
		LoopFrom:   1,
	}
}

// delayed reports whether the pattern starts after a random delay.
func (p Pattern) delayed() bool {
	return p == PatternLeftRightX || p == PatternFlyBy || p == PatternParty
}
