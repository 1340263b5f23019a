package physics

import (
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/vovakirdan/hedgeheart/internal/core"
)

// easings maps the portable ease names onto gween curves.
var easings = map[core.Ease]ease.TweenFunc{
	core.EaseLinear:     ease.Linear,
	core.EaseSineIn:     ease.InSine,
	core.EaseSineOut:    ease.OutSine,
	core.EaseSineInOut:  ease.InOutSine,
	core.EaseCubicInOut: ease.InOutCubic,
	core.EaseQuadOut:    ease.OutQuad,
	core.EaseBackIn:     ease.InBack,
	core.EaseBackOut:    ease.OutBack,
	core.EaseBackInOut:  ease.InOutBack,
}

func easing(e core.Ease) ease.TweenFunc {
	if fn, ok := easings[e]; ok {
		return fn
	}
	return ease.Linear
}

// track plays a chain of tweens on one entity. A parallel motion gets one
// track per tween.
type track struct {
	steps    []core.Tween
	loop     bool
	loopFrom int

	idx     int
	delay   time.Duration
	runs    int  // completed runs of the current step
	back    bool // playing the yoyo half
	applied float64
	tw      *gween.Tween
	done    bool
}

func newTrack(steps []core.Tween, loop bool, loopFrom int) *track {
	if loopFrom < 0 || loopFrom >= len(steps) {
		loopFrom = 0
	}
	t := &track{steps: steps, loop: loop, loopFrom: loopFrom}
	t.enter(0)
	return t
}

// enter starts step i from its beginning, including its delay.
func (t *track) enter(i int) {
	t.idx = i
	t.runs = 0
	t.back = false
	t.applied = 0
	t.delay = t.steps[i].Delay
	t.tw = t.forward()
}

func (t *track) forward() *gween.Tween {
	s := t.steps[t.idx]
	return gween.New(0, float32(s.By), seconds(s.Duration), easing(s.Ease))
}

func (t *track) backward() *gween.Tween {
	s := t.steps[t.idx]
	return gween.New(float32(s.By), 0, seconds(s.Duration), easing(s.Ease))
}

// advance moves the track by dt and applies the property deltas to b.
func (t *track) advance(b *body, dt time.Duration) {
	if t.done {
		return
	}
	if t.delay > 0 {
		if dt <= t.delay {
			t.delay -= dt
			return
		}
		dt -= t.delay
		t.delay = 0
	}

	s := t.steps[t.idx]
	cur, finished := t.tw.Update(seconds(dt))
	b.shift(s.Prop, float64(cur)-t.applied)
	t.applied = float64(cur)
	if !finished {
		return
	}

	if s.Yoyo && !t.back {
		t.back = true
		t.tw = t.backward()
		return
	}

	t.runs++
	if s.Repeat == core.RepeatForever || t.runs <= s.Repeat {
		if !s.Yoyo {
			// Jump back to the start of the run.
			b.shift(s.Prop, -t.applied)
		}
		t.applied = 0
		t.back = false
		t.tw = t.forward()
		return
	}

	switch {
	case t.idx+1 < len(t.steps):
		t.enter(t.idx + 1)
	case t.loop:
		t.enter(t.loopFrom)
	default:
		t.done = true
	}
}

func seconds(d time.Duration) float32 {
	s := float32(d.Seconds())
	if s <= 0 {
		// gween divides by the duration.
		return 0.001
	}
	return s
}

// Animate starts a motion on the entity. Set values are applied at once;
// tweens change their property relative to its value at every frame, so
// position tweens compose with velocity.
func (w *World) Animate(id core.EntityID, m core.Motion) {
	b, ok := w.bodies[id]
	if !ok || m.Empty() {
		return
	}
	for p, v := range m.Set {
		b.set(p, v)
	}
	if len(m.Tweens) == 0 {
		return
	}
	if m.Sequential {
		w.anims[id] = append(w.anims[id], newTrack(m.Tweens, m.Loop, m.LoopFrom))
		return
	}
	for _, tw := range m.Tweens {
		w.anims[id] = append(w.anims[id], newTrack([]core.Tween{tw}, false, 0))
	}
}

// StopAnimations cancels every running animation of the entity.
func (w *World) StopAnimations(id core.EntityID) {
	delete(w.anims, id)
}

func (w *World) animate(dt time.Duration) {
	for _, id := range w.ids() {
		tracks := w.anims[id]
		if len(tracks) == 0 {
			continue
		}
		b := w.bodies[id]
		live := tracks[:0]
		for _, t := range tracks {
			t.advance(b, dt)
			if !t.done {
				live = append(live, t)
			}
		}
		if len(live) == 0 {
			delete(w.anims, id)
			continue
		}
		w.anims[id] = live
	}
}
