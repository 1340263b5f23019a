// Package physics is a small arcade-style world: axis-aligned bodies with
// velocity and gravity, one-way static ground colliders, world bounds,
// overlap callbacks and eased property animations.
package physics

import (
	"math"
	"sort"
	"time"

	"github.com/vovakirdan/hedgeheart/internal/core"
)

// restThreshold is the rebound speed below which a landing body stops.
const restThreshold = 60.0

// Config describes the world.
type Config struct {
	Width   float64
	Height  float64
	Gravity float64 // world gravity, positive pulls down
}

// body is a world entity. Position is the center of the collision box.
type body struct {
	id     core.EntityID
	name   string
	x, y   float64
	w, h   float64
	vx, vy float64
	driftX float64
	gravY  float64 // added to world gravity
	static bool

	bounce        float64
	collideBounds bool
	onGround      bool

	depth  int
	tint   core.Color
	flipX  bool
	angle  float64
	alpha  float64
	scaleX float64
	scaleY float64
}

func (b *body) box() core.Box {
	return core.BoxAt(b.x, b.y, b.w, b.h)
}

type collider struct {
	a, b core.EntityID
	fn   core.CollideFunc
}

// World holds bodies and advances them. It is not safe for concurrent use.
type World struct {
	cfg       Config
	nextID    core.EntityID
	bodies    map[core.EntityID]*body
	colliders []collider
	anims     map[core.EntityID][]*track
	paused    bool
}

// New creates an empty world.
func New(cfg Config) *World {
	return &World{
		cfg:    cfg,
		bodies: make(map[core.EntityID]*body),
		anims:  make(map[core.EntityID][]*track),
	}
}

// Size returns the world dimensions.
func (w *World) Size() (float64, float64) {
	return w.cfg.Width, w.cfg.Height
}

// Gravity returns the world gravity.
func (w *World) Gravity() float64 {
	return w.cfg.Gravity
}

func (w *World) add(b *body) core.EntityID {
	w.nextID++
	b.id = w.nextID
	b.alpha, b.scaleX, b.scaleY = 1, 1, 1
	w.bodies[b.id] = b
	return b.id
}

// Create adds a dynamic body.
func (w *World) Create(s core.BodySpec) core.EntityID {
	return w.add(&body{name: s.Name, x: s.X, y: s.Y, w: s.W, h: s.H, depth: s.Depth})
}

// CreateStatic adds an immovable collider. Bodies collided with it land on
// its top edge.
func (w *World) CreateStatic(name string, x, y, width, height float64) core.EntityID {
	return w.add(&body{name: name, x: x, y: y, w: width, h: height, static: true})
}

// Exists reports whether the entity is alive.
func (w *World) Exists(id core.EntityID) bool {
	_, ok := w.bodies[id]
	return ok
}

// Destroy removes an entity with its colliders and animations.
func (w *World) Destroy(id core.EntityID) {
	if _, ok := w.bodies[id]; !ok {
		return
	}
	delete(w.bodies, id)
	delete(w.anims, id)
	kept := w.colliders[:0]
	for _, c := range w.colliders {
		if c.a != id && c.b != id {
			kept = append(kept, c)
		}
	}
	w.colliders = kept
}

// Position returns the center of the entity.
func (w *World) Position(id core.EntityID) (x, y float64) {
	if b, ok := w.bodies[id]; ok {
		return b.x, b.y
	}
	return 0, 0
}

// SetPosition moves the entity center.
func (w *World) SetPosition(id core.EntityID, x, y float64) {
	if b, ok := w.bodies[id]; ok {
		b.x, b.y = x, y
	}
}

// Box returns the collision box of the entity.
func (w *World) Box(id core.EntityID) core.Box {
	if b, ok := w.bodies[id]; ok {
		return b.box()
	}
	return core.Box{}
}

// SetDisplaySize changes the collision box size around the current center.
func (w *World) SetDisplaySize(id core.EntityID, width, height float64) {
	if b, ok := w.bodies[id]; ok {
		b.w, b.h = width, height
	}
}

// Velocity returns the base velocity, without animated drift.
func (w *World) Velocity(id core.EntityID) (vx, vy float64) {
	if b, ok := w.bodies[id]; ok {
		return b.vx, b.vy
	}
	return 0, 0
}

// SetVelocity sets both velocity components.
func (w *World) SetVelocity(id core.EntityID, vx, vy float64) {
	if b, ok := w.bodies[id]; ok {
		b.vx, b.vy = vx, vy
	}
}

// SetVelocityX sets the base horizontal velocity.
func (w *World) SetVelocityX(id core.EntityID, vx float64) {
	if b, ok := w.bodies[id]; ok {
		b.vx = vx
	}
}

// SetVelocityY sets the vertical velocity.
func (w *World) SetVelocityY(id core.EntityID, vy float64) {
	if b, ok := w.bodies[id]; ok {
		b.vy = vy
	}
}

// SetGravity sets the per-body gravity added to world gravity.
func (w *World) SetGravity(id core.EntityID, g float64) {
	if b, ok := w.bodies[id]; ok {
		b.gravY = g
	}
}

// SetDepth sets the draw order; higher draws on top.
func (w *World) SetDepth(id core.EntityID, depth int) {
	if b, ok := w.bodies[id]; ok {
		b.depth = depth
	}
}

// SetTint colors the entity.
func (w *World) SetTint(id core.EntityID, c core.Color) {
	if b, ok := w.bodies[id]; ok {
		b.tint = c
	}
}

// SetFlipX mirrors the entity horizontally.
func (w *World) SetFlipX(id core.EntityID, flip bool) {
	if b, ok := w.bodies[id]; ok {
		b.flipX = flip
	}
}

// SetBounce sets the restitution used on landings and bound hits.
func (w *World) SetBounce(id core.EntityID, bounce float64) {
	if b, ok := w.bodies[id]; ok {
		b.bounce = bounce
	}
}

// SetCollideWorldBounds keeps the entity inside the world.
func (w *World) SetCollideWorldBounds(id core.EntityID, on bool) {
	if b, ok := w.bodies[id]; ok {
		b.collideBounds = on
	}
}

// SetProperty assigns an animatable property.
func (w *World) SetProperty(id core.EntityID, p core.Property, v float64) {
	if b, ok := w.bodies[id]; ok {
		b.set(p, v)
	}
}

// Property reads an animatable property.
func (w *World) Property(id core.EntityID, p core.Property) float64 {
	if b, ok := w.bodies[id]; ok {
		return b.get(p)
	}
	return 0
}

// Collide registers a collider between two entities. When one side is
// static the other lands on it; otherwise fn, if any, is called on overlap.
func (w *World) Collide(a, b core.EntityID, fn core.CollideFunc) {
	w.colliders = append(w.colliders, collider{a: a, b: b, fn: fn})
}

// OnGround reports whether the entity rested on a collider or the bottom
// bound during the last step.
func (w *World) OnGround(id core.EntityID) bool {
	if b, ok := w.bodies[id]; ok {
		return b.onGround
	}
	return false
}

// Pause freezes bodies. Animations keep running.
func (w *World) Pause() { w.paused = true }

// Resume unfreezes bodies.
func (w *World) Resume() { w.paused = false }

// Paused reports whether the world is frozen.
func (w *World) Paused() bool { return w.paused }

// Step advances animations and, unless paused, integrates bodies and
// resolves collisions.
func (w *World) Step(dt time.Duration) {
	if dt <= 0 {
		return
	}
	w.animate(dt)
	if w.paused {
		return
	}

	sec := dt.Seconds()
	for _, id := range w.ids() {
		b := w.bodies[id]
		if b.static {
			continue
		}
		b.onGround = false
		b.vy += (w.cfg.Gravity + b.gravY) * sec
		b.x += (b.vx + b.driftX) * sec
		b.y += b.vy * sec
	}

	var hits []collider
	for _, c := range w.colliders {
		a, okA := w.bodies[c.a]
		b, okB := w.bodies[c.b]
		if !okA || !okB {
			continue
		}
		switch {
		case b.static && !a.static:
			land(a, b)
		case a.static && !b.static:
			land(b, a)
		case a.box().Overlaps(b.box()):
			if c.fn != nil {
				hits = append(hits, c)
			}
		}
	}

	for _, id := range w.ids() {
		if b := w.bodies[id]; !b.static && b.collideBounds {
			w.keepInBounds(b)
		}
	}

	for _, c := range hits {
		// An earlier callback may have removed either side.
		if w.Exists(c.a) && w.Exists(c.b) {
			c.fn(c.a, c.b)
		}
	}
}

// land resolves a dynamic body against the top edge of a static one.
func land(b, ground *body) {
	gb := ground.box()
	bb := b.box()
	if bb.Right() <= gb.Left() || bb.Left() >= gb.Right() {
		return
	}
	top := gb.Top()
	// One-way: only bodies whose center is still above the edge land.
	if bb.Bottom() < top || b.y > top || b.vy < 0 {
		return
	}
	b.y = top - b.h/2
	b.vy = rebound(b.vy, b.bounce)
	b.onGround = true
}

func (w *World) keepInBounds(b *body) {
	x := core.ClampF(b.x, b.w/2, w.cfg.Width-b.w/2)
	if (x > b.x && b.vx < 0) || (x < b.x && b.vx > 0) {
		b.vx = -b.vx * b.bounce
	}
	b.x = x

	floor := w.cfg.Height - b.h/2
	y := core.ClampF(b.y, b.h/2, floor)
	if y > b.y && b.vy < 0 {
		b.vy = -b.vy * b.bounce
	}
	if b.y >= floor {
		if b.vy > 0 {
			b.vy = rebound(b.vy, b.bounce)
		}
		b.onGround = true
	}
	b.y = y
}

func rebound(vy, bounce float64) float64 {
	up := -vy * bounce
	if math.Abs(up) < restThreshold {
		return 0
	}
	return up
}

// ids returns entity ids in creation order so stepping is deterministic.
func (w *World) ids() []core.EntityID {
	ids := make([]core.EntityID, 0, len(w.bodies))
	for id := range w.bodies {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Sprites returns a render snapshot sorted by depth, then creation order.
func (w *World) Sprites() []core.Sprite {
	out := make([]core.Sprite, 0, len(w.bodies))
	for _, id := range w.ids() {
		b := w.bodies[id]
		out = append(out, core.Sprite{
			ID:     b.id,
			Name:   b.name,
			Box:    b.box(),
			Depth:  b.depth,
			Tint:   b.tint,
			FlipX:  b.flipX,
			Angle:  b.angle,
			Alpha:  b.alpha,
			ScaleX: b.scaleX,
			ScaleY: b.scaleY,
			Static: b.static,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Depth < out[j].Depth })
	return out
}

func (b *body) get(p core.Property) float64 {
	switch p {
	case core.PropX:
		return b.x
	case core.PropY:
		return b.y
	case core.PropDriftX:
		return b.driftX
	case core.PropAngle:
		return b.angle
	case core.PropAlpha:
		return b.alpha
	case core.PropScaleX:
		return b.scaleX
	case core.PropScaleY:
		return b.scaleY
	}
	return 0
}

func (b *body) set(p core.Property, v float64) {
	switch p {
	case core.PropX:
		b.x = v
	case core.PropY:
		b.y = v
	case core.PropDriftX:
		b.driftX = v
	case core.PropAngle:
		b.angle = v
	case core.PropAlpha:
		b.alpha = v
	case core.PropScaleX:
		b.scaleX = v
	case core.PropScaleY:
		b.scaleY = v
	}
}

// shift applies a relative change; used by animations so they compose with
// velocity-driven movement.
func (b *body) shift(p core.Property, d float64) {
	b.set(p, b.get(p)+d)
}
