package game

import (
	"time"

	"github.com/vovakirdan/hedgeheart/internal/core"
)

// Provider is the physics and display capability set the game drives.
// Positions are body centers in world units.
type Provider interface {
	Size() (width, height float64)
	Gravity() float64

	Create(s core.BodySpec) core.EntityID
	CreateStatic(name string, x, y, width, height float64) core.EntityID
	Exists(id core.EntityID) bool
	Destroy(id core.EntityID)

	Position(id core.EntityID) (x, y float64)
	SetPosition(id core.EntityID, x, y float64)
	Box(id core.EntityID) core.Box
	SetDisplaySize(id core.EntityID, width, height float64)

	Velocity(id core.EntityID) (vx, vy float64)
	SetVelocity(id core.EntityID, vx, vy float64)
	SetVelocityX(id core.EntityID, vx float64)
	SetVelocityY(id core.EntityID, vy float64)
	SetGravity(id core.EntityID, g float64)
	SetBounce(id core.EntityID, bounce float64)
	SetCollideWorldBounds(id core.EntityID, on bool)
	OnGround(id core.EntityID) bool

	SetDepth(id core.EntityID, depth int)
	SetTint(id core.EntityID, c core.Color)
	SetFlipX(id core.EntityID, flip bool)
	SetProperty(id core.EntityID, p core.Property, v float64)

	Collide(a, b core.EntityID, fn core.CollideFunc)
	Animate(id core.EntityID, m core.Motion)
	StopAnimations(id core.EntityID)

	Pause()
	Resume()
	Paused() bool
	Step(dt time.Duration)
	Sprites() []core.Sprite
}
