package core

// EntityID identifies a body in the physics world. Zero is never issued.
type EntityID int

// Sprite is a render snapshot of one body.
type Sprite struct {
	ID     EntityID
	Name   string // sprite name, selects the glyphs
	Box    Box    // collision box in world units
	Depth  int
	Tint   Color
	FlipX  bool
	Angle  float64 // degrees
	Alpha  float64 // 0..1
	ScaleX float64
	ScaleY float64
	Static bool
}

// Visible reports whether the sprite should be drawn at all.
func (s Sprite) Visible() bool {
	return s.Alpha > 0.05 && s.ScaleX != 0 && s.ScaleY != 0
}

// BodySpec describes a new dynamic body. X and Y are the center.
type BodySpec struct {
	Name  string
	X, Y  float64
	W, H  float64
	Depth int
}

// CollideFunc is called when two bodies overlap.
type CollideFunc func(a, b EntityID)
