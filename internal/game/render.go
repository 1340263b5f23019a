package game

import (
	"fmt"
	"math"

	"github.com/vovakirdan/hedgeheart/internal/core"
)

// Glyph is how a sprite name is drawn on a character grid.
type Glyph struct {
	Fill  rune
	Top   rune // first row, zero for Fill
	Color core.Color
}

var glyphs = map[string]Glyph{
	"hedgehog": {Fill: '█', Top: '^', Color: core.ColorBrown},
	"cactus":   {Fill: '▓', Top: '┼', Color: core.ColorGreen},
	"flamingo": {Fill: '§', Color: core.ColorBrightMagenta},
	"crab":     {Fill: '▄', Top: 'v', Color: core.ColorRed},
	"bird":     {Fill: '~', Top: 'v', Color: core.ColorBlue},
	"eagle":    {Fill: '▼', Top: 'V', Color: core.ColorYellow},
	"zebra":    {Fill: '▒', Color: core.ColorBrightWhite},
	"lizard":   {Fill: '≈', Color: core.ColorBrightGreen},
	"heart":    {Fill: '♥', Color: core.ColorBrightCyan},
	"cloud":    {Fill: '░', Color: core.ColorWhite},
}

var fallbackGlyph = Glyph{Fill: '#', Color: core.ColorDefault}

// GlyphFor returns the glyph of a sprite name.
func GlyphFor(name string) Glyph {
	if gl, ok := glyphs[name]; ok {
		return gl
	}
	return fallbackGlyph
}

// Layout locates the parts of a frame on a screen of the given size. The
// top row is the HUD, the bottom row holds the touch buttons and the world
// fills the rows between.
type Layout struct {
	World  core.Rect
	Prompt core.Rect // zero when no start control is shown
	Left   core.Rect
	Right  core.Rect
	Jump   core.Rect
	Down   core.Rect
}

const (
	buttonLeft  = "[ ◀ ]"
	buttonRight = "[ ▶ ]"
	buttonJump  = "[ ▲ ]"
	buttonDown  = "[ ▼ ]"
	buttonWidth = 5
)

// Layout computes where the world, the start control and the touch buttons
// land on a w by h screen.
func (g *Game) Layout(w, h int) Layout {
	l := Layout{World: core.NewRect(0, 1, w, core.Max(1, h-2))}

	y := h - 1
	l.Left = core.NewRect(1, y, buttonWidth, 1)
	l.Right = core.NewRect(2+buttonWidth, y, buttonWidth, 1)
	l.Down = core.NewRect(w-2*buttonWidth-2, y, buttonWidth, 1)
	l.Jump = core.NewRect(w-buttonWidth-1, y, buttonWidth, 1)

	if prompt := g.Prompt(); prompt != "" {
		boxW := core.Max(len(prompt), len(g.Status())) + 4
		boxH := 5
		l.Prompt = core.NewRect((w-boxW)/2, (h-boxH)/2, boxW, boxH)
	}
	return l
}

// Render draws the current frame.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	l := g.Layout(dst.Width(), dst.Height())
	ww, wh := g.p.Size()
	sx := float64(l.World.W) / ww
	sy := float64(l.World.H) / wh

	g.drawGround(dst, l, sx, sy)
	for _, s := range g.p.Sprites() {
		if s.Static || !s.Visible() {
			continue
		}
		drawSprite(dst, l, s, sx, sy)
	}
	for _, f := range g.flashes {
		x := int(f.X*sx) - len(f.Text)/2
		y := l.World.Y + int(f.Y*sy)
		dst.DrawTextColored(x, y, f.Text, core.ColorBrightYellow)
	}

	// HUD
	status := g.Status()
	if g.sess.State != StateAfter {
		dst.DrawText(2, 0, " "+status+" ")
	}
	right := fmt.Sprintf(" Spd: %.1f  %ds ", g.diff.Speed(), g.sess.Clock)
	dst.DrawText(dst.Width()-len(right)-2, 0, right)

	y := l.Left.Y
	dst.DrawText(l.Left.X, y, buttonLeft)
	dst.DrawText(l.Right.X, y, buttonRight)
	dst.DrawText(l.Down.X, y, buttonDown)
	dst.DrawText(l.Jump.X, y, buttonJump)

	if prompt := g.Prompt(); prompt != "" {
		title := prompt
		subtitle := status
		if g.sess.State == StateBefore {
			subtitle = "Press Space or click"
		}
		drawPrompt(dst, l.Prompt, title, subtitle, g.tint())
	}
}

func (g *Game) tint() core.Color {
	switch g.sess.Outcome {
	case OutcomeWon:
		return core.TintWinner
	case OutcomeLost:
		return core.TintLost
	default:
		return core.ColorDefault
	}
}

func (g *Game) drawGround(dst *core.Screen, l Layout, sx, sy float64) {
	y := l.World.Y + int(g.cfg.World.GroundHeight*sy)
	dst.DrawHLineColored(l.World.X, y, l.World.W, '▀', core.ColorBrown)
	// Scroll marks every fourth cell.
	shift := int(math.Mod(g.scroll*sx, 4))
	for x := (4 - shift%4) % 4; x < l.World.W; x += 4 {
		dst.SetColored(l.World.X+x, y, '▔', core.ColorBrown)
	}
}

func drawSprite(dst *core.Screen, l Layout, s core.Sprite, sx, sy float64) {
	gl := GlyphFor(s.Name)
	c := gl.Color
	if s.Tint != core.TintNone {
		c = s.Tint
	}

	box := s.Box
	box.W *= math.Abs(s.ScaleX)
	box.H *= math.Abs(s.ScaleY)
	r := box.Scale(sx, sy)
	r.Y += l.World.Y

	fill := gl.Fill
	if s.Alpha < 0.5 {
		fill = '░'
	}
	// Tilt the top row with the angle.
	tilt := int(s.Angle / 10)
	for y := r.Y; y < r.Bottom(); y++ {
		if y < l.World.Y || y >= l.World.Bottom() {
			continue
		}
		rr := fill
		dx := 0
		if y == r.Y {
			dx = tilt
			if gl.Top != 0 {
				rr = gl.Top
			}
		}
		for x := r.X; x < r.Right(); x++ {
			dst.SetColored(x+dx, y, rr, c)
		}
	}
	if s.FlipX && r.W > 1 && r.H > 1 {
		dst.SetColored(r.Right()-1, r.Y+r.H/2, '•', core.ColorBrightWhite)
	} else if r.W > 1 && r.H > 1 && s.Name == "hedgehog" {
		dst.SetColored(r.X, r.Y+r.H/2, '•', core.ColorBrightWhite)
	}
}

// drawPrompt draws the start control box.
func drawPrompt(dst *core.Screen, r core.Rect, title, subtitle string, c core.Color) {
	dst.DrawRect(r, ' ')
	dst.DrawBox(r)
	dst.DrawTextColored(r.X+(r.W-len([]rune(title)))/2, r.Y+1, title, c)
	dst.DrawText(r.X+(r.W-len([]rune(subtitle)))/2, r.Y+3, subtitle)
}
