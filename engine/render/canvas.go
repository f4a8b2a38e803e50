package render

import (
	"math"

	"github.com/1siamBot/steering-demo/engine/geom"
	"github.com/1siamBot/steering-demo/engine/steering"
)

// Canvas maps arena coordinates (origin center, y up) onto the screen
// (origin top-left, y down), fitting the whole arena into the viewport.
type Canvas struct {
	ScreenW int
	ScreenH int
	Margin  float64 // pixels kept free around the arena
	Arena   steering.Arena
}

func NewCanvas(screenW, screenH int, arena steering.Arena) *Canvas {
	return &Canvas{
		ScreenW: screenW,
		ScreenH: screenH,
		Margin:  8,
		Arena:   arena,
	}
}

// Scale is pixels per arena unit
func (c *Canvas) Scale() float64 {
	if c.Arena.Width <= 0 || c.Arena.Height <= 0 {
		return 1
	}
	sx := (float64(c.ScreenW) - 2*c.Margin) / c.Arena.Width
	sy := (float64(c.ScreenH) - 2*c.Margin) / c.Arena.Height
	return math.Max(0, math.Min(sx, sy))
}

// ToScreen converts an arena position to screen pixels
func (c *Canvas) ToScreen(p geom.Vec2) (float64, float64) {
	s := c.Scale()
	return float64(c.ScreenW)/2 + p.X*s, float64(c.ScreenH)/2 - p.Y*s
}

// ToArena converts screen pixels to an arena position
func (c *Canvas) ToArena(sx, sy float64) geom.Vec2 {
	s := c.Scale()
	if s == 0 {
		return geom.Vec2{}
	}
	return geom.Vec2{
		X: (sx - float64(c.ScreenW)/2) / s,
		Y: (float64(c.ScreenH)/2 - sy) / s,
	}
}

// Heading returns the on-screen unit direction for an arena facing angle
func (c *Canvas) Heading(facing float64) (dx, dy float64) {
	return math.Cos(facing), -math.Sin(facing)
}

// ArenaRect returns the arena outline in screen pixels
func (c *Canvas) ArenaRect() (x, y, w, h float64) {
	s := c.Scale()
	w, h = c.Arena.Width*s, c.Arena.Height*s
	return (float64(c.ScreenW) - w) / 2, (float64(c.ScreenH) - h) / 2, w, h
}
