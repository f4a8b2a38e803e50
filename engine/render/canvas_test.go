package render

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/1siamBot/steering-demo/engine/geom"
	"github.com/1siamBot/steering-demo/engine/steering"
)

func TestCanvasMapping(t *testing.T) {
	c := NewCanvas(1000, 600, steering.Arena{Width: 800, Height: 400})
	c.Margin = 0
	// width is the tighter fit: 1000/800
	assert.Equal(t, 1.25, c.Scale())

	x, y := c.ToScreen(geom.Vec2{})
	assert.Equal(t, 500.0, x)
	assert.Equal(t, 300.0, y)

	// y grows upward in the arena and downward on screen
	x, y = c.ToScreen(geom.V2(100, 100))
	assert.Equal(t, 625.0, x)
	assert.Equal(t, 175.0, y)

	p := c.ToArena(625, 175)
	assert.InDelta(t, 100, p.X, 1e-9)
	assert.InDelta(t, 100, p.Y, 1e-9)

	rx, ry, rw, rh := c.ArenaRect()
	assert.Equal(t, []float64{0, 50, 1000, 500}, []float64{rx, ry, rw, rh})
}

func TestCanvasHeading(t *testing.T) {
	c := NewCanvas(100, 100, steering.Arena{Width: 100, Height: 100})
	dx, dy := c.Heading(math.Pi / 2)
	assert.InDelta(t, 0, dx, 1e-12)
	assert.InDelta(t, -1, dy, 1e-12)
}
