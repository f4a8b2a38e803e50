package render

import (
	"image/color"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/1siamBot/steering-demo/engine/core"
)

var (
	ColorBackground = color.RGBA{20, 20, 30, 255}
	ColorArena      = color.RGBA{34, 38, 52, 255}
	ColorBorder     = color.RGBA{90, 100, 130, 255}
	ColorText       = color.RGBA{220, 220, 230, 255}

	KindColors = map[core.Kind]color.RGBA{
		core.KindCharacter: {60, 120, 255, 255},
		core.KindTarget:    {60, 200, 90, 255},
		core.KindEnemy:     {230, 60, 60, 255},
		core.KindObstacle:  {140, 140, 150, 255},
	}
)

// Renderer draws the arena and its entities
type Renderer struct {
	Canvas *Canvas
	face   text.Face
}

func NewRenderer(c *Canvas) *Renderer {
	return &Renderer{
		Canvas: c,
		face:   text.NewGoXFace(basicfont.Face7x13),
	}
}

// DrawArena clears the screen and draws the arena rectangle
func (r *Renderer) DrawArena(screen *ebiten.Image) {
	screen.Fill(ColorBackground)
	x, y, w, h := r.Canvas.ArenaRect()
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(w), float32(h), ColorArena, false)
	vector.StrokeRect(screen, float32(x), float32(y), float32(w), float32(h), 2, ColorBorder, false)
}

// drawable is one entity resolved for drawing
type drawable struct {
	kind core.Kind
	tr   *core.Transform
	body *core.Body
}

// DrawWorld draws every staged entity. Obstacles go underneath, the character on top.
func (r *Renderer) DrawWorld(screen *ebiten.Image, w *core.World) {
	ids := w.Query(core.CompTransform, core.CompBody, core.CompRole)
	items := make([]drawable, 0, len(ids))
	for _, id := range ids {
		items = append(items, drawable{
			kind: w.Get(id, core.CompRole).(*core.Role).Kind,
			tr:   w.Get(id, core.CompTransform).(*core.Transform),
			body: w.Get(id, core.CompBody).(*core.Body),
		})
	}
	sort.SliceStable(items, func(i, j int) bool {
		return drawOrder(items[i].kind) < drawOrder(items[j].kind)
	})
	for _, it := range items {
		r.drawEntity(screen, it)
	}
}

func drawOrder(k core.Kind) int {
	switch k {
	case core.KindObstacle:
		return 0
	case core.KindCharacter:
		return 2
	}
	return 1
}

func (r *Renderer) drawEntity(screen *ebiten.Image, it drawable) {
	s := r.Canvas.Scale()
	sx, sy := r.Canvas.ToScreen(it.tr.Pos)
	hw, hh := it.body.Half.X*s, it.body.Half.Y*s
	clr := KindColors[it.kind]

	switch it.kind {
	case core.KindObstacle:
		vector.DrawFilledRect(screen, float32(sx-hw), float32(sy-hh), float32(2*hw), float32(2*hh), clr, false)
	case core.KindCharacter:
		radius := max(hw, hh, 2)
		vector.DrawFilledCircle(screen, float32(sx), float32(sy), float32(radius), clr, true)
		vector.StrokeCircle(screen, float32(sx), float32(sy), float32(radius), 1, color.RGBA{255, 255, 255, 180}, true)
		r.drawHeading(screen, sx, sy, radius, it.tr.Facing)
	default:
		radius := max(hw, hh, 2)
		vector.DrawFilledCircle(screen, float32(sx), float32(sy), float32(radius), clr, true)
	}
}

// drawHeading draws an arrow nose from the body center along the facing
func (r *Renderer) drawHeading(screen *ebiten.Image, sx, sy, radius, facing float64) {
	dx, dy := r.Canvas.Heading(facing)
	tipX, tipY := sx+dx*radius*1.4, sy+dy*radius*1.4
	// wings are the heading rotated by +-150 degrees
	const c, s = -0.8660254037844386, 0.5
	lx, ly := dx*c-dy*s, dx*s+dy*c
	rx, ry := dx*c+dy*s, -dx*s+dy*c
	wing := radius * 0.6
	white := color.RGBA{255, 255, 255, 255}
	vector.StrokeLine(screen, float32(sx), float32(sy), float32(tipX), float32(tipY), 2, white, true)
	vector.StrokeLine(screen, float32(tipX), float32(tipY), float32(tipX+lx*wing), float32(tipY+ly*wing), 2, white, true)
	vector.StrokeLine(screen, float32(tipX), float32(tipY), float32(tipX+rx*wing), float32(tipY+ry*wing), 2, white, true)
}

// DrawText draws multi-line text at x, y
func (r *Renderer) DrawText(screen *ebiten.Image, s string, x, y float64) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(ColorText)
	op.LineSpacing = 16
	text.Draw(screen, s, r.face, op)
}
