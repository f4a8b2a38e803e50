package core

import "github.com/1siamBot/steering-demo/engine/geom"

// Kind is what an entity represents on the stage
type Kind uint8

const (
	KindCharacter Kind = iota
	KindTarget
	KindEnemy
	KindObstacle
	KindMax
)

func (k Kind) String() string {
	switch k {
	case KindCharacter:
		return "character"
	case KindTarget:
		return "target"
	case KindEnemy:
		return "enemy"
	case KindObstacle:
		return "obstacle"
	}
	return "unknown"
}

// Transform is an arena position (origin center, y up) and facing in radians
type Transform struct {
	Pos    geom.Vec2
	Facing float64
}

func (t *Transform) Type() ComponentType { return CompTransform }

// Body is the visual extent used for clamping and drawing
type Body struct {
	Half geom.Vec2
}

func (b *Body) Type() ComponentType { return CompBody }

// Size returns the full width and height
func (b *Body) Size() (w, h float64) { return b.Half.X * 2, b.Half.Y * 2 }

// Role tags an entity with its Kind
type Role struct {
	Kind Kind
}

func (r *Role) Type() ComponentType { return CompRole }
