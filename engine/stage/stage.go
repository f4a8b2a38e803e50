// Package stage owns the entities that take part in a steering scene:
// spawning them at positions, tearing them down, and choosing random
// spawn points inside the arena.
package stage

import (
	"math/rand/v2"

	"github.com/1siamBot/steering-demo/engine/core"
	"github.com/1siamBot/steering-demo/engine/geom"
	"github.com/1siamBot/steering-demo/engine/steering"
)

const DefaultPadding = 50.0

// Options configures a Stage
type Options struct {
	Arena   steering.Arena
	Padding float64 // keep random spawns this far from the arena edge
	Sizes   map[core.Kind]geom.Vec2
	Seed    uint64
}

// Stage spawns and destroys entities in a core.World
type Stage struct {
	world   *core.World
	arena   steering.Arena
	padding float64
	half    [core.KindMax]geom.Vec2
	seed    uint64
	rng     *rand.Rand
}

func New(w *core.World, opts Options) *Stage {
	s := &Stage{
		world:   w,
		arena:   opts.Arena,
		padding: opts.Padding,
		seed:    opts.Seed,
		rng:     rand.New(rand.NewPCG(opts.Seed, opts.Seed>>32|1)),
	}
	for k, size := range opts.Sizes {
		if k < core.KindMax {
			s.half[k] = size.Scale(0.5)
		}
	}
	return s
}

func (s *Stage) World() *core.World    { return s.world }
func (s *Stage) Arena() steering.Arena { return s.arena }
func (s *Stage) Seed() uint64          { return s.seed }
func (s *Stage) HalfExtents(k core.Kind) geom.Vec2 {
	if k >= core.KindMax {
		return geom.Vec2{}
	}
	return s.half[k]
}

// RandomPosition returns a uniform point in the arena shrunk by the padding
func (s *Stage) RandomPosition() geom.Vec2 {
	h := s.arena.Half()
	return geom.Vec2{
		X: s.uniform(-h.X+s.padding, h.X-s.padding),
		Y: s.uniform(-h.Y+s.padding, h.Y-s.padding),
	}
}

func (s *Stage) uniform(lo, hi float64) float64 {
	return lo + s.rng.Float64()*(hi-lo)
}

// Spawn creates an entity of kind at pos with identity rotation
func (s *Stage) Spawn(kind core.Kind, pos geom.Vec2) core.EntityID {
	id := s.world.Spawn()
	s.world.Attach(id, &core.Transform{Pos: pos})
	s.world.Attach(id, &core.Body{Half: s.HalfExtents(kind)})
	s.world.Attach(id, &core.Role{Kind: kind})
	return id
}

// Destroy removes the entity. Zero or unknown IDs are ignored.
func (s *Stage) Destroy(id core.EntityID) bool {
	if id == 0 {
		return false
	}
	return s.world.Destroy(id)
}

// DestroyAll removes every staged entity and returns how many were removed
func (s *Stage) DestroyAll() int {
	n := 0
	for _, id := range s.world.Query(core.CompRole) {
		if s.world.Destroy(id) {
			n++
		}
	}
	return n
}

// Transform returns the entity's transform, or nil when it is absent
func (s *Stage) Transform(id core.EntityID) *core.Transform {
	if c := s.world.Get(id, core.CompTransform); c != nil {
		return c.(*core.Transform)
	}
	return nil
}

// Body returns the entity's body, or nil when it is absent
func (s *Stage) Body(id core.EntityID) *core.Body {
	if c := s.world.Get(id, core.CompBody); c != nil {
		return c.(*core.Body)
	}
	return nil
}

// KindOf returns the entity's kind
func (s *Stage) KindOf(id core.EntityID) (core.Kind, bool) {
	if c := s.world.Get(id, core.CompRole); c != nil {
		return c.(*core.Role).Kind, true
	}
	return 0, false
}
