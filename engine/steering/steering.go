package steering

import "github.com/1siamBot/steering-demo/engine/geom"

// Params tunes the behaviors. Distances are in arena units, Speed in units/second.
type Params struct {
	Speed         float64
	ArrivalRadius float64 // snap distance for Arrival and Avoidance
	SlowingRadius float64 // Arrival runs at full speed beyond this distance
	AvoidRadius   float64 // obstacles closer than this repel the agent
}

func DefaultParams() Params {
	return Params{
		Speed:         120,
		ArrivalRadius: 10,
		SlowingRadius: 200,
		AvoidRadius:   150,
	}
}

// Arena is a Width x Height rectangle centered at the origin
type Arena struct {
	Width, Height float64
}

// Half returns the arena half-extents
func (a Arena) Half() geom.Vec2 { return geom.V2(a.Width/2, a.Height/2) }

// Clamp keeps a body with the given half-extents fully inside the arena
func (a Arena) Clamp(pos, half geom.Vec2) geom.Vec2 {
	ah := a.Half()
	return geom.Vec2{
		X: geom.Clamp(pos.X, -ah.X+half.X, ah.X-half.X),
		Y: geom.Clamp(pos.Y, -ah.Y+half.Y, ah.Y-half.Y),
	}
}

// Contains reports whether the body lies fully inside the arena
func (a Arena) Contains(pos, half geom.Vec2) bool {
	ah := a.Half()
	return pos.X >= -ah.X+half.X && pos.X <= ah.X-half.X &&
		pos.Y >= -ah.Y+half.Y && pos.Y <= ah.Y-half.Y
}

// Agent is the moving body. Facing is in radians, 0 = +X.
type Agent struct {
	Pos    geom.Vec2
	Facing float64
	Half   geom.Vec2
}

// Refs are the reference points a step reads. Which ones matter depends on the mode.
type Refs struct {
	Target   geom.Vec2
	Enemy    geom.Vec2
	Obstacle geom.Vec2
}

// Result is the outcome of one step
type Result struct {
	Agent   Agent
	Dir     geom.Vec2 // zero when the agent did not move or snapped
	Speed   float64
	Arrived bool // the agent snapped onto the target this step
}

// SeekDirection points from pos toward target
func SeekDirection(pos, target geom.Vec2) geom.Vec2 {
	return target.Sub(pos).Normalize()
}

// FleeDirection points from the enemy through pos
func FleeDirection(pos, enemy geom.Vec2) geom.Vec2 {
	return pos.Sub(enemy).Normalize()
}

// ArrivalSpeed scales speed linearly with distance, full speed at SlowingRadius and beyond
func ArrivalSpeed(dist float64, p Params) float64 {
	if p.SlowingRadius <= 0 {
		return p.Speed
	}
	return geom.LerpScalar(0, p.Speed, dist/p.SlowingRadius)
}

// AvoidanceVector pushes away from an obstacle inside AvoidRadius. Its length
// grows linearly from 0 at the radius to 1 at the obstacle center.
func AvoidanceVector(pos, obstacle geom.Vec2, radius float64) geom.Vec2 {
	toObstacle := obstacle.Sub(pos)
	d := toObstacle.Len()
	if d >= radius {
		return geom.Vec2{}
	}
	return toObstacle.Normalize().Neg().Scale((radius - d) / radius)
}

// AvoidDirection blends seeking the target with obstacle repulsion
func AvoidDirection(pos, target, obstacle geom.Vec2, radius float64) geom.Vec2 {
	return SeekDirection(pos, target).Add(AvoidanceVector(pos, obstacle, radius)).Normalize()
}

// Step advances the agent by one time step of dt seconds under mode.
// None returns the agent unchanged.
func Step(a Agent, mode Mode, refs Refs, p Params, arena Arena, dt float64) Result {
	switch mode {
	case Seeking:
		return move(a, SeekDirection(a.Pos, refs.Target), p.Speed, arena, dt)

	case Fleeing:
		return move(a, FleeDirection(a.Pos, refs.Enemy), p.Speed, arena, dt)

	case Arrival:
		d := a.Pos.Dist(refs.Target)
		if d <= p.ArrivalRadius {
			return snap(a, refs.Target)
		}
		return move(a, SeekDirection(a.Pos, refs.Target), ArrivalSpeed(d, p), arena, dt)

	case Avoidance:
		if a.Pos.Dist(refs.Target) < p.ArrivalRadius {
			return snap(a, refs.Target)
		}
		dir := AvoidDirection(a.Pos, refs.Target, refs.Obstacle, p.AvoidRadius)
		return move(a, dir, p.Speed, arena, dt)
	}
	return Result{Agent: a}
}

func move(a Agent, dir geom.Vec2, speed float64, arena Arena, dt float64) Result {
	if dir.IsZero() {
		return Result{Agent: a}
	}
	next := a.Pos.Add(dir.Scale(speed * dt))
	a.Pos = arena.Clamp(next, a.Half)
	a.Facing = dir.Angle()
	return Result{Agent: a, Dir: dir, Speed: speed}
}

// snap places the agent exactly on the target; facing is kept
func snap(a Agent, target geom.Vec2) Result {
	a.Pos = target
	return Result{Agent: a, Arrived: true}
}
