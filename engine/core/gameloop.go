package core

import "time"

// GameState represents the run state of the loop
type GameState uint8

const (
	StatePaused GameState = iota
	StatePlaying
)

// Clock supplies the elapsed seconds for the next step
type Clock interface {
	Delta() float64
}

// TickClock reports a fixed delta of 1/TPS. This matches a host frame loop
// that calls Update at a fixed rate, and keeps replays deterministic.
type TickClock struct {
	TPS float64
}

func (c TickClock) Delta() float64 {
	if c.TPS <= 0 {
		return 0
	}
	return 1 / c.TPS
}

// WallClock measures real time between calls
type WallClock struct {
	MaxDelta float64 // cap to avoid huge jumps after a stall
	last     time.Time
	now      func() time.Time
}

func NewWallClock() *WallClock {
	return &WallClock{MaxDelta: 0.25, now: time.Now}
}

func (c *WallClock) Delta() float64 {
	now := c.now()
	if c.last.IsZero() {
		c.last = now
		return 0
	}
	dt := now.Sub(c.last).Seconds()
	c.last = now
	if c.MaxDelta > 0 && dt > c.MaxDelta {
		dt = c.MaxDelta
	}
	return dt
}

// Stepper advances the simulation by dt seconds
type Stepper interface {
	Step(dt float64)
}

// GameLoop runs one simulation step per rendered frame
type GameLoop struct {
	State     GameState
	Clock     Clock
	Sim       Stepper
	TickCount uint64
}

func NewGameLoop(clock Clock, sim Stepper) *GameLoop {
	return &GameLoop{Clock: clock, Sim: sim}
}

// Update should be called once per frame. It returns the dt used, or 0 when paused.
func (gl *GameLoop) Update() float64 {
	dt := gl.Clock.Delta()
	if gl.State != StatePlaying {
		return 0
	}
	gl.Sim.Step(dt)
	gl.TickCount++
	return dt
}

// Play starts or resumes the loop
func (gl *GameLoop) Play() {
	gl.State = StatePlaying
}

// Pause pauses the loop
func (gl *GameLoop) Pause() {
	gl.State = StatePaused
}

// CurrentTick returns the number of steps run so far
func (gl *GameLoop) CurrentTick() uint64 {
	return gl.TickCount
}
