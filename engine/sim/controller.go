// Package sim holds the steering scene state machine. A Controller owns the
// current SimulationState, applies mode switch and reset commands, and
// advances the agent one step per frame.
package sim

import (
	"go.uber.org/zap"

	"github.com/1siamBot/steering-demo/engine/core"
	"github.com/1siamBot/steering-demo/engine/geom"
	"github.com/1siamBot/steering-demo/engine/steering"
)

// ResetMessage is logged every time the scene is reset
const ResetMessage = "Scene reset. Press 1, 2, etc., to start a behavior."

// Stage owns entity creation and teardown
type Stage interface {
	Spawn(kind core.Kind, pos geom.Vec2) core.EntityID
	Destroy(id core.EntityID) bool
	RandomPosition() geom.Vec2
	Arena() steering.Arena
	Transform(id core.EntityID) *core.Transform
	Body(id core.EntityID) *core.Body
}

// Recorder receives every applied command together with the tick it applies before
type Recorder interface {
	Record(tick uint64, cmd Command) error
}

// SimulationState is the scene for one mode. It is replaced wholesale on
// every transition; a zero EntityID means the participant does not exist.
type SimulationState struct {
	Mode     steering.Mode
	Agent    core.EntityID
	Target   core.EntityID
	Enemy    core.EntityID
	Obstacle core.EntityID
	Arrived  bool
}

// Entities lists the live participant IDs
func (s SimulationState) Entities() []core.EntityID {
	var ids []core.EntityID
	for _, id := range []core.EntityID{s.Agent, s.Target, s.Enemy, s.Obstacle} {
		if id != 0 {
			ids = append(ids, id)
		}
	}
	return ids
}

// ModeChange is the payload of EvtModeChanged
type ModeChange struct {
	From, To steering.Mode
}

type Controller struct {
	stage    Stage
	params   steering.Params
	log      *zap.Logger
	bus      *core.EventBus
	recorder Recorder

	state SimulationState
	tick  uint64
}

func NewController(st Stage, params steering.Params, log *zap.Logger, bus *core.EventBus) *Controller {
	if log == nil {
		log = zap.NewNop()
	}
	if bus == nil {
		bus = core.NewEventBus()
	}
	return &Controller{
		stage:  st,
		params: params,
		log:    log,
		bus:    bus,
	}
}

func (c *Controller) SetRecorder(r Recorder)  { c.recorder = r }
func (c *Controller) State() SimulationState  { return c.state }
func (c *Controller) Mode() steering.Mode     { return c.state.Mode }
func (c *Controller) Params() steering.Params { return c.params }
func (c *Controller) Events() *core.EventBus  { return c.bus }
func (c *Controller) Tick() uint64            { return c.tick }

// Apply executes a command immediately. Invalid commands are logged and dropped.
func (c *Controller) Apply(cmd Command) {
	if !cmd.Valid() {
		c.log.Warn("ignoring invalid command", zap.Stringer("command", cmd))
		return
	}
	if c.recorder != nil {
		if err := c.recorder.Record(c.tick, cmd); err != nil {
			c.log.Warn("recording command failed", zap.Stringer("command", cmd), zap.Error(err))
		}
	}
	switch cmd.Type {
	case CmdSwitchMode:
		c.SwitchMode(cmd.Mode)
	case CmdReset:
		c.Reset()
	}
}

// SwitchMode tears down the current scene and spawns the participants for m
func (c *Controller) SwitchMode(m steering.Mode) {
	prev := c.state.Mode
	c.teardown()

	next := SimulationState{Mode: m}
	switch m {
	case steering.Seeking, steering.Arrival:
		charPos, targetPos := c.stage.RandomPosition(), c.stage.RandomPosition()
		next.Agent = c.spawn(core.KindCharacter, charPos)
		next.Target = c.spawn(core.KindTarget, targetPos)
	case steering.Fleeing:
		charPos, enemyPos := c.stage.RandomPosition(), c.stage.RandomPosition()
		next.Agent = c.spawn(core.KindCharacter, charPos)
		next.Enemy = c.spawn(core.KindEnemy, enemyPos)
	case steering.Avoidance:
		charPos, targetPos := c.stage.RandomPosition(), c.stage.RandomPosition()
		next.Agent = c.spawn(core.KindCharacter, charPos)
		next.Target = c.spawn(core.KindTarget, targetPos)
		next.Obstacle = c.spawn(core.KindObstacle, geom.Lerp(charPos, targetPos, 0.5))
	}
	c.state = next

	c.log.Info("behavior switched",
		zap.Stringer("from", prev),
		zap.Stringer("to", m),
		zap.Uint64("tick", c.tick),
	)
	c.bus.Emit(core.Event{Type: core.EvtModeChanged, Tick: c.tick, Payload: ModeChange{From: prev, To: m}})
}

// Reset tears down the scene and returns to mode None
func (c *Controller) Reset() {
	prev := c.state.Mode
	c.teardown()
	c.state = SimulationState{}

	c.log.Info(ResetMessage, zap.Uint64("tick", c.tick))
	c.bus.Emit(core.Event{Type: core.EvtSceneReset, Tick: c.tick, Payload: ModeChange{From: prev, To: steering.None}})
}

// Step advances the agent by dt seconds. It is a no-op in mode None or when
// any participant the mode needs is absent.
func (c *Controller) Step(dt float64) {
	tick := c.tick
	c.tick++

	st := &c.state
	if st.Mode == steering.None {
		return
	}
	at := c.stage.Transform(st.Agent)
	body := c.stage.Body(st.Agent)
	if at == nil || body == nil {
		return
	}

	var refs steering.Refs
	if st.Mode.NeedsTarget() {
		tt := c.stage.Transform(st.Target)
		if tt == nil {
			return
		}
		refs.Target = tt.Pos
	}
	if st.Mode.NeedsEnemy() {
		et := c.stage.Transform(st.Enemy)
		if et == nil {
			return
		}
		refs.Enemy = et.Pos
	}
	if st.Mode.NeedsObstacle() {
		ot := c.stage.Transform(st.Obstacle)
		if ot == nil {
			return
		}
		refs.Obstacle = ot.Pos
	}

	agent := steering.Agent{Pos: at.Pos, Facing: at.Facing, Half: body.Half}
	res := steering.Step(agent, st.Mode, refs, c.params, c.stage.Arena(), dt)
	at.Pos = res.Agent.Pos
	at.Facing = res.Agent.Facing

	if res.Arrived && !st.Arrived {
		st.Arrived = true
		c.log.Debug("agent arrived",
			zap.Stringer("mode", st.Mode),
			zap.Uint64("tick", tick),
			zap.Float64("x", at.Pos.X),
			zap.Float64("y", at.Pos.Y),
		)
		c.bus.Emit(core.Event{Type: core.EvtArrived, Tick: tick, Payload: st.Agent})
	}
}

// Agent returns the agent's current steering state
func (c *Controller) Agent() (steering.Agent, bool) {
	at := c.stage.Transform(c.state.Agent)
	body := c.stage.Body(c.state.Agent)
	if at == nil || body == nil {
		return steering.Agent{}, false
	}
	return steering.Agent{Pos: at.Pos, Facing: at.Facing, Half: body.Half}, true
}

func (c *Controller) spawn(kind core.Kind, pos geom.Vec2) core.EntityID {
	id := c.stage.Spawn(kind, pos)
	c.bus.Emit(core.Event{Type: core.EvtEntitySpawned, Tick: c.tick, Payload: core.EntityEvent{ID: id, Kind: kind}})
	return id
}

func (c *Controller) teardown() {
	for _, id := range c.state.Entities() {
		kind := c.kindOf(id)
		if c.stage.Destroy(id) {
			c.bus.Emit(core.Event{Type: core.EvtEntityDestroyed, Tick: c.tick, Payload: core.EntityEvent{ID: id, Kind: kind}})
		}
	}
	c.state = SimulationState{}
}

func (c *Controller) kindOf(id core.EntityID) core.Kind {
	switch id {
	case c.state.Agent:
		return core.KindCharacter
	case c.state.Target:
		return core.KindTarget
	case c.state.Enemy:
		return core.KindEnemy
	}
	return core.KindObstacle
}
