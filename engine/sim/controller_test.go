package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/1siamBot/steering-demo/engine/core"
	"github.com/1siamBot/steering-demo/engine/geom"
	"github.com/1siamBot/steering-demo/engine/stage"
	"github.com/1siamBot/steering-demo/engine/steering"
)

type fixture struct {
	stage *stage.Stage
	ctrl  *Controller
	logs  *observer.ObservedLogs
}

func newFixture(t *testing.T, seed uint64) *fixture {
	t.Helper()
	st := stage.New(core.NewWorld(), stage.Options{
		Arena:   steering.Arena{Width: 800, Height: 600},
		Padding: stage.DefaultPadding,
		Sizes: map[core.Kind]geom.Vec2{
			core.KindCharacter: geom.V2(40, 40),
			core.KindTarget:    geom.V2(30, 30),
			core.KindEnemy:     geom.V2(30, 30),
			core.KindObstacle:  geom.V2(50, 50),
		},
		Seed: seed,
	})
	obs, logs := observer.New(zapcore.DebugLevel)
	params := steering.DefaultParams()
	params.Speed = 200
	return &fixture{
		stage: st,
		ctrl:  NewController(st, params, zap.New(obs), core.NewEventBus()),
		logs:  logs,
	}
}

func (f *fixture) pos(id core.EntityID) geom.Vec2 {
	return f.stage.Transform(id).Pos
}

func TestSwitchModeSpawnsParticipants(t *testing.T) {
	cases := []struct {
		mode                    steering.Mode
		target, enemy, obstacle bool
	}{
		{steering.Seeking, true, false, false},
		{steering.Fleeing, false, true, false},
		{steering.Arrival, true, false, false},
		{steering.Avoidance, true, false, true},
	}
	for _, c := range cases {
		t.Run(c.mode.String(), func(t *testing.T) {
			f := newFixture(t, 3)
			f.ctrl.SwitchMode(c.mode)
			st := f.ctrl.State()

			assert.Equal(t, c.mode, st.Mode)
			assert.NotZero(t, st.Agent)
			assert.Equal(t, c.target, st.Target != 0)
			assert.Equal(t, c.enemy, st.Enemy != 0)
			assert.Equal(t, c.obstacle, st.Obstacle != 0)
			assert.Equal(t, len(st.Entities()), f.stage.World().EntityCount())

			kind, ok := f.stage.KindOf(st.Agent)
			require.True(t, ok)
			assert.Equal(t, core.KindCharacter, kind)
		})
	}
}

func TestAvoidanceObstacleAtMidpoint(t *testing.T) {
	f := newFixture(t, 5)
	f.ctrl.SwitchMode(steering.Avoidance)
	st := f.ctrl.State()
	mid := geom.Lerp(f.pos(st.Agent), f.pos(st.Target), 0.5)
	assert.InDelta(t, mid.X, f.pos(st.Obstacle).X, 1e-9)
	assert.InDelta(t, mid.Y, f.pos(st.Obstacle).Y, 1e-9)
}

func TestSwitchModeTearsDownPreviousEntities(t *testing.T) {
	f := newFixture(t, 8)
	f.ctrl.SwitchMode(steering.Avoidance)
	old := f.ctrl.State().Entities()
	require.Len(t, old, 3)

	f.ctrl.SwitchMode(steering.Fleeing)
	for _, id := range old {
		assert.False(t, f.stage.World().Alive(id))
	}
	assert.Equal(t, 2, f.stage.World().EntityCount())

	// switching to the same mode also respawns everything
	before := f.ctrl.State().Entities()
	f.ctrl.SwitchMode(steering.Fleeing)
	for _, id := range before {
		assert.False(t, f.stage.World().Alive(id))
	}
	assert.Equal(t, 2, f.stage.World().EntityCount())
}

func TestReset(t *testing.T) {
	f := newFixture(t, 2)
	f.ctrl.SwitchMode(steering.Seeking)
	old := f.ctrl.State().Entities()

	f.ctrl.Reset()
	assert.Equal(t, steering.None, f.ctrl.Mode())
	assert.Equal(t, SimulationState{}, f.ctrl.State())
	for _, id := range old {
		assert.False(t, f.stage.World().Alive(id))
	}
	assert.Zero(t, f.stage.World().EntityCount())
	assert.Equal(t, 1, f.logs.FilterMessage(ResetMessage).Len())

	// reset is always safe, even with nothing to tear down
	f.ctrl.Reset()
	assert.Equal(t, 2, f.logs.FilterMessage(ResetMessage).Len())
}

func TestStepNoopWithoutMode(t *testing.T) {
	f := newFixture(t, 1)
	f.ctrl.Step(0.1)
	assert.Equal(t, uint64(1), f.ctrl.Tick())
	assert.Zero(t, f.stage.World().EntityCount())
}

func TestStepNoopWhenParticipantMissing(t *testing.T) {
	f := newFixture(t, 1)
	f.ctrl.SwitchMode(steering.Seeking)
	st := f.ctrl.State()
	start := f.pos(st.Agent)

	f.stage.Destroy(st.Target)
	f.ctrl.Step(0.1)
	assert.Equal(t, start, f.pos(st.Agent))
}

func TestStepSeeksTarget(t *testing.T) {
	f := newFixture(t, 11)
	f.ctrl.SwitchMode(steering.Seeking)
	st := f.ctrl.State()
	target := f.pos(st.Target)
	before := f.pos(st.Agent).Dist(target)

	f.ctrl.Step(0.05)
	after := f.pos(st.Agent).Dist(target)
	assert.Less(t, after, before)

	a, ok := f.ctrl.Agent()
	require.True(t, ok)
	assert.InDelta(t, target.Sub(a.Pos).Angle(), a.Facing, 1e-6)
}

func TestStepKeepsAgentInArena(t *testing.T) {
	f := newFixture(t, 21)
	arena := f.stage.Arena()
	for _, mode := range []steering.Mode{steering.Seeking, steering.Fleeing, steering.Arrival, steering.Avoidance} {
		f.ctrl.SwitchMode(mode)
		for i := 0; i < 600; i++ {
			f.ctrl.Step(1.0 / 60)
			a, ok := f.ctrl.Agent()
			require.True(t, ok)
			require.True(t, arena.Contains(a.Pos, a.Half), "%s tick %d pos %+v", mode, i, a.Pos)
		}
	}
}

func TestArrivalSnapsAndEmitsOnce(t *testing.T) {
	f := newFixture(t, 4)
	var arrived int
	f.ctrl.Events().On(core.EvtArrived, func(core.Event) { arrived++ })

	f.ctrl.SwitchMode(steering.Arrival)
	st := f.ctrl.State()
	target := f.pos(st.Target)
	f.stage.Transform(st.Agent).Pos = target.Add(geom.V2(6, -3))

	f.ctrl.Step(1.0 / 60)
	f.ctrl.Step(1.0 / 60)
	f.ctrl.Events().Dispatch()

	assert.Equal(t, target, f.pos(st.Agent))
	assert.True(t, f.ctrl.State().Arrived)
	assert.Equal(t, 1, arrived)
}

func TestApplyRecordsAndDispatches(t *testing.T) {
	f := newFixture(t, 6)
	rec := &memRecorder{}
	f.ctrl.SetRecorder(rec)

	f.ctrl.Apply(SwitchTo(steering.Fleeing))
	f.ctrl.Step(0.1)
	f.ctrl.Step(0.1)
	f.ctrl.Apply(ResetCommand())
	f.ctrl.Apply(Command{Type: 99})

	require.Len(t, rec.cmds, 2)
	assert.Equal(t, uint64(0), rec.ticks[0])
	assert.Equal(t, SwitchTo(steering.Fleeing), rec.cmds[0])
	assert.Equal(t, uint64(2), rec.ticks[1])
	assert.Equal(t, ResetCommand(), rec.cmds[1])
	assert.Equal(t, steering.None, f.ctrl.Mode())
	assert.Equal(t, 1, f.logs.FilterMessage("ignoring invalid command").Len())
}

func TestModeChangeEvents(t *testing.T) {
	f := newFixture(t, 6)
	var spawned, destroyed int
	var changes []ModeChange
	bus := f.ctrl.Events()
	bus.On(core.EvtEntitySpawned, func(core.Event) { spawned++ })
	bus.On(core.EvtEntityDestroyed, func(core.Event) { destroyed++ })
	bus.On(core.EvtModeChanged, func(e core.Event) { changes = append(changes, e.Payload.(ModeChange)) })

	f.ctrl.SwitchMode(steering.Seeking)
	f.ctrl.SwitchMode(steering.Avoidance)
	bus.Dispatch()

	assert.Equal(t, 5, spawned)
	assert.Equal(t, 2, destroyed)
	assert.Equal(t, []ModeChange{
		{From: steering.None, To: steering.Seeking},
		{From: steering.Seeking, To: steering.Avoidance},
	}, changes)
}

func TestSameSeedSameScene(t *testing.T) {
	a, b := newFixture(t, 77), newFixture(t, 77)
	for _, f := range []*fixture{a, b} {
		f.ctrl.SwitchMode(steering.Avoidance)
		for i := 0; i < 30; i++ {
			f.ctrl.Step(1.0 / 60)
		}
	}
	pa, _ := a.ctrl.Agent()
	pb, _ := b.ctrl.Agent()
	assert.Equal(t, pa, pb)
}

type memRecorder struct {
	ticks []uint64
	cmds  []Command
}

func (r *memRecorder) Record(tick uint64, cmd Command) error {
	r.ticks = append(r.ticks, tick)
	r.cmds = append(r.cmds, cmd)
	return nil
}
