// Package app wires a steering scene together from a config: entity world,
// stage, controller, event bus and frame loop.
package app

import (
	"time"

	"go.uber.org/zap"

	"github.com/1siamBot/steering-demo/engine/config"
	"github.com/1siamBot/steering-demo/engine/core"
	"github.com/1siamBot/steering-demo/engine/sim"
	"github.com/1siamBot/steering-demo/engine/stage"
)

type App struct {
	Config config.Config
	Log    *zap.Logger
	World  *core.World
	Stage  *stage.Stage
	Bus    *core.EventBus
	Ctrl   *sim.Controller
	Loop   *core.GameLoop
}

// New builds a playing scene. A zero seed is replaced by a time-based one.
func New(cfg config.Config, log *zap.Logger, seed uint64) *App {
	if log == nil {
		log = zap.NewNop()
	}
	seed = ResolveSeed(seed)
	w := core.NewWorld()
	st := stage.New(w, stage.Options{
		Arena:   cfg.ArenaBounds(),
		Padding: cfg.Arena.Padding,
		Sizes:   cfg.Sizes(),
		Seed:    seed,
	})
	bus := core.NewEventBus()
	ctrl := sim.NewController(st, cfg.Params(), log, bus)
	loop := core.NewGameLoop(NewClock(cfg.Loop), ctrl)
	loop.Play()

	log.Info("scene ready",
		zap.Uint64("seed", seed),
		zap.Float64("arena_w", cfg.Arena.Width),
		zap.Float64("arena_h", cfg.Arena.Height),
		zap.Float64("speed", cfg.Steering.Speed),
		zap.String("clock", cfg.Loop.Clock),
	)
	return &App{
		Config: cfg,
		Log:    log,
		World:  w,
		Stage:  st,
		Bus:    bus,
		Ctrl:   ctrl,
		Loop:   loop,
	}
}

// NewClock picks the frame clock named by the loop config
func NewClock(lc config.LoopConfig) core.Clock {
	if lc.Clock == "wall" {
		return core.NewWallClock()
	}
	return core.TickClock{TPS: float64(lc.TPS)}
}

// ResolveSeed keeps a non-zero seed and otherwise derives one from the clock
func ResolveSeed(seed uint64) uint64 {
	if seed != 0 {
		return seed
	}
	return uint64(time.Now().UnixNano()) | 1
}

// Frame runs one frame: commands first, then one step, then event dispatch
func (a *App) Frame(cmds ...sim.Command) {
	for _, cmd := range cmds {
		a.Ctrl.Apply(cmd)
	}
	a.Loop.Update()
	a.Bus.Dispatch()
}
