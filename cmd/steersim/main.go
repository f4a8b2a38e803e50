// Command steersim runs the steering simulation without a window, either
// one behavior for a number of ticks or a recorded replay.
package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/1siamBot/steering-demo/engine/app"
	"github.com/1siamBot/steering-demo/engine/config"
	"github.com/1siamBot/steering-demo/engine/core"
	"github.com/1siamBot/steering-demo/engine/geom"
	"github.com/1siamBot/steering-demo/engine/logging"
	"github.com/1siamBot/steering-demo/engine/replay"
	"github.com/1siamBot/steering-demo/engine/sim"
	"github.com/1siamBot/steering-demo/engine/steering"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	replayPath := flag.String("replay", "", "play back this replay file")
	modeName := flag.String("mode", "seek", "behavior to run: seek, flee, arrive, avoid")
	ticks := flag.Uint64("ticks", 600, "number of steps to run")
	seed := flag.Uint64("seed", 0, "stage RNG seed (0 = from config, then random)")
	flag.Parse()

	if err := run(*configPath, *replayPath, *modeName, *ticks, *seed); err != nil {
		fmt.Fprintln(os.Stderr, "steersim:", err)
		os.Exit(1)
	}
}

func run(configPath, replayPath, modeName string, ticks, seed uint64) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	log, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	defer log.Sync()

	// headless runs are always fixed-step
	cfg.Loop.Clock = "tick"
	if seed == 0 {
		seed = cfg.Seed
	}

	var rep *replay.Replay
	if replayPath != "" {
		rep, err = replay.Load(replayPath)
		if err != nil {
			return err
		}
		seed = rep.Header.Seed
		if rep.Header.TPS > 0 {
			cfg.Loop.TPS = int(rep.Header.TPS)
		}
		log.Info("playing replay",
			zap.String("path", replayPath),
			zap.Stringer("session", rep.Header.SessionID),
			zap.Int("commands", len(rep.Commands)),
		)
	}

	a := app.New(cfg, log, seed)
	a.Bus.On(core.EvtArrived, func(e core.Event) {
		log.Info("arrived", zap.Uint64("tick", e.Tick))
	})

	if rep != nil {
		rep.Play(a.Ctrl, ticks)
		a.Bus.Dispatch()
	} else {
		mode, err := steering.ParseMode(modeName)
		if err != nil {
			return err
		}
		a.Frame(sim.SwitchTo(mode))
		for i := uint64(1); i < ticks; i++ {
			a.Frame()
		}
	}

	report(log, a)
	return nil
}

func report(log *zap.Logger, a *app.App) {
	st := a.Ctrl.State()
	fields := []zap.Field{
		zap.Stringer("mode", st.Mode),
		zap.Uint64("tick", a.Ctrl.Tick()),
		zap.Bool("arrived", st.Arrived),
	}
	if agent, ok := a.Ctrl.Agent(); ok {
		fields = append(fields,
			zap.Float64("x", agent.Pos.X),
			zap.Float64("y", agent.Pos.Y),
			zap.Float64("facing_deg", geom.Deg(agent.Facing)),
		)
	}
	for name, id := range map[string]core.EntityID{"target": st.Target, "enemy": st.Enemy, "obstacle": st.Obstacle} {
		if tr := a.Stage.Transform(id); tr != nil {
			fields = append(fields, zap.String(name, fmt.Sprintf("(%.1f, %.1f)", tr.Pos.X, tr.Pos.Y)))
		}
	}
	log.Info("simulation finished", fields...)
}
