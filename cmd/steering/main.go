package main

import (
	"flag"
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"github.com/1siamBot/steering-demo/engine/app"
	"github.com/1siamBot/steering-demo/engine/config"
	"github.com/1siamBot/steering-demo/engine/core"
	"github.com/1siamBot/steering-demo/engine/geom"
	"github.com/1siamBot/steering-demo/engine/input"
	"github.com/1siamBot/steering-demo/engine/logging"
	"github.com/1siamBot/steering-demo/engine/render"
	"github.com/1siamBot/steering-demo/engine/replay"
	"github.com/1siamBot/steering-demo/engine/sim"
	"github.com/1siamBot/steering-demo/engine/steering"
)

// Game implements ebiten.Game interface
type Game struct {
	app      *app.App
	input    *input.InputState
	renderer *render.Renderer
	status   string
	help     string
}

func NewGame(a *app.App, bindings input.Bindings) *Game {
	cfg := a.Config
	g := &Game{
		app:      a,
		input:    input.NewInputState(bindings),
		renderer: render.NewRenderer(render.NewCanvas(cfg.Window.Width, cfg.Window.Height, cfg.ArenaBounds())),
		status:   sim.ResetMessage,
		help:     helpLine(bindings),
	}

	a.Bus.On(core.EvtModeChanged, func(e core.Event) {
		g.status = "Behavior: " + e.Payload.(sim.ModeChange).To.String()
	})
	a.Bus.On(core.EvtSceneReset, func(core.Event) {
		g.status = sim.ResetMessage
	})
	a.Bus.On(core.EvtArrived, func(e core.Event) {
		g.status = fmt.Sprintf("Behavior: %s (arrived at tick %d)", a.Ctrl.Mode(), e.Tick)
	})
	return g
}

func helpLine(b input.Bindings) string {
	var parts []string
	for _, m := range []steering.Mode{steering.Seeking, steering.Fleeing, steering.Arrival, steering.Avoidance} {
		parts = append(parts, fmt.Sprintf("[%s] %s", b.Label(sim.SwitchTo(m)), m))
	}
	parts = append(parts, fmt.Sprintf("[%s] reset", b.Label(sim.ResetCommand())))
	return strings.Join(parts, "  ")
}

func (g *Game) Update() error {
	if cmd, ok := g.input.Poll(); ok {
		g.app.Frame(cmd)
	} else {
		g.app.Frame()
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.DrawArena(screen)
	g.renderer.DrawWorld(screen, g.app.World)
	g.drawHUD(screen)
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	info := fmt.Sprintf("FPS: %.0f | Tick: %d | Entities: %d\n%s\n%s",
		ebiten.ActualFPS(),
		g.app.Loop.CurrentTick(),
		g.app.World.EntityCount(),
		g.status,
		g.help,
	)
	if agent, ok := g.app.Ctrl.Agent(); ok {
		info += fmt.Sprintf("\nAgent: (%.1f, %.1f) facing %.0f°",
			agent.Pos.X, agent.Pos.Y, geom.Deg(agent.Facing))
	}
	g.renderer.DrawText(screen, info, 12, 12)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.app.Config.Window.Width, g.app.Config.Window.Height
}

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	seed := flag.Uint64("seed", 0, "stage RNG seed (0 = from config, then random)")
	record := flag.String("record", "", "record the command stream to this replay file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		panic(err)
	}
	log, err := logging.New(cfg.Log)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	bindings, err := input.ParseBindings(cfg.Keys)
	if err != nil {
		log.Fatal("bad key bindings", zap.Error(err))
	}
	if *seed == 0 {
		*seed = cfg.Seed
	}

	a := app.New(cfg, log, *seed)
	if *record != "" {
		rec, err := replay.NewRecorder(*record, replay.NewHeader(a.Stage.Seed(), float64(cfg.Loop.TPS)))
		if err != nil {
			log.Fatal("cannot record replay", zap.Error(err))
		}
		defer func() {
			if err := rec.Close(); err != nil {
				log.Error("closing replay", zap.Error(err))
			}
		}()
		a.Ctrl.SetRecorder(rec)
		if cfg.Loop.Clock != "tick" {
			log.Warn("replays only play back exactly with the tick clock", zap.String("clock", cfg.Loop.Clock))
		}
		log.Info("recording replay", zap.String("path", *record), zap.Stringer("session", rec.Header.SessionID))
	}

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetVsyncEnabled(true)
	ebiten.SetTPS(cfg.Loop.TPS)

	if err := ebiten.RunGame(NewGame(a, bindings)); err != nil {
		log.Error("game exited", zap.Error(err))
	}
}
