// Package config loads the demo settings from YAML. Every field has a
// default, so an empty or partial file is valid.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/1siamBot/steering-demo/engine/core"
	"github.com/1siamBot/steering-demo/engine/geom"
	"github.com/1siamBot/steering-demo/engine/logging"
	"github.com/1siamBot/steering-demo/engine/steering"
)

// ErrInvalid wraps every validation failure
var ErrInvalid = errors.New("invalid config")

type Config struct {
	Window   WindowConfig   `yaml:"window"`
	Arena    ArenaConfig    `yaml:"arena"`
	Steering SteeringConfig `yaml:"steering"`
	Bodies   BodiesConfig   `yaml:"bodies"`
	Keys     KeysConfig     `yaml:"keys"`
	Loop     LoopConfig     `yaml:"loop"`
	Seed     uint64         `yaml:"seed"` // 0 picks a random seed at startup
	Log      logging.Config `yaml:"log"`
}

type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

// ArenaConfig is the canvas the entities live on, centered at the origin
type ArenaConfig struct {
	Width   float64 `yaml:"width"`
	Height  float64 `yaml:"height"`
	Padding float64 `yaml:"padding"`
}

type SteeringConfig struct {
	Speed         float64 `yaml:"speed"`
	ArrivalRadius float64 `yaml:"arrival_radius"`
	SlowingRadius float64 `yaml:"slowing_radius"`
	AvoidRadius   float64 `yaml:"avoid_radius"`
}

type Size struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type BodiesConfig struct {
	Character Size `yaml:"character"`
	Target    Size `yaml:"target"`
	Enemy     Size `yaml:"enemy"`
	Obstacle  Size `yaml:"obstacle"`
}

// KeysConfig holds ebiten key names, e.g. "Digit1"
type KeysConfig struct {
	Seek   string `yaml:"seek"`
	Flee   string `yaml:"flee"`
	Arrive string `yaml:"arrive"`
	Avoid  string `yaml:"avoid"`
	Reset  string `yaml:"reset"`
}

type LoopConfig struct {
	Clock string `yaml:"clock"` // "tick" (fixed 1/TPS) or "wall"
	TPS   int    `yaml:"tps"`
}

func Default() Config {
	p := steering.DefaultParams()
	return Config{
		Window: WindowConfig{Width: 1280, Height: 720, Title: "Steering Behaviors"},
		Arena:  ArenaConfig{Width: 1280, Height: 720, Padding: 50},
		Steering: SteeringConfig{
			Speed:         p.Speed,
			ArrivalRadius: p.ArrivalRadius,
			SlowingRadius: p.SlowingRadius,
			AvoidRadius:   p.AvoidRadius,
		},
		Bodies: BodiesConfig{
			Character: Size{50, 50},
			Target:    Size{30, 30},
			Enemy:     Size{40, 40},
			Obstacle:  Size{60, 60},
		},
		Keys: KeysConfig{
			Seek:   "Digit1",
			Flee:   "Digit2",
			Arrive: "Digit3",
			Avoid:  "Digit4",
			Reset:  "Digit0",
		},
		Loop: LoopConfig{Clock: "tick", TPS: 60},
		Log:  logging.DefaultConfig(),
	}
}

// Load reads path over the defaults. An empty path returns the defaults.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML over the defaults and validates the result
func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
		}
	}
	check(c.Window.Width > 0 && c.Window.Height > 0, "window size %dx%d", c.Window.Width, c.Window.Height)
	check(c.Arena.Width > 0 && c.Arena.Height > 0, "arena size %gx%g", c.Arena.Width, c.Arena.Height)
	check(c.Arena.Padding >= 0, "arena padding %g", c.Arena.Padding)
	check(2*c.Arena.Padding < c.Arena.Width && 2*c.Arena.Padding < c.Arena.Height,
		"arena padding %g leaves no room to spawn", c.Arena.Padding)
	check(c.Steering.Speed >= 0, "steering speed %g", c.Steering.Speed)
	check(c.Steering.ArrivalRadius >= 0, "arrival radius %g", c.Steering.ArrivalRadius)
	check(c.Steering.SlowingRadius > 0, "slowing radius %g", c.Steering.SlowingRadius)
	check(c.Steering.AvoidRadius > 0, "avoid radius %g", c.Steering.AvoidRadius)
	for name, s := range map[string]Size{
		"character": c.Bodies.Character,
		"target":    c.Bodies.Target,
		"enemy":     c.Bodies.Enemy,
		"obstacle":  c.Bodies.Obstacle,
	} {
		check(s.Width >= 0 && s.Height >= 0, "%s size %gx%g", name, s.Width, s.Height)
	}
	check(c.Loop.Clock == "tick" || c.Loop.Clock == "wall", "loop clock %q: want tick or wall", c.Loop.Clock)
	check(c.Loop.TPS > 0, "loop tps %d", c.Loop.TPS)
	return errors.Join(errs...)
}

// Params returns the steering parameters
func (c Config) Params() steering.Params {
	return steering.Params{
		Speed:         c.Steering.Speed,
		ArrivalRadius: c.Steering.ArrivalRadius,
		SlowingRadius: c.Steering.SlowingRadius,
		AvoidRadius:   c.Steering.AvoidRadius,
	}
}

// ArenaBounds returns the arena rectangle
func (c Config) ArenaBounds() steering.Arena {
	return steering.Arena{Width: c.Arena.Width, Height: c.Arena.Height}
}

// Sizes returns the full body size for each entity kind
func (c Config) Sizes() map[core.Kind]geom.Vec2 {
	return map[core.Kind]geom.Vec2{
		core.KindCharacter: geom.V2(c.Bodies.Character.Width, c.Bodies.Character.Height),
		core.KindTarget:    geom.V2(c.Bodies.Target.Width, c.Bodies.Target.Height),
		core.KindEnemy:     geom.V2(c.Bodies.Enemy.Width, c.Bodies.Enemy.Height),
		core.KindObstacle:  geom.V2(c.Bodies.Obstacle.Width, c.Bodies.Obstacle.Height),
	}
}
