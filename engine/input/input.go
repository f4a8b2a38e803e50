package input

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/1siamBot/steering-demo/engine/config"
	"github.com/1siamBot/steering-demo/engine/sim"
	"github.com/1siamBot/steering-demo/engine/steering"
)

// Binding maps one key to one command
type Binding struct {
	Key     ebiten.Key
	Command sim.Command
}

// Bindings are checked in order; the first key pressed this frame wins
type Bindings []Binding

// DefaultBindings maps 1-4 to the behaviors and 0 to reset
func DefaultBindings() Bindings {
	return Bindings{
		{ebiten.KeyDigit1, sim.SwitchTo(steering.Seeking)},
		{ebiten.KeyDigit2, sim.SwitchTo(steering.Fleeing)},
		{ebiten.KeyDigit3, sim.SwitchTo(steering.Arrival)},
		{ebiten.KeyDigit4, sim.SwitchTo(steering.Avoidance)},
		{ebiten.KeyDigit0, sim.ResetCommand()},
	}
}

// ParseBindings resolves the configured key names
func ParseBindings(keys config.KeysConfig) (Bindings, error) {
	entries := []struct {
		name string
		cmd  sim.Command
	}{
		{keys.Seek, sim.SwitchTo(steering.Seeking)},
		{keys.Flee, sim.SwitchTo(steering.Fleeing)},
		{keys.Arrive, sim.SwitchTo(steering.Arrival)},
		{keys.Avoid, sim.SwitchTo(steering.Avoidance)},
		{keys.Reset, sim.ResetCommand()},
	}
	seen := make(map[ebiten.Key]sim.Command, len(entries))
	b := make(Bindings, 0, len(entries))
	for _, e := range entries {
		var k ebiten.Key
		if err := k.UnmarshalText([]byte(e.name)); err != nil {
			return nil, fmt.Errorf("key for %s: %w", e.cmd, err)
		}
		if prev, dup := seen[k]; dup {
			return nil, fmt.Errorf("key %s bound to both %s and %s", k, prev, e.cmd)
		}
		seen[k] = e.cmd
		b = append(b, Binding{Key: k, Command: e.cmd})
	}
	return b, nil
}

// Label returns the key name bound to cmd, or "" when unbound
func (b Bindings) Label(cmd sim.Command) string {
	for _, bind := range b {
		if bind.Command == cmd {
			return bind.Key.String()
		}
	}
	return ""
}

// KeyFunc reports whether a key was pressed this frame
type KeyFunc func(ebiten.Key) bool

// InputState turns key presses into commands, at most one per frame
type InputState struct {
	Bindings    Bindings
	justPressed KeyFunc
}

func NewInputState(b Bindings) *InputState {
	return &InputState{Bindings: b, justPressed: inpututil.IsKeyJustPressed}
}

// Poll should be called every frame
func (s *InputState) Poll() (sim.Command, bool) {
	return s.PollWith(s.justPressed)
}

// PollWith checks the bindings against an arbitrary key source
func (s *InputState) PollWith(justPressed KeyFunc) (sim.Command, bool) {
	for _, b := range s.Bindings {
		if justPressed(b.Key) {
			return b.Command, true
		}
	}
	return sim.Command{}, false
}
