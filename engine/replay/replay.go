// Package replay records the command stream of a session and plays it back.
// With the same stage seed and a fixed step rate, playback reproduces the
// session exactly.
package replay

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/1siamBot/steering-demo/engine/sim"
)

// Recorder writes commands as they are applied. It satisfies sim.Recorder.
type Recorder struct {
	Header   Header
	Commands []TickCommand
	file     *os.File
	writer   *bufio.Writer
}

// NewRecorder creates a replay file and writes its header
func NewRecorder(path string, h Header) (*Recorder, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create replay: %w", err)
	}
	r, err := newRecorder(f, h)
	if err != nil {
		f.Close()
		return nil, err
	}
	r.file = f
	return r, nil
}

// NewStreamRecorder records into an arbitrary writer
func NewStreamRecorder(w io.Writer, h Header) (*Recorder, error) {
	return newRecorder(w, h)
}

func newRecorder(w io.Writer, h Header) (*Recorder, error) {
	r := &Recorder{Header: h, writer: bufio.NewWriter(w)}
	if err := h.Encode(r.writer); err != nil {
		return nil, fmt.Errorf("write replay header: %w", err)
	}
	return r, nil
}

// Record writes a command to the replay
func (r *Recorder) Record(tick uint64, cmd sim.Command) error {
	tc := TickCommand{Tick: tick, Command: cmd}
	r.Commands = append(r.Commands, tc)
	return tc.Encode(r.writer)
}

// Flush pushes buffered records to the underlying writer
func (r *Recorder) Flush() error {
	return r.writer.Flush()
}

// Close flushes and closes the replay file
func (r *Recorder) Close() error {
	err := r.writer.Flush()
	if r.file != nil {
		if cerr := r.file.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

// Replay is a loaded recording
type Replay struct {
	Header   Header
	Commands []TickCommand
}

// Load loads a replay file
func Load(path string) (*Replay, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open replay: %w", err)
	}
	defer f.Close()
	return Read(f)
}

// Read decodes a replay stream
func Read(r io.Reader) (*Replay, error) {
	br := bufio.NewReader(r)
	rep := &Replay{}
	if err := rep.Header.Decode(br); err != nil {
		return nil, fmt.Errorf("read replay header: %w", err)
	}
	for {
		var cmd TickCommand
		if err := cmd.Decode(br); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("read replay command %d: %w", len(rep.Commands), err)
		}
		rep.Commands = append(rep.Commands, cmd)
	}
	return rep, nil
}

// CommandsForTick returns all commands at a given tick during playback
func (r *Replay) CommandsForTick(tick uint64) []sim.Command {
	var result []sim.Command
	for _, c := range r.Commands {
		if c.Tick == tick {
			result = append(result, c.Command)
		}
	}
	return result
}

// LastTick is the tick of the final recorded command
func (r *Replay) LastTick() uint64 {
	if len(r.Commands) == 0 {
		return 0
	}
	return r.Commands[len(r.Commands)-1].Tick
}

// Target is what a replay drives
type Target interface {
	Apply(cmd sim.Command)
	Step(dt float64)
	Tick() uint64
}

// Play runs ticks steps at the recorded rate, applying each command before
// the step it was recorded against.
func (r *Replay) Play(t Target, ticks uint64) {
	dt := 0.0
	if r.Header.TPS > 0 {
		dt = 1 / r.Header.TPS
	}
	next := 0
	for i := uint64(0); i < ticks; i++ {
		tick := t.Tick()
		for next < len(r.Commands) && r.Commands[next].Tick <= tick {
			if r.Commands[next].Tick == tick {
				t.Apply(r.Commands[next].Command)
			}
			next++
		}
		t.Step(dt)
	}
}
