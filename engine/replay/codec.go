package replay

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/1siamBot/steering-demo/engine/sim"
	"github.com/1siamBot/steering-demo/engine/steering"
)

const version uint16 = 1

var magic = [4]byte{'S', 'T', 'R', 'P'}

var (
	ErrBadMagic   = errors.New("replay: bad magic")
	ErrBadVersion = errors.New("replay: unsupported version")
)

// Header identifies a recording and everything needed to reproduce it
type Header struct {
	SessionID uuid.UUID
	Seed      uint64  // stage RNG seed
	TPS       float64 // fixed steps per second
}

// NewHeader creates a header with a fresh session ID
func NewHeader(seed uint64, tps float64) Header {
	return Header{SessionID: uuid.New(), Seed: seed, TPS: tps}
}

// Encode writes the header to binary
func (h *Header) Encode(w io.Writer) error {
	if err := binary.Write(w, binary.LittleEndian, magic); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, version); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, h.SessionID); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, h.Seed); err != nil {
		return err
	}
	return binary.Write(w, binary.LittleEndian, h.TPS)
}

// Decode reads a header from binary
func (h *Header) Decode(r io.Reader) error {
	var m [4]byte
	if err := binary.Read(r, binary.LittleEndian, &m); err != nil {
		return err
	}
	if m != magic {
		return ErrBadMagic
	}
	var v uint16
	if err := binary.Read(r, binary.LittleEndian, &v); err != nil {
		return err
	}
	if v != version {
		return fmt.Errorf("%w: %d", ErrBadVersion, v)
	}
	if err := binary.Read(r, binary.LittleEndian, &h.SessionID); err != nil {
		return err
	}
	if err := binary.Read(r, binary.LittleEndian, &h.Seed); err != nil {
		return err
	}
	return binary.Read(r, binary.LittleEndian, &h.TPS)
}

// TickCommand is a command applied before the step with the given tick
type TickCommand struct {
	Tick    uint64
	Command sim.Command
}

// Encode writes a command to binary
func (c *TickCommand) Encode(w io.Writer) error {
	if err := binary.Write(w, binary.LittleEndian, c.Tick); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, c.Command.Type); err != nil {
		return err
	}
	return binary.Write(w, binary.LittleEndian, c.Command.Mode)
}

// Decode reads a command from binary. A clean end of input returns io.EOF.
func (c *TickCommand) Decode(r io.Reader) error {
	if err := binary.Read(r, binary.LittleEndian, &c.Tick); err != nil {
		return err
	}
	var typ sim.CommandType
	if err := binary.Read(r, binary.LittleEndian, &typ); err != nil {
		return noEOF(err)
	}
	var mode steering.Mode
	if err := binary.Read(r, binary.LittleEndian, &mode); err != nil {
		return noEOF(err)
	}
	c.Command = sim.Command{Type: typ, Mode: mode}
	return nil
}

func noEOF(err error) error {
	if errors.Is(err, io.EOF) {
		return io.ErrUnexpectedEOF
	}
	return err
}
