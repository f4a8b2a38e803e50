package sim

import (
	"fmt"

	"github.com/1siamBot/steering-demo/engine/steering"
)

// CommandType identifies a control command
type CommandType uint8

const (
	CmdSwitchMode CommandType = iota + 1
	CmdReset
)

// Command is a discrete control input, delivered once per occurrence
type Command struct {
	Type CommandType
	Mode steering.Mode // CmdSwitchMode only
}

// SwitchTo builds a mode switch command
func SwitchTo(m steering.Mode) Command {
	return Command{Type: CmdSwitchMode, Mode: m}
}

// ResetCommand builds a reset command
func ResetCommand() Command {
	return Command{Type: CmdReset}
}

func (c Command) String() string {
	switch c.Type {
	case CmdSwitchMode:
		return "switch:" + c.Mode.String()
	case CmdReset:
		return "reset"
	}
	return fmt.Sprintf("command(%d)", uint8(c.Type))
}

// Valid reports whether the command can be applied
func (c Command) Valid() bool {
	switch c.Type {
	case CmdSwitchMode:
		return c.Mode <= steering.Avoidance
	case CmdReset:
		return true
	}
	return false
}
