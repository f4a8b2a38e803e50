package steering

import (
	"fmt"
	"strings"
)

// Mode is the active steering behavior. Exactly one is active at a time.
type Mode uint8

const (
	None Mode = iota
	Seeking
	Fleeing
	Arrival
	Avoidance
)

var modeNames = [...]string{
	None:      "none",
	Seeking:   "seek",
	Fleeing:   "flee",
	Arrival:   "arrive",
	Avoidance: "avoid",
}

func (m Mode) String() string {
	if int(m) < len(modeNames) {
		return modeNames[m]
	}
	return fmt.Sprintf("mode(%d)", uint8(m))
}

// ParseMode accepts the short names returned by String
func ParseMode(s string) (Mode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range modeNames {
		if name == s {
			return Mode(i), nil
		}
	}
	return None, fmt.Errorf("unknown steering mode %q", s)
}

// NeedsTarget reports whether the mode steers toward a target entity
func (m Mode) NeedsTarget() bool {
	return m == Seeking || m == Arrival || m == Avoidance
}

// NeedsEnemy reports whether the mode steers away from an enemy entity
func (m Mode) NeedsEnemy() bool { return m == Fleeing }

// NeedsObstacle reports whether the mode requires an obstacle entity
func (m Mode) NeedsObstacle() bool { return m == Avoidance }
