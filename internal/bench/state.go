package bench

import (
	"fmt"
	"time"
)

// State is a stage of a benchmark run.
type State int

const (
	StateIdle State = iota
	StateAllocated
	StateColdPhase
	StateHotPhase
	StateReported
	StateReleased
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAllocated:
		return "allocated"
	case StateColdPhase:
		return "cold"
	case StateHotPhase:
		return "hot"
	case StateReported:
		return "reported"
	case StateReleased:
		return "released"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Transition records entry into a state.
type Transition struct {
	State     State     `json:"state" yaml:"state"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
}
