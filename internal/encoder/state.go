package encoder

import (
	"sync"

	"github.com/markusressel/pot2go/internal/util"
)

type Direction uint8

const (
	Clockwise Direction = iota
	CounterClockwise
)

func (d Direction) String() string {
	switch d {
	case Clockwise:
		return "clockwise"
	case CounterClockwise:
		return "counter-clockwise"
	default:
		return "unknown"
	}
}

func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// State is a point-in-time copy of the accumulator
type State struct {
	SpinDirection         Direction `json:"spinDirection"`
	Pending               int       `json:"pending"`
	ClockwiseCount        uint16    `json:"clockwiseCount"`
	CounterClockwiseCount uint16    `json:"counterClockwiseCount"`
}

// SpeedPercent returns the pending value relative to potMax
func (s State) SpeedPercent(potMax int) float64 {
	return util.Percent(s.Pending, potMax)
}

// cell hands encoder state from edge handlers to the control loop.
// Fields are never accessed outside apply and snapshot.
type cell struct {
	mu    sync.Mutex
	state State
}

func (c *cell) apply(mutation func(s *State)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	mutation(&c.state)
}

func (c *cell) snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}
