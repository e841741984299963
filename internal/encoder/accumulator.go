package encoder

import (
	"fmt"
	"strings"

	"github.com/markusressel/pot2go/internal/util"
)

// EdgeMode selects what a rising edge on the primary line does
type EdgeMode string

const (
	// EdgeModeTally only counts primary edges, all stepping happens on the secondary line
	EdgeModeTally EdgeMode = "tally"
	// EdgeModeSymmetric mirrors the secondary line logic on the primary line
	EdgeModeSymmetric EdgeMode = "symmetric"
)

func ParseEdgeMode(s string) (EdgeMode, error) {
	switch EdgeMode(strings.ToLower(strings.TrimSpace(s))) {
	case EdgeModeTally, "":
		return EdgeModeTally, nil
	case EdgeModeSymmetric:
		return EdgeModeSymmetric, nil
	}
	return EdgeModeTally, fmt.Errorf("unsupported edge mode '%s', use one of: %s | %s", s, EdgeModeTally, EdgeModeSymmetric)
}

// LevelReader returns the instantaneous level of an encoder line
type LevelReader interface {
	IsHigh() bool
}

// LevelFunc adapts a function to LevelReader
type LevelFunc func() bool

func (f LevelFunc) IsHigh() bool {
	return f()
}

// Lines gives the accumulator access to the levels of both encoder lines
type Lines struct {
	Primary   LevelReader
	Secondary LevelReader
}

type Settings struct {
	PotMin  int
	PotMax  int
	Divisor uint16
	Mode    EdgeMode
}

// Accumulator turns encoder edges into a bounded pending setpoint.
// OnPrimaryEdge and OnSecondaryEdge may be called from any goroutine,
// Snapshot is the only way to read the accumulated state.
type Accumulator struct {
	settings Settings
	lines    Lines
	cell     cell
}

func NewAccumulator(settings Settings, lines Lines) (*Accumulator, error) {
	if settings.Divisor == 0 {
		return nil, fmt.Errorf("encoder divisor must be > 0")
	}
	if settings.PotMin > settings.PotMax {
		return nil, fmt.Errorf("potMin (%d) must not be greater than potMax (%d)", settings.PotMin, settings.PotMax)
	}
	if settings.Mode == "" {
		settings.Mode = EdgeModeTally
	}
	if lines.Primary == nil {
		return nil, fmt.Errorf("primary encoder line is required")
	}
	if settings.Mode == EdgeModeSymmetric && lines.Secondary == nil {
		return nil, fmt.Errorf("edge mode %s requires a secondary encoder line", settings.Mode)
	}

	a := &Accumulator{
		settings: settings,
		lines:    lines,
	}
	a.cell.state = State{
		SpinDirection: Clockwise,
		Pending:       settings.PotMin,
	}
	return a, nil
}

func (a *Accumulator) OnPrimaryEdge() {
	if a.settings.Mode != EdgeModeSymmetric {
		a.cell.apply(func(s *State) {
			s.ClockwiseCount++
		})
		return
	}

	// secondary high while primary rises means clockwise rotation
	direction := CounterClockwise
	if a.lines.Secondary.IsHigh() {
		direction = Clockwise
	}
	a.cell.apply(func(s *State) {
		s.ClockwiseCount++
		a.step(s, direction, s.ClockwiseCount)
	})
}

func (a *Accumulator) OnSecondaryEdge() {
	direction := Clockwise
	if a.lines.Primary.IsHigh() {
		direction = CounterClockwise
	}
	a.cell.apply(func(s *State) {
		s.CounterClockwiseCount++
		a.step(s, direction, s.CounterClockwiseCount)
	})
}

// step moves the pending value by one unit if direction was seen twice in a row
// and tally hits the divisor. The direction is remembered in any case.
func (a *Accumulator) step(s *State, direction Direction, tally uint16) {
	if direction == s.SpinDirection && tally%a.settings.Divisor == 0 {
		delta := 1
		if direction == CounterClockwise {
			delta = -1
		}
		s.Pending = util.Clamp(s.Pending+delta, a.settings.PotMin, a.settings.PotMax)
	}
	s.SpinDirection = direction
}

func (a *Accumulator) Snapshot() State {
	return a.cell.snapshot()
}

func (a *Accumulator) Settings() Settings {
	return a.settings
}
