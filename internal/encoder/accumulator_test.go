package encoder

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockLine struct {
	high atomic.Bool
}

func (l *mockLine) IsHigh() bool {
	return l.high.Load()
}

func createAccumulator(t *testing.T, potMin, potMax int, divisor uint16) (*Accumulator, *mockLine) {
	primary := &mockLine{}
	acc, err := NewAccumulator(Settings{PotMin: potMin, PotMax: potMax, Divisor: divisor}, Lines{Primary: primary})
	require.NoError(t, err)
	return acc, primary
}

func secondaryEdges(acc *Accumulator, n int) {
	for i := 0; i < n; i++ {
		acc.OnSecondaryEdge()
	}
}

func TestAccumulator_InitialState(t *testing.T) {
	// WHEN
	acc, _ := createAccumulator(t, 10, 255, 4)

	// THEN
	state := acc.Snapshot()
	assert.Equal(t, Clockwise, state.SpinDirection)
	assert.Equal(t, 10, state.Pending)
	assert.Equal(t, uint16(0), state.ClockwiseCount)
	assert.Equal(t, uint16(0), state.CounterClockwiseCount)
}

func TestAccumulator_DivisorSampling(t *testing.T) {
	// GIVEN
	acc, _ := createAccumulator(t, 0, 255, 4)

	// WHEN
	secondaryEdges(acc, 16)

	// THEN
	assert.Equal(t, 4, acc.Snapshot().Pending)

	// WHEN
	acc.OnSecondaryEdge()

	// THEN
	state := acc.Snapshot()
	assert.Equal(t, 4, state.Pending)
	assert.Equal(t, uint16(17), state.CounterClockwiseCount)
}

func TestAccumulator_CounterClockwiseDecrements(t *testing.T) {
	// GIVEN
	acc, primary := createAccumulator(t, 0, 255, 1)
	secondaryEdges(acc, 10)
	primary.high.Store(true)

	// WHEN
	// the first edge only changes the remembered direction
	secondaryEdges(acc, 4)

	// THEN
	state := acc.Snapshot()
	assert.Equal(t, CounterClockwise, state.SpinDirection)
	assert.Equal(t, 7, state.Pending)
}

func TestAccumulator_SaturatesAtPotMax(t *testing.T) {
	// GIVEN
	acc, _ := createAccumulator(t, 0, 10, 1)

	// WHEN
	secondaryEdges(acc, 1000)

	// THEN
	assert.Equal(t, 10, acc.Snapshot().Pending)
}

func TestAccumulator_SaturatesAtPotMin(t *testing.T) {
	// GIVEN
	acc, primary := createAccumulator(t, 5, 10, 1)
	primary.high.Store(true)

	// WHEN
	secondaryEdges(acc, 1000)

	// THEN
	assert.Equal(t, 5, acc.Snapshot().Pending)
}

func TestAccumulator_EqualBounds(t *testing.T) {
	// GIVEN
	acc, primary := createAccumulator(t, 7, 7, 1)

	// WHEN
	secondaryEdges(acc, 20)
	primary.high.Store(true)
	secondaryEdges(acc, 20)

	// THEN
	assert.Equal(t, 7, acc.Snapshot().Pending)
}

func TestAccumulator_FloorOfMatchingEdges(t *testing.T) {
	for _, divisor := range []uint16{1, 2, 3, 4, 7} {
		for calls := 0; calls < 40; calls++ {
			// GIVEN
			acc, _ := createAccumulator(t, 0, 255, divisor)

			// WHEN
			secondaryEdges(acc, calls)

			// THEN
			assert.Equal(t, calls/int(divisor), acc.Snapshot().Pending, "divisor=%d calls=%d", divisor, calls)
		}
	}
}

func TestAccumulator_PrimaryEdgeOnlyTallies(t *testing.T) {
	// GIVEN
	acc, _ := createAccumulator(t, 0, 255, 1)

	// WHEN
	for i := 0; i < 12; i++ {
		acc.OnPrimaryEdge()
	}

	// THEN
	state := acc.Snapshot()
	assert.Equal(t, uint16(12), state.ClockwiseCount)
	assert.Equal(t, uint16(0), state.CounterClockwiseCount)
	assert.Equal(t, 0, state.Pending)
}

func TestAccumulator_SymmetricMode(t *testing.T) {
	// GIVEN
	primary := &mockLine{}
	secondary := &mockLine{}
	secondary.high.Store(true)
	acc, err := NewAccumulator(
		Settings{PotMin: 0, PotMax: 255, Divisor: 2, Mode: EdgeModeSymmetric},
		Lines{Primary: primary, Secondary: secondary},
	)
	require.NoError(t, err)

	// WHEN
	for i := 0; i < 8; i++ {
		acc.OnPrimaryEdge()
	}

	// THEN
	state := acc.Snapshot()
	assert.Equal(t, 4, state.Pending)
	assert.Equal(t, uint16(8), state.ClockwiseCount)
}

func TestNewAccumulator_InvalidSettings(t *testing.T) {
	line := &mockLine{}

	_, err := NewAccumulator(Settings{PotMin: 0, PotMax: 255, Divisor: 0}, Lines{Primary: line})
	assert.Error(t, err)

	_, err = NewAccumulator(Settings{PotMin: 10, PotMax: 5, Divisor: 1}, Lines{Primary: line})
	assert.Error(t, err)

	_, err = NewAccumulator(Settings{PotMin: 0, PotMax: 5, Divisor: 1}, Lines{})
	assert.Error(t, err)

	_, err = NewAccumulator(Settings{PotMin: 0, PotMax: 5, Divisor: 1, Mode: EdgeModeSymmetric}, Lines{Primary: line})
	assert.Error(t, err)
}

func TestAccumulator_ConcurrentEdgesAndSnapshots(t *testing.T) {
	// GIVEN
	acc, _ := createAccumulator(t, 0, 1_000_000, 1)
	var wg sync.WaitGroup

	// WHEN
	for g := 0; g < 4; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 1000; i++ {
				acc.OnSecondaryEdge()
				acc.OnPrimaryEdge()
			}
		}()
	}
	for i := 0; i < 1000; i++ {
		state := acc.Snapshot()
		assert.Equal(t, int(state.CounterClockwiseCount), state.Pending)
	}
	wg.Wait()

	// THEN
	state := acc.Snapshot()
	assert.Equal(t, uint16(4000), state.ClockwiseCount)
	assert.Equal(t, uint16(4000), state.CounterClockwiseCount)
	assert.Equal(t, 4000, state.Pending)
}

func TestAccumulator_TallyWrapsAt16Bit(t *testing.T) {
	// GIVEN
	acc, _ := createAccumulator(t, 0, 100_000, 3)
	secondaryEdges(acc, 65535)
	state := acc.Snapshot()
	require.Equal(t, uint16(65535), state.CounterClockwiseCount)
	require.Equal(t, 21845, state.Pending)

	// WHEN
	acc.OnSecondaryEdge()

	// THEN
	state = acc.Snapshot()
	assert.Equal(t, uint16(0), state.CounterClockwiseCount)
	// the wrapped tally 0 is a multiple of the divisor
	assert.Equal(t, 21846, state.Pending)
}

func TestParseEdgeMode(t *testing.T) {
	mode, err := ParseEdgeMode("Symmetric")
	assert.NoError(t, err)
	assert.Equal(t, EdgeModeSymmetric, mode)

	mode, err = ParseEdgeMode("")
	assert.NoError(t, err)
	assert.Equal(t, EdgeModeTally, mode)

	_, err = ParseEdgeMode("quadrature")
	assert.Error(t, err)
}

func TestState_SpeedPercent(t *testing.T) {
	state := State{Pending: 51}
	assert.InDelta(t, 20.0, state.SpeedPercent(255), 0.001)
}
