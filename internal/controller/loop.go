package controller

import (
	"context"
	"sync"
	"time"

	"github.com/asecurityteam/rolling"
	"github.com/markusressel/pot2go/internal/buttons"
	"github.com/markusressel/pot2go/internal/debounce"
	"github.com/markusressel/pot2go/internal/display"
	"github.com/markusressel/pot2go/internal/inputs"
	"github.com/markusressel/pot2go/internal/keylog"
	"github.com/markusressel/pot2go/internal/ui"
	"github.com/markusressel/pot2go/internal/util"
)

const cycleWindowSize = 64

type LoopParams struct {
	Source     inputs.AnalogSource
	Classifier *buttons.Classifier
	Filter     *debounce.Filter
	KeyLog     *keylog.Log
	Encoder    EncoderReader
	Setpoint   *SetpointController
	Sink       display.Sink

	PotMax    int
	CycleRate time.Duration
}

type LoopStatistics struct {
	Mode            Mode
	RawSample       int
	UnknownCount    uint64
	ReadErrorCount  uint64
	TransitionCount uint64
	Cursor          Cursor
	KeyLog          []buttons.ButtonId

	CycleDurationAvg time.Duration
	CycleDurationMax time.Duration
}

// Loop runs the periodic part of the device: sample the button pad,
// debounce it and act on stable transitions.
type Loop struct {
	params LoopParams

	mu              sync.Mutex
	cursor          Cursor
	mode            Mode
	rawSample       int
	unknownCount    uint64
	readErrorCount  uint64
	transitionCount uint64
	keys            []buttons.ButtonId
	cycles          uint64
	cycleDurations  *rolling.PointPolicy
}

func NewLoop(params LoopParams) *Loop {
	if params.Filter == nil {
		params.Filter = debounce.NewFilter(debounce.DefaultWindowSize)
	}
	if params.KeyLog == nil {
		params.KeyLog = keylog.New(keylog.DefaultSize)
	}
	if params.Classifier == nil {
		params.Classifier = buttons.NewClassifier(buttons.DefaultRanges)
	}
	return &Loop{
		params:         params,
		mode:           ModeInitialising,
		cycleDurations: util.CreateRollingWindow(cycleWindowSize),
	}
}

// Start finishes initialisation, Step refuses to run before
func (l *Loop) Start() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.mode = ModeSpeedController
}

func (l *Loop) Mode() Mode {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.mode
}

// Run calls Step every CycleRate until ctx is done or Step fails
func (l *Loop) Run(ctx context.Context) error {
	ticker := time.NewTicker(l.params.CycleRate)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := l.Step(); err != nil {
				return err
			}
		}
	}
}

// Step runs a single control cycle
func (l *Loop) Step() error {
	start := time.Now()

	mode := l.Mode()
	if mode != ModeSpeedController {
		return &IllegalStateError{Mode: mode}
	}

	// a failed read keeps the previous sample for display and statistics
	l.mu.Lock()
	sample := l.rawSample
	l.mu.Unlock()
	classified := buttons.Unknown
	readErr := ""
	if reading, err := l.params.Source.ReadRawSample(); err != nil {
		ui.Warning("Error reading input %s: %v", l.params.Source.GetId(), err)
		readErr = err.Error()
	} else {
		sample = reading
		classified = l.params.Classifier.Classify(sample)
	}

	stable, changed := l.params.Filter.Advance(classified)
	if changed {
		l.params.KeyLog.Record(stable)
		cursor := l.cursor.Move(stable)
		l.mu.Lock()
		l.cursor = cursor
		l.mu.Unlock()
		if l.params.Setpoint != nil {
			l.params.Setpoint.Handle(stable)
		}
	}
	keys, hasKeys := l.params.KeyLog.SnapshotInOrder()

	l.mu.Lock()
	l.rawSample = sample
	if classified == buttons.Unknown {
		l.unknownCount++
	}
	if len(readErr) > 0 {
		l.readErrorCount++
	}
	if changed {
		l.transitionCount++
	}
	l.keys = keys
	l.mu.Unlock()

	if l.params.Sink != nil {
		frame := l.frame(mode, sample, classified, hasKeys)
		frame.ReadError = readErr
		l.params.Sink.Show(frame)
	}

	l.mu.Lock()
	l.cycles++
	l.cycleDurations.Append(float64(time.Since(start)))
	l.mu.Unlock()

	return nil
}

func (l *Loop) frame(mode Mode, sample int, classified buttons.ButtonId, hasKeys bool) display.Frame {
	state := l.params.Encoder.Snapshot()
	frame := display.Frame{
		Mode:                  mode.String(),
		Pending:               state.Pending,
		SpeedPercent:          state.SpeedPercent(l.params.PotMax),
		Direction:             state.SpinDirection.String(),
		ClockwiseCount:        state.ClockwiseCount,
		CounterClockwiseCount: state.CounterClockwiseCount,
		RawSample:             sample,
		Classified:            classified,
		Debounced:             l.params.Filter.Stable(),
		DebounceWindow:        l.params.Filter.Window(),
		KeyLog:                l.params.KeyLog.String(),
		AwaitingInput:         !hasKeys,
		CursorX:               l.cursor.X,
		CursorY:               l.cursor.Y,
		At:                    time.Now(),
	}
	if l.params.Setpoint != nil {
		frame.Committed, frame.HasCommitted = l.params.Setpoint.Committed()
	}
	return frame
}

func (l *Loop) Statistics() LoopStatistics {
	l.mu.Lock()
	defer l.mu.Unlock()
	keys := make([]buttons.ButtonId, len(l.keys))
	copy(keys, l.keys)
	result := LoopStatistics{
		Mode:            l.mode,
		RawSample:       l.rawSample,
		UnknownCount:    l.unknownCount,
		ReadErrorCount:  l.readErrorCount,
		TransitionCount: l.transitionCount,
		Cursor:          l.cursor,
		KeyLog:          keys,
	}
	// the window has no meaningful average before the first cycle
	if l.cycles > 0 {
		result.CycleDurationAvg = time.Duration(util.GetWindowAvg(l.cycleDurations))
		result.CycleDurationMax = time.Duration(util.GetWindowMax(l.cycleDurations))
	}
	return result
}
