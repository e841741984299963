package display

import (
	"reflect"
	"strconv"
	"sync"
	"time"

	"github.com/markusressel/pot2go/internal/buttons"
	"github.com/markusressel/pot2go/internal/ui"
	"golang.org/x/exp/slices"
)

// Frame is everything a screen would need to draw one control cycle
type Frame struct {
	Mode         string `json:"mode"`
	Committed    int    `json:"committed"`
	HasCommitted bool   `json:"hasCommitted"`

	Pending               int     `json:"pending"`
	SpeedPercent          float64 `json:"speedPercent"`
	Direction             string  `json:"direction"`
	ClockwiseCount        uint16  `json:"clockwiseCount"`
	CounterClockwiseCount uint16  `json:"counterClockwiseCount"`

	// RawSample is the last successful reading, ReadError is set when this cycle's read failed
	RawSample      int                `json:"rawSample"`
	ReadError      string             `json:"readError,omitempty"`
	Classified     buttons.ButtonId   `json:"classified"`
	Debounced      buttons.ButtonId   `json:"debounced"`
	DebounceWindow []buttons.ButtonId `json:"debounceWindow"`

	KeyLog        string `json:"keyLog"`
	AwaitingInput bool   `json:"awaitingInput"`

	CursorX uint8 `json:"cursorX"`
	CursorY uint8 `json:"cursorY"`

	At time.Time `json:"at"`
}

// SameContent compares two frames ignoring the timestamp and the raw sample
func (f Frame) SameContent(other Frame) bool {
	if !slices.Equal(f.DebounceWindow, other.DebounceWindow) {
		return false
	}
	f.DebounceWindow, other.DebounceWindow = nil, nil
	f.At = other.At
	f.RawSample = other.RawSample
	return reflect.DeepEqual(f, other)
}

type Sink interface {
	Show(frame Frame)
}

// Latest keeps the most recent frame for readers outside the control loop
type Latest struct {
	mu    sync.RWMutex
	frame Frame
	ok    bool
}

func (l *Latest) Show(frame Frame) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.frame = frame
	l.ok = true
}

// Get returns the last shown frame, ok is false if nothing was shown yet
func (l *Latest) Get() (frame Frame, ok bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.frame, l.ok
}

// LogSink prints a debug line whenever the frame content changes
type LogSink struct {
	last *Frame
}

func (s *LogSink) Show(frame Frame) {
	if s.last != nil && s.last.SameContent(frame) {
		return
	}
	s.last = &frame

	committed := "-"
	if frame.HasCommitted {
		committed = strconv.Itoa(frame.Committed)
	}
	ui.Debug("[%s] pending: %d (%.1f%%) committed: %s button: %s keys: %s",
		frame.Mode, frame.Pending, frame.SpeedPercent, committed, frame.Debounced, frame.KeyLog)
}

// SinkFunc adapts a function to Sink
type SinkFunc func(frame Frame)

func (f SinkFunc) Show(frame Frame) {
	f(frame)
}

// Multi fans a frame out to all sinks, in order
type Multi []Sink

func (m Multi) Show(frame Frame) {
	for _, sink := range m {
		sink.Show(frame)
	}
}
