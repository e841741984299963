package keylog

import (
	"strings"

	"github.com/markusressel/pot2go/internal/buttons"
)

const (
	DefaultSize = 8

	AwaitingInput = "[awaiting input]"
)

// Log keeps the most recent stable button transitions in a fixed ring
type Log struct {
	entries []buttons.ButtonId
	cursor  int
	written int
}

func New(size int) *Log {
	if size <= 0 {
		size = DefaultSize
	}
	return &Log{
		entries: make([]buttons.ButtonId, size),
		cursor:  -1,
	}
}

// Record appends id, overwriting the oldest entry once the log is full.
// None is ignored.
func (l *Log) Record(id buttons.ButtonId) {
	if id == buttons.None {
		return
	}
	l.cursor = (l.cursor + 1) % len(l.entries)
	l.entries[l.cursor] = id
	if l.written < len(l.entries) {
		l.written++
	}
}

// SnapshotInOrder returns the recorded ids, oldest first.
// ok is false as long as nothing has been recorded yet.
func (l *Log) SnapshotInOrder() (ids []buttons.ButtonId, ok bool) {
	if l.written == 0 {
		return nil, false
	}
	size := len(l.entries)
	ids = make([]buttons.ButtonId, 0, l.written)
	start := l.cursor - l.written + 1
	for i := 0; i < l.written; i++ {
		ids = append(ids, l.entries[(start+i+size)%size])
	}
	return ids, true
}

// Len returns the number of entries currently held
func (l *Log) Len() int {
	return l.written
}

func (l *Log) Capacity() int {
	return len(l.entries)
}

func (l *Log) String() string {
	ids, ok := l.SnapshotInOrder()
	if !ok {
		return AwaitingInput
	}
	var sb strings.Builder
	for _, id := range ids {
		sb.WriteRune(id.Glyph())
	}
	return sb.String()
}
