package debounce

import "github.com/markusressel/pot2go/internal/buttons"

// DefaultWindowSize is the number of consecutive identical samples needed for a transition
const DefaultWindowSize = 8

// Filter turns a stream of classified samples into stable button transitions.
// It is not safe for concurrent use, it belongs to the control loop.
type Filter struct {
	window     []buttons.ButtonId
	cursor     int
	lastStable buttons.ButtonId
}

func NewFilter(size int) *Filter {
	if size <= 0 {
		size = DefaultWindowSize
	}
	window := make([]buttons.ButtonId, size)
	for i := range window {
		window[i] = buttons.Unknown
	}
	return &Filter{
		window:     window,
		cursor:     size - 1,
		lastStable: buttons.Unknown,
	}
}

// Advance stores sample in the window, overwriting the oldest entry.
// It returns the new stable id, and true, only if every slot holds the
// same id and that id differs from the previous stable one.
func (f *Filter) Advance(sample buttons.ButtonId) (buttons.ButtonId, bool) {
	f.cursor = (f.cursor + 1) % len(f.window)
	f.window[f.cursor] = sample

	if !f.Uniform() || sample == f.lastStable {
		return f.lastStable, false
	}

	f.lastStable = sample
	return sample, true
}

// Stable returns the last emitted stable id
func (f *Filter) Stable() buttons.ButtonId {
	return f.lastStable
}

// Uniform reports whether all slots currently hold the same id
func (f *Filter) Uniform() bool {
	for _, id := range f.window {
		if id != f.window[0] {
			return false
		}
	}
	return true
}

func (f *Filter) Size() int {
	return len(f.window)
}

// Window returns a copy of the window, oldest sample first
func (f *Filter) Window() []buttons.ButtonId {
	size := len(f.window)
	result := make([]buttons.ButtonId, 0, size)
	for i := 1; i <= size; i++ {
		result = append(result, f.window[(f.cursor+i)%size])
	}
	return result
}
