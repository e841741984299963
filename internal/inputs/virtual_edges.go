package inputs

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/markusressel/pot2go/internal/encoder"
)

var ErrEdgeSourceNotRunning = errors.New("edge source is not running")

// VirtualEdgeSource simulates an encoder, edges are produced by calling Step
type VirtualEdgeSource struct {
	primaryHigh   atomic.Bool
	secondaryHigh atomic.Bool

	mu      sync.Mutex
	handler EdgeHandler
}

func NewVirtualEdgeSource() *VirtualEdgeSource {
	return &VirtualEdgeSource{}
}

func (s *VirtualEdgeSource) Lines() encoder.Lines {
	return encoder.Lines{
		Primary:   encoder.LevelFunc(s.primaryHigh.Load),
		Secondary: encoder.LevelFunc(s.secondaryHigh.Load),
	}
}

func (s *VirtualEdgeSource) Run(ctx context.Context, handler EdgeHandler) error {
	s.mu.Lock()
	s.handler = handler
	s.mu.Unlock()

	<-ctx.Done()

	s.mu.Lock()
	s.handler = nil
	s.mu.Unlock()
	return nil
}

// Step simulates n detents in the given direction. The primary line is held
// at the level the direction implies while n secondary edges are fired.
func (s *VirtualEdgeSource) Step(direction encoder.Direction, n int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.handler == nil {
		return ErrEdgeSourceNotRunning
	}

	s.primaryHigh.Store(direction == encoder.CounterClockwise)
	s.secondaryHigh.Store(direction == encoder.Clockwise)
	for i := 0; i < n; i++ {
		s.handler.OnSecondaryEdge()
	}
	return nil
}
