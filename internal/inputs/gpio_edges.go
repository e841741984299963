package inputs

import (
	"context"
	"sync"

	"github.com/markusressel/pot2go/internal/configuration"
	"github.com/markusressel/pot2go/internal/encoder"
	"github.com/markusressel/pot2go/internal/hardware"
	"periph.io/x/conn/v3/gpio"
)

// GpioEdgeSource watches two pulled up GPIO inputs for rising edges
type GpioEdgeSource struct {
	primary   gpio.PinIO
	secondary gpio.PinIO
}

func NewGpioEdgeSource(config configuration.GpioEncoderConfig) (*GpioEdgeSource, error) {
	primary, err := hardware.InputPin(config.Primary)
	if err != nil {
		return nil, err
	}
	secondary, err := hardware.InputPin(config.Secondary)
	if err != nil {
		return nil, err
	}
	return &GpioEdgeSource{
		primary:   primary,
		secondary: secondary,
	}, nil
}

func (s *GpioEdgeSource) Lines() encoder.Lines {
	return encoder.Lines{
		Primary:   pinLevel(s.primary),
		Secondary: pinLevel(s.secondary),
	}
}

func (s *GpioEdgeSource) Run(ctx context.Context, handler EdgeHandler) error {
	wg := sync.WaitGroup{}
	wg.Add(2)
	go func() {
		defer wg.Done()
		watchEdges(ctx, s.primary, handler.OnPrimaryEdge)
	}()
	go func() {
		defer wg.Done()
		watchEdges(ctx, s.secondary, handler.OnSecondaryEdge)
	}()

	<-ctx.Done()
	// unblocks pending WaitForEdge calls
	_ = s.primary.Halt()
	_ = s.secondary.Halt()
	wg.Wait()
	return nil
}

func watchEdges(ctx context.Context, pin gpio.PinIO, onEdge func()) {
	for {
		if ctx.Err() != nil {
			return
		}
		if pin.WaitForEdge(-1) && ctx.Err() == nil {
			onEdge()
		}
	}
}

func pinLevel(pin gpio.PinIO) encoder.LevelReader {
	return encoder.LevelFunc(func() bool {
		return pin.Read() == gpio.High
	})
}
