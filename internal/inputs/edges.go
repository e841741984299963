package inputs

import (
	"context"
	"fmt"

	"github.com/markusressel/pot2go/internal/configuration"
	"github.com/markusressel/pot2go/internal/encoder"
)

// EdgeHandler receives rising edges of the two encoder lines
type EdgeHandler interface {
	OnPrimaryEdge()
	OnSecondaryEdge()
}

// EdgeSource delivers encoder edges to a handler until its context is done
type EdgeSource interface {
	Run(ctx context.Context, handler EdgeHandler) error
	// Lines gives access to the instantaneous line levels
	Lines() encoder.Lines
}

func NewEdgeSource(config configuration.EncoderConfig) (EdgeSource, error) {
	if config.Gpio != nil {
		return NewGpioEdgeSource(*config.Gpio)
	}

	if config.Virtual != nil {
		return NewVirtualEdgeSource(), nil
	}

	return nil, fmt.Errorf("no matching encoder type")
}
