package inputs

import (
	"fmt"

	"github.com/markusressel/pot2go/internal/configuration"
)

// AnalogSource provides raw samples of the button pad voltage divider
type AnalogSource interface {
	GetId() string

	// ReadRawSample returns the current, unfiltered reading
	ReadRawSample() (int, error)
}

func NewAnalogSource(config configuration.InputConfig) (AnalogSource, error) {
	if config.File != nil {
		return &FileAnalogSource{
			Config: config,
		}, nil
	}

	if config.Cmd != nil {
		return &CmdAnalogSource{
			Config: config,
		}, nil
	}

	if config.SpiAdc != nil {
		return NewSpiAdcSource(config)
	}

	if config.Virtual != nil {
		return NewVirtualAnalogSource(config.ID, config.Virtual.Sample), nil
	}

	return nil, fmt.Errorf("no matching input type for input: %s", config.ID)
}
