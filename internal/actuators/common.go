package actuators

import (
	"fmt"

	"github.com/markusressel/pot2go/internal/configuration"
)

// Actuator is the external device that receives the committed setpoint
type Actuator interface {
	GetId() string

	// SetValue writes a new setpoint to the device
	SetValue(value int) error
	// GetValue returns the value the device currently holds, if it can be read back
	GetValue() (int, error)
}

func NewActuator(config configuration.ActuatorConfig) (Actuator, error) {
	if config.File != nil {
		return &FileActuator{
			Config: config,
		}, nil
	}

	if config.Cmd != nil {
		return &CmdActuator{
			Config: config,
		}, nil
	}

	if config.Spi != nil {
		return NewSpiActuator(config)
	}

	if config.Virtual != nil {
		return &VirtualActuator{
			ID:    config.ID,
			value: config.Virtual.Value,
		}, nil
	}

	return nil, fmt.Errorf("no matching actuator type for actuator: %s", config.ID)
}
