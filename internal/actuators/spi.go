package actuators

import (
	"fmt"
	"sync"

	"github.com/markusressel/pot2go/internal/configuration"
	"github.com/markusressel/pot2go/internal/hardware"
	"periph.io/x/conn/v3/spi"
)

// SpiActuator drives a single channel SPI digital potentiometer (MCP41xxx style).
// Every write is a two byte frame: command, value.
type SpiActuator struct {
	Config configuration.ActuatorConfig `json:"config"`

	mu      sync.Mutex
	conn    spi.Conn
	closer  func() error
	command byte
	last    int
	written bool
}

func NewSpiActuator(config configuration.ActuatorConfig) (*SpiActuator, error) {
	maxHz := config.Spi.MaxHz
	if maxHz <= 0 {
		maxHz = configuration.DefaultSpiMaxHz
	}
	conn, closer, err := hardware.OpenSpi(config.Spi.Bus, maxHz)
	if err != nil {
		return nil, err
	}
	a := newSpiActuator(config, conn)
	a.closer = closer
	return a, nil
}

func newSpiActuator(config configuration.ActuatorConfig, conn spi.Conn) *SpiActuator {
	command := config.Spi.Command
	if command == 0 {
		command = configuration.DefaultSpiPotCommand
	}
	return &SpiActuator{
		Config:  config,
		conn:    conn,
		command: command,
	}
}

func (a *SpiActuator) GetId() string {
	return a.Config.ID
}

func (a *SpiActuator) SetValue(value int) error {
	if value < 0 || value > configuration.SpiWiperMax {
		return fmt.Errorf("value %d cannot be sent to %s, the wiper only has 8 bits", value, a.GetId())
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.conn.Tx([]byte{a.command, byte(value)}, nil); err != nil {
		return fmt.Errorf("failed to write to %s: %w", a.GetId(), err)
	}
	a.last = value
	a.written = true
	return nil
}

// GetValue returns the last value written, the wiper register cannot be read back
func (a *SpiActuator) GetValue() (int, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.written {
		return 0, ErrGetValueNotSupported
	}
	return a.last, nil
}

func (a *SpiActuator) Close() error {
	if a.closer == nil {
		return nil
	}
	return a.closer()
}
