package inputs

import (
	"fmt"
	"sync"

	"github.com/markusressel/pot2go/internal/configuration"
	"github.com/markusressel/pot2go/internal/hardware"
	"periph.io/x/conn/v3/spi"
)

const defaultSpiAdcMaxHz = 1_000_000

// SpiAdcSource reads a single ended channel of an MCP3008 compatible 10 bit ADC
type SpiAdcSource struct {
	Config configuration.InputConfig `json:"config"`

	mu     sync.Mutex
	conn   spi.Conn
	closer func() error
}

func NewSpiAdcSource(config configuration.InputConfig) (*SpiAdcSource, error) {
	maxHz := config.SpiAdc.MaxHz
	if maxHz <= 0 {
		maxHz = defaultSpiAdcMaxHz
	}
	conn, closer, err := hardware.OpenSpi(config.SpiAdc.Bus, maxHz)
	if err != nil {
		return nil, err
	}
	return &SpiAdcSource{
		Config: config,
		conn:   conn,
		closer: closer,
	}, nil
}

func (s *SpiAdcSource) GetId() string {
	return s.Config.ID
}

func (s *SpiAdcSource) ReadRawSample() (int, error) {
	channel := s.Config.SpiAdc.Channel
	if channel > 7 {
		return 0, fmt.Errorf("input %s: invalid ADC channel %d", s.GetId(), channel)
	}

	// start bit, single ended mode + channel, padding
	w := []byte{0x01, (0x08 | channel) << 4, 0x00}
	r := make([]byte, len(w))

	s.mu.Lock()
	err := s.conn.Tx(w, r)
	s.mu.Unlock()
	if err != nil {
		return 0, fmt.Errorf("input %s: %w", s.GetId(), err)
	}

	return int(r[1]&0x03)<<8 | int(r[2]), nil
}

func (s *SpiAdcSource) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer()
}
