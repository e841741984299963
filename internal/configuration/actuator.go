package configuration

const (
	// DefaultSpiPotCommand is the "write data to potentiometer 0" command of MCP41xxx chips
	DefaultSpiPotCommand = 0b00010001
	DefaultSpiMaxHz      = 1_000_000
)

type ActuatorConfig struct {
	ID      string                 `json:"id" yaml:"id"`
	File    *FileActuatorConfig    `json:"file,omitempty" yaml:"file,omitempty"`
	Cmd     *CmdActuatorConfig     `json:"cmd,omitempty" yaml:"cmd,omitempty"`
	Spi     *SpiActuatorConfig     `json:"spi,omitempty" yaml:"spi,omitempty"`
	Virtual *VirtualActuatorConfig `json:"virtual,omitempty" yaml:"virtual,omitempty"`
}

func (c ActuatorConfig) count() int {
	n := 0
	if c.File != nil {
		n++
	}
	if c.Cmd != nil {
		n++
	}
	if c.Spi != nil {
		n++
	}
	if c.Virtual != nil {
		n++
	}
	return n
}

type FileActuatorConfig struct {
	Path string `json:"path" yaml:"path"`
}

type CmdActuatorConfig struct {
	// SetValue is executed with every occurrence of "%value%" in its args replaced
	SetValue *ExecConfig `json:"setValue" yaml:"setValue"`
	GetValue *ExecConfig `json:"getValue,omitempty" yaml:"getValue,omitempty"`
}

// SpiWiperMax is the highest value an 8 bit digital potentiometer accepts
const SpiWiperMax = 255

type SpiActuatorConfig struct {
	// Bus is the periph.io name of the SPI port, e.g. "SPI0.0"
	Bus     string `json:"bus" yaml:"bus"`
	Command uint8  `json:"command" yaml:"command"`
	MaxHz   int64  `json:"maxHz" yaml:"maxHz"`
}

type VirtualActuatorConfig struct {
	Value int `json:"value" yaml:"value"`
}

type ExecConfig struct {
	Exec string   `json:"exec" yaml:"exec"`
	Args []string `json:"args" yaml:"args"`
}
