package configuration

import "github.com/markusressel/pot2go/internal/encoder"

type InputConfig struct {
	ID      string              `json:"id" yaml:"id"`
	File    *FileInputConfig    `json:"file,omitempty" yaml:"file,omitempty"`
	Cmd     *ExecConfig         `json:"cmd,omitempty" yaml:"cmd,omitempty"`
	SpiAdc  *SpiAdcInputConfig  `json:"spiAdc,omitempty" yaml:"spiAdc,omitempty"`
	Virtual *VirtualInputConfig `json:"virtual,omitempty" yaml:"virtual,omitempty"`
}

func (c InputConfig) count() int {
	n := 0
	if c.File != nil {
		n++
	}
	if c.Cmd != nil {
		n++
	}
	if c.SpiAdc != nil {
		n++
	}
	if c.Virtual != nil {
		n++
	}
	return n
}

type FileInputConfig struct {
	Path string `json:"path" yaml:"path"`
}

type SpiAdcInputConfig struct {
	Bus     string `json:"bus" yaml:"bus"`
	Channel uint8  `json:"channel" yaml:"channel"`
	MaxHz   int64  `json:"maxHz" yaml:"maxHz"`
}

type VirtualInputConfig struct {
	// Sample is the value reported until it is changed via the API
	Sample int `json:"sample" yaml:"sample"`
}

type EncoderConfig struct {
	EdgeMode encoder.EdgeMode      `json:"edgeMode" yaml:"edgeMode"`
	Gpio     *GpioEncoderConfig    `json:"gpio,omitempty" yaml:"gpio,omitempty"`
	Virtual  *VirtualEncoderConfig `json:"virtual,omitempty" yaml:"virtual,omitempty"`
}

func (c EncoderConfig) count() int {
	n := 0
	if c.Gpio != nil {
		n++
	}
	if c.Virtual != nil {
		n++
	}
	return n
}

type GpioEncoderConfig struct {
	// Primary and Secondary are periph.io pin names, e.g. "GPIO17"
	Primary   string `json:"primary" yaml:"primary"`
	Secondary string `json:"secondary" yaml:"secondary"`
}

type VirtualEncoderConfig struct{}
