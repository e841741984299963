package configuration

import (
	"fmt"

	"github.com/markusressel/pot2go/internal/buttons"
	"github.com/markusressel/pot2go/internal/encoder"
	"github.com/markusressel/pot2go/internal/ui"
	"golang.org/x/exp/slices"
)

// ConfigError is returned for every configuration that pot2go refuses to run with
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return e.Reason
}

func configErrorf(format string, a ...interface{}) error {
	return &ConfigError{Reason: fmt.Sprintf(format, a...)}
}

func Validate() error {
	return validateConfig(&CurrentConfig)
}

func validateConfig(config *Configuration) error {
	if config.ControlCycleRate <= 0 {
		return configErrorf("controlCycleRate must be > 0")
	}

	if err := validateHardware(config); err != nil {
		return err
	}
	if err := validateSoftware(config); err != nil {
		return err
	}
	if err := validateButtons(config); err != nil {
		return err
	}
	if err := validateEncoder(config); err != nil {
		return err
	}
	if err := validateActuator(config); err != nil {
		return err
	}
	return validateInput(config)
}

func validateHardware(config *Configuration) error {
	hw := config.Hardware
	if hw.PotMin > hw.PotMax {
		return configErrorf("hardware: potMin (%d) must not be greater than potMax (%d)", hw.PotMin, hw.PotMax)
	}
	return nil
}

func validateSoftware(config *Configuration) error {
	sw := config.Software
	if sw.EncoderDivisor == 0 {
		return configErrorf("software: encoderDivisor must be > 0")
	}
	if sw.DebounceWindowSize <= 0 {
		return configErrorf("software: debounceWindowSize must be > 0")
	}
	if sw.KeyLogSize <= 0 {
		return configErrorf("software: keyLogSize must be > 0")
	}
	return nil
}

func validateButtons(config *Configuration) error {
	if len(config.Buttons) == 0 {
		return configErrorf("buttons: classifier table is empty")
	}

	var seen []buttons.ButtonId
	for idx, row := range config.Buttons {
		if row.Button > buttons.Unknown {
			return configErrorf("buttons: row %d has an invalid button id %d", idx, row.Button)
		}
		if row.Button == buttons.Unknown {
			return configErrorf("buttons: row %d: '%s' is the fallback and cannot have a range", idx, buttons.Unknown)
		}
		if row.Min > row.Max {
			return configErrorf("buttons: row %d (%s): min (%d) must not be greater than max (%d)", idx, row.Button, row.Min, row.Max)
		}
		if slices.Contains(seen, row.Button) {
			return configErrorf("buttons: duplicate button detected: %s", row.Button)
		}
		seen = append(seen, row.Button)
	}

	ranges := ToRanges(config.Buttons)
	for _, pair := range buttons.Overlaps(ranges) {
		ui.Warning("Button ranges of '%s' and '%s' overlap, '%s' takes precedence",
			ranges[pair[0]].Button, ranges[pair[1]].Button, ranges[pair[0]].Button)
	}

	return nil
}

func validateEncoder(config *Configuration) error {
	enc := config.Encoder
	supportedModes := []encoder.EdgeMode{encoder.EdgeModeTally, encoder.EdgeModeSymmetric}
	if !slices.Contains(supportedModes, enc.EdgeMode) {
		return configErrorf("encoder: unsupported edgeMode '%s', use one of: %s | %s", enc.EdgeMode, encoder.EdgeModeTally, encoder.EdgeModeSymmetric)
	}

	subConfigs := enc.count()
	if subConfigs > 1 {
		return configErrorf("encoder: only one encoder type can be used")
	}
	if subConfigs <= 0 {
		return configErrorf("encoder: sub-configuration is missing, use one of: gpio | virtual")
	}

	if enc.Gpio != nil {
		if len(enc.Gpio.Primary) <= 0 {
			return configErrorf("encoder: gpio: missing primary pin")
		}
		if len(enc.Gpio.Secondary) <= 0 {
			return configErrorf("encoder: gpio: missing secondary pin")
		}
	}

	return nil
}

func validateActuator(config *Configuration) error {
	act := config.Actuator

	subConfigs := act.count()
	if subConfigs > 1 {
		return configErrorf("actuator: only one actuator type can be used")
	}
	if subConfigs <= 0 {
		return configErrorf("actuator: sub-configuration is missing, use one of: file | cmd | spi | virtual")
	}

	if act.File != nil && len(act.File.Path) <= 0 {
		return configErrorf("actuator: no file path provided")
	}

	if act.Cmd != nil {
		if act.Cmd.SetValue == nil {
			return configErrorf("actuator: missing setValue configuration")
		}
		if len(act.Cmd.SetValue.Exec) <= 0 {
			return configErrorf("actuator: setValue executable is missing")
		}
		if act.Cmd.GetValue != nil && len(act.Cmd.GetValue.Exec) <= 0 {
			return configErrorf("actuator: getValue executable is missing")
		}
	}

	if act.Spi != nil && config.Hardware.PotMax > SpiWiperMax {
		return configErrorf("actuator: spi: potMax (%d) exceeds the wiper range 0..%d", config.Hardware.PotMax, SpiWiperMax)
	}

	if act.Spi != nil && len(act.Spi.Bus) <= 0 {
		return configErrorf("actuator: spi: missing bus name")
	}

	if act.Virtual != nil {
		hw := config.Hardware
		if act.Virtual.Value < int(hw.PotMin) || act.Virtual.Value > int(hw.PotMax) {
			return configErrorf("actuator: virtual: initial value %d is outside of [%d, %d]", act.Virtual.Value, hw.PotMin, hw.PotMax)
		}
	}

	return nil
}

func validateInput(config *Configuration) error {
	in := config.Input

	subConfigs := in.count()
	if subConfigs > 1 {
		return configErrorf("input: only one input type can be used")
	}
	if subConfigs <= 0 {
		return configErrorf("input: sub-configuration is missing, use one of: file | cmd | spiAdc | virtual")
	}

	if in.File != nil && len(in.File.Path) <= 0 {
		return configErrorf("input: no file path provided")
	}
	if in.Cmd != nil && len(in.Cmd.Exec) <= 0 {
		return configErrorf("input: cmd executable is missing")
	}
	if in.SpiAdc != nil {
		if len(in.SpiAdc.Bus) <= 0 {
			return configErrorf("input: spiAdc: missing bus name")
		}
		if in.SpiAdc.Channel > 7 {
			return configErrorf("input: spiAdc: channel must be in [0, 7]")
		}
	}

	return nil
}
