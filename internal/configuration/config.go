package configuration

import (
	"os"
	"time"

	"github.com/markusressel/pot2go/internal/buttons"
	"github.com/markusressel/pot2go/internal/encoder"
	"github.com/markusressel/pot2go/internal/ui"
	"github.com/mitchellh/go-homedir"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

type Configuration struct {
	// DbPath is the location of the commit journal, an empty value disables it
	DbPath string `json:"dbPath" yaml:"dbPath"`

	ControlCycleRate time.Duration `json:"controlCycleRate" yaml:"controlCycleRate"`

	Hardware HardwareConfig `json:"hardware" yaml:"hardware"`
	Software SoftwareConfig `json:"software" yaml:"software"`

	Encoder  EncoderConfig       `json:"encoder" yaml:"encoder"`
	Buttons  []ButtonRangeConfig `json:"buttons" yaml:"buttons"`
	Actuator ActuatorConfig      `json:"actuator" yaml:"actuator"`
	Input    InputConfig         `json:"input" yaml:"input"`

	Api        ApiConfig        `json:"api" yaml:"api"`
	Statistics StatisticsConfig `json:"statistics" yaml:"statistics"`
}

type HardwareConfig struct {
	PotMin uint16 `json:"potMin" yaml:"potMin"`
	PotMax uint16 `json:"potMax" yaml:"potMax"`
}

type SoftwareConfig struct {
	// EncoderDivisor is the number of encoder pulses needed to move the setpoint by one
	EncoderDivisor uint16 `json:"encoderDivisor" yaml:"encoderDivisor"`
	// SerialBaudRate is only reported, pot2go does not open a serial port
	SerialBaudRate     uint32 `json:"serialBaudRate" yaml:"serialBaudRate"`
	DebounceWindowSize int    `json:"debounceWindowSize" yaml:"debounceWindowSize"`
	KeyLogSize         int    `json:"keyLogSize" yaml:"keyLogSize"`
}

var CurrentConfig Configuration

// InitConfig reads in config file and ENV variables if set.
func InitConfig(cfgFile string) {
	viper.SetConfigName("pot2go")

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			ui.Error("Couldn't detect home directory: %v", err)
			os.Exit(1)
		}

		viper.AddConfigPath(".")
		viper.AddConfigPath(home)
		viper.AddConfigPath("/etc/pot2go/")
	}

	viper.AutomaticEnv() // read in environment variables that match

	setDefaultValues()
}

func setDefaultValues() {
	viper.SetDefault("dbpath", "/etc/pot2go/pot2go.db")
	viper.SetDefault("ControlCycleRate", 16*time.Millisecond)

	viper.SetDefault("hardware.potMin", 0)
	viper.SetDefault("hardware.potMax", 255)

	viper.SetDefault("software.encoderDivisor", 4)
	viper.SetDefault("software.serialBaudRate", 115200)
	viper.SetDefault("software.debounceWindowSize", 8)
	viper.SetDefault("software.keyLogSize", 8)

	viper.SetDefault("encoder.edgeMode", string(encoder.EdgeModeTally))

	viper.SetDefault("buttons", DefaultButtonRanges())

	viper.SetDefault("api.enabled", false)
	viper.SetDefault("api.host", "localhost")
	viper.SetDefault("api.port", 8080)

	viper.SetDefault("statistics.enabled", false)
	viper.SetDefault("statistics.port", 9000)
}

// DefaultButtonRanges returns the classifier table of the stock button pad
func DefaultButtonRanges() []ButtonRangeConfig {
	var result []ButtonRangeConfig
	for _, r := range buttons.DefaultRanges {
		result = append(result, ButtonRangeConfig{Button: r.Button, Min: r.Min, Max: r.Max})
	}
	return result
}

// DetectConfigFile reads the config file and returns its path
func DetectConfigFile() string {
	if err := viper.ReadInConfig(); err != nil {
		// config file is required, so we fail here
		ui.Fatal("Error reading config file, %s", err)
	}
	// this is only populated _after_ ReadInConfig()
	return viper.ConfigFileUsed()
}

func LoadConfig() {
	err := viper.Unmarshal(&CurrentConfig, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
			buttonIdHookFunc(),
			edgeModeHookFunc(),
		),
	))
	if err != nil {
		ui.Fatal("unable to decode into struct, %v", err)
	}

	applyBackendFallbacks(&CurrentConfig)
}

// applyBackendFallbacks selects the in-memory backends for every
// collaborator that has no configuration at all.
func applyBackendFallbacks(config *Configuration) {
	if config.Actuator.count() == 0 {
		ui.Info("No actuator configured, using virtual actuator")
		config.Actuator.Virtual = &VirtualActuatorConfig{}
	}
	if config.Input.count() == 0 {
		ui.Info("No analog input configured, using virtual input")
		config.Input.Virtual = &VirtualInputConfig{}
	}
	if config.Encoder.count() == 0 {
		ui.Info("No encoder configured, using virtual encoder")
		config.Encoder.Virtual = &VirtualEncoderConfig{}
	}
}
