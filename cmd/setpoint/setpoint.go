package setpoint

import (
	"github.com/markusressel/pot2go/internal/actuators"
	"github.com/markusressel/pot2go/internal/configuration"
	"github.com/markusressel/pot2go/internal/ui"
	"github.com/spf13/cobra"
)

var Command = &cobra.Command{
	Use:              "setpoint",
	Short:            "Read or write the actuator directly",
	Long:             ``,
	TraverseChildren: true,
}

func getActuator() (actuators.Actuator, error) {
	configPath := configuration.DetectConfigFile()
	ui.Debug("Using configuration file at: %s", configPath)
	configuration.LoadConfig()
	if err := configuration.Validate(); err != nil {
		ui.Fatal(err.Error())
	}
	return actuators.NewActuator(configuration.CurrentConfig.Actuator)
}
