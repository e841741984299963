package setpoint

import (
	"fmt"
	"strconv"

	"github.com/markusressel/pot2go/internal/configuration"
	"github.com/markusressel/pot2go/internal/ui"
	"github.com/spf13/cobra"
)

var setCmd = &cobra.Command{
	Use:   "set <value>",
	Short: "Write a value to the actuator, bypassing the encoder",
	Long:  `The value must be within [hardware.potMin, hardware.potMax].`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		value, err := strconv.Atoi(args[0])
		if err != nil {
			return err
		}

		actuator, err := getActuator()
		if err != nil {
			return err
		}

		hw := configuration.CurrentConfig.Hardware
		if value < int(hw.PotMin) || value > int(hw.PotMax) {
			return fmt.Errorf("value %d is outside of [%d, %d]", value, hw.PotMin, hw.PotMax)
		}

		if err := actuator.SetValue(value); err != nil {
			return err
		}
		ui.Success("Set %s to %d", actuator.GetId(), value)
		return nil
	},
}

func init() {
	Command.AddCommand(setCmd)
}
