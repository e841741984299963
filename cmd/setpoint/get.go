package setpoint

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var getCmd = &cobra.Command{
	Use:   "get",
	Short: "Print the value currently held by the actuator",
	Long:  ``,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		pterm.DisableOutput()

		actuator, err := getActuator()
		if err != nil {
			return err
		}

		value, err := actuator.GetValue()
		if err != nil {
			return err
		}
		fmt.Printf("%d\n", value)
		return nil
	},
}

func init() {
	Command.AddCommand(getCmd)
}
