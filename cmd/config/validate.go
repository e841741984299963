package config

import (
	"os"

	"github.com/markusressel/pot2go/internal/configuration"
	"github.com/markusressel/pot2go/internal/ui"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validates the current configuration",
	Long:  ``,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		// note: config file path parameter comes from the root command (-c)
		configPath := configuration.DetectConfigFile()
		ui.Info("Using configuration file at: %s", configPath)
		configuration.LoadConfig()

		if err := configuration.Validate(); err != nil {
			ui.Error("Validation failed: %v", err)
			os.Exit(1)
		}

		config := configuration.CurrentConfig
		ui.Debug("Setpoint range: %d..%d", config.Hardware.PotMin, config.Hardware.PotMax)
		ui.Debug("Encoder: divisor %d, edge mode %s", config.Software.EncoderDivisor, config.Encoder.EdgeMode)
		ui.Debug("Buttons: %d ranges, debounce window %d, key log %d",
			len(config.Buttons), config.Software.DebounceWindowSize, config.Software.KeyLogSize)

		ui.Success("Config looks good! :)")
		return nil
	},
}

func init() {
	Command.AddCommand(validateCmd)
}
