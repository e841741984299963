package cmd

import (
	"strconv"

	"github.com/markusressel/pot2go/cmd/global"
	"github.com/markusressel/pot2go/internal/actuators"
	"github.com/markusressel/pot2go/internal/buttons"
	"github.com/markusressel/pot2go/internal/configuration"
	"github.com/markusressel/pot2go/internal/inputs"
	"github.com/markusressel/pot2go/internal/ui"
	"github.com/spf13/cobra"
	"github.com/tomlazar/table"
)

var detectCmd = &cobra.Command{
	Use:   "detect",
	Short: "Detect devices",
	Long:  `Creates all configured backends and prints their current readings`,
	Run: func(cmd *cobra.Command, args []string) {
		configPath := configuration.DetectConfigFile()
		ui.Info("Using configuration file at: %s", configPath)
		configuration.LoadConfig()
		config := configuration.CurrentConfig

		var rows [][]string

		input, err := inputs.NewAnalogSource(config.Input)
		if err != nil {
			rows = append(rows, []string{"Input", config.Input.ID, inputType(config.Input), "N/A", err.Error()})
		} else {
			sampleText := "N/A"
			buttonText := ""
			sample, err := input.ReadRawSample()
			if err == nil {
				sampleText = strconv.Itoa(sample)
				buttonText = buttons.NewClassifier(configuration.ToRanges(config.Buttons)).Classify(sample).String()
			}
			rows = append(rows, []string{"Input", input.GetId(), inputType(config.Input), sampleText, buttonText})
		}

		actuator, err := actuators.NewActuator(config.Actuator)
		if err != nil {
			rows = append(rows, []string{"Actuator", config.Actuator.ID, actuatorType(config.Actuator), "N/A", err.Error()})
		} else {
			valueText := "N/A"
			value, err := actuator.GetValue()
			if err == nil {
				valueText = strconv.Itoa(value)
			}
			rows = append(rows, []string{"Actuator", actuator.GetId(), actuatorType(config.Actuator), valueText, ""})
		}

		encoderText := "virtual"
		if config.Encoder.Gpio != nil {
			encoderText = "gpio " + config.Encoder.Gpio.Primary + "/" + config.Encoder.Gpio.Secondary
		}
		rows = append(rows, []string{"Encoder", "", encoderText, "", string(config.Encoder.EdgeMode)})

		tableString, err := global.RenderTable(table.Table{
			Headers: []string{"Device", "ID", "Type", "Value", "Info"},
			Rows:    rows,
		})
		if err != nil {
			ui.Fatal("Error printing table: %v", err)
		}
		ui.Printfln(tableString)
	},
}

func inputType(config configuration.InputConfig) string {
	switch {
	case config.File != nil:
		return "file"
	case config.Cmd != nil:
		return "cmd"
	case config.SpiAdc != nil:
		return "spiAdc " + config.SpiAdc.Bus + "#" + strconv.Itoa(int(config.SpiAdc.Channel))
	case config.Virtual != nil:
		return "virtual"
	}
	return "N/A"
}

func actuatorType(config configuration.ActuatorConfig) string {
	switch {
	case config.File != nil:
		return "file"
	case config.Cmd != nil:
		return "cmd"
	case config.Spi != nil:
		return "spi " + config.Spi.Bus
	case config.Virtual != nil:
		return "virtual"
	}
	return "N/A"
}

func init() {
	rootCmd.AddCommand(detectCmd)
}
