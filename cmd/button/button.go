package button

import (
	"github.com/markusressel/pot2go/internal/buttons"
	"github.com/markusressel/pot2go/internal/configuration"
	"github.com/markusressel/pot2go/internal/ui"
	"github.com/spf13/cobra"
)

var Command = &cobra.Command{
	Use:              "button",
	Short:            "Button pad related commands",
	Long:             ``,
	TraverseChildren: true,
}

func loadClassifier() *buttons.Classifier {
	configPath := configuration.DetectConfigFile()
	ui.Debug("Using configuration file at: %s", configPath)
	configuration.LoadConfig()
	if err := configuration.Validate(); err != nil {
		ui.Fatal(err.Error())
	}
	return buttons.NewClassifier(configuration.ToRanges(configuration.CurrentConfig.Buttons))
}
