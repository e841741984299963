package cmd

import (
	"runtime"
	"runtime/debug"

	"github.com/markusressel/pot2go/cmd/global"
	"github.com/markusressel/pot2go/internal/ui"
	"github.com/spf13/cobra"
)

const version = "0.1.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of pot2go",
	Long:  `All software has versions. This is pot2go's`,
	Run: func(cmd *cobra.Command, args []string) {
		ui.Printfln(version)
		if !global.Verbose {
			return
		}
		ui.Printfln("go: %s %s/%s", runtime.Version(), runtime.GOOS, runtime.GOARCH)
		if info, ok := debug.ReadBuildInfo(); ok {
			for _, setting := range info.Settings {
				if setting.Key == "vcs.revision" || setting.Key == "vcs.time" {
					ui.Printfln("%s: %s", setting.Key, setting.Value)
				}
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
