package cmd

import (
	"strconv"

	"github.com/guptarohit/asciigraph"
	"github.com/markusressel/pot2go/cmd/global"
	"github.com/markusressel/pot2go/internal/configuration"
	"github.com/markusressel/pot2go/internal/persistence"
	"github.com/markusressel/pot2go/internal/ui"
	"github.com/markusressel/pot2go/internal/util"
	"github.com/spf13/cobra"
	"github.com/tomlazar/table"
)

var (
	historyLimit int
	historyClear bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Print the journal of committed setpoints",
	Long:  ``,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_ = configuration.DetectConfigFile()
		configuration.LoadConfig()

		if len(configuration.CurrentConfig.DbPath) <= 0 {
			ui.Warning("Commit journal is disabled (dbPath is empty)")
			return nil
		}
		dbPath, err := util.ExpandHome(configuration.CurrentConfig.DbPath)
		if err != nil {
			return err
		}
		p := persistence.NewPersistence(dbPath)

		if historyClear {
			if err := p.DeleteCommits(); err != nil {
				return err
			}
			ui.Success("Commit journal cleared")
			return nil
		}

		records, err := p.LoadCommits(historyLimit)
		if err != nil {
			return err
		}
		if len(records) == 0 {
			ui.Printfln("No commits yet...")
			return nil
		}

		var rows [][]string
		values := make([]float64, 0, len(records))
		for _, record := range records {
			previous := "-"
			if record.HasPrevious {
				previous = strconv.Itoa(record.Previous)
			}
			rows = append(rows, []string{
				record.At.Format("2006-01-02 15:04:05"), previous, strconv.Itoa(record.Value), record.WriteError,
			})
			values = append(values, float64(record.Value))
		}

		tableString, err := global.RenderTable(table.Table{
			Headers: []string{"Time", "Previous", "Value", "Error"},
			Rows:    rows,
		})
		if err != nil {
			return err
		}
		ui.Printfln(tableString)

		// print graph
		if len(values) > 1 {
			graph := asciigraph.Plot(values, asciigraph.Height(15), asciigraph.Width(100), asciigraph.Caption("Setpoint / Commit"))
			ui.Printfln(graph)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "l", 50, "Maximum number of commits to show, 0 shows all")
	historyCmd.Flags().BoolVarP(&historyClear, "clear", "", false, "Delete all journaled commits")
	rootCmd.AddCommand(historyCmd)
}
