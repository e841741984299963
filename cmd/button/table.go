package button

import (
	"strconv"

	"github.com/markusressel/pot2go/cmd/global"
	"github.com/markusressel/pot2go/internal/buttons"
	"github.com/markusressel/pot2go/internal/ui"
	"github.com/spf13/cobra"
	"github.com/tomlazar/table"
)

var tableCmd = &cobra.Command{
	Use:   "table",
	Short: "Print the classifier table in scan order",
	Long:  ``,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		classifier := loadClassifier()
		ranges := classifier.Ranges()

		var rows [][]string
		for idx, r := range ranges {
			rows = append(rows, []string{
				strconv.Itoa(idx), r.Button.String(), string(r.Button.Glyph()), strconv.Itoa(r.Min), strconv.Itoa(r.Max),
			})
		}

		tableString, err := global.RenderTable(table.Table{
			Headers: []string{"#", "Button", "Glyph", "Min", "Max"},
			Rows:    rows,
		})
		if err != nil {
			return err
		}
		ui.Printfln(tableString)

		for _, pair := range buttons.Overlaps(ranges) {
			ui.Warning("Rows %d (%s) and %d (%s) overlap", pair[0], ranges[pair[0]].Button, pair[1], ranges[pair[1]].Button)
		}
		return nil
	},
}

func init() {
	Command.AddCommand(tableCmd)
}
