package global

import (
	"bytes"

	"github.com/mgutz/ansi"
	"github.com/tomlazar/table"
)

var (
	CfgFile string
	NoColor bool
	NoStyle bool
	Verbose bool
)

// RenderTable renders the given table in the common style of all commands
func RenderTable(tab table.Table) (string, error) {
	var buf bytes.Buffer
	err := tab.WriteTable(&buf, &table.Config{
		ShowIndex:       false,
		Color:           !NoColor,
		AlternateColors: true,
		TitleColorCode:  ansi.ColorCode("white+buf"),
		AltColorCodes: []string{
			ansi.ColorCode("white"),
			ansi.ColorCode("white:236"),
		},
	})
	return buf.String(), err
}
