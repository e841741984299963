package configuration

import "github.com/markusressel/pot2go/internal/buttons"

// ButtonRangeConfig is one row of the classifier table, rows are scanned in order
type ButtonRangeConfig struct {
	Button buttons.ButtonId `json:"button" yaml:"button"`
	Min    int              `json:"min" yaml:"min"`
	Max    int              `json:"max" yaml:"max"`
}

func ToRanges(configs []ButtonRangeConfig) []buttons.Range {
	result := make([]buttons.Range, 0, len(configs))
	for _, c := range configs {
		result = append(result, buttons.Range{Button: c.Button, Min: c.Min, Max: c.Max})
	}
	return result
}
