package configuration

import (
	"fmt"
	"reflect"

	"github.com/markusressel/pot2go/internal/buttons"
	"github.com/markusressel/pot2go/internal/encoder"
	"github.com/mitchellh/mapstructure"
)

// buttonIdHookFunc returns a mapstructure decode hook that accepts button names
// ("left", "commit", ...) as well as their numeric index for buttons.ButtonId.
func buttonIdHookFunc() mapstructure.DecodeHookFuncType {
	buttonIdType := reflect.TypeOf(buttons.ButtonId(0))

	return func(
		f reflect.Type,
		t reflect.Type,
		data interface{},
	) (interface{}, error) {
		if t != buttonIdType {
			return data, nil
		}

		switch v := data.(type) {
		case string:
			return buttons.ParseButtonId(v)
		case int:
			if v < int(buttons.Left) || v > int(buttons.Unknown) {
				return nil, fmt.Errorf("button index out of range: %d", v)
			}
			return buttons.ButtonId(v), nil
		case buttons.ButtonId:
			return v, nil
		}
		return data, nil
	}
}

// edgeModeHookFunc normalizes and validates encoder edge mode names
func edgeModeHookFunc() mapstructure.DecodeHookFuncType {
	edgeModeType := reflect.TypeOf(encoder.EdgeMode(""))

	return func(
		f reflect.Type,
		t reflect.Type,
		data interface{},
	) (interface{}, error) {
		if t != edgeModeType {
			return data, nil
		}
		if v, ok := data.(string); ok {
			return encoder.ParseEdgeMode(v)
		}
		return data, nil
	}
}
