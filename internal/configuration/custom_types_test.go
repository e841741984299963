package configuration

import (
	"reflect"
	"testing"

	"github.com/markusressel/pot2go/internal/buttons"
	"github.com/markusressel/pot2go/internal/encoder"
	"github.com/mitchellh/mapstructure"
	"github.com/stretchr/testify/assert"
)

func decode(t *testing.T, input interface{}, output interface{}) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(buttonIdHookFunc(), edgeModeHookFunc()),
		Result:     output,
	})
	assert.NoError(t, err)
	return decoder.Decode(input)
}

func TestButtonIdHookFunc_Names(t *testing.T) {
	// GIVEN
	input := []map[string]interface{}{
		{"button": "none", "min": -1, "max": 20},
		{"button": "Commit", "min": 900, "max": 920},
	}
	var result []ButtonRangeConfig

	// WHEN
	err := decode(t, input, &result)

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, []ButtonRangeConfig{
		{Button: buttons.None, Min: -1, Max: 20},
		{Button: buttons.Commit, Min: 900, Max: 920},
	}, result)
}

func TestButtonIdHookFunc_Index(t *testing.T) {
	// GIVEN
	hook := buttonIdHookFunc()

	// WHEN
	result, err := hook(reflect.TypeOf(0), reflect.TypeOf(buttons.ButtonId(0)), 3)

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, buttons.Right, result)
}

func TestButtonIdHookFunc_InvalidName(t *testing.T) {
	// GIVEN
	input := map[string]interface{}{"button": "select", "min": 0, "max": 1}
	var result ButtonRangeConfig

	// WHEN
	err := decode(t, input, &result)

	// THEN
	assert.Error(t, err)
}

func TestEdgeModeHookFunc(t *testing.T) {
	// GIVEN
	input := map[string]interface{}{"edgeMode": "SYMMETRIC"}
	var result EncoderConfig

	// WHEN
	err := decode(t, input, &result)

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, encoder.EdgeModeSymmetric, result.EdgeMode)
}
