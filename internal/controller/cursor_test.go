package controller

import (
	"testing"

	"github.com/markusressel/pot2go/internal/buttons"
	"github.com/stretchr/testify/assert"
)

func TestCursor_Move(t *testing.T) {
	tests := []struct {
		name     string
		button   buttons.ButtonId
		expected Cursor
	}{
		{"left", buttons.Left, Cursor{X: 9, Y: 10}},
		{"right", buttons.Right, Cursor{X: 11, Y: 10}},
		{"up", buttons.Up, Cursor{X: 10, Y: 11}},
		{"down", buttons.Down, Cursor{X: 10, Y: 9}},
		{"commit", buttons.Commit, Cursor{X: 10, Y: 10}},
		{"none", buttons.None, Cursor{X: 10, Y: 10}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// GIVEN
			cursor := Cursor{X: 10, Y: 10}

			// WHEN
			result := cursor.Move(tt.button)

			// THEN
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestCursor_Wraps(t *testing.T) {
	// GIVEN
	cursor := Cursor{}

	// WHEN
	result := cursor.Move(buttons.Left).Move(buttons.Down)

	// THEN
	assert.Equal(t, Cursor{X: 255, Y: 255}, result)
}

func TestIllegalStateError_Message(t *testing.T) {
	assert.EqualError(t, &IllegalStateError{Mode: 153}, "illegal state: 153")
	assert.Equal(t, "speed_controller", ModeSpeedController.String())
	assert.Equal(t, "Mode(153)", Mode(153).String())
}
