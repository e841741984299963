package controller

import "github.com/markusressel/pot2go/internal/buttons"

// Cursor is a position on the display moved by the direction buttons.
// Coordinates wrap around like the uint8 they are.
type Cursor struct {
	X uint8 `json:"x"`
	Y uint8 `json:"y"`
}

// Move returns the cursor shifted by a single button press
func (c Cursor) Move(id buttons.ButtonId) Cursor {
	switch id {
	case buttons.Left:
		c.X--
	case buttons.Right:
		c.X++
	case buttons.Up:
		c.Y++
	case buttons.Down:
		c.Y--
	}
	return c
}
