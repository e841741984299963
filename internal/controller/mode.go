package controller

import "fmt"

type Mode uint8

const (
	ModeInitialising Mode = iota
	ModeSpeedController
)

func (m Mode) String() string {
	switch m {
	case ModeInitialising:
		return "initialising"
	case ModeSpeedController:
		return "speed_controller"
	default:
		return fmt.Sprintf("Mode(%d)", uint8(m))
	}
}

// IllegalStateError is returned when the control loop runs in a mode it cannot handle
type IllegalStateError struct {
	Mode Mode
}

func (e *IllegalStateError) Error() string {
	return fmt.Sprintf("illegal state: %d", uint8(e.Mode))
}
