package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/markusressel/pot2go/internal/encoder"
)

type inputRequest struct {
	Sample *int `json:"sample"`
}

type encoderStepRequest struct {
	Direction string `json:"direction"`
	Count     int    `json:"count"`
}

func registerVirtualEndpoints(rest *echo.Echo, device *Device) {
	rest.PUT("/input/", func(c echo.Context) error {
		if device.Input == nil {
			return returnConflict(c, "The analog input is not virtual")
		}
		var request inputRequest
		if err := c.Bind(&request); err != nil {
			return returnBadRequest(c, err)
		}
		if request.Sample == nil {
			return returnBadRequest(c, errors.New("missing sample"))
		}
		device.Input.SetSample(*request.Sample)
		return c.NoContent(http.StatusNoContent)
	})

	rest.POST("/encoder/step/", func(c echo.Context) error {
		if device.Edges == nil {
			return returnConflict(c, "The encoder is not virtual")
		}
		var request encoderStepRequest
		if err := c.Bind(&request); err != nil {
			return returnBadRequest(c, err)
		}
		direction, err := parseDirection(request.Direction)
		if err != nil {
			return returnBadRequest(c, err)
		}
		if request.Count <= 0 {
			return returnBadRequest(c, errors.New("count must be > 0"))
		}
		if err := device.Edges.Step(direction, request.Count); err != nil {
			return returnError(c, err)
		}
		return c.NoContent(http.StatusNoContent)
	})
}

func parseDirection(s string) (encoder.Direction, error) {
	switch s {
	case "clockwise", "cw":
		return encoder.Clockwise, nil
	case "counter-clockwise", "counterclockwise", "ccw":
		return encoder.CounterClockwise, nil
	}
	return encoder.Clockwise, fmt.Errorf("unknown direction '%s', use one of: clockwise | counter-clockwise", s)
}
