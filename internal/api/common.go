package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/markusressel/pot2go/internal/controller"
	"github.com/markusressel/pot2go/internal/display"
	"github.com/markusressel/pot2go/internal/inputs"
	"github.com/markusressel/pot2go/internal/persistence"
)

// Device bundles everything the API exposes. Journal, Input and Edges may be nil.
type Device struct {
	Frames  *display.Latest
	Loop    *controller.Loop
	Journal persistence.Persistence

	// Input and Edges are only set when the virtual backends are in use
	Input *inputs.VirtualAnalogSource
	Edges *inputs.VirtualEdgeSource

	Hub *Hub
}

type (
	Result struct {
		Name    string `json:"name"`
		Message string `json:"message"`
	}
)

// returns an empty "ok" answer
func isAlive(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}

// return a "not found" message
func returnNotFound(c echo.Context, what string) (err error) {
	return c.JSONPretty(http.StatusNotFound, &Result{
		Name:    "Not found",
		Message: what,
	}, indentationChar)
}

func returnBadRequest(c echo.Context, e error) (err error) {
	return c.JSONPretty(http.StatusBadRequest, &Result{
		Name:    "Bad Request",
		Message: e.Error(),
	}, indentationChar)
}

func returnConflict(c echo.Context, message string) (err error) {
	return c.JSONPretty(http.StatusConflict, &Result{
		Name:    "Conflict",
		Message: message,
	}, indentationChar)
}

// return the error message of an error
func returnError(c echo.Context, e error) (err error) {
	return c.JSONPretty(http.StatusInternalServerError, &Result{
		Name:    "Unknown Error",
		Message: e.Error(),
	}, indentationChar)
}
