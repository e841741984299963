package api

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/markusressel/pot2go/internal/buttons"
	"github.com/markusressel/pot2go/internal/configuration"
	"github.com/markusressel/pot2go/internal/keylog"
	"github.com/qdm12/reprint"
)

const (
	queryParamLimit     = "limit"
	defaultHistoryLimit = 100
)

type keyLogResponse struct {
	AwaitingInput bool               `json:"awaitingInput"`
	Keys          []buttons.ButtonId `json:"keys"`
	Text          string             `json:"text"`
}

func registerStateEndpoints(rest *echo.Echo, device *Device) {
	rest.GET("/state/", func(c echo.Context) error {
		frame, ok := device.Frames.Get()
		if !ok {
			return returnNotFound(c, "No frame has been rendered yet")
		}
		return c.JSONPretty(http.StatusOK, frame, indentationChar)
	})

	rest.GET("/keylog/", func(c echo.Context) error {
		keys := device.Loop.Statistics().KeyLog
		response := keyLogResponse{
			AwaitingInput: len(keys) == 0,
			Keys:          keys,
			Text:          keylog.AwaitingInput,
		}
		if len(keys) > 0 {
			text := make([]rune, 0, len(keys))
			for _, id := range keys {
				text = append(text, id.Glyph())
			}
			response.Text = string(text)
		}
		return c.JSONPretty(http.StatusOK, response, indentationChar)
	})

	rest.GET("/config/", func(c echo.Context) error {
		data := reprint.This(configuration.CurrentConfig)
		return c.JSONPretty(http.StatusOK, data, indentationChar)
	})

	rest.GET("/history/", func(c echo.Context) error {
		if device.Journal == nil {
			return returnNotFound(c, "Commit journal is disabled")
		}

		limit := defaultHistoryLimit
		if param := c.QueryParam(queryParamLimit); len(param) > 0 {
			parsed, err := strconv.Atoi(param)
			if err != nil {
				return returnBadRequest(c, err)
			}
			limit = parsed
		}

		records, err := device.Journal.LoadCommits(limit)
		if err != nil {
			return returnError(c, err)
		}
		return c.JSONPretty(http.StatusOK, records, indentationChar)
	})
}
