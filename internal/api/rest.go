package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	namespace       = "pot2go"
	indentationChar = "  "
)

// CreateRestService creates the REST API of the given device.
// Request metrics are registered with registerer.
func CreateRestService(device *Device, registerer prometheus.Registerer) *echo.Echo {
	echoRest := echo.New()
	echoRest.HideBanner = true
	echoRest.HidePort = true

	// Root level middleware
	echoRest.Pre(middleware.AddTrailingSlash())

	echoRest.Use(middleware.Secure())

	echoRest.Use(middleware.Logger())
	echoRest.Use(middleware.Recover())
	echoRest.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  namespace,
		Subsystem:  "api",
		Registerer: registerer,
	}))

	echoRest.GET("/alive/", isAlive)

	registerStateEndpoints(echoRest, device)
	registerVirtualEndpoints(echoRest, device)
	if device.Hub != nil {
		echoRest.GET("/ws/", device.Hub.handleWebsocket)
	}

	return echoRest
}
