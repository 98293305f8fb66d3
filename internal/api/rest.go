package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/markusressel/emcfan/internal/controller"
	"github.com/markusressel/emcfan/internal/curves"
	"github.com/markusressel/emcfan/internal/sensors"
)

const (
	indentationChar = "  "
)

type (
	Result struct {
		Name    string `json:"name"`
		Message string `json:"message"`
	}
)

// Dependencies are the components exposed by the read-only rest service
type Dependencies struct {
	Controller controller.FanController
	Curve      *curves.LinearSpeedCurve
	Sensor     sensors.Sensor
}

func CreateRestService(deps Dependencies) *echo.Echo {
	echoRest := CreateWebserver()
	echoRest.Use(middleware.Logger())

	echoRest.GET("/alive/", isAlive)

	registerStatusEndpoints(echoRest, deps.Controller)
	registerCurveEndpoints(echoRest, deps.Curve)
	registerSensorEndpoints(echoRest, deps.Sensor)
	registerFanEndpoints(echoRest, deps.Controller)

	return echoRest
}

// returns an empty "ok" answer
func isAlive(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}

// return the error message of an error
func returnError(c echo.Context, status int, name string, e error) (err error) {
	return c.JSONPretty(status, &Result{
		Name:    name,
		Message: e.Error(),
	}, indentationChar)
}
