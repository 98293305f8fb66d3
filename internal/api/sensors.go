package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/markusressel/emcfan/internal/sensors"
)

type SensorResponse struct {
	Id    string  `json:"id"`
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

func registerSensorEndpoints(rest *echo.Echo, sensor sensors.Sensor) {
	group := rest.Group("/sensor")

	group.GET("/", func(c echo.Context) error {
		return getSensor(c, sensor)
	})
}

func getSensor(c echo.Context, sensor sensors.Sensor) error {
	value, err := sensor.GetValue()
	if err != nil {
		return returnError(c, http.StatusServiceUnavailable, "Sensor Error", err)
	}
	return c.JSONPretty(http.StatusOK, &SensorResponse{
		Id:    sensor.GetId(),
		Label: sensor.GetLabel(),
		Value: value,
	}, indentationChar)
}
