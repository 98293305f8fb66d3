package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/markusressel/emcfan/internal/curves"
	"github.com/markusressel/emcfan/internal/util"
)

type CurveSample struct {
	Temp float64 `json:"temp"`
	Duty float64 `json:"duty"`
	Pwm  int     `json:"pwm"`
}

type CurveResponse struct {
	Points  []curves.Point `json:"points"`
	Current float64        `json:"current"`
	Samples []CurveSample  `json:"samples"`
}

func registerCurveEndpoints(rest *echo.Echo, curve *curves.LinearSpeedCurve) {
	group := rest.Group("/curve")

	group.GET("/", func(c echo.Context) error {
		return getCurve(c, curve)
	})
}

func getCurve(c echo.Context, curve *curves.LinearSpeedCurve) error {
	samples := curve.Sample(util.MinPercent, util.MaxPercent, 1)

	data := CurveResponse{
		Points:  curve.GetPoints(),
		Current: curve.CurrentValue(),
	}
	for _, temp := range util.SortedKeys(samples) {
		duty := samples[temp]
		data.Samples = append(data.Samples, CurveSample{
			Temp: temp,
			Duty: util.RoundTo(duty, 2),
			Pwm:  util.PercentToPwm(duty),
		})
	}

	return c.JSONPretty(http.StatusOK, data, indentationChar)
}
