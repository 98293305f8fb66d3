package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/markusressel/emcfan/internal/controller"
	"github.com/markusressel/emcfan/internal/util"
)

type FanResponse struct {
	Id        string          `json:"id"`
	Pwm       int             `json:"pwm"`
	Duty      float64         `json:"duty"`
	Registers map[string]byte `json:"registers,omitempty"`
}

func registerFanEndpoints(rest *echo.Echo, c controller.FanController) {
	group := rest.Group("/fan")

	group.GET("/", func(ctx echo.Context) error {
		return getFan(ctx, c)
	})
}

// returns the last pwm value written by the controller, the bus itself is owned by the controller
func getFan(ctx echo.Context, c controller.FanController) error {
	stats := c.GetStatistics()
	return ctx.JSONPretty(http.StatusOK, &FanResponse{
		Id:        c.GetFanId(),
		Pwm:       stats.LastWrittenPwm,
		Duty:      util.RoundTo(util.PwmToPercent(stats.LastWrittenPwm), 2),
		Registers: stats.Registers,
	}, indentationChar)
}
