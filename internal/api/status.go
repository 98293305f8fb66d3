package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/markusressel/emcfan/internal/controller"
	"github.com/qdm12/reprint"
)

type StatusResponse struct {
	FanId      string                `json:"fanId"`
	Statistics controller.Statistics `json:"statistics"`
}

func registerStatusEndpoints(rest *echo.Echo, contr controller.FanController) {
	rest.GET("/status/", func(c echo.Context) error {
		return getStatus(c, contr)
	})
}

func getStatus(c echo.Context, contr controller.FanController) error {
	data := StatusResponse{
		FanId:      contr.GetFanId(),
		Statistics: contr.GetStatistics(),
	}
	return c.JSONPretty(http.StatusOK, reprint.This(data), indentationChar)
}
