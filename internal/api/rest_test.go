package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/markusressel/emcfan/internal/configuration"
	"github.com/markusressel/emcfan/internal/controller"
	"github.com/markusressel/emcfan/internal/curves"
	"github.com/markusressel/emcfan/internal/testingutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubController struct {
	stats controller.Statistics
}

func (c stubController) Run(ctx context.Context) error {
	return nil
}

func (c stubController) UpdateFanSpeed() error {
	return nil
}

func (c stubController) GetFanId() string {
	return "fan"
}

func (c stubController) GetState() controller.State {
	return c.stats.State
}

func (c stubController) GetStatistics() controller.Statistics {
	return c.stats
}

func createService(t *testing.T, sensorErr error) *echo.Echo {
	curve, err := curves.NewSpeedCurve(configuration.CurveConfig{
		{Temp: 30, Duty: 30},
		{Temp: 70, Duty: 59},
	})
	require.NoError(t, err)

	return CreateRestService(Dependencies{
		Controller: stubController{stats: controller.Statistics{
			State:          controller.StateSampling,
			Writes:         2,
			Suppressed:     5,
			LastAverage:    46,
			LastDuty:       33,
			LastWrittenPwm: 84,
			Registers:      map[string]byte{"0x30": 84, "0x37": 10},
		}},
		Curve:  curve,
		Sensor: &testingutils.MockSensor{ID: "cpu", Label: "CPU", Values: []float64{46.5}, Err: sensorErr},
	})
}

func get(service *echo.Echo, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	service.ServeHTTP(rec, req)
	return rec
}

func TestAlive(t *testing.T) {
	// GIVEN
	service := createService(t, nil)

	// WHEN
	rec := get(service, "/alive")

	// THEN
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGetStatus(t *testing.T) {
	// GIVEN
	service := createService(t, nil)

	// WHEN
	rec := get(service, "/status/")

	// THEN
	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "fan", body["fanId"])
	statistics := body["statistics"].(map[string]interface{})
	assert.Equal(t, "sampling", statistics["state"])
	assert.Equal(t, 2.0, statistics["writes"])
	assert.Equal(t, 5.0, statistics["suppressed"])
	assert.Equal(t, 84.0, statistics["lastWrittenPwm"])
}

func TestGetCurve(t *testing.T) {
	// GIVEN
	service := createService(t, nil)

	// WHEN
	rec := get(service, "/curve/")

	// THEN
	require.Equal(t, http.StatusOK, rec.Code)
	var body CurveResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, []curves.Point{{Temp: 30, Duty: 30}, {Temp: 70, Duty: 59}}, body.Points)
	require.Len(t, body.Samples, 101)
	assert.Equal(t, CurveSample{Temp: 0, Duty: 0, Pwm: 0}, body.Samples[0])
	assert.Equal(t, CurveSample{Temp: 50, Duty: 44.5, Pwm: 113}, body.Samples[50])
	assert.Equal(t, CurveSample{Temp: 100, Duty: 100, Pwm: 255}, body.Samples[100])
}

func TestGetSensor(t *testing.T) {
	// GIVEN
	service := createService(t, nil)

	// WHEN
	rec := get(service, "/sensor/")

	// THEN
	require.Equal(t, http.StatusOK, rec.Code)
	var body SensorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, SensorResponse{Id: "cpu", Label: "CPU", Value: 46.5}, body)
}

func TestGetSensor_Error(t *testing.T) {
	// GIVEN
	service := createService(t, errors.New("gone"))

	// WHEN
	rec := get(service, "/sensor/")

	// THEN
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	var body Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "gone", body.Message)
}

func TestGetFan(t *testing.T) {
	// GIVEN
	service := createService(t, nil)

	// WHEN
	rec := get(service, "/fan/")

	// THEN
	require.Equal(t, http.StatusOK, rec.Code)
	var body FanResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, FanResponse{
		Id:        "fan",
		Pwm:       84,
		Duty:      32.94,
		Registers: map[string]byte{"0x30": 84, "0x37": 10},
	}, body)
}

func TestOnlyReadsAreAllowed(t *testing.T) {
	// GIVEN
	service := createService(t, nil)
	req := httptest.NewRequest(http.MethodPost, "/fan/", nil)
	rec := httptest.NewRecorder()

	// WHEN
	service.ServeHTTP(rec, req)

	// THEN
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
