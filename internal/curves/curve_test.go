package curves

import (
	"math"
	"testing"

	"github.com/markusressel/emcfan/internal/configuration"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createCurve(t *testing.T, points ...configuration.CurvePointConfig) *LinearSpeedCurve {
	t.Helper()
	curve, err := NewSpeedCurve(points)
	require.NoError(t, err)
	return curve
}

func createDefaultCurve(t *testing.T) *LinearSpeedCurve {
	return createCurve(t,
		configuration.CurvePointConfig{Temp: 30, Duty: 30},
		configuration.CurvePointConfig{Temp: 45, Duty: 32},
		configuration.CurvePointConfig{Temp: 47, Duty: 34},
		configuration.CurvePointConfig{Temp: 53, Duty: 55},
		configuration.CurvePointConfig{Temp: 55, Duty: 57},
		configuration.CurvePointConfig{Temp: 70, Duty: 59},
	)
}

func TestNewSpeedCurveTooFewPoints(t *testing.T) {
	// WHEN
	_, err := NewSpeedCurve(configuration.CurveConfig{{Temp: 30, Duty: 30}})

	// THEN
	assert.EqualError(t, err, "curve needs at least 2 points, got 1")
}

func TestNewSpeedCurveUnsorted(t *testing.T) {
	// WHEN
	_, err := NewSpeedCurve(configuration.CurveConfig{
		{Temp: 50, Duty: 30},
		{Temp: 40, Duty: 30},
	})

	// THEN
	assert.Error(t, err)
}

func TestBelowFirstPointIsOff(t *testing.T) {
	// GIVEN
	curve := createCurve(t,
		configuration.CurvePointConfig{Temp: 30, Duty: 30},
		configuration.CurvePointConfig{Temp: 70, Duty: 59},
	)

	// WHEN
	result := curve.Interpolate(20)

	// THEN
	assert.Equal(t, 0.0, result)
}

func TestAboveLastPointIsMax(t *testing.T) {
	// GIVEN
	curve := createCurve(t,
		configuration.CurvePointConfig{Temp: 30, Duty: 30},
		configuration.CurvePointConfig{Temp: 70, Duty: 59},
	)

	// WHEN
	result := curve.Interpolate(80)

	// THEN
	assert.Equal(t, 100.0, result)
}

func TestMidpointOfStraightLine(t *testing.T) {
	// GIVEN
	curve := createCurve(t,
		configuration.CurvePointConfig{Temp: 30, Duty: 30},
		configuration.CurvePointConfig{Temp: 50, Duty: 50},
	)

	// WHEN
	result := curve.Interpolate(40)

	// THEN
	assert.Equal(t, 40.0, result)
}

func TestExactBreakpoints(t *testing.T) {
	// GIVEN
	curve := createDefaultCurve(t)

	for _, point := range curve.GetPoints() {
		// WHEN
		result := curve.Interpolate(point.Temp)

		// THEN
		assert.InDelta(t, point.Duty, result, 1e-9, "temperature %v", point.Temp)
	}
}

func TestOutermostBreakpointsUseTheirDuty(t *testing.T) {
	// GIVEN
	curve := createCurve(t,
		configuration.CurvePointConfig{Temp: 30, Duty: 30},
		configuration.CurvePointConfig{Temp: 70, Duty: 59},
	)

	// THEN
	assert.InDelta(t, 30.0, curve.Interpolate(30), 1e-9)
	assert.InDelta(t, 59.0, curve.Interpolate(70), 1e-9)
}

func TestSegmentLookup(t *testing.T) {
	// GIVEN
	curve := createDefaultCurve(t)

	// THEN
	assert.InDelta(t, 33.0, curve.Interpolate(46), 1e-9)
	assert.InDelta(t, 44.5, curve.Interpolate(50), 1e-9)
	assert.InDelta(t, 58.0, curve.Interpolate(62.5), 1e-9)
	assert.InDelta(t, 31.0, curve.Interpolate(37.5), 1e-9)
}

func TestDescendingDutySegment(t *testing.T) {
	// GIVEN
	curve := createCurve(t,
		configuration.CurvePointConfig{Temp: 20, Duty: 80},
		configuration.CurvePointConfig{Temp: 40, Duty: 40},
	)

	// WHEN
	result := curve.Interpolate(30)

	// THEN
	assert.InDelta(t, 60.0, result, 1e-9)
}

func TestNaNTemperatureDefaultsToMax(t *testing.T) {
	// GIVEN
	curve := createDefaultCurve(t)

	// WHEN
	result := curve.Interpolate(math.NaN())

	// THEN
	assert.Equal(t, 100.0, result)
}

func TestResultIsAlwaysInRange(t *testing.T) {
	// GIVEN
	curve := createDefaultCurve(t)

	for temp := -10.0; temp <= 110; temp += 0.25 {
		// WHEN
		result := curve.Interpolate(temp)

		// THEN
		assert.GreaterOrEqual(t, result, 0.0)
		assert.LessOrEqual(t, result, 100.0)
	}
}

func TestCurrentValue(t *testing.T) {
	// GIVEN
	curve := createDefaultCurve(t)

	// WHEN
	curve.Interpolate(46)

	// THEN
	assert.InDelta(t, 33.0, curve.CurrentValue(), 1e-9)
}

func TestSampleDoesNotChangeCurrentValue(t *testing.T) {
	// GIVEN
	curve := createDefaultCurve(t)
	curve.Interpolate(80)

	// WHEN
	samples := curve.Sample(0, 100, 10)

	// THEN
	assert.Len(t, samples, 11)
	assert.Equal(t, 0.0, samples[20])
	assert.Equal(t, 100.0, samples[80])
	assert.Equal(t, 100.0, curve.CurrentValue())
}

func TestPwmAt(t *testing.T) {
	// GIVEN
	curve := createDefaultCurve(t)

	// THEN
	assert.Equal(t, 84, curve.PwmAt(46))
	assert.Equal(t, 0, curve.PwmAt(10))
	assert.Equal(t, 255, curve.PwmAt(90))
}

func TestGetPointsReturnsCopy(t *testing.T) {
	// GIVEN
	curve := createDefaultCurve(t)

	// WHEN
	points := curve.GetPoints()
	points[0].Duty = 100

	// THEN
	assert.Equal(t, 30.0, curve.GetPoints()[0].Duty)
}
