package statistics

import (
	"github.com/markusressel/emcfan/internal/controller"
	"github.com/prometheus/client_golang/prometheus"
)

const controllerSubsystem = "controller"

type ControllerCollector struct {
	controllers []controller.FanController

	iterationCount    *prometheus.Desc
	writeCount        *prometheus.Desc
	suppressedCount   *prometheus.Desc
	sensorErrorCount  *prometheus.Desc
	busErrorCount     *prometheus.Desc
	consecutiveErrors *prometheus.Desc
	state             *prometheus.Desc
	averageTemp       *prometheus.Desc
	duty              *prometheus.Desc
	pwm               *prometheus.Desc
}

func newControllerDesc(name string, help string) *prometheus.Desc {
	return prometheus.NewDesc(prometheus.BuildFQName(namespace, controllerSubsystem, name),
		help,
		[]string{"id"}, nil,
	)
}

func NewControllerCollector(controllers []controller.FanController) *ControllerCollector {
	return &ControllerCollector{
		controllers:       controllers,
		iterationCount:    newControllerDesc("iteration_count", "Number of sampling iterations of this controller"),
		writeCount:        newControllerDesc("write_count", "Number of PWM values written to the fan"),
		suppressedCount:   newControllerDesc("suppressed_count", "Number of PWM changes suppressed because they were smaller than the minimum step"),
		sensorErrorCount:  newControllerDesc("sensor_error_count", "Number of failed temperature readings"),
		busErrorCount:     newControllerDesc("bus_error_count", "Number of failed PWM writes"),
		consecutiveErrors: newControllerDesc("consecutive_errors", "Number of failed iterations in a row"),
		state:             newControllerDesc("state", "State of the controller (0: initializing, 1: sampling, 2: stopped)"),
		averageTemp:       newControllerDesc("average_temperature", "Moving average of the temperature in degrees celsius"),
		duty:              newControllerDesc("duty", "Duty cycle in percent derived from the average temperature"),
		pwm:               newControllerDesc("pwm", "Last PWM value written to the fan"),
	}
}

func (collector *ControllerCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- collector.iterationCount
	ch <- collector.writeCount
	ch <- collector.suppressedCount
	ch <- collector.sensorErrorCount
	ch <- collector.busErrorCount
	ch <- collector.consecutiveErrors
	ch <- collector.state
	ch <- collector.averageTemp
	ch <- collector.duty
	ch <- collector.pwm
}

// Collect implements required collect function for all prometheus collectors
func (collector *ControllerCollector) Collect(ch chan<- prometheus.Metric) {
	for _, contr := range collector.controllers {
		fanId := contr.GetFanId()
		stats := contr.GetStatistics()
		ch <- prometheus.MustNewConstMetric(collector.iterationCount, prometheus.CounterValue, float64(stats.Iterations), fanId)
		ch <- prometheus.MustNewConstMetric(collector.writeCount, prometheus.CounterValue, float64(stats.Writes), fanId)
		ch <- prometheus.MustNewConstMetric(collector.suppressedCount, prometheus.CounterValue, float64(stats.Suppressed), fanId)
		ch <- prometheus.MustNewConstMetric(collector.sensorErrorCount, prometheus.CounterValue, float64(stats.SensorErrors), fanId)
		ch <- prometheus.MustNewConstMetric(collector.busErrorCount, prometheus.CounterValue, float64(stats.BusErrors), fanId)
		ch <- prometheus.MustNewConstMetric(collector.consecutiveErrors, prometheus.GaugeValue, float64(stats.ConsecutiveErrors), fanId)
		ch <- prometheus.MustNewConstMetric(collector.state, prometheus.GaugeValue, float64(stats.State), fanId)
		ch <- prometheus.MustNewConstMetric(collector.averageTemp, prometheus.GaugeValue, stats.LastAverage, fanId)
		ch <- prometheus.MustNewConstMetric(collector.duty, prometheus.GaugeValue, stats.LastDuty, fanId)
		ch <- prometheus.MustNewConstMetric(collector.pwm, prometheus.GaugeValue, float64(stats.LastWrittenPwm), fanId)
	}
}
