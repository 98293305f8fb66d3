package statistics

import (
	"github.com/markusressel/emcfan/internal/curves"
	"github.com/prometheus/client_golang/prometheus"
)

const subsystemCurve = "curve"

type CurveCollector struct {
	// curves maps an id to its curve
	curves map[string]curves.SpeedCurve
	value  *prometheus.Desc
}

func NewCurveCollector(curves map[string]curves.SpeedCurve) *CurveCollector {
	return &CurveCollector{
		curves: curves,
		value: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemCurve, "value"),
			"Last duty cycle in percent returned by the curve",
			[]string{"id"}, nil,
		),
	}
}

func (collector *CurveCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- collector.value
}

// Collect implements required collect function for all prometheus collectors
func (collector *CurveCollector) Collect(ch chan<- prometheus.Metric) {
	for curveId, curve := range collector.curves {
		ch <- prometheus.MustNewConstMetric(collector.value, prometheus.GaugeValue, curve.CurrentValue(), curveId)
	}
}
