package statistics

import (
	"github.com/markusressel/emcfan/internal/controller"
	"github.com/markusressel/emcfan/internal/util"
	"github.com/prometheus/client_golang/prometheus"
)

const fanSubsystem = "fan"

// FanCollector exports the register mirror of dry run fans. Values are taken from the
// controller snapshot, so a scrape never transfers anything over the bus.
type FanCollector struct {
	controllers []controller.FanController
	register    *prometheus.Desc
}

func NewFanCollector(controllers []controller.FanController) *FanCollector {
	return &FanCollector{
		controllers: controllers,
		register: prometheus.NewDesc(prometheus.BuildFQName(namespace, fanSubsystem, "register"),
			"Last value transferred to or from a register of the fan controller chip",
			[]string{"id", "register"}, nil,
		),
	}
}

func (collector *FanCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- collector.register
}

// Collect implements required collect function for all prometheus collectors
func (collector *FanCollector) Collect(ch chan<- prometheus.Metric) {
	for _, c := range collector.controllers {
		registers := c.GetStatistics().Registers
		for _, name := range util.SortedKeys(registers) {
			ch <- prometheus.MustNewConstMetric(collector.register, prometheus.GaugeValue, float64(registers[name]), c.GetFanId(), name)
		}
	}
}
