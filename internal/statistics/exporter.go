package statistics

import (
	"github.com/markusressel/emcfan/internal/ui"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	namespace = "emcfan"
)

func Register(collector prometheus.Collector) {
	if err := prometheus.Register(collector); err != nil {
		ui.Warning("Unable to register statistics collector: %v", err)
	}
}
