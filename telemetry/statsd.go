package telemetry

import (
	"github.com/armon/go-metrics"

	"github.com/sbool-dev/sbool/config"
)

func statsdSink(cfg *config.TelemetryConfig, hostname string) (metrics.MetricSink, error) {
	addr := cfg.StatsdAddr
	if addr == "" {
		return nil, nil
	}
	return metrics.NewStatsdSink(addr)
}
