package telemetry

import (
	"github.com/armon/go-metrics"

	"github.com/sbool-dev/sbool/config"
)

func statsiteSink(cfg *config.TelemetryConfig, hostname string) (metrics.MetricSink, error) {
	addr := cfg.StatsiteAddr
	if addr == "" {
		return nil, nil
	}
	return metrics.NewStatsiteSink(addr)
}
