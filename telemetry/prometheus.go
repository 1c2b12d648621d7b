package telemetry

import (
	"fmt"
	"log"
	"net"
	"net/http"

	"github.com/armon/go-metrics/prometheus"
	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sbool-dev/sbool/config"
	"github.com/sbool-dev/sbool/telemetry/counters"
)

/*
  methods based on Consul telemetry:
    https://github.com/hashicorp/consul/blob/main/lib/telemetry.go#L261
*/

func counterDefinitions(prefix string) []prometheus.CounterDefinition {
	defs := make([]prometheus.CounterDefinition, 0, len(counters.All))
	for _, c := range counters.All {
		name := c.Names
		if prefix != "" {
			name = append([]string{prefix}, c.Names...)
		}
		defs = append(defs, prometheus.CounterDefinition{
			Name:        name,
			ConstLabels: c.ConstLabels,
			Help:        c.Description,
		})
	}
	return defs
}

// prometheusSink creates a sink registered with its own prometheus registry
// and starts serving that registry on /metrics.
func prometheusSink(cfg *config.TelemetryConfig) (*prometheus.PrometheusSink, *http.Server, error) {
	registry := prom.NewRegistry()

	sink, err := prometheus.NewPrometheusSinkFrom(prometheus.PrometheusOpts{
		Expiration:         cfg.PrometheusRetentionTime,
		Registerer:         registry,
		CounterDefinitions: counterDefinitions(cfg.MetricsPrefix),
	})
	if err != nil {
		return nil, nil, err
	}

	server, err := runPrometheusMetricServer(registry, cfg.PrometheusPort)
	if err != nil {
		return nil, nil, err
	}

	return sink, server, nil
}

func runPrometheusMetricServer(gatherer prom.Gatherer, prometheusPort int) (*http.Server, error) {
	handlerOptions := promhttp.HandlerOpts{
		ErrorHandling: promhttp.ContinueOnError,
	}

	l, err := net.Listen("tcp", fmt.Sprintf(":%d", prometheusPort))
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(gatherer, handlerOptions))
	server := &http.Server{Handler: mux}

	go func() {
		log.Println("[INFO] (prometheus) running prom server")
		if err := server.Serve(l); err != nil && err != http.ErrServerClosed {
			log.Printf("[ERR] (prometheus) error thrown by the metric server: %v", err)
		}
	}()

	return server, nil
}
