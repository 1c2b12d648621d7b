package telemetry

/*
  methods based on Consul telemetry:
    https://github.com/hashicorp/consul/blob/main/lib/telemetry.go
*/

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/armon/go-metrics"
	"github.com/hashicorp/go-multierror"

	"github.com/sbool-dev/sbool/config"
	"github.com/sbool-dev/sbool/telemetry/counters"
)

// MetricsHandler provides an http.Handler for displaying metrics.
type MetricsHandler interface {
	DisplayMetrics(resp http.ResponseWriter, req *http.Request) (interface{}, error)
	Stream(ctx context.Context, encoder metrics.Encoder)
}

type Telemetry struct {
	Handler  MetricsHandler
	cancelFn context.CancelFunc
	server   *http.Server
}

func (tel *Telemetry) Stop() {
	if tel.cancelFn != nil {
		tel.cancelFn()
	}
	if tel.server != nil {
		if err := tel.server.Close(); err != nil {
			log.Printf("[WARN] (telemetry) error stopping prometheus server: %s", err)
		}
	}
}

func computeMetricsConfig(telemetryConf *config.TelemetryConfig) *metrics.Config {
	metricsConf := metrics.DefaultConfig(telemetryConf.MetricsPrefix)
	metricsConf.EnableHostname = !telemetryConf.DisableHostname
	metricsConf.FilterDefault = telemetryConf.FilterDefault
	metricsConf.AllowedPrefixes = telemetryConf.AllowedPrefixes
	metricsConf.BlockedPrefixes = telemetryConf.BlockedPrefixes
	return metricsConf
}

func setupSinks(telemetryConf *config.TelemetryConfig, hostname string) (metrics.FanoutSink, error) {
	var sinks metrics.FanoutSink
	var errors *multierror.Error
	addSink := func(fn func(*config.TelemetryConfig, string) (metrics.MetricSink, error)) {
		s, err := fn(telemetryConf, hostname)
		if err != nil {
			errors = multierror.Append(errors, err)
			return
		}
		if s != nil {
			sinks = append(sinks, s)
		}
	}

	addSink(statsiteSink)
	addSink(statsdSink)

	return sinks, errors.ErrorOrNil()
}

// Init configures go-metrics from the given finalized telemetry config and
// installs the result as the global metrics instance.
func Init(cfg *config.TelemetryConfig) (*Telemetry, error) {
	if cfg.Disable {
		return &Telemetry{}, nil
	}

	memSink := metrics.NewInmemSink(10*time.Second, time.Minute)
	metrics.DefaultInmemSignal(memSink)

	metricsConf := computeMetricsConfig(cfg)

	sinks, errs := setupSinks(cfg, metricsConf.HostName)
	if errs != nil {
		return nil, errs
	}
	sinks = append(sinks, memSink)

	var server *http.Server
	if cfg.PrometheusPort != 0 {
		sink, srv, err := prometheusSink(cfg)
		if err != nil {
			return nil, err
		}
		sinks = append(sinks, sink)
		server = srv
	}

	metricsServer, err := metrics.NewGlobal(metricsConf, sinks)
	if err != nil {
		if server != nil {
			server.Close()
		}
		return nil, err
	}

	counters.Init()

	telemetry := &Telemetry{
		Handler:  memSink,
		cancelFn: metricsServer.Shutdown,
		server:   server,
	}

	return telemetry, nil
}
