package config

import (
	"fmt"
	"time"
)

const (
	defaultMetricsPrefix = "sbool"
)

// TelemetryConfig holds the configuration variables for go-metrics. Every
// sink is optional; the in-memory sink is always installed.
type TelemetryConfig struct {
	// Disable may be set to true to have telemetry.Init skip initialization.
	//
	// hcl: telemetry { disable = (true|false) }
	Disable bool `json:"disable,omitempty" mapstructure:"disable"`

	// DisableHostname will disable hostname prefixing for all metrics.
	//
	// hcl: telemetry { disable_hostname = (true|false) }
	DisableHostname bool `json:"disable_hostname,omitempty" mapstructure:"disable_hostname"`

	// FilterDefault is the default for whether to allow a metric that's not
	// covered by the filter.
	//
	// hcl: telemetry { filter_default = (true|false) }
	FilterDefault bool `json:"filter_default,omitempty" mapstructure:"filter_default"`

	// AllowedPrefixes is a list of metric prefixes to allow.
	//
	// hcl: telemetry { allowed_prefixes = ["<expr>", "<expr>", ...] }
	AllowedPrefixes []string `json:"allowed_prefixes,omitempty" mapstructure:"allowed_prefixes"`

	// BlockedPrefixes is a list of metric prefixes to block.
	//
	// hcl: telemetry { blocked_prefixes = ["<expr>", "<expr>", ...] }
	BlockedPrefixes []string `json:"blocked_prefixes,omitempty" mapstructure:"blocked_prefixes"`

	// MetricsPrefix is the prefix used to write stats values to.
	// Default: "sbool"
	//
	// hcl: telemetry { metrics_prefix = string }
	MetricsPrefix string `json:"metrics_prefix,omitempty" mapstructure:"metrics_prefix"`

	// StatsdAddr is the address of a statsd instance. If provided,
	// metrics will be sent to that instance.
	//
	// hcl: telemetry { statsd_address = string }
	StatsdAddr string `json:"statsd_address,omitempty" mapstructure:"statsd_address"`

	// StatsiteAddr is the address of a statsite instance. If provided,
	// metrics will be streamed to that instance.
	//
	// hcl: telemetry { statsite_address = string }
	StatsiteAddr string `json:"statsite_address,omitempty" mapstructure:"statsite_address"`

	// PrometheusRetentionTime is the time before a prometheus metric expires.
	//
	// hcl: telemetry { prometheus_retention_time = "duration" }
	PrometheusRetentionTime time.Duration `json:"prometheus_retention_time,omitempty" mapstructure:"prometheus_retention_time"`

	// PrometheusPort is the port under which /metrics is served.
	//
	// hcl: telemetry { prometheus_port = int }
	PrometheusPort int `json:"prometheus_port,omitempty" mapstructure:"prometheus_port"`
}

// DefaultTelemetryConfig returns the default TelemetryConfig.
func DefaultTelemetryConfig() *TelemetryConfig {
	return &TelemetryConfig{}
}

// Copy returns a deep copy of the TelemetryConfig.
func (c *TelemetryConfig) Copy() *TelemetryConfig {
	if c == nil {
		return nil
	}

	return &TelemetryConfig{
		Disable:                 c.Disable,
		DisableHostname:         c.DisableHostname,
		FilterDefault:           c.FilterDefault,
		AllowedPrefixes:         copyStrings(c.AllowedPrefixes),
		BlockedPrefixes:         copyStrings(c.BlockedPrefixes),
		MetricsPrefix:           c.MetricsPrefix,
		StatsdAddr:              c.StatsdAddr,
		StatsiteAddr:            c.StatsiteAddr,
		PrometheusPort:          c.PrometheusPort,
		PrometheusRetentionTime: c.PrometheusRetentionTime,
	}
}

// Merge combines all values in this configuration with the values in the
// other configuration, with values in the other configuration taking
// precedence.
func (c *TelemetryConfig) Merge(o *TelemetryConfig) *TelemetryConfig {
	if c == nil {
		if o == nil {
			return nil
		}
		return o.Copy()
	}
	if o == nil {
		return c.Copy()
	}

	r := c.Copy()

	r.Disable = o.Disable
	r.DisableHostname = o.DisableHostname
	r.FilterDefault = o.FilterDefault
	if len(o.AllowedPrefixes) != 0 {
		r.AllowedPrefixes = copyStrings(o.AllowedPrefixes)
	}
	if len(o.BlockedPrefixes) != 0 {
		r.BlockedPrefixes = copyStrings(o.BlockedPrefixes)
	}
	if o.MetricsPrefix != "" {
		r.MetricsPrefix = o.MetricsPrefix
	}
	if o.StatsdAddr != "" {
		r.StatsdAddr = o.StatsdAddr
	}
	if o.StatsiteAddr != "" {
		r.StatsiteAddr = o.StatsiteAddr
	}
	if o.PrometheusRetentionTime.Nanoseconds() > 0 {
		r.PrometheusRetentionTime = o.PrometheusRetentionTime
	}
	if o.PrometheusPort != 0 {
		r.PrometheusPort = o.PrometheusPort
	}

	return r
}

// GoString defines the printable version of this struct.
func (c *TelemetryConfig) GoString() string {
	if c == nil {
		return "(*TelemetryConfig)(nil)"
	}
	return fmt.Sprintf("&TelemetryConfig{"+
		"Disable:%v, "+
		"DisableHostname:%v, "+
		"FilterDefault:%v, "+
		"AllowedPrefixes:%s, "+
		"BlockedPrefixes:%s, "+
		"MetricsPrefix:%s, "+
		"StatsdAddr:%s, "+
		"StatsiteAddr:%s, "+
		"PrometheusPort:%d, "+
		"PrometheusRetentionTime:%s}",
		c.Disable,
		c.DisableHostname,
		c.FilterDefault,
		c.AllowedPrefixes,
		c.BlockedPrefixes,
		c.MetricsPrefix,
		c.StatsdAddr,
		c.StatsiteAddr,
		c.PrometheusPort,
		c.PrometheusRetentionTime,
	)
}

// Finalize ensures there no nil pointers.
func (c *TelemetryConfig) Finalize() {
	if c == nil {
		return
	}
	if c.MetricsPrefix == "" {
		c.MetricsPrefix = defaultMetricsPrefix
	}

	c.AllowedPrefixes = append(c.AllowedPrefixes, c.MetricsPrefix)

	if c.PrometheusRetentionTime.Nanoseconds() < 1 {
		c.PrometheusRetentionTime = 60 * time.Second
	}
}

func copyStrings(s []string) []string {
	if s == nil {
		return nil
	}
	r := make([]string, len(s))
	copy(r, s)
	return r
}
