package config

import (
	"fmt"
	"reflect"
	"testing"
	"time"
)

func TestTelemetryConfig_Copy(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		a    *TelemetryConfig
	}{
		{
			"nil",
			nil,
		},
		{
			"empty",
			&TelemetryConfig{},
		},
		{
			"statsd",
			&TelemetryConfig{
				StatsdAddr:      "statsd.host:8125",
				BlockedPrefixes: []string{"sbool.domain_errors"},
			},
		},
		{
			"prometheus",
			&TelemetryConfig{
				PrometheusPort:          8888,
				PrometheusRetentionTime: 5 * time.Second,
			},
		},
	}

	for i, tc := range cases {
		t.Run(fmt.Sprintf("%d_%s", i, tc.name), func(t *testing.T) {
			r := tc.a.Copy()
			if !reflect.DeepEqual(tc.a, r) {
				t.Errorf("\nexp: %#v\nact: %#v", tc.a, r)
			}
		})
	}
}

func TestTelemetryConfig_Merge(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		a    *TelemetryConfig
		b    *TelemetryConfig
		r    *TelemetryConfig
	}{
		{
			"nil_a",
			nil,
			&TelemetryConfig{},
			&TelemetryConfig{},
		},
		{
			"nil_b",
			&TelemetryConfig{},
			nil,
			&TelemetryConfig{},
		},
		{
			"nil_both",
			nil,
			nil,
			nil,
		},
		{
			"prefix_overrides",
			&TelemetryConfig{MetricsPrefix: "one"},
			&TelemetryConfig{MetricsPrefix: "two"},
			&TelemetryConfig{MetricsPrefix: "two"},
		},
		{
			"prefix_empty_two",
			&TelemetryConfig{MetricsPrefix: "one"},
			&TelemetryConfig{},
			&TelemetryConfig{MetricsPrefix: "one"},
		},
		{
			"port_overrides",
			&TelemetryConfig{PrometheusPort: 1},
			&TelemetryConfig{PrometheusPort: 2},
			&TelemetryConfig{PrometheusPort: 2},
		},
		{
			"prefixes_replace",
			&TelemetryConfig{AllowedPrefixes: []string{"a"}},
			&TelemetryConfig{AllowedPrefixes: []string{"b", "c"}},
			&TelemetryConfig{AllowedPrefixes: []string{"b", "c"}},
		},
	}

	for i, tc := range cases {
		t.Run(fmt.Sprintf("%d_%s", i, tc.name), func(t *testing.T) {
			r := tc.a.Merge(tc.b)
			if !reflect.DeepEqual(tc.r, r) {
				t.Errorf("\nexp: %#v\nact: %#v", tc.r, r)
			}
		})
	}
}

func TestTelemetryConfig_Finalize(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		i    *TelemetryConfig
		r    *TelemetryConfig
	}{
		{
			"empty",
			&TelemetryConfig{},
			&TelemetryConfig{
				MetricsPrefix:           "sbool",
				AllowedPrefixes:         []string{"sbool"},
				PrometheusRetentionTime: 60 * time.Second,
			},
		},
		{
			"custom_prefix",
			&TelemetryConfig{
				MetricsPrefix:           "flags",
				AllowedPrefixes:         []string{"other"},
				PrometheusRetentionTime: time.Second,
			},
			&TelemetryConfig{
				MetricsPrefix:           "flags",
				AllowedPrefixes:         []string{"other", "flags"},
				PrometheusRetentionTime: time.Second,
			},
		},
	}

	for i, tc := range cases {
		t.Run(fmt.Sprintf("%d_%s", i, tc.name), func(t *testing.T) {
			tc.i.Finalize()
			if !reflect.DeepEqual(tc.r, tc.i) {
				t.Errorf("\nexp: %#v\nact: %#v", tc.r, tc.i)
			}
		})
	}
}
