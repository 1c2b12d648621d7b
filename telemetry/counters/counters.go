// Package counters declares the counters emitted by the library packages. It
// depends only on go-metrics, so importing it does not pull in the telemetry
// sinks or their configuration.
package counters

import (
	"github.com/armon/go-metrics"
)

// CounterMetric is a go-metrics counter with the metadata needed to register
// it with prometheus.
type CounterMetric struct {
	Names       []string
	Description string
	ConstLabels []metrics.Label
}

func (m *CounterMetric) Add(val float32, labels ...metrics.Label) {
	metrics.IncrCounterWithLabels(m.Names, val, labels)
}

// Counters
var CounterFlavorsCreated = CounterMetric{
	Names:       []string{"flavors_created"},
	ConstLabels: []metrics.Label{},
	Description: "A counter of flavored booleans created with labels " +
		"polarity=(truthy|falsy)",
}
var CounterDomainErrors = CounterMetric{
	Names:       []string{"domain_errors"},
	ConstLabels: []metrics.Label{},
	Description: "A counter of operators rejected for leaving {0,1} with labels " +
		"op=operatorSymbol",
}

var CounterKeyTypeErrors = CounterMetric{
	Names:       []string{"key_type_errors"},
	ConstLabels: []metrics.Label{},
	Description: "The number of flavors rejected for not being comparable",
}
var CounterExpressionsEvaluated = CounterMetric{
	Names:       []string{"expressions_evaluated"},
	ConstLabels: []metrics.Label{},
	Description: "The number of expressions evaluated with labels status=(success|error)",
}

func NewLabel(name string, value string) metrics.Label {
	return metrics.Label{Name: name, Value: value}
}

// All lists every counter, in registration order.
var All = []*CounterMetric{
	&CounterFlavorsCreated,
	&CounterDomainErrors,
	&CounterKeyTypeErrors,
	&CounterExpressionsEvaluated,
}

// Init emits every counter once so it shows up before first use.
func Init() {
	CounterFlavorsCreated.Add(0)
	CounterDomainErrors.Add(0)
	CounterKeyTypeErrors.Add(0)
	CounterExpressionsEvaluated.Add(0)
}
