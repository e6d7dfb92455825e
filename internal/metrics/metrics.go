// Package metrics exposes Prometheus instrumentation for the stores.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Outcomes recorded on store operations.
const (
	OutcomeOK       = "ok"
	OutcomeNoop     = "noop"
	OutcomeError    = "error"
	OutcomeRejected = "rejected"
)

// Recorder receives store instrumentation events.
type Recorder interface {
	// Operation counts one store operation.
	Operation(store, operation, outcome string)
	// LedgerSize reports the number of expenses in the active ledger.
	LedgerSize(n int)
}

// Nop discards everything.
var Nop Recorder = nop{}

type nop struct{}

func (nop) Operation(string, string, string) {}
func (nop) LedgerSize(int)                   {}

// Prometheus implements Recorder with Prometheus collectors.
type Prometheus struct {
	operations *prometheus.CounterVec
	ledgerSize prometheus.Gauge
}

// NewPrometheus creates the collectors and registers them with reg.
func NewPrometheus(reg prometheus.Registerer) (*Prometheus, error) {
	p := &Prometheus{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pocketledger",
			Name:      "store_operations_total",
			Help:      "Store operations by store, operation and outcome.",
		}, []string{"store", "operation", "outcome"}),
		ledgerSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "pocketledger",
			Name:      "ledger_expenses",
			Help:      "Number of expenses in the active ledger.",
		}),
	}

	for _, c := range []prometheus.Collector{p.operations, p.ledgerSize} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return p, nil
}

func (p *Prometheus) Operation(store, operation, outcome string) {
	p.operations.WithLabelValues(store, operation, outcome).Inc()
}

func (p *Prometheus) LedgerSize(n int) {
	p.ledgerSize.Set(float64(n))
}
