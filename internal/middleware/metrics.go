package middleware

import "github.com/prometheus/client_golang/prometheus"

const (
	gateAuthenticate         = "authenticate"
	gateRequireAuthenticated = "require_authenticated"
	gateRequireRole          = "require_role"
	gateOwnerOrAdmin         = "owner_or_admin"

	outcomeAnonymous       = "anonymous"
	outcomeAdmitted        = "admitted"
	outcomeInvalidToken    = "invalid_token"
	outcomeRevoked         = "revoked"
	outcomeUnauthenticated = "unauthenticated"
	outcomeDenied          = "denied"
)

// Metrics counts gate decisions. A nil *Metrics records nothing.
type Metrics struct {
	decisions *prometheus.CounterVec
}

// NewMetrics registers the gate counters with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		decisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "dealership",
			Subsystem: "auth",
			Name:      "gate_decisions_total",
			Help:      "Authentication and authorization gate decisions by gate and outcome.",
		}, []string{"gate", "outcome"}),
	}
	reg.MustRegister(m.decisions)
	return m
}

func (m *Metrics) observe(gate, outcome string) {
	if m == nil {
		return
	}
	m.decisions.WithLabelValues(gate, outcome).Inc()
}
