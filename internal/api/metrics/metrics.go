// Package metrics defines and registers the custom Prometheus metrics for the
// broker onboarding API. It is the single source of truth for metric names,
// labels, and help strings. Metrics self-register with the default registry
// via promauto; the router exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "onboarding"

// RegistrationsTotal counts successful broker registrations.
var RegistrationsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of broker accounts created.",
	},
)

// LoginAttemptsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of login attempts, labelled by result.",
	},
	[]string{"result"},
)

// CustomersOnboardedTotal counts customers onboarded by brokers.
// Label:
//   - entity_type: "EXPORTER" or "IMPORTER"
var CustomersOnboardedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "customers_onboarded_total",
		Help:      "Total number of customers onboarded, by entity type.",
	},
	[]string{"entity_type"},
)

// AuthThrottledTotal counts auth requests rejected by the rate limiter.
var AuthThrottledTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_throttled_total",
		Help:      "Total number of auth requests rejected with 429.",
	},
)
