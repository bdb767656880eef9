// Package metrics defines and registers all custom Prometheus metrics for the
// Iron Guard inventory API. It is the single source of truth for metric
// names, labels, and help strings.
//
// Metrics are registered with the default Prometheus registry at package
// init through promauto, and are served by the /metrics endpoint.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "ironguard"

// ── Auth metrics ─────────────────────────────────────────────────────────────

// SignInTotal counts sign-in attempts.
// Label:
//   - outcome: "success", "invalid_credentials", "invalid_input" or "error"
var SignInTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sign_in_total",
		Help:      "Total number of sign-in attempts, by outcome.",
	},
	[]string{"outcome"},
)

// TokenRejectionsTotal counts requests turned away by the identity extractor.
// Label:
//   - reason: "missing", "malformed", "signature", "expired", "algorithm", "claims"
var TokenRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_rejections_total",
		Help:      "Total number of requests rejected for a missing or invalid token.",
	},
	[]string{"reason"},
)

// AdminRequiredTotal counts authenticated requests denied for lacking the admin role.
var AdminRequiredTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "admin_required_total",
		Help:      "Total number of requests rejected because the caller is not an admin.",
	},
)

// PasswordVerifyDuration measures a single bcrypt comparison.
var PasswordVerifyDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "password_verify_duration_seconds",
		Help:      "Duration of one password hash comparison.",
		Buckets:   []float64{.01, .025, .05, .1, .25, .5, 1, 2.5},
	},
)

// VerifierQueueDepth tracks comparisons waiting for a verifier worker.
var VerifierQueueDepth = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "verifier_queue_depth",
		Help:      "Current number of password comparisons waiting for a worker.",
	},
)

// ── Inventory metrics ────────────────────────────────────────────────────────

// WritesTotal counts successful inventory mutations.
// Labels:
//   - resource: "user", "category" or "item"
//   - op: "create", "update" or "delete"
var WritesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "writes_total",
		Help:      "Total number of successful writes, by resource and operation.",
	},
	[]string{"resource", "op"},
)

// IdempotentReplaysTotal counts creates answered from a stored idempotency key.
// Label:
//   - resource: "user", "category" or "item"
var IdempotentReplaysTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "idempotent_replays_total",
		Help:      "Total number of create requests replayed from an idempotency key.",
	},
	[]string{"resource"},
)
