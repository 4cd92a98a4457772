// Package metrics defines the custom Prometheus metrics of the laserworks
// API. HTTP request metrics come from echoprometheus; these cover the
// domain.
//
// All metrics register with the default registry on package init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "laserworks"

// ── Auth ──────────────────────────────────────────────────────────────────────

// AuthDenialsTotal counts requests rejected by the authorization gate.
// Label:
//   - policy: "logged_in", "admin_only" or "owner_or_admin"
var AuthDenialsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_denials_total",
		Help:      "Total number of requests denied by an authorization policy.",
	},
	[]string{"policy"},
)

// TokensIssuedTotal counts identity tokens handed out.
// Label:
//   - reason: "login" or "register"
var TokensIssuedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tokens_issued_total",
		Help:      "Total number of identity tokens issued.",
	},
	[]string{"reason"},
)

// ── Orders ────────────────────────────────────────────────────────────────────

// OrdersTotal counts order lifecycle transitions.
// Label:
//   - action: "created", "completed", "repriced" or "deleted"
var OrdersTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orders_total",
		Help:      "Total number of order transitions, by action.",
	},
	[]string{"action"},
)

// ── Mail ──────────────────────────────────────────────────────────────────────

// EmailsTotal counts delivery attempts.
// Label:
//   - result: "sent", "failed" or "dropped" (queue full)
var EmailsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "emails_total",
		Help:      "Total number of email delivery attempts, by result.",
	},
	[]string{"result"},
)

// MailQueueDepth tracks pending mail per dispatcher worker.
var MailQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "mail_queue_depth",
		Help:      "Current number of emails pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// MailDeliveryDuration measures a single provider call.
var MailDeliveryDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "mail_delivery_duration_seconds",
		Help:      "Duration of a single email delivery call.",
		Buckets:   prometheus.DefBuckets,
	},
)
