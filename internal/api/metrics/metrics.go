// Package metrics defines the custom Prometheus metrics of the client portal
// API. Metrics register with the default registry on package init through
// promauto; request metrics come from echoprometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "portal"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// SignupsTotal counts completed registrations.
// Label:
//   - confirmation: "required" when the account still has to confirm its email, otherwise "none"
var SignupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signups_total",
		Help:      "Total number of signups.",
	},
	[]string{"confirmation"},
)

// SessionEventsTotal counts session changes published by the session manager.
// Label:
//   - kind: signed_in, signed_out or profile_updated
var SessionEventsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_events_total",
		Help:      "Total number of session changes, by kind.",
	},
	[]string{"kind"},
)

// ActiveSessions tracks users with a populated session in this process.
var ActiveSessions = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "active_sessions",
		Help:      "Number of users with a cached, authenticated session.",
	},
)

// ── Wallet metrics ────────────────────────────────────────────────────────────

// PurchasesTotal counts plan purchases.
// Labels:
//   - plan: Basic, Standard or Premium
//   - result: "success", "replayed", "insufficient_funds" or "error"
var PurchasesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "purchases_total",
		Help:      "Total number of plan purchases, by plan and result.",
	},
	[]string{"plan", "result"},
)

// WalletCreditsTotal counts wallet top-ups by payment method.
var WalletCreditsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "wallet_credits_total",
		Help:      "Total number of wallet top-ups, by payment method.",
	},
	[]string{"method"},
)

// ── Support and billing metrics ───────────────────────────────────────────────

// TicketMessagesTotal counts ticket messages.
// Label:
//   - author: "client" or "support"
var TicketMessagesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ticket_messages_total",
		Help:      "Total number of ticket messages, by author type.",
	},
	[]string{"author"},
)

var InvoicesCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "invoices_created_total",
		Help:      "Total number of invoices issued.",
	},
)
