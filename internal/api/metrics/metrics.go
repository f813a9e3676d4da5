// Package metrics declares the custom Prometheus metrics of the accounts API.
// HTTP request metrics come from the echoprometheus middleware; everything
// here counts account-level outcomes and is registered on the default
// registry through promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "accounts"

// SignInsTotal counts password sign-in attempts.
// Label:
//   - result: "success", "invalid_credentials" or "error"
var SignInsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signins_total",
		Help:      "Total number of password sign-in attempts, by result.",
	},
	[]string{"result"},
)

var SignOutsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signouts_total",
		Help:      "Total number of access tokens revoked through sign-out.",
	},
)

// RegistrationsTotal counts sign-up attempts.
// Label:
//   - result: "created", "rejected" (validation or duplicate email) or "error"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of account registrations, by result.",
	},
	[]string{"result"},
)

var UsersDeletedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_deleted_total",
		Help:      "Total number of user accounts deleted by administrators.",
	},
)
