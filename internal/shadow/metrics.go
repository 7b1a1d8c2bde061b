package shadow

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	refreshFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "authgate_shadow_refresh_failures_total",
		Help: "Read-path remote refreshes that fell back to last known state",
	})

	syncCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "authgate_shadow_sync_created_total",
		Help: "Shadow rows created by sync runs",
	})

	syncDeleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "authgate_shadow_sync_deleted_total",
		Help: "Shadow rows deleted by sync runs",
	})
)
