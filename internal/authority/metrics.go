package authority

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	reconnects = promauto.NewCounter(prometheus.CounterOpts{
		Name: "authgate_authority_reconnects_total",
		Help: "Connection replacements triggered by transient transport failures",
	})

	cacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "authgate_user_cache_hits_total",
		Help: "User fetches served from the cache without a remote call",
	})

	cacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "authgate_user_cache_misses_total",
		Help: "User fetches that had to go to the authority",
	})
)
