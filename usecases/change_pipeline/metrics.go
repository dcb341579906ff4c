package change_pipeline

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	changesValidatedCounter = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "hub",
		Name:      "changes_validated_total",
		Help:      "Change validation outcomes, by action and result.",
	}, []string{"action", "result"})

	changesAppliedCounter = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "hub",
		Name:      "changes_applied_total",
		Help:      "Change applier outcomes, by action and status.",
	}, []string{"action", "status"})
)
