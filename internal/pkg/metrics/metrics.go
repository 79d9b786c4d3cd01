package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "profitpulse"

var (
	DashboardDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "dashboard_duration_seconds",
		Help:      "Time spent building a dashboard response.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"dashboard", "status"})

	RBACOverrideLoadFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rbac_override_load_failures_total",
		Help:      "Override loads that fell back to the default role matrix.",
	})

	CacheRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "facts_cache_requests_total",
		Help:      "Facts cache lookups by result.",
	}, []string{"result"})

	CronJobRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cron_job_runs_total",
		Help:      "Scheduled job runs by job and status.",
	}, []string{"job", "status"})
)

// ObserveDashboard records how long a dashboard took since start.
func ObserveDashboard(dashboard string, start time.Time, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	DashboardDuration.WithLabelValues(dashboard, status).Observe(time.Since(start).Seconds())
}
