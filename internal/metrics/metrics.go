package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ClosuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "inspection_order_closures_total",
		Help: "Total number of inspection orders successfully closed.",
	})

	ClosureRejectionsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "inspection_order_closure_rejections_total",
		Help: "Total number of closure requests rejected by validation.",
	})

	NotifyFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inspection_notify_failures_total",
		Help: "Total number of notification channel failures.",
	},
		[]string{"channel"},
	)

	EmailRetriesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "inspection_email_retries_total",
		Help: "Total number of email delivery retries.",
	})

	FeedEntries = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "inspection_monitoring_feed_entries",
		Help: "Current number of entries in the monitoring feed buffer.",
	})
)
