package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
)

// Metrics counts sync outcomes and webhook deliveries.
type Metrics struct {
	RecordsCreated *prometheus.CounterVec
	RecordsUpdated *prometheus.CounterVec
	RecordsSkipped *prometheus.CounterVec
	SyncRuns       *prometheus.CounterVec

	WebhookDeliveries   prometheus.Counter
	WebhookRejected     prometheus.Counter
	WebhookTasksDropped prometheus.Counter
}

func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		RecordsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "booksync_records_created_total",
			Help: "Local records created per entity kind.",
		}, []string{"entity"}),
		RecordsUpdated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "booksync_records_updated_total",
			Help: "Local records updated in place per entity kind.",
		}, []string{"entity"}),
		RecordsSkipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "booksync_records_skipped_total",
			Help: "External records skipped per entity kind.",
		}, []string{"entity"}),
		SyncRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "booksync_sync_runs_total",
			Help: "Sync runs per entity kind and status.",
		}, []string{"entity", "status"}),
		WebhookDeliveries: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "booksync_webhook_deliveries_total",
			Help: "Webhook notifications accepted.",
		}),
		WebhookRejected: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "booksync_webhook_rejected_total",
			Help: "Webhook notifications rejected for an invalid signature.",
		}),
		WebhookTasksDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "booksync_webhook_tasks_dropped_total",
			Help: "Webhook sync tasks dropped because the queue was full.",
		}),
	}

	reg.MustRegister(
		m.RecordsCreated,
		m.RecordsUpdated,
		m.RecordsSkipped,
		m.SyncRuns,
		m.WebhookDeliveries,
		m.WebhookRejected,
		m.WebhookTasksDropped,
	)
	return m
}

func provide() *Metrics {
	return New(prometheus.DefaultRegisterer)
}

var Module = fx.Module("observability.metrics",
	fx.Provide(provide),
)
