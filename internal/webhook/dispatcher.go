package webhook

import (
	"context"

	"github.com/smallbiznis/booksync/internal/observability/metrics"
	"github.com/smallbiznis/booksync/internal/sync"
	"go.uber.org/zap"
)

// EntitySyncer is the single-record sync capability the dispatcher drives.
type EntitySyncer interface {
	SyncKindByID(ctx context.Context, kind sync.Kind, qbID string) error
}

// Task is one entity change to replay against the local books.
type Task struct {
	DeliveryID string
	Entity     string
	QBID       string
	Operation  string
}

const defaultQueueSize = 256

// Dispatcher serializes webhook-triggered syncs through one worker so
// concurrent notifications for the same record cannot race each other.
type Dispatcher struct {
	log     *zap.Logger
	syncer  EntitySyncer
	metrics *metrics.Metrics
	tasks   chan Task
}

func NewDispatcher(log *zap.Logger, syncer EntitySyncer, m *metrics.Metrics) *Dispatcher {
	return &Dispatcher{
		log:     log.Named("webhook.dispatcher"),
		syncer:  syncer,
		metrics: m,
		tasks:   make(chan Task, defaultQueueSize),
	}
}

// Enqueue offers a task without blocking the HTTP handler. A full queue
// drops the task; the next full sync will reconcile whatever was missed.
func (d *Dispatcher) Enqueue(task Task) bool {
	select {
	case d.tasks <- task:
		return true
	default:
		d.log.Warn("task queue full, dropping",
			zap.String("delivery_id", task.DeliveryID),
			zap.String("entity", task.Entity),
			zap.String("quickbooks_id", task.QBID),
		)
		if d.metrics != nil {
			d.metrics.WebhookTasksDropped.Inc()
		}
		return false
	}
}

// Run consumes tasks until ctx is canceled.
func (d *Dispatcher) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case task := <-d.tasks:
			d.dispatch(ctx, task)
		}
	}
}

func (d *Dispatcher) dispatch(ctx context.Context, task Task) {
	kind, ok := sync.KindFromName(task.Entity)
	if !ok {
		d.log.Warn("unknown entity in notification",
			zap.String("delivery_id", task.DeliveryID),
			zap.String("entity", task.Entity),
		)
		return
	}

	if err := d.syncer.SyncKindByID(ctx, kind, task.QBID); err != nil {
		d.log.Error("webhook sync failed",
			zap.String("delivery_id", task.DeliveryID),
			zap.String("entity", task.Entity),
			zap.String("quickbooks_id", task.QBID),
			zap.String("operation", task.Operation),
			zap.Error(err),
		)
		return
	}
	d.log.Info("webhook sync done",
		zap.String("delivery_id", task.DeliveryID),
		zap.String("entity", task.Entity),
		zap.String("quickbooks_id", task.QBID),
	)
}
