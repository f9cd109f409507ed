package webhook

import (
	"context"

	"github.com/smallbiznis/booksync/internal/config"
	"github.com/smallbiznis/booksync/internal/observability/metrics"
	"github.com/smallbiznis/booksync/internal/sync"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type dispatcherParams struct {
	fx.In

	Log     *zap.Logger
	Syncer  EntitySyncer
	Metrics *metrics.Metrics `optional:"true"`
}

func newVerifier(cfg config.Config) *Verifier {
	return NewVerifier(cfg.QuickBooks.WebhookToken)
}

func newDispatcher(p dispatcherParams) *Dispatcher {
	return NewDispatcher(p.Log, p.Syncer, p.Metrics)
}

func runDispatcher(lc fx.Lifecycle, d *Dispatcher) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				defer close(done)
				d.Run(ctx)
			}()
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			select {
			case <-done:
				return nil
			case <-stopCtx.Done():
				return stopCtx.Err()
			}
		},
	})
}

var Module = fx.Module("webhook",
	fx.Provide(
		newVerifier,
		newDispatcher,
		func(s *sync.Service) EntitySyncer { return s },
	),
	fx.Invoke(runDispatcher),
)
