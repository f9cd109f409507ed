// Package sync pulls QuickBooks entities and reconciles them into local
// accounting records: match by external id, fall back to natural key, decide
// create/update/skip, and translate line items into the local ledger shape.
package sync

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/snowflake"
	booksdomain "github.com/smallbiznis/booksync/internal/books/domain"
	"github.com/smallbiznis/booksync/internal/observability/metrics"
	"github.com/smallbiznis/booksync/internal/quickbooks"
	settingsdomain "github.com/smallbiznis/booksync/internal/settings/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// RemoteAPI is the remote query capability the orchestrators fetch through.
type RemoteAPI interface {
	Query(ctx context.Context, creds quickbooks.Credentials, query string) (quickbooks.QueryResponse, error)
}

// Result aggregates one orchestrator run. Per-record failures become skip
// entries; they never abort the batch.
type Result struct {
	Entity  string   `json:"entity"`
	Created int      `json:"created"`
	Updated int      `json:"updated"`
	Skipped []string `json:"skipped,omitempty"`
}

func (r Result) Summary() string {
	return fmt.Sprintf("%s sync completed: %d created, %d updated, %d skipped",
		r.Entity, r.Created, r.Updated, len(r.Skipped))
}

func (r *Result) skip(format string, args ...any) {
	r.Skipped = append(r.Skipped, fmt.Sprintf(format, args...))
}

type Params struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	GenID    *snowflake.Node
	Repo     booksdomain.Repository
	Settings settingsdomain.Service
	API      RemoteAPI
	Metrics  *metrics.Metrics `optional:"true"`
}

type Service struct {
	db       *gorm.DB
	log      *zap.Logger
	genID    *snowflake.Node
	repo     booksdomain.Repository
	settings settingsdomain.Service
	api      RemoteAPI
	metrics  *metrics.Metrics
	now      func() time.Time
}

func New(p Params) *Service {
	return &Service{
		db:       p.DB,
		log:      p.Log.Named("sync"),
		genID:    p.GenID,
		repo:     p.Repo,
		settings: p.Settings,
		api:      p.API,
		metrics:  p.Metrics,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// fetch resolves credentials and runs the query; a configuration or remote
// error here aborts the run for the entity kind.
func (s *Service) fetch(ctx context.Context, query string) (quickbooks.QueryResponse, error) {
	creds, err := s.settings.Credentials(ctx)
	if err != nil {
		return quickbooks.QueryResponse{}, err
	}
	return s.api.Query(ctx, creds, query)
}

// guard runs one record's reconciliation, converting errors and panics into
// skip entries so the rest of the batch proceeds.
func (s *Service) guard(res *Result, qbID string, fn func() error) {
	defer func() {
		if rec := recover(); rec != nil {
			s.log.Error("record sync panic",
				zap.String("entity", res.Entity),
				zap.String("quickbooks_id", qbID),
				zap.Any("panic", rec),
				zap.Stack("stack"),
			)
			res.skip("%s %s skipped due to error: %v", res.Entity, qbID, rec)
		}
	}()
	if err := fn(); err != nil {
		s.log.Warn("record sync failed",
			zap.String("entity", res.Entity),
			zap.String("quickbooks_id", qbID),
			zap.Error(err),
		)
		res.skip("%s %s skipped due to error: %v", res.Entity, qbID, err)
	}
}

func (s *Service) observe(res Result, err error) {
	if s.metrics == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	s.metrics.SyncRuns.WithLabelValues(res.Entity, status).Inc()
	if res.Created > 0 {
		s.metrics.RecordsCreated.WithLabelValues(res.Entity).Add(float64(res.Created))
	}
	if res.Updated > 0 {
		s.metrics.RecordsUpdated.WithLabelValues(res.Entity).Add(float64(res.Updated))
	}
	if len(res.Skipped) > 0 {
		s.metrics.RecordsSkipped.WithLabelValues(res.Entity).Add(float64(len(res.Skipped)))
	}
}
