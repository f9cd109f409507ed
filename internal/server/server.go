// Package server exposes the HTTP surface: the QuickBooks webhook receiver,
// manual sync triggers, the OAuth connect flow, and operational endpoints.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/smallbiznis/booksync/internal/config"
	"github.com/smallbiznis/booksync/internal/observability/metrics"
	"github.com/smallbiznis/booksync/internal/quickbooks"
	"github.com/smallbiznis/booksync/internal/quickbooks/oauth"
	settingsdomain "github.com/smallbiznis/booksync/internal/settings/domain"
	"github.com/smallbiznis/booksync/internal/sync"
	"github.com/smallbiznis/booksync/internal/webhook"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(log *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestLogger(log.Named("http")))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(log *zap.Logger) *gin.Engine {
	return NewEngine(log)
}

func requestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("took", time.Since(start)),
		)
	}
}

func run(lc fx.Lifecycle, r *gin.Engine, cfg config.Config) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine      *gin.Engine
	cfg         config.Config
	log         *zap.Logger
	verifier    *webhook.Verifier
	dispatcher  *webhook.Dispatcher
	syncSvc     *sync.Service
	oauthSvc    oauth.Service
	settingsSvc settingsdomain.Service
	qb          *quickbooks.Client
	metrics     *metrics.Metrics
}

type ServerParams struct {
	fx.In

	Gin         *gin.Engine
	Cfg         config.Config
	Log         *zap.Logger
	Verifier    *webhook.Verifier
	Dispatcher  *webhook.Dispatcher
	SyncSvc     *sync.Service
	OAuthSvc    oauth.Service
	SettingsSvc settingsdomain.Service
	QB          *quickbooks.Client
	Metrics     *metrics.Metrics `optional:"true"`
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:      p.Gin,
		cfg:         p.Cfg,
		log:         p.Log.Named("server"),
		verifier:    p.Verifier,
		dispatcher:  p.Dispatcher,
		syncSvc:     p.SyncSvc,
		oauthSvc:    p.OAuthSvc,
		settingsSvc: p.SettingsSvc,
		qb:          p.QB,
		metrics:     p.Metrics,
	}

	svc.registerWebhookRoutes()
	svc.registerAPIRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerWebhookRoutes() {
	s.engine.POST("/webhooks/quickbooks", s.HandleQuickBooksWebhook)
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api/v1")

	api.POST("/sync", s.SyncAll)
	api.POST("/sync/:entity", s.SyncEntity)

	qb := api.Group("/quickbooks")
	{
		qb.GET("/connect", s.Connect)
		qb.GET("/callback", s.Callback)
		qb.GET("/company", s.Company)
	}
}
