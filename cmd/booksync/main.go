package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/booksync/internal/books"
	"github.com/smallbiznis/booksync/internal/config"
	"github.com/smallbiznis/booksync/internal/logger"
	"github.com/smallbiznis/booksync/internal/observability/metrics"
	"github.com/smallbiznis/booksync/internal/quickbooks"
	"github.com/smallbiznis/booksync/internal/quickbooks/oauth"
	"github.com/smallbiznis/booksync/internal/server"
	"github.com/smallbiznis/booksync/internal/settings"
	"github.com/smallbiznis/booksync/internal/sync"
	"github.com/smallbiznis/booksync/internal/webhook"
	"github.com/smallbiznis/booksync/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		// Core infrastructure
		config.Module,
		logger.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		metrics.Module,

		// Functional domains
		books.Module,
		settings.Module,
		quickbooks.Module,
		oauth.Module,
		sync.Module,
		webhook.Module,

		server.Module,
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
