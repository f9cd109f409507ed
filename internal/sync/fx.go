package sync

import (
	"github.com/smallbiznis/booksync/internal/quickbooks"
	"go.uber.org/fx"
)

var Module = fx.Module("sync",
	fx.Provide(
		New,
		func(c *quickbooks.Client) RemoteAPI { return c },
	),
)
