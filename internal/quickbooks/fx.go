package quickbooks

import "go.uber.org/fx"

var Module = fx.Module("quickbooks",
	fx.Provide(NewClient),
)
