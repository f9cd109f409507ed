package oauth

import "go.uber.org/fx"

var Module = fx.Module("quickbooks.oauth",
	fx.Provide(New),
)
