package payments

import "go.uber.org/fx"

// Module exposes the payment pipeline via Fx.
var Module = fx.Options(
	fx.Provide(NewCore),
)
