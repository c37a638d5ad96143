package connector

import "go.uber.org/fx"

// Module wires the registry with every built-in connector.
var Module = fx.Options(
	fx.Provide(func() *Registry {
		return NewRegistry(Dummy{})
	}),
)
