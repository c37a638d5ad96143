package repository

import "go.uber.org/fx"

// Module exposes the store-backed repositories via Fx.
var Module = fx.Options(
	fx.Provide(func(s *GormStore) Store { return s }),
	fx.Provide(NewGormStore),
	fx.Provide(NewTracker),
	fx.Provide(func(r *GormAddressRepository) AddressRepository { return r }),
	fx.Provide(NewGormAddressRepository),
	fx.Provide(func(r *GormMerchantRepository) MerchantRepository { return r }),
	fx.Provide(NewGormMerchantRepository),
)
