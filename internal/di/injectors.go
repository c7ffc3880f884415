//go:build wireinject
// +build wireinject

package di

import (
	wire "github.com/google/wire"

	"addrbook/internal"
	"addrbook/internal/controllers"
	"addrbook/internal/persistence"
	"addrbook/internal/providers"
	"addrbook/internal/services"
	"addrbook/internal/structures"
)

func InitApp(cfg *structures.CliFlags) (*internal.App, error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		providers.NewMetricsProvider,
		providers.NewInstrumentedCacheProvider,

		services.NewSystemClock,
		services.NewDirectoryService,
		persistence.NewCompressorProvider,
		persistence.NewFileManager,
		persistence.NewKeeper,
		controllers.NewCommandController,
		internal.NewApp,
	)

	return nil, nil
}
