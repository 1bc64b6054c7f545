//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"

	"flowcanvas-backend/infrastructure/config"
)

// InitializeContainer builds the full dependency graph
func InitializeContainer(cfg *config.Config) (*Container, error) {
	wire.Build(
		ProvideLogger,
		ProvideMetrics,
		ProvideCanvasService,
		ProvideHub,
		ProvideHandler,
		wire.Struct(new(Container), "*"),
	)
	return nil, nil
}
