// Package di wires the application together.
package di

import (
	"net/http"

	"go.uber.org/zap"

	appcanvas "flowcanvas-backend/application/canvas"
	"flowcanvas-backend/domain/core/aggregates"
	"flowcanvas-backend/domain/core/valueobjects"
	"flowcanvas-backend/infrastructure/config"
	"flowcanvas-backend/interfaces/http/rest"
	"flowcanvas-backend/interfaces/websocket"
	"flowcanvas-backend/pkg/observability"
)

// Container holds all application dependencies
type Container struct {
	Config  *config.Config
	Logger  *zap.Logger
	Metrics *observability.Metrics
	Service *appcanvas.Service
	Hub     *websocket.Hub
	Handler http.Handler
}

// ProvideLogger builds the application logger from the configuration
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	return observability.NewLogger(cfg.Environment, cfg.LogLevel)
}

// ProvideMetrics builds the Prometheus collectors
func ProvideMetrics() *observability.Metrics {
	return observability.NewMetrics()
}

// ProvideCanvasService builds the shared canvas from the configured defaults
func ProvideCanvasService(cfg *config.Config, metrics *observability.Metrics, logger *zap.Logger) *appcanvas.Service {
	return appcanvas.NewService(appcanvas.ServiceOptions{
		CanvasSize: valueobjects.NewDimensions(cfg.Canvas.Width, cfg.Canvas.Height),
		Config: aggregates.CanvasConfig{
			ShowGrid:    cfg.Canvas.ShowGrid,
			GridSize:    cfg.Canvas.GridSize,
			SnapToGrid:  cfg.Canvas.SnapToGrid,
			ShowMinimap: cfg.Canvas.ShowMinimap,
		},
		MinZoom: cfg.Canvas.MinZoom,
		MaxZoom: cfg.Canvas.MaxZoom,
	}, metrics, logger)
}

// ProvideHub builds the websocket hub bound to the shared canvas
func ProvideHub(service *appcanvas.Service, cfg *config.Config, metrics *observability.Metrics, logger *zap.Logger) *websocket.Hub {
	return websocket.NewHub(service, cfg.WebSocket, metrics, logger)
}

// ProvideHandler builds the HTTP handler with all routes mounted
func ProvideHandler(
	service *appcanvas.Service,
	hub *websocket.Hub,
	metrics *observability.Metrics,
	cfg *config.Config,
	logger *zap.Logger,
) http.Handler {
	return rest.NewRouter(service, hub, metrics, cfg, logger).Setup()
}
