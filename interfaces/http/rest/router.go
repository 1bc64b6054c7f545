// Package rest wires the HTTP surface of the canvas engine.
package rest

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	appcanvas "flowcanvas-backend/application/canvas"
	"flowcanvas-backend/infrastructure/config"
	"flowcanvas-backend/interfaces/http/rest/handlers"
	"flowcanvas-backend/interfaces/http/rest/middleware"
	"flowcanvas-backend/pkg/observability"
)

// Router creates and configures the HTTP router
type Router struct {
	service   *appcanvas.Service
	wsHandler http.Handler
	metrics   *observability.Metrics
	cfg       *config.Config
	logger    *zap.Logger
}

// NewRouter creates a new router instance. wsHandler serves the websocket
// upgrade endpoint; pass nil to disable it.
func NewRouter(
	service *appcanvas.Service,
	wsHandler http.Handler,
	metrics *observability.Metrics,
	cfg *config.Config,
	logger *zap.Logger,
) *Router {
	return &Router{
		service:   service,
		wsHandler: wsHandler,
		metrics:   metrics,
		cfg:       cfg,
		logger:    logger,
	}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()

	// Global middleware
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.Logger(rt.logger))

	if rt.cfg.EnableCORS {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"http://localhost:3000", "http://localhost:5173"},
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
			ExposedHeaders:   []string{"X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	// Health checks
	router.Get("/health", rt.healthCheck)
	router.Get("/ready", rt.readinessCheck)

	if rt.cfg.EnableMetrics {
		router.Handle("/metrics", rt.metrics.Handler())
	}

	if rt.wsHandler != nil {
		router.Handle("/ws", rt.wsHandler)
	}

	// API v1 routes
	router.Route("/api/v1", func(r chi.Router) {
		canvasHandler := handlers.NewCanvasHandler(rt.service, rt.logger)
		r.Route("/canvas", func(r chi.Router) {
			r.Get("/", canvasHandler.GetFrame)
			r.Post("/layout", canvasHandler.ApplyLayout)
			r.Post("/fit", canvasHandler.FitView)

			r.Route("/nodes", func(r chi.Router) {
				r.Post("/", canvasHandler.CreateNode)
				r.Delete("/{nodeID}", canvasHandler.DeleteNode)
				r.Put("/{nodeID}/position", canvasHandler.MoveNode)
			})

			r.Route("/edges", func(r chi.Router) {
				r.Post("/", canvasHandler.CreateEdge)
				r.Delete("/{edgeID}", canvasHandler.DeleteEdge)
			})
		})

		designerHandler := handlers.NewDesignerHandler(rt.logger)
		r.Route("/designer", func(r chi.Router) {
			r.Post("/workflows", designerHandler.LoadWorkflows)
			r.Get("/graph", designerHandler.GetGraph)
			r.Get("/entities/{nodeID}", designerHandler.GetEntity)
			r.Post("/layout", designerHandler.ApplyLayout)
		})
	})

	return router
}

func (rt *Router) healthCheck(w http.ResponseWriter, r *http.Request) {
	writeStatus(w, "healthy")
}

func (rt *Router) readinessCheck(w http.ResponseWriter, r *http.Request) {
	writeStatus(w, "ready")
}

func writeStatus(w http.ResponseWriter, status string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": status})
}
