package canvas

import (
	"sync"

	"go.uber.org/zap"

	"flowcanvas-backend/domain/core/aggregates"
	"flowcanvas-backend/domain/core/entities"
	"flowcanvas-backend/domain/core/valueobjects"
	"flowcanvas-backend/domain/events"
	"flowcanvas-backend/domain/services"
	"flowcanvas-backend/pkg/errors"
	"flowcanvas-backend/pkg/observability"
)

// Payload is the node and edge data type served over the API
type Payload = map[string]any

// Service owns a shared canvas and serializes all access to it. REST
// handlers and websocket sessions both go through the service, so the
// single-writer requirement of the controller holds across transports.
type Service struct {
	mu         sync.Mutex
	controller *CanvasController[Payload, Payload]
	metrics    *observability.Metrics
	logger     *zap.Logger
}

// ServiceOptions configures the initial canvas state
type ServiceOptions struct {
	CanvasSize valueobjects.Dimensions
	Config     aggregates.CanvasConfig
	MinZoom    float64
	MaxZoom    float64
}

// NewService creates a service with an empty canvas
func NewService(opts ServiceOptions, metrics *observability.Metrics, logger *zap.Logger) *Service {
	graph := aggregates.NewGraph[Payload, Payload]()
	graph.Config = opts.Config
	if opts.MinZoom > 0 {
		graph.Viewport.MinZoom = opts.MinZoom
	}
	if opts.MaxZoom > 0 {
		graph.Viewport.MaxZoom = opts.MaxZoom
	}

	s := &Service{
		metrics: metrics,
		logger:  logger,
	}

	// The service is the owner of the node storage: it applies drag
	// candidates, creates gesture edges and performs deletions itself.
	// Callbacks fire inside controller methods, with the service lock held.
	callbacks := Callbacks{
		OnNodeMove: func(nodeID string, position valueobjects.Position) {
			graph.MoveNode(nodeID, position)
		},
		OnEdgeCreate: func(source, target string) {
			graph.AddEdge(entities.AutoEdge[Payload](source, target))
			metrics.EdgesCreated.Inc()
		},
		OnDelete: func(nodeID string) {
			graph.RemoveNode(nodeID)
			metrics.NodesDeleted.Inc()
		},
		OnViewportChange: func(translation valueobjects.Position) {
			graph.Viewport.Transform.X = translation.X
			graph.Viewport.Transform.Y = translation.Y
		},
	}
	s.controller = NewCanvasController(graph, opts.CanvasSize, callbacks, logger)
	return s
}

// Subscribe registers a listener for domain events. Listeners run inside the
// service lock and must not call back into the service.
func (s *Service) Subscribe(listener events.Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.controller.Subscribe(listener)
}

// Frame returns the current render snapshot
func (s *Service) Frame(minimapSize valueobjects.Dimensions) Frame {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.controller.Frame(minimapSize)
}

// AddNode inserts a node. An empty ID gets a generated one.
func (s *Service) AddNode(id string, nodeType entities.NodeType, position valueobjects.Position, data Payload) *entities.Node[Payload] {
	s.mu.Lock()
	defer s.mu.Unlock()

	var node *entities.Node[Payload]
	if id == "" {
		node = entities.AutoNode[Payload](nodeType, position)
	} else {
		node = entities.NewNode[Payload](id, nodeType, position)
	}
	node.WithData(data)

	s.controller.Graph().AddNode(node)
	s.logger.Info("node added", zap.String("node_id", node.ID), zap.String("type", string(nodeType)))
	return node
}

// DeleteNode removes a node and its connected edges
func (s *Service) DeleteNode(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	g := s.controller.Graph()
	if g.Node(id) == nil {
		return errors.NewNotFoundf("node %s not found", id)
	}
	g.RemoveNode(id)
	s.metrics.NodesDeleted.Inc()
	s.logger.Info("node deleted", zap.String("node_id", id))
	return nil
}

// MoveNode updates a node position directly, outside any gesture
func (s *Service) MoveNode(id string, position valueobjects.Position) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.controller.Graph().MoveNode(id, position) {
		return errors.NewNotFoundf("node %s not found", id)
	}
	return nil
}

// CreateEdge connects two existing nodes. An empty ID gets a generated one.
func (s *Service) CreateEdge(id, source, target string) (*entities.Edge[Payload], error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g := s.controller.Graph()
	if source == target {
		return nil, errors.NewValidation("edge cannot connect a node to itself")
	}
	if g.Node(source) == nil {
		return nil, errors.NewNotFoundf("source node %s not found", source)
	}
	if g.Node(target) == nil {
		return nil, errors.NewNotFoundf("target node %s not found", target)
	}

	var edge *entities.Edge[Payload]
	if id == "" {
		edge = entities.AutoEdge[Payload](source, target)
	} else {
		edge = entities.NewEdge[Payload](id, source, target)
	}
	g.AddEdge(edge)
	s.metrics.EdgesCreated.Inc()
	s.logger.Info("edge created",
		zap.String("edge_id", edge.ID),
		zap.String("source", source),
		zap.String("target", target),
	)
	return edge, nil
}

// DeleteEdge removes an edge
func (s *Service) DeleteEdge(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	g := s.controller.Graph()
	if g.Edge(id) == nil {
		return errors.NewNotFoundf("edge %s not found", id)
	}
	g.RemoveEdge(id)
	return nil
}

// ApplyLayout runs the hierarchical layout over the whole canvas
func (s *Service) ApplyLayout(cfg services.LayoutConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()
	services.ApplyLayout(s.controller.Graph(), cfg)
	s.logger.Info("layout applied", zap.String("direction", string(cfg.Direction)))
}

// FitView adjusts the viewport so every node is visible
func (s *Service) FitView(padding float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.controller.Graph().FitView(padding, s.controller.CanvasSize())
}

// Resize updates the canvas size
func (s *Service) Resize(size valueobjects.Dimensions) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.controller.Resize(size)
}

// PointerDown forwards a pointer press to the controller
func (s *Service) PointerDown(target HitTarget, ev PointerEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.metrics.GesturesStarted.WithLabelValues(string(target.Kind)).Inc()
	s.controller.PointerDown(target, ev)
}

// PointerMove forwards a pointer move to the controller
func (s *Service) PointerMove(ev PointerEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.controller.PointerMove(ev)
}

// PointerUp forwards a pointer release
func (s *Service) PointerUp(target HitTarget, ev PointerEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kind, completed := s.controller.PointerUp(target, ev)
	if kind == "" {
		return
	}
	outcome := "aborted"
	if completed {
		outcome = "completed"
	}
	s.metrics.GesturesCompleted.WithLabelValues(kind, outcome).Inc()
}

// PointerLeave aborts active gestures
func (s *Service) PointerLeave() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if kind := s.controller.PointerLeave(); kind != "" {
		s.metrics.GesturesCompleted.WithLabelValues(kind, "aborted").Inc()
	}
}

// Wheel forwards a wheel event
func (s *Service) Wheel(ev WheelEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.metrics.ZoomOperations.Inc()
	s.controller.Wheel(ev)
}

// KeyDown forwards a key press
func (s *Service) KeyDown(ev KeyEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.controller.KeyDown(ev)
}

// MinimapPointer forwards a minimap press
func (s *Service) MinimapPointer(p valueobjects.Position, minimapSize valueobjects.Dimensions) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.controller.MinimapPointer(p, minimapSize)
}
