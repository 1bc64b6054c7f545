package canvas

import (
	"go.uber.org/zap"

	"flowcanvas-backend/domain/core/aggregates"
	"flowcanvas-backend/domain/core/valueobjects"
	"flowcanvas-backend/domain/events"
	"flowcanvas-backend/domain/services"
)

// Callbacks are the typed callbacks the engine emits to the hosting
// application. Unset callbacks are skipped.
type Callbacks struct {
	OnNodeSelect     func(nodeID string)
	OnNodeMove       func(nodeID string, position valueobjects.Position)
	OnEdgeSelect     func(edgeID string)
	OnEdgeCreate     func(sourceID, targetID string)
	OnDelete         func(nodeID string)
	OnEdit           func(nodeID string)
	OnViewportChange func(translation valueobjects.Position)
}

// gesture identifies which pointer gesture currently owns the pointer.
// Exactly one gesture may be active at a time: node-drag, connection-drag or
// panning.
type gesture int

const (
	gestureNone gesture = iota
	gestureDrag
	gestureConnect
	gesturePan
)

func (g gesture) String() string {
	switch g {
	case gestureDrag:
		return "drag"
	case gestureConnect:
		return "connect"
	case gesturePan:
		return "pan"
	default:
		return "none"
	}
}

// CanvasController routes host input events to the viewport, the gesture
// state machines and keyboard navigation, and emits callbacks and domain
// events. All methods are synchronous; the caller must feed events from a
// single goroutine.
type CanvasController[N, E any] struct {
	graph      *aggregates.Graph[N, E]
	drag       *DragController[N, E]
	connection *ConnectionController[N, E]

	canvasSize valueobjects.Dimensions
	callbacks  Callbacks
	listeners  []events.Listener

	active  gesture
	panLast valueobjects.Position

	logger *zap.Logger
}

// NewCanvasController creates a controller bound to a graph
func NewCanvasController[N, E any](
	graph *aggregates.Graph[N, E],
	canvasSize valueobjects.Dimensions,
	callbacks Callbacks,
	logger *zap.Logger,
) *CanvasController[N, E] {
	return &CanvasController[N, E]{
		graph:      graph,
		drag:       NewDragController(graph),
		connection: NewConnectionController(graph),
		canvasSize: canvasSize,
		callbacks:  callbacks,
		logger:     logger,
	}
}

// Graph returns the underlying graph aggregate
func (c *CanvasController[N, E]) Graph() *aggregates.Graph[N, E] {
	return c.graph
}

// CanvasSize returns the current canvas size in screen pixels
func (c *CanvasController[N, E]) CanvasSize() valueobjects.Dimensions {
	return c.canvasSize
}

// Resize updates the canvas size used for centering and minimap math
func (c *CanvasController[N, E]) Resize(size valueobjects.Dimensions) {
	c.canvasSize = size
}

// Subscribe registers a listener for all emitted domain events
func (c *CanvasController[N, E]) Subscribe(listener events.Listener) {
	c.listeners = append(c.listeners, listener)
}

// ConnectionState exposes the active connection gesture for preview
// rendering
func (c *CanvasController[N, E]) ConnectionState() (ConnectionState, bool) {
	return c.connection.State()
}

// IsValidDropTarget reports whether a node can accept the active connection
func (c *CanvasController[N, E]) IsValidDropTarget(nodeID string) bool {
	return c.connection.IsValidTarget(nodeID)
}

// PointerDown dispatches a pointer press on the given hit target. A press
// while another gesture is active is ignored.
func (c *CanvasController[N, E]) PointerDown(target HitTarget, ev PointerEvent) {
	if c.active != gestureNone {
		return
	}

	switch target.Kind {
	case HitHandle:
		if c.connection.Start(target.NodeID, target.TopHandle) {
			c.active = gestureConnect
		}

	case HitNode:
		if ev.Button != ButtonPrimary {
			return
		}
		c.selectNode(target.NodeID)
		if c.drag.PointerDown(target.NodeID, ev) {
			c.active = gestureDrag
		}

	case HitEdge:
		if ev.Button != ButtonPrimary {
			return
		}
		c.graph.SelectEdge(target.EdgeID, false)
		if c.callbacks.OnEdgeSelect != nil {
			c.callbacks.OnEdgeSelect(target.EdgeID)
		}
		c.emit(events.NewEdgeSelected(target.EdgeID))

	case HitBackground:
		if ev.Button != ButtonPrimary {
			return
		}
		c.active = gesturePan
		c.panLast = ev.Position
	}
}

// PointerMove advances the active gesture
func (c *CanvasController[N, E]) PointerMove(ev PointerEvent) {
	switch c.active {
	case gestureDrag:
		nodeID, position, ok := c.drag.PointerMove(ev)
		if !ok {
			return
		}
		if c.callbacks.OnNodeMove != nil {
			c.callbacks.OnNodeMove(nodeID, position)
		}
		c.emit(events.NewNodeMoved(nodeID, position))

	case gestureConnect:
		c.connection.Move(ev)

	case gesturePan:
		c.graph.Viewport.Pan(ev.Position.X-c.panLast.X, ev.Position.Y-c.panLast.Y)
		c.panLast = ev.Position
	}
}

// PointerUp completes the active gesture on the given hit target. It reports
// the gesture that was in flight and whether it completed rather than
// aborted; an idle pointer release reports no gesture.
func (c *CanvasController[N, E]) PointerUp(target HitTarget, ev PointerEvent) (string, bool) {
	kind := c.active
	completed := true

	switch c.active {
	case gestureDrag:
		c.drag.PointerUp()

	case gestureConnect:
		completed = c.finishConnection(target)

	case gesturePan:
		// Nothing to finalize.
	}
	c.active = gestureNone

	if kind == gestureNone {
		return "", false
	}
	return kind.String(), completed
}

// PointerLeave aborts whatever gesture is in flight and reports which one it
// was, or an empty string when the pointer was idle
func (c *CanvasController[N, E]) PointerLeave() string {
	kind := c.active
	c.drag.PointerUp()
	c.connection.Cancel()
	c.active = gestureNone

	if kind == gestureNone {
		return ""
	}
	return kind.String()
}

// Wheel zooms toward the cursor position
func (c *CanvasController[N, E]) Wheel(ev WheelEvent) {
	c.graph.Viewport.ZoomToward(ev.Position, ev.Delta)
}

// ContextMenu suppresses the host context menu over the canvas
func (c *CanvasController[N, E]) ContextMenu() bool {
	return false
}

// KeyDown handles keyboard navigation and the edit/delete/deselect keys
func (c *CanvasController[N, E]) KeyDown(ev KeyEvent) {
	current, _ := c.graph.SelectedNode()

	switch ev.Key {
	case services.KeyEscape:
		if c.connection.Connecting() {
			c.connection.Cancel()
			c.active = gestureNone
			return
		}
		c.graph.ClearSelection()
		c.emit(events.NewSelectionCleared())

	case services.KeyEnter:
		if current == "" {
			return
		}
		if c.callbacks.OnEdit != nil {
			c.callbacks.OnEdit(current)
		}
		c.emit(events.NewEditRequested(current))

	case services.KeyDelete, services.KeyBackspace:
		if current == "" {
			return
		}
		if c.callbacks.OnDelete != nil {
			c.callbacks.OnDelete(current)
		}
		c.emit(events.NewDeleteRequested(current))

	default:
		next, ok := services.NextSelection(c.graph, current, ev.Key, ev.Shift)
		if !ok {
			return
		}
		c.selectNode(next)
		if node := c.graph.Node(next); node != nil {
			c.graph.Viewport.CenterOn(node.Position, c.canvasSize)
		}
	}
}

// MinimapPointer handles a pointer press or move on the minimap, emitting
// the viewport translation that recenters the main canvas
func (c *CanvasController[N, E]) MinimapPointer(p valueobjects.Position, minimapSize valueobjects.Dimensions) {
	model := services.ProjectMinimap(c.graph, minimapSize, c.canvasSize)
	translation := model.ViewportTarget(p)

	if c.callbacks.OnViewportChange != nil {
		c.callbacks.OnViewportChange(translation)
	}
	c.emit(events.NewViewportChanged(translation))
}

func (c *CanvasController[N, E]) selectNode(nodeID string) {
	c.graph.SelectNode(nodeID, false)
	if c.callbacks.OnNodeSelect != nil {
		c.callbacks.OnNodeSelect(nodeID)
	}
	c.emit(events.NewNodeSelected(nodeID))
}

// finishConnection completes the gesture when dropped on the opposite-kind
// handle of another node and aborts otherwise. Returns whether an edge was
// created.
func (c *CanvasController[N, E]) finishConnection(target HitTarget) bool {
	state, ok := c.connection.State()
	if !ok {
		return false
	}

	if target.Kind != HitHandle || target.TopHandle == state.FromTop {
		c.connection.Cancel()
		return false
	}

	sourceID, targetID, ok := c.connection.Complete(target.NodeID)
	if !ok {
		return false
	}

	if c.logger != nil {
		c.logger.Debug("connection gesture completed",
			zap.String("source", sourceID),
			zap.String("target", targetID),
		)
	}
	if c.callbacks.OnEdgeCreate != nil {
		c.callbacks.OnEdgeCreate(sourceID, targetID)
	}
	c.emit(events.NewEdgeCreated(sourceID, targetID))
	return true
}

func (c *CanvasController[N, E]) emit(event events.DomainEvent) {
	for _, listener := range c.listeners {
		listener(event)
	}
}
