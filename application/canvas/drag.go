package canvas

import (
	"math"

	"flowcanvas-backend/domain/core/aggregates"
	"flowcanvas-backend/domain/core/valueobjects"
)

// dragSession is the ephemeral state of an active node drag. A nil session
// means the controller is idle, so the illegal "dragging without a node"
// state is unrepresentable.
type dragSession struct {
	nodeID       string
	pointerStart valueobjects.Position // screen space
	nodeStart    valueobjects.Position // world space
}

// DragController is the state machine for node-move gestures. Only one node
// may be dragging at a time; a pointer-down while a drag is active is
// ignored until the drag ends.
//
// The controller never writes node positions itself: every move produces a
// candidate position for the owner of the node storage to apply.
type DragController[N, E any] struct {
	graph   *aggregates.Graph[N, E]
	session *dragSession
}

// NewDragController creates an idle drag controller bound to a graph
func NewDragController[N, E any](graph *aggregates.Graph[N, E]) *DragController[N, E] {
	return &DragController[N, E]{graph: graph}
}

// Dragging reports whether a drag gesture is active
func (d *DragController[N, E]) Dragging() bool {
	return d.session != nil
}

// DraggedNode returns the ID of the node being dragged
func (d *DragController[N, E]) DraggedNode() (string, bool) {
	if d.session == nil {
		return "", false
	}
	return d.session.nodeID, true
}

// PointerDown starts a drag on the given node. Returns false when the
// gesture cannot start: wrong button, unknown or non-draggable node, or
// another drag already active.
func (d *DragController[N, E]) PointerDown(nodeID string, ev PointerEvent) bool {
	if d.session != nil || ev.Button != ButtonPrimary {
		return false
	}

	node := d.graph.Node(nodeID)
	if node == nil || !node.Draggable {
		return false
	}

	d.session = &dragSession{
		nodeID:       nodeID,
		pointerStart: ev.Position,
		nodeStart:    node.Position,
	}
	return true
}

// PointerMove computes the candidate node position for the current pointer
// location. The screen-space delta is divided by the zoom level so drag speed
// matches visual distance at any zoom, then snapped to the grid when enabled.
func (d *DragController[N, E]) PointerMove(ev PointerEvent) (string, valueobjects.Position, bool) {
	if d.session == nil {
		return "", valueobjects.Position{}, false
	}

	zoom := d.graph.Viewport.Transform.Zoom
	dx := (ev.Position.X - d.session.pointerStart.X) / zoom
	dy := (ev.Position.Y - d.session.pointerStart.Y) / zoom

	candidate := d.session.nodeStart.Translate(dx, dy)
	if d.graph.Config.SnapToGrid {
		candidate = snapToGrid(candidate, d.graph.Config.GridSize)
	}

	return d.session.nodeID, candidate, true
}

// PointerUp ends the drag gesture
func (d *DragController[N, E]) PointerUp() {
	d.session = nil
}

// snapToGrid rounds each axis to the nearest multiple of the grid size
func snapToGrid(p valueobjects.Position, gridSize float64) valueobjects.Position {
	if gridSize <= 0 {
		return p
	}
	return valueobjects.Position{
		X: math.Round(p.X/gridSize) * gridSize,
		Y: math.Round(p.Y/gridSize) * gridSize,
	}
}
