package canvas

import (
	"flowcanvas-backend/domain/core/aggregates"
	"flowcanvas-backend/domain/core/valueobjects"
)

// ConnectionState is a snapshot of an active connection gesture, exposed so
// the host can render the preview edge and drop-target affordances.
type ConnectionState struct {
	SourceNode string                `json:"sourceNode"`
	FromTop    bool                  `json:"fromTop"`
	Current    valueobjects.Position `json:"current"` // world space
}

// ConnectionController is the state machine for connection-create gestures.
// There is at most one connection gesture per canvas; an aborted gesture
// leaves the graph unchanged.
type ConnectionController[N, E any] struct {
	graph *aggregates.Graph[N, E]
	state *ConnectionState
}

// NewConnectionController creates an idle connection controller
func NewConnectionController[N, E any](graph *aggregates.Graph[N, E]) *ConnectionController[N, E] {
	return &ConnectionController[N, E]{graph: graph}
}

// Connecting reports whether a connection gesture is active
func (c *ConnectionController[N, E]) Connecting() bool {
	return c.state != nil
}

// State returns a copy of the active gesture state for preview rendering
func (c *ConnectionController[N, E]) State() (ConnectionState, bool) {
	if c.state == nil {
		return ConnectionState{}, false
	}
	return *c.state, true
}

// Start begins a connection gesture from the given node's handle. Returns
// false when the node is unknown, not connectable, or a gesture is already
// active.
func (c *ConnectionController[N, E]) Start(nodeID string, fromTop bool) bool {
	if c.state != nil {
		return false
	}

	node := c.graph.Node(nodeID)
	if node == nil || !node.Connectable {
		return false
	}

	handle := node.BottomHandle()
	if fromTop {
		handle = node.TopHandle()
	}

	c.state = &ConnectionState{
		SourceNode: nodeID,
		FromTop:    fromTop,
		Current:    handle,
	}
	return true
}

// Move updates the preview endpoint to track the pointer
func (c *ConnectionController[N, E]) Move(ev PointerEvent) {
	if c.state == nil {
		return
	}
	c.state.Current = c.graph.Viewport.ScreenToWorld(ev.Position)
}

// IsValidTarget reports whether a node is a valid drop target for the active
// gesture: every connectable node except the source itself.
func (c *ConnectionController[N, E]) IsValidTarget(nodeID string) bool {
	if c.state == nil || nodeID == c.state.SourceNode {
		return false
	}
	node := c.graph.Node(nodeID)
	return node != nil && node.Connectable
}

// Complete finishes the gesture on the given target node and returns the
// source/target of the edge to create. A gesture started on the top (input)
// handle connects target -> source: the dragged node receives from the node
// it was dropped on. Self-connections are rejected without an edge.
func (c *ConnectionController[N, E]) Complete(targetID string) (string, string, bool) {
	if c.state == nil {
		return "", "", false
	}
	state := *c.state
	c.state = nil

	if !c.targetAccepts(state, targetID) {
		return "", "", false
	}

	if state.FromTop {
		return targetID, state.SourceNode, true
	}
	return state.SourceNode, targetID, true
}

// Cancel aborts the gesture without creating an edge
func (c *ConnectionController[N, E]) Cancel() {
	c.state = nil
}

func (c *ConnectionController[N, E]) targetAccepts(state ConnectionState, targetID string) bool {
	if targetID == state.SourceNode {
		return false
	}
	node := c.graph.Node(targetID)
	return node != nil && node.Connectable
}
