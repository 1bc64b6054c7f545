// Package canvas wires pointer, wheel and keyboard input to the graph,
// viewport and gesture state machines, and emits the engine's outward
// callbacks. It is the composition root of the canvas engine.
package canvas

import "flowcanvas-backend/domain/core/valueobjects"

// Button is a pointer button index as reported by the host UI runtime
type Button int

const (
	ButtonPrimary   Button = 0
	ButtonAuxiliary Button = 1
	ButtonSecondary Button = 2
)

// PointerEvent carries a pointer interaction in screen coordinates
type PointerEvent struct {
	Button   Button                `json:"button"`
	Position valueobjects.Position `json:"position"`
}

// WheelEvent carries a wheel interaction. Delta is the zoom delta factor,
// positive to zoom in.
type WheelEvent struct {
	Delta    float64               `json:"delta"`
	Position valueobjects.Position `json:"position"`
}

// KeyEvent carries a key press with modifier flags
type KeyEvent struct {
	Key   string `json:"key"`
	Shift bool   `json:"shift"`
}

// HitKind identifies what lies under the pointer. The engine does not
// render, so hit testing against painted shapes is the host's job; the host
// reports the result with each pointer event.
type HitKind string

const (
	HitBackground HitKind = "background"
	HitNode       HitKind = "node"
	HitHandle     HitKind = "handle"
	HitEdge       HitKind = "edge"
)

// HitTarget describes the element under the pointer
type HitTarget struct {
	Kind   HitKind `json:"kind"`
	NodeID string  `json:"nodeId,omitempty"`
	EdgeID string  `json:"edgeId,omitempty"`
	// TopHandle is true when the hit handle is the node's top (input)
	// handle, false for the bottom (output) handle.
	TopHandle bool `json:"topHandle,omitempty"`
}

// Background returns a hit target for empty canvas space
func Background() HitTarget {
	return HitTarget{Kind: HitBackground}
}

// NodeTarget returns a hit target for a node body
func NodeTarget(nodeID string) HitTarget {
	return HitTarget{Kind: HitNode, NodeID: nodeID}
}

// HandleTarget returns a hit target for a node handle
func HandleTarget(nodeID string, top bool) HitTarget {
	return HitTarget{Kind: HitHandle, NodeID: nodeID, TopHandle: top}
}

// EdgeTarget returns a hit target for an edge
func EdgeTarget(edgeID string) HitTarget {
	return HitTarget{Kind: HitEdge, EdgeID: edgeID}
}
