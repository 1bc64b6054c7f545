package aggregates

import (
	"flowcanvas-backend/domain/core/entities"
	"flowcanvas-backend/domain/core/valueobjects"
)

// CanvasConfig holds canvas-level display and interaction settings
type CanvasConfig struct {
	ShowGrid    bool    `json:"showGrid"`
	GridSize    float64 `json:"gridSize"`
	SnapToGrid  bool    `json:"snapToGrid"`
	ShowMinimap bool    `json:"showMinimap"`
}

// DefaultCanvasConfig returns the default canvas settings
func DefaultCanvasConfig() CanvasConfig {
	return CanvasConfig{
		ShowGrid:    true,
		GridSize:    20,
		SnapToGrid:  false,
		ShowMinimap: false,
	}
}

// Graph is the aggregate root for the canvas: the single source of truth for
// nodes, edges, viewport and configuration. All mutation goes through it; node
// and edge iteration preserves insertion order, which keyboard navigation
// relies on for deterministic tie-breaks.
type Graph[N, E any] struct {
	nodes     map[string]*entities.Node[N]
	nodeOrder []string
	edges     map[string]*entities.Edge[E]
	edgeOrder []string

	Viewport *Viewport
	Config   CanvasConfig

	selectedNodes []string
	selectedEdges []string
}

// NewGraph creates an empty graph with a default viewport
func NewGraph[N, E any]() *Graph[N, E] {
	return &Graph[N, E]{
		nodes:    make(map[string]*entities.Node[N]),
		edges:    make(map[string]*entities.Edge[E]),
		Viewport: NewViewport(),
		Config:   DefaultCanvasConfig(),
	}
}

// AddNode inserts a node, replacing any node with the same ID
func (g *Graph[N, E]) AddNode(node *entities.Node[N]) {
	if _, exists := g.nodes[node.ID]; !exists {
		g.nodeOrder = append(g.nodeOrder, node.ID)
	}
	g.nodes[node.ID] = node
}

// RemoveNode removes a node, its connected edges, and any selection entry.
// Idempotent on missing IDs.
func (g *Graph[N, E]) RemoveNode(id string) {
	if _, exists := g.nodes[id]; !exists {
		return
	}

	for _, edgeID := range g.edgeOrder {
		if edge := g.edges[edgeID]; edge != nil && edge.Touches(id) {
			delete(g.edges, edgeID)
		}
	}
	g.edgeOrder = retainOrder(g.edgeOrder, func(edgeID string) bool {
		_, ok := g.edges[edgeID]
		return ok
	})

	g.selectedNodes = retainOrder(g.selectedNodes, func(nodeID string) bool {
		return nodeID != id
	})

	delete(g.nodes, id)
	g.nodeOrder = retainOrder(g.nodeOrder, func(nodeID string) bool {
		return nodeID != id
	})
}

// AddEdge inserts an edge, replacing any edge with the same ID
func (g *Graph[N, E]) AddEdge(edge *entities.Edge[E]) {
	if _, exists := g.edges[edge.ID]; !exists {
		g.edgeOrder = append(g.edgeOrder, edge.ID)
	}
	g.edges[edge.ID] = edge
}

// RemoveEdge removes an edge by ID. Idempotent on missing IDs.
func (g *Graph[N, E]) RemoveEdge(id string) {
	if _, exists := g.edges[id]; !exists {
		return
	}
	delete(g.edges, id)
	g.edgeOrder = retainOrder(g.edgeOrder, func(edgeID string) bool {
		return edgeID != id
	})
	g.selectedEdges = retainOrder(g.selectedEdges, func(edgeID string) bool {
		return edgeID != id
	})
}

// Node returns the node with the given ID, or nil
func (g *Graph[N, E]) Node(id string) *entities.Node[N] {
	return g.nodes[id]
}

// Edge returns the edge with the given ID, or nil
func (g *Graph[N, E]) Edge(id string) *entities.Edge[E] {
	return g.edges[id]
}

// Nodes returns all nodes in insertion order
func (g *Graph[N, E]) Nodes() []*entities.Node[N] {
	out := make([]*entities.Node[N], 0, len(g.nodeOrder))
	for _, id := range g.nodeOrder {
		out = append(out, g.nodes[id])
	}
	return out
}

// Edges returns all edges in insertion order
func (g *Graph[N, E]) Edges() []*entities.Edge[E] {
	out := make([]*entities.Edge[E], 0, len(g.edgeOrder))
	for _, id := range g.edgeOrder {
		out = append(out, g.edges[id])
	}
	return out
}

// NodeCount returns the number of nodes
func (g *Graph[N, E]) NodeCount() int {
	return len(g.nodes)
}

// EdgeCount returns the number of edges
func (g *Graph[N, E]) EdgeCount() int {
	return len(g.edges)
}

// MoveNode updates a node's position. Returns false for unknown IDs.
func (g *Graph[N, E]) MoveNode(id string, position valueobjects.Position) bool {
	node, ok := g.nodes[id]
	if !ok {
		return false
	}
	node.Position = position
	return true
}

// NodeCenter returns the center of the node's box in world space
func (g *Graph[N, E]) NodeCenter(id string) (valueobjects.Position, bool) {
	node, ok := g.nodes[id]
	if !ok {
		return valueobjects.Position{}, false
	}
	return node.Center(), true
}

// Bounds computes the axis-aligned bounding box over all node rectangles,
// or false when the graph is empty
func (g *Graph[N, E]) Bounds() (valueobjects.Rect, bool) {
	if len(g.nodeOrder) == 0 {
		return valueobjects.Rect{}, false
	}

	first := g.nodes[g.nodeOrder[0]].Bounds()
	minX, minY := first.Position.X, first.Position.Y
	maxX := first.Position.X + first.Dimensions.Width
	maxY := first.Position.Y + first.Dimensions.Height

	for _, id := range g.nodeOrder[1:] {
		b := g.nodes[id].Bounds()
		minX = min(minX, b.Position.X)
		minY = min(minY, b.Position.Y)
		maxX = max(maxX, b.Position.X+b.Dimensions.Width)
		maxY = max(maxY, b.Position.Y+b.Dimensions.Height)
	}

	return valueobjects.NewRect(minX, minY, maxX-minX, maxY-minY), true
}

// ConnectedEdges returns every edge touching the given node
func (g *Graph[N, E]) ConnectedEdges(nodeID string) []*entities.Edge[E] {
	var out []*entities.Edge[E]
	for _, id := range g.edgeOrder {
		if edge := g.edges[id]; edge.Touches(nodeID) {
			out = append(out, edge)
		}
	}
	return out
}

// IncomingEdges returns edges whose target is the given node
func (g *Graph[N, E]) IncomingEdges(nodeID string) []*entities.Edge[E] {
	var out []*entities.Edge[E]
	for _, id := range g.edgeOrder {
		if edge := g.edges[id]; edge.Target == nodeID {
			out = append(out, edge)
		}
	}
	return out
}

// OutgoingEdges returns edges whose source is the given node
func (g *Graph[N, E]) OutgoingEdges(nodeID string) []*entities.Edge[E] {
	var out []*entities.Edge[E]
	for _, id := range g.edgeOrder {
		if edge := g.edges[id]; edge.Source == nodeID {
			out = append(out, edge)
		}
	}
	return out
}

// SelectNode marks a node selected. When multi is false the previous
// selection is cleared first.
func (g *Graph[N, E]) SelectNode(id string, multi bool) {
	if !multi {
		g.ClearSelection()
	}
	node, ok := g.nodes[id]
	if !ok {
		return
	}
	node.Selected = true
	for _, sel := range g.selectedNodes {
		if sel == id {
			return
		}
	}
	g.selectedNodes = append(g.selectedNodes, id)
}

// SelectEdge marks an edge selected. When multi is false the previous
// selection is cleared first.
func (g *Graph[N, E]) SelectEdge(id string, multi bool) {
	if !multi {
		g.ClearSelection()
	}
	edge, ok := g.edges[id]
	if !ok {
		return
	}
	edge.Selected = true
	for _, sel := range g.selectedEdges {
		if sel == id {
			return
		}
	}
	g.selectedEdges = append(g.selectedEdges, id)
}

// ClearSelection deselects every node and edge
func (g *Graph[N, E]) ClearSelection() {
	for _, node := range g.nodes {
		node.Selected = false
	}
	for _, edge := range g.edges {
		edge.Selected = false
	}
	g.selectedNodes = nil
	g.selectedEdges = nil
}

// SelectedNodes returns the selected node IDs in selection order
func (g *Graph[N, E]) SelectedNodes() []string {
	return append([]string(nil), g.selectedNodes...)
}

// SelectedNode returns the primary (first) selected node ID
func (g *Graph[N, E]) SelectedNode() (string, bool) {
	if len(g.selectedNodes) == 0 {
		return "", false
	}
	return g.selectedNodes[0], true
}

// FitView adjusts the viewport so all nodes are visible with the given
// padding. No-op on an empty graph.
func (g *Graph[N, E]) FitView(padding float64, canvasSize valueobjects.Dimensions) {
	if bounds, ok := g.Bounds(); ok {
		g.Viewport.FitToBounds(bounds, padding, canvasSize)
	}
}

func retainOrder(ids []string, keep func(string) bool) []string {
	out := ids[:0]
	for _, id := range ids {
		if keep(id) {
			out = append(out, id)
		}
	}
	return out
}
