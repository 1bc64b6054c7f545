package aggregates

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flowcanvas-backend/domain/core/entities"
	"flowcanvas-backend/domain/core/valueobjects"
)

type testGraph = Graph[struct{}, struct{}]

func newTestGraph() *testGraph {
	return NewGraph[struct{}, struct{}]()
}

func addNode(g *testGraph, id string, x, y float64) {
	g.AddNode(entities.NewNode[struct{}](id, entities.NodeTypeDefault, valueobjects.NewPosition(x, y)))
}

func TestGraphAddRemove(t *testing.T) {
	g := newTestGraph()

	addNode(g, "1", 0, 0)
	addNode(g, "2", 100, 100)
	g.AddEdge(entities.NewEdge[struct{}]("e1", "1", "2"))

	assert.Equal(t, 2, g.NodeCount())
	assert.Equal(t, 1, g.EdgeCount())
	assert.Len(t, g.ConnectedEdges("1"), 1)

	// Removing a node cascades its connected edges
	g.RemoveNode("1")
	assert.Equal(t, 1, g.NodeCount())
	assert.Equal(t, 0, g.EdgeCount())

	// Removal is idempotent
	g.RemoveNode("1")
	g.RemoveEdge("e1")
	assert.Equal(t, 1, g.NodeCount())
}

func TestGraphInsertionOrder(t *testing.T) {
	g := newTestGraph()
	addNode(g, "c", 0, 0)
	addNode(g, "a", 0, 0)
	addNode(g, "b", 0, 0)

	var ids []string
	for _, n := range g.Nodes() {
		ids = append(ids, n.ID)
	}
	assert.Equal(t, []string{"c", "a", "b"}, ids)

	// Re-adding an existing ID keeps its slot
	addNode(g, "a", 5, 5)
	ids = nil
	for _, n := range g.Nodes() {
		ids = append(ids, n.ID)
	}
	assert.Equal(t, []string{"c", "a", "b"}, ids)
}

func TestGraphNodeCenter(t *testing.T) {
	g := newTestGraph()
	addNode(g, "1", 100, 200)

	center, ok := g.NodeCenter("1")
	require.True(t, ok)
	assert.InDelta(t, 180, center.X, 1e-9)
	assert.InDelta(t, 225, center.Y, 1e-9)

	_, ok = g.NodeCenter("missing")
	assert.False(t, ok)
}

func TestGraphBounds(t *testing.T) {
	g := newTestGraph()

	_, ok := g.Bounds()
	assert.False(t, ok, "empty graph has no bounds")

	addNode(g, "1", 0, 0)
	g.AddNode(entities.NewNode[struct{}]("2", entities.NodeTypeDefault, valueobjects.NewPosition(300, 400)).
		WithDimensions(valueobjects.NewDimensions(100, 80)))

	bounds, ok := g.Bounds()
	require.True(t, ok)
	assert.InDelta(t, 0, bounds.Position.X, 1e-9)
	assert.InDelta(t, 0, bounds.Position.Y, 1e-9)
	assert.InDelta(t, 400, bounds.Position.X+bounds.Dimensions.Width, 1e-9)
	assert.InDelta(t, 480, bounds.Position.Y+bounds.Dimensions.Height, 1e-9)
}

func TestGraphMoveNode(t *testing.T) {
	g := newTestGraph()
	addNode(g, "1", 0, 0)

	assert.True(t, g.MoveNode("1", valueobjects.NewPosition(50, 60)))
	assert.True(t, g.Node("1").Position.Equals(valueobjects.NewPosition(50, 60)))
	assert.False(t, g.MoveNode("missing", valueobjects.ZeroPosition()))
}

func TestGraphSelection(t *testing.T) {
	g := newTestGraph()
	addNode(g, "1", 0, 0)
	addNode(g, "2", 0, 0)

	g.SelectNode("1", false)
	assert.Equal(t, []string{"1"}, g.SelectedNodes())
	assert.True(t, g.Node("1").Selected)

	// Single select replaces
	g.SelectNode("2", false)
	assert.Equal(t, []string{"2"}, g.SelectedNodes())
	assert.False(t, g.Node("1").Selected)

	// Multi select accumulates, no duplicates
	g.SelectNode("1", true)
	g.SelectNode("1", true)
	assert.Equal(t, []string{"2", "1"}, g.SelectedNodes())

	g.ClearSelection()
	assert.Empty(t, g.SelectedNodes())
	assert.False(t, g.Node("2").Selected)
}

func TestGraphEdgeQueries(t *testing.T) {
	g := newTestGraph()
	addNode(g, "a", 0, 0)
	addNode(g, "b", 0, 100)
	addNode(g, "c", 0, 200)
	g.AddEdge(entities.NewEdge[struct{}]("e1", "a", "b"))
	g.AddEdge(entities.NewEdge[struct{}]("e2", "b", "c"))

	outgoing := g.OutgoingEdges("b")
	require.Len(t, outgoing, 1)
	assert.Equal(t, "c", outgoing[0].Target)

	incoming := g.IncomingEdges("b")
	require.Len(t, incoming, 1)
	assert.Equal(t, "a", incoming[0].Source)

	assert.Len(t, g.ConnectedEdges("b"), 2)
}

func TestGraphRemoveNodeClearsSelection(t *testing.T) {
	g := newTestGraph()
	addNode(g, "1", 0, 0)
	g.SelectNode("1", false)

	g.RemoveNode("1")

	assert.Empty(t, g.SelectedNodes())
}

func TestGraphFitView(t *testing.T) {
	g := newTestGraph()
	addNode(g, "1", 0, 0)
	addNode(g, "2", 500, 500)

	g.FitView(50, valueobjects.NewDimensions(800, 600))

	bounds, _ := g.Bounds()
	visible := g.Viewport.VisibleWorldRect(valueobjects.NewDimensions(800, 600))
	assert.True(t, visible.Intersects(bounds))
	assert.GreaterOrEqual(t, g.Viewport.Transform.Zoom, g.Viewport.MinZoom)
	assert.LessOrEqual(t, g.Viewport.Transform.Zoom, g.Viewport.MaxZoom)
}
