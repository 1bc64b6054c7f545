package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flowcanvas-backend/domain/core/aggregates"
	"flowcanvas-backend/domain/core/entities"
	"flowcanvas-backend/domain/core/valueobjects"
)

func layoutGraph(edges [][2]string, nodeIDs ...string) *aggregates.Graph[struct{}, struct{}] {
	g := aggregates.NewGraph[struct{}, struct{}]()
	for _, id := range nodeIDs {
		g.AddNode(entities.NewNode[struct{}](id, entities.NodeTypeDefault, valueobjects.ZeroPosition()))
	}
	for i, e := range edges {
		g.AddEdge(entities.NewEdge[struct{}](string(rune('a'+i)), e[0], e[1]))
	}
	return g
}

func TestHierarchicalLayoutRanks(t *testing.T) {
	g := layoutGraph([][2]string{{"1", "2"}, {"1", "3"}}, "1", "2", "3")

	ApplyLayout(g, DefaultLayoutConfig())

	n1 := g.Node("1")
	n2 := g.Node("2")
	n3 := g.Node("3")

	// Root above children, children share a rank
	assert.Less(t, n1.Position.Y, n2.Position.Y)
	assert.InDelta(t, n2.Position.Y, n3.Position.Y, 1e-9)
	assert.NotEqual(t, n2.Position.X, n3.Position.X)
}

func TestHierarchicalLayoutSetsDimensions(t *testing.T) {
	g := layoutGraph(nil, "1")

	ApplyLayout(g, DefaultLayoutConfig())

	require.NotNil(t, g.Node("1").Dimensions)
	assert.Equal(t, valueobjects.NewDimensions(150, 50), *g.Node("1").Dimensions)
}

func TestHierarchicalLayoutDimensionsAreIndependent(t *testing.T) {
	g := layoutGraph(nil, "1", "2")

	ApplyLayout(g, DefaultLayoutConfig())

	// Resizing one node through its pointer must not resize the others.
	g.Node("1").Dimensions.Width = 300
	assert.Equal(t, 150.0, g.Node("2").Dimensions.Width)
}

func TestHierarchicalLayoutLeftToRight(t *testing.T) {
	cfg := DefaultLayoutConfig()
	cfg.Direction = LayoutLeftToRight

	g := layoutGraph([][2]string{{"1", "2"}}, "1", "2")
	ApplyLayout(g, cfg)

	assert.Less(t, g.Node("1").Position.X, g.Node("2").Position.X)
	assert.InDelta(t, g.Node("1").Position.Y, g.Node("2").Position.Y, 1e-9)
}

func TestHierarchicalLayoutDisconnectedNodes(t *testing.T) {
	// Two independent roots both land on rank 0.
	g := layoutGraph(nil, "1", "2")

	ApplyLayout(g, DefaultLayoutConfig())

	assert.InDelta(t, g.Node("1").Position.Y, g.Node("2").Position.Y, 1e-9)
	assert.NotEqual(t, g.Node("1").Position.X, g.Node("2").Position.X)
}

func TestHierarchicalLayoutCycleMembersKeepRankZero(t *testing.T) {
	// A pure cycle has no roots; its members stay on rank 0 rather than
	// being dropped from the layout.
	g := layoutGraph([][2]string{{"1", "2"}, {"2", "1"}}, "1", "2")

	ApplyLayout(g, DefaultLayoutConfig())

	assert.InDelta(t, g.Node("1").Position.Y, g.Node("2").Position.Y, 1e-9)
}

func TestHierarchicalLayoutEmptyGraph(t *testing.T) {
	g := aggregates.NewGraph[struct{}, struct{}]()
	assert.NotPanics(t, func() {
		ApplyLayout(g, DefaultLayoutConfig())
	})
}
