package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flowcanvas-backend/domain/core/aggregates"
	"flowcanvas-backend/domain/core/entities"
	"flowcanvas-backend/domain/core/valueobjects"
)

func navGraph(positions map[string][2]float64, order []string) *aggregates.Graph[struct{}, struct{}] {
	g := aggregates.NewGraph[struct{}, struct{}]()
	for _, id := range order {
		p := positions[id]
		g.AddNode(entities.NewNode[struct{}](id, entities.NodeTypeDefault, valueobjects.NewPosition(p[0], p[1])))
	}
	return g
}

func TestArrowNavigation(t *testing.T) {
	g := navGraph(map[string][2]float64{
		"A": {0, 0},
		"B": {100, 0},
		"C": {0, 100},
	}, []string{"A", "B", "C"})

	tests := []struct {
		name    string
		key     string
		want    string
		changed bool
	}{
		{"right selects B", KeyArrowRight, "B", true},
		{"down selects C", KeyArrowDown, "C", true},
		{"up has no candidate", KeyArrowUp, "", false},
		{"left has no candidate", KeyArrowLeft, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, ok := NextSelection(g, "A", tt.key, false)
			assert.Equal(t, tt.changed, ok)
			assert.Equal(t, tt.want, next)
		})
	}
}

func TestArrowNavigationWeightedDistance(t *testing.T) {
	// The winner minimizes primary + 0.5*cross, not raw Euclidean distance.
	g := navGraph(map[string][2]float64{
		"A": {0, 0},
		"D": {60, 80},
		"B": {0, 130},
	}, []string{"A", "D", "B"})

	// D: primary 80 + 0.5*60 = 110; B: primary 130 + 0 = 130 -> D wins
	next, ok := NextSelection(g, "A", KeyArrowDown, false)
	require.True(t, ok)
	assert.Equal(t, "D", next)

	// Move B closer so alignment wins: primary 100 < 110
	g2 := navGraph(map[string][2]float64{
		"A": {0, 0},
		"D": {60, 80},
		"B": {0, 100},
	}, []string{"A", "D", "B"})
	next, ok = NextSelection(g2, "A", KeyArrowDown, false)
	require.True(t, ok)
	assert.Equal(t, "B", next)
}

func TestArrowNavigationDeadZone(t *testing.T) {
	// B is only 5 units below A, inside the 10-unit dead zone.
	g := navGraph(map[string][2]float64{
		"A": {0, 0},
		"B": {200, 5},
	}, []string{"A", "B"})

	_, ok := NextSelection(g, "A", KeyArrowDown, false)
	assert.False(t, ok)

	// But it is well within reach to the right.
	next, ok := NextSelection(g, "A", KeyArrowRight, false)
	require.True(t, ok)
	assert.Equal(t, "B", next)
}

func TestArrowNavigationTieBreaksByInsertionOrder(t *testing.T) {
	// B and C are equidistant below A; the first inserted wins because only
	// a strictly smaller distance replaces the best candidate.
	g := navGraph(map[string][2]float64{
		"A": {0, 0},
		"B": {-50, 100},
		"C": {50, 100},
	}, []string{"A", "B", "C"})

	next, ok := NextSelection(g, "A", KeyArrowDown, false)
	require.True(t, ok)
	assert.Equal(t, "B", next)
}

func TestArrowNavigationNoSelection(t *testing.T) {
	g := navGraph(map[string][2]float64{
		"X": {50, 50},
		"Y": {0, 0},
	}, []string{"X", "Y"})

	// No current selection: first node in insertion order.
	next, ok := NextSelection(g, "", KeyArrowDown, false)
	require.True(t, ok)
	assert.Equal(t, "X", next)
}

func TestTabCycleReadingOrder(t *testing.T) {
	g := navGraph(map[string][2]float64{
		"a": {0, 0},
		"b": {50, 0},
		"c": {0, 50},
	}, []string{"c", "a", "b"}) // insertion order differs from reading order

	// Reading order is (0,0) -> (50,0) -> (0,50), wrapping.
	next, _ := NextSelection(g, "", KeyTab, false)
	assert.Equal(t, "a", next)
	next, _ = NextSelection(g, "a", KeyTab, false)
	assert.Equal(t, "b", next)
	next, _ = NextSelection(g, "b", KeyTab, false)
	assert.Equal(t, "c", next)
	next, _ = NextSelection(g, "c", KeyTab, false)
	assert.Equal(t, "a", next)
}

func TestShiftTabCyclesBackward(t *testing.T) {
	g := navGraph(map[string][2]float64{
		"a": {0, 0},
		"b": {50, 0},
	}, []string{"a", "b"})

	next, _ := NextSelection(g, "", KeyTab, true)
	assert.Equal(t, "b", next, "shift-tab with no selection starts at the last node")
	next, _ = NextSelection(g, "a", KeyTab, true)
	assert.Equal(t, "b", next, "shift-tab wraps to the end")
	next, _ = NextSelection(g, "b", KeyTab, true)
	assert.Equal(t, "a", next)
}

func TestHomeAndEnd(t *testing.T) {
	g := navGraph(map[string][2]float64{
		"a": {0, 0},
		"b": {50, 0},
		"c": {0, 50},
	}, []string{"b", "c", "a"})

	next, ok := NextSelection(g, "b", KeyHome, false)
	require.True(t, ok)
	assert.Equal(t, "a", next)

	next, ok = NextSelection(g, "a", KeyEnd, false)
	require.True(t, ok)
	assert.Equal(t, "c", next)
}

func TestNextSelectionEmptyGraph(t *testing.T) {
	g := aggregates.NewGraph[struct{}, struct{}]()

	_, ok := NextSelection(g, "", KeyTab, false)
	assert.False(t, ok)
}

func TestNextSelectionUnknownKey(t *testing.T) {
	g := navGraph(map[string][2]float64{"a": {0, 0}}, []string{"a"})

	_, ok := NextSelection(g, "a", "PageDown", false)
	assert.False(t, ok)
}
