package services

import (
	"sort"

	"flowcanvas-backend/domain/core/aggregates"
	"flowcanvas-backend/domain/core/valueobjects"
)

// LayoutDirection controls the flow direction of the hierarchical layout
type LayoutDirection string

const (
	LayoutTopToBottom LayoutDirection = "top-to-bottom"
	LayoutBottomToTop LayoutDirection = "bottom-to-top"
	LayoutLeftToRight LayoutDirection = "left-to-right"
	LayoutRightToLeft LayoutDirection = "right-to-left"
)

// LayoutConfig configures the hierarchical layout
type LayoutConfig struct {
	Direction      LayoutDirection         `json:"direction"`
	NodeSep        float64                 `json:"nodeSep"`
	RankSep        float64                 `json:"rankSep"`
	Margin         float64                 `json:"margin"`
	NodeDimensions valueobjects.Dimensions `json:"nodeDimensions"`
}

// DefaultLayoutConfig returns the standard layout settings
func DefaultLayoutConfig() LayoutConfig {
	return LayoutConfig{
		Direction:      LayoutTopToBottom,
		NodeSep:        50,
		RankSep:        100,
		Margin:         50,
		NodeDimensions: valueobjects.NewDimensions(150, 50),
	}
}

// ApplyLayout positions all nodes using a simple hierarchical algorithm:
// roots (nodes without incoming edges) get rank 0, children rank parent+1 via
// BFS, and each rank is laid out as a centered row. Node dimensions are set
// to the configured layout box.
func ApplyLayout[N, E any](g *aggregates.Graph[N, E], cfg LayoutConfig) {
	nodes := g.Nodes()
	if len(nodes) == 0 {
		return
	}

	children := make(map[string][]string)
	hasParent := make(map[string]bool)
	for _, edge := range g.Edges() {
		children[edge.Source] = append(children[edge.Source], edge.Target)
		hasParent[edge.Target] = true
	}

	// BFS rank assignment from the roots, in insertion order.
	ranks := make(map[string]int)
	var queue []rankEntry
	for _, node := range nodes {
		if !hasParent[node.ID] {
			queue = append(queue, rankEntry{id: node.ID, rank: 0})
		}
	}

	for len(queue) > 0 {
		entry := queue[0]
		queue = queue[1:]
		if _, seen := ranks[entry.id]; seen {
			continue
		}
		ranks[entry.id] = entry.rank

		for _, childID := range children[entry.id] {
			if _, seen := ranks[childID]; !seen {
				queue = append(queue, rankEntry{id: childID, rank: entry.rank + 1})
			}
		}
	}

	// Nodes unreachable from any root (cycle members) keep rank 0.
	for _, node := range nodes {
		if _, seen := ranks[node.ID]; !seen {
			ranks[node.ID] = 0
		}
	}

	// Group by rank, preserving insertion order within each rank.
	rankGroups := make(map[int][]string)
	for _, node := range nodes {
		rankGroups[ranks[node.ID]] = append(rankGroups[ranks[node.ID]], node.ID)
	}

	orderedRanks := make([]int, 0, len(rankGroups))
	for rank := range rankGroups {
		orderedRanks = append(orderedRanks, rank)
	}
	sort.Ints(orderedRanks)

	boxW := cfg.NodeDimensions.Width
	boxH := cfg.NodeDimensions.Height

	for _, rank := range orderedRanks {
		ids := rankGroups[rank]
		count := float64(len(ids))
		totalWidth := count*boxW + (count-1)*cfg.NodeSep
		startX := -totalWidth / 2

		for i, id := range ids {
			var x, y float64
			switch cfg.Direction {
			case LayoutBottomToTop:
				x = startX + float64(i)*(boxW+cfg.NodeSep)
				y = -(cfg.Margin + float64(rank)*(boxH+cfg.RankSep))
			case LayoutLeftToRight:
				x = cfg.Margin + float64(rank)*(boxW+cfg.RankSep)
				y = startX + float64(i)*(boxH+cfg.NodeSep)
			case LayoutRightToLeft:
				x = -(cfg.Margin + float64(rank)*(boxW+cfg.RankSep))
				y = startX + float64(i)*(boxH+cfg.NodeSep)
			default: // top-to-bottom
				x = startX + float64(i)*(boxW+cfg.NodeSep)
				y = cfg.Margin + float64(rank)*(boxH+cfg.RankSep)
			}

			node := g.Node(id)
			node.Position = valueobjects.NewPosition(x, y)
			dims := cfg.NodeDimensions
			node.Dimensions = &dims
		}
	}
}

type rankEntry struct {
	id   string
	rank int
}
