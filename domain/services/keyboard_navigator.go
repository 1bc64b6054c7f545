package services

import (
	"math"
	"sort"

	"flowcanvas-backend/domain/core/aggregates"
	"flowcanvas-backend/domain/core/entities"
)

// Navigation key names as reported by the host UI runtime.
const (
	KeyArrowUp    = "ArrowUp"
	KeyArrowDown  = "ArrowDown"
	KeyArrowLeft  = "ArrowLeft"
	KeyArrowRight = "ArrowRight"
	KeyTab        = "Tab"
	KeyHome       = "Home"
	KeyEnd        = "End"
	KeyEnter      = "Enter"
	KeyEscape     = "Escape"
	KeyDelete     = "Delete"
	KeyBackspace  = "Backspace"
)

// navDeadZone filters out near-aligned nodes so tiny offsets don't register
// as being "in the pressed direction".
const navDeadZone = 10.0

// crossAxisWeight discounts the off-axis distance so nodes aligned with the
// gesture direction win over diagonal ones.
const crossAxisWeight = 0.5

// NextSelection computes the node that should be selected after pressing a
// navigation key, given the current selection. Returns false when the key
// does not change the selection (unknown key, empty graph, or no candidate
// in the pressed direction).
func NextSelection[N, E any](g *aggregates.Graph[N, E], currentID, key string, shift bool) (string, bool) {
	nodes := g.Nodes()
	if len(nodes) == 0 {
		return "", false
	}

	switch key {
	case KeyArrowUp, KeyArrowDown, KeyArrowLeft, KeyArrowRight:
		return nearestInDirection(nodes, currentID, key)
	case KeyTab:
		return tabCycle(nodes, currentID, shift)
	case KeyHome:
		return readingOrder(nodes)[0].ID, true
	case KeyEnd:
		ordered := readingOrder(nodes)
		return ordered[len(ordered)-1].ID, true
	default:
		return "", false
	}
}

// nearestInDirection picks the closest node strictly in the pressed
// direction, weighting the primary axis fully and the cross axis by half.
// Ties break by insertion order: the first node with a strictly smaller
// distance wins.
func nearestInDirection[N any](nodes []*entities.Node[N], currentID, key string) (string, bool) {
	current := findNode(nodes, currentID)
	if current == nil {
		// Nothing selected yet: pick the first node in insertion order.
		return nodes[0].ID, true
	}

	bestID := ""
	bestDistance := math.Inf(1)

	for _, node := range nodes {
		if node.ID == currentID {
			continue
		}

		dx := node.Position.X - current.Position.X
		dy := node.Position.Y - current.Position.Y

		var primary, cross float64
		switch key {
		case KeyArrowUp:
			if dy >= -navDeadZone {
				continue
			}
			primary, cross = -dy, math.Abs(dx)
		case KeyArrowDown:
			if dy <= navDeadZone {
				continue
			}
			primary, cross = dy, math.Abs(dx)
		case KeyArrowLeft:
			if dx >= -navDeadZone {
				continue
			}
			primary, cross = -dx, math.Abs(dy)
		case KeyArrowRight:
			if dx <= navDeadZone {
				continue
			}
			primary, cross = dx, math.Abs(dy)
		}

		distance := primary + crossAxisWeight*cross
		if distance < bestDistance {
			bestDistance = distance
			bestID = node.ID
		}
	}

	if bestID == "" {
		return "", false
	}
	return bestID, true
}

// tabCycle advances through nodes in reading order (y, then x), wrapping at
// both ends.
func tabCycle[N any](nodes []*entities.Node[N], currentID string, shift bool) (string, bool) {
	ordered := readingOrder(nodes)

	index := -1
	for i, node := range ordered {
		if node.ID == currentID {
			index = i
			break
		}
	}

	if index == -1 {
		if shift {
			return ordered[len(ordered)-1].ID, true
		}
		return ordered[0].ID, true
	}

	if shift {
		index--
		if index < 0 {
			index = len(ordered) - 1
		}
	} else {
		index = (index + 1) % len(ordered)
	}
	return ordered[index].ID, true
}

// readingOrder sorts nodes by (y, then x) ascending, preserving insertion
// order for exact ties.
func readingOrder[N any](nodes []*entities.Node[N]) []*entities.Node[N] {
	ordered := append([]*entities.Node[N](nil), nodes...)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Position.Y != ordered[j].Position.Y {
			return ordered[i].Position.Y < ordered[j].Position.Y
		}
		return ordered[i].Position.X < ordered[j].Position.X
	})
	return ordered
}

func findNode[N any](nodes []*entities.Node[N], id string) *entities.Node[N] {
	for _, node := range nodes {
		if node.ID == id {
			return node
		}
	}
	return nil
}
