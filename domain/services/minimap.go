package services

import (
	"math"

	"flowcanvas-backend/domain/core/aggregates"
	"flowcanvas-backend/domain/core/valueobjects"
)

const (
	// minimapPadding grows the content bounds so nodes never touch the
	// minimap border.
	minimapPadding = 50.0
	// emptyContentSize is the fallback content box for an empty graph.
	emptyContentSize = 1000.0
)

// MinimapNode is a node rectangle projected into minimap space
type MinimapNode struct {
	ID       string            `json:"id"`
	Rect     valueobjects.Rect `json:"rect"`
	Selected bool              `json:"selected"`
}

// MinimapEdge is an edge projected into minimap space. Edges with dangling
// endpoints are omitted from the model.
type MinimapEdge struct {
	ID     string                `json:"id"`
	Source valueobjects.Position `json:"source"`
	Target valueobjects.Position `json:"target"`
}

// MinimapModel is the full minimap projection: node/edge geometry in minimap
// pixels plus the viewport indicator. It also carries the scale and content
// origin needed to invert the projection for minimap clicks.
type MinimapModel struct {
	Size     valueobjects.Dimensions `json:"size"`
	Scale    float64                 `json:"scale"`
	Origin   valueobjects.Position   `json:"origin"`
	Nodes    []MinimapNode           `json:"nodes"`
	Edges    []MinimapEdge           `json:"edges"`
	Viewport valueobjects.Rect       `json:"viewport"`
}

// ProjectMinimap maps the graph bounds and viewport state into minimap space.
// canvasSize is the size of the main canvas, used for the viewport indicator.
func ProjectMinimap[N, E any](g *aggregates.Graph[N, E], size, canvasSize valueobjects.Dimensions) MinimapModel {
	content := contentBounds(g)
	scale := math.Min(
		size.Width/content.Dimensions.Width,
		size.Height/content.Dimensions.Height,
	)

	model := MinimapModel{
		Size:   size,
		Scale:  scale,
		Origin: content.Position,
	}

	for _, node := range g.Nodes() {
		bounds := node.Bounds()
		model.Nodes = append(model.Nodes, MinimapNode{
			ID: node.ID,
			Rect: valueobjects.Rect{
				Position: model.project(bounds.Position),
				Dimensions: valueobjects.Dimensions{
					Width:  bounds.Dimensions.Width * scale,
					Height: bounds.Dimensions.Height * scale,
				},
			},
			Selected: node.Selected,
		})
	}

	for _, edge := range g.Edges() {
		source, okS := g.NodeCenter(edge.Source)
		target, okT := g.NodeCenter(edge.Target)
		if !okS || !okT {
			continue
		}
		model.Edges = append(model.Edges, MinimapEdge{
			ID:     edge.ID,
			Source: model.project(source),
			Target: model.project(target),
		})
	}

	visible := g.Viewport.VisibleWorldRect(canvasSize)
	model.Viewport = valueobjects.Rect{
		Position: model.project(visible.Position),
		Dimensions: valueobjects.Dimensions{
			Width:  visible.Dimensions.Width * scale,
			Height: visible.Dimensions.Height * scale,
		},
	}

	return model
}

// PointerToWorld inverts the projection for a pointer position on the minimap
func (m MinimapModel) PointerToWorld(p valueobjects.Position) valueobjects.Position {
	return valueobjects.Position{
		X: p.X/m.Scale + m.Origin.X,
		Y: p.Y/m.Scale + m.Origin.Y,
	}
}

// ViewportTarget converts a minimap pointer position into the transform
// translation that moves the main viewport to that world point
func (m MinimapModel) ViewportTarget(p valueobjects.Position) valueobjects.Position {
	world := m.PointerToWorld(p)
	return valueobjects.Position{X: -world.X, Y: -world.Y}
}

func (m MinimapModel) project(world valueobjects.Position) valueobjects.Position {
	return valueobjects.Position{
		X: (world.X - m.Origin.X) * m.Scale,
		Y: (world.Y - m.Origin.Y) * m.Scale,
	}
}

func contentBounds[N, E any](g *aggregates.Graph[N, E]) valueobjects.Rect {
	if bounds, ok := g.Bounds(); ok {
		return bounds.Pad(minimapPadding)
	}
	return valueobjects.NewRect(0, 0, emptyContentSize, emptyContentSize)
}
