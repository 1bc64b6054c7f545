package canvas

import (
	"flowcanvas-backend/domain/core/valueobjects"
	"flowcanvas-backend/domain/services"
)

// NodeGeometry is a node ready to paint: its rectangle in screen space plus
// the world-space handle anchors.
type NodeGeometry struct {
	ID           string                `json:"id"`
	Type         string                `json:"type"`
	ScreenRect   valueobjects.Rect     `json:"screenRect"`
	TopHandle    valueobjects.Position `json:"topHandle"`
	BottomHandle valueobjects.Position `json:"bottomHandle"`
	Selected     bool                  `json:"selected"`
	ParentID     string                `json:"parentId,omitempty"`
}

// EdgeGeometry is an edge ready to paint: world-space path commands for the
// curve and its arrowhead. Paths live in world space so they scale with the
// viewport transform the host already applies.
type EdgeGeometry struct {
	ID       string `json:"id"`
	Path     string `json:"path"`
	Arrow    string `json:"arrow"`
	Selected bool   `json:"selected"`
	Animated bool   `json:"animated"`
	Label    string `json:"label,omitempty"`
}

// ConnectionPreview is the dashed preview curve of an in-flight connection
// gesture, from the source handle to the pointer.
type ConnectionPreview struct {
	SourceNode string `json:"sourceNode"`
	FromTop    bool   `json:"fromTop"`
	Path       string `json:"path"`
}

// Frame is one complete render-ready snapshot of the canvas
type Frame struct {
	Transform  valueobjects.Transform `json:"transform"`
	Nodes      []NodeGeometry         `json:"nodes"`
	Edges      []EdgeGeometry         `json:"edges"`
	Connection *ConnectionPreview     `json:"connection,omitempty"`
	Minimap    *services.MinimapModel `json:"minimap,omitempty"`
	GridSize   float64                `json:"gridSize"`
	ShowGrid   bool                   `json:"showGrid"`
}

// Frame assembles the current render snapshot. minimapSize is only consulted
// when the minimap is enabled in the canvas config.
func (c *CanvasController[N, E]) Frame(minimapSize valueobjects.Dimensions) Frame {
	g := c.graph
	frame := Frame{
		Transform: g.Viewport.Transform,
		GridSize:  g.Config.GridSize,
		ShowGrid:  g.Config.ShowGrid,
	}

	for _, node := range g.Nodes() {
		bounds := node.Bounds()
		frame.Nodes = append(frame.Nodes, NodeGeometry{
			ID:   node.ID,
			Type: string(node.Type),
			ScreenRect: valueobjects.Rect{
				Position: g.Viewport.WorldToScreen(bounds.Position),
				Dimensions: valueobjects.Dimensions{
					Width:  bounds.Dimensions.Width * g.Viewport.Transform.Zoom,
					Height: bounds.Dimensions.Height * g.Viewport.Transform.Zoom,
				},
			},
			TopHandle:    node.TopHandle(),
			BottomHandle: node.BottomHandle(),
			Selected:     node.Selected,
			ParentID:     node.ParentID,
		})
	}

	// Edges run from the source's bottom handle to the target's top handle.
	// Dangling edges are skipped rather than drawn to a stale position.
	for _, edge := range g.Edges() {
		source := g.Node(edge.Source)
		target := g.Node(edge.Target)
		if source == nil || target == nil {
			continue
		}
		from := source.BottomHandle()
		to := target.TopHandle()
		frame.Edges = append(frame.Edges, EdgeGeometry{
			ID:       edge.ID,
			Path:     services.BezierPath(from, to),
			Arrow:    services.ArrowHead(from, to),
			Selected: edge.Selected,
			Animated: edge.Animated,
			Label:    edge.Label,
		})
	}

	if state, ok := c.connection.State(); ok {
		source := g.Node(state.SourceNode)
		if source != nil {
			from := source.BottomHandle()
			if state.FromTop {
				from = source.TopHandle()
			}
			frame.Connection = &ConnectionPreview{
				SourceNode: state.SourceNode,
				FromTop:    state.FromTop,
				Path:       services.BezierPath(from, state.Current),
			}
		}
	}

	if g.Config.ShowMinimap {
		model := services.ProjectMinimap(g, minimapSize, c.canvasSize)
		frame.Minimap = &model
	}

	return frame
}
