package designer

import (
	"flowcanvas-backend/domain/core/aggregates"
	"flowcanvas-backend/domain/core/entities"
	"flowcanvas-backend/domain/core/valueobjects"
	"flowcanvas-backend/domain/services"
)

// EntityKind classifies a canvas node by the hierarchy level it represents
type EntityKind string

const (
	KindWorkflow EntityKind = "workflow"
	KindContext  EntityKind = "context"
	KindPreset   EntityKind = "preset"
)

// NodeData is the payload attached to every designer canvas node
type NodeData struct {
	Kind        EntityKind `json:"kind"`
	EntityID    string     `json:"entityId"`
	ParentID    string     `json:"parentId,omitempty"`
	Label       string     `json:"label"`
	Icon        string     `json:"icon,omitempty"`
	Description string     `json:"description,omitempty"`
}

const fitViewPadding = 50.0

// NavigationDesigner edits workflow hierarchies on a flow canvas. Loading
// replaces the canvas contents and lays the hierarchy out top to bottom.
type NavigationDesigner struct {
	Canvas *aggregates.Graph[NodeData, struct{}]
	Layout services.LayoutConfig
}

// NewNavigationDesigner creates a designer with an empty canvas and wider
// spacing than the generic layout defaults, sized for labelled cards.
func NewNavigationDesigner() *NavigationDesigner {
	layout := services.DefaultLayoutConfig()
	layout.NodeSep = 80
	layout.RankSep = 120

	return &NavigationDesigner{
		Canvas: aggregates.NewGraph[NodeData, struct{}](),
		Layout: layout,
	}
}

// LoadWorkflows replaces the canvas contents with the given workflows and
// applies the automatic layout
func (d *NavigationDesigner) LoadWorkflows(workflows []*Workflow) {
	d.Canvas = aggregates.NewGraph[NodeData, struct{}]()

	for _, workflow := range workflows {
		d.addWorkflowNode(workflow)
	}

	d.ApplyLayout()
}

func (d *NavigationDesigner) addWorkflowNode(workflow *Workflow) {
	node := entities.NewNode[NodeData](workflow.ID, entities.NodeType(KindWorkflow), valueobjects.ZeroPosition()).
		WithData(NodeData{
			Kind:        KindWorkflow,
			EntityID:    workflow.ID,
			Label:       workflow.Name,
			Icon:        workflow.Icon,
			Description: workflow.Description,
		})
	d.Canvas.AddNode(node)

	for _, context := range workflow.Contexts {
		d.addContextNode(context, workflow.ID)
	}
}

func (d *NavigationDesigner) addContextNode(context *Context, parentID string) {
	node := entities.NewNode[NodeData](context.ID, entities.NodeType(KindContext), valueobjects.ZeroPosition()).
		WithData(NodeData{
			Kind:        KindContext,
			EntityID:    context.ID,
			ParentID:    parentID,
			Label:       context.Name,
			Icon:        context.Icon,
			Description: context.Description,
		})
	d.Canvas.AddNode(node)
	d.Canvas.AddEdge(entities.AutoEdge[struct{}](parentID, context.ID))

	for _, preset := range context.Presets {
		d.addPresetNode(preset, context.ID)
	}
}

func (d *NavigationDesigner) addPresetNode(preset *Preset, contextID string) {
	node := entities.NewNode[NodeData](preset.ID, entities.NodeType(KindPreset), valueobjects.ZeroPosition()).
		WithData(NodeData{
			Kind:        KindPreset,
			EntityID:    preset.ID,
			ParentID:    contextID,
			Label:       preset.Name,
			Icon:        preset.Icon,
			Description: preset.Description,
		})
	d.Canvas.AddNode(node)
	d.Canvas.AddEdge(entities.AutoEdge[struct{}](contextID, preset.ID))
}

// EntityAt returns the hierarchy data behind a canvas node
func (d *NavigationDesigner) EntityAt(nodeID string) (NodeData, bool) {
	node := d.Canvas.Node(nodeID)
	if node == nil {
		return NodeData{}, false
	}
	return node.Data, true
}

// ApplyLayout re-runs the hierarchical layout with the designer's spacing
func (d *NavigationDesigner) ApplyLayout() {
	services.ApplyLayout(d.Canvas, d.Layout)
}

// FitView adjusts the viewport so the whole hierarchy is visible
func (d *NavigationDesigner) FitView(canvasSize valueobjects.Dimensions) {
	d.Canvas.FitView(fitViewPadding, canvasSize)
}
