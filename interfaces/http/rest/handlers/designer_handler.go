package handlers

import (
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"flowcanvas-backend/domain/core/valueobjects"
	"flowcanvas-backend/domain/designer"
)

// DesignerHandler serves the navigation designer: loading workflow
// hierarchies onto its canvas and reading the laid-out result back
type DesignerHandler struct {
	mu       sync.Mutex
	designer *designer.NavigationDesigner
	logger   *zap.Logger
}

// NewDesignerHandler creates a designer handler with an empty canvas
func NewDesignerHandler(logger *zap.Logger) *DesignerHandler {
	return &DesignerHandler{
		designer: designer.NewNavigationDesigner(),
		logger:   logger,
	}
}

// LoadWorkflowsRequest represents the request body for loading workflows
type LoadWorkflowsRequest struct {
	Workflows []*designer.Workflow `json:"workflows" validate:"required,min=1,dive,required"`
	// FitWidth/FitHeight, when both set, fit the viewport to the loaded
	// hierarchy.
	FitWidth  float64 `json:"fitWidth,omitempty" validate:"omitempty,gt=0"`
	FitHeight float64 `json:"fitHeight,omitempty" validate:"omitempty,gt=0"`
}

// designerGraphResponse is the laid-out hierarchy as the host renders it
type designerGraphResponse struct {
	Nodes     []designerNode         `json:"nodes"`
	Edges     []designerEdge         `json:"edges"`
	Transform valueobjects.Transform `json:"transform"`
}

type designerNode struct {
	ID       string                `json:"id"`
	Position valueobjects.Position `json:"position"`
	Data     designer.NodeData     `json:"data"`
}

type designerEdge struct {
	ID     string `json:"id"`
	Source string `json:"source"`
	Target string `json:"target"`
}

// LoadWorkflows handles POST /designer/workflows
func (h *DesignerHandler) LoadWorkflows(w http.ResponseWriter, r *http.Request) {
	var req LoadWorkflowsRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	h.mu.Lock()
	h.designer.LoadWorkflows(req.Workflows)
	if req.FitWidth > 0 && req.FitHeight > 0 {
		h.designer.FitView(valueobjects.NewDimensions(req.FitWidth, req.FitHeight))
	}
	response := h.graphResponse()
	h.mu.Unlock()

	h.logger.Info("workflows loaded",
		zap.Int("workflows", len(req.Workflows)),
		zap.Int("nodes", len(response.Nodes)),
	)
	respondJSON(w, http.StatusOK, response)
}

// GetGraph handles GET /designer/graph
func (h *DesignerHandler) GetGraph(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	response := h.graphResponse()
	h.mu.Unlock()

	respondJSON(w, http.StatusOK, response)
}

// GetEntity handles GET /designer/entities/{nodeID}
func (h *DesignerHandler) GetEntity(w http.ResponseWriter, r *http.Request) {
	nodeID := chi.URLParam(r, "nodeID")

	h.mu.Lock()
	data, ok := h.designer.EntityAt(nodeID)
	h.mu.Unlock()

	if !ok {
		respondJSON(w, http.StatusNotFound, errorResponse{Error: "entity " + nodeID + " not found"})
		return
	}
	respondJSON(w, http.StatusOK, data)
}

// ApplyLayout handles POST /designer/layout
func (h *DesignerHandler) ApplyLayout(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	h.designer.ApplyLayout()
	response := h.graphResponse()
	h.mu.Unlock()

	respondJSON(w, http.StatusOK, response)
}

func (h *DesignerHandler) graphResponse() designerGraphResponse {
	response := designerGraphResponse{
		Transform: h.designer.Canvas.Viewport.Transform,
	}
	for _, node := range h.designer.Canvas.Nodes() {
		response.Nodes = append(response.Nodes, designerNode{
			ID:       node.ID,
			Position: node.Position,
			Data:     node.Data,
		})
	}
	for _, edge := range h.designer.Canvas.Edges() {
		response.Edges = append(response.Edges, designerEdge{
			ID:     edge.ID,
			Source: edge.Source,
			Target: edge.Target,
		})
	}
	return response
}
