// Package handlers implements the REST endpoints for the canvas engine.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	appcanvas "flowcanvas-backend/application/canvas"
	"flowcanvas-backend/domain/core/entities"
	"flowcanvas-backend/domain/core/valueobjects"
	"flowcanvas-backend/domain/services"
	"flowcanvas-backend/pkg/errors"
)

var validate = validator.New()

// CanvasHandler handles canvas-related HTTP requests
type CanvasHandler struct {
	service *appcanvas.Service
	logger  *zap.Logger
}

// NewCanvasHandler creates a new canvas handler
func NewCanvasHandler(service *appcanvas.Service, logger *zap.Logger) *CanvasHandler {
	return &CanvasHandler{service: service, logger: logger}
}

// CreateNodeRequest represents the request body for creating a node
type CreateNodeRequest struct {
	ID   string            `json:"id,omitempty" validate:"omitempty,max=128"`
	Type string            `json:"type,omitempty" validate:"omitempty,oneof=default input output group workflow context preset"`
	X    float64           `json:"x"`
	Y    float64           `json:"y"`
	Data appcanvas.Payload `json:"data,omitempty"`
}

// CreateEdgeRequest represents the request body for creating an edge
type CreateEdgeRequest struct {
	ID     string `json:"id,omitempty" validate:"omitempty,max=128"`
	Source string `json:"source" validate:"required"`
	Target string `json:"target" validate:"required"`
}

// MoveNodeRequest represents the request body for moving a node
type MoveNodeRequest struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// LayoutRequest represents the request body for applying a layout
type LayoutRequest struct {
	Direction string  `json:"direction,omitempty" validate:"omitempty,oneof=top-to-bottom bottom-to-top left-to-right right-to-left"`
	NodeSep   float64 `json:"nodeSep,omitempty" validate:"omitempty,gt=0"`
	RankSep   float64 `json:"rankSep,omitempty" validate:"omitempty,gt=0"`
}

// FitViewRequest represents the request body for fitting the viewport
type FitViewRequest struct {
	Padding float64 `json:"padding,omitempty" validate:"omitempty,gte=0"`
}

// GetFrame handles GET /canvas, returning the full render snapshot
func (h *CanvasHandler) GetFrame(w http.ResponseWriter, r *http.Request) {
	frame := h.service.Frame(valueobjects.NewDimensions(200, 150))
	respondJSON(w, http.StatusOK, frame)
}

// CreateNode handles POST /canvas/nodes
func (h *CanvasHandler) CreateNode(w http.ResponseWriter, r *http.Request) {
	var req CreateNodeRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	nodeType := entities.NodeTypeDefault
	if req.Type != "" {
		nodeType = entities.NodeType(req.Type)
	}

	node := h.service.AddNode(req.ID, nodeType, valueobjects.NewPosition(req.X, req.Y), req.Data)
	respondJSON(w, http.StatusCreated, node)
}

// DeleteNode handles DELETE /canvas/nodes/{nodeID}
func (h *CanvasHandler) DeleteNode(w http.ResponseWriter, r *http.Request) {
	nodeID := chi.URLParam(r, "nodeID")
	if err := h.service.DeleteNode(nodeID); err != nil {
		respondAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// MoveNode handles PUT /canvas/nodes/{nodeID}/position
func (h *CanvasHandler) MoveNode(w http.ResponseWriter, r *http.Request) {
	var req MoveNodeRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	nodeID := chi.URLParam(r, "nodeID")
	if err := h.service.MoveNode(nodeID, valueobjects.NewPosition(req.X, req.Y)); err != nil {
		respondAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// CreateEdge handles POST /canvas/edges
func (h *CanvasHandler) CreateEdge(w http.ResponseWriter, r *http.Request) {
	var req CreateEdgeRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	edge, err := h.service.CreateEdge(req.ID, req.Source, req.Target)
	if err != nil {
		respondAppError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, edge)
}

// DeleteEdge handles DELETE /canvas/edges/{edgeID}
func (h *CanvasHandler) DeleteEdge(w http.ResponseWriter, r *http.Request) {
	edgeID := chi.URLParam(r, "edgeID")
	if err := h.service.DeleteEdge(edgeID); err != nil {
		respondAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ApplyLayout handles POST /canvas/layout
func (h *CanvasHandler) ApplyLayout(w http.ResponseWriter, r *http.Request) {
	var req LayoutRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	cfg := services.DefaultLayoutConfig()
	if req.Direction != "" {
		cfg.Direction = services.LayoutDirection(req.Direction)
	}
	if req.NodeSep > 0 {
		cfg.NodeSep = req.NodeSep
	}
	if req.RankSep > 0 {
		cfg.RankSep = req.RankSep
	}

	h.service.ApplyLayout(cfg)
	respondJSON(w, http.StatusOK, h.service.Frame(valueobjects.NewDimensions(200, 150)))
}

// FitView handles POST /canvas/fit
func (h *CanvasHandler) FitView(w http.ResponseWriter, r *http.Request) {
	var req FitViewRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	padding := req.Padding
	if padding == 0 {
		padding = 50
	}
	h.service.FitView(padding)
	respondJSON(w, http.StatusOK, h.service.Frame(valueobjects.NewDimensions(200, 150)))
}

// errorResponse is the JSON error envelope
type errorResponse struct {
	Error string `json:"error"`
}

func decodeAndValidate(w http.ResponseWriter, r *http.Request, req any) bool {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body: " + err.Error()})
		return false
	}
	if err := validate.Struct(req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "validation error: " + err.Error()})
		return false
	}
	return true
}

func respondAppError(w http.ResponseWriter, err error) {
	switch {
	case errors.IsNotFound(err):
		respondJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	case errors.IsValidation(err):
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	default:
		respondJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
	}
}

func respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
