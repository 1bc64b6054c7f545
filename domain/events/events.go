// Package events defines the canvas domain events emitted by the engine.
// Events describe something that already happened; the hosting application
// subscribes to them to update its own state and trigger rendering.
package events

import (
	"time"

	"flowcanvas-backend/domain/core/valueobjects"
)

// Event types
const (
	TypeNodeSelected     = "node.selected"
	TypeNodeMoved        = "node.moved"
	TypeEdgeSelected     = "edge.selected"
	TypeEdgeCreated      = "edge.created"
	TypeDeleteRequested  = "node.delete_requested"
	TypeEditRequested    = "node.edit_requested"
	TypeSelectionCleared = "selection.cleared"
	TypeViewportChanged  = "viewport.changed"
)

// DomainEvent is the base interface for all canvas events
type DomainEvent interface {
	GetEventType() string
	GetTimestamp() time.Time
}

// Listener receives canvas events as they are emitted
type Listener func(DomainEvent)

// BaseEvent provides common event fields
type BaseEvent struct {
	EventType string    `json:"eventType"`
	Timestamp time.Time `json:"timestamp"`
}

func (e BaseEvent) GetEventType() string    { return e.EventType }
func (e BaseEvent) GetTimestamp() time.Time { return e.Timestamp }

func newBase(eventType string) BaseEvent {
	return BaseEvent{EventType: eventType, Timestamp: time.Now()}
}

// NodeSelected is raised when a node becomes the active selection
type NodeSelected struct {
	BaseEvent
	NodeID string `json:"nodeId"`
}

// NewNodeSelected creates a NodeSelected event
func NewNodeSelected(nodeID string) NodeSelected {
	return NodeSelected{BaseEvent: newBase(TypeNodeSelected), NodeID: nodeID}
}

// NodeMoved is raised for every drag step with the candidate node position
type NodeMoved struct {
	BaseEvent
	NodeID   string                `json:"nodeId"`
	Position valueobjects.Position `json:"position"`
}

// NewNodeMoved creates a NodeMoved event
func NewNodeMoved(nodeID string, position valueobjects.Position) NodeMoved {
	return NodeMoved{BaseEvent: newBase(TypeNodeMoved), NodeID: nodeID, Position: position}
}

// EdgeSelected is raised when an edge becomes the active selection
type EdgeSelected struct {
	BaseEvent
	EdgeID string `json:"edgeId"`
}

// NewEdgeSelected creates an EdgeSelected event
func NewEdgeSelected(edgeID string) EdgeSelected {
	return EdgeSelected{BaseEvent: newBase(TypeEdgeSelected), EdgeID: edgeID}
}

// EdgeCreated is raised when a connection gesture completes on a valid target
type EdgeCreated struct {
	BaseEvent
	SourceID string `json:"sourceId"`
	TargetID string `json:"targetId"`
}

// NewEdgeCreated creates an EdgeCreated event
func NewEdgeCreated(sourceID, targetID string) EdgeCreated {
	return EdgeCreated{BaseEvent: newBase(TypeEdgeCreated), SourceID: sourceID, TargetID: targetID}
}

// DeleteRequested is raised when the user asks to delete the selection
type DeleteRequested struct {
	BaseEvent
	NodeID string `json:"nodeId"`
}

// NewDeleteRequested creates a DeleteRequested event
func NewDeleteRequested(nodeID string) DeleteRequested {
	return DeleteRequested{BaseEvent: newBase(TypeDeleteRequested), NodeID: nodeID}
}

// EditRequested is raised when the user asks to edit the selection
type EditRequested struct {
	BaseEvent
	NodeID string `json:"nodeId"`
}

// NewEditRequested creates an EditRequested event
func NewEditRequested(nodeID string) EditRequested {
	return EditRequested{BaseEvent: newBase(TypeEditRequested), NodeID: nodeID}
}

// SelectionCleared is raised when the selection is emptied
type SelectionCleared struct {
	BaseEvent
}

// NewSelectionCleared creates a SelectionCleared event
func NewSelectionCleared() SelectionCleared {
	return SelectionCleared{BaseEvent: newBase(TypeSelectionCleared)}
}

// ViewportChanged is raised when the minimap moves the main viewport
type ViewportChanged struct {
	BaseEvent
	Translation valueobjects.Position `json:"translation"`
}

// NewViewportChanged creates a ViewportChanged event
func NewViewportChanged(translation valueobjects.Position) ViewportChanged {
	return ViewportChanged{BaseEvent: newBase(TypeViewportChanged), Translation: translation}
}
