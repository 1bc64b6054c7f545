package entities

import (
	"github.com/google/uuid"

	"flowcanvas-backend/domain/core/valueobjects"
)

// NodeType determines how a node is rendered by the host
type NodeType string

const (
	NodeTypeDefault NodeType = "default"
	NodeTypeInput   NodeType = "input"
	NodeTypeOutput  NodeType = "output"
	NodeTypeGroup   NodeType = "group"
)

// Default box used when a node has not reported its measured dimensions.
var defaultNodeBox = valueobjects.NewDimensions(160, 50)

// Node is an element on the canvas, parameterized over an arbitrary
// data payload supplied by the application layer.
type Node[T any] struct {
	ID          string                   `json:"id"`
	Type        NodeType                 `json:"type"`
	Position    valueobjects.Position    `json:"position"`
	Dimensions  *valueobjects.Dimensions `json:"dimensions,omitempty"`
	Data        T                        `json:"data"`
	Selected    bool                     `json:"selected"`
	Draggable   bool                     `json:"draggable"`
	Connectable bool                     `json:"connectable"`
	ParentID    string                   `json:"parentId,omitempty"`
}

// NewNode creates a node with default interaction flags
func NewNode[T any](id string, nodeType NodeType, position valueobjects.Position) *Node[T] {
	return &Node[T]{
		ID:          id,
		Type:        nodeType,
		Position:    position,
		Draggable:   true,
		Connectable: true,
	}
}

// AutoNode creates a node with a generated ID
func AutoNode[T any](nodeType NodeType, position valueobjects.Position) *Node[T] {
	return NewNode[T](uuid.New().String(), nodeType, position)
}

// WithData sets the node data payload
func (n *Node[T]) WithData(data T) *Node[T] {
	n.Data = data
	return n
}

// WithDimensions sets explicit node dimensions
func (n *Node[T]) WithDimensions(dims valueobjects.Dimensions) *Node[T] {
	n.Dimensions = &dims
	return n
}

// WithParent sets the parent node for grouping
func (n *Node[T]) WithParent(parentID string) *Node[T] {
	n.ParentID = parentID
	return n
}

// Box returns the node dimensions, falling back to the default box when the
// host has not measured the node yet
func (n *Node[T]) Box() valueobjects.Dimensions {
	if n.Dimensions != nil {
		return *n.Dimensions
	}
	return defaultNodeBox
}

// Center returns the node's center point in world space
func (n *Node[T]) Center() valueobjects.Position {
	box := n.Box()
	return valueobjects.Position{
		X: n.Position.X + box.Width/2,
		Y: n.Position.Y + box.Height/2,
	}
}

// Bounds returns the node's world-space rectangle
func (n *Node[T]) Bounds() valueobjects.Rect {
	return valueobjects.Rect{Position: n.Position, Dimensions: n.Box()}
}

// TopHandle returns the world position of the input handle
func (n *Node[T]) TopHandle() valueobjects.Position {
	center := n.Center()
	return valueobjects.Position{X: center.X, Y: center.Y - n.Box().Height/2}
}

// BottomHandle returns the world position of the output handle
func (n *Node[T]) BottomHandle() valueobjects.Position {
	center := n.Center()
	return valueobjects.Position{X: center.X, Y: center.Y + n.Box().Height/2}
}
