package entities

import "github.com/google/uuid"

// EdgeType determines how an edge is routed and rendered
type EdgeType string

const (
	EdgeTypeDefault  EdgeType = "default"
	EdgeTypeStraight EdgeType = "straight"
	EdgeTypeBezier   EdgeType = "bezier"
	EdgeTypeStep     EdgeType = "step"
)

// Edge connects two nodes, parameterized over an arbitrary data payload.
// Source and target reference node IDs; a dangling reference is skipped
// during geometry computation rather than treated as a fatal error.
type Edge[T any] struct {
	ID       string   `json:"id"`
	Source   string   `json:"source"`
	Target   string   `json:"target"`
	Type     EdgeType `json:"type"`
	Data     T        `json:"data"`
	Selected bool     `json:"selected"`
	Animated bool     `json:"animated"`
	Label    string   `json:"label,omitempty"`
}

// NewEdge creates an edge between two nodes
func NewEdge[T any](id, source, target string) *Edge[T] {
	return &Edge[T]{
		ID:     id,
		Source: source,
		Target: target,
		Type:   EdgeTypeDefault,
	}
}

// AutoEdge creates an edge with a generated ID
func AutoEdge[T any](source, target string) *Edge[T] {
	return NewEdge[T](uuid.New().String(), source, target)
}

// WithData sets the edge data payload
func (e *Edge[T]) WithData(data T) *Edge[T] {
	e.Data = data
	return e
}

// WithType sets the edge rendering type
func (e *Edge[T]) WithType(edgeType EdgeType) *Edge[T] {
	e.Type = edgeType
	return e
}

// WithLabel sets the edge label
func (e *Edge[T]) WithLabel(label string) *Edge[T] {
	e.Label = label
	return e
}

// MarkAnimated flags the edge for animated rendering
func (e *Edge[T]) MarkAnimated() *Edge[T] {
	e.Animated = true
	return e
}

// Touches reports whether the edge connects to the given node
func (e *Edge[T]) Touches(nodeID string) bool {
	return e.Source == nodeID || e.Target == nodeID
}
