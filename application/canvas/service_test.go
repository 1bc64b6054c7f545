package canvas

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"flowcanvas-backend/domain/core/aggregates"
	"flowcanvas-backend/domain/core/entities"
	"flowcanvas-backend/domain/core/valueobjects"
	"flowcanvas-backend/pkg/errors"
	"flowcanvas-backend/pkg/observability"
)

func newTestService() *Service {
	return NewService(ServiceOptions{
		CanvasSize: valueobjects.NewDimensions(800, 600),
		Config:     aggregates.DefaultCanvasConfig(),
	}, observability.NewMetrics(), zap.NewNop())
}

func TestServiceAddAndDeleteNode(t *testing.T) {
	s := newTestService()

	node := s.AddNode("n1", entities.NodeTypeDefault, valueobjects.NewPosition(10, 20), Payload{"label": "start"})
	assert.Equal(t, "n1", node.ID)
	assert.Equal(t, "start", node.Data["label"])

	require.NoError(t, s.DeleteNode("n1"))
	assert.True(t, errors.IsNotFound(s.DeleteNode("n1")))
}

func TestServiceGeneratesIDs(t *testing.T) {
	s := newTestService()

	node := s.AddNode("", entities.NodeTypeDefault, valueobjects.ZeroPosition(), nil)
	assert.NotEmpty(t, node.ID)

	other := s.AddNode("", entities.NodeTypeDefault, valueobjects.ZeroPosition(), nil)
	edge, err := s.CreateEdge("", node.ID, other.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, edge.ID)
}

func TestServiceCreateEdgeValidation(t *testing.T) {
	s := newTestService()
	s.AddNode("a", entities.NodeTypeDefault, valueobjects.ZeroPosition(), nil)
	s.AddNode("b", entities.NodeTypeDefault, valueobjects.NewPosition(0, 200), nil)

	_, err := s.CreateEdge("", "a", "a")
	assert.True(t, errors.IsValidation(err))

	_, err = s.CreateEdge("", "missing", "b")
	assert.True(t, errors.IsNotFound(err))

	_, err = s.CreateEdge("", "a", "missing")
	assert.True(t, errors.IsNotFound(err))

	edge, err := s.CreateEdge("e1", "a", "b")
	require.NoError(t, err)
	assert.Equal(t, "e1", edge.ID)
}

func TestServiceDeleteNodeCascadesIntoFrame(t *testing.T) {
	s := newTestService()
	s.AddNode("a", entities.NodeTypeDefault, valueobjects.ZeroPosition(), nil)
	s.AddNode("b", entities.NodeTypeDefault, valueobjects.NewPosition(0, 200), nil)
	_, err := s.CreateEdge("e1", "a", "b")
	require.NoError(t, err)

	require.NoError(t, s.DeleteNode("b"))

	frame := s.Frame(valueobjects.NewDimensions(200, 150))
	assert.Len(t, frame.Nodes, 1)
	assert.Empty(t, frame.Edges)
}

func TestServiceGestureCreatesEdge(t *testing.T) {
	s := newTestService()
	s.AddNode("a", entities.NodeTypeDefault, valueobjects.NewPosition(100, 100), nil)
	s.AddNode("b", entities.NodeTypeDefault, valueobjects.NewPosition(400, 300), nil)

	s.PointerDown(HandleTarget("a", false), primaryDown(180, 150))
	s.PointerMove(primaryDown(400, 280))
	s.PointerUp(HandleTarget("b", true), primaryDown(480, 300))

	frame := s.Frame(valueobjects.NewDimensions(200, 150))
	require.Len(t, frame.Edges, 1)
}

func TestServiceDragMovesNode(t *testing.T) {
	s := newTestService()
	s.AddNode("a", entities.NodeTypeDefault, valueobjects.NewPosition(100, 100), nil)

	s.PointerDown(NodeTarget("a"), primaryDown(0, 0))
	s.PointerMove(primaryDown(40, 20))
	s.PointerUp(Background(), primaryDown(40, 20))

	frame := s.Frame(valueobjects.NewDimensions(200, 150))
	require.Len(t, frame.Nodes, 1)
	assert.Equal(t, valueobjects.NewPosition(140, 120), frame.Nodes[0].ScreenRect.Position)
}

func TestServiceMinimapPointerMovesViewport(t *testing.T) {
	s := newTestService()
	s.AddNode("a", entities.NodeTypeDefault, valueobjects.NewPosition(1000, 1000), nil)

	s.MinimapPointer(valueobjects.NewPosition(150, 100), valueobjects.NewDimensions(200, 150))

	// Content bounds (950,950)..(1210,1100), scale 200/260; the pointer maps
	// to world (1145,1080) and the viewport translates to its negation.
	frame := s.Frame(valueobjects.NewDimensions(200, 150))
	assert.InDelta(t, -1145.0, frame.Transform.X, 1e-9)
	assert.InDelta(t, -1080.0, frame.Transform.Y, 1e-9)
	assert.Equal(t, 1.0, frame.Transform.Zoom)
}

func TestServiceCountsCompletedGestures(t *testing.T) {
	metrics := observability.NewMetrics()
	s := NewService(ServiceOptions{
		CanvasSize: valueobjects.NewDimensions(800, 600),
		Config:     aggregates.DefaultCanvasConfig(),
	}, metrics, zap.NewNop())
	s.AddNode("a", entities.NodeTypeDefault, valueobjects.NewPosition(100, 100), nil)
	s.AddNode("b", entities.NodeTypeDefault, valueobjects.NewPosition(400, 300), nil)

	// Drag released normally.
	s.PointerDown(NodeTarget("a"), primaryDown(0, 0))
	s.PointerMove(primaryDown(40, 20))
	s.PointerUp(Background(), primaryDown(40, 20))

	// Connection dropped on empty space aborts.
	s.PointerDown(HandleTarget("a", false), primaryDown(180, 150))
	s.PointerUp(Background(), primaryDown(300, 300))

	// Pan abandoned when the pointer leaves the canvas.
	s.PointerDown(Background(), primaryDown(10, 10))
	s.PointerLeave()

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.GesturesCompleted.WithLabelValues("drag", "completed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.GesturesCompleted.WithLabelValues("connect", "aborted")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.GesturesCompleted.WithLabelValues("pan", "aborted")))
}

func TestServiceMoveNode(t *testing.T) {
	s := newTestService()
	s.AddNode("a", entities.NodeTypeDefault, valueobjects.ZeroPosition(), nil)

	require.NoError(t, s.MoveNode("a", valueobjects.NewPosition(50, 60)))
	assert.True(t, errors.IsNotFound(s.MoveNode("missing", valueobjects.ZeroPosition())))
}
