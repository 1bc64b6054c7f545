package canvas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"flowcanvas-backend/domain/core/entities"
	"flowcanvas-backend/domain/core/valueobjects"
	"flowcanvas-backend/domain/events"
	"flowcanvas-backend/domain/services"
)

func newTestController() (*CanvasController[string, string], *[]events.DomainEvent) {
	g := newTestGraph()
	c := NewCanvasController(g, valueobjects.NewDimensions(800, 600), Callbacks{}, zap.NewNop())

	var emitted []events.DomainEvent
	c.Subscribe(func(e events.DomainEvent) {
		emitted = append(emitted, e)
	})
	return c, &emitted
}

func lastEvent(t *testing.T, emitted *[]events.DomainEvent) events.DomainEvent {
	t.Helper()
	require.NotEmpty(t, *emitted)
	return (*emitted)[len(*emitted)-1]
}

func TestNodePressSelectsAndStartsDrag(t *testing.T) {
	c, emitted := newTestController()

	c.PointerDown(NodeTarget("a"), primaryDown(110, 110))

	assert.True(t, c.Graph().Node("a").Selected)
	assert.True(t, c.drag.Dragging())
	assert.Equal(t, events.TypeNodeSelected, lastEvent(t, emitted).GetEventType())
}

func TestDragEmitsMoveCandidates(t *testing.T) {
	c, emitted := newTestController()
	var moved []valueobjects.Position
	c.callbacks.OnNodeMove = func(_ string, p valueobjects.Position) {
		moved = append(moved, p)
	}

	c.PointerDown(NodeTarget("a"), primaryDown(0, 0))
	c.PointerMove(primaryDown(30, 10))
	c.PointerUp(Background(), primaryDown(30, 10))

	require.Len(t, moved, 1)
	assert.Equal(t, valueobjects.NewPosition(130, 110), moved[0])
	assert.Equal(t, events.TypeNodeMoved, lastEvent(t, emitted).GetEventType())
	assert.False(t, c.drag.Dragging())
}

func TestBackgroundDragPansViewport(t *testing.T) {
	c, _ := newTestController()

	c.PointerDown(Background(), primaryDown(100, 100))
	c.PointerMove(primaryDown(130, 80))
	c.PointerUp(Background(), primaryDown(130, 80))

	transform := c.Graph().Viewport.Transform
	assert.InDelta(t, 30.0, transform.X, 1e-9)
	assert.InDelta(t, -20.0, transform.Y, 1e-9)
}

func TestGesturesAreMutuallyExclusive(t *testing.T) {
	c, _ := newTestController()

	c.PointerDown(Background(), primaryDown(0, 0))
	// A node press while panning must not start a drag.
	c.PointerDown(NodeTarget("a"), primaryDown(0, 0))

	assert.False(t, c.drag.Dragging())
	assert.False(t, c.Graph().Node("a").Selected)
}

func TestHandleDragCreatesEdgeOnOppositeHandle(t *testing.T) {
	c, emitted := newTestController()
	var created [][2]string
	c.callbacks.OnEdgeCreate = func(source, target string) {
		created = append(created, [2]string{source, target})
	}

	c.PointerDown(HandleTarget("a", false), primaryDown(180, 150))
	c.PointerMove(primaryDown(400, 280))
	c.PointerUp(HandleTarget("b", true), primaryDown(480, 300))

	require.Len(t, created, 1)
	assert.Equal(t, [2]string{"a", "b"}, created[0])
	assert.Equal(t, events.TypeEdgeCreated, lastEvent(t, emitted).GetEventType())
	assert.False(t, c.connection.Connecting())
}

func TestConnectionAbortsOnMatchingHandleKind(t *testing.T) {
	c, _ := newTestController()
	c.callbacks.OnEdgeCreate = func(string, string) {
		t.Fatal("no edge expected")
	}

	c.PointerDown(HandleTarget("a", false), primaryDown(180, 150))
	c.PointerUp(HandleTarget("b", false), primaryDown(480, 350))

	assert.False(t, c.connection.Connecting())
}

func TestConnectionAbortsOnBackgroundDrop(t *testing.T) {
	c, _ := newTestController()

	c.PointerDown(HandleTarget("a", false), primaryDown(180, 150))
	c.PointerUp(Background(), primaryDown(500, 500))

	assert.False(t, c.connection.Connecting())
	assert.Equal(t, 0, c.Graph().EdgeCount())
}

func TestPointerLeaveAbortsActiveGesture(t *testing.T) {
	c, _ := newTestController()

	c.PointerDown(HandleTarget("a", true), primaryDown(180, 100))
	c.PointerLeave()

	assert.False(t, c.connection.Connecting())

	c.PointerDown(NodeTarget("a"), primaryDown(0, 0))
	c.PointerLeave()
	assert.False(t, c.drag.Dragging())
}

func TestEdgePressSelectsEdge(t *testing.T) {
	c, emitted := newTestController()
	c.Graph().AddEdge(entities.NewEdge[string]("e1", "a", "b"))

	c.PointerDown(EdgeTarget("e1"), primaryDown(0, 0))

	assert.True(t, c.Graph().Edge("e1").Selected)
	assert.Equal(t, events.TypeEdgeSelected, lastEvent(t, emitted).GetEventType())
}

func TestWheelZoomsTowardCursor(t *testing.T) {
	c, _ := newTestController()

	c.Wheel(WheelEvent{Delta: 0.5, Position: valueobjects.NewPosition(400, 300)})

	assert.InDelta(t, 1.5, c.Graph().Viewport.Transform.Zoom, 1e-9)
}

func TestEscapeCancelsConnectionBeforeClearingSelection(t *testing.T) {
	c, emitted := newTestController()
	c.Graph().SelectNode("a", false)

	c.PointerDown(HandleTarget("a", false), primaryDown(180, 150))
	c.KeyDown(KeyEvent{Key: services.KeyEscape})

	assert.False(t, c.connection.Connecting())
	assert.True(t, c.Graph().Node("a").Selected)

	c.KeyDown(KeyEvent{Key: services.KeyEscape})
	assert.False(t, c.Graph().Node("a").Selected)
	assert.Equal(t, events.TypeSelectionCleared, lastEvent(t, emitted).GetEventType())
}

func TestEnterAndDeleteEmitSignalsForSelection(t *testing.T) {
	c, emitted := newTestController()

	// Without a selection the keys are inert.
	c.KeyDown(KeyEvent{Key: services.KeyEnter})
	c.KeyDown(KeyEvent{Key: services.KeyDelete})
	assert.Empty(t, *emitted)

	c.Graph().SelectNode("a", false)
	c.KeyDown(KeyEvent{Key: services.KeyEnter})
	assert.Equal(t, events.TypeEditRequested, lastEvent(t, emitted).GetEventType())

	c.KeyDown(KeyEvent{Key: services.KeyBackspace})
	event := lastEvent(t, emitted).(events.DeleteRequested)
	assert.Equal(t, "a", event.NodeID)

	// Deletion is a signal to the host, not a direct mutation.
	assert.Equal(t, 2, c.Graph().NodeCount())
}

func TestArrowNavigationSelectsAndCentersNode(t *testing.T) {
	c, _ := newTestController()
	c.Graph().SelectNode("a", false)

	c.KeyDown(KeyEvent{Key: services.KeyArrowDown})

	selected, ok := c.Graph().SelectedNode()
	require.True(t, ok)
	assert.Equal(t, "b", selected)

	// Viewport recentered on node b's position at (400,300) on an 800x600
	// canvas at zoom 1.
	transform := c.Graph().Viewport.Transform
	assert.InDelta(t, 0.0, transform.X, 1e-9)
	assert.InDelta(t, 0.0, transform.Y, 1e-9)
}

func TestMinimapPointerEmitsViewportTranslation(t *testing.T) {
	c, emitted := newTestController()
	var translated []valueobjects.Position
	c.callbacks.OnViewportChange = func(p valueobjects.Position) {
		translated = append(translated, p)
	}

	c.MinimapPointer(valueobjects.NewPosition(100, 75), valueobjects.NewDimensions(200, 150))

	require.Len(t, translated, 1)
	assert.Equal(t, events.TypeViewportChanged, lastEvent(t, emitted).GetEventType())

	event := lastEvent(t, emitted).(events.ViewportChanged)
	assert.Equal(t, translated[0], event.Translation)
}

func TestContextMenuSuppressed(t *testing.T) {
	c, _ := newTestController()
	assert.False(t, c.ContextMenu())
}

func TestFrameExposesRenderGeometry(t *testing.T) {
	c, _ := newTestController()
	c.Graph().AddEdge(entities.NewEdge[string]("e1", "a", "b"))
	c.Graph().AddEdge(entities.NewEdge[string]("dangling", "a", "missing"))

	frame := c.Frame(valueobjects.NewDimensions(200, 150))

	require.Len(t, frame.Nodes, 2)
	assert.Equal(t, valueobjects.NewPosition(100, 100), frame.Nodes[0].ScreenRect.Position)
	assert.Equal(t, valueobjects.NewPosition(180, 100), frame.Nodes[0].TopHandle)

	require.Len(t, frame.Edges, 1)
	assert.Equal(t, "e1", frame.Edges[0].ID)
	assert.Contains(t, frame.Edges[0].Path, "M 180 150 C ")
	assert.Nil(t, frame.Connection)
	assert.Nil(t, frame.Minimap)
}

func TestFrameIncludesConnectionPreview(t *testing.T) {
	c, _ := newTestController()

	c.PointerDown(HandleTarget("a", false), primaryDown(180, 150))
	c.PointerMove(primaryDown(300, 260))

	frame := c.Frame(valueobjects.NewDimensions(200, 150))
	require.NotNil(t, frame.Connection)
	assert.Equal(t, "a", frame.Connection.SourceNode)
	assert.Contains(t, frame.Connection.Path, "M 180 150 C ")
}
