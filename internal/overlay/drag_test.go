package overlay

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soundmark/soundmark/backend-go/internal/segment"
)

func TestDragStartHandleCommits(t *testing.T) {
	env := newTestEnv(t, editable("seg1", 2, 5))

	// Grab the start handle dead on the edge and pull it left to t=1.5.
	env.layer.MouseEnter(200.5, 50)
	env.layer.MouseDown(200.5, 50)
	v := env.layer.Visual("seg1")
	require.True(t, v.Handle(HandleStart).Dragging)

	env.layer.MouseMove(150.5, 50)

	seg, _ := env.store.Get("seg1")
	assert.InDelta(t, 1.5, seg.StartTime, 0.011)
	assert.Equal(t, 5.0, seg.EndTime)

	dragged := env.eventsOfType(EventSegmentDragged)
	require.Len(t, dragged, 1)
	assert.True(t, dragged[0].IsStartHandle)

	env.layer.MouseUp(150.5, 50)
	assert.False(t, v.Handle(HandleStart).Dragging)
}

func TestDragAnchorIsRelative(t *testing.T) {
	env := newTestEnv(t, editable("seg1", 2, 5))

	// Grab the start handle 4px right of the edge. Moving the pointer by
	// 100px moves the edge by 100px, not to the pointer position.
	env.layer.MouseEnter(204, 50)
	env.layer.MouseDown(204, 50)
	env.layer.MouseMove(304, 50)

	seg, _ := env.store.Get("seg1")
	assert.InDelta(t, 3.0, seg.StartTime, 0.011)
}

func TestDragRespectsMinimumDuration(t *testing.T) {
	env := newTestEnv(t, editable("seg1", 2, 5))

	// Push the start handle far past the end boundary.
	env.layer.MouseEnter(201, 51)
	env.layer.MouseDown(201, 51)
	env.layer.MouseMove(900, 51)

	seg, _ := env.store.Get("seg1")
	assert.InDelta(t, 5.0-0.2, seg.StartTime, 1e-9)
	assert.Less(t, seg.StartTime, seg.EndTime)
	assert.GreaterOrEqual(t, seg.Duration(), 0.2)

	// Same from the other side: end handle into the start.
	env.layer.MouseUp(900, 51)
	env.layer.MouseMove(500, 50)
	env.layer.MouseDown(500, 50)
	env.layer.MouseMove(0, 50)

	seg, _ = env.store.Get("seg1")
	assert.InDelta(t, seg.StartTime+0.2, seg.EndTime, 1e-9)
	assert.Less(t, seg.StartTime, seg.EndTime)
}

func TestDragClampsAtLeftNeighborAndMarksTouching(t *testing.T) {
	env := newTestEnv(t,
		editable("left", 1, 3),
		editable("right", 5, 8),
	)

	// Drag right's start handle left until it would overlap left.
	env.layer.MouseEnter(501, 50)
	env.layer.MouseDown(501, 50)
	env.layer.MouseMove(100, 50)

	seg, _ := env.store.Get("right")
	assert.Equal(t, 3.0, seg.StartTime)

	neighbor := env.layer.Visual("left")
	require.True(t, neighbor.Touching)

	// The touching neighbor renders in the warning color.
	env.refresh()
	assert.True(t, neighbor.Touching)

	// Release clears it.
	env.layer.MouseUp(100, 50)
	assert.False(t, neighbor.Touching)
}

func TestDragClampsAtRightNeighbor(t *testing.T) {
	env := newTestEnv(t,
		editable("left", 1, 3),
		editable("right", 5, 8),
	)

	// Drag left's end handle right into the right neighbor.
	env.layer.MouseEnter(300, 50)
	env.layer.MouseDown(300, 50)
	env.layer.MouseMove(700, 50)

	seg, _ := env.store.Get("left")
	assert.Equal(t, 5.0, seg.EndTime)
	assert.True(t, env.layer.Visual("right").Touching)
}

func TestDragExactlyOntoNeighborBoundaryMarksTouching(t *testing.T) {
	env := newTestEnv(t,
		editable("left", 1, 3),
		editable("right", 5, 8),
	)

	// Land right's start handle exactly on left's end boundary. The
	// commit lands at the boundary and the neighbor is still marked.
	env.layer.MouseEnter(501, 50)
	env.layer.MouseDown(501, 50)
	env.layer.MouseMove(301, 50)

	seg, _ := env.store.Get("right")
	assert.Equal(t, 3.0, seg.StartTime)
	assert.True(t, env.layer.Visual("left").Touching)

	// Same from the other side with a fresh pair.
	env = newTestEnv(t,
		editable("left", 1, 3),
		editable("right", 5, 8),
	)
	env.layer.MouseEnter(300, 50)
	env.layer.MouseDown(300, 50)
	env.layer.MouseMove(500, 50)

	seg, _ = env.store.Get("left")
	assert.Equal(t, 5.0, seg.EndTime)
	assert.True(t, env.layer.Visual("right").Touching)
}

func TestDragWithNoNeighborStopsAtZero(t *testing.T) {
	env := newTestEnv(t, editable("seg1", 2, 5))

	// No left neighbor, window starts at t=0: dragging to t=1 commits
	// exactly there.
	env.layer.MouseEnter(201, 50)
	env.layer.MouseDown(201, 50)
	env.layer.MouseMove(101, 50)

	seg, _ := env.store.Get("seg1")
	assert.InDelta(t, 1.0, seg.StartTime, 0.011)

	// And far past the window start it clamps at zero.
	env.layer.MouseMove(-300, 50)
	seg, _ = env.store.Get("seg1")
	assert.Equal(t, 0.0, seg.StartTime)
}

func TestDragCommitsOnlyOnChange(t *testing.T) {
	env := newTestEnv(t, editable("seg1", 2, 5))

	env.layer.MouseEnter(201, 50)
	env.layer.MouseDown(201, 50)
	env.layer.MouseMove(151, 50)
	require.Len(t, env.eventsOfType(EventSegmentDragged), 1)

	// Re-delivering the same position computes the same clamped value:
	// no redundant commit, no duplicate event.
	env.layer.MouseMove(151, 50)
	assert.Len(t, env.eventsOfType(EventSegmentDragged), 1)

	// Holding a clamped position behaves the same way.
	env.layer.MouseMove(-500, 50)
	n := len(env.eventsOfType(EventSegmentDragged))
	env.layer.MouseMove(-600, 50)
	assert.Len(t, env.eventsOfType(EventSegmentDragged), n)
}

func TestGlobalMouseUpEndsDragOffCanvas(t *testing.T) {
	env := newTestEnv(t, editable("seg1", 2, 5))

	env.layer.MouseEnter(201, 50)
	env.layer.MouseDown(201, 50)
	v := env.layer.Visual("seg1")
	require.True(t, v.Handle(HandleStart).Dragging)

	// The pointer leaves the canvas mid-drag; the up arrives globally.
	env.layer.MouseLeave()
	env.layer.MouseUp(-50, -50)

	assert.False(t, v.Handle(HandleStart).Dragging)
	assert.False(t, v.Handle(HandleEnd).Dragging)

	ups := env.eventsOfType(EventViewMouseUp)
	require.Len(t, ups, 1)
	assert.Equal(t, "seg1", ups[0].Visual.Segment.ID)
}

func TestNonEditableSegmentDoesNotDrag(t *testing.T) {
	env := newTestEnv(t, &segment.Segment{ID: "locked", StartTime: 2, EndTime: 5})

	env.layer.MouseEnter(201, 50)
	env.layer.MouseDown(201, 50)

	v := env.layer.Visual("locked")
	assert.False(t, v.Handle(HandleStart).Dragging)

	env.layer.MouseMove(100, 50)
	got, _ := env.store.Get("locked")
	assert.Equal(t, 2.0, got.StartTime)
}

func TestInvariantAfterDragStorm(t *testing.T) {
	env := newTestEnv(t,
		editable("a", 0.5, 2),
		editable("b", 2, 5),
		editable("c", 5.5, 7),
	)

	// A hostile sequence of grabs and shoves in both directions.
	moves := []struct{ down, to float64 }{
		{201, -500}, // b start hard left into a
		{500, 900},  // b end hard right into c
		{201, 980},  // b start hard right past its end
	}
	for _, mv := range moves {
		env.layer.MouseEnter(mv.down, 50)
		env.layer.MouseDown(mv.down, 50)
		env.layer.MouseMove(mv.to, 50)
		env.layer.MouseUp(mv.to, 50)
	}

	for _, id := range []string{"a", "b", "c"} {
		seg, ok := env.store.Get(id)
		require.True(t, ok)
		assert.Less(t, seg.StartTime, seg.EndTime, "segment %s inverted", id)
		assert.GreaterOrEqual(t, seg.Duration(), 0.2, "segment %s under minimum", id)
	}
}
