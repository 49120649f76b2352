package overlay

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soundmark/soundmark/backend-go/internal/segment"
)

func TestReconcileCreatesVisualsForVisibleSegments(t *testing.T) {
	env := newTestEnv(t,
		editable("seg1", 2, 5),
		editable("seg2", 8.5, 9.5),
		editable("seg3", 30, 45), // outside the [0,10] window
	)

	assert.Equal(t, 2, env.layer.VisibleCount())
	assert.NotNil(t, env.layer.Visual("seg1"))
	assert.NotNil(t, env.layer.Visual("seg2"))
	assert.Nil(t, env.layer.Visual("seg3"))
}

func TestReconcileDestroysStaleVisuals(t *testing.T) {
	env := newTestEnv(t, editable("seg1", 2, 5))
	require.Equal(t, 1, env.layer.VisibleCount())

	// Scroll far away: the visual leaves the window and is destroyed.
	env.view.SetFrameOffset(5000)
	env.refresh()

	assert.Equal(t, 0, env.layer.VisibleCount())
	// Highlight, two handle rects, two labels.
	assert.Equal(t, 5, env.surface.destroyedCount())
}

func TestSegmentRemovedWhileRegistered(t *testing.T) {
	env := newTestEnv(t, editable("seg1", 2, 5))

	env.store.Remove("seg1")
	env.layer.SegmentRemoved("seg1")

	assert.Nil(t, env.layer.Visual("seg1"))
	assert.Equal(t, 5, env.surface.destroyedCount())

	// A second removal and a reconcile against an empty visible list are
	// both idempotent: no duplicate destroys.
	env.layer.SegmentRemoved("seg1")
	env.refresh()
	assert.Equal(t, 5, env.surface.destroyedCount())
	assert.Equal(t, 0, env.layer.VisibleCount())
}

func TestRefreshSkipsRedrawWhenNothingChanged(t *testing.T) {
	env := newTestEnv(t, editable("seg1", 2, 5))
	draws := env.surface.draws

	// Same window, same store: zero reconcile changes, redraw skipped.
	env.refresh()
	assert.Equal(t, draws, env.surface.draws)

	// Scrolling warrants a redraw even with zero reconcile changes.
	env.view.SetFrameOffset(10)
	env.refresh()
	assert.Equal(t, draws+1, env.surface.draws)
}

func TestRefreshRedrawsOnZoomAndResize(t *testing.T) {
	env := newTestEnv(t, editable("seg1", 2, 5))
	draws := env.surface.draws

	hl := highlightOf(env, env.layer.Visual("seg1"))
	require.Equal(t, 200.0, hl.x)

	// Zoom with the same single segment visible: the mapping changed, so
	// the pass must flush even though reconcile reports zero changes.
	require.NoError(t, env.view.SetScale(500))
	env.refresh()
	assert.Equal(t, draws+1, env.surface.draws)
	assert.Equal(t, 176.0, hl.x) // floor(2 * 44100 / 500)

	// A height-only resize must flush too.
	require.NoError(t, env.view.Resize(1000, 150))
	env.refresh()
	assert.Equal(t, draws+2, env.surface.draws)
	assert.Equal(t, 150.0, hl.height)
}

func TestLazyVisualCreationOnUpdate(t *testing.T) {
	env := newTestEnv(t)

	// A segment edited elsewhere arrives by update event without ever
	// having been reconciled into view.
	seg := editable("late", 3, 4)
	require.NoError(t, env.store.Add(seg))
	env.layer.SegmentUpdated(seg)

	require.NotNil(t, env.layer.Visual("late"))

	// Same segment again: the existing visual is reused.
	v := env.layer.Visual("late")
	env.layer.SegmentUpdated(seg)
	assert.Same(t, v, env.layer.Visual("late"))
}

func TestDestroyReleasesEverything(t *testing.T) {
	env := newTestEnv(t, editable("a", 1, 2), editable("b", 3, 4))
	require.Equal(t, 2, env.layer.VisibleCount())

	env.layer.Destroy()
	assert.Equal(t, 0, env.layer.VisibleCount())
	assert.Equal(t, 10, env.surface.destroyedCount())
}

func TestStoreFindOrdering(t *testing.T) {
	store := segment.NewStore()
	require.NoError(t, store.Add(editable("c", 6, 7)))
	require.NoError(t, store.Add(editable("a", 1, 2)))
	require.NoError(t, store.Add(editable("b", 3, 4)))

	found := store.Find(0, 10)
	require.Len(t, found, 3)
	assert.Equal(t, "a", found[0].ID)
	assert.Equal(t, "b", found[1].ID)
	assert.Equal(t, "c", found[2].ID)

	// Range restriction.
	found = store.Find(2.5, 6.5)
	require.Len(t, found, 2)
	assert.Equal(t, "b", found[0].ID)
	assert.Equal(t, "c", found[1].ID)
}
