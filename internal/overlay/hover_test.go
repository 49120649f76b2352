package overlay

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The test window maps time to pixels at 100 px/s, so segment [2,5]
// spans pixels (200, 500].

func TestBodyHoverEdgeTriggered(t *testing.T) {
	env := newTestEnv(t, editable("seg1", 2, 5))

	env.layer.MouseEnter(350, 50)
	enters := env.eventsOfType(EventSegmentMouseEnter)
	require.Len(t, enters, 1)
	assert.Equal(t, "seg1", enters[0].Visual.Segment.ID)

	// Steady state: the same position over consecutive passes fires
	// nothing more.
	env.layer.MouseMove(350, 50)
	env.layer.MouseMove(350, 50)
	assert.Len(t, env.eventsOfType(EventSegmentMouseEnter), 1)
	assert.Empty(t, env.eventsOfType(EventSegmentMouseLeave))

	// Moving off the body fires exactly one leave.
	env.layer.MouseMove(600, 50)
	assert.Len(t, env.eventsOfType(EventSegmentMouseLeave), 1)

	// And pointer-leave after that fires nothing extra.
	env.layer.MouseLeave()
	assert.Len(t, env.eventsOfType(EventSegmentMouseLeave), 1)
}

func TestBodyHoverBounds(t *testing.T) {
	env := newTestEnv(t, editable("seg1", 2, 5))

	tests := []struct {
		name string
		x    float64
		over bool
	}{
		{"left of segment", 150, false},
		{"exactly on left edge", 200, false}, // strict: x > left
		{"just inside left", 201, true},
		{"middle", 350, true},
		{"on right edge", 500, true}, // inclusive: x <= right
		{"past right edge", 501, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env.layer.MouseEnter(tt.x, 50)
			assert.Equal(t, tt.over, env.layer.Visual("seg1").MouseOver)
			env.layer.MouseLeave()
		})
	}
}

func TestHoverClearedAfterPointerLeave(t *testing.T) {
	env := newTestEnv(t, editable("seg1", 2, 5))

	env.layer.MouseEnter(350, 50)
	require.True(t, env.layer.Visual("seg1").MouseOver)

	// After leave the stale position must not read as hovering.
	env.layer.MouseLeave()
	assert.False(t, env.layer.Visual("seg1").MouseOver)

	// A refresh pass without new pointer input keeps it cleared.
	env.view.SetFrameOffset(1)
	env.refresh()
	assert.False(t, env.layer.Visual("seg1").MouseOver)
}

func TestStartHandleHoverScenario(t *testing.T) {
	env := newTestEnv(t, editable("seg1", 2, 5))

	// Pointer at t=2.05 (pixel 205), inside the start handle footprint,
	// vertically centered.
	env.layer.MouseEnter(205, 50)

	v := env.layer.Visual("seg1")
	assert.True(t, v.Handle(HandleStart).MouseOver)
	assert.False(t, v.Handle(HandleEnd).MouseOver)

	enters := env.eventsOfType(EventHandleMouseEnter)
	require.Len(t, enters, 1)
	assert.True(t, enters[0].IsStartHandle)

	// Highlight opacity rises from baseline toward max while hovered.
	hl := env.surface.drawables[0]
	assert.Equal(t, DefaultConfig().MaxOpacity, hl.opacity)
}

func TestHandleHoverGatedByBodyHover(t *testing.T) {
	env := newTestEnv(t, editable("seg1", 2, 5))

	// Pixel 199 is within the start edge tolerance but outside the body
	// (x <= left): no hover of any kind.
	env.layer.MouseEnter(199, 50)
	v := env.layer.Visual("seg1")
	assert.False(t, v.MouseOver)
	assert.False(t, v.Handle(HandleStart).MouseOver)
	assert.Empty(t, env.eventsOfType(EventHandleMouseEnter))
}

func TestHandleHoverVerticalExtent(t *testing.T) {
	env := newTestEnv(t, editable("seg1", 2, 5))

	// Height 100, handle height 20: the handle spans y in [40, 60].
	env.layer.MouseEnter(205, 10)
	v := env.layer.Visual("seg1")
	assert.True(t, v.MouseOver)
	assert.False(t, v.Handle(HandleStart).MouseOver)

	env.layer.MouseMove(205, 45)
	assert.True(t, v.Handle(HandleStart).MouseOver)

	env.layer.MouseMove(205, 75)
	assert.False(t, v.Handle(HandleStart).MouseOver)

	// One enter and one leave in total.
	assert.Len(t, env.eventsOfType(EventHandleMouseEnter), 1)
	assert.Len(t, env.eventsOfType(EventHandleMouseLeave), 1)
}

func TestEndHandleToleranceBand(t *testing.T) {
	env := newTestEnv(t, editable("seg1", 2, 5))

	// End edge at pixel 500; the footprint reaches 5px either side, the
	// tolerance band 3px. 497 is inside, 494 is not.
	env.layer.MouseEnter(497, 50)
	v := env.layer.Visual("seg1")
	assert.True(t, v.Handle(HandleEnd).MouseOver)

	env.layer.MouseMove(494, 50)
	assert.False(t, v.Handle(HandleEnd).MouseOver)
}
