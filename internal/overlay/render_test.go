package overlay

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soundmark/soundmark/backend-go/internal/segment"
)

func TestHighlightFillPrecedence(t *testing.T) {
	cfg := DefaultConfig()
	surface := &fakeSurface{}

	mk := func(focused, touching, hovered bool) *SegmentVisual {
		v := newSegmentVisual(&segment.Segment{ID: "s", StartTime: 0, EndTime: 1, Focused: focused}, surface)
		v.Touching = touching
		v.MouseOver = hovered
		return v
	}

	tests := []struct {
		name   string
		visual *SegmentVisual
		want   string
	}{
		{"rest", mk(false, false, false), cfg.RestColor},
		{"hovered", mk(false, false, true), cfg.HoverColor},
		{"touching beats hovered", mk(false, true, true), cfg.TouchColor},
		{"focused beats touching", mk(true, true, true), cfg.FocusColor},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := computeRenderParams(tt.visual, NoPointer(), 0, cfg, true)
			assert.Equal(t, tt.want, params.HighlightFill)
		})
	}
}

func TestSegmentColorReplacesRestOnly(t *testing.T) {
	cfg := DefaultConfig()
	surface := &fakeSurface{}
	v := newSegmentVisual(&segment.Segment{ID: "s", StartTime: 0, EndTime: 1, Color: "#123456"}, surface)

	params := computeRenderParams(v, NoPointer(), 0, cfg, true)
	assert.Equal(t, "#123456", params.HighlightFill)

	v.MouseOver = true
	params = computeRenderParams(v, NoPointer(), 0, cfg, true)
	assert.Equal(t, cfg.HoverColor, params.HighlightFill)
}

func TestHighlightOpacityBaselineAndMax(t *testing.T) {
	cfg := DefaultConfig()
	surface := &fakeSurface{}
	v := newSegmentVisual(&segment.Segment{ID: "s", StartTime: 0, EndTime: 1}, surface)

	params := computeRenderParams(v, NoPointer(), 1e9, cfg, true)
	assert.Equal(t, cfg.BaseOpacity, params.HighlightOpacity)

	v.MouseOver = true
	params = computeRenderParams(v, PointerState{X: 10, Valid: true, InView: true}, 0, cfg, true)
	assert.Equal(t, cfg.MaxOpacity, params.HighlightOpacity)
}

func TestHighlightProximityRamp(t *testing.T) {
	cfg := DefaultConfig()
	surface := &fakeSurface{}
	v := newSegmentVisual(&segment.Segment{ID: "s", StartTime: 0, EndTime: 1}, surface)
	p := PointerState{X: 10, Y: 10, Valid: true, InView: true}

	// Halfway into the active range the opacity sits halfway between
	// baseline and max.
	params := computeRenderParams(v, p, cfg.ActiveRange/2, cfg, true)
	want := cfg.BaseOpacity + (cfg.MaxOpacity-cfg.BaseOpacity)/2
	assert.InDelta(t, want, params.HighlightOpacity, 1e-9)

	// Outside the active range: baseline.
	params = computeRenderParams(v, p, cfg.ActiveRange+1, cfg, true)
	assert.Equal(t, cfg.BaseOpacity, params.HighlightOpacity)

	// Falloff disabled: baseline regardless of distance.
	params = computeRenderParams(v, p, 1, cfg, false)
	assert.Equal(t, cfg.BaseOpacity, params.HighlightOpacity)
}

func TestHandleOpacityFalloff(t *testing.T) {
	cfg := DefaultConfig()
	surface := &fakeSurface{}
	v := newSegmentVisual(&segment.Segment{ID: "s", StartTime: 0, EndTime: 1}, surface)
	v.left, v.right = 100, 300

	// Pointer 30px from the start edge inside the active range.
	p := PointerState{X: 130, Y: 50, Valid: true, InView: true}
	params := computeRenderParams(v, p, 0, cfg, true)
	assert.InDelta(t, 1-30/cfg.ActiveRange, params.Start.Opacity, 1e-9)

	// Beyond the active range the handle is fully transparent.
	p.X = 100 + cfg.ActiveRange + 50
	params = computeRenderParams(v, p, 0, cfg, true)
	assert.Equal(t, 0.0, params.Start.Opacity)
}

func TestHandleOpacityWhileDragging(t *testing.T) {
	cfg := DefaultConfig()
	surface := &fakeSurface{}
	v := newSegmentVisual(&segment.Segment{ID: "s", StartTime: 0, EndTime: 1}, surface)
	v.start.Dragging = true

	params := computeRenderParams(v, NoPointer(), 0, cfg, true)
	assert.Equal(t, 1.0, params.Start.Opacity)
	// The resting sibling keeps a fixed mid-opacity.
	assert.Equal(t, cfg.HandleDragOpacity, params.End.Opacity)
}

func TestLabelVisibleOnlyForOwnHandle(t *testing.T) {
	cfg := DefaultConfig()
	surface := &fakeSurface{}
	v := newSegmentVisual(&segment.Segment{ID: "s", StartTime: 0, EndTime: 1}, surface)

	params := computeRenderParams(v, NoPointer(), 0, cfg, true)
	assert.False(t, params.Start.LabelVisible)
	assert.False(t, params.End.LabelVisible)

	v.end.MouseOver = true
	params = computeRenderParams(v, NoPointer(), 0, cfg, true)
	assert.False(t, params.Start.LabelVisible)
	assert.True(t, params.End.LabelVisible)

	v.end.MouseOver = false
	v.end.Dragging = true
	params = computeRenderParams(v, NoPointer(), 0, cfg, true)
	assert.True(t, params.End.LabelVisible)
}

func TestFalloffSkippedAboveSegmentThreshold(t *testing.T) {
	// 31 visible segments crosses the default threshold of 30.
	var segs []*segment.Segment
	for i := 0; i < 31; i++ {
		start := float64(i) * 0.3
		segs = append(segs, editable(fmt.Sprintf("seg%02d", i), start, start+0.25))
	}
	env := newTestEnv(t, segs...)
	require.Equal(t, 31, env.layer.VisibleCount())

	// Pointer near seg00's start edge but outside its body: with falloff
	// skipped the highlight stays at baseline and the handle at zero.
	env.layer.MouseEnter(26, 50)
	v := env.layer.Visual("seg01") // body (30, 55], pointer is 4px left of it
	require.False(t, v.MouseOver)

	hl := highlightOf(env, v)
	assert.Equal(t, DefaultConfig().BaseOpacity, hl.opacity)
}

func highlightOf(env *testEnv, v *SegmentVisual) *fakeDrawable {
	return v.highlight.(*fakeDrawable)
}

func TestFormatTime(t *testing.T) {
	assert.Equal(t, "0:02.050", formatTime(2.05))
	assert.Equal(t, "1:01.500", formatTime(61.5))
	assert.Equal(t, "0:00.000", formatTime(-3))
}
