package overlay

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/soundmark/soundmark/backend-go/internal/segment"
)

// fakeDrawable records every mutation so tests can assert on the applied
// render parameters.
type fakeDrawable struct {
	x, y          float64
	width, height float64
	fill          string
	opacity       float64
	visible       bool
	text          string
	destroyed     bool
}

func (d *fakeDrawable) SetPosition(x, y float64)          { d.x, d.y = x, y }
func (d *fakeDrawable) SetSize(width, height float64)     { d.width, d.height = width, height }
func (d *fakeDrawable) SetFill(color string)              { d.fill = color }
func (d *fakeDrawable) SetOpacity(opacity float64)        { d.opacity = opacity }
func (d *fakeDrawable) SetVisible(visible bool)           { d.visible = visible }
func (d *fakeDrawable) SetText(text string)               { d.text = text }
func (d *fakeDrawable) Destroy()                          { d.destroyed = true }

type fakeSurface struct {
	drawables []*fakeDrawable
	draws     int
}

func (s *fakeSurface) CreateRect() Drawable {
	d := &fakeDrawable{visible: true, opacity: 1}
	s.drawables = append(s.drawables, d)
	return d
}

func (s *fakeSurface) CreateText() TextDrawable {
	d := &fakeDrawable{visible: true, opacity: 1}
	s.drawables = append(s.drawables, d)
	return d
}

func (s *fakeSurface) Draw() { s.draws++ }

func (s *fakeSurface) destroyedCount() int {
	n := 0
	for _, d := range s.drawables {
		if d.destroyed {
			n++
		}
	}
	return n
}

// testEnv wires a layer over a 10-second window at 100 pixels per second:
// sampleRate 44100, scale 441, width 1000, height 100.
type testEnv struct {
	view    *View
	store   *segment.Store
	layer   *Layer
	surface *fakeSurface
	events  []Event
}

func newTestEnv(t *testing.T, segments ...*segment.Segment) *testEnv {
	t.Helper()

	view, err := NewView(44100, 441, 1000, 100)
	require.NoError(t, err)

	store := segment.NewStore()
	for _, seg := range segments {
		require.NoError(t, store.Add(seg))
	}

	env := &testEnv{view: view, store: store, surface: &fakeSurface{}}
	env.layer = NewLayer(view, store, Config{}, nil)

	for _, typ := range []string{
		EventSegmentMouseEnter, EventSegmentMouseLeave,
		EventHandleMouseEnter, EventHandleMouseLeave,
		EventSegmentDragged, EventViewMouseDown, EventViewMouseUp,
	} {
		typ := typ
		env.layer.On(typ, func(ev Event) { env.events = append(env.events, ev) })
	}

	env.layer.AddToSurface(env.surface)
	return env
}

func (env *testEnv) eventsOfType(typ string) []Event {
	var out []Event
	for _, ev := range env.events {
		if ev.Type == typ {
			out = append(out, ev)
		}
	}
	return out
}

func (env *testEnv) refresh() {
	env.layer.Refresh(env.view.StartTime(), env.view.EndTime())
}

func editable(id string, start, end float64) *segment.Segment {
	return &segment.Segment{ID: id, StartTime: start, EndTime: end, Editable: true}
}
