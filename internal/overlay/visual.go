package overlay

import (
	"fmt"

	"github.com/soundmark/soundmark/backend-go/internal/segment"
)

// HandleRole tags a boundary handle as the start or end edge of its
// segment. Behavior that varies per role (which boundary a drag moves,
// which neighbor constrains it) branches on the role; the two handles
// share one implementation.
type HandleRole int

const (
	HandleStart HandleRole = iota
	HandleEnd
)

func (r HandleRole) String() string {
	if r == HandleStart {
		return "start"
	}
	return "end"
}

// Handle is the draggable affordance at one segment boundary.
type Handle struct {
	Role HandleRole

	rect  Drawable
	label TextDrawable

	// Transient interaction state, recomputed or cleared by the hover and
	// drag resolvers.
	MouseOver bool
	Dragging  bool

	// anchor is the pixel offset between the pointer and the edge at the
	// moment the drag engaged, so dragging moves the edge relative to
	// where it was grabbed rather than snapping it under the pointer.
	anchor float64
}

// SegmentVisual is the ephemeral on-screen representation of one visible
// segment: a highlight region spanning the segment's pixel range plus a
// handle pinned to each edge. It is owned by the registry, rebuilt from
// the Segment and current viewport at any time, and never persisted.
type SegmentVisual struct {
	Segment *segment.Segment

	highlight Drawable
	start     *Handle
	end       *Handle

	// MouseOver is true while the pointer is over the highlight body.
	MouseOver bool

	// Touching is true while a neighboring segment's drag is pinned
	// against this segment's boundary. Drives the warning fill color.
	Touching bool

	// Pixel geometry for the current pass, view-relative.
	left  int
	right int
}

func newSegmentVisual(seg *segment.Segment, surface Surface) *SegmentVisual {
	v := &SegmentVisual{Segment: seg}
	v.highlight = surface.CreateRect()
	v.start = newHandle(HandleStart, surface)
	v.end = newHandle(HandleEnd, surface)
	return v
}

func newHandle(role HandleRole, surface Surface) *Handle {
	h := &Handle{Role: role}
	h.rect = surface.CreateRect()
	h.label = surface.CreateText()
	h.label.SetVisible(false)
	return h
}

// Handle returns the handle for the given role.
func (v *SegmentVisual) Handle(role HandleRole) *Handle {
	if role == HandleStart {
		return v.start
	}
	return v.end
}

// Left and Right return the view-relative pixel bounds computed by the
// latest render pass.
func (v *SegmentVisual) Left() int  { return v.left }
func (v *SegmentVisual) Right() int { return v.right }

// edge returns the view-relative pixel position of the boundary a handle
// is pinned to.
func (v *SegmentVisual) edge(role HandleRole) float64 {
	if role == HandleStart {
		return float64(v.left)
	}
	return float64(v.right)
}

// boundaryTime returns the segment time a handle controls.
func (v *SegmentVisual) boundaryTime(role HandleRole) float64 {
	if role == HandleStart {
		return v.Segment.StartTime
	}
	return v.Segment.EndTime
}

func (v *SegmentVisual) destroy() {
	v.highlight.Destroy()
	v.start.rect.Destroy()
	v.start.label.Destroy()
	v.end.rect.Destroy()
	v.end.label.Destroy()
}

// formatTime renders seconds as m:ss.mmm for the handle labels.
func formatTime(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	mins := int(seconds) / 60
	rest := seconds - float64(mins*60)
	return fmt.Sprintf("%d:%06.3f", mins, rest)
}
