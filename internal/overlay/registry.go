package overlay

import (
	"github.com/soundmark/soundmark/backend-go/internal/segment"
)

// registry owns the id → SegmentVisual mapping and is the only owner of
// visual lifetime: visuals are created as their segments enter the
// visible window and destroyed when they leave it or are removed from
// the store.
type registry struct {
	surface Surface
	visuals map[string]*SegmentVisual
}

func newRegistry() *registry {
	return &registry{visuals: make(map[string]*SegmentVisual)}
}

func (r *registry) attach(surface Surface) {
	r.surface = surface
}

// get returns the visual for id, or nil if none is registered.
func (r *registry) get(id string) *SegmentVisual {
	return r.visuals[id]
}

// getOrCreate returns the registered visual for the segment, creating one
// on demand. Creating for an already-registered id returns the existing
// visual; an update event can arrive for a segment edited off-screen and
// only later scrolled into view.
func (r *registry) getOrCreate(seg *segment.Segment) *SegmentVisual {
	if v, ok := r.visuals[seg.ID]; ok {
		return v
	}
	v := newSegmentVisual(seg, r.surface)
	r.visuals[seg.ID] = v
	return v
}

// remove destroys and deregisters the visual for id. Removing an unknown
// id is a no-op.
func (r *registry) remove(id string) bool {
	v, ok := r.visuals[id]
	if !ok {
		return false
	}
	v.destroy()
	delete(r.visuals, id)
	return true
}

// reconcile syncs the registry against the currently visible segments:
// visuals are created for newly visible segments and destroyed for stale
// ones. Returns the number of additions plus removals so the caller can
// skip the redraw when nothing changed.
func (r *registry) reconcile(visible []*segment.Segment) int {
	changed := 0

	seen := make(map[string]bool, len(visible))
	for _, seg := range visible {
		seen[seg.ID] = true
		if _, ok := r.visuals[seg.ID]; !ok {
			r.visuals[seg.ID] = newSegmentVisual(seg, r.surface)
			changed++
		}
	}

	for id := range r.visuals {
		if !seen[id] {
			r.remove(id)
			changed++
		}
	}

	return changed
}

// removeAll destroys every visual. Used on full-reset events.
func (r *registry) removeAll() {
	for id := range r.visuals {
		r.remove(id)
	}
}

func (r *registry) len() int {
	return len(r.visuals)
}
