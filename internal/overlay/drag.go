package overlay

// dragState is the per-gesture state captured when a handle engages.
// Neighbors are captured once, at engage time, from the segments visible
// in the window; the gesture resolves against that snapshot rather than
// re-querying on every move.
type dragState struct {
	visual *SegmentVisual
	handle *Handle
	left   *SegmentVisual
	right  *SegmentVisual
}

// beginDrag engages a handle: rest → engaged. Captures the neighbor
// visuals and the anchor offset between the pointer and the edge so the
// drag moves the edge relative to where it was grabbed.
func (l *Layer) beginDrag(v *SegmentVisual, h *Handle, p PointerState) {
	h.Dragging = true
	h.anchor = p.X - v.edge(h.Role)

	d := &dragState{visual: v, handle: h}
	d.left, d.right = l.captureNeighbors(v)
	l.drag = d

	l.log.Debug("drag engaged",
		"segment", v.Segment.ID,
		"handle", h.Role.String(),
		"anchor", h.anchor)
}

// captureNeighbors finds the visuals adjacent to v among the segments
// intersecting the visible window. The range query can return the dragged
// segment itself at the window edges; it is filtered out before use.
func (l *Layer) captureNeighbors(v *SegmentVisual) (left, right *SegmentVisual) {
	visible := l.store.Find(l.windowStart(), l.windowEnd())

	for _, seg := range visible {
		if seg.ID == v.Segment.ID {
			continue
		}
		if seg.StartTime < v.Segment.StartTime {
			if left == nil || seg.StartTime > left.Segment.StartTime {
				left = l.registry.getOrCreate(seg)
			}
		} else {
			if right == nil || seg.StartTime < right.Segment.StartTime {
				right = l.registry.getOrCreate(seg)
			}
		}
	}
	return left, right
}

// updateDrag computes the candidate boundary time for the current pointer
// position, clamps it, and commits it to the store when it differs from
// the current value. Returns true when a boundary changed.
//
// Clamp order is fixed: the minimum-duration invariant relative to the
// opposite edge first, then the zero bound for the start handle, then the
// captured neighbor's facing boundary.
func (l *Layer) updateDrag(p PointerState) bool {
	d := l.drag
	if d == nil {
		return false
	}

	v, h := d.visual, d.handle
	edgePixel := l.view.FrameOffset() + int(p.X-h.anchor)
	candidate := l.view.PixelToTime(edgePixel)

	if h.Role == HandleStart {
		if limit := v.Segment.EndTime - l.cfg.MinSegmentDuration; candidate > limit {
			candidate = limit
		}
		if candidate < 0 {
			candidate = 0
		}
		if d.left != nil && candidate <= d.left.Segment.EndTime {
			candidate = d.left.Segment.EndTime
			d.left.Touching = true
		}
		if candidate == v.Segment.StartTime {
			return false
		}
		if err := l.store.UpdateTimes(v.Segment.ID, candidate, v.Segment.EndTime); err != nil {
			l.log.Warn("drag commit rejected", "segment", v.Segment.ID, "error", err)
			return false
		}
	} else {
		if limit := v.Segment.StartTime + l.cfg.MinSegmentDuration; candidate < limit {
			candidate = limit
		}
		if d.right != nil && candidate >= d.right.Segment.StartTime {
			candidate = d.right.Segment.StartTime
			d.right.Touching = true
		}
		if candidate == v.Segment.EndTime {
			return false
		}
		if err := l.store.UpdateTimes(v.Segment.ID, v.Segment.StartTime, candidate); err != nil {
			l.log.Warn("drag commit rejected", "segment", v.Segment.ID, "error", err)
			return false
		}
	}

	l.emitter.emit(Event{
		Type:          EventSegmentDragged,
		Visual:        v,
		IsStartHandle: h.Role == HandleStart,
	})
	return true
}

// endDrag returns the gesture to rest: clears the dragging flag on both
// handles and any touching marks on the captured neighbors. The caller
// forces one final render and redraw.
func (l *Layer) endDrag() {
	d := l.drag
	if d == nil {
		return
	}
	l.drag = nil

	d.visual.start.Dragging = false
	d.visual.end.Dragging = false
	if d.left != nil {
		d.left.Touching = false
	}
	if d.right != nil {
		d.right.Touching = false
	}

	l.log.Debug("drag released", "segment", d.visual.Segment.ID, "handle", d.handle.Role.String())
}
