package overlay

import "math"

// hoverResult is one pass of hit-testing a visual against the pointer.
type hoverResult struct {
	body  bool
	start bool
	end   bool

	// edgeDistance is the pixel distance from the pointer to the nearer
	// highlight edge when the pointer is outside the body, 0 when inside.
	// Feeds the proximity falloff in the render parameter computer.
	edgeDistance float64
}

func (res hoverResult) handle(role HandleRole) bool {
	if role == HandleStart {
		return res.start
	}
	return res.end
}

// resolveHover hit-tests a visual against the pointer snapshot. It uses
// the pixel geometry computed earlier in the same pass. Body hover gates
// handle hover: a handle cannot be hovered while the body is not.
func (l *Layer) resolveHover(v *SegmentVisual, p PointerState) hoverResult {
	var res hoverResult

	left, right := float64(v.left), float64(v.right)
	res.body = p.InView && p.Valid && p.X > left && p.X <= right

	switch {
	case !p.Valid:
		res.edgeDistance = math.Inf(1)
	case p.X <= left:
		res.edgeDistance = left - p.X
	case p.X > right:
		res.edgeDistance = p.X - right
	}

	if !res.body {
		return res
	}

	res.start = l.handleHit(v, HandleStart, p)
	res.end = l.handleHit(v, HandleEnd, p)
	return res
}

// handleHit reports whether the pointer is within a handle's pixel
// footprint or the edge tolerance band, and within its vertical extent.
func (l *Layer) handleHit(v *SegmentVisual, role HandleRole, p PointerState) bool {
	edge := v.edge(role)
	reach := l.cfg.HandleWidth / 2
	if l.cfg.EdgeTolerance > reach {
		reach = l.cfg.EdgeTolerance
	}
	if math.Abs(p.X-edge) > reach {
		return false
	}

	top := (float64(l.view.Height()) - l.cfg.HandleHeight) / 2
	return p.Y >= top && p.Y <= top+l.cfg.HandleHeight
}

// applyHover installs a hover result on the visual and emits the
// edge-triggered transitions. Steady state emits nothing: only a
// false→true or true→false change on the body or a handle fires an
// event, exactly once per transition.
func (l *Layer) applyHover(v *SegmentVisual, res hoverResult) {
	if res.body != v.MouseOver {
		v.MouseOver = res.body
		if res.body {
			l.emitter.emit(Event{Type: EventSegmentMouseEnter, Visual: v})
		} else {
			l.emitter.emit(Event{Type: EventSegmentMouseLeave, Visual: v})
		}
	}

	for _, role := range []HandleRole{HandleStart, HandleEnd} {
		h := v.Handle(role)
		hovered := res.handle(role)
		if hovered == h.MouseOver {
			continue
		}
		h.MouseOver = hovered
		if hovered {
			l.emitter.emit(Event{Type: EventHandleMouseEnter, Visual: v, IsStartHandle: role == HandleStart})
		} else {
			l.emitter.emit(Event{Type: EventHandleMouseLeave, Visual: v, IsStartHandle: role == HandleStart})
		}
	}
}
