package overlay

import "math"

// HandleParams are the derived visual parameters for one handle.
type HandleParams struct {
	Opacity      float64
	Fill         string
	LabelVisible bool
}

// RenderParams are the derived visual parameters for one segment visual,
// computed fresh each pass from the interaction flags and the pointer
// snapshot.
type RenderParams struct {
	HighlightOpacity float64
	HighlightFill    string
	Start            HandleParams
	End              HandleParams
}

// computeRenderParams derives the render parameters for a visual. Pure:
// same flags, pointer and config give the same parameters.
//
// falloff disables the proximity effects; the layer turns it off once the
// number of visible segments crosses the configured threshold, since the
// per-pass cost of distance tests scales with segment density.
func computeRenderParams(v *SegmentVisual, p PointerState, edgeDistance float64, cfg Config, falloff bool) RenderParams {
	dragging := v.start.Dragging || v.end.Dragging
	active := dragging || v.MouseOver || v.Touching || v.Segment.Focused

	params := RenderParams{
		HighlightFill:    highlightFill(v, cfg),
		HighlightOpacity: cfg.BaseOpacity,
	}

	switch {
	case active:
		params.HighlightOpacity = cfg.MaxOpacity
	case falloff && p.Valid && edgeDistance < cfg.ActiveRange:
		// Outside the body but near it: ramp from baseline toward max as
		// the pointer approaches an edge.
		t := 1 - edgeDistance/cfg.ActiveRange
		params.HighlightOpacity = cfg.BaseOpacity + (cfg.MaxOpacity-cfg.BaseOpacity)*t
	}

	params.Start = handleParams(v, v.start, p, cfg, falloff)
	params.End = handleParams(v, v.end, p, cfg, falloff)
	return params
}

func handleParams(v *SegmentVisual, h *Handle, p PointerState, cfg Config, falloff bool) HandleParams {
	params := HandleParams{
		Fill:         cfg.HandleColor,
		LabelVisible: h.MouseOver || h.Dragging,
	}
	if h.MouseOver || h.Dragging {
		params.Fill = cfg.HandleHoverColor
	}

	sibling := v.start
	if h.Role == HandleStart {
		sibling = v.end
	}

	switch {
	case h.Dragging:
		params.Opacity = 1
	case sibling.Dragging:
		// Keep the resting handle readable at a fixed mid-opacity while
		// its sibling moves.
		params.Opacity = cfg.HandleDragOpacity
	case !falloff:
		if v.MouseOver {
			params.Opacity = 1
		}
	case p.Valid:
		dist := math.Abs(p.X - v.edge(h.Role))
		if dist < cfg.ActiveRange {
			params.Opacity = 1 - dist/cfg.ActiveRange
		}
	}

	return params
}

// highlightFill picks the fill color by precedence:
// focused > touching > hovered > rest. A segment-specific color, when
// set, replaces the rest color only.
func highlightFill(v *SegmentVisual, cfg Config) string {
	dragging := v.start.Dragging || v.end.Dragging
	switch {
	case v.Segment.Focused:
		return cfg.FocusColor
	case v.Touching:
		return cfg.TouchColor
	case v.MouseOver || dragging:
		return cfg.HoverColor
	case v.Segment.Color != "":
		return v.Segment.Color
	default:
		return cfg.RestColor
	}
}
