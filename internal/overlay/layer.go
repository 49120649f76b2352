package overlay

import (
	"log/slog"

	"github.com/soundmark/soundmark/backend-go/internal/segment"
)

// SegmentStore is the read/mutate contract the layer consumes from the
// host's segment collection. Find returns segments intersecting the range
// ordered by start time; UpdateTimes is the drag resolver's commit step
// and must notify the host synchronously.
type SegmentStore interface {
	Find(startTime, endTime float64) []*segment.Segment
	UpdateTimes(id string, startTime, endTime float64) error
}

// AmplitudeScaler is implemented by surfaces that render the waveform
// itself and accept a vertical scale factor. The segments layer does not
// own amplitude scaling; it only forwards it.
type AmplitudeScaler interface {
	SetAmplitudeScale(scale float64)
}

// Layer is the segment overlay interaction engine. It keeps one visual
// per segment intersecting the visible window, resolves pointer hover and
// handle drags against them, and emits the outward event protocol.
//
// The layer is single-threaded and event-driven: every recomputation runs
// synchronously inside a host-dispatched notification and completes
// before returning, so no two events interleave mid-computation.
type Layer struct {
	view     Viewport
	store    SegmentStore
	cfg      Config
	log      *slog.Logger
	emitter  *emitter
	registry *registry

	surface Surface
	pointer PointerState
	drag    *dragState
	visible bool

	// Snapshot of the viewport used by the previous draw; a redraw is
	// warranted when any of it changed even if the reconcile pass did
	// not. Covers scroll, zoom and resize.
	lastView viewSnapshot
	drawn    bool
}

type viewSnapshot struct {
	frameOffset int
	width       int
	height      int
	secPerPixel float64
}

func snapshotView(v Viewport) viewSnapshot {
	return viewSnapshot{
		frameOffset: v.FrameOffset(),
		width:       v.Width(),
		height:      v.Height(),
		secPerPixel: v.PixelToTime(1) - v.PixelToTime(0),
	}
}

// NewLayer creates a segments layer over the given viewport and store.
// A nil logger falls back to slog.Default. The layer is inert until
// AddToSurface attaches it to a drawing backend.
func NewLayer(view Viewport, store SegmentStore, cfg Config, log *slog.Logger) *Layer {
	if log == nil {
		log = slog.Default()
	}
	return &Layer{
		view:     view,
		store:    store,
		cfg:      cfg.withDefaults(),
		log:      log,
		emitter:  newEmitter(),
		registry: newRegistry(),
		pointer:  NoPointer(),
		visible:  true,
	}
}

// On registers a handler for one of the layer's event types. Handlers run
// synchronously on the dispatching event's call stack.
func (l *Layer) On(eventType string, fn EventHandler) {
	l.emitter.on(eventType, fn)
}

// AddToSurface attaches the layer to its drawing backend and performs the
// initial sync of the visible window.
func (l *Layer) AddToSurface(surface Surface) {
	l.surface = surface
	l.registry.attach(surface)
	l.Refresh(l.windowStart(), l.windowEnd())
}

// Refresh re-syncs the visible set against the store for the given time
// range and redraws. Called by the host on scroll, zoom and store
// mutation events. When the reconcile pass changed nothing and the
// viewport is unchanged, the redraw is skipped.
func (l *Layer) Refresh(startTime, endTime float64) {
	if l.surface == nil {
		return
	}

	changed := l.registry.reconcile(l.store.Find(startTime, endTime))
	moved := snapshotView(l.view) != l.lastView
	l.renderPass(changed > 0 || moved || !l.drawn)
}

// SegmentUpdated notifies the layer that a single segment changed outside
// of a drag gesture (e.g. edited by a collaborator). A segment edited
// off-screen and then scrolled into view gets its visual created here on
// demand.
func (l *Layer) SegmentUpdated(seg *segment.Segment) {
	if l.surface == nil {
		return
	}
	if seg.Overlaps(l.windowStart(), l.windowEnd()) {
		l.registry.getOrCreate(seg)
	}
	l.renderPass(true)
}

// SegmentRemoved notifies the layer that a segment left the store.
func (l *Layer) SegmentRemoved(id string) {
	if l.registry.remove(id) {
		l.renderPass(true)
	}
}

// SetVisible shows or hides the whole overlay.
func (l *Layer) SetVisible(visible bool) {
	if l.visible == visible {
		return
	}
	l.visible = visible
	l.renderPass(true)
}

// SetAmplitudeScale forwards the vertical waveform scale to the surface.
// Not owned by this layer.
func (l *Layer) SetAmplitudeScale(scale float64) {
	if s, ok := l.surface.(AmplitudeScaler); ok {
		s.SetAmplitudeScale(scale)
		l.surface.Draw()
	}
}

// Destroy releases every visual and detaches the layer.
func (l *Layer) Destroy() {
	l.endDrag()
	l.registry.removeAll()
	if l.surface != nil {
		l.surface.Draw()
		l.surface = nil
	}
}

// VisibleCount returns the number of segments currently represented on
// the surface.
func (l *Layer) VisibleCount() int {
	return l.registry.len()
}

// Visual returns the registered visual for a segment id, or nil.
func (l *Layer) Visual(id string) *SegmentVisual {
	return l.registry.get(id)
}

// --- Pointer notifications (host → layer) ---

// MouseEnter handles the pointer entering the overlay's hit region.
// Coordinates are view-relative pixels.
func (l *Layer) MouseEnter(x, y float64) {
	l.pointer.enter(x, y)
	l.renderPass(true)
}

// MouseMove handles pointer movement. While a handle is engaged this is
// the drag-move path; boundary commits happen here.
func (l *Layer) MouseMove(x, y float64) {
	l.pointer.move(x, y)
	if l.drag != nil {
		l.updateDrag(l.pointer)
	}
	l.renderPass(true)
}

// MouseLeave handles the pointer leaving the overlay. The position is
// reset to the off-surface sentinel so it cannot be reused as a hover.
func (l *Layer) MouseLeave() {
	l.pointer.leave()
	l.renderPass(true)
}

// MouseDown handles a primary-button press inside the overlay. A press on
// a hovered handle engages a drag; every press also reports the clicked
// time to the host for playback seeking and segment creation.
func (l *Layer) MouseDown(x, y float64) {
	l.pointer.down(x, y)

	if v, h := l.hoveredHandle(l.pointer); h != nil && v.Segment.Editable {
		l.beginDrag(v, h, l.pointer)
	}

	l.emitter.emit(Event{
		Type: EventViewMouseDown,
		Time: l.view.PixelToTime(l.view.FrameOffset() + int(x)),
	})
	l.renderPass(true)
}

// MouseUp handles the global button release. It must be delivered even
// when the release happens outside the view's bounds, otherwise an
// engaged handle would be stuck dragging forever. Ends any drag, clears
// touching marks and forces one final render and redraw.
func (l *Layer) MouseUp(x, y float64) {
	var dragged *SegmentVisual
	if l.drag != nil {
		dragged = l.drag.visual
	}
	l.endDrag()
	l.pointer.up()

	ev := Event{
		Type:   EventViewMouseUp,
		Visual: dragged,
		Time:   l.view.PixelToTime(l.view.FrameOffset() + int(x)),
	}
	if dragged == nil {
		ev.Visual = l.bodyHoveredVisual()
	}
	l.emitter.emit(ev)
	l.renderPass(true)
}

// --- Internals ---

func (l *Layer) windowStart() float64 {
	return l.view.PixelToTime(l.view.FrameOffset())
}

func (l *Layer) windowEnd() float64 {
	return l.view.PixelToTime(l.view.FrameOffset() + l.view.Width())
}

// hoveredHandle hit-tests the pointer against every visible visual and
// returns the engaged candidate. Start handles win the tie against end
// handles, matching the hit-test evaluation order.
func (l *Layer) hoveredHandle(p PointerState) (*SegmentVisual, *Handle) {
	for _, v := range l.registry.visuals {
		l.updateGeometry(v)
		res := l.resolveHover(v, p)
		if res.start {
			return v, v.start
		}
		if res.end {
			return v, v.end
		}
	}
	return nil, nil
}

func (l *Layer) bodyHoveredVisual() *SegmentVisual {
	for _, v := range l.registry.visuals {
		if v.MouseOver {
			return v
		}
	}
	return nil
}

// updateGeometry recomputes a visual's view-relative pixel bounds from
// the current viewport snapshot.
func (l *Layer) updateGeometry(v *SegmentVisual) {
	offset := l.view.FrameOffset()
	v.left = l.view.TimeToPixel(v.Segment.StartTime) - offset
	v.right = l.view.TimeToPixel(v.Segment.EndTime) - offset
}

// renderPass recomputes every visual against one pointer snapshot,
// applies the derived render parameters to the drawables, and flushes the
// surface in a single batched draw.
func (l *Layer) renderPass(draw bool) {
	if l.surface == nil {
		return
	}

	p := l.pointer
	falloff := l.registry.len() <= l.cfg.FalloffMaxSegments

	for _, v := range l.registry.visuals {
		l.updateGeometry(v)
		res := l.resolveHover(v, p)
		l.applyHover(v, res)
		params := computeRenderParams(v, p, res.edgeDistance, l.cfg, falloff)
		l.applyVisual(v, params)
	}

	if draw {
		l.surface.Draw()
		l.lastView = snapshotView(l.view)
		l.drawn = true
	}
}

// applyVisual pushes geometry and render parameters onto the drawables.
func (l *Layer) applyVisual(v *SegmentVisual, params RenderParams) {
	height := float64(l.view.Height())

	v.highlight.SetPosition(float64(v.left), 0)
	v.highlight.SetSize(float64(v.right-v.left), height)
	v.highlight.SetFill(params.HighlightFill)
	v.highlight.SetOpacity(params.HighlightOpacity)
	v.highlight.SetVisible(l.visible)

	l.applyHandle(v, v.start, params.Start)
	l.applyHandle(v, v.end, params.End)
}

func (l *Layer) applyHandle(v *SegmentVisual, h *Handle, params HandleParams) {
	edge := v.edge(h.Role)
	top := (float64(l.view.Height()) - l.cfg.HandleHeight) / 2

	h.rect.SetPosition(edge-l.cfg.HandleWidth/2, top)
	h.rect.SetSize(l.cfg.HandleWidth, l.cfg.HandleHeight)
	h.rect.SetFill(params.Fill)
	h.rect.SetOpacity(params.Opacity)
	h.rect.SetVisible(l.visible && v.Segment.Editable)

	showLabel := l.visible && params.LabelVisible
	if showLabel {
		h.label.SetText(formatTime(v.boundaryTime(h.Role)))
		h.label.SetPosition(edge-l.cfg.HandleWidth/2, top-16)
	}
	h.label.SetVisible(showLabel)
}
