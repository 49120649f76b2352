// Package engine is the embeddable facade over the segment overlay: one
// document, one viewport, one interaction layer, one draw-command
// surface. The wasm binding forwards browser events into it and polls
// it for draw commands and outward events; tests drive it directly.
package engine

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/soundmark/soundmark/backend-go/internal/canvas"
	"github.com/soundmark/soundmark/backend-go/internal/overlay"
	"github.com/soundmark/soundmark/backend-go/internal/segment"
	"github.com/soundmark/soundmark/backend-go/internal/typeid"
	"github.com/soundmark/soundmark/backend-go/internal/waveform"
)

const (
	defaultWidth  = 1280
	defaultHeight = 200
)

// EngineEvent is the JSON shape of an outward event queued for the
// frontend.
type EngineEvent struct {
	Type          string  `json:"type"`
	SegmentID     string  `json:"segmentId,omitempty"`
	IsStartHandle bool    `json:"isStartHandle,omitempty"`
	Time          float64 `json:"time,omitempty"`
}

type Engine struct {
	doc     *waveform.Document
	store   *segment.Store
	view    *overlay.View
	layer   *overlay.Layer
	surface *canvas.CommandSurface

	width  int
	height int

	pending []EngineEvent
}

func NewEngine() *Engine {
	return &Engine{width: defaultWidth, height: defaultHeight}
}

// LoadDocument replaces the current document with one parsed from JSON.
func (e *Engine) LoadDocument(jsonData string) error {
	var doc waveform.Document
	if err := json.Unmarshal([]byte(jsonData), &doc); err != nil {
		return fmt.Errorf("parse document: %w", err)
	}
	return e.load(&doc)
}

// LoadSampleDocument loads the built-in playground document.
func (e *Engine) LoadSampleDocument(projectID string) {
	// The sample document is generated, so load cannot fail.
	_ = e.load(waveform.NewSampleDocument(projectID))
}

func (e *Engine) load(doc *waveform.Document) error {
	if err := doc.Validate(); err != nil {
		return err
	}
	store, err := doc.BuildStore()
	if err != nil {
		return err
	}

	height := doc.View.Height
	if height <= 0 {
		height = e.height
	}
	view, err := overlay.NewView(doc.Track.SampleRate, doc.View.Scale, e.width, height)
	if err != nil {
		return err
	}
	view.SetFrameOffset(doc.View.FrameOffset)

	if e.layer != nil {
		e.layer.Destroy()
	}

	e.doc = doc
	e.store = store
	e.view = view
	e.height = height
	e.surface = canvas.NewCommandSurface()
	e.layer = overlay.NewLayer(view, store, overlay.DefaultConfig(), slog.Default())

	for _, typ := range []string{
		overlay.EventSegmentMouseEnter, overlay.EventSegmentMouseLeave,
		overlay.EventHandleMouseEnter, overlay.EventHandleMouseLeave,
		overlay.EventSegmentDragged, overlay.EventViewMouseDown,
		overlay.EventViewMouseUp,
	} {
		e.layer.On(typ, e.queueEvent)
	}

	store.OnAdd(func(*segment.Segment) { e.refresh() })
	store.OnRemove(func(s *segment.Segment) { e.layer.SegmentRemoved(s.ID) })

	e.layer.AddToSurface(e.surface)
	return nil
}

func (e *Engine) queueEvent(ev overlay.Event) {
	out := EngineEvent{Type: ev.Type, IsStartHandle: ev.IsStartHandle, Time: ev.Time}
	if ev.Visual != nil {
		out.SegmentID = ev.Visual.Segment.ID
	}
	e.pending = append(e.pending, out)
}

// PendingEvents drains the outward event queue as a JSON array.
func (e *Engine) PendingEvents() string {
	if len(e.pending) == 0 {
		return "[]"
	}
	data, err := json.Marshal(e.pending)
	e.pending = e.pending[:0]
	if err != nil {
		return "[]"
	}
	return string(data)
}

// --- Pointer notifications ---

func (e *Engine) MouseEnter(x, y float64) {
	if e.layer != nil {
		e.layer.MouseEnter(x, y)
	}
}

func (e *Engine) MouseMove(x, y float64) {
	if e.layer != nil {
		e.layer.MouseMove(x, y)
	}
}

func (e *Engine) MouseLeave() {
	if e.layer != nil {
		e.layer.MouseLeave()
	}
}

func (e *Engine) MouseDown(x, y float64) {
	if e.layer != nil {
		e.layer.MouseDown(x, y)
	}
}

func (e *Engine) MouseUp(x, y float64) {
	if e.layer != nil {
		e.layer.MouseUp(x, y)
	}
}

// --- Viewport ---

// SetFrameOffset scrolls the view to the given absolute pixel offset.
func (e *Engine) SetFrameOffset(offset int) {
	if e.view == nil {
		return
	}
	e.view.SetFrameOffset(offset)
	e.refresh()
}

// SetScale changes the zoom level (samples per pixel).
func (e *Engine) SetScale(scale float64) error {
	if e.view == nil {
		return fmt.Errorf("no document loaded")
	}
	if err := e.view.SetScale(scale); err != nil {
		return err
	}
	e.doc.View.Scale = scale
	e.refresh()
	return nil
}

// Resize updates the view dimensions.
func (e *Engine) Resize(width, height int) error {
	if e.view == nil {
		return fmt.Errorf("no document loaded")
	}
	if err := e.view.Resize(width, height); err != nil {
		return err
	}
	e.width, e.height = width, height
	e.refresh()
	return nil
}

// Refresh re-syncs the visible segment set and redraws.
func (e *Engine) Refresh() {
	e.refresh()
}

func (e *Engine) refresh() {
	if e.layer == nil {
		return
	}
	e.layer.Refresh(e.view.StartTime(), e.view.EndTime())
}

// SetVisible shows or hides the overlay.
func (e *Engine) SetVisible(visible bool) {
	if e.layer != nil {
		e.layer.SetVisible(visible)
	}
}

// SetAmplitudeScale forwards the waveform's vertical scale factor.
func (e *Engine) SetAmplitudeScale(scale float64) {
	if e.layer != nil {
		e.layer.SetAmplitudeScale(scale)
	}
}

// --- Segments ---

// AddSegment creates a segment from JSON. A missing id is generated.
func (e *Engine) AddSegment(jsonData string) (string, error) {
	if e.store == nil {
		return "", fmt.Errorf("no document loaded")
	}
	var seg segment.Segment
	if err := json.Unmarshal([]byte(jsonData), &seg); err != nil {
		return "", fmt.Errorf("parse segment: %w", err)
	}
	if seg.ID == "" {
		seg.ID = typeid.NewSegmentID()
	}
	if err := e.store.Add(&seg); err != nil {
		return "", err
	}
	return seg.ID, nil
}

// RemoveSegment deletes a segment by id.
func (e *Engine) RemoveSegment(id string) {
	if e.store != nil {
		e.store.Remove(id)
	}
}

// UpdateSegment applies a remote boundary change to a segment and
// notifies the layer, creating the visual on demand if the segment just
// scrolled into view.
func (e *Engine) UpdateSegment(id string, startTime, endTime float64) error {
	if e.store == nil {
		return fmt.Errorf("no document loaded")
	}
	if err := e.store.UpdateTimes(id, startTime, endTime); err != nil {
		return err
	}
	if seg, ok := e.store.Get(id); ok {
		e.layer.SegmentUpdated(seg)
	}
	return nil
}

// Segments returns every segment as JSON, in start-time order.
func (e *Engine) Segments() string {
	if e.store == nil {
		return "[]"
	}
	data, err := json.Marshal(e.store.All())
	if err != nil {
		return "[]"
	}
	return string(data)
}

// GetDocument returns the current document with segments synced in.
func (e *Engine) GetDocument() string {
	if e.doc == nil {
		return "{}"
	}
	e.doc.SyncSegments(e.store)
	data, err := json.Marshal(e.doc)
	if err != nil {
		return "{}"
	}
	return string(data)
}

// Render returns the current draw-command buffer as JSON.
func (e *Engine) Render() string {
	if e.surface == nil {
		return "[]"
	}
	out, err := e.surface.JSON()
	if err != nil {
		return "[]"
	}
	return out
}

// AmplitudeScale exposes the forwarded waveform scale for the frontend
// renderer.
func (e *Engine) AmplitudeScale() float64 {
	if e.surface == nil {
		return 1
	}
	return e.surface.AmplitudeScale()
}
