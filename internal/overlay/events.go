package overlay

// Event types emitted by the segments layer. Payload fields used per type:
//
//	segmentVisual.mouseenter / mouseleave          Visual
//	segmentVisual.handle.mouseenter / mouseleave   Visual, IsStartHandle
//	segment.dragged                                Visual, IsStartHandle
//	view.mousedown                                 Time
//	view.mouseup                                   Time, Visual (nil off-segment)
const (
	EventSegmentMouseEnter = "segmentVisual.mouseenter"
	EventSegmentMouseLeave = "segmentVisual.mouseleave"
	EventHandleMouseEnter  = "segmentVisual.handle.mouseenter"
	EventHandleMouseLeave  = "segmentVisual.handle.mouseleave"
	EventSegmentDragged    = "segment.dragged"
	EventViewMouseDown     = "view.mousedown"
	EventViewMouseUp       = "view.mouseup"
)

// Event is a single outward notification from the layer to the host.
type Event struct {
	Type          string
	Visual        *SegmentVisual
	IsStartHandle bool
	Time          float64
}

// EventHandler receives layer events synchronously, on the dispatching
// event's call stack.
type EventHandler func(Event)

type emitter struct {
	handlers map[string][]EventHandler
}

func newEmitter() *emitter {
	return &emitter{handlers: make(map[string][]EventHandler)}
}

func (e *emitter) on(eventType string, fn EventHandler) {
	e.handlers[eventType] = append(e.handlers[eventType], fn)
}

func (e *emitter) emit(ev Event) {
	for _, fn := range e.handlers[ev.Type] {
		fn(ev)
	}
}
