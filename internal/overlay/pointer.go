package overlay

// offSurface is the sentinel pointer coordinate used after a mouseleave.
// Keeping a stale last-known position would make a segment read as still
// hovered after the pointer has left the view.
const offSurface = -1e6

// PointerState is the last-known pointer snapshot for a view. There is one
// per overlay; each render pass receives it by value so that every
// segment's hover computation sees the same snapshot.
type PointerState struct {
	// X, Y are view-relative pixel coordinates. Only meaningful while
	// Valid is true; at startup and after a mouseleave there is no valid
	// position and X/Y hold the off-surface sentinel.
	X, Y float64

	// Valid reports whether X/Y hold a real position.
	Valid bool

	// InView is true while the pointer is inside the overlay's hit region.
	InView bool

	// Dragging is true while the primary button is held since a mousedown
	// on the overlay. Cleared by the global mouseup, which may arrive with
	// the pointer outside the view's bounds.
	Dragging bool
}

// NoPointer returns the startup pointer state: no position, not in view.
func NoPointer() PointerState {
	return PointerState{X: offSurface, Y: offSurface}
}

func (p *PointerState) enter(x, y float64) {
	p.X, p.Y = x, y
	p.Valid = true
	p.InView = true
}

func (p *PointerState) move(x, y float64) {
	p.X, p.Y = x, y
	p.Valid = true
}

func (p *PointerState) leave() {
	p.X, p.Y = offSurface, offSurface
	p.Valid = false
	p.InView = false
}

func (p *PointerState) down(x, y float64) {
	p.X, p.Y = x, y
	p.Valid = true
	p.Dragging = true
}

func (p *PointerState) up() {
	p.Dragging = false
}
