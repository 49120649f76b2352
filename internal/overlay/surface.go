package overlay

// Drawable is the minimal capability the overlay needs from a single
// on-screen primitive. The concrete scene graph (Canvas2D, Konva, a test
// fake) lives behind this interface; the overlay never positions anything
// it did not create, and destroying a drawable detaches it from the host
// renderer.
type Drawable interface {
	SetPosition(x, y float64)
	SetSize(width, height float64)
	SetFill(color string)
	SetOpacity(opacity float64)
	SetVisible(visible bool)
	Destroy()
}

// TextDrawable is a drawable that renders a text string, used for the
// time labels attached to segment handles.
type TextDrawable interface {
	Drawable
	SetText(text string)
}

// Surface is the drawing backend the overlay attaches to. Creation adds
// the drawable to the surface in painter's order; Draw flushes all
// mutations since the previous Draw in one batch.
type Surface interface {
	CreateRect() Drawable
	CreateText() TextDrawable
	Draw()
}
