package overlay

import (
	"errors"
	"fmt"
	"math"
)

var ErrInvalidViewport = errors.New("invalid viewport parameters")

// Viewport is what the layer consumes from the owning view: the pixel
// window into the full waveform plus the time/pixel mapping for the
// current zoom level. One Viewport snapshot backs an entire render pass.
type Viewport interface {
	FrameOffset() int
	Width() int
	Height() int
	TimeToPixel(t float64) int
	PixelToTime(p int) float64
}

// View is the standard Viewport implementation: a scrollable, zoomable
// window over a waveform of a known sample rate. Updates with non-finite
// or non-positive parameters are rejected and the last valid state is
// retained, so the overlay never renders NaN geometry.
type View struct {
	mapper      Mapper
	frameOffset int
	width       int
	height      int
}

// NewView creates a view over audio with the given sample rate, at the
// given zoom scale (samples per pixel) and pixel dimensions.
func NewView(sampleRate int, scale float64, width, height int) (*View, error) {
	m := Mapper{SampleRate: sampleRate, Scale: scale}
	if !m.Valid() {
		return nil, fmt.Errorf("%w: sampleRate=%d scale=%v", ErrInvalidViewport, sampleRate, scale)
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: width=%d height=%d", ErrInvalidViewport, width, height)
	}
	return &View{mapper: m, width: width, height: height}, nil
}

func (v *View) FrameOffset() int { return v.frameOffset }
func (v *View) Width() int       { return v.width }
func (v *View) Height() int      { return v.height }

func (v *View) TimeToPixel(t float64) int { return v.mapper.TimeToPixel(t) }
func (v *View) PixelToTime(p int) float64 { return v.mapper.PixelToTime(p) }

// Mapper returns the current time/pixel mapping snapshot.
func (v *View) Mapper() Mapper { return v.mapper }

// StartTime returns the time at the left edge of the visible window.
func (v *View) StartTime() float64 { return v.mapper.PixelToTime(v.frameOffset) }

// EndTime returns the time at the right edge of the visible window.
func (v *View) EndTime() float64 { return v.mapper.PixelToTime(v.frameOffset + v.width) }

// SetFrameOffset scrolls the window. Negative offsets clamp to zero.
func (v *View) SetFrameOffset(offset int) {
	if offset < 0 {
		offset = 0
	}
	v.frameOffset = offset
}

// SetScale changes the zoom level. A non-finite or non-positive scale is
// rejected and the previous scale kept.
func (v *View) SetScale(scale float64) error {
	if scale <= 0 || math.IsInf(scale, 0) || math.IsNaN(scale) {
		return fmt.Errorf("%w: scale=%v", ErrInvalidViewport, scale)
	}
	v.mapper.Scale = scale
	return nil
}

// Resize changes the window's pixel dimensions.
func (v *View) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: width=%d height=%d", ErrInvalidViewport, width, height)
	}
	v.width = width
	v.height = height
	return nil
}
