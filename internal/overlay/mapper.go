package overlay

import "math"

// Mapper converts between absolute time and pixel offsets within the full
// waveform, parameterized by the audio sample rate and the current zoom
// scale (samples per pixel).
//
// Both directions are pure and total over finite inputs; callers clamp.
// A Mapper value is a snapshot: one render pass must use a single Mapper
// for both directions so that TimeToPixel(PixelToTime(p)) stays stable
// under concurrent zoom changes.
type Mapper struct {
	SampleRate int
	Scale      float64 // samples per pixel
}

// TimeToPixel converts a time in seconds to a pixel offset within the
// full waveform.
func (m Mapper) TimeToPixel(t float64) int {
	return int(math.Floor(t * float64(m.SampleRate) / m.Scale))
}

// PixelToTime converts a pixel offset within the full waveform to a time
// in seconds.
func (m Mapper) PixelToTime(p int) float64 {
	return float64(p) * m.Scale / float64(m.SampleRate)
}

// PixelDuration returns the duration in seconds covered by one pixel at
// the current scale. Useful as the round-trip error bound.
func (m Mapper) PixelDuration() float64 {
	return m.Scale / float64(m.SampleRate)
}

// Valid reports whether the mapper has usable parameters. A mapper with a
// non-positive or non-finite scale would produce NaN geometry.
func (m Mapper) Valid() bool {
	return m.SampleRate > 0 && m.Scale > 0 && !math.IsInf(m.Scale, 0) && !math.IsNaN(m.Scale)
}
