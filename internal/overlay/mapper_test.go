package overlay

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapperContract(t *testing.T) {
	m := Mapper{SampleRate: 44100, Scale: 441}

	// 100 pixels per second at this scale.
	assert.Equal(t, 0, m.TimeToPixel(0))
	assert.Equal(t, 100, m.TimeToPixel(1))
	assert.Equal(t, 205, m.TimeToPixel(2.05))
	assert.InDelta(t, 2.05, m.PixelToTime(205), 1e-9)

	// Floor, not round.
	assert.Equal(t, 204, m.TimeToPixel(2.0499))
}

func TestMapperRoundTrip(t *testing.T) {
	mappers := []Mapper{
		{SampleRate: 44100, Scale: 441},
		{SampleRate: 44100, Scale: 512},
		{SampleRate: 48000, Scale: 1024},
		{SampleRate: 8000, Scale: 64},
	}

	const totalDuration = 300.0
	for _, m := range mappers {
		bound := m.PixelDuration()
		for ts := 0.0; ts < totalDuration; ts += 0.517 {
			back := m.PixelToTime(m.TimeToPixel(ts))
			if math.Abs(back-ts) > bound {
				t.Fatalf("scale %v: round trip of %v gave %v, off by more than one pixel (%v)",
					m.Scale, ts, back, bound)
			}
		}
	}
}

func TestMapperMonotonic(t *testing.T) {
	m := Mapper{SampleRate: 48000, Scale: 777}
	prev := m.TimeToPixel(0)
	for ts := 0.01; ts < 60; ts += 0.01 {
		p := m.TimeToPixel(ts)
		require.GreaterOrEqual(t, p, prev)
		prev = p
	}
}

func TestMapperValid(t *testing.T) {
	tests := []struct {
		name   string
		mapper Mapper
		want   bool
	}{
		{"ok", Mapper{SampleRate: 44100, Scale: 441}, true},
		{"zero scale", Mapper{SampleRate: 44100, Scale: 0}, false},
		{"negative scale", Mapper{SampleRate: 44100, Scale: -1}, false},
		{"nan scale", Mapper{SampleRate: 44100, Scale: math.NaN()}, false},
		{"inf scale", Mapper{SampleRate: 44100, Scale: math.Inf(1)}, false},
		{"zero sample rate", Mapper{SampleRate: 0, Scale: 441}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.mapper.Valid())
		})
	}
}

func TestViewRejectsInvalidUpdates(t *testing.T) {
	view, err := NewView(44100, 441, 1000, 100)
	require.NoError(t, err)

	// Invalid updates are rejected and the previous state retained.
	require.ErrorIs(t, view.SetScale(math.NaN()), ErrInvalidViewport)
	require.ErrorIs(t, view.SetScale(0), ErrInvalidViewport)
	require.ErrorIs(t, view.SetScale(math.Inf(1)), ErrInvalidViewport)
	assert.Equal(t, 441.0, view.Mapper().Scale)

	require.ErrorIs(t, view.Resize(0, 100), ErrInvalidViewport)
	assert.Equal(t, 1000, view.Width())

	// Negative frame offsets clamp to zero.
	view.SetFrameOffset(-50)
	assert.Equal(t, 0, view.FrameOffset())

	_, err = NewView(44100, math.NaN(), 1000, 100)
	require.ErrorIs(t, err, ErrInvalidViewport)
}
