package waveform

import (
	"fmt"

	"github.com/soundmark/soundmark/backend-go/internal/segment"
)

// Document is the persisted project document: one audio track plus its
// segment annotations and the view defaults the frontend opens with.
type Document struct {
	Project  Project           `json:"project"`
	Track    Track             `json:"track"`
	Segments []segment.Segment `json:"segments"`
	View     ViewDefaults      `json:"view"`
}

type Project struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Version   int    `json:"version"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// Track describes the audio the segments annotate.
type Track struct {
	AssetID    string  `json:"assetId"`
	Name       string  `json:"name"`
	SampleRate int     `json:"sampleRate"`
	Channels   int     `json:"channels"`
	Duration   float64 `json:"duration"` // seconds
}

// ViewDefaults are the initial viewport parameters for a freshly opened
// project.
type ViewDefaults struct {
	Scale       float64 `json:"scale"` // samples per pixel
	FrameOffset int     `json:"frameOffset"`
	Height      int     `json:"height"`
}

// Validate checks the structural invariants a document must satisfy
// before it is loaded into an engine or a collab room.
func (d *Document) Validate() error {
	if d.Track.SampleRate <= 0 {
		return fmt.Errorf("track sample rate must be positive, got %d", d.Track.SampleRate)
	}
	if d.Track.Duration < 0 {
		return fmt.Errorf("track duration must not be negative, got %v", d.Track.Duration)
	}
	seen := make(map[string]bool, len(d.Segments))
	for i := range d.Segments {
		s := &d.Segments[i]
		if s.ID == "" {
			return fmt.Errorf("segment %d has no id", i)
		}
		if seen[s.ID] {
			return fmt.Errorf("duplicate segment id %s", s.ID)
		}
		seen[s.ID] = true
		if s.StartTime >= s.EndTime {
			return fmt.Errorf("segment %s is inverted: start=%v end=%v", s.ID, s.StartTime, s.EndTime)
		}
	}
	return nil
}

// BuildStore loads the document's segments into a fresh store.
func (d *Document) BuildStore() (*segment.Store, error) {
	store := segment.NewStore()
	for i := range d.Segments {
		s := d.Segments[i]
		if err := store.Add(&s); err != nil {
			return nil, fmt.Errorf("load segment %s: %w", s.ID, err)
		}
	}
	return store, nil
}

// SyncSegments writes the store's current segments back into the
// document, in start-time order.
func (d *Document) SyncSegments(store *segment.Store) {
	all := store.All()
	d.Segments = make([]segment.Segment, len(all))
	for i, s := range all {
		d.Segments[i] = *s
	}
}
