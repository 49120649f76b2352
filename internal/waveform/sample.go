package waveform

import (
	"time"

	"github.com/soundmark/soundmark/backend-go/internal/segment"
	"github.com/soundmark/soundmark/backend-go/internal/typeid"
)

// NewEmptyDocument is the initial snapshot for a freshly created
// project: no track asset attached yet and no segments.
func NewEmptyDocument(projectID, name string) *Document {
	now := time.Now().UTC().Format(time.RFC3339)

	return &Document{
		Project: Project{
			ID:        projectID,
			Name:      name,
			Version:   1,
			CreatedAt: now,
			UpdatedAt: now,
		},
		Track: Track{
			SampleRate: 44100,
			Channels:   2,
		},
		Segments: []segment.Segment{},
		View: ViewDefaults{
			Scale:  512,
			Height: 200,
		},
	}
}

// NewSampleDocument builds the built-in playground document: a two-minute
// track with a handful of pre-marked segments.
func NewSampleDocument(projectID string) *Document {
	now := time.Now().UTC().Format(time.RFC3339)

	return &Document{
		Project: Project{
			ID:        projectID,
			Name:      "Untitled",
			Version:   1,
			CreatedAt: now,
			UpdatedAt: now,
		},
		Track: Track{
			AssetID:    typeid.NewAssetID(),
			Name:       "sample.wav",
			SampleRate: 44100,
			Channels:   2,
			Duration:   120,
		},
		Segments: []segment.Segment{
			{
				ID:        typeid.NewSegmentID(),
				StartTime: 2.0,
				EndTime:   5.0,
				Editable:  true,
				Color:     "#e94560",
				LabelText: "Intro",
			},
			{
				ID:        typeid.NewSegmentID(),
				StartTime: 8.5,
				EndTime:   14.25,
				Editable:  true,
				Color:     "#0f3460",
				LabelText: "Verse 1",
			},
			{
				ID:        typeid.NewSegmentID(),
				StartTime: 14.25,
				EndTime:   21.0,
				Editable:  true,
				Color:     "#533483",
				LabelText: "Chorus",
			},
			{
				ID:        typeid.NewSegmentID(),
				StartTime: 30.0,
				EndTime:   45.0,
				Editable:  false,
				LabelText: "Reference take",
			},
		},
		View: ViewDefaults{
			Scale:       512,
			FrameOffset: 0,
			Height:      200,
		},
	}
}
