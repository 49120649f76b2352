package overlay

// Config holds the tunable interaction and styling constants for the
// segments overlay. Zero-value fields are replaced with the defaults from
// DefaultConfig when the layer is created.
type Config struct {
	// MinSegmentDuration is the smallest duration in seconds a drag may
	// leave a segment with.
	MinSegmentDuration float64

	// HandleWidth and HandleHeight are the pixel footprint of a boundary
	// handle. The handle is pinned to its edge, vertically centered.
	HandleWidth  float64
	HandleHeight float64

	// EdgeTolerance widens a handle's horizontal hit region by this many
	// pixels on either side of the edge.
	EdgeTolerance float64

	// ActiveRange is the pixel radius around a handle within which handle
	// opacity falls off with pointer distance.
	ActiveRange float64

	// FalloffMaxSegments disables the distance falloff once more segments
	// than this are visible, so per-pass cost stops scaling with density.
	FalloffMaxSegments int

	// Highlight opacity range.
	BaseOpacity float64
	MaxOpacity  float64

	// HandleDragOpacity is the fixed opacity of a handle while its
	// sibling handle is being dragged.
	HandleDragOpacity float64

	// Fill colors, in increasing precedence: rest < hovered < touching < focused.
	RestColor  string
	HoverColor string
	TouchColor string
	FocusColor string

	HandleColor      string
	HandleHoverColor string
}

// DefaultConfig returns the stock overlay configuration.
func DefaultConfig() Config {
	return Config{
		MinSegmentDuration: 0.2,
		HandleWidth:        10,
		HandleHeight:       20,
		EdgeTolerance:      3,
		ActiveRange:        75,
		FalloffMaxSegments: 30,
		BaseOpacity:        0.2,
		MaxOpacity:         0.5,
		HandleDragOpacity:  0.4,
		RestColor:          "#0074d9",
		HoverColor:         "#39cccc",
		TouchColor:         "#ff851b",
		FocusColor:         "#ffdc00",
		HandleColor:        "#2e343c",
		HandleHoverColor:   "#545d68",
	}
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.MinSegmentDuration <= 0 {
		c.MinSegmentDuration = def.MinSegmentDuration
	}
	if c.HandleWidth <= 0 {
		c.HandleWidth = def.HandleWidth
	}
	if c.HandleHeight <= 0 {
		c.HandleHeight = def.HandleHeight
	}
	if c.EdgeTolerance <= 0 {
		c.EdgeTolerance = def.EdgeTolerance
	}
	if c.ActiveRange <= 0 {
		c.ActiveRange = def.ActiveRange
	}
	if c.FalloffMaxSegments <= 0 {
		c.FalloffMaxSegments = def.FalloffMaxSegments
	}
	if c.BaseOpacity <= 0 {
		c.BaseOpacity = def.BaseOpacity
	}
	if c.MaxOpacity <= 0 {
		c.MaxOpacity = def.MaxOpacity
	}
	if c.HandleDragOpacity <= 0 {
		c.HandleDragOpacity = def.HandleDragOpacity
	}
	if c.RestColor == "" {
		c.RestColor = def.RestColor
	}
	if c.HoverColor == "" {
		c.HoverColor = def.HoverColor
	}
	if c.TouchColor == "" {
		c.TouchColor = def.TouchColor
	}
	if c.FocusColor == "" {
		c.FocusColor = def.FocusColor
	}
	if c.HandleColor == "" {
		c.HandleColor = def.HandleColor
	}
	if c.HandleHoverColor == "" {
		c.HandleHoverColor = def.HandleHoverColor
	}
	return c
}
