// Package canvas compiles overlay drawables into a draw-command buffer
// for the frontend to execute on a Canvas2D context.
package canvas

import (
	"encoding/json"

	"github.com/soundmark/soundmark/backend-go/internal/overlay"
)

// DrawCommand is a single drawing operation in painter's order (back to
// front).
type DrawCommand struct {
	Op      string  `json:"op"` // "rect" or "text"
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Width   float64 `json:"width,omitempty"`
	Height  float64 `json:"height,omitempty"`
	Fill    string  `json:"fill,omitempty"`
	Opacity float64 `json:"opacity"`
	Text    string  `json:"text,omitempty"`
}

type nodeKind int

const (
	rectNode nodeKind = iota
	textNode
)

// node is a retained drawable. Mutations mark the surface dirty only when
// a value actually changes, which is what lets Draw skip recompiling the
// buffer for passes that changed nothing.
type node struct {
	surface *CommandSurface
	kind    nodeKind

	x, y          float64
	width, height float64
	fill          string
	opacity       float64
	visible       bool
	text          string
	destroyed     bool
}

func (n *node) SetPosition(x, y float64) {
	if n.x != x || n.y != y {
		n.x, n.y = x, y
		n.surface.dirty = true
	}
}

func (n *node) SetSize(width, height float64) {
	if n.width != width || n.height != height {
		n.width, n.height = width, height
		n.surface.dirty = true
	}
}

func (n *node) SetFill(color string) {
	if n.fill != color {
		n.fill = color
		n.surface.dirty = true
	}
}

func (n *node) SetOpacity(opacity float64) {
	if n.opacity != opacity {
		n.opacity = opacity
		n.surface.dirty = true
	}
}

func (n *node) SetVisible(visible bool) {
	if n.visible != visible {
		n.visible = visible
		n.surface.dirty = true
	}
}

func (n *node) SetText(text string) {
	if n.text != text {
		n.text = text
		n.surface.dirty = true
	}
}

func (n *node) Destroy() {
	if !n.destroyed {
		n.destroyed = true
		n.surface.dirty = true
	}
}

// CommandSurface is the overlay.Surface implementation backing the wasm
// build: retained drawables in creation (painter's) order, compiled into
// a JSON-serializable command buffer on each batched Draw.
type CommandSurface struct {
	nodes  []*node
	buffer []DrawCommand
	dirty  bool
	draws  int

	amplitudeScale float64
}

func NewCommandSurface() *CommandSurface {
	return &CommandSurface{amplitudeScale: 1}
}

func (s *CommandSurface) CreateRect() overlay.Drawable {
	return s.create(rectNode)
}

func (s *CommandSurface) CreateText() overlay.TextDrawable {
	return s.create(textNode)
}

func (s *CommandSurface) create(kind nodeKind) *node {
	n := &node{surface: s, kind: kind, visible: true, opacity: 1}
	s.nodes = append(s.nodes, n)
	s.dirty = true
	return n
}

// Draw compiles the retained nodes into the command buffer. A pass that
// mutated nothing leaves the previous buffer intact and does not count as
// a draw.
func (s *CommandSurface) Draw() {
	if !s.dirty {
		return
	}

	s.buffer = s.buffer[:0]
	kept := s.nodes[:0]
	for _, n := range s.nodes {
		if n.destroyed {
			continue
		}
		kept = append(kept, n)
		if !n.visible || n.opacity <= 0 {
			continue
		}

		cmd := DrawCommand{
			X:       n.x,
			Y:       n.y,
			Fill:    n.fill,
			Opacity: n.opacity,
		}
		switch n.kind {
		case rectNode:
			cmd.Op = "rect"
			cmd.Width = n.width
			cmd.Height = n.height
		case textNode:
			cmd.Op = "text"
			cmd.Text = n.text
		}
		s.buffer = append(s.buffer, cmd)
	}
	s.nodes = kept
	s.dirty = false
	s.draws++
}

// Commands returns the last compiled buffer.
func (s *CommandSurface) Commands() []DrawCommand {
	return s.buffer
}

// JSON serializes the last compiled buffer.
func (s *CommandSurface) JSON() (string, error) {
	if len(s.buffer) == 0 {
		return "[]", nil
	}
	data, err := json.Marshal(s.buffer)
	if err != nil {
		return "[]", err
	}
	return string(data), nil
}

// Draws returns how many times the buffer has been recompiled.
func (s *CommandSurface) Draws() int {
	return s.draws
}

// SetAmplitudeScale records the forwarded waveform amplitude scale for
// the frontend renderer to pick up.
func (s *CommandSurface) SetAmplitudeScale(scale float64) {
	s.amplitudeScale = scale
}

// AmplitudeScale returns the forwarded amplitude scale.
func (s *CommandSurface) AmplitudeScale() float64 {
	return s.amplitudeScale
}
