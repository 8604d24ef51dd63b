package graphics

import "image/color"

// Canvas receives positioned glyph draw commands from a Renderer.
//
// Implementations carry a current translation; DrawGlyph coordinates are
// relative to it. Rasterization is outside this package: a canvas may
// record commands, forward them to a vector backend, or hand them to a
// platform surface.
type Canvas interface {
	// Translate shifts the canvas origin by (dx, dy). Callers undo a
	// translation by applying its inverse.
	Translate(dx, dy float64)

	// DrawGlyph draws a single glyph of the typeface at the given size,
	// positioned at (x, y) relative to the current translation, where y
	// is the baseline.
	DrawGlyph(tf *Typeface, size float64, glyphID int, x, y float64, fill color.RGBA) error
}

// GlyphCommand is one recorded glyph draw, with the canvas translation
// already applied to the position.
type GlyphCommand struct {
	Typeface *Typeface
	Size     float64
	GlyphID  int
	X, Y     float64
	Fill     color.RGBA
}

// RecordingCanvas records glyph commands at absolute positions. It serves
// as a test double and as a capture stage for inspection tools.
//
// RecordingCanvas is NOT safe for concurrent use.
type RecordingCanvas struct {
	dx, dy   float64
	commands []GlyphCommand

	// FailAfter, when non-negative, makes DrawGlyph return an error once
	// that many commands have been recorded. Used to exercise transform
	// restoration on mid-draw failure.
	FailAfter int

	failErr error
}

// NewRecordingCanvas creates an empty recording canvas.
func NewRecordingCanvas() *RecordingCanvas {
	return &RecordingCanvas{FailAfter: -1}
}

// Translate implements Canvas.Translate.
func (c *RecordingCanvas) Translate(dx, dy float64) {
	c.dx += dx
	c.dy += dy
}

// Offset returns the current accumulated translation.
func (c *RecordingCanvas) Offset() (dx, dy float64) {
	return c.dx, c.dy
}

// DrawGlyph implements Canvas.DrawGlyph, recording the command with the
// current translation applied.
func (c *RecordingCanvas) DrawGlyph(tf *Typeface, size float64, glyphID int, x, y float64, fill color.RGBA) error {
	if c.FailAfter >= 0 && len(c.commands) >= c.FailAfter {
		if c.failErr == nil {
			c.failErr = ErrCanvasFailed
		}
		return c.failErr
	}
	c.commands = append(c.commands, GlyphCommand{
		Typeface: tf,
		Size:     size,
		GlyphID:  glyphID,
		X:        x + c.dx,
		Y:        y + c.dy,
		Fill:     fill,
	})
	return nil
}

// Commands returns the recorded commands in draw order.
func (c *RecordingCanvas) Commands() []GlyphCommand {
	return c.commands
}

// Reset discards recorded commands and restores the identity translation.
func (c *RecordingCanvas) Reset() {
	c.dx, c.dy = 0, 0
	c.commands = c.commands[:0]
}
