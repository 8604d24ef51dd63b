package graphics

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/gogpu/typeset/collections"
	"github.com/gogpu/typeset/geom"
)

// ErrCanvasFailed is the default error a RecordingCanvas returns when its
// failure injection point is reached.
var ErrCanvasFailed = errors.New("graphics: canvas draw failed")

// Renderer holds the state needed to measure and draw glyph sequences:
// the typeface, type size and writing direction of the run being
// processed, plus the fill color for drawing.
//
// A renderer is a shared, stateful resource. Layout code configures it as
// a side effect of measurement and drawing, so concurrent calls against
// the same instance must be serialized by the caller, typically with one
// renderer per goroutine.
type Renderer struct {
	typeface  *Typeface
	typeSize  float64
	direction Direction
	fillColor color.RGBA
}

// NewRenderer creates a renderer with a 16pt size, left-to-right
// direction and black fill. The typeface starts unset.
func NewRenderer() *Renderer {
	return &Renderer{
		typeSize:  16,
		direction: DirectionLTR,
		fillColor: color.RGBA{A: 255},
	}
}

// Typeface returns the currently configured typeface.
func (r *Renderer) Typeface() *Typeface { return r.typeface }

// SetTypeface configures the typeface used for measurement and drawing.
func (r *Renderer) SetTypeface(tf *Typeface) { r.typeface = tf }

// TypeSize returns the currently configured type size.
func (r *Renderer) TypeSize() float64 { return r.typeSize }

// SetTypeSize configures the type size used for measurement and drawing.
func (r *Renderer) SetTypeSize(size float64) { r.typeSize = size }

// WritingDirection returns the currently configured writing direction.
func (r *Renderer) WritingDirection() Direction { return r.direction }

// SetWritingDirection configures the writing direction. Backward
// directions lay glyph sequences out from the trailing end, so logical
// glyph order always maps to correct visual order.
func (r *Renderer) SetWritingDirection(d Direction) { r.direction = d }

// FillColor returns the fill color used for drawing.
func (r *Renderer) FillColor() color.RGBA { return r.fillColor }

// SetFillColor configures the fill color used for drawing.
func (r *Renderer) SetFillColor(c color.RGBA) { r.fillColor = c }

// ComputeBoundingBox computes the tight rectangle enclosing the paths of
// the given glyph sequence, as positioned by offsets and advances. The
// rectangle is relative to the pen start, with y growing downward from
// the baseline. The zero Rect is returned for an empty sequence or when
// no glyph has a path.
func (r *Renderer) ComputeBoundingBox(ids collections.IntList, offsets collections.PointList, advances collections.FloatList) geom.Rect {
	if r.typeface == nil {
		return geom.Rect{}
	}

	var box geom.Rect
	pen := 0.0
	n := ids.Len()
	for i := 0; i < n; i++ {
		j := i
		if r.direction.IsBackward() {
			j = n - 1 - i
		}
		off := offsets.At(j)
		bounds := r.typeface.GlyphBounds(ids.At(j), r.typeSize)
		if !bounds.Empty() {
			box = box.Union(bounds.Translate(pen+off.X, off.Y))
		}
		pen += advances.At(j)
	}
	return box
}

// DrawGlyphs draws the glyph sequence onto the canvas, pen-walking the
// advances from the current canvas origin. Glyph sequences arrive in
// logical order; backward directions are walked in reverse so the first
// logical glyph lands at the trailing edge.
func (r *Renderer) DrawGlyphs(canvas Canvas, ids collections.IntList, offsets collections.PointList, advances collections.FloatList) error {
	if r.typeface == nil {
		return ErrNoTypeface
	}

	pen := 0.0
	n := ids.Len()
	for i := 0; i < n; i++ {
		j := i
		if r.direction.IsBackward() {
			j = n - 1 - i
		}
		off := offsets.At(j)
		if err := canvas.DrawGlyph(r.typeface, r.typeSize, ids.At(j), pen+off.X, off.Y, r.fillColor); err != nil {
			return fmt.Errorf("graphics: drawing glyph %d: %w", j, err)
		}
		pen += advances.At(j)
	}
	return nil
}
