package typeset

import (
	"fmt"
	"iter"
	"strings"

	"github.com/gogpu/typeset/graphics"
)

// ComposedFrame is the output of the text-framing process: an ordered,
// immutable sequence of composed lines plus container geometry. Line
// order is visual, top to bottom, and is assumed to match increasing top
// coordinates; queries do not re-validate it.
type ComposedFrame struct {
	charStart int
	charEnd   int
	lines     []*ComposedLine

	originX float64
	originY float64
	width   float64
	height  float64
}

// NewComposedFrame constructs a frame from a finalized line list. The
// list is copied; container geometry is attached separately with
// SetContainerRect.
func NewComposedFrame(charStart, charEnd int, lines []*ComposedLine) *ComposedFrame {
	owned := make([]*ComposedLine, len(lines))
	copy(owned, lines)
	return &ComposedFrame{
		charStart: charStart,
		charEnd:   charEnd,
		lines:     owned,
	}
}

// SetContainerRect attaches the frame's container geometry. The
// typesetting stage calls it exactly once, after construction; the frame
// is immutable from then on.
func (f *ComposedFrame) SetContainerRect(originX, originY, width, height float64) {
	f.originX = originX
	f.originY = originY
	f.width = width
	f.height = height
}

// CharStart returns the index of the first character of this frame in the
// source text.
func (f *ComposedFrame) CharStart() int { return f.charStart }

// CharEnd returns the index after the last character of this frame in the
// source text.
func (f *ComposedFrame) CharEnd() int { return f.charEnd }

// OriginX returns the x-origin of this frame.
func (f *ComposedFrame) OriginX() float64 { return f.originX }

// OriginY returns the y-origin of this frame.
func (f *ComposedFrame) OriginY() float64 { return f.originY }

// Width returns the width of this frame.
func (f *ComposedFrame) Width() float64 { return f.width }

// Height returns the height of this frame.
func (f *ComposedFrame) Height() float64 { return f.height }

// LineCount returns the number of lines in this frame.
func (f *ComposedFrame) LineCount() int { return len(f.lines) }

// Line returns the line at index i, counting from the top.
func (f *ComposedFrame) Line(i int) *ComposedLine { return f.lines[i] }

// Lines returns an iterator over the lines in top-to-bottom order.
func (f *ComposedFrame) Lines() iter.Seq[*ComposedLine] {
	return func(yield func(*ComposedLine) bool) {
		for _, line := range f.lines {
			if !yield(line) {
				return
			}
		}
	}
}

// LineIndexFromPosition returns the index of the line containing the
// given position in frame coordinates.
//
// Hit-testing is vertical only: the first line whose span
// [top, top+height] contains y wins, both boundaries inclusive, so a y
// exactly on a boundary resolves to the upper line. When y lies outside
// every span the index of the last line is returned, clamping rather
// than failing; an empty frame yields -1. The x coordinate is accepted
// for the caller's convenience and left to line-level queries such as
// ComposedLine.NearestCharIndex.
func (f *ComposedFrame) LineIndexFromPosition(x, y float64) int {
	_ = x

	for i, line := range f.lines {
		top := line.Top()
		if y >= top && y <= top+line.Height() {
			return i
		}
	}
	return len(f.lines) - 1
}

// Draw draws this frame onto the canvas at position (x, y) using the
// renderer. Every line is drawn inside a scoped translation to the frame
// position plus the line's own origin, so lines land at absolute
// positions independent of draw order and the canvas transform survives
// a failing line intact.
func (f *ComposedFrame) Draw(renderer *graphics.Renderer, canvas graphics.Canvas, x, y float64) error {
	for _, line := range f.lines {
		if err := drawTranslated(canvas, x, y, func() error {
			return line.Draw(renderer, canvas, line.OriginX(), line.OriginY())
		}); err != nil {
			return fmt.Errorf("typeset: drawing line at char %d: %w", line.CharStart(), err)
		}
	}
	return nil
}

// String returns a deterministic structural dump of the frame.
func (f *ComposedFrame) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "ComposedFrame{charStart=%d, charEnd=%d, originX=%g, originY=%g, width=%g, height=%g, lines=[",
		f.charStart, f.charEnd, f.originX, f.originY, f.width, f.height)
	for i, line := range f.lines {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(line.String())
	}
	b.WriteString("]}")
	return b.String()
}
