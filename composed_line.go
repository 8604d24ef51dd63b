package typeset

import (
	"fmt"
	"iter"
	"math"
	"strings"

	"github.com/gogpu/typeset/graphics"
)

// ComposedLine is an ordered sequence of glyph runs sharing one baseline.
// Runs are stored in visual order, left to right; each run's origin is
// assigned during line assembly and never changes afterwards.
type ComposedLine struct {
	charStart int
	charEnd   int
	runs      []*GlyphRun

	originX float64
	originY float64

	ascent  float64
	descent float64
	leading float64
	width   float64
}

// NewComposedLine assembles a line from runs in visual order. Each run's
// origin is assigned here, exactly once: x accumulates the widths of the
// preceding runs and y is zero on the line's baseline. The line's
// ascent, descent and leading are the maxima over its runs and its width
// is the sum of run widths.
func NewComposedLine(charStart, charEnd int, visualRuns []*GlyphRun) *ComposedLine {
	line := &ComposedLine{
		charStart: charStart,
		charEnd:   charEnd,
		runs:      visualRuns,
	}

	x := 0.0
	for _, run := range visualRuns {
		run.setOrigin(x, 0)
		x += run.Width()

		if run.Ascent() > line.ascent {
			line.ascent = run.Ascent()
		}
		if run.Descent() > line.descent {
			line.descent = run.Descent()
		}
		if run.Leading() > line.leading {
			line.leading = run.Leading()
		}
	}
	line.width = x

	return line
}

// CharStart returns the index of the first character of this line in the
// source text.
func (l *ComposedLine) CharStart() int { return l.charStart }

// CharEnd returns the index after the last character of this line in the
// source text.
func (l *ComposedLine) CharEnd() int { return l.charEnd }

// RunCount returns the number of glyph runs in this line.
func (l *ComposedLine) RunCount() int { return len(l.runs) }

// Run returns the glyph run at visual index i.
func (l *ComposedLine) Run(i int) *GlyphRun { return l.runs[i] }

// Runs returns an iterator over the glyph runs in visual order.
func (l *ComposedLine) Runs() iter.Seq[*GlyphRun] {
	return func(yield func(*GlyphRun) bool) {
		for _, run := range l.runs {
			if !yield(run) {
				return
			}
		}
	}
}

// OriginX returns the x-origin of this line in its parent frame.
func (l *ComposedLine) OriginX() float64 { return l.originX }

// OriginY returns the baseline y-origin of this line in its parent frame.
func (l *ComposedLine) OriginY() float64 { return l.originY }

// setOrigin is called exactly once by the typesetting stage when the line
// is placed in a frame.
func (l *ComposedLine) setOrigin(x, y float64) {
	l.originX = x
	l.originY = y
}

// Ascent returns the ascent of this line, the maximum over its runs.
func (l *ComposedLine) Ascent() float64 { return l.ascent }

// Descent returns the descent of this line, the maximum over its runs.
func (l *ComposedLine) Descent() float64 { return l.descent }

// Leading returns the leading of this line, the maximum over its runs.
func (l *ComposedLine) Leading() float64 { return l.leading }

// Width returns the typographic width of this line.
func (l *ComposedLine) Width() float64 { return l.width }

// Height returns the typographic height of this line.
func (l *ComposedLine) Height() float64 { return l.ascent + l.descent + l.leading }

// Top returns the y-coordinate of the top edge of this line in its parent
// frame.
func (l *ComposedLine) Top() float64 { return l.originY - l.ascent }

// CharDistance returns the distance of the leading edge of the character
// at charIndex from the start of the line. For right-to-left runs the
// leading edge is the cluster's right edge. Characters outside the line's
// range resolve to the line width.
func (l *ComposedLine) CharDistance(charIndex int) float64 {
	for _, run := range l.runs {
		if charIndex < run.CharStart() || charIndex >= run.CharEnd() {
			continue
		}
		return run.OriginX() + runCharDistance(run, charIndex)
	}
	return l.width
}

// runCharDistance returns the run-local x of the caret at the leading
// edge of charIndex's cluster.
func runCharDistance(run *GlyphRun, charIndex int) float64 {
	before := run.intrinsic.MeasureGlyphs(run.glyphOffset, run.glyphOffset+run.charGlyphStart(charIndex))
	if run.Direction().IsBackward() {
		return run.Width() - before
	}
	return before
}

// NearestCharIndex returns the index of the character whose leading edge
// lies nearest to the given distance from the line start. The result is
// always within [CharStart, CharEnd); an empty line resolves to
// CharStart.
func (l *ComposedLine) NearestCharIndex(distance float64) int {
	nearest := l.charStart
	best := math.Inf(1)
	for _, run := range l.runs {
		for c := run.CharStart(); c < run.CharEnd(); c++ {
			d := math.Abs(run.OriginX() + runCharDistance(run, c) - distance)
			if d < best {
				best = d
				nearest = c
			}
		}
	}
	return nearest
}

// Draw draws this line onto the canvas at position (x, y) using the
// renderer. Each run is drawn inside a scoped translation to its own
// origin; the translation is restored even when a run fails to draw.
func (l *ComposedLine) Draw(renderer *graphics.Renderer, canvas graphics.Canvas, x, y float64) error {
	for _, run := range l.runs {
		if err := drawTranslated(canvas, x+run.OriginX(), y+run.OriginY(), func() error {
			return run.Draw(renderer, canvas)
		}); err != nil {
			return err
		}
	}
	return nil
}

// drawTranslated applies a canvas translation for the duration of draw
// and guarantees the inverse is applied afterwards, failure or not.
func drawTranslated(canvas graphics.Canvas, dx, dy float64, draw func() error) error {
	canvas.Translate(dx, dy)
	defer canvas.Translate(-dx, -dy)
	return draw()
}

// String returns a deterministic structural dump of the line.
func (l *ComposedLine) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "ComposedLine{charStart=%d, charEnd=%d, originX=%g, originY=%g, "+
		"ascent=%g, descent=%g, leading=%g, width=%g, height=%g, runs=[",
		l.charStart, l.charEnd, l.originX, l.originY,
		l.ascent, l.descent, l.leading, l.width, l.Height())
	for i, run := range l.runs {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(run.String())
	}
	b.WriteString("]}")
	return b.String()
}
