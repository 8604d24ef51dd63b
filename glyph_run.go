package typeset

import (
	"fmt"
	"math"
	"sync/atomic"

	"github.com/gogpu/typeset/collections"
	"github.com/gogpu/typeset/geom"
	"github.com/gogpu/typeset/graphics"
)

// widthUnset is the memo sentinel for a width that has not been computed.
// Advance sums are finite and non-negative, so negative infinity can
// never be a computed result.
var widthUnset = math.Float64bits(math.Inf(-1))

// GlyphRun is a character-range window onto an IntrinsicRun. It is the
// public, bounds-validating accessor to shaped data: every glyph index it
// exposes or accepts is relative to its own glyph window, never to the
// intrinsic run's absolute indices.
//
// A GlyphRun's origin is assigned exactly once by its owning ComposedLine
// before the run is published; the width memo is written at most
// idempotently. Both make a published run safe for concurrent readers.
type GlyphRun struct {
	intrinsic   *IntrinsicRun
	charStart   int
	charEnd     int
	glyphOffset int
	glyphCount  int

	originX float64
	originY float64

	// width memoizes the full-run typographic extent as float64 bits.
	// Racing writers all compute the same value from immutable inputs, so
	// a compare-and-swap without a lock is sufficient.
	width atomic.Uint64
}

// NewGlyphRun creates a run windowing the character range
// [charStart, charEnd) of an intrinsic run.
//
// Precondition: charStart < charEnd and both lie within the intrinsic
// run's character range. Violating this is a programming error, not a
// recoverable condition; use Slice for caller-supplied ranges.
func NewGlyphRun(intrinsic *IntrinsicRun, charStart, charEnd int) *GlyphRun {
	offset := intrinsic.CharGlyphStart(charStart)
	run := &GlyphRun{
		intrinsic:   intrinsic,
		charStart:   charStart,
		charEnd:     charEnd,
		glyphOffset: offset,
		glyphCount:  intrinsic.CharGlyphEnd(charEnd-1) - offset,
	}
	run.width.Store(widthUnset)
	return run
}

// Slice returns an independent run windowing [charStart, charEnd), which
// must be a non-empty sub-range of this run's character range. The
// derived run shares the intrinsic data but has fresh, unassigned origins
// and its own width memo.
func (r *GlyphRun) Slice(charStart, charEnd int) (*GlyphRun, error) {
	if charStart < r.charStart {
		return nil, fmt.Errorf("typeset: slice char start %d before run char start %d", charStart, r.charStart)
	}
	if charEnd > r.charEnd {
		return nil, fmt.Errorf("typeset: slice char end %d after run char end %d", charEnd, r.charEnd)
	}
	if charStart >= charEnd {
		return nil, fmt.Errorf("%w: char start %d, char end %d", ErrEmptyCharRange, charStart, charEnd)
	}
	return NewGlyphRun(r.intrinsic, charStart, charEnd), nil
}

// checkRange validates a run-local half-open glyph range. Exactly one
// check fires, in the order: negative start, end beyond count, start
// beyond end.
func (r *GlyphRun) checkRange(glyphStart, glyphEnd int) error {
	if glyphStart < 0 || glyphEnd > r.glyphCount || glyphStart > glyphEnd {
		return &RangeError{Start: glyphStart, End: glyphEnd, Count: r.glyphCount}
	}
	return nil
}

// CharStart returns the index of the first character of this run in the
// source text.
func (r *GlyphRun) CharStart() int { return r.charStart }

// CharEnd returns the index after the last character of this run in the
// source text.
func (r *GlyphRun) CharEnd() int { return r.charEnd }

// BidiLevel returns the bidirectional embedding level of this run.
func (r *GlyphRun) BidiLevel() uint8 { return r.intrinsic.BidiLevel() }

// Typeface returns the typeface of this run.
func (r *GlyphRun) Typeface() *graphics.Typeface { return r.intrinsic.Typeface() }

// TypeSize returns the type size of this run.
func (r *GlyphRun) TypeSize() float64 { return r.intrinsic.TypeSize() }

// Direction returns the writing direction of this run.
func (r *GlyphRun) Direction() graphics.Direction { return r.intrinsic.Direction() }

// GlyphCount returns the number of glyphs in this run's window.
func (r *GlyphRun) GlyphCount() int { return r.glyphCount }

// GlyphIDs returns a read-only view of the glyph IDs in this run.
func (r *GlyphRun) GlyphIDs() collections.IntList {
	return collections.NewIntView(r.intrinsic.glyphIDs[r.glyphOffset : r.glyphOffset+r.glyphCount])
}

// GlyphOffsets returns a read-only view of the per-glyph pen offsets in
// this run.
func (r *GlyphRun) GlyphOffsets() collections.PointList {
	return collections.NewPointView(r.intrinsic.glyphOffsets[r.glyphOffset : r.glyphOffset+r.glyphCount])
}

// GlyphAdvances returns a read-only view of the glyph advances in this
// run.
func (r *GlyphRun) GlyphAdvances() collections.FloatList {
	return collections.NewFloatView(r.intrinsic.glyphAdvances[r.glyphOffset : r.glyphOffset+r.glyphCount])
}

// ClusterMap returns a read-only view mapping each character of this run
// to the first glyph of its cluster. Indices are run-local: the intrinsic
// cluster map is windowed to this run's characters and every entry has
// the run's glyph offset subtracted.
func (r *GlyphRun) ClusterMap() collections.IntList {
	start := r.charStart - r.intrinsic.charStart
	size := r.charEnd - r.charStart
	return collections.NewShiftedIntView(r.intrinsic.clusterMap[start:start+size], r.glyphOffset)
}

// charGlyphStart returns the run-local index of the first glyph of the
// cluster containing charIndex.
func (r *GlyphRun) charGlyphStart(charIndex int) int {
	return r.intrinsic.CharGlyphStart(charIndex) - r.glyphOffset
}

// charGlyphEnd returns the run-local index after the last glyph of the
// cluster containing charIndex.
func (r *GlyphRun) charGlyphEnd(charIndex int) int {
	return r.intrinsic.CharGlyphEnd(charIndex) - r.glyphOffset
}

// OriginX returns the x-origin of this run in its parent line.
func (r *GlyphRun) OriginX() float64 { return r.originX }

// OriginY returns the y-origin of this run in its parent line.
func (r *GlyphRun) OriginY() float64 { return r.originY }

// setOrigin is called exactly once by the owning line during assembly,
// before the run is published to other readers.
func (r *GlyphRun) setOrigin(x, y float64) {
	r.originX = x
	r.originY = y
}

// Ascent returns the ascent of this run, the distance from the top of the
// run to the baseline. It is always either positive or zero.
func (r *GlyphRun) Ascent() float64 { return r.intrinsic.Ascent() }

// Descent returns the descent of this run, the distance from the baseline
// to the bottom of the run. It is always either positive or zero.
func (r *GlyphRun) Descent() float64 { return r.intrinsic.Descent() }

// Leading returns the leading of this run, the distance that should be
// placed between two lines.
func (r *GlyphRun) Leading() float64 { return r.intrinsic.Leading() }

// Width returns the typographic width of this run. The value is computed
// on first access and memoized; the computation is a pure function of
// immutable state, so concurrent first accesses may compute redundantly
// but never disagree.
func (r *GlyphRun) Width() float64 {
	if bits := r.width.Load(); bits != widthUnset {
		return math.Float64frombits(bits)
	}
	w := r.intrinsic.MeasureGlyphs(r.glyphOffset, r.glyphOffset+r.glyphCount)
	r.width.CompareAndSwap(widthUnset, math.Float64bits(w))
	return w
}

// Height returns the typographic height of this run.
func (r *GlyphRun) Height() float64 {
	return r.intrinsic.Ascent() + r.intrinsic.Descent() + r.intrinsic.Leading()
}

// ComputeTypographicExtent calculates the sum of glyph advances over the
// run-local glyph range [glyphStart, glyphEnd).
func (r *GlyphRun) ComputeTypographicExtent(glyphStart, glyphEnd int) (float64, error) {
	if err := r.checkRange(glyphStart, glyphEnd); err != nil {
		return 0, err
	}
	return r.intrinsic.MeasureGlyphs(r.glyphOffset+glyphStart, r.glyphOffset+glyphEnd), nil
}

// ComputeBoundingBox calculates the rectangle that tightly encloses the
// paths of this run's glyphs in the run-local range [glyphStart,
// glyphEnd). The renderer's typeface, type size and writing direction are
// configured as a side effect; callers sharing a renderer across
// goroutines must serialize access.
func (r *GlyphRun) ComputeBoundingBox(renderer *graphics.Renderer, glyphStart, glyphEnd int) (geom.Rect, error) {
	if err := r.checkRange(glyphStart, glyphEnd); err != nil {
		return geom.Rect{}, err
	}

	r.configure(renderer)
	ids, offsets, advances := r.glyphRange(glyphStart, glyphEnd)
	return renderer.ComputeBoundingBox(ids, offsets, advances), nil
}

// Draw draws this run completely onto the canvas using the renderer.
func (r *GlyphRun) Draw(renderer *graphics.Renderer, canvas graphics.Canvas) error {
	return r.DrawRange(renderer, canvas, 0, r.glyphCount)
}

// DrawRange draws the run-local glyph range [glyphStart, glyphEnd) onto
// the canvas using the renderer. The renderer's typeface, type size and
// writing direction are configured as a side effect.
func (r *GlyphRun) DrawRange(renderer *graphics.Renderer, canvas graphics.Canvas, glyphStart, glyphEnd int) error {
	if err := r.checkRange(glyphStart, glyphEnd); err != nil {
		return err
	}

	r.configure(renderer)
	ids, offsets, advances := r.glyphRange(glyphStart, glyphEnd)
	return renderer.DrawGlyphs(canvas, ids, offsets, advances)
}

// configure pushes this run's attributes into the shared renderer.
func (r *GlyphRun) configure(renderer *graphics.Renderer) {
	renderer.SetTypeface(r.intrinsic.Typeface())
	renderer.SetTypeSize(r.intrinsic.TypeSize())
	renderer.SetWritingDirection(r.intrinsic.Direction())
}

// glyphRange builds views over a validated run-local glyph range.
func (r *GlyphRun) glyphRange(glyphStart, glyphEnd int) (collections.IntList, collections.PointList, collections.FloatList) {
	lo := r.glyphOffset + glyphStart
	hi := r.glyphOffset + glyphEnd
	return collections.NewIntView(r.intrinsic.glyphIDs[lo:hi]),
		collections.NewPointView(r.intrinsic.glyphOffsets[lo:hi]),
		collections.NewFloatView(r.intrinsic.glyphAdvances[lo:hi])
}

// String returns a deterministic structural dump of every public
// attribute of the run.
func (r *GlyphRun) String() string {
	return fmt.Sprintf("GlyphRun{charStart=%d, charEnd=%d, bidiLevel=%d, writingDirection=%s, "+
		"glyphCount=%d, glyphIds=%s, glyphOffsets=%s, glyphAdvances=%s, clusterMap=%s, "+
		"originX=%g, originY=%g, ascent=%g, descent=%g, leading=%g, width=%g, height=%g}",
		r.charStart, r.charEnd, r.BidiLevel(), r.Direction(),
		r.glyphCount, r.GlyphIDs(), r.GlyphOffsets(), r.GlyphAdvances(), r.ClusterMap(),
		r.originX, r.originY, r.Ascent(), r.Descent(), r.Leading(), r.Width(), r.Height())
}
