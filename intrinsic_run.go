package typeset

import (
	"fmt"

	"github.com/gogpu/typeset/geom"
	"github.com/gogpu/typeset/graphics"
)

// IntrinsicRunData carries the shaping output for one contiguous span,
// handed over by the shaping stage to construct an IntrinsicRun.
//
// All glyph arrays are parallel and in logical order; ClusterMap has one
// entry per character in [CharStart, CharEnd) naming the first glyph of
// the cluster containing that character, and is monotonically
// non-decreasing.
type IntrinsicRunData struct {
	CharStart     int
	CharEnd       int
	BidiLevel     uint8
	Typeface      *graphics.Typeface
	TypeSize      float64
	GlyphIDs      []int
	GlyphOffsets  []geom.Point
	GlyphAdvances []float64
	ClusterMap    []int
}

// IntrinsicRun is the immutable record of one contiguous shaped span: its
// character range, bidi level, typeface and size, and the parallel
// glyph-domain arrays produced by the shaping stage.
//
// An IntrinsicRun is deeply immutable after construction and is shared by
// reference with every GlyphRun windowing it, so it is safe for any
// number of concurrent readers. Its query methods trust their caller to
// pass valid indices; bounds validation is the GlyphRun's job.
type IntrinsicRun struct {
	charStart int
	charEnd   int
	bidiLevel uint8
	typeface  *graphics.Typeface
	typeSize  float64

	glyphIDs      []int
	glyphOffsets  []geom.Point
	glyphAdvances []float64
	clusterMap    []int

	// Metrics derived from the typeface/size pairing, cached at
	// construction time.
	ascent  float64
	descent float64
	leading float64
}

// NewIntrinsicRun validates the shaping output and constructs an
// immutable run. The arrays in data are owned by the run afterwards and
// must not be mutated by the caller.
func NewIntrinsicRun(data IntrinsicRunData) (*IntrinsicRun, error) {
	if data.CharStart >= data.CharEnd {
		return nil, fmt.Errorf("%w: char start %d, char end %d", ErrEmptyCharRange, data.CharStart, data.CharEnd)
	}
	if data.Typeface == nil {
		return nil, ErrNoTypeface
	}
	if data.TypeSize <= 0 {
		return nil, fmt.Errorf("%w: %g", ErrNonPositiveTypeSize, data.TypeSize)
	}

	glyphCount := len(data.GlyphIDs)
	if len(data.GlyphOffsets) != glyphCount || len(data.GlyphAdvances) != glyphCount {
		return nil, fmt.Errorf("typeset: glyph arrays are not parallel: %d ids, %d offsets, %d advances",
			glyphCount, len(data.GlyphOffsets), len(data.GlyphAdvances))
	}
	charCount := data.CharEnd - data.CharStart
	if len(data.ClusterMap) != charCount {
		return nil, fmt.Errorf("typeset: cluster map has %d entries for %d characters",
			len(data.ClusterMap), charCount)
	}
	for i, c := range data.ClusterMap {
		if c < 0 || c >= glyphCount {
			return nil, fmt.Errorf("typeset: cluster map entry %d is %d, outside glyph range [0, %d)",
				i, c, glyphCount)
		}
		if i > 0 && c < data.ClusterMap[i-1] {
			return nil, fmt.Errorf("typeset: cluster map decreases at entry %d: %d after %d",
				i, c, data.ClusterMap[i-1])
		}
	}

	return &IntrinsicRun{
		charStart:     data.CharStart,
		charEnd:       data.CharEnd,
		bidiLevel:     data.BidiLevel,
		typeface:      data.Typeface,
		typeSize:      data.TypeSize,
		glyphIDs:      data.GlyphIDs,
		glyphOffsets:  data.GlyphOffsets,
		glyphAdvances: data.GlyphAdvances,
		clusterMap:    data.ClusterMap,
		ascent:        data.Typeface.Ascent(data.TypeSize),
		descent:       data.Typeface.Descent(data.TypeSize),
		leading:       data.Typeface.Leading(data.TypeSize),
	}, nil
}

// CharStart returns the index of the first character of this run in the
// source text.
func (r *IntrinsicRun) CharStart() int { return r.charStart }

// CharEnd returns the index after the last character of this run in the
// source text.
func (r *IntrinsicRun) CharEnd() int { return r.charEnd }

// BidiLevel returns the bidirectional embedding level of this run.
func (r *IntrinsicRun) BidiLevel() uint8 { return r.bidiLevel }

// Typeface returns the typeface of this run.
func (r *IntrinsicRun) Typeface() *graphics.Typeface { return r.typeface }

// TypeSize returns the type size of this run.
func (r *IntrinsicRun) TypeSize() float64 { return r.typeSize }

// GlyphCount returns the total number of glyphs in this run.
func (r *IntrinsicRun) GlyphCount() int { return len(r.glyphIDs) }

// Direction returns the writing direction of this run, derived from the
// parity of the bidi level: even is left-to-right, odd is right-to-left.
func (r *IntrinsicRun) Direction() graphics.Direction {
	if r.bidiLevel%2 == 1 {
		return graphics.DirectionRTL
	}
	return graphics.DirectionLTR
}

// Ascent returns the ascent of this run at its type size.
func (r *IntrinsicRun) Ascent() float64 { return r.ascent }

// Descent returns the descent of this run at its type size.
func (r *IntrinsicRun) Descent() float64 { return r.descent }

// Leading returns the leading of this run at its type size.
func (r *IntrinsicRun) Leading() float64 { return r.leading }

// CharGlyphStart returns the index of the first glyph of the cluster
// containing charIndex. charIndex must lie in [CharStart, CharEnd).
func (r *IntrinsicRun) CharGlyphStart(charIndex int) int {
	return r.clusterMap[charIndex-r.charStart]
}

// CharGlyphEnd returns the index after the last glyph of the cluster
// containing charIndex. For the last cluster this is the total glyph
// count. charIndex must lie in [CharStart, CharEnd).
func (r *IntrinsicRun) CharGlyphEnd(charIndex int) int {
	cluster := r.clusterMap[charIndex-r.charStart]
	for i := charIndex - r.charStart + 1; i < len(r.clusterMap); i++ {
		if r.clusterMap[i] != cluster {
			return r.clusterMap[i]
		}
	}
	return len(r.glyphIDs)
}

// MeasureGlyphs returns the sum of advances over the absolute glyph range
// [glyphStart, glyphEnd). The range must be valid; no caching happens at
// this layer.
func (r *IntrinsicRun) MeasureGlyphs(glyphStart, glyphEnd int) float64 {
	extent := 0.0
	for i := glyphStart; i < glyphEnd; i++ {
		extent += r.glyphAdvances[i]
	}
	return extent
}
