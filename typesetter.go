package typeset

import (
	"fmt"
	"unicode"

	"github.com/gogpu/typeset/geom"
)

// Alignment specifies horizontal line placement within the frame width.
type Alignment int

const (
	// AlignLeft aligns lines to the left edge (default).
	AlignLeft Alignment = iota
	// AlignCenter centers lines horizontally.
	AlignCenter
	// AlignRight aligns lines to the right edge.
	AlignRight
)

// String returns the string representation of the alignment.
func (a Alignment) String() string {
	switch a {
	case AlignLeft:
		return "Left"
	case AlignCenter:
		return "Center"
	case AlignRight:
		return "Right"
	default:
		return "Unknown"
	}
}

// FrameOptions configures frame composition.
type FrameOptions struct {
	// Alignment specifies horizontal line placement.
	Alignment Alignment

	// LineSpacing is a multiplier for the gap between lines.
	// Zero or less falls back to 1.0, the natural leading.
	LineSpacing float64
}

// DefaultFrameOptions returns the default frame options.
func DefaultFrameOptions() FrameOptions {
	return FrameOptions{
		Alignment:   AlignLeft,
		LineSpacing: 1.0,
	}
}

// Typesetter breaks a shaped paragraph into lines and stacks them into
// frames. It owns the paragraph text (for break opportunities) and the
// intrinsic runs the shaping stage produced for it.
//
// A typesetter is immutable after construction and safe for concurrent
// use; the lines and frames it creates are independent objects.
type Typesetter struct {
	text []rune
	runs []*IntrinsicRun
}

// NewTypesetter creates a typesetter for a paragraph. The runs must be in
// logical order and cover exactly [0, len(text)) without gaps.
func NewTypesetter(text []rune, runs []*IntrinsicRun) (*Typesetter, error) {
	if len(text) == 0 {
		return nil, fmt.Errorf("%w: empty paragraph", ErrEmptyCharRange)
	}
	next := 0
	for i, run := range runs {
		if run.CharStart() != next {
			return nil, fmt.Errorf("typeset: run %d starts at char %d, expected %d", i, run.CharStart(), next)
		}
		next = run.CharEnd()
	}
	if next != len(text) {
		return nil, fmt.Errorf("typeset: runs cover %d characters, text has %d", next, len(text))
	}
	return &Typesetter{text: text, runs: runs}, nil
}

// CharCount returns the number of characters in the paragraph.
func (t *Typesetter) CharCount() int { return len(t.text) }

// runsInRange returns the intrinsic runs intersecting [charStart, charEnd).
func (t *Typesetter) runsInRange(charStart, charEnd int) []*IntrinsicRun {
	var out []*IntrinsicRun
	for _, run := range t.runs {
		if run.CharEnd() <= charStart || run.CharStart() >= charEnd {
			continue
		}
		out = append(out, run)
	}
	return out
}

// SuggestLineBreak returns the character index to end a line starting at
// charStart so its extent stays within maxWidth. The break lands after
// the last whitespace that fits; without one, the line is force-broken at
// the overflowing cluster. At least one cluster of progress is always
// made, and the paragraph end is returned when everything fits.
func (t *Typesetter) SuggestLineBreak(charStart int, maxWidth float64) int {
	extent := 0.0
	lastBreak := -1

	for _, run := range t.runsInRange(charStart, len(t.text)) {
		start := max(charStart, run.CharStart())
		c := start
		for c < run.CharEnd() {
			// Advance cluster by cluster; clusters are indivisible.
			clusterEnd := c + 1
			first := run.CharGlyphStart(c)
			for clusterEnd < run.CharEnd() && run.CharGlyphStart(clusterEnd) == first {
				clusterEnd++
			}
			extent += run.MeasureGlyphs(first, run.CharGlyphEnd(c))

			if extent > maxWidth && c > charStart {
				breakAt := c
				if lastBreak > charStart {
					breakAt = lastBreak
				}
				Logger().Debug("line break suggested",
					"charStart", charStart, "breakAt", breakAt, "extent", extent, "maxWidth", maxWidth)
				return breakAt
			}

			for i := c; i < clusterEnd; i++ {
				if unicode.IsSpace(t.text[i]) {
					lastBreak = i + 1
				}
			}
			c = clusterEnd
		}
	}

	return len(t.text)
}

// CreateLine composes the characters [charStart, charEnd) into a line:
// intrinsic runs are windowed into glyph runs, reordered into visual
// order by bidi level, and assembled with origins assigned.
func (t *Typesetter) CreateLine(charStart, charEnd int) *ComposedLine {
	var logical []*GlyphRun
	for _, run := range t.runsInRange(charStart, charEnd) {
		start := max(charStart, run.CharStart())
		end := min(charEnd, run.CharEnd())
		logical = append(logical, NewGlyphRun(run, start, end))
	}
	return NewComposedLine(charStart, charEnd, reorderVisually(logical))
}

// reorderVisually applies the UAX#9 L2 rule to runs in logical order:
// from the highest level down to the lowest odd level, every maximal
// subsequence at or above that level is reversed.
func reorderVisually(runs []*GlyphRun) []*GlyphRun {
	if len(runs) < 2 {
		return runs
	}

	maxLevel := uint8(0)
	minOdd := uint8(255)
	for _, run := range runs {
		level := run.BidiLevel()
		if level > maxLevel {
			maxLevel = level
		}
		if level%2 == 1 && level < minOdd {
			minOdd = level
		}
	}
	if minOdd == 255 {
		return runs
	}

	for level := maxLevel; level >= minOdd; level-- {
		for i := 0; i < len(runs); {
			if runs[i].BidiLevel() < level {
				i++
				continue
			}
			j := i
			for j < len(runs) && runs[j].BidiLevel() >= level {
				j++
			}
			for lo, hi := i, j-1; lo < hi; lo, hi = lo+1, hi-1 {
				runs[lo], runs[hi] = runs[hi], runs[lo]
			}
			i = j
		}
	}
	return runs
}

// CreateFrame breaks the characters [charStart, charEnd) into lines that
// fit rect's width and stacks as many as fit rect's height, top to
// bottom. Line origins are assigned according to the alignment; the
// frame's container geometry is attached before returning.
func (t *Typesetter) CreateFrame(charStart, charEnd int, rect geom.Rect, opts FrameOptions) *ComposedFrame {
	spacing := opts.LineSpacing
	if spacing <= 0 {
		spacing = 1.0
	}

	var lines []*ComposedLine
	y := 0.0
	start := charStart
	for start < charEnd {
		end := t.SuggestLineBreak(start, rect.Width())
		if end > charEnd {
			end = charEnd
		}
		line := t.CreateLine(start, end)

		if len(lines) > 0 && y+line.Height() > rect.Height() {
			Logger().Warn("frame height exhausted",
				"charStart", charStart, "composed", start, "charEnd", charEnd)
			charEnd = start
			break
		}

		x := 0.0
		switch opts.Alignment {
		case AlignCenter:
			x = (rect.Width() - line.Width()) / 2
		case AlignRight:
			x = rect.Width() - line.Width()
		}
		line.setOrigin(x, y+line.Ascent())
		y += line.Ascent() + line.Descent() + line.Leading()*spacing

		lines = append(lines, line)
		start = end
	}

	frame := NewComposedFrame(charStart, charEnd, lines)
	frame.SetContainerRect(rect.MinX, rect.MinY, rect.Width(), rect.Height())
	Logger().Debug("frame composed",
		"charStart", charStart, "charEnd", charEnd, "lines", len(lines))
	return frame
}
