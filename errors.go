package typeset

import (
	"errors"
	"fmt"
)

// Sentinel errors for the typeset package.
var (
	// ErrEmptyCharRange is returned when a character range is empty or
	// inverted.
	ErrEmptyCharRange = errors.New("typeset: character range is empty")

	// ErrNoTypeface is returned when an intrinsic run is constructed
	// without a typeface.
	ErrNoTypeface = errors.New("typeset: typeface is nil")

	// ErrNonPositiveTypeSize is returned when an intrinsic run is
	// constructed with a type size of zero or less.
	ErrNonPositiveTypeSize = errors.New("typeset: type size must be positive")
)

// RangeError reports an invalid half-open glyph range passed to a
// range-validating GlyphRun operation. Exactly one violated bound is
// cited, the first of: negative start, end beyond the glyph count,
// start beyond end.
type RangeError struct {
	Start int
	End   int
	Count int
}

func (e *RangeError) Error() string {
	switch {
	case e.Start < 0:
		return fmt.Sprintf("typeset: invalid glyph range: glyph start %d", e.Start)
	case e.End > e.Count:
		return fmt.Sprintf("typeset: invalid glyph range: glyph end %d, glyph count %d", e.End, e.Count)
	default:
		return fmt.Sprintf("typeset: invalid glyph range: glyph start %d, glyph end %d", e.Start, e.End)
	}
}
