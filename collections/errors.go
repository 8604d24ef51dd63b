package collections

import "fmt"

// IndexError is the panic value raised by single-index accessors when the
// index falls outside [0, Len). Indexing a view wrongly is a programmer
// error, so it panics exactly like indexing a native slice would.
type IndexError struct {
	Index int
	Size  int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("collections: index %d out of range [0, %d)", e.Index, e.Size)
}

// RangeError is returned by Sub when the requested half-open range is not
// contained in the current view. The message cites the first violated
// bound so callers can correct it.
type RangeError struct {
	Start, End int
	Size       int
}

func (e *RangeError) Error() string {
	switch {
	case e.Start < 0:
		return fmt.Sprintf("collections: sub-range start %d is negative", e.Start)
	case e.End > e.Size:
		return fmt.Sprintf("collections: sub-range end %d exceeds size %d", e.End, e.Size)
	default:
		return fmt.Sprintf("collections: sub-range start %d exceeds end %d", e.Start, e.End)
	}
}

// checkIndex panics with an *IndexError when i is outside [0, size).
func checkIndex(i, size int) {
	if i < 0 || i >= size {
		panic(&IndexError{Index: i, Size: size})
	}
}

// checkSubRange validates a half-open sub-range against the current view
// size. Every derived view re-validates against its own size, never
// against the backing buffer.
func checkSubRange(start, end, size int) error {
	if start < 0 || end > size || start > end {
		return &RangeError{Start: start, End: end, Size: size}
	}
	return nil
}
