// Package collections provides read-only, bounds-checked list views over
// buffers shared with the shaping stage.
//
// Views never copy the backing buffer: slicing a view yields a fresh view
// over the same storage. Mutation is impossible by construction; the view
// interfaces expose no setter, so shared glyph buffers can never be
// written through a view. Out-of-range single-index access panics with an
// *IndexError (mirroring native slice indexing), while sub-ranging returns
// a *RangeError because callers commonly derive ranges from user input.
package collections

import (
	"fmt"
	"strings"
)

// IntList is a read-only sequence of ints backed by shared storage.
type IntList interface {
	// Len returns the number of elements in the view.
	Len() int

	// At returns the element at index i.
	// It panics with an *IndexError when i is outside [0, Len).
	At(i int) int

	// CopyTo copies min(Len, len(dst)) elements into dst and returns the
	// number of elements copied.
	CopyTo(dst []int) int

	// Sub returns a view of the half-open range [start, end), validated
	// against this view's length. The returned view shares the backing
	// buffer.
	Sub(start, end int) (IntList, error)

	// ToSlice returns a freshly allocated copy of the view's elements.
	ToSlice() []int

	// String returns a deterministic "[a, b, c]" dump of all elements.
	String() string
}

// intView is a plain read-only window over an int buffer.
type intView struct {
	data []int
}

// NewIntView returns a read-only view of data. The view shares data's
// storage; callers window it by re-slicing before construction.
func NewIntView(data []int) IntList {
	return &intView{data: data}
}

func (v *intView) Len() int { return len(v.data) }

func (v *intView) At(i int) int {
	checkIndex(i, len(v.data))
	return v.data[i]
}

func (v *intView) CopyTo(dst []int) int {
	return copy(dst, v.data)
}

func (v *intView) Sub(start, end int) (IntList, error) {
	if err := checkSubRange(start, end, len(v.data)); err != nil {
		return nil, err
	}
	return &intView{data: v.data[start:end]}, nil
}

func (v *intView) ToSlice() []int {
	out := make([]int, len(v.data))
	copy(out, v.data)
	return out
}

func (v *intView) String() string {
	return formatInts(v)
}

// shiftedIntView is an index-remapping view: every element is returned
// with a fixed difference subtracted. It converts a cluster map's
// absolute glyph indices into a run-local coordinate system.
type shiftedIntView struct {
	data []int
	diff int
}

// NewShiftedIntView returns a read-only view of data that subtracts diff
// from every element it exposes.
func NewShiftedIntView(data []int, diff int) IntList {
	return &shiftedIntView{data: data, diff: diff}
}

func (v *shiftedIntView) Len() int { return len(v.data) }

func (v *shiftedIntView) At(i int) int {
	checkIndex(i, len(v.data))
	return v.data[i] - v.diff
}

func (v *shiftedIntView) CopyTo(dst []int) int {
	n := copy(dst, v.data)
	if v.diff != 0 {
		for i := 0; i < n; i++ {
			dst[i] -= v.diff
		}
	}
	return n
}

// Sub preserves the difference, so sub-views stay in the same remapped
// coordinate system.
func (v *shiftedIntView) Sub(start, end int) (IntList, error) {
	if err := checkSubRange(start, end, len(v.data)); err != nil {
		return nil, err
	}
	return &shiftedIntView{data: v.data[start:end], diff: v.diff}, nil
}

func (v *shiftedIntView) ToSlice() []int {
	out := make([]int, len(v.data))
	v.CopyTo(out)
	return out
}

func (v *shiftedIntView) String() string {
	return formatInts(v)
}

func formatInts(list IntList) string {
	var b strings.Builder
	b.WriteByte('[')
	for i := 0; i < list.Len(); i++ {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%d", list.At(i))
	}
	b.WriteByte(']')
	return b.String()
}
