package collections

import (
	"fmt"
	"strings"
)

// FloatList is a read-only sequence of float64 backed by shared storage.
type FloatList interface {
	// Len returns the number of elements in the view.
	Len() int

	// At returns the element at index i.
	// It panics with an *IndexError when i is outside [0, Len).
	At(i int) float64

	// CopyTo copies min(Len, len(dst)) elements into dst and returns the
	// number of elements copied.
	CopyTo(dst []float64) int

	// Sub returns a view of the half-open range [start, end), validated
	// against this view's length. The returned view shares the backing
	// buffer.
	Sub(start, end int) (FloatList, error)

	// Scaled returns a freshly allocated copy with every element
	// multiplied by scale.
	Scaled(scale float64) []float64

	// String returns a deterministic "[a, b, c]" dump of all elements.
	String() string
}

type floatView struct {
	data []float64
}

// NewFloatView returns a read-only view of data. The view shares data's
// storage; callers window it by re-slicing before construction.
func NewFloatView(data []float64) FloatList {
	return &floatView{data: data}
}

func (v *floatView) Len() int { return len(v.data) }

func (v *floatView) At(i int) float64 {
	checkIndex(i, len(v.data))
	return v.data[i]
}

func (v *floatView) CopyTo(dst []float64) int {
	return copy(dst, v.data)
}

func (v *floatView) Sub(start, end int) (FloatList, error) {
	if err := checkSubRange(start, end, len(v.data)); err != nil {
		return nil, err
	}
	return &floatView{data: v.data[start:end]}, nil
}

func (v *floatView) Scaled(scale float64) []float64 {
	out := make([]float64, len(v.data))
	for i, f := range v.data {
		out[i] = f * scale
	}
	return out
}

func (v *floatView) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for i, f := range v.data {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%g", f)
	}
	b.WriteByte(']')
	return b.String()
}
