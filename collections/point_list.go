package collections

import (
	"strings"

	"github.com/gogpu/typeset/geom"
)

// PointList is a read-only sequence of points backed by shared storage.
type PointList interface {
	// Len returns the number of points in the view.
	Len() int

	// At returns the point at index i.
	// It panics with an *IndexError when i is outside [0, Len).
	At(i int) geom.Point

	// CopyTo copies min(Len, len(dst)) points into dst and returns the
	// number of points copied.
	CopyTo(dst []geom.Point) int

	// Sub returns a view of the half-open range [start, end), validated
	// against this view's length. The returned view shares the backing
	// buffer.
	Sub(start, end int) (PointList, error)

	// Scaled returns a freshly allocated copy with both coordinates of
	// every point multiplied by scale.
	Scaled(scale float64) []geom.Point

	// String returns a deterministic "[(x, y), ...]" dump of all points.
	String() string
}

type pointView struct {
	data []geom.Point
}

// NewPointView returns a read-only view of data. The view shares data's
// storage; callers window it by re-slicing before construction.
func NewPointView(data []geom.Point) PointList {
	return &pointView{data: data}
}

func (v *pointView) Len() int { return len(v.data) }

func (v *pointView) At(i int) geom.Point {
	checkIndex(i, len(v.data))
	return v.data[i]
}

func (v *pointView) CopyTo(dst []geom.Point) int {
	return copy(dst, v.data)
}

func (v *pointView) Sub(start, end int) (PointList, error) {
	if err := checkSubRange(start, end, len(v.data)); err != nil {
		return nil, err
	}
	return &pointView{data: v.data[start:end]}, nil
}

func (v *pointView) Scaled(scale float64) []geom.Point {
	out := make([]geom.Point, len(v.data))
	for i, p := range v.data {
		out[i] = geom.Point{X: p.X * scale, Y: p.Y * scale}
	}
	return out
}

func (v *pointView) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for i, p := range v.data {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(p.String())
	}
	b.WriteByte(']')
	return b.String()
}
