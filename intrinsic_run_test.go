package typeset

import (
	"errors"
	"sync"
	"testing"

	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/typeset/geom"
	"github.com/gogpu/typeset/graphics"
)

var (
	testFaceOnce sync.Once
	testFace     *graphics.Typeface
	testFaceErr  error
)

// loadTestTypeface parses the embedded Go Regular font once per process.
func loadTestTypeface(t *testing.T) *graphics.Typeface {
	t.Helper()

	testFaceOnce.Do(func() {
		testFace, testFaceErr = graphics.NewTypeface(goregular.TTF)
	})
	if testFaceErr != nil {
		t.Fatalf("failed to load test typeface: %v", testFaceErr)
	}
	return testFace
}

// newTestRun builds an intrinsic run with synthetic glyph data: glyph IDs
// are sequential, offsets are zero, and advances and the cluster map are
// supplied by the test for deterministic measurement.
func newTestRun(t *testing.T, charStart, charEnd int, bidiLevel uint8, advances []float64, clusterMap []int) *IntrinsicRun {
	t.Helper()

	ids := make([]int, len(advances))
	for i := range ids {
		ids[i] = i + 1
	}
	run, err := NewIntrinsicRun(IntrinsicRunData{
		CharStart:     charStart,
		CharEnd:       charEnd,
		BidiLevel:     bidiLevel,
		Typeface:      loadTestTypeface(t),
		TypeSize:      16,
		GlyphIDs:      ids,
		GlyphOffsets:  make([]geom.Point, len(advances)),
		GlyphAdvances: advances,
		ClusterMap:    clusterMap,
	})
	if err != nil {
		t.Fatalf("NewIntrinsicRun: %v", err)
	}
	return run
}

// TestNewIntrinsicRunValidation tests every construction failure path.
func TestNewIntrinsicRunValidation(t *testing.T) {
	tf := loadTestTypeface(t)

	valid := func() IntrinsicRunData {
		return IntrinsicRunData{
			CharStart:     0,
			CharEnd:       2,
			Typeface:      tf,
			TypeSize:      16,
			GlyphIDs:      []int{1, 2},
			GlyphOffsets:  make([]geom.Point, 2),
			GlyphAdvances: []float64{5, 5},
			ClusterMap:    []int{0, 1},
		}
	}

	tests := []struct {
		name     string
		mutate   func(*IntrinsicRunData)
		sentinel error
	}{
		{"empty char range", func(d *IntrinsicRunData) { d.CharEnd = d.CharStart }, ErrEmptyCharRange},
		{"inverted char range", func(d *IntrinsicRunData) { d.CharStart, d.CharEnd = 2, 0 }, ErrEmptyCharRange},
		{"nil typeface", func(d *IntrinsicRunData) { d.Typeface = nil }, ErrNoTypeface},
		{"zero size", func(d *IntrinsicRunData) { d.TypeSize = 0 }, ErrNonPositiveTypeSize},
		{"negative size", func(d *IntrinsicRunData) { d.TypeSize = -4 }, ErrNonPositiveTypeSize},
		{"unparallel offsets", func(d *IntrinsicRunData) { d.GlyphOffsets = d.GlyphOffsets[:1] }, nil},
		{"unparallel advances", func(d *IntrinsicRunData) { d.GlyphAdvances = nil }, nil},
		{"cluster map too short", func(d *IntrinsicRunData) { d.ClusterMap = []int{0} }, nil},
		{"cluster entry negative", func(d *IntrinsicRunData) { d.ClusterMap = []int{-1, 0} }, nil},
		{"cluster entry beyond glyphs", func(d *IntrinsicRunData) { d.ClusterMap = []int{0, 2} }, nil},
		{"cluster map decreases", func(d *IntrinsicRunData) { d.ClusterMap = []int{1, 0} }, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := valid()
			tt.mutate(&data)
			_, err := NewIntrinsicRun(data)
			if err == nil {
				t.Fatal("NewIntrinsicRun should fail")
			}
			if tt.sentinel != nil && !errors.Is(err, tt.sentinel) {
				t.Errorf("error = %v, want %v", err, tt.sentinel)
			}
		})
	}

	t.Run("valid", func(t *testing.T) {
		if _, err := NewIntrinsicRun(valid()); err != nil {
			t.Errorf("NewIntrinsicRun: %v", err)
		}
	})
}

// TestIntrinsicRunAccessors tests the plain attribute queries and the
// direction derived from the bidi level.
func TestIntrinsicRunAccessors(t *testing.T) {
	run := newTestRun(t, 3, 6, 0, []float64{4, 5, 6}, []int{0, 1, 2})

	if run.CharStart() != 3 || run.CharEnd() != 6 {
		t.Errorf("char range [%d, %d), want [3, 6)", run.CharStart(), run.CharEnd())
	}
	if run.GlyphCount() != 3 {
		t.Errorf("GlyphCount() = %d, want 3", run.GlyphCount())
	}
	if run.TypeSize() != 16 {
		t.Errorf("TypeSize() = %g, want 16", run.TypeSize())
	}
	if run.Direction() != graphics.DirectionLTR {
		t.Errorf("Direction() = %v, want LTR", run.Direction())
	}

	rtl := newTestRun(t, 0, 1, 1, []float64{4}, []int{0})
	if rtl.Direction() != graphics.DirectionRTL {
		t.Errorf("Direction() = %v for odd level, want RTL", rtl.Direction())
	}

	// Metrics are cached from the typeface at the run's size.
	tf := loadTestTypeface(t)
	if run.Ascent() != tf.Ascent(16) {
		t.Errorf("Ascent() = %g, want %g", run.Ascent(), tf.Ascent(16))
	}
	if run.Descent() != tf.Descent(16) {
		t.Errorf("Descent() = %g, want %g", run.Descent(), tf.Descent(16))
	}
	if run.Leading() != tf.Leading(16) {
		t.Errorf("Leading() = %g, want %g", run.Leading(), tf.Leading(16))
	}
}

// TestCharGlyphBoundaries tests cluster boundary resolution with a
// many-to-one cluster map: the map [0, 0, 2, 2] means chars 0-1 share the
// two-glyph cluster starting at glyph 0 and chars 2-3 share the cluster
// starting at glyph 2.
func TestCharGlyphBoundaries(t *testing.T) {
	run := newTestRun(t, 0, 4, 0, []float64{1, 2, 3, 4}, []int{0, 0, 2, 2})

	tests := []struct {
		charIndex  int
		glyphStart int
		glyphEnd   int
	}{
		{0, 0, 2},
		{1, 0, 2},
		{2, 2, 4},
		{3, 2, 4},
	}

	for _, tt := range tests {
		if got := run.CharGlyphStart(tt.charIndex); got != tt.glyphStart {
			t.Errorf("CharGlyphStart(%d) = %d, want %d", tt.charIndex, got, tt.glyphStart)
		}
		if got := run.CharGlyphEnd(tt.charIndex); got != tt.glyphEnd {
			t.Errorf("CharGlyphEnd(%d) = %d, want %d", tt.charIndex, got, tt.glyphEnd)
		}
	}
}

// TestCharGlyphBoundariesOffsetRun tests boundary resolution when the run
// does not start at character zero.
func TestCharGlyphBoundariesOffsetRun(t *testing.T) {
	run := newTestRun(t, 10, 13, 0, []float64{1, 1, 1}, []int{0, 1, 2})

	if got := run.CharGlyphStart(11); got != 1 {
		t.Errorf("CharGlyphStart(11) = %d, want 1", got)
	}
	if got := run.CharGlyphEnd(12); got != 3 {
		t.Errorf("CharGlyphEnd(12) = %d, want 3", got)
	}
}

// TestMeasureGlyphs tests advance summation, including additivity over
// adjacent ranges and the empty range.
func TestMeasureGlyphs(t *testing.T) {
	run := newTestRun(t, 0, 4, 0, []float64{1.5, 2.5, 3, 4}, []int{0, 1, 2, 3})

	if got := run.MeasureGlyphs(0, 4); got != 11 {
		t.Errorf("MeasureGlyphs(0, 4) = %g, want 11", got)
	}
	if got := run.MeasureGlyphs(1, 3); got != 5.5 {
		t.Errorf("MeasureGlyphs(1, 3) = %g, want 5.5", got)
	}
	if got := run.MeasureGlyphs(2, 2); got != 0 {
		t.Errorf("MeasureGlyphs(2, 2) = %g, want 0", got)
	}

	// Adjacent ranges sum to the enclosing range.
	if run.MeasureGlyphs(0, 2)+run.MeasureGlyphs(2, 4) != run.MeasureGlyphs(0, 4) {
		t.Error("MeasureGlyphs is not additive over adjacent ranges")
	}
}
