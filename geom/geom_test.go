package geom

import "testing"

// TestRectDimensions tests Width, Height and Empty.
func TestRectDimensions(t *testing.T) {
	tests := []struct {
		name   string
		rect   Rect
		width  float64
		height float64
		empty  bool
	}{
		{"normal", Rect{MinX: 1, MinY: 2, MaxX: 5, MaxY: 10}, 4, 8, false},
		{"zero", Rect{}, 0, 0, true},
		{"zero width", Rect{MinX: 3, MinY: 0, MaxX: 3, MaxY: 5}, 0, 5, true},
		{"inverted", Rect{MinX: 5, MinY: 0, MaxX: 1, MaxY: 5}, -4, 5, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.rect.Width(); got != tt.width {
				t.Errorf("Width() = %g, want %g", got, tt.width)
			}
			if got := tt.rect.Height(); got != tt.height {
				t.Errorf("Height() = %g, want %g", got, tt.height)
			}
			if got := tt.rect.Empty(); got != tt.empty {
				t.Errorf("Empty() = %v, want %v", got, tt.empty)
			}
		})
	}
}

// TestRectUnion tests that Union grows to contain both rectangles and that
// empty rectangles contribute nothing.
func TestRectUnion(t *testing.T) {
	a := Rect{MinX: 0, MinY: 0, MaxX: 2, MaxY: 2}
	b := Rect{MinX: 1, MinY: -1, MaxX: 4, MaxY: 1}

	got := a.Union(b)
	want := Rect{MinX: 0, MinY: -1, MaxX: 4, MaxY: 2}
	if got != want {
		t.Errorf("Union = %v, want %v", got, want)
	}

	t.Run("empty left operand", func(t *testing.T) {
		if got := (Rect{}).Union(b); got != b {
			t.Errorf("empty.Union(b) = %v, want %v", got, b)
		}
	})

	t.Run("empty right operand", func(t *testing.T) {
		if got := a.Union(Rect{}); got != a {
			t.Errorf("a.Union(empty) = %v, want %v", got, a)
		}
	})
}

// TestRectTranslate tests shifting a rectangle.
func TestRectTranslate(t *testing.T) {
	r := Rect{MinX: 1, MinY: 2, MaxX: 3, MaxY: 4}
	got := r.Translate(10, -2)
	want := Rect{MinX: 11, MinY: 0, MaxX: 13, MaxY: 2}
	if got != want {
		t.Errorf("Translate(10, -2) = %v, want %v", got, want)
	}
}

// TestPointString tests the deterministic point dump.
func TestPointString(t *testing.T) {
	p := Point{X: 1.5, Y: -2}
	if got := p.String(); got != "(1.5, -2)" {
		t.Errorf("String() = %q, want %q", got, "(1.5, -2)")
	}
}
