package graphics

import (
	"errors"
	"image/color"
	"testing"

	"github.com/gogpu/typeset/collections"
	"github.com/gogpu/typeset/geom"
)

// glyphSequence builds the three parallel views the renderer consumes.
func glyphSequence(ids []int, offsets []geom.Point, advances []float64) (collections.IntList, collections.PointList, collections.FloatList) {
	return collections.NewIntView(ids), collections.NewPointView(offsets), collections.NewFloatView(advances)
}

// TestRendererDefaults tests the initial configuration.
func TestRendererDefaults(t *testing.T) {
	r := NewRenderer()

	if r.Typeface() != nil {
		t.Error("new renderer should have no typeface")
	}
	if r.TypeSize() != 16 {
		t.Errorf("TypeSize() = %g, want 16", r.TypeSize())
	}
	if r.WritingDirection() != DirectionLTR {
		t.Errorf("WritingDirection() = %v, want LTR", r.WritingDirection())
	}
	if r.FillColor() != (color.RGBA{A: 255}) {
		t.Errorf("FillColor() = %v, want opaque black", r.FillColor())
	}
}

// TestRendererComputeBoundingBox tests the pen-walking bounds computation.
func TestRendererComputeBoundingBox(t *testing.T) {
	tf := loadTestTypeface(t)
	r := NewRenderer()
	r.SetTypeface(tf)
	r.SetTypeSize(16)

	ids := []int{tf.GlyphIndex('H'), tf.GlyphIndex('i')}
	advances := []float64{10, 6}
	offsets := make([]geom.Point, 2)

	box := r.ComputeBoundingBox(glyphSequence(ids, offsets, advances))
	if box.Empty() {
		t.Fatalf("ComputeBoundingBox = %v, want non-empty", box)
	}

	// The second glyph starts at pen x = 10, so the box must extend past it.
	if box.MaxX <= 10 {
		t.Errorf("box.MaxX = %g, want > 10", box.MaxX)
	}
	// Ink above the baseline.
	if box.MinY >= 0 {
		t.Errorf("box.MinY = %g, want < 0", box.MinY)
	}

	t.Run("no typeface", func(t *testing.T) {
		bare := NewRenderer()
		if got := bare.ComputeBoundingBox(glyphSequence(ids, offsets, advances)); !got.Empty() {
			t.Errorf("bounding box without typeface = %v, want empty", got)
		}
	})

	t.Run("empty sequence", func(t *testing.T) {
		if got := r.ComputeBoundingBox(glyphSequence(nil, nil, nil)); !got.Empty() {
			t.Errorf("bounding box of empty sequence = %v, want empty", got)
		}
	})
}

// TestRendererDrawGlyphs tests forward pen-walking onto a recording canvas.
func TestRendererDrawGlyphs(t *testing.T) {
	tf := loadTestTypeface(t)
	r := NewRenderer()
	r.SetTypeface(tf)
	r.SetTypeSize(20)

	ids := []int{10, 20, 30}
	advances := []float64{5, 7, 9}
	offsets := []geom.Point{{}, {X: 1, Y: -2}, {}}

	canvas := NewRecordingCanvas()
	idList, offsetList, advanceList := glyphSequence(ids, offsets, advances)
	if err := r.DrawGlyphs(canvas, idList, offsetList, advanceList); err != nil {
		t.Fatalf("DrawGlyphs error: %v", err)
	}

	cmds := canvas.Commands()
	if len(cmds) != 3 {
		t.Fatalf("recorded %d commands, want 3", len(cmds))
	}

	wantX := []float64{0, 5 + 1, 5 + 7}
	wantY := []float64{0, -2, 0}
	for i, cmd := range cmds {
		if cmd.GlyphID != ids[i] {
			t.Errorf("command %d glyph = %d, want %d", i, cmd.GlyphID, ids[i])
		}
		if cmd.X != wantX[i] || cmd.Y != wantY[i] {
			t.Errorf("command %d at (%g, %g), want (%g, %g)", i, cmd.X, cmd.Y, wantX[i], wantY[i])
		}
		if cmd.Size != 20 {
			t.Errorf("command %d size = %g, want 20", i, cmd.Size)
		}
	}
}

// TestRendererDrawGlyphsBackward tests that a backward direction walks the
// logical sequence in reverse.
func TestRendererDrawGlyphsBackward(t *testing.T) {
	tf := loadTestTypeface(t)
	r := NewRenderer()
	r.SetTypeface(tf)
	r.SetWritingDirection(DirectionRTL)

	ids := []int{1, 2, 3}
	advances := []float64{4, 5, 6}
	offsets := make([]geom.Point, 3)

	canvas := NewRecordingCanvas()
	idList, offsetList, advanceList := glyphSequence(ids, offsets, advances)
	if err := r.DrawGlyphs(canvas, idList, offsetList, advanceList); err != nil {
		t.Fatalf("DrawGlyphs error: %v", err)
	}

	cmds := canvas.Commands()
	if len(cmds) != 3 {
		t.Fatalf("recorded %d commands, want 3", len(cmds))
	}

	// Last logical glyph draws first, at pen 0; the pen then walks its
	// advance before the next glyph.
	wantOrder := []int{3, 2, 1}
	wantX := []float64{0, 6, 6 + 5}
	for i, cmd := range cmds {
		if cmd.GlyphID != wantOrder[i] {
			t.Errorf("command %d glyph = %d, want %d", i, cmd.GlyphID, wantOrder[i])
		}
		if cmd.X != wantX[i] {
			t.Errorf("command %d x = %g, want %g", i, cmd.X, wantX[i])
		}
	}
}

// TestRendererDrawGlyphsErrors tests the failure paths.
func TestRendererDrawGlyphsErrors(t *testing.T) {
	t.Run("no typeface", func(t *testing.T) {
		r := NewRenderer()
		canvas := NewRecordingCanvas()
		idList, offsetList, advanceList := glyphSequence([]int{1}, []geom.Point{{}}, []float64{1})
		err := r.DrawGlyphs(canvas, idList, offsetList, advanceList)
		if !errors.Is(err, ErrNoTypeface) {
			t.Errorf("error = %v, want ErrNoTypeface", err)
		}
	})

	t.Run("canvas failure wrapped", func(t *testing.T) {
		tf := loadTestTypeface(t)
		r := NewRenderer()
		r.SetTypeface(tf)

		canvas := NewRecordingCanvas()
		canvas.FailAfter = 1
		idList, offsetList, advanceList := glyphSequence([]int{1, 2}, make([]geom.Point, 2), []float64{1, 1})
		err := r.DrawGlyphs(canvas, idList, offsetList, advanceList)
		if !errors.Is(err, ErrCanvasFailed) {
			t.Errorf("error = %v, want wrapped ErrCanvasFailed", err)
		}
		if len(canvas.Commands()) != 1 {
			t.Errorf("recorded %d commands before failure, want 1", len(canvas.Commands()))
		}
	})
}

// TestRecordingCanvasTranslate tests translation bookkeeping.
func TestRecordingCanvasTranslate(t *testing.T) {
	canvas := NewRecordingCanvas()

	canvas.Translate(10, 5)
	canvas.Translate(-3, 2)
	dx, dy := canvas.Offset()
	if dx != 7 || dy != 7 {
		t.Errorf("Offset() = (%g, %g), want (7, 7)", dx, dy)
	}

	if err := canvas.DrawGlyph(nil, 16, 42, 1, 1, color.RGBA{}); err != nil {
		t.Fatalf("DrawGlyph error: %v", err)
	}
	cmd := canvas.Commands()[0]
	if cmd.X != 8 || cmd.Y != 8 {
		t.Errorf("command at (%g, %g), want translation applied (8, 8)", cmd.X, cmd.Y)
	}

	canvas.Reset()
	dx, dy = canvas.Offset()
	if dx != 0 || dy != 0 || len(canvas.Commands()) != 0 {
		t.Error("Reset did not restore the identity state")
	}
}
