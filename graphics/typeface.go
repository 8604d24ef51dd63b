// Package graphics provides typeface handling and the stateful renderer
// boundary that the layout engine measures and draws through.
package graphics

import (
	"bytes"
	"errors"
	"fmt"

	gtfont "github.com/go-text/typesetting/font"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/typeset/geom"
)

// Sentinel errors for the graphics package.
var (
	// ErrEmptyFontData is returned when font data is empty.
	ErrEmptyFontData = errors.New("graphics: empty font data")

	// ErrNoTypeface is returned when a renderer operation runs without a
	// typeface configured.
	ErrNoTypeface = errors.New("graphics: renderer has no typeface")
)

// Typeface represents a parsed font file.
//
// It keeps two views of the same data: an sfnt font for names, metrics,
// bounds and advances, and a go-text font used as the shaping handle.
// Typeface is immutable after construction and safe for concurrent use;
// sfnt working buffers are allocated per call.
type Typeface struct {
	sfnt   *opentype.Font
	shaped *gtfont.Font

	familyName string
	fullName   string
	upem       int
}

// NewTypeface parses TTF or OTF font data.
func NewTypeface(data []byte) (*Typeface, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFontData
	}

	parsed, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("graphics: failed to parse font: %w", err)
	}

	shaped, err := gtfont.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("graphics: failed to parse font for shaping: %w", err)
	}

	tf := &Typeface{
		sfnt:   parsed,
		shaped: shaped.Font,
		upem:   int(parsed.UnitsPerEm()),
	}
	if name, err := parsed.Name(nil, sfnt.NameIDFamily); err == nil {
		tf.familyName = name
	}
	if name, err := parsed.Name(nil, sfnt.NameIDFull); err == nil {
		tf.fullName = name
	}
	return tf, nil
}

// FamilyName returns the font family name, or "" if not available.
func (t *Typeface) FamilyName() string { return t.familyName }

// FullName returns the full font name, or "" if not available.
func (t *Typeface) FullName() string { return t.fullName }

// UnitsPerEm returns the units per em of the font.
func (t *Typeface) UnitsPerEm() int { return t.upem }

// GlyphCount returns the number of glyphs in the font.
func (t *Typeface) GlyphCount() int { return t.sfnt.NumGlyphs() }

// GlyphIndex returns the glyph ID for a rune, or 0 when the font has no
// glyph for it.
func (t *Typeface) GlyphIndex(r rune) int {
	idx, err := t.sfnt.GlyphIndex(nil, r)
	if err != nil {
		return 0
	}
	return int(idx)
}

// ShapingFont returns the go-text font handle used by the shaping stage.
func (t *Typeface) ShapingFont() *gtfont.Font { return t.shaped }

// Ascent returns the distance from the baseline to the top of the
// typeface at the given size. It is always either positive or zero.
func (t *Typeface) Ascent(size float64) float64 {
	m := t.metrics(size)
	return fixedToFloat64(m.Ascent)
}

// Descent returns the distance from the baseline to the bottom of the
// typeface at the given size. It is always either positive or zero.
func (t *Typeface) Descent(size float64) float64 {
	m := t.metrics(size)
	d := fixedToFloat64(m.Descent)
	if d < 0 {
		d = -d
	}
	return d
}

// Leading returns the distance that should be placed between two lines at
// the given size. It is always either positive or zero.
func (t *Typeface) Leading(size float64) float64 {
	m := t.metrics(size)
	leading := fixedToFloat64(m.Height) - t.Ascent(size) - t.Descent(size)
	if leading < 0 {
		leading = 0
	}
	return leading
}

// GlyphAdvance returns the advance width of a glyph at the given size.
func (t *Typeface) GlyphAdvance(glyphID int, size float64) float64 {
	var buf sfnt.Buffer
	advance, err := t.sfnt.GlyphAdvance(&buf, sfnt.GlyphIndex(glyphID), floatToFixed(size), font.HintingNone)
	if err != nil {
		return 0
	}
	return fixedToFloat64(advance)
}

// GlyphBounds returns the tight bounding rectangle of a glyph's path at
// the given size, relative to the glyph origin on the baseline with y
// growing downward. The zero Rect is returned for glyphs without a path.
func (t *Typeface) GlyphBounds(glyphID int, size float64) geom.Rect {
	var buf sfnt.Buffer
	bounds, _, err := t.sfnt.GlyphBounds(&buf, sfnt.GlyphIndex(glyphID), floatToFixed(size), font.HintingNone)
	if err != nil {
		return geom.Rect{}
	}
	return geom.Rect{
		MinX: fixedToFloat64(bounds.Min.X),
		MinY: fixedToFloat64(bounds.Min.Y),
		MaxX: fixedToFloat64(bounds.Max.X),
		MaxY: fixedToFloat64(bounds.Max.Y),
	}
}

func (t *Typeface) metrics(size float64) font.Metrics {
	var buf sfnt.Buffer
	m, err := t.sfnt.Metrics(&buf, floatToFixed(size), font.HintingNone)
	if err != nil {
		return font.Metrics{}
	}
	return m
}

// String returns a structural dump of the typeface.
func (t *Typeface) String() string {
	return fmt.Sprintf("Typeface{familyName=%s, fullName=%s, unitsPerEm=%d, glyphCount=%d}",
		t.familyName, t.fullName, t.upem, t.GlyphCount())
}

// floatToFixed converts a float64 size to 26.6 fixed point.
func floatToFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(v * 64)
}

// fixedToFloat64 converts a 26.6 fixed point value to float64.
func fixedToFloat64(v fixed.Int26_6) float64 {
	return float64(v) / 64.0
}
