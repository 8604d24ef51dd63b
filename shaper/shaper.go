// Package shaper turns paragraphs of text into the intrinsic runs the
// layout engine composes. It resolves bidirectional embedding levels with
// golang.org/x/text/unicode/bidi and shapes each level run with the
// HarfBuzz implementation in github.com/go-text/typesetting.
package shaper

import (
	"errors"
	"fmt"
	"sync"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/typeset"
	"github.com/gogpu/typeset/geom"
	"github.com/gogpu/typeset/graphics"
)

// ErrEmptyText is returned when an empty paragraph is shaped.
var ErrEmptyText = errors.New("shaper: empty text")

// Engine shapes paragraphs into intrinsic runs.
//
// Engine is safe for concurrent use: HarfbuzzShaper instances carry
// internal buffers and are pooled per call, and go-text font.Face values
// are created per call around the thread-safe *font.Font held by the
// typeface.
type Engine struct {
	// shaperPool pools HarfbuzzShaper instances; they are not safe for
	// concurrent use but are efficient to reuse sequentially.
	shaperPool sync.Pool
}

// NewEngine creates a shaping engine.
func NewEngine() *Engine {
	return &Engine{
		shaperPool: sync.Pool{
			New: func() any {
				return &shaping.HarfbuzzShaper{}
			},
		},
	}
}

// ShapeParagraph shapes one paragraph (no hard line breaks) into
// intrinsic runs in logical order, one per bidirectional level run.
// Character indices in the produced runs are rune indices into text.
func (e *Engine) ShapeParagraph(text string, tf *graphics.Typeface, size float64, baseDir graphics.Direction) ([]*typeset.IntrinsicRun, error) {
	if text == "" {
		return nil, ErrEmptyText
	}
	if tf == nil {
		return nil, fmt.Errorf("shaper: %w", graphics.ErrNoTypeface)
	}
	if size <= 0 {
		return nil, fmt.Errorf("shaper: type size must be positive, got %g", size)
	}

	runes := []rune(text)
	levels := resolveBidiLevels(text, runes, baseDir)

	var runs []*typeset.IntrinsicRun
	start := 0
	for start < len(runes) {
		end := start + 1
		for end < len(runes) && levels[end] == levels[start] {
			end++
		}

		run, err := e.shapeLevelRun(runes, start, end, levels[start], tf, size)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
		start = end
	}

	typeset.Logger().Debug("paragraph shaped",
		"chars", len(runes), "runs", len(runs), "size", size)
	return runs, nil
}

// shapeLevelRun shapes the characters [start, end), all at one bidi
// level, into a single intrinsic run.
func (e *Engine) shapeLevelRun(runes []rune, start, end int, level uint8, tf *graphics.Typeface, size float64) (*typeset.IntrinsicRun, error) {
	dir := di.DirectionLTR
	if level%2 == 1 {
		dir = di.DirectionRTL
	}

	input := shaping.Input{
		Text:      runes,
		RunStart:  start,
		RunEnd:    end,
		Direction: dir,
		Face:      font.NewFace(tf.ShapingFont()),
		Size:      fixed.Int26_6(size * 64),
		Script:    detectScript(runes[start:end]),
		Language:  language.NewLanguage("en"),
	}

	hb := e.shaperPool.Get().(*shaping.HarfbuzzShaper)
	output := hb.Shape(input)
	e.shaperPool.Put(hb)

	glyphs := output.Glyphs
	if level%2 == 1 {
		// HarfBuzz emits RTL runs in visual order; the layout engine
		// stores logical order and lets the renderer lay RTL out from
		// the right, keeping cluster maps non-decreasing.
		glyphs = reverseGlyphs(glyphs)
	}

	data := typeset.IntrinsicRunData{
		CharStart:     start,
		CharEnd:       end,
		BidiLevel:     level,
		Typeface:      tf,
		TypeSize:      size,
		GlyphIDs:      make([]int, len(glyphs)),
		GlyphOffsets:  make([]geom.Point, len(glyphs)),
		GlyphAdvances: make([]float64, len(glyphs)),
		ClusterMap:    buildClusterMap(glyphs, start, end),
	}
	for i, g := range glyphs {
		data.GlyphIDs[i] = int(g.GlyphID)
		data.GlyphOffsets[i] = geom.Point{
			X: fixedToFloat(g.XOffset),
			Y: fixedToFloat(g.YOffset),
		}
		data.GlyphAdvances[i] = fixedToFloat(g.Advance)
	}

	run, err := typeset.NewIntrinsicRun(data)
	if err != nil {
		return nil, fmt.Errorf("shaper: invalid shaping output for chars [%d, %d): %w", start, end, err)
	}
	return run, nil
}

// buildClusterMap derives the per-character cluster map from glyphs in
// logical order: each character maps to the first glyph of the cluster
// containing it. Cluster indices from the shaper are rune indices of the
// lowest rune shaped into a glyph's cluster.
func buildClusterMap(glyphs []shaping.Glyph, charStart, charEnd int) []int {
	clusterMap := make([]int, charEnd-charStart)
	if len(glyphs) == 0 {
		return clusterMap
	}

	gi := 0
	for gi < len(glyphs) {
		cluster := glyphs[gi].TextIndex()
		gj := gi + 1
		for gj < len(glyphs) && glyphs[gj].TextIndex() == cluster {
			gj++
		}
		clusterCharEnd := charEnd
		if gj < len(glyphs) {
			clusterCharEnd = glyphs[gj].TextIndex()
		}
		for c := cluster; c < clusterCharEnd; c++ {
			clusterMap[c-charStart] = gi
		}
		gi = gj
	}
	return clusterMap
}

// reverseGlyphs returns the glyphs in reverse order, i.e. logical order
// for a visual-order RTL run.
func reverseGlyphs(glyphs []shaping.Glyph) []shaping.Glyph {
	out := make([]shaping.Glyph, len(glyphs))
	for i, g := range glyphs {
		out[len(glyphs)-1-i] = g
	}
	return out
}

// detectScript inspects the runes and returns the script of the first
// non-space character. For mixed-script level runs the first script wins;
// splitting runs further by script is the caller's concern.
func detectScript(runes []rune) language.Script {
	for _, r := range runes {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}

// fixedToFloat converts a fixed.Int26_6 value to float64.
func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64.0
}
