package shaper

import (
	"golang.org/x/text/unicode/bidi"

	"github.com/gogpu/typeset/graphics"
)

// resolveBidiLevels computes the per-rune bidirectional embedding level of
// a paragraph. baseDir seeds the paragraph direction: RTL forces a
// right-to-left base, anything else lets the first strong character
// decide.
func resolveBidiLevels(text string, runes []rune, baseDir graphics.Direction) []uint8 {
	levels := make([]uint8, len(runes))

	defaultDir := bidi.Neutral
	if baseDir == graphics.DirectionRTL {
		defaultDir = bidi.RightToLeft
	}

	p := bidi.Paragraph{}
	_, _ = p.SetString(text, bidi.DefaultDirection(defaultDir))

	ordering, err := p.Order()
	if err != nil {
		return levels
	}

	// run.Pos() returns rune indices, end inclusive.
	for i := 0; i < ordering.NumRuns(); i++ {
		run := ordering.Run(i)
		start, end := run.Pos()
		level := uint8(0)
		if run.Direction() == bidi.RightToLeft {
			level = 1
		}
		for j := start; j <= end && j < len(levels); j++ {
			levels[j] = level
		}
	}

	return levels
}
