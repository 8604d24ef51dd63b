// Package typeset composes shaped text into a queryable, drawable,
// measurable hierarchy of runs, lines and frames.
//
// The package sits on top of a shaping stage (see the shaper package)
// that produces glyph IDs, offsets, advances, a character-to-glyph
// cluster map and bidirectional levels for contiguous spans of text.
// That output is held in immutable IntrinsicRun values, windowed by
// character range into GlyphRun views, assembled into ComposedLine
// values with assigned origins, and stacked into a ComposedFrame with
// container geometry.
//
// Three coordinate systems are kept consistent under slicing:
//
//   - character indices into the original text,
//   - glyph indices, always relative to the GlyphRun exposing them,
//   - geometric positions relative to line and frame origins.
//
// All types are pure in-memory data structures: nothing blocks, performs
// I/O or suspends. IntrinsicRun is deeply immutable and freely shareable;
// GlyphRun's only mutations are the one-time origin assignment during
// line assembly and an idempotent width memo, so published runs are safe
// for concurrent readers. Measurement and drawing configure the shared
// graphics.Renderer as a side effect, which callers must serialize.
package typeset
