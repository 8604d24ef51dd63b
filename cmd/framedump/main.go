// Command framedump shapes a paragraph with a font file, composes it into
// a frame and dumps the resulting layout to the terminal. It is a
// diagnostic tool for inspecting line breaking, bidi reordering and glyph
// placement.
//
// Usage:
//
//	framedump -font NotoSans.ttf -text "Hello, world" -width 240 -height 320
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/pterm/pterm"

	"github.com/gogpu/typeset"
	"github.com/gogpu/typeset/geom"
	"github.com/gogpu/typeset/graphics"
	"github.com/gogpu/typeset/shaper"
)

func main() {
	fontPath := flag.String("font", "", "Path to an OpenType font file")
	text := flag.String("text", "", "Paragraph text to compose")
	size := flag.Float64("size", 16, "Type size in pixels")
	width := flag.Float64("width", 240, "Frame width")
	height := flag.Float64("height", 320, "Frame height")
	align := flag.String("align", "left", "Line alignment [left|center|right]")
	spacing := flag.Float64("spacing", 1.0, "Line spacing multiplier")
	rtl := flag.Bool("rtl", false, "Use a right-to-left base direction")
	verbose := flag.Bool("v", false, "Enable debug logging")
	dump := flag.Bool("dump", false, "Print full structural dumps per line")
	flag.Parse()

	if *fontPath == "" || *text == "" {
		pterm.Error.Println("both -font and -text are required")
		flag.Usage()
		os.Exit(2)
	}

	if *verbose {
		typeset.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	frame, err := composeFrame(*fontPath, *text, *size, *width, *height, *align, *spacing, *rtl)
	if err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(1)
	}

	printFrame(frame, *dump)
}

func composeFrame(fontPath, text string, size, width, height float64, align string, spacing float64, rtl bool) (*typeset.ComposedFrame, error) {
	data, err := os.ReadFile(fontPath)
	if err != nil {
		return nil, fmt.Errorf("reading font: %w", err)
	}
	tf, err := graphics.NewTypeface(data)
	if err != nil {
		return nil, fmt.Errorf("parsing font: %w", err)
	}
	pterm.Info.Printfln("Loaded %s (%d glyphs)", tf.FullName(), tf.GlyphCount())

	baseDir := graphics.DirectionLTR
	if rtl {
		baseDir = graphics.DirectionRTL
	}
	runs, err := shaper.NewEngine().ShapeParagraph(text, tf, size, baseDir)
	if err != nil {
		return nil, fmt.Errorf("shaping: %w", err)
	}

	ts, err := typeset.NewTypesetter([]rune(text), runs)
	if err != nil {
		return nil, fmt.Errorf("building typesetter: %w", err)
	}

	opts := typeset.DefaultFrameOptions()
	opts.LineSpacing = spacing
	switch align {
	case "left":
		opts.Alignment = typeset.AlignLeft
	case "center":
		opts.Alignment = typeset.AlignCenter
	case "right":
		opts.Alignment = typeset.AlignRight
	default:
		return nil, fmt.Errorf("invalid alignment %q", align)
	}

	rect := geom.Rect{MinX: 0, MinY: 0, MaxX: width, MaxY: height}
	return ts.CreateFrame(0, ts.CharCount(), rect, opts), nil
}

func printFrame(frame *typeset.ComposedFrame, dump bool) {
	pterm.Info.Printfln("Frame covers chars [%d, %d) in %g x %g",
		frame.CharStart(), frame.CharEnd(), frame.Width(), frame.Height())

	data := [][]string{
		{"Line", "Chars", "Origin", "Width", "Ascent", "Descent", "Leading", "Runs"},
	}
	for i := 0; i < frame.LineCount(); i++ {
		line := frame.Line(i)
		data = append(data, []string{
			fmt.Sprintf("%d", i),
			fmt.Sprintf("[%d, %d)", line.CharStart(), line.CharEnd()),
			fmt.Sprintf("(%g, %g)", line.OriginX(), line.OriginY()),
			fmt.Sprintf("%.2f", line.Width()),
			fmt.Sprintf("%.2f", line.Ascent()),
			fmt.Sprintf("%.2f", line.Descent()),
			fmt.Sprintf("%.2f", line.Leading()),
			fmt.Sprintf("%d", line.RunCount()),
		})
	}
	if err := pterm.DefaultTable.WithHasHeader().WithData(data).Render(); err != nil {
		pterm.Error.Println(err.Error())
	}

	if dump {
		for line := range frame.Lines() {
			pterm.Printf("%s\n", line)
		}
	}
}
