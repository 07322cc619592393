// Command shxdump prints SHX font metadata and renders sample text to
// SVG or PDF.
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gogpu/shx"
	"github.com/gogpu/shx/codepage"
	"github.com/gogpu/shx/export"
)

func main() {
	var (
		fontPath = flag.String("font", "", "path to the .shx font file (required)")
		text     = flag.String("text", "", "sample text to lay out")
		size     = flag.Float64("size", 12, "glyph size in drawing units")
		output   = flag.String("output", "", "render the text to this .svg or .pdf file")
		cpName   = flag.String("codepage", "unicode", "text codepage (unicode, latin1, shiftjis, gbk, big5, euckr)")
		verbose  = flag.Bool("v", false, "log decode diagnostics to stderr")
	)
	flag.Parse()

	if *fontPath == "" {
		flag.Usage()
		os.Exit(2)
	}
	if *verbose {
		shx.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	f, err := shx.LoadFont(*fontPath)
	if err != nil {
		log.Fatalf("Failed to load font: %v", err)
	}

	printSummary(f)

	if *text == "" {
		return
	}
	cp, err := codepage.Parse(*cpName)
	if err != nil {
		log.Fatalf("Bad -codepage: %v", err)
	}

	shape := export.Text(f, cp, *text, *size)
	b := shape.Bounds()
	fmt.Printf("\nlaid out %q: %d polylines, bounds %.1f x %.1f\n",
		*text, len(shape.Polylines), b.Width(), b.Height())

	if *output == "" {
		return
	}
	if err := writeShape(*output, shape); err != nil {
		log.Fatalf("Failed to render: %v", err)
	}
	log.Printf("Rendered %q to %s", *text, *output)
}

func printSummary(f *shx.Font) {
	h := f.Header()
	fmt.Printf("%s, %s layout, version %s\n", h.Vendor, f.Type(), h.Version)
	if info := f.Info(); info != "" {
		fmt.Printf("info:        %s\n", info)
	}
	fmt.Printf("orientation: %s\n", f.Orientation())
	fmt.Printf("baseline:    %d up, %d down\n", f.BaseUp(), f.BaseDown())
	if f.Extended() {
		fmt.Println("extended:    yes")
	}
	fmt.Printf("glyphs:      %d\n", f.NumGlyphs())
}

func writeShape(path string, s *shx.Shape) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}

	var werr error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".svg":
		werr = export.WriteSVG(out, s, export.Options{})
	case ".pdf":
		werr = export.WritePDF(out, s, export.Options{})
	default:
		werr = fmt.Errorf("unsupported output extension %q (want .svg or .pdf)", filepath.Ext(path))
	}
	if cerr := out.Close(); werr == nil {
		werr = cerr
	}
	return werr
}
