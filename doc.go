// Package shx decodes AutoCAD SHX font files into vector glyph shapes.
//
// # Overview
//
// SHX fonts store glyphs as small bytecode programs that move a pen
// through 2D space. shx reads the three container layouts (Shapes,
// Bigfont, Unifont), interprets the glyph programs into polylines, and
// caches the results per font so each glyph is interpreted once.
//
// # Quick Start
//
//	import "github.com/gogpu/shx"
//
//	// Load a font file
//	f, err := shx.LoadFont("txt.shx")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Decode the letter A at a cap height of 12 units
//	shape := f.GetCharShape('A', 12)
//	for _, pl := range shape.Polylines {
//	    // pl is a pen stroke: consecutive points connected by lines
//	}
//
// # Supported Layouts
//
// The header line selects one of three content layouts:
//   - shapes: classic single-byte shape and symbol fonts
//   - bigfont: double-byte CJK fonts, plus the Extended variant
//   - unifont: Unicode fonts with inline glyph records
//
// # Coordinate System
//
// Glyphs use Cartesian coordinates:
//   - X grows to the right
//   - Y grows upward, with the baseline at Y=0
//   - Angles are radians, measured counter-clockwise from +X
//
// A glyph's final pen position is its advance: text layout places the
// next character there.
//
// # Rendering
//
// Shapes are plain polylines and can be drawn with any 2D API. The
// export sub-package bridges them to github.com/tdewolff/canvas for
// SVG and PDF output; the codepage sub-package maps text in CJK
// encodings onto Bigfont character codes.
package shx

// Version information
const (
	// Version is the library version string
	Version = "0.1.0"

	VersionMajor = 0
	VersionMinor = 1
	VersionPatch = 0
)
