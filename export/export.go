// Package export renders decoded shapes to vector output formats.
//
// Shapes produced by the shx package are plain polyline bundles in font
// units with Y pointing up. This package converts them to
// github.com/tdewolff/canvas paths and writes single-page SVG or PDF
// documents, which is enough to eyeball a font or embed a label in a
// larger drawing.
package export

import (
	"github.com/tdewolff/canvas"

	"github.com/gogpu/shx"
	"github.com/gogpu/shx/codepage"
)

// Path converts a shape into a canvas path. Each polyline becomes one
// MoveTo followed by LineTo segments; polylines with fewer than two
// points are dropped. A nil or empty shape yields an empty path.
func Path(s *shx.Shape) *canvas.Path {
	p := &canvas.Path{}
	if s == nil {
		return p
	}
	for _, pl := range s.Polylines {
		if len(pl) < 2 {
			continue
		}
		p.MoveTo(pl[0].X, pl[0].Y)
		for _, pt := range pl[1:] {
			p.LineTo(pt.X, pt.Y)
		}
	}
	return p
}

// Draw strokes a shape onto a canvas context at the given offset. The
// context's stroke color and width apply; the shape is not filled.
func Draw(ctx *canvas.Context, x, y float64, s *shx.Shape) {
	p := Path(s)
	if p.Empty() {
		return
	}
	ctx.DrawPath(x, y, p)
}

// Text lays out a string as a single composite shape. Each rune is
// mapped to a font code through the codepage, rendered at the given
// size, and placed at the running pen position. The pen advances by
// each glyph's own advance vector, so proportional widths and vertical
// fonts come out right. Runes the codepage cannot map, and codes the
// font has no glyph for, advance the pen by size horizontally so the
// gap stays visible.
//
// The result's LastPoint is the final pen position, letting callers
// append further text.
func Text(f *shx.Font, cp codepage.Codepage, s string, size float64) *shx.Shape {
	out := &shx.Shape{}
	var pen shx.Point
	for _, r := range s {
		code, ok := cp.Encode(r)
		if !ok {
			pen.X += size
			continue
		}
		g := f.GetCharShape(code, size)
		if g == nil {
			pen.X += size
			continue
		}
		g.Translate(pen.X, pen.Y)
		out.Polylines = append(out.Polylines, g.Polylines...)
		if g.LastPoint != nil {
			pen = *g.LastPoint
		} else {
			pen.X += size
		}
	}
	last := pen
	out.LastPoint = &last
	return out
}
