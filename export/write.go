package export

import (
	"image/color"
	"io"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"
	"github.com/tdewolff/canvas/renderers/svg"

	"github.com/gogpu/shx"
)

// Options controls how a shape is framed and stroked when writing a
// document. The zero value picks a thin black stroke with a small
// margin around the shape's bounds.
type Options struct {
	// StrokeWidth is the line width in shape units. Zero or negative
	// selects 0.5.
	StrokeWidth float64

	// Color is the stroke color. A fully transparent color selects
	// opaque black.
	Color color.RGBA

	// Margin is padding added on all four sides, in shape units. Zero
	// or negative selects 2.
	Margin float64
}

func (o Options) withDefaults() Options {
	if o.StrokeWidth <= 0 {
		o.StrokeWidth = 0.5
	}
	if o.Color.A == 0 {
		o.Color = color.RGBA{A: 255}
	}
	if o.Margin <= 0 {
		o.Margin = 2
	}
	return o
}

// render frames the shape with the margin and strokes it onto a fresh
// canvas of the returned size.
func render(s *shx.Shape, o Options) (c *canvas.Canvas, width, height float64) {
	var b shx.Rect
	if s != nil {
		b = s.Bounds()
	}
	width = b.Width() + 2*o.Margin
	height = b.Height() + 2*o.Margin

	c = canvas.New(width, height)
	ctx := canvas.NewContext(c)
	ctx.SetFillColor(color.RGBA{0, 0, 0, 0})
	ctx.SetStrokeColor(o.Color)
	ctx.SetStrokeWidth(o.StrokeWidth)
	Draw(ctx, o.Margin-b.Min.X, o.Margin-b.Min.Y, s)
	return c, width, height
}

// WriteSVG strokes the shape into a standalone SVG document sized to
// its bounds plus the margin.
func WriteSVG(w io.Writer, s *shx.Shape, opts Options) error {
	c, width, height := render(s, opts.withDefaults())
	r := svg.New(w, width, height, nil)
	c.RenderTo(r)
	return r.Close()
}

// WritePDF strokes the shape into a single-page PDF document sized to
// its bounds plus the margin.
func WritePDF(w io.Writer, s *shx.Shape, opts Options) error {
	c, width, height := render(s, opts.withDefaults())
	r := pdf.New(w, width, height, nil)
	c.RenderTo(r)
	return r.Close()
}
