package shx

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// interpFont builds a bare font for driving glyph programs directly.
func interpFont(d dialect) *Font {
	return &Font{
		content: newFontContent(),
		dialect: d,
		arcStep: DefaultArcStep,
		cache:   newShapeCache(),
	}
}

func mustInterpret(t *testing.T, f *Font, bytecode ...byte) *Shape {
	t.Helper()
	s, err := f.interpret(bytecode, 0)
	if err != nil {
		t.Fatalf("interpret() error = %v", err)
	}
	return s
}

func TestInterpret_Vectors(t *testing.T) {
	f := interpFont(dialectShapes)
	s := mustInterpret(t, f, 0x01, 0x40, 0x42, 0x00)

	want := []Polyline{{Pt(0, 0), Pt(4, 0), Pt(8, 4)}}
	if diff := cmp.Diff(want, s.Polylines); diff != "" {
		t.Errorf("polylines mismatch (-want +got):\n%s", diff)
	}
	if s.LastPoint == nil || *s.LastPoint != Pt(8, 4) {
		t.Errorf("LastPoint = %v, want (8, 4)", s.LastPoint)
	}
}

// TestInterpret_VectorDirections tests the half-unit components of the
// sixteen vector directions.
func TestInterpret_VectorDirections(t *testing.T) {
	tests := []struct {
		name   string
		op     byte
		expect Point
	}{
		{"east", 0x20, Pt(2, 0)},
		{"east-northeast", 0x21, Pt(2, 1)},
		{"north-northwest", 0x25, Pt(-1, 2)},
		{"west-southwest", 0x29, Pt(-2, -1)},
		{"south-southeast", 0x2D, Pt(1, -2)},
		{"east-southeast", 0x2F, Pt(2, -1)},
	}

	f := interpFont(dialectShapes)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := mustInterpret(t, f, 0x01, tt.op, 0x00)
			want := []Polyline{{Pt(0, 0), tt.expect}}
			if diff := cmp.Diff(want, s.Polylines); diff != "" {
				t.Errorf("polylines mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestInterpret_PenUpDown(t *testing.T) {
	f := interpFont(dialectShapes)

	// Pen-up movement splits strokes without drawing.
	s := mustInterpret(t, f, 0x01, 0x40, 0x02, 0x40, 0x01, 0x40, 0x00)
	want := []Polyline{
		{Pt(0, 0), Pt(4, 0)},
		{Pt(8, 0), Pt(12, 0)},
	}
	if diff := cmp.Diff(want, s.Polylines); diff != "" {
		t.Errorf("polylines mismatch (-want +got):\n%s", diff)
	}
	if *s.LastPoint != Pt(12, 0) {
		t.Errorf("LastPoint = %v, want (12, 0)", *s.LastPoint)
	}

	// A stroke that never reaches two points draws nothing.
	s = mustInterpret(t, f, 0x01, 0x02, 0x40, 0x00)
	if len(s.Polylines) != 0 {
		t.Errorf("got %d polylines, want none", len(s.Polylines))
	}
	if *s.LastPoint != Pt(4, 0) {
		t.Errorf("LastPoint = %v, want (4, 0)", *s.LastPoint)
	}
}

func TestInterpret_Scale(t *testing.T) {
	f := interpFont(dialectShapes)

	// Divide by 2, draw, multiply by 6, draw again.
	s := mustInterpret(t, f, 0x03, 0x02, 0x01, 0x40, 0x04, 0x06, 0x40, 0x00)
	want := []Polyline{{Pt(0, 0), Pt(2, 0), Pt(14, 0)}}
	if diff := cmp.Diff(want, s.Polylines); diff != "" {
		t.Errorf("polylines mismatch (-want +got):\n%s", diff)
	}

	// A zero operand leaves the scale untouched.
	s = mustInterpret(t, f, 0x03, 0x00, 0x04, 0x00, 0x01, 0x40, 0x00)
	want = []Polyline{{Pt(0, 0), Pt(4, 0)}}
	if diff := cmp.Diff(want, s.Polylines); diff != "" {
		t.Errorf("zero scale operand (-want +got):\n%s", diff)
	}
}

func TestInterpret_PushPop(t *testing.T) {
	f := interpFont(dialectShapes)

	// Push at (4,0), draw on, pop back, draw up.
	s := mustInterpret(t, f, 0x01, 0x40, 0x05, 0x40, 0x06, 0x44, 0x00)
	want := []Polyline{{Pt(0, 0), Pt(4, 0), Pt(8, 0), Pt(4, 4)}}
	if diff := cmp.Diff(want, s.Polylines); diff != "" {
		t.Errorf("polylines mismatch (-want +got):\n%s", diff)
	}
	if *s.LastPoint != Pt(4, 4) {
		t.Errorf("LastPoint = %v, want (4, 4)", *s.LastPoint)
	}

	// Popping an empty stack is ignored.
	s = mustInterpret(t, f, 0x06, 0x01, 0x40, 0x00)
	if *s.LastPoint != Pt(4, 0) {
		t.Errorf("LastPoint = %v, want (4, 0)", *s.LastPoint)
	}
}

func TestInterpret_StackOverflow(t *testing.T) {
	f := interpFont(dialectShapes)
	_, err := f.interpret([]byte{0x05, 0x05, 0x05, 0x05, 0x05, 0x00}, 0)
	if !errors.Is(err, ErrStackOverflow) {
		t.Errorf("interpret() error = %v, want ErrStackOverflow", err)
	}
}

func TestInterpret_Offset(t *testing.T) {
	f := interpFont(dialectShapes)

	s := mustInterpret(t, f, 0x01, 0x08, 0x05, 0xFB, 0x00)
	want := []Polyline{{Pt(0, 0), Pt(5, -5)}}
	if diff := cmp.Diff(want, s.Polylines); diff != "" {
		t.Errorf("polylines mismatch (-want +got):\n%s", diff)
	}

	// Offsets honor the running scale.
	s = mustInterpret(t, f, 0x03, 0x02, 0x01, 0x08, 0x05, 0xFB, 0x00)
	want = []Polyline{{Pt(0, 0), Pt(2.5, -2.5)}}
	if diff := cmp.Diff(want, s.Polylines); diff != "" {
		t.Errorf("scaled offset (-want +got):\n%s", diff)
	}
}

func TestInterpret_OffsetRun(t *testing.T) {
	f := interpFont(dialectShapes)
	s := mustInterpret(t, f, 0x01, 0x09, 1, 1, 2, 0, 0, 0, 0x00)

	want := []Polyline{{Pt(0, 0), Pt(1, 1), Pt(3, 1)}}
	if diff := cmp.Diff(want, s.Polylines); diff != "" {
		t.Errorf("polylines mismatch (-want +got):\n%s", diff)
	}
	if *s.LastPoint != Pt(3, 1) {
		t.Errorf("LastPoint = %v, want (3, 1)", *s.LastPoint)
	}
}

func TestInterpret_OctantArc(t *testing.T) {
	f := interpFont(dialectShapes)

	t.Run("pen down draws the arc", func(t *testing.T) {
		// Radius 2, start octant 0, span 4: a half circle ending at (-4,0).
		s := mustInterpret(t, f, 0x01, 0x0A, 2, 0x04, 0x00)
		if len(s.Polylines) != 1 {
			t.Fatalf("got %d polylines, want 1", len(s.Polylines))
		}
		pts := s.Polylines[0]
		if pts[0] != Pt(0, 0) {
			t.Errorf("first point = %v, want (0, 0)", pts[0])
		}
		if !pointsEqual(pts[len(pts)-1], Pt(-4, 0), epsilon) {
			t.Errorf("last point = %v, want (-4, 0)", pts[len(pts)-1])
		}
		center := Pt(-2, 0)
		for i, p := range pts {
			if d := p.Distance(center); math.Abs(d-2) > epsilon {
				t.Fatalf("pts[%d] = %v is %v from center, want 2", i, p, d)
			}
		}
		if top := s.Bounds().Max.Y; top < 1.99 || top > 2+epsilon {
			t.Errorf("arc top = %v, want about 2", top)
		}
		if !pointsEqual(*s.LastPoint, Pt(-4, 0), epsilon) {
			t.Errorf("LastPoint = %v, want (-4, 0)", *s.LastPoint)
		}
	})

	t.Run("negative flag runs clockwise", func(t *testing.T) {
		s := mustInterpret(t, f, 0x01, 0x0A, 2, 0xFC, 0x00)
		if bottom := s.Bounds().Min.Y; bottom > -1.99 {
			t.Errorf("arc bottom = %v, want about -2", bottom)
		}
	})

	t.Run("pen up only moves", func(t *testing.T) {
		s := mustInterpret(t, f, 0x0A, 2, 0x04, 0x00)
		if len(s.Polylines) != 0 {
			t.Errorf("got %d polylines, want none", len(s.Polylines))
		}
		if !pointsEqual(*s.LastPoint, Pt(-4, 0), epsilon) {
			t.Errorf("LastPoint = %v, want (-4, 0)", *s.LastPoint)
		}
	})

	t.Run("radius honors the scale", func(t *testing.T) {
		s := mustInterpret(t, f, 0x04, 0x03, 0x0A, 2, 0x04, 0x00)
		if !pointsEqual(*s.LastPoint, Pt(-12, 0), epsilon) {
			t.Errorf("LastPoint = %v, want (-12, 0)", *s.LastPoint)
		}
	})
}

func TestInterpret_FractionalArc(t *testing.T) {
	f := interpFont(dialectShapes)

	t.Run("whole octants", func(t *testing.T) {
		// Start octant 1, two octants, radius 2: from 45 to 135 degrees.
		s := mustInterpret(t, f, 0x0B, 0, 0, 0, 2, 0x0A, 0x00)
		center := Pt(-math.Sqrt2, -math.Sqrt2)
		want := center.Add(Pt(2*math.Cos(3*math.Pi/4), 2*math.Sin(3*math.Pi/4)))
		if !pointsEqual(*s.LastPoint, want, epsilon) {
			t.Errorf("LastPoint = %v, want %v", *s.LastPoint, want)
		}
	})

	t.Run("fractional end offset", func(t *testing.T) {
		// End offset 128 adds half an octant to the sweep.
		s := mustInterpret(t, f, 0x0B, 0, 128, 0, 2, 0x0A, 0x00)
		center := Pt(-math.Sqrt2, -math.Sqrt2)
		want := center.Add(Pt(2*math.Cos(7*math.Pi/8), 2*math.Sin(7*math.Pi/8)))
		if !pointsEqual(*s.LastPoint, want, epsilon) {
			t.Errorf("LastPoint = %v, want %v", *s.LastPoint, want)
		}
	})

	t.Run("negative flag runs clockwise", func(t *testing.T) {
		s := mustInterpret(t, f, 0x0B, 0, 0, 0, 2, 0xF6, 0x00)
		want := Pt(0, -2*math.Sqrt2)
		if !pointsEqual(*s.LastPoint, want, epsilon) {
			t.Errorf("LastPoint = %v, want %v", *s.LastPoint, want)
		}
	})

	t.Run("two-byte radius", func(t *testing.T) {
		// High byte 1, low byte 0: radius 256.
		s := mustInterpret(t, f, 0x0B, 0, 0, 1, 0, 0x0C, 0x00)
		// Start octant 1, four octants: the arc ends at 225 degrees.
		center := Pt(-256*math.Sqrt2/2, -256*math.Sqrt2/2)
		want := center.Add(Pt(256*math.Cos(5*math.Pi/4), 256*math.Sin(5*math.Pi/4)))
		if !pointsEqual(*s.LastPoint, want, 1e-6) {
			t.Errorf("LastPoint = %v, want %v", *s.LastPoint, want)
		}
	})
}

func TestInterpret_BulgeArc(t *testing.T) {
	f := interpFont(dialectShapes)

	t.Run("full bulge is a semicircle", func(t *testing.T) {
		s := mustInterpret(t, f, 0x01, 0x0C, 4, 0, 127, 0x00)
		if len(s.Polylines) != 1 {
			t.Fatalf("got %d polylines, want 1", len(s.Polylines))
		}
		pts := s.Polylines[0]
		if pts[0] != Pt(0, 0) || pts[len(pts)-1] != Pt(4, 0) {
			t.Errorf("endpoints = %v, %v, want (0,0), (4,0)", pts[0], pts[len(pts)-1])
		}
		center := Pt(2, 0)
		for i, p := range pts {
			if d := p.Distance(center); math.Abs(d-2) > epsilon {
				t.Fatalf("pts[%d] = %v is %v from center, want 2", i, p, d)
			}
		}
		// Positive bulge runs counter-clockwise: below an eastbound chord.
		if bottom := s.Bounds().Min.Y; bottom > -1.99 {
			t.Errorf("arc bottom = %v, want about -2", bottom)
		}
	})

	t.Run("zero bulge is a straight segment", func(t *testing.T) {
		s := mustInterpret(t, f, 0x01, 0x0C, 4, 0, 0, 0x00)
		want := []Polyline{{Pt(0, 0), Pt(4, 0)}}
		if diff := cmp.Diff(want, s.Polylines); diff != "" {
			t.Errorf("polylines mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("minimum byte clamps to full clockwise bulge", func(t *testing.T) {
		s := mustInterpret(t, f, 0x01, 0x0C, 4, 0, 0x80, 0x00)
		if top := s.Bounds().Max.Y; top < 1.99 {
			t.Errorf("arc top = %v, want about 2", top)
		}
	})
}

func TestInterpret_BulgeRun(t *testing.T) {
	f := interpFont(dialectShapes)

	// A bulged rise, then a straight run; the terminator has no bulge byte.
	s := mustInterpret(t, f, 0x01, 0x0D, 0, 4, 127, 4, 0, 0, 0, 0, 0x00)
	if len(s.Polylines) != 1 {
		t.Fatalf("got %d polylines, want 1", len(s.Polylines))
	}
	pts := s.Polylines[0]
	if pts[0] != Pt(0, 0) || pts[len(pts)-1] != Pt(4, 4) {
		t.Errorf("endpoints = %v, %v, want (0,0), (4,4)", pts[0], pts[len(pts)-1])
	}
	b := s.Bounds()
	if !pointsEqual(b.Min, Pt(0, 0), 1e-6) || !pointsEqual(b.Max, Pt(4, 4), 1e-6) {
		t.Errorf("bounds = %v, want (0,0)-(4,4)", b)
	}
	if *s.LastPoint != Pt(4, 4) {
		t.Errorf("LastPoint = %v, want (4, 4)", *s.LastPoint)
	}
}

func TestInterpret_SubShapeImplicit(t *testing.T) {
	f := interpFont(dialectShapes)
	f.content.Glyphs[2] = []byte{0x01, 0x40, 0x00}

	s := mustInterpret(t, f, 0x01, 0x44, 0x07, 0x02, 0x40, 0x00)

	// The referenced glyph lands at the pen; the parent stroke then
	// keeps drawing from where it was.
	want := []Polyline{
		{Pt(0, 4), Pt(4, 4)},
		{Pt(0, 0), Pt(0, 4), Pt(4, 4)},
	}
	if diff := cmp.Diff(want, s.Polylines); diff != "" {
		t.Errorf("polylines mismatch (-want +got):\n%s", diff)
	}
	if *s.LastPoint != Pt(4, 4) {
		t.Errorf("LastPoint = %v, want (4, 4)", *s.LastPoint)
	}
}

func TestInterpret_SubShapePenAdvance(t *testing.T) {
	tests := []struct {
		name string
		mode PenAdvanceMode
		want Point
	}{
		{"always follows the sub-shape", PenAdvanceAlways, Pt(4, 0)},
		{"never stays at the reference", PenAdvanceNever, Pt(0, 0)},
		{"auto keeps shapes dialect put", PenAdvanceAuto, Pt(0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := interpFont(dialectShapes)
			f.penMode = tt.mode
			f.content.Glyphs[2] = []byte{0x01, 0x40, 0x00}

			s := mustInterpret(t, f, 0x07, 0x02, 0x00)
			if *s.LastPoint != tt.want {
				t.Errorf("LastPoint = %v, want %v", *s.LastPoint, tt.want)
			}
		})
	}
}

func TestInterpret_SubShapeUnifont(t *testing.T) {
	f := interpFont(dialectUnifont)
	f.content.Glyphs[0x1234] = []byte{0x01, 0x40, 0x00}

	// Unifont references are big-endian two-byte codes.
	s := mustInterpret(t, f, 0x07, 0x12, 0x34, 0x00)
	want := []Polyline{{Pt(0, 0), Pt(4, 0)}}
	if diff := cmp.Diff(want, s.Polylines); diff != "" {
		t.Errorf("polylines mismatch (-want +got):\n%s", diff)
	}
	if *s.LastPoint != Pt(0, 0) {
		t.Errorf("LastPoint = %v, want (0, 0)", *s.LastPoint)
	}
}

func TestInterpret_SubShapeBigfont(t *testing.T) {
	t.Run("one-byte reference advances the pen", func(t *testing.T) {
		f := interpFont(dialectBigfont)
		f.content.Glyphs[5] = []byte{0x01, 0x40, 0x00}

		s := mustInterpret(t, f, 0x07, 0x05, 0x00)
		want := []Polyline{{Pt(0, 0), Pt(4, 0)}}
		if diff := cmp.Diff(want, s.Polylines); diff != "" {
			t.Errorf("polylines mismatch (-want +got):\n%s", diff)
		}
		if *s.LastPoint != Pt(4, 0) {
			t.Errorf("LastPoint = %v, want (4, 0)", *s.LastPoint)
		}
	})

	t.Run("two-byte reference places a box", func(t *testing.T) {
		f := interpFont(dialectBigfont)
		f.content.Glyphs[0x1234] = []byte{0x01, 0x40, 0x00}

		// Lead 0, code 0x1234, origin (2,3), height 4: the glyph is 4
		// wide already, so it lands unscaled at the origin.
		s := mustInterpret(t, f, 0x07, 0x00, 0x12, 0x34, 2, 3, 4, 0x00)
		want := []Polyline{{Pt(2, 3), Pt(6, 3)}}
		if diff := cmp.Diff(want, s.Polylines); diff != "" {
			t.Errorf("polylines mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("extended form has separate width", func(t *testing.T) {
		f := interpFont(dialectExtBigfont)
		f.content.Glyphs[0x1234] = []byte{0x01, 0x40, 0x00}

		// Width 8 stretches the 4-unit glyph to twice its size; the
		// negative origin is signed.
		s := mustInterpret(t, f, 0x07, 0x00, 0x12, 0x34, 0xFE, 3, 8, 4, 0x00)
		want := []Polyline{{Pt(-2, 3), Pt(6, 3)}}
		if diff := cmp.Diff(want, s.Polylines); diff != "" {
			t.Errorf("polylines mismatch (-want +got):\n%s", diff)
		}
	})
}

// TestInterpret_SubShapeRecursion tests that self-referencing glyphs
// stop composing at the nesting limit instead of looping.
func TestInterpret_SubShapeRecursion(t *testing.T) {
	f := interpFont(dialectShapes)
	f.content.Glyphs[7] = []byte{0x07, 0x07, 0x01, 0x40, 0x00}

	s, err := f.shapeForCode(7, 0)
	if err != nil {
		t.Fatalf("shapeForCode() error = %v", err)
	}
	// One stroke per nesting level; the reference past the limit
	// composes nothing.
	if len(s.Polylines) != maxSubShapeDepth+1 {
		t.Errorf("got %d polylines, want %d", len(s.Polylines), maxSubShapeDepth+1)
	}
}

func TestInterpret_VerticalSkip(t *testing.T) {
	tests := []struct {
		name     string
		dialect  dialect
		bytecode []byte
	}{
		{"skips a vector", dialectShapes, []byte{0x01, 0x0E, 0x48, 0x40, 0x00}},
		{"skips an offset", dialectShapes, []byte{0x01, 0x0E, 0x08, 9, 9, 0x40, 0x00}},
		{"skips an offset run", dialectShapes, []byte{0x01, 0x0E, 0x09, 1, 1, 2, 2, 0, 0, 0x40, 0x00}},
		{"skips a bulge run", dialectShapes, []byte{0x01, 0x0E, 0x0D, 0, 4, 127, 0, 0, 0x40, 0x00}},
		{"skips a fractional arc", dialectShapes, []byte{0x01, 0x0E, 0x0B, 0, 0, 0, 2, 0x0A, 0x40, 0x00}},
		{"skips a shapes sub-shape", dialectShapes, []byte{0x01, 0x0E, 0x07, 0x63, 0x40, 0x00}},
		{"skips a unifont sub-shape", dialectUnifont, []byte{0x01, 0x0E, 0x07, 0x12, 0x34, 0x40, 0x00}},
		{"skips a bigfont box reference", dialectBigfont, []byte{0x01, 0x0E, 0x07, 0, 0x12, 0x34, 2, 3, 4, 0x40, 0x00}},
		{"skips an extended box reference", dialectExtBigfont, []byte{0x01, 0x0E, 0x07, 0, 0x12, 0x34, 2, 3, 8, 4, 0x40, 0x00}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := interpFont(tt.dialect)
			s, err := f.interpret(tt.bytecode, 0)
			if err != nil {
				t.Fatalf("interpret() error = %v", err)
			}
			// Only the vector after the skipped command draws.
			want := []Polyline{{Pt(0, 0), Pt(4, 0)}}
			if diff := cmp.Diff(want, s.Polylines); diff != "" {
				t.Errorf("polylines mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestInterpret_Truncation(t *testing.T) {
	f := interpFont(dialectShapes)

	// A program cut off mid-command keeps what was drawn before it.
	s := mustInterpret(t, f, 0x01, 0x40, 0x04)
	want := []Polyline{{Pt(0, 0), Pt(4, 0)}}
	if diff := cmp.Diff(want, s.Polylines); diff != "" {
		t.Errorf("polylines mismatch (-want +got):\n%s", diff)
	}
	if *s.LastPoint != Pt(4, 0) {
		t.Errorf("LastPoint = %v, want (4, 0)", *s.LastPoint)
	}

	// Same for a sub-shape reference with no operand.
	s = mustInterpret(t, f, 0x01, 0x40, 0x07)
	if diff := cmp.Diff(want, s.Polylines); diff != "" {
		t.Errorf("polylines mismatch (-want +got):\n%s", diff)
	}
}

func TestInterpret_ImplicitEnd(t *testing.T) {
	f := interpFont(dialectShapes)
	s := mustInterpret(t, f, 0x01, 0x40)

	want := []Polyline{{Pt(0, 0), Pt(4, 0)}}
	if diff := cmp.Diff(want, s.Polylines); diff != "" {
		t.Errorf("polylines mismatch (-want +got):\n%s", diff)
	}
	if *s.LastPoint != Pt(4, 0) {
		t.Errorf("LastPoint = %v, want (4, 0)", *s.LastPoint)
	}
}

func TestInterpret_UnassignedOpcode(t *testing.T) {
	f := interpFont(dialectShapes)
	s := mustInterpret(t, f, 0x01, 0x0F, 0x40, 0x00)

	want := []Polyline{{Pt(0, 0), Pt(4, 0)}}
	if diff := cmp.Diff(want, s.Polylines); diff != "" {
		t.Errorf("polylines mismatch (-want +got):\n%s", diff)
	}
}
