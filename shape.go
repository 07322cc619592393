package shx

// Polyline is an ordered run of connected points drawn with the pen
// down.
type Polyline []Point

// Shape is the decoded geometry of one glyph: polylines in draw order
// plus the pen position after the glyph program finished. That final
// position is the glyph's advance; text layout places the next
// character there.
//
// Shape mutators work in place. Every point held by a Shape is an
// independent value, so cloning a shape and mutating the clone never
// disturbs the original.
type Shape struct {
	// Polylines are the drawn strokes in execution order. Each holds at
	// least two points.
	Polylines []Polyline

	// LastPoint is the pen position after execution, or nil for shapes
	// assembled without one.
	LastPoint *Point

	bounds    Rect
	hasBounds bool
}

// IsEmpty returns true if the shape draws nothing.
func (s *Shape) IsEmpty() bool {
	return len(s.Polylines) == 0
}

// Clone creates a deep copy of the shape.
func (s *Shape) Clone() *Shape {
	if s == nil {
		return nil
	}
	clone := &Shape{
		Polylines: make([]Polyline, len(s.Polylines)),
		bounds:    s.bounds,
		hasBounds: s.hasBounds,
	}
	for i, pl := range s.Polylines {
		cp := make(Polyline, len(pl))
		copy(cp, pl)
		clone.Polylines[i] = cp
	}
	if s.LastPoint != nil {
		p := *s.LastPoint
		clone.LastPoint = &p
	}
	return clone
}

// Bounds returns the axis-aligned bounding box of the drawn points.
// The box is computed lazily and cached; mutators drop the cache. An
// empty shape has zero bounds. The final pen position does not count
// toward the box.
func (s *Shape) Bounds() Rect {
	if s.hasBounds {
		return s.bounds
	}
	var b Rect
	first := true
	for _, pl := range s.Polylines {
		for _, p := range pl {
			if first {
				b = Rect{Min: p, Max: p}
				first = false
				continue
			}
			b = b.ExpandToInclude(p)
		}
	}
	s.bounds = b
	s.hasBounds = true
	return b
}

// Translate shifts every point and the final pen position in place.
func (s *Shape) Translate(dx, dy float64) {
	for _, pl := range s.Polylines {
		for i := range pl {
			pl[i].X += dx
			pl[i].Y += dy
		}
	}
	if s.LastPoint != nil {
		s.LastPoint.X += dx
		s.LastPoint.Y += dy
	}
	s.hasBounds = false
}

// Scale scales the shape uniformly in place around the origin.
func (s *Shape) Scale(k float64) {
	s.ScaleXY(k, k)
}

// ScaleXY scales each axis independently in place around the origin.
func (s *Shape) ScaleXY(sx, sy float64) {
	for _, pl := range s.Polylines {
		for i := range pl {
			pl[i].X *= sx
			pl[i].Y *= sy
		}
	}
	if s.LastPoint != nil {
		s.LastPoint.X *= sx
		s.LastPoint.Y *= sy
	}
	s.hasBounds = false
}

// Normalize shifts the shape in place so the minimum corner of its
// bounding box sits at the origin. Empty shapes are left alone.
func (s *Shape) Normalize() {
	if s.IsEmpty() {
		return
	}
	b := s.Bounds()
	s.Translate(-b.Min.X, -b.Min.Y)
}
