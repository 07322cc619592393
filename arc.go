package shx

import "math"

// DefaultArcStep is the tessellation step used when no option overrides
// it: one segment for every ten degrees of sweep.
const DefaultArcStep = math.Pi / 18

// Arc is a circular arc between two known endpoints.
//
// P0 and P1 are stored exactly as constructed, so tessellation
// reproduces the endpoints without rounding drift. Sweep is signed and
// measured in radians, positive counter-clockwise. A zero Radius or
// zero Sweep marks a degenerate arc that tessellates to its endpoints
// only.
type Arc struct {
	Center Point
	Radius float64
	Start  float64 // start angle in radians
	Sweep  float64 // signed sweep in radians, positive counter-clockwise
	P0, P1 Point   // exact endpoints
}

// Clockwise reports whether the arc runs clockwise.
func (a Arc) Clockwise() bool {
	return a.Sweep < 0
}

// NewBulgeArc builds the arc from start to end whose curvature is given
// by a bulge factor; values outside [-1, 1] are clamped. The bulge is
// the tangent of a quarter of the included angle: 0 is a straight
// segment, 1 a counter-clockwise semicircle, -1 a clockwise one. A
// positive bulge puts the center on the left of the start-to-end chord.
func NewBulgeArc(start, end Point, bulge float64) Arc {
	b := math.Max(-1, math.Min(1, bulge))
	chord := end.Sub(start)
	length := chord.Length()
	if b == 0 || length == 0 {
		return Arc{P0: start, P1: end}
	}

	theta := 4 * math.Atan(math.Abs(b))
	radius := length / (2 * math.Sin(theta/2))
	apothem := radius * math.Cos(theta/2)
	mid := start.Add(end).Mul(0.5)
	normal := chord.Perp().Normalize()

	center := mid.Add(normal.Mul(apothem))
	sweep := theta
	if b < 0 {
		center = mid.Sub(normal.Mul(apothem))
		sweep = -theta
	}
	return Arc{
		Center: center,
		Radius: radius,
		Start:  start.Sub(center).Angle(),
		Sweep:  sweep,
		P0:     start,
		P1:     end,
	}
}

// NewOctantArc builds the arc drawn by the octant-arc opcode: it starts
// at pen, has the given radius, begins in octant start (0-7, multiples
// of 45 degrees from the positive X axis) and spans octants 45-degree
// steps. A span of 0 or less means a full circle. The center sits
// opposite the start angle so the pen lies on the circle.
func NewOctantArc(pen Point, radius float64, start, octants int, clockwise bool) Arc {
	if octants <= 0 {
		octants = 8
	}
	startAngle := float64(start) * math.Pi / 4
	sweep := float64(octants) * math.Pi / 4
	if clockwise {
		sweep = -sweep
	}
	return arcFromPen(pen, radius, startAngle, sweep)
}

// arcFromPen builds an arc that starts exactly at pen with the given
// start angle and signed sweep. Used for both octant and fractional
// arcs, whose operands encode angles rather than endpoints.
func arcFromPen(pen Point, radius, start, sweep float64) Arc {
	center := pen.Sub(Pt(math.Cos(start), math.Sin(start)).Mul(radius))
	end := start + sweep
	return Arc{
		Center: center,
		Radius: radius,
		Start:  start,
		Sweep:  sweep,
		P0:     pen,
		P1:     center.Add(Pt(math.Cos(end), math.Sin(end)).Mul(radius)),
	}
}

// Tessellate approximates the arc with a polyline. step is the maximum
// angular advance per segment in radians; zero or negative selects
// DefaultArcStep. The first and last points are exactly P0 and P1; a
// degenerate arc yields just those two.
func (a Arc) Tessellate(step float64) []Point {
	if step <= 0 {
		step = DefaultArcStep
	}
	if a.Radius == 0 || a.Sweep == 0 {
		return []Point{a.P0, a.P1}
	}
	n := int(math.Ceil(math.Abs(a.Sweep) / step))
	pts := make([]Point, 0, n+1)
	pts = append(pts, a.P0)
	for i := 1; i < n; i++ {
		angle := a.Start + a.Sweep*float64(i)/float64(n)
		pts = append(pts, a.Center.Add(Pt(math.Cos(angle), math.Sin(angle)).Mul(a.Radius)))
	}
	return append(pts, a.P1)
}
