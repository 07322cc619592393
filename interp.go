package shx

import (
	"math"

	"github.com/gogpu/shx/internal/byteio"
)

// Glyph program opcodes. A byte above lastOpcode is a drawing vector:
// high nibble magnitude, low nibble direction.
const (
	opEnd       = 0x00
	opPenDown   = 0x01
	opPenUp     = 0x02
	opDivScale  = 0x03
	opMulScale  = 0x04
	opPushPos   = 0x05
	opPopPos    = 0x06
	opSubShape  = 0x07
	opOffset    = 0x08
	opOffsetRun = 0x09
	opOctantArc = 0x0A
	opFractArc  = 0x0B
	opBulgeArc  = 0x0C
	opBulgeRun  = 0x0D
	opVertical  = 0x0E

	lastOpcode = 0x0F
)

// maxPositionStack is the depth of the push/pop position stack.
const maxPositionStack = 4

// maxSubShapeDepth bounds sub-shape nesting. A reference that would
// nest deeper composes nothing; cycles between glyphs end up here.
const maxSubShapeDepth = 8

// dialect selects the operand widths that differ between content
// layouts inside glyph bytecode.
type dialect int

const (
	dialectShapes dialect = iota
	dialectBigfont
	dialectExtBigfont
	dialectUnifont
)

// vectorDirections maps the low nibble of a drawing vector to its unit
// displacement. The sixteen directions step counter-clockwise from the
// positive X axis; diagonal neighbours carry half-unit components.
var vectorDirections = [16]Point{
	{1, 0}, {1, 0.5}, {1, 1}, {0.5, 1},
	{0, 1}, {-0.5, 1}, {-1, 1}, {-1, 0.5},
	{-1, 0}, {-1, -0.5}, {-1, -1}, {-0.5, -1},
	{0, -1}, {0.5, -1}, {1, -1}, {1, -0.5},
}

// machine is the mutable state of one glyph program execution: the pen,
// the running scale, the four-slot position stack, and the polylines
// accumulated so far.
type machine struct {
	pen     Point
	scale   float64
	penDown bool
	cur     Polyline
	out     []Polyline
	stack   [maxPositionStack]Point
	sp      int
}

// commit closes the open stroke. Strokes shorter than two points draw
// nothing and are dropped.
func (m *machine) commit() {
	if len(m.cur) >= 2 {
		m.out = append(m.out, m.cur)
	}
	m.cur = nil
}

// moveBy displaces the pen, extending the open stroke when the pen is
// down.
func (m *machine) moveBy(d Point) {
	m.pen = m.pen.Add(d)
	if m.penDown {
		m.cur = append(m.cur, m.pen)
	}
}

// vector executes a drawing vector byte.
func (m *machine) vector(op byte) {
	length := float64(op >> 4)
	m.moveBy(vectorDirections[op&0x0F].Mul(length * m.scale))
}

// applyArc tessellates an arc into the open stroke. With the pen down
// the arc replaces the stroke's most recent point: the arc carries its
// own exact start, which supersedes the point pushed at pen-down or by
// the previous command. With the pen up the arc only moves the pen.
func (m *machine) applyArc(a Arc, step float64) {
	if m.penDown {
		if len(m.cur) > 0 {
			m.cur = m.cur[:len(m.cur)-1]
		}
		m.cur = append(m.cur, a.Tessellate(step)...)
	}
	m.pen = a.P1
}

// applyBulge draws one bulge-arc displacement. The bulge byte is
// clamped to -127 so dividing by 127 lands on [-1, 1].
func (m *machine) applyBulge(disp Point, bulge int8, step float64) {
	b := float64(bulge)
	if b < -127 {
		b = -127
	}
	m.applyArc(NewBulgeArc(m.pen, m.pen.Add(disp), b/127), step)
}

// finish closes the open stroke and packs the result. The final pen
// position becomes the shape's advance.
func (m *machine) finish() *Shape {
	m.commit()
	p := m.pen
	return &Shape{Polylines: m.out, LastPoint: &p}
}

// interpret runs one glyph program and returns its unscaled shape.
// depth is the current sub-shape nesting level. Bytecode that ends
// without an end opcode, or that is cut short mid-command, finishes
// with whatever was accumulated. The only fatal failure is a position
// stack overflow.
func (f *Font) interpret(bytecode []byte, depth int) (*Shape, error) {
	r := byteio.NewReader(bytecode)
	m := &machine{scale: 1}

	for r.Remaining() > 0 {
		op := r.Uint8()
		if op > lastOpcode {
			m.vector(op)
			continue
		}

		switch op {
		case opEnd:
			return m.finish(), nil

		case opPenDown:
			m.commit()
			m.penDown = true
			m.cur = Polyline{m.pen}

		case opPenUp:
			m.commit()
			m.penDown = false

		case opDivScale:
			v := r.Uint8()
			if v == 0 {
				Logger().Warn("zero scale divisor ignored")
			} else {
				m.scale /= float64(v)
			}

		case opMulScale:
			v := r.Uint8()
			if v == 0 {
				Logger().Warn("zero scale factor ignored")
			} else {
				m.scale *= float64(v)
			}

		case opPushPos:
			if m.sp == maxPositionStack {
				return nil, ErrStackOverflow
			}
			m.stack[m.sp] = m.pen
			m.sp++

		case opPopPos:
			if m.sp == 0 {
				Logger().Warn("position pop on empty stack ignored")
			} else {
				m.sp--
				m.pen = m.stack[m.sp]
			}

		case opSubShape:
			f.subShape(m, r, depth)

		case opOffset:
			d := Pt(float64(r.Int8()), float64(r.Int8()))
			m.moveBy(d.Mul(m.scale))

		case opOffsetRun:
			for {
				dx := float64(r.Int8())
				dy := float64(r.Int8())
				if dx == 0 && dy == 0 {
					break
				}
				m.moveBy(Pt(dx, dy).Mul(m.scale))
			}

		case opOctantArc:
			radius := float64(r.Uint8()) * m.scale
			flag := int(r.Int8())
			cw := flag < 0
			if cw {
				flag = -flag
			}
			m.applyArc(NewOctantArc(m.pen, radius, (flag>>3)&7, flag&7, cw), f.arcStep)

		case opFractArc:
			so := float64(r.Uint8())
			eo := float64(r.Uint8())
			radius := float64(int(r.Uint8())*256+int(r.Uint8())) * m.scale
			flag := int(r.Int8())
			cw := flag < 0
			if cw {
				flag = -flag
			}
			octants := flag & 7
			if octants == 0 {
				octants = 8
			}
			dir := 1.0
			if cw {
				dir = -1
			}
			start := (float64((flag>>3)&7) + dir*so/256) * math.Pi / 4
			sweep := dir * (float64(octants) + (eo-so)/256) * math.Pi / 4
			m.applyArc(arcFromPen(m.pen, radius, start, sweep), f.arcStep)

		case opBulgeArc:
			d := Pt(float64(r.Int8()), float64(r.Int8()))
			m.applyBulge(d.Mul(m.scale), r.Int8(), f.arcStep)

		case opBulgeRun:
			for {
				dx := float64(r.Int8())
				dy := float64(r.Int8())
				if dx == 0 && dy == 0 {
					// The terminator is two bytes; no bulge follows it.
					break
				}
				m.applyBulge(Pt(dx, dy).Mul(m.scale), r.Int8(), f.arcStep)
			}

		case opVertical:
			f.skipCommand(r)

		default:
			Logger().Warn("unassigned opcode ignored", "opcode", op)
		}

		if r.Err() != nil {
			Logger().Debug("glyph bytecode cut short mid-command",
				"opcode", op, "len", len(bytecode))
			break
		}
	}
	return m.finish(), nil
}

// subShape resolves one sub-shape reference and composes the referenced
// glyph into the running output. Resolution failures compose nothing;
// the parent program continues.
func (f *Font) subShape(m *machine, r *byteio.Reader, depth int) {
	switch f.dialect {
	case dialectShapes:
		code := uint16(r.Uint8())
		if r.Err() != nil {
			return
		}
		f.composeImplicit(m, code, depth)

	case dialectUnifont:
		code := r.Uint16BE()
		if r.Err() != nil {
			return
		}
		f.composeImplicit(m, code, depth)

	case dialectBigfont, dialectExtBigfont:
		lead := r.Uint8()
		if r.Err() != nil {
			return
		}
		if lead != 0 {
			f.composeImplicit(m, uint16(lead), depth)
			return
		}
		// Two-byte reference form with an explicit placement box.
		code := r.Uint16BE()
		x := float64(r.Int8())
		y := float64(r.Int8())
		var w, h float64
		if f.dialect == dialectExtBigfont {
			w = float64(r.Uint8())
			h = float64(r.Uint8())
		} else {
			h = float64(r.Uint8())
			w = h
		}
		if r.Err() != nil {
			return
		}
		origin := Pt(x, y).Mul(m.scale)
		f.composeExplicit(m, code, origin, w*m.scale, h*m.scale, depth)
	}
}

// composeImplicit places a sub-shape at the pen: the referenced glyph
// is normalized to its own bounding-box origin, scaled by the running
// scale, and translated to the pen position.
func (f *Font) composeImplicit(m *machine, code uint16, depth int) {
	sub := f.resolveSubShape(code, depth)
	if sub == nil {
		return
	}
	sub.Normalize()
	sub.Scale(m.scale)
	sub.Translate(m.pen.X, m.pen.Y)
	f.splice(m, sub)
}

// composeExplicit places a sub-shape into an absolute box: normalized,
// stretched per axis to the requested width and height, and translated
// to the given origin. A zero extent on either axis keeps that axis at
// scale 1.
func (f *Font) composeExplicit(m *machine, code uint16, origin Point, w, h float64, depth int) {
	sub := f.resolveSubShape(code, depth)
	if sub == nil {
		return
	}
	sub.Normalize()
	b := sub.Bounds()
	sx, sy := 1.0, 1.0
	if b.Width() > 0 {
		sx = w / b.Width()
	}
	if b.Height() > 0 {
		sy = h / b.Height()
	}
	sub.ScaleXY(sx, sy)
	sub.Translate(origin.X, origin.Y)
	f.splice(m, sub)
}

// resolveSubShape looks up the referenced glyph's canonical shape and
// returns a private copy, or nil when the reference cannot be used.
func (f *Font) resolveSubShape(code uint16, depth int) *Shape {
	sub, err := f.shapeForCode(code, depth+1)
	if err != nil {
		Logger().Debug("sub-shape interpretation failed", "code", code, "err", err)
		return nil
	}
	if sub == nil {
		Logger().Debug("sub-shape reference unresolved", "code", code)
		return nil
	}
	return sub.Clone()
}

// splice appends a composed shape's polylines to the output and applies
// the pen-advance policy. An open parent stroke keeps running.
func (f *Font) splice(m *machine, s *Shape) {
	for _, pl := range s.Polylines {
		if len(pl) >= 2 {
			m.out = append(m.out, pl)
		}
	}
	if f.advancesAfterSubShape() && s.LastPoint != nil {
		m.pen = *s.LastPoint
	}
}

// advancesAfterSubShape reports whether the pen moves to a composed
// sub-shape's final position or stays where the reference was made.
func (f *Font) advancesAfterSubShape() bool {
	switch f.penMode {
	case PenAdvanceAlways:
		return true
	case PenAdvanceNever:
		return false
	default:
		return f.dialect == dialectBigfont || f.dialect == dialectExtBigfont
	}
}

// skipCommand consumes one whole command without executing it. The
// vertical-text marker uses this: the command after it only applies
// when rendering down the page.
func (f *Font) skipCommand(r *byteio.Reader) {
	op := r.Uint8()
	if op > lastOpcode {
		return // drawing vectors carry no operands
	}
	switch op {
	case opDivScale, opMulScale:
		r.Skip(1)
	case opSubShape:
		f.skipSubShape(r)
	case opOffset:
		r.Skip(2)
	case opOffsetRun:
		for {
			dx := r.Int8()
			dy := r.Int8()
			if r.Err() != nil || (dx == 0 && dy == 0) {
				return
			}
		}
	case opOctantArc:
		r.Skip(2)
	case opFractArc:
		r.Skip(5)
	case opBulgeArc:
		r.Skip(3)
	case opBulgeRun:
		for {
			dx := r.Int8()
			dy := r.Int8()
			if r.Err() != nil || (dx == 0 && dy == 0) {
				return
			}
			r.Skip(1)
		}
	}
	// The remaining opcodes carry no operands.
}

// skipSubShape consumes the operands of a sub-shape reference.
func (f *Font) skipSubShape(r *byteio.Reader) {
	switch f.dialect {
	case dialectShapes:
		r.Skip(1)
	case dialectUnifont:
		r.Skip(2)
	case dialectBigfont:
		if r.Uint8() == 0 {
			r.Skip(5)
		}
	case dialectExtBigfont:
		if r.Uint8() == 0 {
			r.Skip(6)
		}
	}
}
