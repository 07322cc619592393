package shx

// Option configures a Font during decoding.
// Use functional options to customize interpretation behavior.
//
// Example:
//
//	// Default settings
//	f, err := shx.FromBytes(data)
//
//	// Coarser arcs, explicit pen policy
//	f, err := shx.FromBytes(data,
//	    shx.WithArcStep(math.Pi/8),
//	    shx.WithSubShapePenAdvance(shx.PenAdvanceNever))
type Option func(*Font)

// WithArcStep sets the arc tessellation step: the maximum angular
// advance per polyline segment, in radians. Zero or negative restores
// DefaultArcStep.
func WithArcStep(step float64) Option {
	return func(f *Font) {
		if step <= 0 {
			step = DefaultArcStep
		}
		f.arcStep = step
	}
}

// PenAdvanceMode controls where the pen lands after a sub-shape
// reference has been composed into a glyph.
type PenAdvanceMode int

const (
	// PenAdvanceAuto follows the font's dialect: Bigfont programs move
	// the pen to the composed sub-shape's final position, Shapes and
	// Unifont programs keep it at the reference point.
	PenAdvanceAuto PenAdvanceMode = iota

	// PenAdvanceAlways moves the pen to the composed sub-shape's final
	// position.
	PenAdvanceAlways

	// PenAdvanceNever keeps the pen at the reference point.
	PenAdvanceNever
)

// WithSubShapePenAdvance overrides the dialect's pen placement after a
// sub-shape reference.
func WithSubShapePenAdvance(mode PenAdvanceMode) Option {
	return func(f *Font) {
		f.penMode = mode
	}
}
