package shx

import "errors"

// Sentinel errors for font decoding and glyph interpretation.
var (
	// ErrEmptyFontData is returned when font data is empty.
	ErrEmptyFontData = errors.New("shx: empty font data")

	// ErrStackOverflow is returned when a glyph program pushes a fifth
	// position onto the four-deep position stack. The glyph is
	// considered unrenderable.
	ErrStackOverflow = errors.New("shx: position stack overflow")

	// ErrRecursionLimit is returned when sub-shape references nest
	// deeper than the interpreter allows, which in practice means a
	// reference cycle.
	ErrRecursionLimit = errors.New("shx: sub-shape recursion too deep")
)

// HeaderError is returned when the leading header line of a font file
// is missing or malformed. Header failures are fatal: without a valid
// sub-type token the content tables cannot be decoded.
type HeaderError struct {
	Reason string
}

func (e *HeaderError) Error() string {
	return "shx: invalid header: " + e.Reason
}
