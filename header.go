package shx

import (
	"bytes"
	"fmt"
	"strings"
)

// FontType identifies the three SHX content layouts. The type token in
// the header line selects which decoder reads the tables that follow.
type FontType int

const (
	// FontShapes is the classic single-byte shape font layout.
	FontShapes FontType = iota
	// FontBigfont is the double-byte CJK layout with an offset table.
	FontBigfont
	// FontUnifont is the Unicode layout with inline glyph records.
	FontUnifont
)

func (t FontType) String() string {
	switch t {
	case FontShapes:
		return "shapes"
	case FontBigfont:
		return "bigfont"
	case FontUnifont:
		return "unifont"
	default:
		return "unknown"
	}
}

// Header is the decoded leading line of an SHX file, for example
// "AutoCAD-86 shapes 1.0".
type Header struct {
	// Vendor is the producer token, typically "AutoCAD-86".
	Vendor string

	// Type selects the content layout.
	Type FontType

	// Version is the format version token, typically "1.0" or "1.1".
	Version string
}

// headerSentinel terminates the ASCII header line; everything after it
// is binary content.
const headerSentinel = 0x1A

// parseHeader locates the header sentinel, tokenizes the line before
// it, and returns the decoded header together with the offset of the
// first content byte.
func parseHeader(data []byte) (Header, int, error) {
	i := bytes.IndexByte(data, headerSentinel)
	if i < 0 {
		return Header{}, 0, &HeaderError{Reason: "missing sentinel byte"}
	}
	line := strings.TrimRight(string(data[:i]), "\r\n\t ")
	fields := strings.Fields(line)
	if len(fields) < 3 {
		return Header{}, 0, &HeaderError{Reason: fmt.Sprintf("malformed header line %q", line)}
	}

	h := Header{Vendor: fields[0], Version: fields[2]}
	switch strings.ToLower(fields[1]) {
	case "shapes":
		h.Type = FontShapes
	case "bigfont":
		h.Type = FontBigfont
	case "unifont":
		h.Type = FontUnifont
	default:
		return Header{}, 0, &HeaderError{Reason: fmt.Sprintf("unknown font type %q", fields[1])}
	}
	return h, i + 1, nil
}
