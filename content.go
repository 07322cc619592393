package shx

import (
	"github.com/gogpu/shx/internal/byteio"
)

// Orientation is the text direction a font was designed for.
type Orientation uint8

const (
	// Horizontal fonts advance along the positive X axis.
	Horizontal Orientation = iota
	// Vertical fonts advance downward; glyph programs carry extra
	// commands that are skipped when rendering horizontally.
	Vertical
)

func (o Orientation) String() string {
	if o == Vertical {
		return "vertical"
	}
	return "horizontal"
}

func orientationFrom(b byte) Orientation {
	if b == 0 {
		return Horizontal
	}
	return Vertical
}

// Metrics used when a font carries no usable info record.
const (
	defaultBaseUp   = 8
	defaultBaseDown = 2
)

// fontContent is the decoded glyph table of one font: raw bytecode per
// character code plus the metadata from the code-0 info record.
type fontContent struct {
	// Glyphs maps character codes to raw glyph bytecode. Code 0 never
	// appears here; its record holds font metadata instead.
	Glyphs map[uint16][]byte

	// Info is the font's descriptive name from the info record, or a
	// failure note when content decoding was abandoned.
	Info string

	// Orientation is the design text direction.
	Orientation Orientation

	// BaseUp is the cap height above the baseline in glyph units.
	BaseUp uint8

	// BaseDown is the descender depth below the baseline in glyph units.
	BaseDown uint8

	// Extended marks an Extended Bigfont, which widens the sub-shape
	// operands inside glyph bytecode.
	Extended bool
}

func newFontContent() *fontContent {
	return &fontContent{
		Glyphs:   make(map[uint16][]byte),
		BaseUp:   defaultBaseUp,
		BaseDown: defaultBaseDown,
	}
}

// failedContent is the stand-in for a font whose content tables could
// not be decoded: no glyphs, default metrics, the failure recorded in
// Info. The font stays usable for header and metadata queries.
func failedContent(err error) *fontContent {
	c := newFontContent()
	c.Info = "decode failed: " + err.Error()
	return c
}

// applyInfo decodes the Shapes and Unifont info record layout: a
// NUL-terminated font name followed by baseUp, baseDown, and an
// orientation byte. Records shorter than that keep the default metrics.
func (c *fontContent) applyInfo(payload []byte) {
	r := byteio.NewReader(payload)
	name := r.CString()
	if r.Err() != nil {
		c.Info = string(payload)
		Logger().Debug("font info record without terminator", "len", len(payload))
		return
	}
	c.Info = name
	up, down, orient := r.Uint8(), r.Uint8(), r.Uint8()
	if r.Err() != nil {
		Logger().Debug("short font info record", "len", len(payload))
		return
	}
	c.BaseUp = up
	c.BaseDown = down
	c.Orientation = orientationFrom(orient)
}

// applyBigfontInfo decodes the Bigfont code-0 record. A four-byte tail
// after the name is the standard layout (baseUp, baseDown, orientation,
// reserved). Any other tail length marks an Extended Bigfont, which
// stores baseDown in the fourth byte instead of the second.
func (c *fontContent) applyBigfontInfo(payload []byte) {
	r := byteio.NewReader(payload)
	name := r.CString()
	if r.Err() != nil {
		c.Info = string(payload)
		Logger().Debug("bigfont info record without terminator", "len", len(payload))
		return
	}
	c.Info = name
	tail := payload[r.Pos():]
	if len(tail) == 4 {
		c.BaseUp = tail[0]
		c.BaseDown = tail[1]
		c.Orientation = orientationFrom(tail[2])
		return
	}
	c.Extended = true
	if len(tail) < 4 {
		Logger().Debug("short bigfont info tail", "len", len(tail))
		return
	}
	c.BaseUp = tail[0]
	c.Orientation = orientationFrom(tail[2])
	c.BaseDown = tail[3]
}

// splitLabel separates a glyph record's NUL-terminated label from the
// bytecode that follows it. Records without a terminator have no
// bytecode and are reported as not ok.
func splitLabel(payload []byte) (bytecode []byte, ok bool) {
	r := byteio.NewReader(payload)
	r.CString()
	if r.Err() != nil {
		return nil, false
	}
	return payload[r.Pos():], true
}

// contentDecoder reads one content layout. The cursor passed to decode
// spans the whole file and is positioned at the first byte after the
// header sentinel; Bigfont glyph offsets are absolute file offsets, so
// seeks share the same coordinate space.
type contentDecoder interface {
	decode(r *byteio.Reader) (*fontContent, error)
}

// newContentDecoder returns the decoder matching a header's type token,
// or nil for a FontType no decoder handles.
func newContentDecoder(t FontType) contentDecoder {
	switch t {
	case FontShapes:
		return shapesDecoder{}
	case FontBigfont:
		return bigfontDecoder{}
	case FontUnifont:
		return unifontDecoder{}
	default:
		return nil
	}
}
