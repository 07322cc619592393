package shx

import (
	"os"
	"slices"
	"sync"

	"github.com/gogpu/shx/internal/byteio"
)

// Font is a decoded SHX font: header, metadata, the raw glyph table,
// and a lazy cache of interpreted shapes.
//
// Font is safe for concurrent use. A single mutex serializes glyph
// interpretation and cache access; metadata accessors read immutable
// state and take no lock.
type Font struct {
	header  Header
	content *fontContent
	dialect dialect

	arcStep float64
	penMode PenAdvanceMode

	mu    sync.Mutex
	cache *shapeCache
}

// FromBytes decodes an SHX font from data. The bytes are copied, so the
// caller may reuse the buffer.
//
// A missing or unrecognized header is fatal and returns a HeaderError.
// Content table failures are not: the font then loads with an empty
// glyph table, default metrics, and the failure recorded in Info, so
// header and metadata stay queryable.
func FromBytes(data []byte, opts ...Option) (*Font, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFontData
	}
	buf := make([]byte, len(data))
	copy(buf, data)

	header, contentStart, err := parseHeader(buf)
	if err != nil {
		return nil, err
	}

	f := &Font{
		header:  header,
		arcStep: DefaultArcStep,
		cache:   newShapeCache(),
	}
	for _, opt := range opts {
		opt(f)
	}

	// Offsets inside Bigfont tables are absolute file offsets, so the
	// decoder cursor spans the whole buffer.
	r := byteio.NewReader(buf)
	r.Seek(contentStart)
	content, err := newContentDecoder(header.Type).decode(r)
	if err != nil {
		Logger().Warn("font content decode failed",
			"type", header.Type.String(), "err", err)
		content = failedContent(err)
	}
	f.content = content
	f.dialect = dialectFor(header.Type, content.Extended)

	Logger().Debug("font decoded",
		"type", header.Type.String(),
		"vendor", header.Vendor,
		"glyphs", len(content.Glyphs),
		"extended", content.Extended)
	return f, nil
}

// LoadFont reads and decodes the SHX font file at path.
func LoadFont(path string, opts ...Option) (*Font, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return FromBytes(data, opts...)
}

// dialectFor maps a content layout and the extended flag onto the
// bytecode dialect used by the interpreter.
func dialectFor(t FontType, extended bool) dialect {
	switch t {
	case FontBigfont:
		if extended {
			return dialectExtBigfont
		}
		return dialectBigfont
	case FontUnifont:
		return dialectUnifont
	default:
		return dialectShapes
	}
}

// Header returns the decoded header line.
func (f *Font) Header() Header {
	return f.header
}

// Type returns the font's content layout.
func (f *Font) Type() FontType {
	return f.header.Type
}

// Info returns the font's descriptive name from its info record, or a
// failure note when the content tables could not be decoded.
func (f *Font) Info() string {
	return f.content.Info
}

// Orientation returns the design text direction.
func (f *Font) Orientation() Orientation {
	return f.content.Orientation
}

// BaseUp returns the cap height above the baseline in glyph units.
// GetCharShape scales glyphs so this height maps to the requested size.
func (f *Font) BaseUp() int {
	return int(f.content.BaseUp)
}

// BaseDown returns the descender depth below the baseline in glyph
// units.
func (f *Font) BaseDown() int {
	return int(f.content.BaseDown)
}

// Extended reports whether the font is an Extended Bigfont.
func (f *Font) Extended() bool {
	return f.content.Extended
}

// NumGlyphs returns the number of glyph records the font defines.
func (f *Font) NumGlyphs() int {
	return len(f.content.Glyphs)
}

// HasCode reports whether the font defines a glyph for code.
func (f *Font) HasCode(code uint16) bool {
	_, ok := f.content.Glyphs[code]
	return ok
}

// Codes returns every defined character code in ascending order.
func (f *Font) Codes() []uint16 {
	codes := make([]uint16, 0, len(f.content.Glyphs))
	for code := range f.content.Glyphs {
		codes = append(codes, code)
	}
	slices.Sort(codes)
	return codes
}

// GetCharShape returns the glyph for code rendered at size: the
// canonical geometry scaled uniformly so the font's cap height maps to
// size. The returned shape is an independent copy the caller may
// mutate. Returns nil for code 0, for codes the font does not define,
// and for glyphs whose program cannot be interpreted.
func (f *Font) GetCharShape(code uint16, size float64) *Shape {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.charShape(code, size)
}

// Release drops every cached shape while keeping the header, metadata,
// and raw glyph records. Glyphs are re-interpreted on demand afterward.
// Safe to call repeatedly.
func (f *Font) Release() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cache.release()
}

// CacheStats returns a snapshot of the font's shape cache activity.
func (f *Font) CacheStats() CacheStats {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.cache.stats()
}
