package shx

import "github.com/gogpu/shx/internal/byteio"

// bigfontDecoder reads the Bigfont layout: a descriptor table of
// (code, length, offset) records whose offsets point anywhere in the
// file. Character codes are big-endian in this table; everything else
// stays little-endian. The lead-byte change ranges are skipped.
type bigfontDecoder struct{}

func (bigfontDecoder) decode(r *byteio.Reader) (*fontContent, error) {
	c := newFontContent()

	r.Uint16() // descriptor slot size, unused
	count := int(r.Uint16())
	changes := int(r.Uint16())
	r.Skip(changes * 4)

	type entry struct {
		code   uint16
		length uint16
		offset uint32
	}
	entries := make([]entry, 0, count)
	for range count {
		entries = append(entries, entry{
			code:   r.Uint16BE(),
			length: r.Uint16(),
			offset: r.Uint32(),
		})
	}
	if err := r.Err(); err != nil {
		return nil, err
	}

	for _, e := range entries {
		// Unused table slots are zeroed; skip them quietly.
		if e.length == 0 {
			continue
		}
		if int(e.offset)+int(e.length) > r.Len() {
			Logger().Debug("glyph record outside file skipped",
				"code", e.code, "offset", e.offset, "len", e.length)
			continue
		}
		r.Seek(int(e.offset))
		payload := r.Bytes(int(e.length))
		if e.code == 0 {
			c.applyBigfontInfo(payload)
			continue
		}
		// Bigfont glyph records carry bytecode only, no label.
		c.Glyphs[e.code] = payload
	}
	return c, nil
}
