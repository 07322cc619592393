package shx

import "github.com/gogpu/shx/internal/byteio"

// shapesDecoder reads the classic Shapes layout: a descriptor table of
// (code, length) pairs followed by the glyph payloads in table order.
type shapesDecoder struct{}

func (shapesDecoder) decode(r *byteio.Reader) (*fontContent, error) {
	c := newFontContent()

	// First and last shape number, implied by the table itself.
	r.Skip(4)
	count := int(r.Uint16())

	type descriptor struct {
		code   uint16
		length uint16
	}
	descs := make([]descriptor, 0, count)
	for range count {
		descs = append(descs, descriptor{code: r.Uint16(), length: r.Uint16()})
	}
	if err := r.Err(); err != nil {
		return nil, err
	}

	for _, d := range descs {
		if d.length == 0 {
			Logger().Debug("zero-length glyph record skipped", "code", d.code)
			continue
		}
		payload := r.Bytes(int(d.length))
		if r.Err() != nil {
			Logger().Debug("glyph payload truncated, stopping early",
				"code", d.code, "len", d.length)
			break
		}
		if d.code == 0 {
			c.applyInfo(payload)
			continue
		}
		bytecode, ok := splitLabel(payload)
		if !ok {
			Logger().Debug("glyph record without label terminator skipped", "code", d.code)
			continue
		}
		c.Glyphs[d.code] = bytecode
	}
	return c, nil
}
