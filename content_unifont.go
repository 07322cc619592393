package shx

import "github.com/gogpu/shx/internal/byteio"

// unifontDecoder reads the Unifont layout: a record count, an info
// record, then inline (code, length, payload) glyph records in file
// order. A truncated file keeps every record decoded before the break.
type unifontDecoder struct{}

func (unifontDecoder) decode(r *byteio.Reader) (*fontContent, error) {
	c := newFontContent()

	count := r.Uint32()
	infoLen := int(r.Uint16())
	info := r.Bytes(infoLen)
	if err := r.Err(); err != nil {
		return nil, err
	}
	c.applyInfo(info)

	// count includes the info record just read.
	for i := uint32(1); i < count; i++ {
		code := r.Uint16()
		length := int(r.Uint16())
		payload := r.Bytes(length)
		if r.Err() != nil {
			Logger().Debug("unifont record truncated, stopping early",
				"index", i, "decoded", len(c.Glyphs))
			break
		}
		if code == 0 || length == 0 {
			continue
		}
		bytecode, ok := splitLabel(payload)
		if !ok {
			Logger().Debug("glyph record without label terminator skipped", "code", code)
			continue
		}
		c.Glyphs[code] = bytecode
	}
	return c, nil
}
