// Package byteio provides a bounds-checked little-endian cursor over a
// byte slice.
//
// SHX content is little-endian except for character codes, which are
// stored big-endian; the Reader exposes both widths explicitly. Errors
// are sticky: the first failed read records an error wrapping
// io.ErrUnexpectedEOF, moves the cursor to the end, and every later
// read returns a zero value. Callers check Err once after a batch of
// reads instead of after every field.
package byteio

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
)

// Reader is a sequential cursor over a byte slice.
//
// The zero value is an empty reader. Reader is not safe for concurrent
// use.
type Reader struct {
	data []byte
	pos  int
	err  error
}

// NewReader returns a Reader over data. The reader does not copy data;
// the caller must not mutate it while reading.
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// Err returns the first read failure, or nil. Once set, the cursor sits
// at the end of the data and all reads return zero values.
func (r *Reader) Err() error {
	return r.err
}

// Pos returns the current cursor offset.
func (r *Reader) Pos() int {
	return r.pos
}

// Len returns the total length of the underlying data.
func (r *Reader) Len() int {
	return len(r.data)
}

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int {
	return len(r.data) - r.pos
}

// fail records the first error and parks the cursor at the end.
func (r *Reader) fail(n int) {
	if r.err == nil {
		r.err = fmt.Errorf("byteio: need %d bytes at offset %d, have %d: %w",
			n, r.pos, len(r.data)-r.pos, io.ErrUnexpectedEOF)
	}
	r.pos = len(r.data)
}

// take returns the next n bytes without copying, or nil after a bounds
// failure.
func (r *Reader) take(n int) []byte {
	if r.err != nil {
		return nil
	}
	if n < 0 || len(r.data)-r.pos < n {
		r.fail(n)
		return nil
	}
	b := r.data[r.pos : r.pos+n]
	r.pos += n
	return b
}

// Uint8 reads one byte.
func (r *Reader) Uint8() uint8 {
	b := r.take(1)
	if b == nil {
		return 0
	}
	return b[0]
}

// Int8 reads one byte as a signed value.
func (r *Reader) Int8() int8 {
	return int8(r.Uint8())
}

// Uint16 reads a little-endian 16-bit value.
func (r *Reader) Uint16() uint16 {
	b := r.take(2)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint16(b)
}

// Uint16BE reads a big-endian 16-bit value. Character codes use this
// order; everything else in an SHX file is little-endian.
func (r *Reader) Uint16BE() uint16 {
	b := r.take(2)
	if b == nil {
		return 0
	}
	return binary.BigEndian.Uint16(b)
}

// Uint32 reads a little-endian 32-bit value.
func (r *Reader) Uint32() uint32 {
	b := r.take(4)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint32(b)
}

// Bytes reads the next n bytes into a fresh slice. The result does not
// alias the underlying data.
func (r *Reader) Bytes(n int) []byte {
	b := r.take(n)
	if b == nil {
		return nil
	}
	out := make([]byte, n)
	copy(out, b)
	return out
}

// CString reads bytes up to and including the next NUL and returns them
// as a string without the terminator. A missing terminator is a bounds
// failure.
func (r *Reader) CString() string {
	if r.err != nil {
		return ""
	}
	i := bytes.IndexByte(r.data[r.pos:], 0)
	if i < 0 {
		r.fail(r.Remaining() + 1)
		return ""
	}
	s := string(r.data[r.pos : r.pos+i])
	r.pos += i + 1
	return s
}

// Skip advances the cursor by n bytes.
func (r *Reader) Skip(n int) {
	if r.take(n) == nil {
		return
	}
}

// Seek moves the cursor to an absolute offset. Offsets outside the data
// are a bounds failure.
func (r *Reader) Seek(pos int) {
	if r.err != nil {
		return
	}
	if pos < 0 || pos > len(r.data) {
		r.err = fmt.Errorf("byteio: seek to %d outside %d bytes: %w",
			pos, len(r.data), io.ErrUnexpectedEOF)
		r.pos = len(r.data)
		return
	}
	r.pos = pos
}
