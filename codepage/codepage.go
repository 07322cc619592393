// Package codepage maps text onto SHX character codes.
//
// Shapes fonts index glyphs by single-byte codes. Bigfont fonts use the
// double-byte CJK encodings of their era: Shift-JIS for Japanese
// bigfonts, GBK for simplified Chinese, Big5 for traditional Chinese,
// EUC-KR for Korean. Unifont fonts index by Unicode code point.
// Codepage names these mappings and converts between runes and codes.
package codepage

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/traditionalchinese"
)

// Codepage identifies a rune-to-code mapping.
type Codepage int

const (
	// Unicode maps runes directly to their code points (Unifont).
	Unicode Codepage = iota
	// Latin1 maps ISO 8859-1 text onto single-byte codes (Shapes).
	Latin1
	// ShiftJIS maps Japanese text onto Bigfont codes.
	ShiftJIS
	// GBK maps simplified Chinese text onto Bigfont codes.
	GBK
	// Big5 maps traditional Chinese text onto Bigfont codes.
	Big5
	// EUCKR maps Korean text onto Bigfont codes.
	EUCKR
)

func (cp Codepage) String() string {
	switch cp {
	case Unicode:
		return "unicode"
	case Latin1:
		return "latin1"
	case ShiftJIS:
		return "shiftjis"
	case GBK:
		return "gbk"
	case Big5:
		return "big5"
	case EUCKR:
		return "euckr"
	default:
		return "unknown"
	}
}

// Parse returns the codepage named by s. Accepted names are "unicode",
// "latin1", "shiftjis" (or "sjis"), "gbk", "big5", and "euckr".
func Parse(s string) (Codepage, error) {
	switch strings.ToLower(s) {
	case "unicode", "utf8", "utf-8":
		return Unicode, nil
	case "latin1", "iso8859-1":
		return Latin1, nil
	case "shiftjis", "sjis", "shift-jis":
		return ShiftJIS, nil
	case "gbk":
		return GBK, nil
	case "big5":
		return Big5, nil
	case "euckr", "euc-kr":
		return EUCKR, nil
	default:
		return Unicode, fmt.Errorf("codepage: unknown codepage %q", s)
	}
}

// enc returns the x/text encoding behind the codepage, or nil for
// Unicode, which needs no transformation.
func (cp Codepage) enc() encoding.Encoding {
	switch cp {
	case Latin1:
		return charmap.ISO8859_1
	case ShiftJIS:
		return japanese.ShiftJIS
	case GBK:
		return simplifiedchinese.GBK
	case Big5:
		return traditionalchinese.Big5
	case EUCKR:
		return korean.EUCKR
	default:
		return nil
	}
}

// Encode maps a rune to the character code a font of this codepage
// indexes it by: the rune's byte sequence read big-endian, one or two
// bytes. Reports false when the rune has no mapping.
func (cp Codepage) Encode(r rune) (uint16, bool) {
	if cp == Unicode {
		if r < 0 || r > 0xFFFF {
			return 0, false
		}
		return uint16(r), true
	}
	e := cp.enc()
	if e == nil {
		return 0, false
	}
	b, err := e.NewEncoder().Bytes([]byte(string(r)))
	if err != nil || len(b) == 0 || len(b) > 2 {
		return 0, false
	}
	if len(b) == 1 {
		return uint16(b[0]), true
	}
	return uint16(b[0])<<8 | uint16(b[1]), true
}

// Decode maps a character code back to the rune it stands for. Reports
// false for codes that decode to nothing or to more than one rune.
func (cp Codepage) Decode(code uint16) (rune, bool) {
	if cp == Unicode {
		return rune(code), true
	}
	e := cp.enc()
	if e == nil {
		return 0, false
	}
	raw := []byte{byte(code)}
	if code > 0xFF {
		raw = []byte{byte(code >> 8), byte(code)}
	}
	s, err := e.NewDecoder().Bytes(raw)
	if err != nil {
		return 0, false
	}
	r, size := utf8.DecodeRune(s)
	if r == utf8.RuneError || size != len(s) {
		return 0, false
	}
	return r, true
}

// Codes converts a string to character codes, dropping runes the
// codepage cannot represent.
func (cp Codepage) Codes(s string) []uint16 {
	codes := make([]uint16, 0, len(s))
	for _, r := range s {
		if code, ok := cp.Encode(r); ok {
			codes = append(codes, code)
		}
	}
	return codes
}
