// SPDX-FileCopyrightText: 2023 The binio Authors
//
// SPDX-License-Identifier: MIT

package binio

import (
	"io"
	"unicode/utf16"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"

	xenc "golang.org/x/text/encoding"
)

type encKind uint8

const (
	encUTF8 encKind = iota
	encUTF16LE
	encUTF16BE
	encCharmap
	encMultibyte
)

// Encoding identifies one member of the closed catalog of supported text
// encodings, together with its capability record.
//
// An encoding is lossy when encode-then-decode of an arbitrary character is
// not guaranteed to reproduce the original; writing against a lossy encoding
// may legitimately fail with an UnsupportedCharError instead of substituting
// a replacement byte. Line I/O is only available on encodings where the
// terminator bytes are unambiguous in the stream.
type Encoding struct {
	name  string
	unit  int
	lossy bool
	lines bool
	kind  encKind
	cm    *charmap.Charmap
	xe    xenc.Encoding
}

// The encoding catalog. Every member is pre-classified; there is no way to
// construct an Encoding outside of it.
var (
	UTF8    = Encoding{name: "utf-8", unit: 1, lines: true, kind: encUTF8}
	UTF16LE = Encoding{name: "utf-16le", unit: 2, lines: true, kind: encUTF16LE}
	UTF16BE = Encoding{name: "utf-16be", unit: 2, lines: true, kind: encUTF16BE}

	Latin1      = Encoding{name: "latin-1", unit: 1, lossy: true, lines: true, kind: encCharmap, cm: charmap.ISO8859_1}
	Windows1252 = Encoding{name: "windows-1252", unit: 1, lossy: true, lines: true, kind: encCharmap, cm: charmap.Windows1252}
	KOI8R       = Encoding{name: "koi8-r", unit: 1, lossy: true, lines: true, kind: encCharmap, cm: charmap.KOI8R}

	ShiftJIS = Encoding{name: "shift-jis", unit: 1, lossy: true, lines: false, kind: encMultibyte, xe: japanese.ShiftJIS}
)

// Encodings returns the catalog of supported encodings.
func Encodings() []Encoding {
	return []Encoding{UTF8, UTF16LE, UTF16BE, Latin1, Windows1252, KOI8R, ShiftJIS}
}

// EncodingByName looks up a catalog member by its name.
func EncodingByName(name string) (Encoding, bool) {
	for _, e := range Encodings() {
		if e.name == name {
			return e, true
		}
	}
	return Encoding{}, false
}

// Name returns the canonical name of the encoding.
func (e Encoding) Name() string { return e.name }

func (e Encoding) String() string { return e.name }

// IsLossy reports whether encode-then-decode of an arbitrary character may
// fail or yield a different character.
func (e Encoding) IsLossy() bool { return e.lossy }

// SupportsLines reports whether line I/O is defined for the encoding.
func (e Encoding) SupportsLines() bool { return e.lines }

// UnitWidth returns the minimal code unit width in bytes. Zero-terminated
// strings end in one all-zero unit of this width.
func (e Encoding) UnitWidth() int { return e.unit }

// appendRune appends the encoded bytes of r to dst. Characters the encoding
// can not represent fail with UnsupportedCharError.
func (e Encoding) appendRune(dst []byte, r rune) ([]byte, error) {
	switch e.kind {
	case encUTF8:
		if !utf8.ValidRune(r) {
			return dst, UnsupportedCharError{Encoding: e.name, Char: r}
		}
		return utf8.AppendRune(dst, r), nil

	case encUTF16LE, encUTF16BE:
		if r < 0x10000 {
			if !utf8.ValidRune(r) { // the surrogate range
				return dst, UnsupportedCharError{Encoding: e.name, Char: r}
			}
			return e.appendUnit(dst, uint16(r)), nil
		}
		hi, lo := utf16.EncodeRune(r)
		if hi == utf8.RuneError && lo == utf8.RuneError {
			return dst, UnsupportedCharError{Encoding: e.name, Char: r}
		}
		dst = e.appendUnit(dst, uint16(hi))
		return e.appendUnit(dst, uint16(lo)), nil

	case encCharmap:
		b, ok := e.cm.EncodeRune(r)
		if !ok {
			return dst, UnsupportedCharError{Encoding: e.name, Char: r}
		}
		return append(dst, b), nil

	default: // multibyte via x/text transform
		out, err := e.xe.NewEncoder().Bytes([]byte(string(r)))
		if err != nil {
			return dst, UnsupportedCharError{Encoding: e.name, Char: r}
		}
		return append(dst, out...), nil
	}
}

func (e Encoding) appendUnit(dst []byte, u uint16) []byte {
	if e.kind == encUTF16BE {
		return append(dst, byte(u>>8), byte(u))
	}
	return append(dst, byte(u), byte(u>>8))
}

func (e Encoding) unitAt(b []byte) uint16 {
	if e.kind == encUTF16BE {
		return uint16(b[0])<<8 | uint16(b[1])
	}
	return uint16(b[1])<<8 | uint16(b[0])
}

// Encode returns the byte representation of s under the encoding.
func (e Encoding) Encode(s string) ([]byte, error) {
	switch e.kind {
	case encUTF8:
		return []byte(s), nil

	case encUTF16LE, encUTF16BE:
		units := utf16.Encode([]rune(s))
		out := make([]byte, 0, 2*len(units))
		for _, u := range units {
			out = e.appendUnit(out, u)
		}
		return out, nil

	case encCharmap:
		out := make([]byte, 0, len(s))
		for _, r := range s {
			b, ok := e.cm.EncodeRune(r)
			if !ok {
				return nil, UnsupportedCharError{Encoding: e.name, Char: r}
			}
			out = append(out, b)
		}
		return out, nil

	default:
		out, err := e.xe.NewEncoder().Bytes([]byte(s))
		if err != nil {
			return nil, UnsupportedCharError{Encoding: e.name, Char: firstUnmappable(e, s)}
		}
		return out, nil
	}
}

// firstUnmappable finds the character that made a bulk encode fail, so the
// error can name it.
func firstUnmappable(e Encoding, s string) rune {
	for _, r := range s {
		if _, err := e.xe.NewEncoder().Bytes([]byte(string(r))); err != nil {
			return r
		}
	}
	return -1
}

// Decode interprets b as text in the encoding. Byte sequences without an
// unambiguous mapping fail with UnsupportedCharError.
func (e Encoding) Decode(b []byte) (string, error) {
	switch e.kind {
	case encUTF8:
		return string(b), nil

	case encUTF16LE, encUTF16BE:
		if len(b)%2 != 0 {
			return "", UnsupportedCharError{Encoding: e.name, Char: -1}
		}
		out := make([]rune, 0, len(b)/2)
		for i := 0; i < len(b); i += 2 {
			u := rune(e.unitAt(b[i:]))
			if !utf16.IsSurrogate(u) {
				out = append(out, u)
				continue
			}
			if i+4 > len(b) {
				return "", UnsupportedCharError{Encoding: e.name, Char: -1}
			}
			r := utf16.DecodeRune(u, rune(e.unitAt(b[i+2:])))
			if r == utf8.RuneError {
				return "", UnsupportedCharError{Encoding: e.name, Char: -1}
			}
			out = append(out, r)
			i += 2
		}
		return string(out), nil

	case encCharmap:
		out := make([]rune, 0, len(b))
		for _, c := range b {
			r := e.cm.DecodeByte(c)
			if r == utf8.RuneError {
				return "", UnsupportedCharError{Encoding: e.name, Char: -1}
			}
			out = append(out, r)
		}
		return string(out), nil

	default:
		out, err := e.xe.NewDecoder().Bytes(b)
		if err != nil {
			return "", UnsupportedCharError{Encoding: e.name, Char: -1}
		}
		// the transform decoder substitutes instead of failing, and no
		// catalog member maps any byte sequence to the replacement char
		for _, r := range string(out) {
			if r == utf8.RuneError {
				return "", UnsupportedCharError{Encoding: e.name, Char: -1}
			}
		}
		return string(out), nil
	}
}

// readRune decodes exactly one character from rd, consuming precisely the
// bytes that encode it. A clean end of stream before the first byte returns
// io.EOF; running dry mid-character returns ErrTruncated.
func (e Encoding) readRune(rd io.Reader) (rune, error) {
	var tmp [4]byte

	switch e.kind {
	case encUTF8:
		if err := readUnit(rd, tmp[:1], true); err != nil {
			return 0, err
		}
		n := utf8SeqLen(tmp[0])
		if n == 0 {
			return 0, UnsupportedCharError{Encoding: e.name, Char: -1}
		}
		if n > 1 {
			if err := readUnit(rd, tmp[1:n], false); err != nil {
				return 0, err
			}
		}
		r, size := utf8.DecodeRune(tmp[:n])
		if r == utf8.RuneError && size <= 1 {
			return 0, UnsupportedCharError{Encoding: e.name, Char: -1}
		}
		return r, nil

	case encUTF16LE, encUTF16BE:
		if err := readUnit(rd, tmp[:2], true); err != nil {
			return 0, err
		}
		u := rune(e.unitAt(tmp[:]))
		if !utf16.IsSurrogate(u) {
			return u, nil
		}
		if err := readUnit(rd, tmp[2:4], false); err != nil {
			return 0, err
		}
		r := utf16.DecodeRune(u, rune(e.unitAt(tmp[2:])))
		if r == utf8.RuneError {
			return 0, UnsupportedCharError{Encoding: e.name, Char: -1}
		}
		return r, nil

	case encCharmap:
		if err := readUnit(rd, tmp[:1], true); err != nil {
			return 0, err
		}
		r := e.cm.DecodeByte(tmp[0])
		if r == utf8.RuneError {
			return 0, UnsupportedCharError{Encoding: e.name, Char: -1}
		}
		return r, nil

	default:
		if err := readUnit(rd, tmp[:1], true); err != nil {
			return 0, err
		}
		n := 1
		if b := tmp[0]; (b >= 0x81 && b <= 0x9f) || (b >= 0xe0 && b <= 0xfc) {
			if err := readUnit(rd, tmp[1:2], false); err != nil {
				return 0, err
			}
			n = 2
		}
		s, err := e.Decode(tmp[:n])
		if err != nil {
			return 0, err
		}
		r, _ := utf8.DecodeRuneInString(s)
		return r, nil
	}
}

// utf8SeqLen returns the byte length of the sequence begun by lead, or zero
// if lead can not begin one.
func utf8SeqLen(lead byte) int {
	switch {
	case lead < 0x80:
		return 1
	case lead >= 0xc2 && lead <= 0xdf:
		return 2
	case lead >= 0xe0 && lead <= 0xef:
		return 3
	case lead >= 0xf0 && lead <= 0xf4:
		return 4
	}
	return 0
}

// readUnit fills p from rd. io.EOF passes through only when nothing of the
// current character was consumed yet.
func readUnit(rd io.Reader, p []byte, first bool) error {
	_, err := io.ReadFull(rd, p)
	switch err {
	case nil:
		return nil
	case io.EOF:
		if first {
			return io.EOF
		}
		return ErrTruncated
	case io.ErrUnexpectedEOF:
		return ErrTruncated
	}
	return err
}
