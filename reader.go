// SPDX-FileCopyrightText: 2023 The binio Authors
//
// SPDX-License-Identifier: MIT

package binio

import (
	"bytes"
	"encoding/binary"
	"io"
	"math"
	"time"

	"github.com/pkg/errors"
)

// maxFrame caps the length header of a framed read, so corrupt or adversarial
// input can not force an arbitrary allocation.
const maxFrame = 1 << 30

// Reader reconstructs values from an io.Reader. Its configuration must match
// the Writer that produced the stream; a mismatch is not detected and yields
// garbage.
//
// Reads block until their bytes are available. A read that runs out of stream
// mid-value returns ErrTruncated and leaves the cursor past the last fully
// available byte; the stream is not recoverable for that operation. A clean
// end of stream before the first byte of a value surfaces as io.EOF.
type Reader struct {
	r   io.Reader
	ord binary.ByteOrder
	cfg config
	tmp [16]byte
}

// NewReader returns a Reader over r. Without options it expects
// little-endian, UTF-8, CRLF-terminated input.
func NewReader(r io.Reader, opts ...Option) *Reader {
	cfg := defaultConfig()
	for _, o := range opts {
		o(&cfg)
	}
	return &Reader{r: r, ord: cfg.order.Order(), cfg: cfg}
}

// ByteOrder returns the configured byte order.
func (r *Reader) ByteOrder() ByteOrder { return r.cfg.order }

// Encoding returns the configured text encoding.
func (r *Reader) Encoding() Encoding { return r.cfg.enc }

// Newline returns the configured line terminator convention.
func (r *Reader) Newline() NewlineMode { return r.cfg.newline }

// Read reads raw bytes, unframed. It implements io.Reader.
func (r *Reader) Read(p []byte) (int, error) {
	return r.r.Read(p)
}

// ReadFull reads exactly n raw bytes.
func (r *Reader) ReadFull(n int) ([]byte, error) {
	if n < 0 {
		return nil, errors.Errorf("negative read size %d", n)
	}
	b := make([]byte, n)
	if err := r.readFull(b, true); err != nil {
		return nil, err
	}
	return b, nil
}

// readFull fills p. io.EOF passes through only when first is set and nothing
// was consumed; every other short read is ErrTruncated.
func (r *Reader) readFull(p []byte, first bool) error {
	_, err := io.ReadFull(r.r, p)
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

// unread pushes already-consumed bytes back in front of the stream.
func (r *Reader) unread(b []byte) {
	r.r = io.MultiReader(bytes.NewReader(b), r.r)
}

// ReadBool reads a single byte; any non-zero value is true.
func (r *Reader) ReadBool() (bool, error) {
	v, err := r.ReadUint8()
	return v != 0, err
}

func (r *Reader) ReadUint8() (uint8, error) {
	if err := r.readFull(r.tmp[:1], true); err != nil {
		return 0, err
	}
	return r.tmp[0], nil
}

func (r *Reader) ReadInt8() (int8, error) {
	v, err := r.ReadUint8()
	return int8(v), err
}

func (r *Reader) ReadUint16() (uint16, error) {
	if err := r.readFull(r.tmp[:2], true); err != nil {
		return 0, err
	}
	return r.ord.Uint16(r.tmp[:2]), nil
}

func (r *Reader) ReadInt16() (int16, error) {
	v, err := r.ReadUint16()
	return int16(v), err
}

func (r *Reader) ReadUint32() (uint32, error) {
	if err := r.readFull(r.tmp[:4], true); err != nil {
		return 0, err
	}
	return r.ord.Uint32(r.tmp[:4]), nil
}

func (r *Reader) ReadInt32() (int32, error) {
	v, err := r.ReadUint32()
	return int32(v), err
}

func (r *Reader) ReadUint64() (uint64, error) {
	if err := r.readFull(r.tmp[:8], true); err != nil {
		return 0, err
	}
	return r.ord.Uint64(r.tmp[:8]), nil
}

func (r *Reader) ReadInt64() (int64, error) {
	v, err := r.ReadUint64()
	return int64(v), err
}

// ReadFloat32 reads the exact bit pattern of a float32.
func (r *Reader) ReadFloat32() (float32, error) {
	v, err := r.ReadUint32()
	return math.Float32frombits(v), err
}

// ReadFloat64 reads the exact bit pattern of a float64.
func (r *Reader) ReadFloat64() (float64, error) {
	v, err := r.ReadUint64()
	return math.Float64frombits(v), err
}

// ReadVarint32 reads a varint of at most five bytes and reinterprets the
// accumulated unsigned bits as a signed value, recovering the full negative
// range.
func (r *Reader) ReadVarint32() (int32, error) {
	var u uint32
	for i := 0; ; i++ {
		if i == maxVarint32Len {
			return 0, ErrVarintOverflow
		}
		if err := r.readFull(r.tmp[:1], i == 0); err != nil {
			return 0, err
		}
		b := r.tmp[0]
		u |= uint32(b&0x7f) << (7 * i)
		if b&0x80 == 0 {
			return int32(u), nil
		}
	}
}

// ReadVarint64 is ReadVarint32 for 64-bit values, at most ten bytes.
func (r *Reader) ReadVarint64() (int64, error) {
	var u uint64
	for i := 0; ; i++ {
		if i == maxVarint64Len {
			return 0, ErrVarintOverflow
		}
		if err := r.readFull(r.tmp[:1], i == 0); err != nil {
			return 0, err
		}
		b := r.tmp[0]
		u |= uint64(b&0x7f) << (7 * i)
		if b&0x80 == 0 {
			return int64(u), nil
		}
	}
}

// ReadDecimal reads the four decimal wire words and validates the flags.
func (r *Reader) ReadDecimal() (Decimal, error) {
	if err := r.readFull(r.tmp[:16], true); err != nil {
		return Decimal{}, err
	}
	return decimalFromWords(
		r.ord.Uint32(r.tmp[0:4]),
		r.ord.Uint32(r.tmp[4:8]),
		r.ord.Uint32(r.tmp[8:12]),
		r.ord.Uint32(r.tmp[12:16]),
	)
}

// ReadTime reads a 64-bit nanosecond count since the Unix epoch.
func (r *Reader) ReadTime() (time.Time, error) {
	n, err := r.ReadInt64()
	if err != nil {
		return time.Time{}, err
	}
	return time.Unix(0, n).UTC(), nil
}

// ReadDuration reads a 64-bit nanosecond count.
func (r *Reader) ReadDuration() (time.Duration, error) {
	n, err := r.ReadInt64()
	return time.Duration(n), err
}

// ReadUnix32 reads a 32-bit whole-second count. The result carries no
// sub-second component; the truncation happened on write.
func (r *Reader) ReadUnix32() (time.Time, error) {
	secs, err := r.ReadInt32()
	if err != nil {
		return time.Time{}, err
	}
	return time.Unix(int64(secs), 0).UTC(), nil
}

// ReadUnix64 reads a 64-bit whole-second count.
func (r *Reader) ReadUnix64() (time.Time, error) {
	secs, err := r.ReadInt64()
	if err != nil {
		return time.Time{}, err
	}
	return time.Unix(secs, 0).UTC(), nil
}

// ReadRune reads one character, consuming exactly the bytes that encode it.
func (r *Reader) ReadRune() (rune, error) {
	return r.cfg.enc.readRune(r.r)
}

// ReadRunes reads a character array of known length. For lossless encodings
// it consumes precisely the bytes that writing the same characters produced.
func (r *Reader) ReadRunes(n int) ([]rune, error) {
	if n < 0 {
		return nil, errors.Errorf("negative character count %d", n)
	}
	out := make([]rune, 0, n)
	for i := 0; i < n; i++ {
		c, err := r.cfg.enc.readRune(r.r)
		if err != nil {
			if err == io.EOF && i > 0 {
				err = ErrTruncated
			}
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

// ReadString reads a framed string. A null frame is an error here; use
// ReadStringPtr where absent strings are expected.
func (r *Reader) ReadString() (string, error) {
	s, err := r.ReadStringPtr()
	if err != nil {
		return "", err
	}
	if s == nil {
		return "", errors.New("unexpected null string")
	}
	return *s, nil
}

// ReadStringPtr reads a framed string, mapping the null sentinel to nil.
// nil and "" are distinct results.
func (r *Reader) ReadStringPtr() (*string, error) {
	payload, err := r.ReadBytes()
	if err != nil {
		return nil, err
	}
	if payload == nil {
		return nil, nil
	}
	s, err := r.cfg.enc.Decode(payload)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// ReadBytes reads a framed buffer. The null sentinel decodes to a nil slice,
// a zero length to an empty one.
func (r *Reader) ReadBytes() ([]byte, error) {
	n, err := r.ReadVarint32()
	if err != nil {
		return nil, err
	}
	switch {
	case n == nullFrame:
		return nil, nil
	case n < 0:
		return nil, errors.Errorf("invalid frame length %d", n)
	case n > maxFrame:
		return nil, errors.Errorf("frame length %d exceeds limit", n)
	}
	b := make([]byte, int(n))
	if err := r.readFull(b, false); err != nil {
		return nil, err
	}
	return b, nil
}

// ReadCString reads code units until an all-zero terminator unit, consuming
// at most maxBytes. A budget exhausted before the terminator is a truncation.
func (r *Reader) ReadCString(maxBytes int) (string, error) {
	unit := r.cfg.enc.unit
	var payload []byte
	for consumed := 0; ; consumed += unit {
		if consumed+unit > maxBytes {
			return "", errors.Wrapf(ErrTruncated, "no terminator within %d bytes", maxBytes)
		}
		if err := r.readFull(r.tmp[:unit], consumed == 0); err != nil {
			return "", err
		}
		if allZero(r.tmp[:unit]) {
			break
		}
		payload = append(payload, r.tmp[:unit]...)
	}
	return r.cfg.enc.Decode(payload)
}

func allZero(b []byte) bool {
	for _, c := range b {
		if c != 0 {
			return false
		}
	}
	return true
}

// ReadLine reads characters up to and excluding the configured terminator
// sequence.
func (r *Reader) ReadLine() (string, error) {
	return r.ReadLineMax(0)
}

// ReadLineMax is ReadLine bounded to max characters (unbounded when max <=
// 0). Reaching the bound without a terminator returns the accumulated text
// without error and leaves the cursor immediately after those characters, so
// the next read does not skip ahead to the terminator.
func (r *Reader) ReadLineMax(max int) (string, error) {
	enc := r.cfg.enc
	if !enc.lines {
		return "", UnsupportedOperationError{Op: "line read", Encoding: enc.name}
	}

	var line []rune
	for {
		if max > 0 && len(line) >= max {
			return string(line), nil
		}
		c, err := r.readLineRune(len(line) > 0)
		if err != nil {
			return "", err
		}

		if r.cfg.newline == NewlineCRLF && c == '\r' {
			// a CR only terminates together with an immediately
			// following LF; anything else keeps both characters
			for {
				c2, err := r.readLineRune(true)
				if err != nil {
					return "", err
				}
				if c2 == '\n' {
					return string(line), nil
				}
				line = append(line, c)
				if max > 0 && len(line) >= max {
					r.unreadRune(c2)
					return string(line), nil
				}
				if c2 == '\r' {
					c = c2
					continue
				}
				line = append(line, c2)
				break
			}
			continue
		}

		if (r.cfg.newline == NewlineCR && c == '\r') ||
			(r.cfg.newline == NewlineLF && c == '\n') {
			return string(line), nil
		}
		line = append(line, c)
	}
}

// readLineRune maps a clean end of stream mid-line to ErrTruncated; the
// terminator never arrived.
func (r *Reader) readLineRune(started bool) (rune, error) {
	c, err := r.cfg.enc.readRune(r.r)
	if err == io.EOF && started {
		return 0, ErrTruncated
	}
	return c, err
}

// unreadRune re-encodes c and pushes its bytes back in front of the stream.
// Only characters just decoded from the stream are pushed back, so the
// re-encode can not fail for a line-capable encoding.
func (r *Reader) unreadRune(c rune) {
	b, err := r.cfg.enc.appendRune(nil, c)
	if err != nil {
		return
	}
	r.unread(b)
}
