// SPDX-FileCopyrightText: 2023 The binio Authors
//
// SPDX-License-Identifier: MIT

package binio

import (
	"encoding/binary"
	"io"
	"math"
	"time"

	"github.com/pkg/errors"
)

// nullFrame is the length sentinel of an absent framed value, distinct from
// a zero-length (present but empty) one.
const nullFrame = -1

// maxVarint32Len and maxVarint64Len bound the byte length of a varint; longer
// continuation chains are corrupt input.
const (
	maxVarint32Len = 5
	maxVarint64Len = 10
)

// Writer serializes values onto an io.Writer under a fixed configuration.
// Every write pushes its bytes immediately; there is no internal buffering.
type Writer struct {
	w   io.Writer
	ord binary.ByteOrder
	cfg config
	tmp [16]byte
}

// NewWriter returns a Writer over w. Without options it writes little-endian,
// UTF-8, CRLF-terminated output.
func NewWriter(w io.Writer, opts ...Option) *Writer {
	cfg := defaultConfig()
	for _, o := range opts {
		o(&cfg)
	}
	return &Writer{w: w, ord: cfg.order.Order(), cfg: cfg}
}

// ByteOrder returns the configured byte order.
func (w *Writer) ByteOrder() ByteOrder { return w.cfg.order }

// Encoding returns the configured text encoding.
func (w *Writer) Encoding() Encoding { return w.cfg.enc }

// Newline returns the configured line terminator convention.
func (w *Writer) Newline() NewlineMode { return w.cfg.newline }

// Write emits raw bytes, unframed. It implements io.Writer; the count is the
// caller's to communicate out-of-band.
func (w *Writer) Write(p []byte) (int, error) {
	n, err := w.w.Write(p)
	if err == nil && n != len(p) {
		return n, io.ErrShortWrite
	}
	return n, err
}

func (w *Writer) writeAll(p []byte) error {
	_, err := w.Write(p)
	return err
}

// WriteBool writes a boolean as a single byte, 1 for true.
func (w *Writer) WriteBool(v bool) error {
	if v {
		return w.WriteUint8(1)
	}
	return w.WriteUint8(0)
}

func (w *Writer) WriteUint8(v uint8) error {
	w.tmp[0] = v
	return w.writeAll(w.tmp[:1])
}

func (w *Writer) WriteInt8(v int8) error { return w.WriteUint8(uint8(v)) }

func (w *Writer) WriteUint16(v uint16) error {
	w.ord.PutUint16(w.tmp[:2], v)
	return w.writeAll(w.tmp[:2])
}

func (w *Writer) WriteInt16(v int16) error { return w.WriteUint16(uint16(v)) }

func (w *Writer) WriteUint32(v uint32) error {
	w.ord.PutUint32(w.tmp[:4], v)
	return w.writeAll(w.tmp[:4])
}

func (w *Writer) WriteInt32(v int32) error { return w.WriteUint32(uint32(v)) }

func (w *Writer) WriteUint64(v uint64) error {
	w.ord.PutUint64(w.tmp[:8], v)
	return w.writeAll(w.tmp[:8])
}

func (w *Writer) WriteInt64(v int64) error { return w.WriteUint64(uint64(v)) }

// WriteFloat32 writes the exact bit pattern of v, NaN payloads included.
func (w *Writer) WriteFloat32(v float32) error { return w.WriteUint32(math.Float32bits(v)) }

// WriteFloat64 writes the exact bit pattern of v, NaN payloads included.
func (w *Writer) WriteFloat64(v float64) error { return w.WriteUint64(math.Float64bits(v)) }

// WriteVarint32 writes v as 7-bit groups, least significant first, with the
// high bit of each byte flagging continuation. The value is chunked through
// its unsigned bit pattern, so negative values (including math.MinInt32) take
// the maximum five bytes.
func (w *Writer) WriteVarint32(v int32) error {
	u := uint32(v)
	n := 0
	for u >= 0x80 {
		w.tmp[n] = byte(u) | 0x80
		u >>= 7
		n++
	}
	w.tmp[n] = byte(u)
	return w.writeAll(w.tmp[:n+1])
}

// WriteVarint64 is WriteVarint32 for 64-bit values; the longest encoding is
// ten bytes.
func (w *Writer) WriteVarint64(v int64) error {
	u := uint64(v)
	n := 0
	for u >= 0x80 {
		w.tmp[n] = byte(u) | 0x80
		u >>= 7
		n++
	}
	w.tmp[n] = byte(u)
	return w.writeAll(w.tmp[:n+1])
}

// WriteDecimal writes d as four 32-bit words in wire order: mantissa low,
// mid, high, then the sign/scale flags. Each word is subject to the
// configured byte order.
func (w *Writer) WriteDecimal(d Decimal) error {
	if d.Scale > MaxDecimalScale {
		return errors.Errorf("decimal scale %d out of range", d.Scale)
	}
	w.ord.PutUint32(w.tmp[0:4], d.Lo)
	w.ord.PutUint32(w.tmp[4:8], d.Mid)
	w.ord.PutUint32(w.tmp[8:12], d.Hi)
	w.ord.PutUint32(w.tmp[12:16], d.flags())
	return w.writeAll(w.tmp[:16])
}

// WriteTime writes t as a signed 64-bit count of nanoseconds since the Unix
// epoch.
func (w *Writer) WriteTime(t time.Time) error { return w.WriteInt64(t.UnixNano()) }

// WriteDuration writes d as its signed 64-bit nanosecond count.
func (w *Writer) WriteDuration(d time.Duration) error { return w.WriteInt64(int64(d)) }

// WriteUnix32 writes t truncated to whole seconds as a signed 32-bit count.
// Sub-second precision is discarded by design.
func (w *Writer) WriteUnix32(t time.Time) error {
	secs := t.Unix()
	if secs < math.MinInt32 || secs > math.MaxInt32 {
		return errors.Errorf("time %v out of range for 32-bit seconds", t)
	}
	return w.WriteInt32(int32(secs))
}

// WriteUnix64 writes t truncated to whole seconds as a signed 64-bit count.
func (w *Writer) WriteUnix64(t time.Time) error { return w.WriteInt64(t.Unix()) }

// WriteRune writes one character in the configured encoding. A character the
// encoding can not represent fails with UnsupportedCharError instead of being
// substituted.
func (w *Writer) WriteRune(r rune) error {
	buf, err := w.cfg.enc.appendRune(w.tmp[:0], r)
	if err != nil {
		return err
	}
	return w.writeAll(buf)
}

// WriteRunes writes a character array, unframed.
func (w *Writer) WriteRunes(rs []rune) error {
	var buf []byte
	var err error
	for _, r := range rs {
		buf, err = w.cfg.enc.appendRune(buf, r)
		if err != nil {
			return err
		}
	}
	return w.writeAll(buf)
}

// WriteString writes s as a varint byte count followed by its encoded
// payload.
func (w *Writer) WriteString(s string) error {
	payload, err := w.cfg.enc.Encode(s)
	if err != nil {
		return err
	}
	return w.writeFrame(payload)
}

// WriteStringPtr is WriteString for a nullable string: nil writes the null
// sentinel, observable as nil (not "") on read.
func (w *Writer) WriteStringPtr(s *string) error {
	if s == nil {
		return w.WriteVarint32(nullFrame)
	}
	return w.WriteString(*s)
}

// WriteBytes writes b as a framed buffer. A nil slice writes the null
// sentinel, distinct from an empty one.
func (w *Writer) WriteBytes(b []byte) error {
	if b == nil {
		return w.WriteVarint32(nullFrame)
	}
	return w.writeFrame(b)
}

func (w *Writer) writeFrame(payload []byte) error {
	if len(payload) > math.MaxInt32 {
		return errors.Errorf("frame of %d bytes exceeds the length header", len(payload))
	}
	if err := w.WriteVarint32(int32(len(payload))); err != nil {
		return err
	}
	return w.writeAll(payload)
}

// WriteCString writes the encoded payload of s followed by one all-zero code
// unit of the encoding's minimal width. The payload must not itself encode to
// an all-zero unit; that is the caller's obligation and is not validated.
func (w *Writer) WriteCString(s string) error {
	payload, err := w.cfg.enc.Encode(s)
	if err != nil {
		return err
	}
	if err := w.writeAll(payload); err != nil {
		return err
	}
	zero := w.tmp[:w.cfg.enc.unit]
	for i := range zero {
		zero[i] = 0
	}
	return w.writeAll(zero)
}

// WriteNewline writes only the terminator sequence of the configured newline
// convention, in the configured encoding.
func (w *Writer) WriteNewline() error {
	return w.WriteLine("")
}

// WriteLine writes the encoded text followed by the newline terminator. It
// fails with UnsupportedOperationError when the encoding has no line
// semantics.
func (w *Writer) WriteLine(s string) error {
	if !w.cfg.enc.lines {
		return UnsupportedOperationError{Op: "line write", Encoding: w.cfg.enc.name}
	}
	payload, err := w.cfg.enc.Encode(s + w.cfg.newline.sequence())
	if err != nil {
		return err
	}
	return w.writeAll(payload)
}
