// SPDX-FileCopyrightText: 2023 The binio Authors
//
// SPDX-License-Identifier: MIT

// Package layout marshals fixed-layout records to and from flat byte images.
// A record is described by an explicit list of field descriptors (offset,
// width, accessor closures) rather than reflection; the image size and field
// positions never vary at runtime, independent of binio's variable-length
// formats.
package layout

import (
	"encoding/binary"
	"math"

	"github.com/pkg/errors"

	"github.com/ssbc/binio"
)

// Field describes one fixed-width field of a record image. The put and get
// closures move the value between the host record and a slice of exactly
// Size bytes.
type Field struct {
	Name   string
	Offset int
	Size   int
	put    func(ord binary.ByteOrder, b []byte)
	get    func(ord binary.ByteOrder, b []byte)
}

// Layout binds a record size, a byte order and the field descriptors of one
// record type.
type Layout struct {
	size   int
	ord    binary.ByteOrder
	fields []Field
}

// New validates the descriptors against the image size and returns the
// layout.
func New(size int, order binio.ByteOrder, fields ...Field) (*Layout, error) {
	if size <= 0 {
		return nil, errors.Errorf("non-positive record size %d", size)
	}
	for _, f := range fields {
		if f.Offset < 0 || f.Size <= 0 || f.Offset+f.Size > size {
			return nil, errors.Errorf("field %s (%d+%d) outside record of %d bytes", f.Name, f.Offset, f.Size, size)
		}
	}
	return &Layout{size: size, ord: order.Order(), fields: fields}, nil
}

// Size returns the fixed byte size of the record image.
func (l *Layout) Size() int { return l.size }

// Marshal renders the current record values into a fresh image. Bytes not
// covered by any field stay zero.
func (l *Layout) Marshal() []byte {
	img := make([]byte, l.size)
	for _, f := range l.fields {
		f.put(l.ord, img[f.Offset:f.Offset+f.Size])
	}
	return img
}

// Unmarshal loads the record values from an image of exactly Size bytes.
func (l *Layout) Unmarshal(img []byte) error {
	if len(img) != l.size {
		return errors.Errorf("image of %d bytes, record needs %d", len(img), l.size)
	}
	for _, f := range l.fields {
		f.get(l.ord, img[f.Offset:f.Offset+f.Size])
	}
	return nil
}

// Uint8 describes a single-byte field.
func Uint8(name string, offset int, get func() uint8, set func(uint8)) Field {
	return Field{
		Name: name, Offset: offset, Size: 1,
		put: func(_ binary.ByteOrder, b []byte) { b[0] = get() },
		get: func(_ binary.ByteOrder, b []byte) { set(b[0]) },
	}
}

// Uint16 describes a two-byte field in the layout's byte order.
func Uint16(name string, offset int, get func() uint16, set func(uint16)) Field {
	return Field{
		Name: name, Offset: offset, Size: 2,
		put: func(ord binary.ByteOrder, b []byte) { ord.PutUint16(b, get()) },
		get: func(ord binary.ByteOrder, b []byte) { set(ord.Uint16(b)) },
	}
}

// Uint32 describes a four-byte field in the layout's byte order.
func Uint32(name string, offset int, get func() uint32, set func(uint32)) Field {
	return Field{
		Name: name, Offset: offset, Size: 4,
		put: func(ord binary.ByteOrder, b []byte) { ord.PutUint32(b, get()) },
		get: func(ord binary.ByteOrder, b []byte) { set(ord.Uint32(b)) },
	}
}

// Uint64 describes an eight-byte field in the layout's byte order.
func Uint64(name string, offset int, get func() uint64, set func(uint64)) Field {
	return Field{
		Name: name, Offset: offset, Size: 8,
		put: func(ord binary.ByteOrder, b []byte) { ord.PutUint64(b, get()) },
		get: func(ord binary.ByteOrder, b []byte) { set(ord.Uint64(b)) },
	}
}

// Int32 describes a four-byte signed field.
func Int32(name string, offset int, get func() int32, set func(int32)) Field {
	return Uint32(name, offset,
		func() uint32 { return uint32(get()) },
		func(v uint32) { set(int32(v)) },
	)
}

// Int64 describes an eight-byte signed field.
func Int64(name string, offset int, get func() int64, set func(int64)) Field {
	return Uint64(name, offset,
		func() uint64 { return uint64(get()) },
		func(v uint64) { set(int64(v)) },
	)
}

// Float64 describes an eight-byte IEEE 754 field, bit pattern preserved.
func Float64(name string, offset int, get func() float64, set func(float64)) Field {
	return Uint64(name, offset,
		func() uint64 { return math.Float64bits(get()) },
		func(v uint64) { set(math.Float64frombits(v)) },
	)
}

// Bytes describes a raw field of size bytes. Shorter values are zero padded,
// longer ones truncated.
func Bytes(name string, offset, size int, get func() []byte, set func([]byte)) Field {
	return Field{
		Name: name, Offset: offset, Size: size,
		put: func(_ binary.ByteOrder, b []byte) {
			n := copy(b, get())
			for i := n; i < len(b); i++ {
				b[i] = 0
			}
		},
		get: func(_ binary.ByteOrder, b []byte) {
			out := make([]byte, len(b))
			copy(out, b)
			set(out)
		},
	}
}
