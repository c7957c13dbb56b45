// SPDX-FileCopyrightText: 2023 The binio Authors
//
// SPDX-License-Identifier: MIT

package ringbuf

import (
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ssbc/binio"
)

func TestEnqueueDequeue(t *testing.T) {
	r := require.New(t)

	b := New(8)
	r.Equal(8, b.Cap())
	r.Zero(b.Len())

	r.NoError(b.Enqueue([]byte("abcd")))
	r.Equal(4, b.Len())
	r.Equal(4, b.Free())

	r.Equal([]byte("ab"), b.Dequeue(2))
	r.Equal(2, b.Len())

	// wrap around the end of the backing array
	r.NoError(b.Enqueue([]byte("efghij")))
	r.Equal(8, b.Len())
	r.Equal([]byte("cdefghij"), b.Dequeue(8))
	r.Zero(b.Len())

	r.Nil(b.Dequeue(1))
}

func TestEnqueueFull(t *testing.T) {
	r := require.New(t)

	b := New(4)
	r.NoError(b.Enqueue([]byte("abc")))
	r.ErrorIs(b.Enqueue([]byte("de")), ErrFull)
	// the failed enqueue must not have taken partial bytes
	r.Equal(3, b.Len())
	r.Equal([]byte("abc"), b.Dequeue(4))
}

func TestPeekAndClear(t *testing.T) {
	r := require.New(t)

	b := New(8)
	r.NoError(b.Enqueue([]byte("abcd")))

	r.Equal([]byte("ab"), b.Peek(2))
	r.Equal([]byte("abcd"), b.Peek(16), "peek is bounded by contents")
	r.Equal(4, b.Len(), "peek must not consume")

	b.Clear()
	r.Zero(b.Len())
	r.Nil(b.Peek(1))
}

func TestSkip(t *testing.T) {
	r := require.New(t)

	b := New(8)
	r.NoError(b.Enqueue([]byte("abcdef")))
	r.Equal(4, b.Skip(4))
	r.Equal([]byte("ef"), b.Dequeue(8))
	r.Zero(b.Skip(1))
}

func TestIORoundTrip(t *testing.T) {
	r := require.New(t)

	// a writer/reader pair back-to-back over one buffer
	b := New(64)
	w := binio.NewWriter(b)
	rd := binio.NewReader(b)

	r.NoError(w.WriteVarint32(-23))
	r.NoError(w.WriteString("hello"))

	v, err := rd.ReadVarint32()
	r.NoError(err)
	r.EqualValues(-23, v)

	s, err := rd.ReadString()
	r.NoError(err)
	r.Equal("hello", s)

	var p [1]byte
	_, err = b.Read(p[:])
	r.Equal(io.EOF, err)
}
