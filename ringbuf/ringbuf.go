// SPDX-FileCopyrightText: 2023 The binio Authors
//
// SPDX-License-Identifier: MIT

// Package ringbuf implements a fixed-capacity byte ring buffer for stream
// buffering. It offers chunk-wise enqueue/dequeue/peek/clear and the plain
// io.Reader/io.Writer interfaces, so a binio writer and reader can run
// back-to-back over one buffer. Not safe for concurrent use.
package ringbuf

import (
	"io"

	"github.com/pkg/errors"
)

// ErrFull is returned when a chunk does not fit into the free space. Writes
// are all-or-nothing; nothing was enqueued.
var ErrFull = errors.New("ringbuf: buffer full")

// Buffer is a byte ring of fixed capacity.
type Buffer struct {
	buf    []byte
	start  int
	length int
}

// New returns an empty buffer of the given capacity.
func New(size int) *Buffer {
	if size <= 0 {
		panic("ringbuf: non-positive capacity")
	}
	return &Buffer{buf: make([]byte, size)}
}

// Cap returns the fixed capacity.
func (b *Buffer) Cap() int { return len(b.buf) }

// Len returns the number of buffered bytes.
func (b *Buffer) Len() int { return b.length }

// Free returns the remaining space.
func (b *Buffer) Free() int { return len(b.buf) - b.length }

// Clear drops all buffered bytes.
func (b *Buffer) Clear() {
	b.start = 0
	b.length = 0
}

// Enqueue appends the chunk, or fails with ErrFull if it does not fit whole.
func (b *Buffer) Enqueue(p []byte) error {
	if len(p) > b.Free() {
		return ErrFull
	}
	end := (b.start + b.length) % len(b.buf)
	n := copy(b.buf[end:], p)
	copy(b.buf, p[n:])
	b.length += len(p)
	return nil
}

// Dequeue removes and returns up to n bytes, nil when empty.
func (b *Buffer) Dequeue(n int) []byte {
	out := b.Peek(n)
	b.Skip(len(out))
	return out
}

// Peek returns up to n bytes without consuming them, nil when empty.
func (b *Buffer) Peek(n int) []byte {
	if n > b.length {
		n = b.length
	}
	if n <= 0 {
		return nil
	}
	out := make([]byte, n)
	m := copy(out, b.buf[b.start:])
	copy(out[m:], b.buf)
	return out
}

// Skip consumes up to n bytes and returns how many were dropped.
func (b *Buffer) Skip(n int) int {
	if n > b.length {
		n = b.length
	}
	if n <= 0 {
		return 0
	}
	b.start = (b.start + n) % len(b.buf)
	b.length -= n
	return n
}

// Write enqueues p. It implements io.Writer; like Enqueue it is
// all-or-nothing.
func (b *Buffer) Write(p []byte) (int, error) {
	if err := b.Enqueue(p); err != nil {
		return 0, err
	}
	return len(p), nil
}

// Read dequeues into p. It implements io.Reader and returns io.EOF when the
// buffer is empty.
func (b *Buffer) Read(p []byte) (int, error) {
	if b.length == 0 {
		return 0, io.EOF
	}
	n := len(p)
	if n > b.length {
		n = b.length
	}
	m := copy(p[:n], b.buf[b.start:])
	copy(p[m:n], b.buf)
	b.Skip(n)
	return n, nil
}
