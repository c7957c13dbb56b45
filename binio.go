// SPDX-FileCopyrightText: 2023 The binio Authors
//
// SPDX-License-Identifier: MIT

// Package binio implements a symmetric pair of binary stream codecs. A Writer
// serializes primitive and composite values (fixed-width integers, floats,
// variable-length integers, decimals, timestamps, framed strings and buffers,
// text lines) onto an io.Writer, and a Reader constructed with the same
// configuration reconstructs them bit-exactly from the resulting byte stream.
//
// The wire format is governed by three configuration values fixed at
// construction: the byte order of fixed-width fields, the text encoding of
// anything character based, and the newline convention of line I/O. A Writer
// and the Reader consuming its output must agree on all three; the codec does
// not detect a mismatch.
//
// Neither type is safe for concurrent use. Each instance owns the cursor of
// its backing stream and nothing else.
package binio // import "github.com/ssbc/binio"

import (
	"encoding/binary"
)

// ByteOrder selects the byte order of every fixed-width multi-byte field.
// It does not affect varints, which are always least-significant group first.
type ByteOrder uint8

const (
	LittleEndian ByteOrder = iota
	BigEndian
)

func (bo ByteOrder) String() string {
	if bo == BigEndian {
		return "big-endian"
	}
	return "little-endian"
}

// Order returns the encoding/binary implementation of the byte order.
func (bo ByteOrder) Order() binary.ByteOrder {
	if bo == BigEndian {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

// NewlineMode selects the terminator sequence used by line writes and
// recognized by line reads.
type NewlineMode uint8

const (
	NewlineCRLF NewlineMode = iota
	NewlineCR
	NewlineLF
)

func (nm NewlineMode) String() string {
	switch nm {
	case NewlineCR:
		return "cr"
	case NewlineLF:
		return "lf"
	default:
		return "crlf"
	}
}

// sequence returns the terminator characters of the convention.
func (nm NewlineMode) sequence() string {
	switch nm {
	case NewlineCR:
		return "\r"
	case NewlineLF:
		return "\n"
	default:
		return "\r\n"
	}
}

type config struct {
	order   ByteOrder
	enc     Encoding
	newline NewlineMode
}

func defaultConfig() config {
	return config{
		order:   LittleEndian,
		enc:     UTF8,
		newline: NewlineCRLF,
	}
}

// Option configures a Writer or Reader at construction time.
type Option func(*config)

// WithByteOrder sets the byte order of fixed-width fields.
func WithByteOrder(bo ByteOrder) Option {
	return func(c *config) { c.order = bo }
}

// WithEncoding sets the text encoding used for characters, strings and lines.
func WithEncoding(enc Encoding) Option {
	return func(c *config) { c.enc = enc }
}

// WithNewline sets the line terminator convention.
func WithNewline(nm NewlineMode) Option {
	return func(c *config) { c.newline = nm }
}
