// SPDX-FileCopyrightText: 2023 The binio Authors
//
// SPDX-License-Identifier: MIT

package binio

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrTruncated is returned when the stream ends before a read obtained all
// the bytes it requires. A read never pads missing bytes and never returns a
// partial value; the stream position after a truncated read is undefined
// beyond the last fully consumed byte.
var ErrTruncated = errors.New("unexpected end of stream")

// ErrVarintOverflow is returned when a varint carries continuation bits past
// the longest encoding valid for its width. Such input is corrupt, not
// truncated.
var ErrVarintOverflow = errors.New("varint exceeds maximum length")

// UnsupportedCharError reports that the active text encoding can not
// represent a character being written, or can not unambiguously decode a byte
// sequence being read. Against a lossy encoding this is an expected,
// recoverable condition, not a defect.
type UnsupportedCharError struct {
	Encoding string
	// Char is the character that could not be encoded, or -1 when the
	// failure was on the decode side.
	Char rune
}

func (e UnsupportedCharError) Error() string {
	if e.Char < 0 {
		return fmt.Sprintf("byte sequence not decodable as %s", e.Encoding)
	}
	return fmt.Sprintf("character %q not representable in %s", e.Char, e.Encoding)
}

// UnsupportedOperationError reports that an operation is not meaningful under
// the active configuration, such as line I/O on an encoding without byte-level
// terminator detection.
type UnsupportedOperationError struct {
	Op       string
	Encoding string
}

func (e UnsupportedOperationError) Error() string {
	return fmt.Sprintf("%s not supported with encoding %s", e.Op, e.Encoding)
}
