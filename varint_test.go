// SPDX-FileCopyrightText: 2023 The binio Authors
//
// SPDX-License-Identifier: MIT

package binio

import (
	"bytes"
	"io"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVarint32Wire(t *testing.T) {
	r := require.New(t)

	cases := []struct {
		v    int32
		wire []byte
	}{
		{0, []byte{0x00}},
		{1, []byte{0x01}},
		{127, []byte{0x7f}},
		{128, []byte{0x80, 0x01}},
		{300, []byte{0xac, 0x02}},
		{-1, []byte{0xff, 0xff, 0xff, 0xff, 0x0f}},
		{math.MaxInt32, []byte{0xff, 0xff, 0xff, 0xff, 0x07}},
		{math.MinInt32, []byte{0x80, 0x80, 0x80, 0x80, 0x08}},
	}

	for _, tc := range cases {
		var buf bytes.Buffer
		w := NewWriter(&buf)
		r.NoError(w.WriteVarint32(tc.v))
		r.Equal(tc.wire, buf.Bytes(), "wire mismatch for %d", tc.v)

		got, err := NewReader(bytes.NewReader(tc.wire)).ReadVarint32()
		r.NoError(err)
		r.Equal(tc.v, got)
	}
}

func TestVarint32RoundTrip(t *testing.T) {
	r := require.New(t)

	vals := []int32{0, 1, -1, 63, 64, 127, 128, 16383, 16384, -300,
		math.MaxInt32, math.MaxInt32 - 1, math.MinInt32, math.MinInt32 + 1}

	var buf bytes.Buffer
	w := NewWriter(&buf)
	for _, v := range vals {
		r.NoError(w.WriteVarint32(v))
	}
	rd := NewReader(&buf)
	for _, v := range vals {
		got, err := rd.ReadVarint32()
		r.NoError(err)
		r.Equal(v, got)
	}
}

func TestVarint64RoundTrip(t *testing.T) {
	r := require.New(t)

	vals := []int64{0, 1, -1, 127, 128, -987654321,
		math.MaxInt64, math.MaxInt64 - 1, math.MinInt64, math.MinInt64 + 1}

	var buf bytes.Buffer
	w := NewWriter(&buf)
	for _, v := range vals {
		r.NoError(w.WriteVarint64(v))
	}
	rd := NewReader(&buf)
	for _, v := range vals {
		got, err := rd.ReadVarint64()
		r.NoError(err)
		r.Equal(v, got)
	}
}

func TestVarint64Wire(t *testing.T) {
	r := require.New(t)

	var buf bytes.Buffer
	w := NewWriter(&buf)
	r.NoError(w.WriteVarint64(-1))
	r.Equal(bytes.Repeat([]byte{0xff}, 9), buf.Bytes()[:9])
	r.Equal(byte(0x01), buf.Bytes()[9])
	r.Equal(10, buf.Len())
}

func TestVarintTruncated(t *testing.T) {
	r := require.New(t)

	// continuation bit set, then nothing
	_, err := NewReader(bytes.NewReader([]byte{0x80})).ReadVarint32()
	r.ErrorIs(err, ErrTruncated)

	_, err = NewReader(bytes.NewReader(nil)).ReadVarint32()
	r.Equal(io.EOF, err)
}

func TestVarintOverlong(t *testing.T) {
	r := require.New(t)

	_, err := NewReader(bytes.NewReader([]byte{0x80, 0x80, 0x80, 0x80, 0x80, 0x01})).ReadVarint32()
	r.ErrorIs(err, ErrVarintOverflow)

	_, err = NewReader(bytes.NewReader(bytes.Repeat([]byte{0x80}, 11))).ReadVarint64()
	r.ErrorIs(err, ErrVarintOverflow)
}
