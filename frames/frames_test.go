// SPDX-FileCopyrightText: 2023 The binio Authors
//
// SPDX-License-Identifier: MIT

package frames

import (
	"bytes"
	"context"
	"testing"

	"github.com/ssbc/go-luigi"
	"github.com/stretchr/testify/require"

	"github.com/ssbc/binio"
)

func TestSinkSourceRoundTrip(t *testing.T) {
	r := require.New(t)
	ctx := context.Background()

	payloads := [][]byte{
		[]byte("hello"),
		{},
		[]byte{0x00, 0xff, 0x7f},
	}

	var buf bytes.Buffer
	snk := NewSink(binio.NewWriter(&buf))
	for i, p := range payloads {
		r.NoError(snk.Pour(ctx, p), "failed to pour frame %d", i)
	}
	r.NoError(snk.Pour(ctx, "text frame"))
	r.NoError(snk.Close())

	src := NewSource(binio.NewReader(&buf))
	for i, p := range payloads {
		v, err := src.Next(ctx)
		r.NoError(err, "failed to read frame %d", i)
		r.Equal(p, v)
	}
	v, err := src.Next(ctx)
	r.NoError(err)
	r.Equal([]byte("text frame"), v)

	_, err = src.Next(ctx)
	r.True(luigi.IsEOS(err), "expected end of stream, got %v", err)
}

func TestSinkRejectsOddTypes(t *testing.T) {
	r := require.New(t)

	snk := NewSink(binio.NewWriter(&bytes.Buffer{}))
	r.Error(snk.Pour(context.Background(), 23))
}

func TestSourceBigEndianConfig(t *testing.T) {
	r := require.New(t)
	ctx := context.Background()

	// frame headers are varints and unaffected by the byte order; the
	// source only needs the same configuration as the sink
	var buf bytes.Buffer
	snk := NewSink(binio.NewWriter(&buf, binio.WithByteOrder(binio.BigEndian)))
	r.NoError(snk.Pour(ctx, []byte("abc")))

	src := NewSource(binio.NewReader(&buf, binio.WithByteOrder(binio.BigEndian)))
	v, err := src.Next(ctx)
	r.NoError(err)
	r.Equal([]byte("abc"), v)
}
