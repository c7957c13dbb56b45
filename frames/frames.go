// SPDX-FileCopyrightText: 2023 The binio Authors
//
// SPDX-License-Identifier: MIT

// Package frames exposes a stream of framed byte payloads as luigi source
// and sink endpoints over a binio reader/writer pair.
package frames

import (
	"context"
	"io"

	"github.com/pkg/errors"
	"github.com/ssbc/go-luigi"

	"github.com/ssbc/binio"
)

type source struct {
	r *binio.Reader
}

// NewSource returns a luigi source that yields one []byte per frame and
// terminates with luigi.EOS at the clean end of the stream.
func NewSource(r *binio.Reader) luigi.Source {
	return &source{r: r}
}

func (s *source) Next(_ context.Context) (interface{}, error) {
	b, err := s.r.ReadBytes()
	if errors.Cause(err) == io.EOF {
		return nil, luigi.EOS{}
	}
	if err != nil {
		return nil, errors.Wrap(err, "error reading frame")
	}
	return b, nil
}

type sink struct {
	w *binio.Writer
}

// NewSink returns a luigi sink that writes each poured value as one frame.
// Values may be []byte or string; a nil []byte writes the null frame.
func NewSink(w *binio.Writer) luigi.Sink {
	return &sink{w: w}
}

func (s *sink) Pour(_ context.Context, v interface{}) error {
	switch tv := v.(type) {
	case []byte:
		return errors.Wrap(s.w.WriteBytes(tv), "error writing frame")
	case string:
		return errors.Wrap(s.w.WriteBytes([]byte(tv)), "error writing frame")
	}
	return errors.Errorf("frames: unexpected value type %T", v)
}

func (s *sink) Close() error { return nil }
