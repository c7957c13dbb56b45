// SPDX-FileCopyrightText: 2023 The binio Authors
//
// SPDX-License-Identifier: MIT

package binio

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLineTerminatorBytes(t *testing.T) {
	r := require.New(t)

	cases := []struct {
		mode NewlineMode
		want []byte
	}{
		{NewlineCRLF, []byte("\r\n")},
		{NewlineCR, []byte("\r")},
		{NewlineLF, []byte("\n")},
	}
	for _, tc := range cases {
		var buf bytes.Buffer
		w := NewWriter(&buf, WithNewline(tc.mode))
		r.NoError(w.WriteNewline())
		r.Equal(tc.want, buf.Bytes(), tc.mode.String())
	}

	// terminator units follow the encoding width
	var buf bytes.Buffer
	w := NewWriter(&buf, WithEncoding(UTF16LE), WithNewline(NewlineCRLF))
	r.NoError(w.WriteNewline())
	r.Equal([]byte{'\r', 0x00, '\n', 0x00}, buf.Bytes())
}

func TestLineRoundTripCRLF(t *testing.T) {
	r := require.New(t)

	var buf bytes.Buffer
	w := NewWriter(&buf)
	r.NoError(w.WriteLine(""))
	r.NoError(w.WriteLine("abc"))

	rd := NewReader(&buf)
	line, err := rd.ReadLine()
	r.NoError(err)
	r.Equal("", line)

	line, err = rd.ReadLine()
	r.NoError(err)
	r.Equal("abc", line)

	_, err = rd.ReadLine()
	r.Equal(io.EOF, err)
}

func TestLineForeignTerminatorsAreText(t *testing.T) {
	r := require.New(t)

	// under CR, a LF is an ordinary character
	var buf bytes.Buffer
	w := NewWriter(&buf, WithNewline(NewlineCR))
	r.NoError(w.WriteLine("a\nb"))

	line, err := NewReader(&buf, WithNewline(NewlineCR)).ReadLine()
	r.NoError(err)
	r.Equal("a\nb", line)

	// under LF, a CR is an ordinary character
	buf.Reset()
	w = NewWriter(&buf, WithNewline(NewlineLF))
	r.NoError(w.WriteLine("a\rb"))

	line, err = NewReader(&buf, WithNewline(NewlineLF)).ReadLine()
	r.NoError(err)
	r.Equal("a\rb", line)

	// under CRLF, a lone CR does not terminate
	buf.Reset()
	w = NewWriter(&buf, WithNewline(NewlineCRLF))
	r.NoError(w.WriteLine("a\rb"))

	line, err = NewReader(&buf, WithNewline(NewlineCRLF)).ReadLine()
	r.NoError(err)
	r.Equal("a\rb", line)
}

func TestLineCRRun(t *testing.T) {
	r := require.New(t)

	// consecutive CRs before the LF: only the final CR pairs up
	rd := NewReader(bytes.NewReader([]byte("a\r\r\r\nb\r\n")))
	line, err := rd.ReadLine()
	r.NoError(err)
	r.Equal("a\r\r", line)

	line, err = rd.ReadLine()
	r.NoError(err)
	r.Equal("b", line)
}

func TestReadLineMax(t *testing.T) {
	r := require.New(t)

	var buf bytes.Buffer
	w := NewWriter(&buf)
	r.NoError(w.WriteLine("abcdef"))

	rd := NewReader(&buf)
	line, err := rd.ReadLineMax(3)
	r.NoError(err)
	r.Equal("abc", line)

	// the cursor sits right after the returned characters
	line, err = rd.ReadLine()
	r.NoError(err)
	r.Equal("def", line)
}

func TestReadLineMaxAtCR(t *testing.T) {
	r := require.New(t)

	// the bound lands on a CR whose follower is not a LF; the follower
	// must stay in the stream
	rd := NewReader(bytes.NewReader([]byte("ab\rZ\r\n")))
	line, err := rd.ReadLineMax(3)
	r.NoError(err)
	r.Equal("ab\r", line)

	line, err = rd.ReadLine()
	r.NoError(err)
	r.Equal("Z", line)
}

func TestLineUTF16(t *testing.T) {
	r := require.New(t)

	var buf bytes.Buffer
	w := NewWriter(&buf, WithEncoding(UTF16BE))
	r.NoError(w.WriteLine("héllo"))
	r.NoError(w.WriteLine(""))

	rd := NewReader(&buf, WithEncoding(UTF16BE))
	line, err := rd.ReadLine()
	r.NoError(err)
	r.Equal("héllo", line)

	line, err = rd.ReadLine()
	r.NoError(err)
	r.Equal("", line)
}

func TestLineUnsupportedEncoding(t *testing.T) {
	r := require.New(t)

	var buf bytes.Buffer
	w := NewWriter(&buf, WithEncoding(ShiftJIS))
	err := w.WriteLine("abc")
	var uo UnsupportedOperationError
	r.ErrorAs(err, &uo)
	r.Zero(buf.Len())

	_, err = NewReader(&buf, WithEncoding(ShiftJIS)).ReadLine()
	r.ErrorAs(err, &uo)
}

func TestLineMissingTerminator(t *testing.T) {
	r := require.New(t)

	rd := NewReader(bytes.NewReader([]byte("abc")))
	_, err := rd.ReadLine()
	r.ErrorIs(err, ErrTruncated)
}
