// SPDX-FileCopyrightText: 2023 The binio Authors
//
// SPDX-License-Identifier: MIT

// Package settings maps the fields of a record to named sections of a text
// key/value file, written and parsed through binio line I/O so the encoding
// and newline convention of the surrounding stream apply.
//
// A record is described by an explicit schema of field descriptors with
// accessor closures; there is no reflection. Loading ignores unknown keys
// and leaves fields absent from the file at their current values.
package settings

import (
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/ssbc/binio"
)

// Field maps one key to a value in the host record.
type Field struct {
	Key string
	get func() (string, error)
	set func(string) error
}

// String describes a free-text field.
func String(key string, get func() string, set func(string)) Field {
	return Field{
		Key: key,
		get: func() (string, error) { return get(), nil },
		set: func(v string) error { set(v); return nil },
	}
}

// Int describes a base-10 integer field.
func Int(key string, get func() int64, set func(int64)) Field {
	return Field{
		Key: key,
		get: func() (string, error) { return strconv.FormatInt(get(), 10), nil },
		set: func(v string) error {
			n, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				return err
			}
			set(n)
			return nil
		},
	}
}

// Bool describes a true/false field.
func Bool(key string, get func() bool, set func(bool)) Field {
	return Field{
		Key: key,
		get: func() (string, error) { return strconv.FormatBool(get()), nil },
		set: func(v string) error {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return err
			}
			set(b)
			return nil
		},
	}
}

// Float describes a float64 field in Go 'g' formatting.
func Float(key string, get func() float64, set func(float64)) Field {
	return Field{
		Key: key,
		get: func() (string, error) { return strconv.FormatFloat(get(), 'g', -1, 64), nil },
		set: func(v string) error {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return err
			}
			set(f)
			return nil
		},
	}
}

// Decimal describes a binio.Decimal field; the textual form keeps the scale,
// so the wire words round-trip.
func Decimal(key string, get func() binio.Decimal, set func(binio.Decimal)) Field {
	return Field{
		Key: key,
		get: func() (string, error) { return get().String(), nil },
		set: func(v string) error {
			d, err := binio.ParseDecimal(v)
			if err != nil {
				return err
			}
			set(d)
			return nil
		},
	}
}

// Time describes an RFC 3339 timestamp field.
func Time(key string, get func() time.Time, set func(time.Time)) Field {
	return Field{
		Key: key,
		get: func() (string, error) { return get().Format(time.RFC3339Nano), nil },
		set: func(v string) error {
			t, err := time.Parse(time.RFC3339Nano, v)
			if err != nil {
				return err
			}
			set(t)
			return nil
		},
	}
}

// Schema names a section and the ordered fields serialized into it.
type Schema struct {
	Section string
	Fields  []Field
}

// Save writes each schema as a "[section]" header followed by one key=value
// line per field.
func Save(w *binio.Writer, schemas ...Schema) error {
	for i, s := range schemas {
		if i > 0 {
			if err := w.WriteNewline(); err != nil {
				return errors.Wrap(err, "error writing section separator")
			}
		}
		if err := w.WriteLine("[" + s.Section + "]"); err != nil {
			return errors.Wrapf(err, "error writing section %s", s.Section)
		}
		for _, f := range s.Fields {
			v, err := f.get()
			if err != nil {
				return errors.Wrapf(err, "error formatting %s.%s", s.Section, f.Key)
			}
			if err := w.WriteLine(f.Key + "=" + v); err != nil {
				return errors.Wrapf(err, "error writing %s.%s", s.Section, f.Key)
			}
		}
	}
	return nil
}

// Load reads key=value lines into the matching schema fields. Sections and
// keys not described by any schema are skipped; comment lines start with ';'
// or '#'.
func Load(r *binio.Reader, schemas ...Schema) error {
	bySection := make(map[string]Schema, len(schemas))
	for _, s := range schemas {
		bySection[s.Section] = s
	}

	var current *Schema
	for {
		line, err := r.ReadLine()
		if errors.Cause(err) == io.EOF {
			return nil
		}
		if err != nil {
			return errors.Wrap(err, "error reading settings line")
		}

		line = strings.TrimSpace(line)
		if line == "" || line[0] == ';' || line[0] == '#' {
			continue
		}

		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			name := line[1 : len(line)-1]
			if s, ok := bySection[name]; ok {
				current = &s
			} else {
				current = nil
			}
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok || current == nil {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		for _, f := range current.Fields {
			if f.Key != key {
				continue
			}
			if err := f.set(value); err != nil {
				return errors.Wrapf(err, "error parsing %s.%s", current.Section, key)
			}
			break
		}
	}
}
