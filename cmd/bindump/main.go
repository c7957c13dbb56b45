// SPDX-FileCopyrightText: 2023 The binio Authors
//
// SPDX-License-Identifier: MIT

// bindump walks a file of framed payloads and prints each frame.
package main

import (
	"context"
	"encoding/hex"
	"flag"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/ssbc/go-luigi"
	"go.mindeco.de/logging"

	"github.com/ssbc/binio"
	"github.com/ssbc/binio/frames"
)

var check = logging.CheckFatal

func main() {
	order := flag.String("order", "le", "byte order of the stream (le or be)")
	encName := flag.String("enc", "utf-8", "text encoding for -text decoding")
	asText := flag.Bool("text", false, "decode frame payloads as strings")
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "usage: %s [-order le|be] [-enc name] [-text] <file>\n", os.Args[0])
		os.Exit(1)
	}
	logging.SetupLogging(nil)
	log := logging.Logger("bindump")

	opts := []binio.Option{}
	switch *order {
	case "le":
	case "be":
		opts = append(opts, binio.WithByteOrder(binio.BigEndian))
	default:
		check(errors.Errorf("unknown byte order %q", *order))
	}
	enc, ok := binio.EncodingByName(*encName)
	if !ok {
		check(errors.Errorf("unknown encoding %q", *encName))
	}
	opts = append(opts, binio.WithEncoding(enc))

	f, err := os.Open(flag.Arg(0))
	check(errors.Wrap(err, "error opening input"))
	defer f.Close()

	src := frames.NewSource(binio.NewReader(f, opts...))
	var n int
	for ; ; n++ {
		v, err := src.Next(context.TODO())
		if luigi.IsEOS(err) {
			break
		}
		check(errors.Wrapf(err, "error on frame %d", n))

		b, _ := v.([]byte)
		if b == nil {
			fmt.Printf("%4d: null\n", n)
			continue
		}
		if *asText {
			s, err := enc.Decode(b)
			check(errors.Wrapf(err, "error decoding frame %d", n))
			fmt.Printf("%4d: %q\n", n, s)
			continue
		}
		fmt.Printf("%4d: %d bytes\n%s", n, len(b), hex.Dump(b))
	}
	log.Log("frames", n)
}
