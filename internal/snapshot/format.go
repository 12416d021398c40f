// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package snapshot

import (
	"bufio"
	"bytes"
	"compress/bzip2"
	"fmt"
	"io"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Format is the compression wrapped around a snapshot tar stream.
type Format int

const (
	FormatAuto Format = iota
	FormatTar
	FormatZstd
	FormatLZ4
	FormatGzip
	FormatBzip2
)

// FormatNames lists the accepted --format values.
var FormatNames = []string{"auto", "zst", "lz4", "gz", "bz2", "tar"}

var (
	magicZstd  = []byte{0x28, 0xb5, 0x2f, 0xfd}
	magicLZ4   = []byte{0x04, 0x22, 0x4d, 0x18}
	magicGzip  = []byte{0x1f, 0x8b}
	magicBzip2 = []byte("BZh")
)

// ParseFormat maps a --format value to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "", "auto":
		return FormatAuto, nil
	case "tar":
		return FormatTar, nil
	case "zst", "zstd":
		return FormatZstd, nil
	case "lz4":
		return FormatLZ4, nil
	case "gz", "gzip":
		return FormatGzip, nil
	case "bz2", "bzip2":
		return FormatBzip2, nil
	default:
		return FormatAuto, fmt.Errorf("unknown archive format %q (valid: %s)", s, strings.Join(FormatNames, ", "))
	}
}

func (f Format) String() string {
	switch f {
	case FormatTar:
		return "tar"
	case FormatZstd:
		return "zst"
	case FormatLZ4:
		return "lz4"
	case FormatGzip:
		return "gz"
	case FormatBzip2:
		return "bz2"
	default:
		return "auto"
	}
}

// detectFormat sniffs the leading magic bytes without consuming them.
// Anything unrecognized is assumed to be a bare tar stream.
func detectFormat(br *bufio.Reader) Format {
	head, _ := br.Peek(4)
	switch {
	case bytes.HasPrefix(head, magicZstd):
		return FormatZstd
	case bytes.HasPrefix(head, magicLZ4):
		return FormatLZ4
	case bytes.HasPrefix(head, magicGzip):
		return FormatGzip
	case bytes.HasPrefix(head, magicBzip2):
		return FormatBzip2
	default:
		return FormatTar
	}
}

// decompress wraps r according to format. The returned closer releases any
// decoder state and does not close r.
func decompress(r io.Reader, format Format) (io.Reader, func(), error) {
	br := bufio.NewReaderSize(r, 1<<20)
	if format == FormatAuto {
		format = detectFormat(br)
	}

	switch format {
	case FormatTar:
		return br, func() {}, nil
	case FormatZstd:
		dec, err := zstd.NewReader(br)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open zstd stream: %w", err)
		}
		return dec, dec.Close, nil
	case FormatLZ4:
		return lz4.NewReader(br), func() {}, nil
	case FormatGzip:
		gz, err := gzip.NewReader(br)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open gzip stream: %w", err)
		}
		return gz, func() { _ = gz.Close() }, nil
	case FormatBzip2:
		return bzip2.NewReader(br), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unsupported archive format %s", format)
	}
}
