// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package filters

import (
	"bufio"
	"bytes"
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"github.com/mr-tron/base58"
)

// digestSize is the width of every memcmpfile value.
const digestSize = 32

type digest [digestSize]byte

// MemCmp compares account data at a fixed offset. Exactly one of bytes or
// anyOf is set: bytes for memcmp, anyOf for memcmpfile.
type MemCmp struct {
	offset uint64
	bytes  []byte
	anyOf  map[digest]struct{}
}

// IsMatch reports whether data holds the expected bytes at the offset. A
// window that runs past the end of data is a non-match.
func (m *MemCmp) IsMatch(data []byte) bool {
	width := uint64(len(m.bytes))
	if m.anyOf != nil {
		width = digestSize
	}

	size := uint64(len(data))
	if m.offset > size || width > size-m.offset {
		return false
	}
	window := data[m.offset : m.offset+width]

	if m.anyOf != nil {
		_, ok := m.anyOf[digest(window)]
		return ok
	}
	return bytes.Equal(window, m.bytes)
}

func (m *MemCmp) String() string {
	if m.anyOf != nil {
		return fmt.Sprintf("memcmpfile:{%d values}@%d", len(m.anyOf), m.offset)
	}
	return fmt.Sprintf("memcmp:0x%x@%d", m.bytes, m.offset)
}

// loadDigests reads a memcmpfile. Each non-blank line must decode, from 0x-hex
// or base-58, to exactly 32 bytes; any other line fails the whole file.
func loadDigests(path string) (map[digest]struct{}, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidMemcmpFileFilter, err)
	}
	defer file.Close()

	set := make(map[digest]struct{})

	lineNo := 0
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var b []byte
		if strings.HasPrefix(line, hexPrefix) {
			b, err = hex.DecodeString(line[len(hexPrefix):])
		} else {
			b, err = base58.Decode(line)
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %s:%d: %w", ErrInvalidMemcmpFileFilter, path, lineNo, err)
		}
		if len(b) != digestSize {
			return nil, fmt.Errorf("%w: %s:%d: decodes to %d bytes, want %d",
				ErrInvalidMemcmpFileFilter, path, lineNo, len(b), digestSize)
		}

		set[digest(b)] = struct{}{}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidMemcmpFileFilter, path, err)
	}

	return set, nil
}
