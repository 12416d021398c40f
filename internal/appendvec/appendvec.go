// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package appendvec

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"path"
	"strconv"
	"strings"

	"github.com/snapgpa/snapgpa/internal/account"
)

// Entry layout, little-endian:
//
//	0   write_version u64
//	8   data_len      u64
//	16  pubkey        [32]
//	48  lamports      u64
//	56  rent_epoch    u64
//	64  owner         [32]
//	96  executable    bool, then 7 bytes padding
//	104 hash          [32]
//	136 data          [data_len], padded to an 8 byte boundary
const (
	HeaderSize = 136

	offWriteVersion = 0
	offDataLen      = 8
	offPubkey       = 16
	offLamports     = 48
	offRentEpoch    = 56
	offOwner        = 64
	offExecutable   = 96

	alignment = 8

	// MaxDataLen bounds a single account's data (10 MiB) and guards against
	// allocating garbage lengths from a corrupt header.
	MaxDataLen = 10 * 1024 * 1024
)

var (
	ErrTruncated = errors.New("truncated append-vec entry")
	ErrCorrupt   = errors.New("corrupt append-vec entry")
)

// Reader yields the accounts stored in one append-vec.
type Reader struct {
	r      *bufio.Reader
	slot   uint64
	id     uint64
	offset int
	header [HeaderSize]byte
	done   bool
}

// NewReader returns a Reader for the append-vec identified by slot and id.
func NewReader(r io.Reader, slot, id uint64) *Reader {
	return &Reader{
		r:    bufio.NewReaderSize(r, 1<<20),
		slot: slot,
		id:   id,
	}
}

// Reset points the Reader at a new append-vec, keeping its buffer.
func (r *Reader) Reset(src io.Reader, slot, id uint64) {
	r.r.Reset(src)
	r.slot = slot
	r.id = id
	r.offset = 0
	r.done = false
}

// Next decodes the next account. It returns io.EOF once the stored entries
// are exhausted: either the input ends, fewer than HeaderSize bytes remain,
// or an all-zero header marks the unused tail of a preallocated file.
func (r *Reader) Next() (*account.Account, error) {
	if r.done {
		return nil, io.EOF
	}

	if _, err := io.ReadFull(r.r, r.header[:]); err != nil {
		r.done = true
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, io.EOF
		}
		return nil, err
	}

	if isZero(r.header[:]) {
		r.done = true
		return nil, io.EOF
	}

	h := r.header[:]
	a := &account.Account{
		WriteVersion: binary.LittleEndian.Uint64(h[offWriteVersion:]),
		DataLen:      binary.LittleEndian.Uint64(h[offDataLen:]),
		Lamports:     binary.LittleEndian.Uint64(h[offLamports:]),
		RentEpoch:    binary.LittleEndian.Uint64(h[offRentEpoch:]),
		Slot:         r.slot,
		ID:           r.id,
		Offset:       r.offset,
	}
	copy(a.Pubkey[:], h[offPubkey:offPubkey+account.PubkeySize])
	copy(a.Owner[:], h[offOwner:offOwner+account.PubkeySize])

	switch h[offExecutable] {
	case 0:
	case 1:
		a.Executable = true
	default:
		r.done = true
		return nil, fmt.Errorf("%w: executable flag %d at offset %d", ErrCorrupt, h[offExecutable], r.offset)
	}

	if a.DataLen > MaxDataLen {
		r.done = true
		return nil, fmt.Errorf("%w: data_len %d at offset %d", ErrCorrupt, a.DataLen, r.offset)
	}

	a.Data = make([]byte, a.DataLen)
	if _, err := io.ReadFull(r.r, a.Data); err != nil {
		r.done = true
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, fmt.Errorf("%w: %s at offset %d", ErrTruncated, a.Pubkey, r.offset)
		}
		return nil, err
	}

	// The final entry of a file is not always padded, so a short discard is
	// not an error. The next header read will report the end.
	size := HeaderSize + int(a.DataLen)
	pad := alignUp(size) - size
	if n, err := r.r.Discard(pad); err != nil {
		size += n
		r.done = true
	} else {
		size += pad
	}
	r.offset += size

	return a, nil
}

// Encode serializes a in the append-vec entry layout, including trailing
// alignment padding. The hash field is written as zeros.
func Encode(a *account.Account) []byte {
	size := HeaderSize + len(a.Data)
	b := make([]byte, alignUp(size))

	binary.LittleEndian.PutUint64(b[offWriteVersion:], a.WriteVersion)
	binary.LittleEndian.PutUint64(b[offDataLen:], uint64(len(a.Data)))
	copy(b[offPubkey:], a.Pubkey[:])
	binary.LittleEndian.PutUint64(b[offLamports:], a.Lamports)
	binary.LittleEndian.PutUint64(b[offRentEpoch:], a.RentEpoch)
	copy(b[offOwner:], a.Owner[:])
	if a.Executable {
		b[offExecutable] = 1
	}
	copy(b[HeaderSize:], a.Data)

	return b
}

// ParseFileName extracts slot and id from an append-vec path such as
// "accounts/123456.7". Only the base name is considered.
func ParseFileName(name string) (slot, id uint64, ok bool) {
	s, i, found := strings.Cut(path.Base(name), ".")
	if !found {
		return 0, 0, false
	}

	var err error
	if slot, err = strconv.ParseUint(s, 10, 64); err != nil {
		return 0, 0, false
	}
	if id, err = strconv.ParseUint(i, 10, 64); err != nil {
		return 0, 0, false
	}
	return slot, id, true
}

func alignUp(n int) int {
	return (n + alignment - 1) &^ (alignment - 1)
}

func isZero(b []byte) bool {
	for _, c := range b {
		if c != 0 {
			return false
		}
	}
	return true
}
