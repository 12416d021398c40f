// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package account

import (
	"errors"
	"fmt"

	"github.com/mr-tron/base58"
)

// PubkeySize is the width of an account address or owner.
const PubkeySize = 32

// ErrInvalidPubkey is returned when a string is not a base-58 encoded
// 32-byte key.
var ErrInvalidPubkey = errors.New("invalid pubkey")

// Pubkey is a 32-byte account address.
type Pubkey [PubkeySize]byte

// ParsePubkey decodes a base-58 string into a Pubkey. The decoded value must
// be exactly 32 bytes.
func ParsePubkey(s string) (Pubkey, error) {
	var pk Pubkey

	b, err := base58.Decode(s)
	if err != nil {
		return pk, fmt.Errorf("%w: %s", ErrInvalidPubkey, s)
	}
	if len(b) != PubkeySize {
		return pk, fmt.Errorf("%w: %s decodes to %d bytes", ErrInvalidPubkey, s, len(b))
	}

	copy(pk[:], b)
	return pk, nil
}

// MustParsePubkey is ParsePubkey for well-known constants. It panics on error.
func MustParsePubkey(s string) Pubkey {
	pk, err := ParsePubkey(s)
	if err != nil {
		panic(err)
	}
	return pk
}

// String returns the base-58 form.
func (pk Pubkey) String() string {
	return base58.Encode(pk[:])
}

// IsZero reports whether every byte is zero.
func (pk Pubkey) IsZero() bool {
	return pk == Pubkey{}
}

// Account is one decoded account entry. Each Account owns its Data, so it can
// be handed across goroutines without copying.
type Account struct {
	Pubkey       Pubkey
	Owner        Pubkey
	DataLen      uint64
	Lamports     uint64
	RentEpoch    uint64
	Executable   bool
	WriteVersion uint64

	// Slot and ID identify the append-vec the entry was read from and Offset
	// is the entry's position within it.
	Slot   uint64
	ID     uint64
	Offset int

	Data []byte
}
