// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package filters

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/mr-tron/base58"

	"github.com/snapgpa/snapgpa/internal/account"
)

// base58Alphabet is the Bitcoin alphabet used for account addresses. 0, O, I
// and l are deliberately absent.
const base58Alphabet = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"

// Option prefixes recognized after the owner address.
const (
	sizePrefix       = "size:"
	memcmpPrefix     = "memcmp:"
	memcmpFilePrefix = "memcmpfile:"
	hexPrefix        = "0x"
)

// OwnerFilter selects accounts owned by one program, optionally narrowed by a
// data size and any number of memcmp constraints.
type OwnerFilter struct {
	owner   account.Pubkey
	size    *uint64
	memcmps []*MemCmp
}

// NewOwnerFilter parses a single --owner spec of the form
// <owner>(,<option>)*. The returned error is always a *ParseError.
func NewOwnerFilter(spec string) (*OwnerFilter, error) {
	of, err := parseOwnerFilter(spec)
	if err != nil {
		return nil, &ParseError{Spec: spec, Err: err}
	}
	return of, nil
}

func parseOwnerFilter(spec string) (*OwnerFilter, error) {
	parts := strings.Split(spec, ",")

	// The owner must be a base-58 token and every option must be non-empty,
	// so "owner," and "owner,,size:1" are both rejected here.
	if !isBase58(parts[0]) {
		return nil, ErrInvalidOwnerFilterSyntax
	}
	for _, opt := range parts[1:] {
		if opt == "" {
			return nil, ErrInvalidOwnerFilterSyntax
		}
	}

	owner, err := account.ParsePubkey(parts[0])
	if err != nil {
		return nil, ErrInvalidOwnerPubkey
	}

	of := &OwnerFilter{owner: owner}
	for _, opt := range parts[1:] {
		switch {
		case strings.HasPrefix(opt, sizePrefix):
			size, err := parseDecimal(strings.TrimPrefix(opt, sizePrefix))
			if err != nil {
				return nil, fmt.Errorf("%w: %s", ErrInvalidSizeFilter, opt)
			}
			if of.size != nil {
				return nil, ErrMultipleSizeFilter
			}
			of.size = &size

		case strings.HasPrefix(opt, memcmpFilePrefix):
			m, err := parseMemCmpFile(strings.TrimPrefix(opt, memcmpFilePrefix))
			if err != nil {
				return nil, err
			}
			of.memcmps = append(of.memcmps, m)

		case strings.HasPrefix(opt, memcmpPrefix):
			m, err := parseMemCmp(strings.TrimPrefix(opt, memcmpPrefix))
			if err != nil {
				return nil, err
			}
			of.memcmps = append(of.memcmps, m)

		default:
			return nil, fmt.Errorf("%w: %s", ErrUnknownFilter, opt)
		}
	}

	return of, nil
}

// parseMemCmp parses the <bytes>@<offset> tail of a memcmp option. Bytes are
// hex when prefixed with 0x and base-58 otherwise.
func parseMemCmp(arg string) (*MemCmp, error) {
	enc, off, found := strings.Cut(arg, "@")
	if !found {
		return nil, fmt.Errorf("%w: missing @offset in %s", ErrInvalidOffsetMemcmpFilter, arg)
	}

	offset, err := parseDecimal(off)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidOffsetMemcmpFilter, off)
	}

	var b []byte
	switch {
	case strings.HasPrefix(enc, hexPrefix):
		digits := strings.TrimPrefix(enc, hexPrefix)
		if !isHexPairs(digits) {
			return nil, fmt.Errorf("%w: %s", ErrInvalidBytesMemcmpFilter, enc)
		}
		b, err = hex.DecodeString(digits)
	case isBase58(enc):
		b, err = base58.Decode(enc)
	default:
		return nil, fmt.Errorf("%w: %s", ErrInvalidBytesMemcmpFilter, enc)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidBytesMemcmpFilter, enc)
	}

	return &MemCmp{offset: offset, bytes: b}, nil
}

// parseMemCmpFile parses the <path>@<offset> tail of a memcmpfile option and
// loads the digest set from path.
func parseMemCmpFile(arg string) (*MemCmp, error) {
	path, off, found := strings.Cut(arg, "@")
	if !found {
		return nil, fmt.Errorf("%w: missing @offset in %s", ErrInvalidOffsetMemcmpFilter, arg)
	}
	if path == "" {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidMemcmpFileFilter)
	}

	offset, err := parseDecimal(off)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidOffsetMemcmpFilter, off)
	}

	set, err := loadDigests(path)
	if err != nil {
		return nil, err
	}

	return &MemCmp{offset: offset, anyOf: set}, nil
}

// IsMatch checks owner first so that size and memcmp constraints are only
// evaluated for accounts of the right program.
func (of *OwnerFilter) IsMatch(a *account.Account) bool {
	if a.Owner != of.owner {
		return false
	}

	if of.size != nil && a.DataLen != *of.size {
		return false
	}

	for _, m := range of.memcmps {
		if !m.IsMatch(a.Data) {
			return false
		}
	}

	return true
}

func (of *OwnerFilter) String() string {
	var b strings.Builder
	b.WriteString(of.owner.String())
	if of.size != nil {
		fmt.Fprintf(&b, ",size:%d", *of.size)
	}
	for _, m := range of.memcmps {
		b.WriteString(",")
		b.WriteString(m.String())
	}
	return b.String()
}

// parseDecimal accepts only ASCII digits, so signs, spaces and 0x forms that
// strconv would otherwise tolerate are rejected.
func parseDecimal(s string) (uint64, error) {
	if s == "" {
		return 0, strconv.ErrSyntax
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, strconv.ErrSyntax
		}
	}
	return strconv.ParseUint(s, 10, 64)
}

func isBase58(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if strings.IndexByte(base58Alphabet, s[i]) < 0 {
			return false
		}
	}
	return true
}

// isHexPairs reports whether s is a non-empty, even-length run of hex digits.
func isHexPairs(s string) bool {
	if s == "" || len(s)%2 != 0 {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		isHex := (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
		if !isHex {
			return false
		}
	}
	return true
}
