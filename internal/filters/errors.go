// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package filters

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidOwnerFilterSyntax = errors.New("invalid owner filter syntax")
	ErrInvalidOwnerPubkey       = errors.New("invalid owner pubkey")

	ErrInvalidSizeFilter  = errors.New("invalid size filter")
	ErrMultipleSizeFilter = errors.New("multiple size filter")

	ErrInvalidBytesMemcmpFilter  = errors.New("invalid memcmp filter (bytes)")
	ErrInvalidOffsetMemcmpFilter = errors.New("invalid memcmp filter (offset)")
	ErrInvalidMemcmpFileFilter   = errors.New("invalid memcmpfile filter")

	ErrUnknownFilter = errors.New("unknown filter")
)

// ParseError reports the owner spec that failed to compile. Err wraps one of
// the sentinels above, so callers can test it with errors.Is.
type ParseError struct {
	Spec string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("owner filter %q: %v", e.Spec, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
