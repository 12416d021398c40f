// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package filters

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/apex/log"

	"github.com/snapgpa/snapgpa/internal/account"
)

// AccountFilter is a compiled filter. It is immutable once New returns and is
// safe for use by concurrent readers.
type AccountFilter struct {
	pubkeys map[string]struct{}
	owners  []*OwnerFilter
}

// New compiles the --pubkey, --pubkeyfile and --owner inputs into an
// AccountFilter. An empty pubkeyFile means no file. The first malformed owner
// spec aborts compilation.
func New(pubkeys []string, pubkeyFile string, owners []string) (*AccountFilter, error) {
	f := &AccountFilter{
		pubkeys: make(map[string]struct{}),
	}

	// --pubkey=pk1
	// --pubkey=pk1,pk2,pk3
	for _, spec := range pubkeys {
		for _, pk := range strings.Split(spec, ",") {
			f.pubkeys[pk] = struct{}{}
		}
	}

	if pubkeyFile != "" {
		if err := f.loadPubkeyFile(pubkeyFile); err != nil {
			return nil, err
		}
	}

	// --owner=TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA,size:165,memcmp:0x06@44
	for _, spec := range owners {
		of, err := NewOwnerFilter(spec)
		if err != nil {
			return nil, err
		}
		f.owners = append(f.owners, of)
	}

	log.Debugf("filter compiled: %s", f)
	return f, nil
}

// loadPubkeyFile adds every non-blank, trimmed line of path to the pubkey set.
func (f *AccountFilter) loadPubkeyFile(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open pubkey file: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		f.pubkeys[line] = struct{}{}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read pubkey file: %w", err)
	}
	return nil
}

// Empty reports whether the filter has neither pubkeys nor owner specs, in
// which case every account matches.
func (f *AccountFilter) Empty() bool {
	return len(f.pubkeys) == 0 && len(f.owners) == 0
}

// IsMatch reports whether a passes the filter.
func (f *AccountFilter) IsMatch(a *account.Account) bool {
	if f.Empty() {
		return true
	}

	if len(f.pubkeys) > 0 {
		if _, ok := f.pubkeys[a.Pubkey.String()]; ok {
			return true
		}
	}

	for _, of := range f.owners {
		if of.IsMatch(a) {
			return true
		}
	}

	return false
}

// String summarizes the filter for debug logging.
func (f *AccountFilter) String() string {
	parts := make([]string, 0, len(f.owners))
	for _, of := range f.owners {
		parts = append(parts, of.String())
	}
	return fmt.Sprintf("pubkeys=%d owners=[%s]", len(f.pubkeys), strings.Join(parts, " "))
}
