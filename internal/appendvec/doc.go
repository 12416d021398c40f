// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package appendvec decodes append-vec account storage files, the
// accounts/<slot>.<id> entries of a snapshot. Entries are read strictly
// forward, one at a time, so a file never needs to fit in memory.
package appendvec
