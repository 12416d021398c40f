// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package account defines the decoded account record shared by the snapshot
// readers, the filter engine and the writers, along with the 32-byte Pubkey
// type and its base-58 text form.
package account
