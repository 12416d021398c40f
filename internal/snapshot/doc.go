// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package snapshot turns a snapshot location into a stream of accounts.
//
// A location is a tar archive (plain, zstd, lz4, gzip or bzip2 compressed)
// read from a file, stdin or S3, or an unpacked snapshot directory. Only the
// append-vec files under accounts/ are decoded; everything else in the
// archive is skipped. Files are visited in archive order, or in (slot, id)
// order for a directory.
package snapshot
