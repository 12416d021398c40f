// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package filters compiles account filter expressions and evaluates them
// against decoded accounts.
//
// A filter is built from three kinds of input:
//
//   - pubkeys: one or more comma-joined account addresses (--pubkey)
//   - a pubkey file: one address per line, blank lines ignored (--pubkeyfile)
//   - owner specs: an owner program address followed by optional,
//     comma-separated constraints (--owner)
//
// Owner spec constraints:
//
//   - size:<n> : data length equals n (at most once per owner)
//   - memcmp:0x<hex>@<offset> : data at offset equals the hex bytes
//   - memcmp:<base58>@<offset> : data at offset equals the base-58 bytes
//   - memcmpfile:<path>@<offset> : the 32 bytes at offset equal any of the
//     values listed in path, one per line as 0x-hex or base-58
//
// Examples:
//
//   - "TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA" : every token account
//   - "TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA,size:165" : token accounts
//     with a 165 byte payload
//   - "TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA,size:82,memcmp:0x06@44" :
//     initialized mints with 6 decimals
//
// Matching:
//
// An account matches when its pubkey is in the pubkey set, or when it matches
// any one owner spec. Within an owner spec every constraint must hold. A
// filter with no pubkeys and no owner specs matches everything. Reads past the
// end of an account's data never match and never fail.
//
// Compilation is fail-fast. The first bad owner spec aborts with a
// *ParseError wrapping one of the Err* sentinels.
package filters
