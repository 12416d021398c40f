// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package balances turns dump output into per-wallet balances.
//
// Accounts owned by the SPL Token or Token-2022 programs are read as token
// accounts (mint, wallet and raw amount from the first 72 data bytes); every
// other account is a wallet holding lamports. For each pubkey only the row
// with the highest write_version counts. The result is one SOL row per wallet
// that holds anything, followed by one row per (wallet, mint):
//
//	<wallet>  SOL     <ui amount>
//	<wallet>  <token> <ui amount>  <mint>
//
// Token amounts are scaled by the mint decimals from a symbols file. Mints
// missing from it are shown by address with raw units.
package balances
