// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package balances

import (
	"cmp"
	"encoding/base64"
	"encoding/binary"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/snapgpa/snapgpa/internal/account"
	"github.com/snapgpa/snapgpa/internal/log"
)

const (
	TokenProgram     = "TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA"
	Token2022Program = "TokenzQdBNbLqP5VEhdkAS6EPFLC1PHnBqCXEpPxuEb"

	lamportDecimals = 9

	// Base SPL token account layout.
	mintEnd      = 32
	walletEnd    = 64
	amountEnd    = 72
	minTokenData = amountEnd

	// Dump columns used here.
	colPubkey       = 0
	colOwner        = 1
	colLamports     = 3
	colWriteVersion = 7
	colData         = 8
	minColumns      = 9
)

// Display values for Options.Display.
const (
	DisplaySymbol = "symbol"
	DisplayName   = "name"
)

var ErrEmptyInput = errors.New("input is empty")

// Options tune Export.
type Options struct {
	// Display chooses the token column: DisplaySymbol (default) or DisplayName.
	Display string
	// Delimiter separates output columns. Zero means tab.
	Delimiter rune
}

type walletRow struct {
	writeVersion uint64
	lamports     uint64
}

type tokenRow struct {
	writeVersion uint64
	wallet       account.Pubkey
	mint         account.Pubkey
	amount       uint64
}

type holding struct {
	wallet account.Pubkey
	mint   account.Pubkey
}

// Export reads dump rows from in and writes balances to out.
func Export(in io.Reader, out io.Writer, symbols map[string]Symbol, opts Options) error {
	if len(symbols) == 0 {
		log.Warnf("no symbols loaded, tokens are shown by mint in raw units")
	}

	r, err := newSniffingReader(in)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return ErrEmptyInput
		}
		return fmt.Errorf("failed to read input: %w", err)
	}

	wallets := make(map[string]walletRow)
	tokens := make(map[string]tokenRow)

	var rows, skipped int
	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}
		rows++

		if len(row) == 0 || strings.EqualFold(row[colPubkey], "pubkey") {
			continue
		}
		if len(row) < minColumns {
			skipped++
			continue
		}

		lamports, err1 := strconv.ParseUint(row[colLamports], 10, 64)
		writeVersion, err2 := strconv.ParseUint(row[colWriteVersion], 10, 64)
		if err1 != nil || err2 != nil {
			skipped++
			continue
		}

		pubkey := row[colPubkey]
		switch row[colOwner] {
		case TokenProgram, Token2022Program:
			data, ok := decodeLoose(row[colData])
			if !ok || len(data) < minTokenData {
				skipped++
				continue
			}
			amount := binary.LittleEndian.Uint64(data[walletEnd:amountEnd])
			if amount == 0 {
				continue
			}
			if prev, ok := tokens[pubkey]; ok && writeVersion <= prev.writeVersion {
				continue
			}
			tokens[pubkey] = tokenRow{
				writeVersion: writeVersion,
				mint:         account.Pubkey(data[:mintEnd]),
				wallet:       account.Pubkey(data[mintEnd:walletEnd]),
				amount:       amount,
			}

		default:
			if prev, ok := wallets[pubkey]; ok && writeVersion <= prev.writeVersion {
				continue
			}
			wallets[pubkey] = walletRow{writeVersion: writeVersion, lamports: lamports}
		}
	}
	log.Debugf("read %d rows: %d wallets, %d token accounts, %d skipped", rows, len(wallets), len(tokens), skipped)

	held := make(map[holding]uint64)
	listed := make(map[string]struct{})
	for _, t := range tokens {
		held[holding{wallet: t.wallet, mint: t.mint}] += t.amount
		listed[t.wallet.String()] = struct{}{}
	}
	for pubkey, w := range wallets {
		if w.lamports > 0 {
			listed[pubkey] = struct{}{}
		}
	}

	delim := opts.Delimiter
	if delim == 0 {
		delim = '\t'
	}
	cw := csv.NewWriter(out)
	cw.Comma = delim

	for _, wallet := range slices.Sorted(maps.Keys(listed)) {
		lamports := wallets[wallet].lamports
		if err := cw.Write([]string{wallet, "SOL", FormatAmount(lamports, lamportDecimals), ""}); err != nil {
			return err
		}
	}

	type tokenOut struct {
		wallet, mint string
		amount       uint64
	}
	var tokenRows []tokenOut
	for h, amount := range held {
		tokenRows = append(tokenRows, tokenOut{wallet: h.wallet.String(), mint: h.mint.String(), amount: amount})
	}
	slices.SortFunc(tokenRows, func(a, b tokenOut) int {
		if c := cmp.Compare(a.wallet, b.wallet); c != 0 {
			return c
		}
		return cmp.Compare(a.mint, b.mint)
	})

	for _, t := range tokenRows {
		label, decimals := display(symbols, t.mint, opts.Display)
		if err := cw.Write([]string{t.wallet, label, FormatAmount(t.amount, decimals), t.mint}); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func display(symbols map[string]Symbol, mint, mode string) (string, int) {
	s, ok := symbols[mint]
	if !ok {
		return mint, 0
	}

	label := cmp.Or(s.Symbol, s.Name, mint)
	if mode == DisplayName {
		label = cmp.Or(s.Name, s.Symbol, mint)
	}
	return label, s.Decimals
}

// FormatAmount renders raw base units with the given decimals, trimming
// trailing fractional zeros: FormatAmount(120, 6) is "0.00012".
func FormatAmount(raw uint64, decimals int) string {
	s := strconv.FormatUint(raw, 10)
	if decimals <= 0 {
		return s
	}
	if len(s) <= decimals {
		s = strings.Repeat("0", decimals-len(s)+1) + s
	}

	whole, frac := s[:len(s)-decimals], strings.TrimRight(s[len(s)-decimals:], "0")
	if frac == "" {
		return whole
	}
	return whole + "." + frac
}

// ParseDelimiter accepts a single character, or "tab" / `\t`.
func ParseDelimiter(s string) (rune, error) {
	switch s {
	case "tab", `\t`, "\t":
		return '\t', nil
	case "comma":
		return ',', nil
	}

	runes := []rune(s)
	if len(runes) != 1 || runes[0] == '"' || runes[0] == '\r' || runes[0] == '\n' {
		return 0, fmt.Errorf("invalid delimiter %q", s)
	}
	return runes[0], nil
}

// decodeLoose decodes standard base-64 whose padding may be missing.
func decodeLoose(s string) ([]byte, bool) {
	s = strings.TrimSpace(s)
	if pad := len(s) % 4; pad != 0 {
		s += strings.Repeat("=", 4-pad)
	}
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, false
	}
	return b, true
}
