// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package balances

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/snapgpa/snapgpa/internal/log"
)

// Symbol describes a mint for display.
type Symbol struct {
	Symbol   string
	Decimals int
	Name     string
}

// LoadSymbols reads a csv or tsv symbols file with the columns
// address,symbol,decimals,name. A header row naming "address" or "mint"
// selects columns by name; without one the columns are positional. A missing
// file yields an empty map and a warning.
func LoadSymbols(path string) (map[string]Symbol, error) {
	symbols := make(map[string]Symbol)

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Warnf("symbols file %s not found, tokens are shown by mint in raw units", path)
			return symbols, nil
		}
		return nil, fmt.Errorf("failed to open symbols file: %w", err)
	}
	defer f.Close()

	r, err := newSniffingReader(f)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return symbols, nil
		}
		return nil, fmt.Errorf("failed to read symbols file: %w", err)
	}

	first, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return symbols, nil
		}
		return nil, fmt.Errorf("failed to read symbols file: %w", err)
	}

	idx := columns{addr: 0, sym: 1, dec: 2, name: 3}
	pending := [][]string{first}
	if header, ok := headerColumns(first); ok {
		idx = header
		pending = nil
	}

	for {
		var row []string
		if len(pending) > 0 {
			row, pending = pending[0], pending[1:]
		} else {
			row, err = r.Read()
			if errors.Is(err, io.EOF) {
				break
			}
			if err != nil {
				return nil, fmt.Errorf("failed to read symbols file: %w", err)
			}
		}

		mint := idx.get(row, idx.addr)
		if mint == "" {
			continue
		}

		var decimals int
		if d := idx.get(row, idx.dec); d != "" {
			if decimals, err = strconv.Atoi(d); err != nil || decimals < 0 {
				log.Debugf("skipping symbol %s: bad decimals %q", mint, d)
				continue
			}
		}

		symbols[mint] = Symbol{
			Symbol:   idx.get(row, idx.sym),
			Decimals: decimals,
			Name:     idx.get(row, idx.name),
		}
	}

	log.Debugf("loaded %d symbols from %s", len(symbols), path)
	return symbols, nil
}

type columns struct {
	addr, sym, dec, name int
}

func (c columns) get(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func headerColumns(row []string) (columns, bool) {
	c := columns{addr: -1, sym: -1, dec: -1, name: -1}
	for i, cell := range row {
		switch strings.ToLower(strings.TrimSpace(cell)) {
		case "address", "mint":
			if c.addr < 0 {
				c.addr = i
			}
		case "symbol":
			c.sym = i
		case "decimals":
			c.dec = i
		case "name":
			c.name = i
		}
	}
	return c, c.addr >= 0
}

// sniffDelimiter picks tab or comma from whichever appears more in line.
// Ties favor tab.
func sniffDelimiter(line string) rune {
	tabs := strings.Count(line, "\t")
	commas := strings.Count(line, ",")
	if tabs >= commas && tabs > 0 {
		return '\t'
	}
	if commas > 0 {
		return ','
	}
	return '\t'
}

// newSniffingReader peeks at the first line of r to choose the delimiter and
// returns a csv.Reader positioned at the start of r. It returns io.EOF for
// empty input.
func newSniffingReader(r io.Reader) (*csv.Reader, error) {
	br := bufio.NewReaderSize(r, 1<<16)
	first, err := br.ReadString('\n')
	if first == "" {
		if err == nil {
			err = io.EOF
		}
		return nil, err
	}
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}

	cr := csv.NewReader(io.MultiReader(strings.NewReader(first), br))
	cr.Comma = sniffDelimiter(first)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.ReuseRecord = true
	return cr, nil
}
