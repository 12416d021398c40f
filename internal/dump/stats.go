// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package dump

import (
	"github.com/snapgpa/snapgpa/internal/account"
	"github.com/snapgpa/snapgpa/internal/output"
)

// StatsSink aggregates matched accounts per owner instead of emitting them.
type StatsSink struct {
	byOwner map[account.Pubkey]*output.StatsRow
}

func NewStatsSink() *StatsSink {
	return &StatsSink{byOwner: make(map[account.Pubkey]*output.StatsRow)}
}

func (s *StatsSink) Write(a *account.Account) error {
	row, ok := s.byOwner[a.Owner]
	if !ok {
		row = &output.StatsRow{Owner: a.Owner.String()}
		s.byOwner[a.Owner] = row
	}
	row.Accounts++
	row.DataBytes += a.DataLen
	row.Lamports += a.Lamports
	return nil
}

func (s *StatsSink) Flush() error {
	return nil
}

// Rows returns one row per owner sorted by spec (see output.SortStats).
func (s *StatsSink) Rows(spec string) []output.StatsRow {
	rows := make([]output.StatsRow, 0, len(s.byOwner))
	for _, r := range s.byOwner {
		rows = append(rows, *r)
	}
	// Map order is random, so owner is always the final tiebreaker.
	output.SortStats(rows, spec+",owner")
	return rows
}

// Total sums every owner.
func (s *StatsSink) Total() output.StatsRow {
	total := output.StatsRow{Owner: "total"}
	for _, r := range s.byOwner {
		total.Accounts += r.Accounts
		total.DataBytes += r.DataBytes
		total.Lamports += r.Lamports
	}
	return total
}
