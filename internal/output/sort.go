// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"cmp"
	"slices"
	"strings"
)

// SortStats orders rows by a comma separated list of StatsHeaders. A leading
// "-" sorts that field descending. Unknown fields are ignored.
func SortStats(rows []StatsRow, spec string) {
	fields := strings.Split(spec, ",")

	slices.SortStableFunc(rows, func(one, two StatsRow) int {
		for _, field := range fields {
			ascending := true
			if strings.HasPrefix(field, "-") {
				field = strings.TrimPrefix(field, "-")
				ascending = false
			}

			var c int
			switch field {
			case "owner":
				c = cmp.Compare(one.Owner, two.Owner)
			case "accounts":
				c = cmp.Compare(one.Accounts, two.Accounts)
			case "data_bytes":
				c = cmp.Compare(one.DataBytes, two.DataBytes)
			case "lamports":
				c = cmp.Compare(one.Lamports, two.Lamports)
			}

			if c != 0 {
				if ascending {
					return c
				}
				return -c
			}
		}
		return 0
	})
}
