// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"fmt"
	"image/color"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/lipgloss/v2/table"
	"github.com/dustin/go-humanize"
	"golang.org/x/term"

	"github.com/snapgpa/snapgpa/internal/config"
)

// StatsRow aggregates the matched accounts of one owner program.
type StatsRow struct {
	Owner     string `json:"owner" yaml:"owner"`
	Accounts  uint64 `json:"accounts" yaml:"accounts"`
	DataBytes uint64 `json:"data_bytes" yaml:"data_bytes"`
	Lamports  uint64 `json:"lamports" yaml:"lamports"`
}

// StatsHeaders are the stats table column titles.
var StatsHeaders = []string{"owner", "accounts", "data_bytes", "lamports"}

// TableOptions tune StatsTable rendering.
type TableOptions struct {
	Color   bool
	Titles  bool
	Padding int
	Footer  string
}

// StatsTable renders rows as an aligned table. Colors are only applied when
// requested and stdout is a terminal.
func StatsTable(rows []StatsRow, w io.Writer, opts TableOptions) {
	if w == nil {
		w = os.Stdout
	}

	if len(rows) == 0 {
		return
	}

	var (
		headerStyle  = lipgloss.NewStyle().Align(lipgloss.Left).Bold(true)
		cellStyle    = lipgloss.NewStyle().Padding(0, 0).Align(lipgloss.Right)
		evenRowStyle = cellStyle
		oddRowStyle  = cellStyle
	)

	if opts.Color && term.IsTerminal(int(os.Stdout.Fd())) {
		headerColor, evenColor, oddColor := getColors("colors")

		headerStyle = headerStyle.Foreground(headerColor)
		evenRowStyle = evenRowStyle.Foreground(evenColor)
		oddRowStyle = oddRowStyle.Foreground(oddColor)
	}

	var cells [][]string
	for _, r := range rows {
		cells = append(cells, []string{
			r.Owner,
			humanize.Comma(int64(r.Accounts)),
			humanize.Bytes(r.DataBytes),
			humanize.Comma(int64(r.Lamports)),
		})
	}

	t := table.New().
		BorderBottom(false).
		BorderTop(false).
		BorderLeft(false).
		BorderRight(false).
		Border(lipgloss.HiddenBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			var style lipgloss.Style
			switch {
			case row == table.HeaderRow:
				style = headerStyle
			case row%2 == 0:
				style = evenRowStyle
			default:
				style = oddRowStyle
			}

			// Owner addresses read better left aligned.
			if col == 0 {
				style = style.Align(lipgloss.Left)
			} else {
				style = style.PaddingLeft(opts.Padding)
			}

			return style
		}).
		Headers().
		Rows(cells...)

	if opts.Titles {
		// https://github.com/charmbracelet/lipgloss/issues/261
		t = t.Headers(StatsHeaders...).BorderHeader(false)
	}
	fmt.Fprintln(w, t)

	if opts.Footer != "" {
		fmt.Fprintln(w, headerStyle.Render(opts.Footer))
	}
}

// getColors returns configured color values for table rendering, falling
// back to defaults chosen for the terminal's background.
func getColors(key string) (header, even, odd color.Color) {
	isDark := lipgloss.HasDarkBackground(os.Stdin, os.Stdout)

	resolveColor := func(key string, light string, dark string) color.Color {
		colorCfg, err := config.GetString(key)
		if err == nil {
			return lipgloss.Color(colorCfg)
		}

		if isDark {
			return lipgloss.Color(dark)
		}
		return lipgloss.Color(light)
	}

	header = resolveColor(key+".title", "#b08800", "#f6be00")
	even = resolveColor(key+".even", "#333333", "#ffffff")
	odd = resolveColor(key+".odd", "#0088a0", "#00c8f0")

	return
}
