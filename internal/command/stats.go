// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"

	"github.com/snapgpa/snapgpa/internal/config"
	"github.com/snapgpa/snapgpa/internal/dump"
	"github.com/snapgpa/snapgpa/internal/meta"
	"github.com/snapgpa/snapgpa/internal/output"
)

// statsCommandAction runs the same selection as dump but prints a per-owner
// summary table instead of the records.
func statsCommandAction(ctx context.Context, cmd *cli.Command) error {
	filter, err := BuildFilter(cmd)
	if err != nil {
		return err
	}

	src, err := OpenSource(ctx, cmd)
	if err != nil {
		return err
	}
	defer src.Close()

	sink := dump.NewStatsSink()
	d := dump.New(filter, sink)
	if err := d.Run(ctx, src); err != nil {
		return err
	}
	logSourceStats(src)

	rows := sink.Rows(cmd.String("sort"))
	counts := d.Counts()
	total := sink.Total()

	pad, _ := config.GetInt("padding", 2)
	footer := fmt.Sprintf("%s of %s accounts matched across %d owners, %s SOL",
		humanize.Comma(int64(counts.Matched)),
		humanize.Comma(int64(counts.Scanned)),
		len(rows),
		humanize.CommafWithDigits(float64(total.Lamports)/1e9, 3))

	output.StatsTable(rows, Stdout, output.TableOptions{
		Color:   cmd.Bool("color"),
		Titles:  cmd.Bool("titles"),
		Padding: pad,
		Footer:  footer,
	})
	return nil
}

func statsCommandBuilder(meta meta.Meta) *cli.Command {
	path := meta.ConfigPath()

	flags := NewFilterFlags("stats", path)
	flags = append(flags, NewSourceFlags("stats", path)...)
	flags = append(flags, NewTableFlags()...)

	return &cli.Command{
		Name:      "stats",
		Usage:     "summarize matching accounts per owner program",
		UsageText: "snapgpa stats [options] <source>",
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags:  flags,
		Action: statsCommandAction,
	}
}
