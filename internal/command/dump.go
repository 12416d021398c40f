// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/snapgpa/snapgpa/internal/dump"
	"github.com/snapgpa/snapgpa/internal/meta"
	"github.com/snapgpa/snapgpa/internal/output"
)

// dumpCommandAction streams every matching account of <source> to stdout.
// The filter is compiled before the source is opened so that a bad --owner
// fails fast.
func dumpCommandAction(ctx context.Context, cmd *cli.Command) error {
	filter, err := BuildFilter(cmd)
	if err != nil {
		return err
	}

	src, err := OpenSource(ctx, cmd)
	if err != nil {
		return err
	}
	defer src.Close()

	w, err := output.NewRecordWriter(Stdout, cmd.String("output"), !cmd.Bool("noheader"))
	if err != nil {
		return err
	}

	err = dump.New(filter, w).Run(ctx, src)
	logSourceStats(src)
	return err
}

func dumpCommandBuilder(meta meta.Meta) *cli.Command {
	path := meta.ConfigPath()

	flags := NewFilterFlags("dump", path)
	flags = append(flags, NewSourceFlags("dump", path)...)
	flags = append(flags, NewOutputFlags("dump", path)...)

	return &cli.Command{
		Name:      "dump",
		Usage:     "write matching accounts as csv, tsv, json or yaml",
		UsageText: "snapgpa dump [options] <source>",
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags:  flags,
		Action: dumpCommandAction,
	}
}
