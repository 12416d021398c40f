// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/snapgpa/snapgpa/internal/aws"
	"github.com/snapgpa/snapgpa/internal/filters"
	"github.com/snapgpa/snapgpa/internal/log"
	"github.com/snapgpa/snapgpa/internal/meta"
	"github.com/snapgpa/snapgpa/internal/snapshot"
	"github.com/snapgpa/snapgpa/internal/util"
)

// ErrMissingSource is returned when no <source> argument is given.
var ErrMissingSource = errors.New("missing <source>: archive, snapshot directory, - or s3://bucket/key")

// Stdout is where commands write their data. Tests swap it.
var Stdout io.Writer = os.Stdout

// GetMeta returns the meta.Meta stored in the command's Metadata. If missing
// or of an unexpected type, it returns the zero value.
func GetMeta(cmd *cli.Command) meta.Meta {
	if cmd == nil || cmd.Metadata == nil {
		return meta.Meta{}
	}
	if m, ok := cmd.Metadata["meta"].(meta.Meta); ok {
		return m
	}
	return meta.Meta{}
}

// BuildFilter compiles the --pubkey, --pubkeyfile and --owner flags.
func BuildFilter(cmd *cli.Command) (*filters.AccountFilter, error) {
	filter, err := filters.New(cmd.StringSlice("pubkey"), cmd.String("pubkeyfile"), cmd.StringSlice("owner"))
	if err != nil {
		return nil, err
	}
	if filter.Empty() {
		log.Infof("no filters given, every account matches")
	}
	log.Debugf("filter: %s", filter)
	return filter, nil
}

// OpenSource opens the <source> argument with the source flags applied.
func OpenSource(ctx context.Context, cmd *cli.Command, opts ...snapshot.Option) (*snapshot.Source, error) {
	arg := cmd.Args().First()
	if arg == "" {
		return nil, ErrMissingSource
	}
	if cmd.NArg() > 1 {
		return nil, fmt.Errorf("unexpected arguments after <source>: %v", cmd.Args().Tail())
	}

	spec, err := util.ParseSource(arg)
	if err != nil {
		return nil, fmt.Errorf("invalid source %q: %w", arg, err)
	}

	format, err := snapshot.ParseFormat(cmd.String("format"))
	if err != nil {
		return nil, err
	}

	var awsOpts []aws.Option
	if p := cmd.String("profile"); p != "" {
		awsOpts = append(awsOpts, aws.WithProfile(p))
	}
	if r := cmd.String("region"); r != "" {
		awsOpts = append(awsOpts, aws.WithRegion(r))
	}

	opts = append([]snapshot.Option{snapshot.WithFormat(format), snapshot.WithAWS(awsOpts...)}, opts...)
	return snapshot.Open(ctx, spec, opts...)
}

// logSourceStats reports what was read once a scan ends.
func logSourceStats(src *snapshot.Source) {
	st := src.Stats()
	log.Debugf("read %d append-vecs (%d skipped), %d accounts, %d bytes from %s",
		st.Files, st.Skipped, st.Accounts, st.Bytes, src)
}
