// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/snapgpa/snapgpa/internal/balances"
	"github.com/snapgpa/snapgpa/internal/meta"
)

// Stdin feeds "-" inputs. Tests swap it.
var Stdin io.Reader = os.Stdin

const (
	defaultBalancesIn  = "matched.csv"
	defaultBalancesOut = "balances.csv"
)

// balancesCommandAction converts a dump file into wallet balances. Either
// path may be "-" for stdin or stdout.
func balancesCommandAction(_ context.Context, cmd *cli.Command) error {
	in, out := defaultBalancesIn, defaultBalancesOut
	args := cmd.Args().Slice()
	if len(args) > 0 {
		in = args[0]
	}
	if len(args) > 1 {
		out = args[1]
	}
	if len(args) > 2 {
		return fmt.Errorf("unexpected arguments: %v", args[2:])
	}

	delim, err := balances.ParseDelimiter(cmd.String("out-delim"))
	if err != nil {
		return err
	}

	symbols, err := balances.LoadSymbols(cmd.String("symbols"))
	if err != nil {
		return err
	}

	var r io.Reader = Stdin
	if in != "-" {
		f, err := os.Open(in)
		if err != nil {
			return fmt.Errorf("failed to open input: %w", err)
		}
		defer f.Close()
		r = f
	}

	var w io.Writer = Stdout
	var outFile *os.File
	if out != "-" {
		if outFile, err = os.Create(out); err != nil {
			return fmt.Errorf("failed to create output: %w", err)
		}
		defer outFile.Close()
		w = outFile
	}

	if err := balances.Export(r, w, symbols, balances.Options{
		Display:   cmd.String("display"),
		Delimiter: delim,
	}); err != nil {
		return err
	}

	if outFile != nil {
		return outFile.Close()
	}
	return nil
}

func balancesCommandBuilder(meta meta.Meta) *cli.Command {
	path := meta.ConfigPath()

	return &cli.Command{
		Name:      "balances",
		Usage:     "export wallet SOL and token balances from dump output",
		UsageText: "snapgpa balances [options] [input|-] [output|-]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: []cli.Flag{
			NameSpacedValueChainFlagFromConfigFile("balances", path, &cli.StringFlag{
				Name:  "symbols",
				Usage: "symbols file with columns address,symbol,decimals,name",
				Value: "symbols.csv",
				Sources: cli.NewValueSourceChain(
					cli.EnvVar("SNAPGPA_SYMBOLS"),
				),
			}),
			NameSpacedValueChainFlagFromConfigFile("balances", path, &cli.StringFlag{
				Name:  "display",
				Usage: "token column: symbol or name",
				Value: balances.DisplaySymbol,
				Validator: func(value string) error {
					return FlagValidators(value, DisplayValidator)
				},
			}),
			&cli.StringFlag{
				Name:  "out-delim",
				Usage: "output delimiter: a single character, or tab",
				Value: "tab",
				Validator: func(value string) error {
					return FlagValidators(value, DelimiterValidator)
				},
			},
		},
		Action: balancesCommandAction,
	}
}
