// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"
)

// NewFilterFlags returns the account selection flags shared by dump and
// stats. --pubkeyfile may default from the config file at path.
func NewFilterFlags(ns string, path string) []cli.Flag {
	return []cli.Flag{
		&cli.StringSliceFlag{
			Name:    "pubkey",
			Aliases: []string{"p"},
			Usage:   "account address to include; repeatable and comma-joinable",
		},
		NameSpacedValueChainFlagFromConfigFile(ns, path, &cli.StringFlag{
			Name:    "pubkeyfile",
			Aliases: []string{"P"},
			Usage:   "file of account addresses to include, one per line",
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("SNAPGPA_PUBKEYFILE"),
			),
		}),
		&cli.StringSliceFlag{
			Name:    "owner",
			Aliases: []string{"O"},
			Usage:   "owner program filter <owner>[,size:N][,memcmp:BYTES@OFF][,memcmpfile:PATH@OFF]; repeatable",
		},
	}
}

// NewSourceFlags returns the flags that shape how <source> is read.
func NewSourceFlags(ns string, path string) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "format",
			Usage: "archive compression: auto, zst, lz4, gz, bz2 or tar",
			Value: "auto",
			Validator: func(value string) error {
				return FlagValidators(value, FormatValidator)
			},
		},
		NameSpacedValueChainFlagFromConfigFile(ns, path, &cli.StringFlag{
			Name:  "profile",
			Usage: "AWS profile for s3:// sources",
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("SNAPGPA_PROFILE"),
			),
		}),
		NameSpacedValueChainFlagFromConfigFile(ns, path, &cli.StringFlag{
			Name:  "region",
			Usage: "AWS region for s3:// sources",
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("SNAPGPA_REGION"),
			),
		}),
	}
}

// NewOutputFlags returns the record output flags for dump.
func NewOutputFlags(ns string, path string) []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:  "noheader",
			Usage: "omit the csv/tsv header row",
			Value: false,
		},
		NameSpacedValueChainFlagFromConfigFile(ns, path, &cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "output format: csv, tsv, json or yaml",
			Value:   "csv",
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("SNAPGPA_OUTPUT"),
			),
			Validator: func(value string) error {
				return FlagValidators(value, OutputValidator)
			},
		}),
	}
}

// NewTableFlags returns the flags for table rendering.
func NewTableFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:    "color",
			Aliases: []string{"c"},
			Usage:   "enable colored text output",
			Value:   false,
		},
		&cli.StringFlag{
			Name:    "sort",
			Aliases: []string{"s"},
			Usage:   "comma-separated columns to sort by, - prefix for descending",
			Value:   "-accounts",
			Validator: func(value string) error {
				return FlagValidators(value, SortValidator)
			},
		},
		&cli.BoolFlag{
			Name:    "titles",
			Aliases: []string{"t"},
			Usage:   "show column titles",
			Value:   true,
		},
	}
}

// NameSpacedValueChainFlagFromConfigFile adds namespaced and global config file
// sources to the given flag's Sources chain. Without a config file the flag
// is returned unchanged.
func NameSpacedValueChainFlagFromConfigFile(ns string, path string, flag *cli.StringFlag) *cli.StringFlag {
	if path == "" {
		return flag
	}

	if ns != "" {
		src := yaml.YAML(ns+"."+flag.Name, altsrc.StringSourcer(path))
		flag.Sources.Chain = append(flag.Sources.Chain, src)
	}

	src := yaml.YAML(flag.Name, altsrc.StringSourcer(path))
	flag.Sources.Chain = append(flag.Sources.Chain, src)

	return flag
}
