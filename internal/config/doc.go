// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package config loads snapgpa's optional YAML configuration and offers typed
// lookups by dotted key. The file is SNAPGPA_CFG_FILE when set, otherwise
// snapgpa.yaml in the directory returned by os.UserConfigDir.
//
// Keys are looked up under the active command first, so with the namespace
// "dump" the key "output" resolves "dump.output" before "output". Lists under
// a command name are argument presets expanded by @name on the command line:
//
//	dump:
//	  output: tsv
//	  usdc:
//	    - --owner TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA,size:165,memcmp:EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v@0
//	colors:
//	  title: "#f6be00"
package config
