// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package command defines the snapgpa CLI: dump, stats, balances and shell
// completion. It wires flags, config file defaults, validators and actions.
package command
