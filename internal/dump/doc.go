// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package dump drives a filter over a stream of accounts. A reader stage
// pulls accounts from the source into a bounded queue and a writer stage
// evaluates each one and hands matches to the sink, so output order is
// source order.
package dump
