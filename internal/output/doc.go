// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package output renders matched accounts as csv, tsv, json lines or yaml
// documents, and renders the per-owner stats table.
package output
