// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package aws loads AWS SDK configuration and opens S3 objects so that a
// snapshot archive can be streamed straight from s3://bucket/key without a
// local copy.
package aws
