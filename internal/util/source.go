// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package util

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// SourceKind classifies where snapshot accounts are read from.
type SourceKind int

const (
	SourceStdin SourceKind = iota
	SourceFile
	SourceDir
	SourceS3
)

func (k SourceKind) String() string {
	switch k {
	case SourceStdin:
		return "stdin"
	case SourceFile:
		return "file"
	case SourceDir:
		return "dir"
	case SourceS3:
		return "s3"
	default:
		return "unknown"
	}
}

const s3Scheme = "s3://"

// SourceSpec is a parsed <source> argument.
type SourceSpec struct {
	Kind SourceKind
	// Path is absolute for SourceFile and SourceDir.
	Path   string
	Bucket string
	Key    string
}

func (s SourceSpec) String() string {
	switch s.Kind {
	case SourceStdin:
		return "-"
	case SourceS3:
		return s3Scheme + s.Bucket + "/" + s.Key
	default:
		return s.Path
	}
}

// ParseSource parses a <source> argument. "-" is stdin, s3://bucket/key is an
// S3 object and anything else must be an existing archive file or unpacked
// snapshot directory. Relative paths are made absolute.
func ParseSource(spec string) (SourceSpec, error) {
	if spec == "" {
		return SourceSpec{}, os.ErrInvalid
	}

	if spec == "-" {
		return SourceSpec{Kind: SourceStdin}, nil
	}

	if strings.HasPrefix(spec, s3Scheme) {
		bucket, key, _ := strings.Cut(strings.TrimPrefix(spec, s3Scheme), "/")
		if bucket == "" || key == "" {
			return SourceSpec{}, fmt.Errorf("s3 source must be s3://bucket/key: %w", os.ErrInvalid)
		}
		return SourceSpec{Kind: SourceS3, Bucket: bucket, Key: key}, nil
	}

	path := spec
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return SourceSpec{}, err
		}
		path = filepath.Join(cwd, path)
	}

	info, err := os.Stat(path)
	if err != nil {
		return SourceSpec{}, err
	}

	switch {
	case info.IsDir():
		return SourceSpec{Kind: SourceDir, Path: path}, nil
	case info.Mode().IsRegular():
		return SourceSpec{Kind: SourceFile, Path: path}, nil
	default:
		return SourceSpec{}, os.ErrInvalid
	}
}
