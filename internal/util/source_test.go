// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSource(t *testing.T) {
	tests := []struct {
		name       string
		setup      func(t *testing.T) string
		wantKind   SourceKind
		wantBucket string
		wantKey    string
		wantErr    bool
		errIs      error
	}{
		{
			name:     "stdin",
			setup:    func(t *testing.T) string { return "-" },
			wantKind: SourceStdin,
		},
		{
			name:       "s3_object",
			setup:      func(t *testing.T) string { return "s3://snapshots/mainnet/snapshot-1-abc.tar.zst" },
			wantKind:   SourceS3,
			wantBucket: "snapshots",
			wantKey:    "mainnet/snapshot-1-abc.tar.zst",
		},
		{
			name:    "s3_missing_key",
			setup:   func(t *testing.T) string { return "s3://snapshots" },
			wantErr: true,
			errIs:   os.ErrInvalid,
		},
		{
			name:    "s3_missing_bucket",
			setup:   func(t *testing.T) string { return "s3:///key" },
			wantErr: true,
			errIs:   os.ErrInvalid,
		},
		{
			name: "archive_file",
			setup: func(t *testing.T) string {
				path := filepath.Join(t.TempDir(), "snapshot-1-abc.tar.zst")
				if err := os.WriteFile(path, []byte("x"), 0o600); err != nil {
					t.Fatalf("failed to create temp file: %v", err)
				}
				return path
			},
			wantKind: SourceFile,
		},
		{
			name:     "snapshot_dir",
			setup:    func(t *testing.T) string { return t.TempDir() },
			wantKind: SourceDir,
		},
		{
			name: "relative_dir",
			setup: func(t *testing.T) string {
				tmpDir := t.TempDir()
				oldCwd, err := os.Getwd()
				if err != nil {
					t.Fatalf("failed to get cwd: %v", err)
				}
				if err := os.Chdir(filepath.Dir(tmpDir)); err != nil {
					t.Fatalf("failed to chdir: %v", err)
				}
				t.Cleanup(func() {
					_ = os.Chdir(oldCwd)
				})
				return filepath.Base(tmpDir)
			},
			wantKind: SourceDir,
		},
		{
			name:    "nonexistent",
			setup:   func(t *testing.T) string { return "/nonexistent/snapshot.tar.zst" },
			wantErr: true,
			errIs:   os.ErrNotExist,
		},
		{
			name:    "empty",
			setup:   func(t *testing.T) string { return "" },
			wantErr: true,
			errIs:   os.ErrInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec, err := ParseSource(tt.setup(t))

			if tt.wantErr {
				assert.Error(t, err)
				if tt.errIs != nil {
					assert.ErrorIs(t, err, tt.errIs)
				}
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.wantKind, spec.Kind)
			assert.Equal(t, tt.wantBucket, spec.Bucket)
			assert.Equal(t, tt.wantKey, spec.Key)
			if spec.Kind == SourceFile || spec.Kind == SourceDir {
				assert.True(t, filepath.IsAbs(spec.Path))
			}
		})
	}
}

func TestSourceSpecString(t *testing.T) {
	assert.Equal(t, "-", SourceSpec{Kind: SourceStdin}.String())
	assert.Equal(t, "s3://b/k/x", SourceSpec{Kind: SourceS3, Bucket: "b", Key: "k/x"}.String())
	assert.Equal(t, "/a/b", SourceSpec{Kind: SourceFile, Path: "/a/b"}.String())
	assert.Equal(t, "s3", SourceS3.String())
}
