// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package snapshot

import (
	"archive/tar"
	"cmp"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"slices"

	"github.com/snapgpa/snapgpa/internal/appendvec"
)

const accountsDir = "accounts"

type tarIter struct {
	tr *tar.Reader
}

func newTarIter(r io.Reader) *tarIter {
	return &tarIter{tr: tar.NewReader(r)}
}

func (t *tarIter) next() (string, uint64, uint64, io.Reader, error) {
	for {
		hdr, err := t.tr.Next()
		if err != nil {
			if err == io.EOF {
				return "", 0, 0, nil, io.EOF
			}
			return "", 0, 0, nil, fmt.Errorf("failed to read archive: %w", err)
		}

		if hdr.Typeflag != tar.TypeReg {
			continue
		}
		if !isAccountsEntry(hdr.Name) {
			continue
		}
		slot, id, ok := appendvec.ParseFileName(hdr.Name)
		if !ok {
			continue
		}
		return hdr.Name, slot, id, t.tr, nil
	}
}

// isAccountsEntry reports whether name sits directly in an accounts/
// directory, ignoring any leading "./".
func isAccountsEntry(name string) bool {
	return path.Base(path.Dir(path.Clean(name))) == accountsDir
}

type vecFile struct {
	path string
	slot uint64
	id   uint64
}

type dirIter struct {
	paths []vecFile
	cur   *os.File
}

// newDirIter lists the append-vecs of an unpacked snapshot. dir may be the
// snapshot root or its accounts/ directory.
func newDirIter(dir string) (*dirIter, error) {
	if info, err := os.Stat(filepath.Join(dir, accountsDir)); err == nil && info.IsDir() {
		dir = filepath.Join(dir, accountsDir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", dir, err)
	}

	var files []vecFile
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		slot, id, ok := appendvec.ParseFileName(e.Name())
		if !ok {
			continue
		}
		files = append(files, vecFile{path: filepath.Join(dir, e.Name()), slot: slot, id: id})
	}

	slices.SortFunc(files, func(a, b vecFile) int {
		if c := cmp.Compare(a.slot, b.slot); c != 0 {
			return c
		}
		return cmp.Compare(a.id, b.id)
	})

	return &dirIter{paths: files}, nil
}

func (d *dirIter) next() (string, uint64, uint64, io.Reader, error) {
	d.close()
	if len(d.paths) == 0 {
		return "", 0, 0, nil, io.EOF
	}

	f := d.paths[0]
	d.paths = d.paths[1:]

	file, err := os.Open(f.path)
	if err != nil {
		return "", 0, 0, nil, err
	}
	d.cur = file
	return f.path, f.slot, f.id, file, nil
}

func (d *dirIter) close() {
	if d.cur != nil {
		_ = d.cur.Close()
		d.cur = nil
	}
}
