// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package snapshot

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/snapgpa/snapgpa/internal/account"
	"github.com/snapgpa/snapgpa/internal/appendvec"
	"github.com/snapgpa/snapgpa/internal/aws"
	"github.com/snapgpa/snapgpa/internal/log"
	"github.com/snapgpa/snapgpa/internal/util"
)

// Stats summarizes what a Source has read so far.
type Stats struct {
	Files    int
	Skipped  int
	Accounts uint64
	Bytes    int64
}

type options struct {
	format  Format
	awsOpts []aws.Option
	getter  aws.ObjectGetter
	stdin   io.Reader
}

// Option customizes Open.
type Option func(*options)

// WithFormat forces the archive compression instead of sniffing it.
func WithFormat(f Format) Option {
	return func(o *options) { o.format = f }
}

// WithAWS passes profile, region or retryer overrides to the S3 client.
func WithAWS(opts ...aws.Option) Option {
	return func(o *options) { o.awsOpts = append(o.awsOpts, opts...) }
}

// WithObjectGetter reads s3:// sources through getter rather than a client
// built from the ambient AWS config.
func WithObjectGetter(getter aws.ObjectGetter) Option {
	return func(o *options) { o.getter = getter }
}

// WithStdin replaces os.Stdin for the "-" source.
func WithStdin(r io.Reader) Option {
	return func(o *options) { o.stdin = r }
}

// fileIter yields append-vec files one at a time. The reader is valid until
// the following call to next.
type fileIter interface {
	next() (name string, slot, id uint64, r io.Reader, err error)
}

// Source yields the accounts of a snapshot. It is not safe for concurrent
// use.
type Source struct {
	spec    util.SourceSpec
	files   fileIter
	closers []func()

	reader *appendvec.Reader
	cur    string
	open   bool
	count  *countingReader

	stats Stats
}

// Open resolves spec and prepares to stream its accounts.
func Open(ctx context.Context, spec util.SourceSpec, opts ...Option) (*Source, error) {
	o := options{stdin: os.Stdin}
	for _, opt := range opts {
		opt(&o)
	}

	s := &Source{spec: spec}
	log.Debugf("opening snapshot source %s (%s)", spec, spec.Kind)

	switch spec.Kind {
	case util.SourceDir:
		files, err := newDirIter(spec.Path)
		if err != nil {
			return nil, err
		}
		s.files = files
		s.closers = append(s.closers, files.close)

	case util.SourceFile:
		// A bare append-vec (e.g. accounts/123.4) is read directly.
		if slot, id, ok := appendvec.ParseFileName(spec.Path); ok && o.format == FormatAuto {
			files := &dirIter{paths: []vecFile{{path: spec.Path, slot: slot, id: id}}}
			s.files = files
			s.closers = append(s.closers, files.close)
			break
		}
		f, err := os.Open(spec.Path)
		if err != nil {
			return nil, err
		}
		s.closers = append(s.closers, func() { _ = f.Close() })
		if err := s.openArchive(f, o.format); err != nil {
			s.Close()
			return nil, err
		}

	case util.SourceStdin:
		if err := s.openArchive(o.stdin, o.format); err != nil {
			s.Close()
			return nil, err
		}

	case util.SourceS3:
		var (
			obj *aws.Object
			err error
		)
		if o.getter != nil {
			obj, err = aws.OpenObject(ctx, o.getter, spec.Bucket, spec.Key)
		} else {
			obj, err = aws.Open(ctx, spec.Bucket, spec.Key, o.awsOpts...)
		}
		if err != nil {
			return nil, err
		}
		s.closers = append(s.closers, func() { _ = obj.Close() })
		if err := s.openArchive(obj, o.format); err != nil {
			s.Close()
			return nil, err
		}

	default:
		return nil, fmt.Errorf("unsupported source %s", spec)
	}

	return s, nil
}

func (s *Source) openArchive(r io.Reader, format Format) error {
	stream, release, err := decompress(r, format)
	if err != nil {
		return err
	}
	s.closers = append(s.closers, release)
	s.files = newTarIter(stream)
	return nil
}

// Next returns the next account, or io.EOF once every file is exhausted. A
// corrupt or truncated append-vec is logged and skipped; errors from the
// underlying stream end the walk.
func (s *Source) Next(ctx context.Context) (*account.Account, error) {
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if !s.open {
			if err := s.advance(); err != nil {
				return nil, err
			}
		}

		a, err := s.reader.Next()
		switch {
		case err == nil:
			s.stats.Accounts++
			return a, nil
		case errors.Is(err, io.EOF):
			s.finishFile()
		case errors.Is(err, appendvec.ErrCorrupt), errors.Is(err, appendvec.ErrTruncated):
			log.Warnf("skipping rest of %s: %v", s.cur, err)
			s.stats.Skipped++
			s.finishFile()
		default:
			return nil, fmt.Errorf("failed to read %s: %w", s.cur, err)
		}
	}
}

func (s *Source) advance() error {
	name, slot, id, r, err := s.files.next()
	if err != nil {
		return err
	}

	s.count = &countingReader{r: r}
	if s.reader == nil {
		s.reader = appendvec.NewReader(s.count, slot, id)
	} else {
		s.reader.Reset(s.count, slot, id)
	}
	s.cur = name
	s.open = true
	s.stats.Files++
	log.Tracef("reading append-vec %s slot=%d id=%d", name, slot, id)
	return nil
}

func (s *Source) finishFile() {
	s.stats.Bytes += s.count.n
	s.open = false
}

// Stats reports progress so far.
func (s *Source) Stats() Stats {
	st := s.stats
	if s.open {
		st.Bytes += s.count.n
	}
	return st
}

// Close releases decoders and open files. It is safe to call more than once.
func (s *Source) Close() error {
	for i := len(s.closers) - 1; i >= 0; i-- {
		s.closers[i]()
	}
	s.closers = nil
	return nil
}

func (s *Source) String() string {
	return s.spec.String()
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}
