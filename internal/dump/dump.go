// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package dump

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync/atomic"
	"time"

	"github.com/dustin/go-humanize"
	"golang.org/x/sync/errgroup"

	"github.com/snapgpa/snapgpa/internal/account"
	"github.com/snapgpa/snapgpa/internal/log"
)

const (
	// progressEvery is how many scanned accounts pass between progress logs.
	progressEvery = 1_000_000
	queueDepth    = 4096
)

// ErrSinkClosed is returned by Run when the sink stops accepting records.
var ErrSinkClosed = errors.New("output closed")

// exit is swapped by tests. A closed sink (e.g. `| head`) ends the process
// with status 1 and no message.
var exit = os.Exit

// Source yields accounts until io.EOF.
type Source interface {
	Next(ctx context.Context) (*account.Account, error)
}

// Matcher decides whether an account is emitted.
type Matcher interface {
	IsMatch(a *account.Account) bool
}

// Sink receives matched accounts. output.RecordWriter and *StatsSink both
// satisfy it.
type Sink interface {
	Write(a *account.Account) error
	Flush() error
}

// Counts reports how many accounts were scanned and matched.
type Counts struct {
	Scanned uint64
	Matched uint64
}

// Dumper runs one filter into one sink.
type Dumper struct {
	filter  Matcher
	sink    Sink
	scanned atomic.Uint64
	matched atomic.Uint64
}

// New returns a Dumper. filter must be safe for use from another goroutine.
func New(filter Matcher, sink Sink) *Dumper {
	return &Dumper{filter: filter, sink: sink}
}

// Run streams src through the filter until src is exhausted, ctx is done or
// the sink fails. A sink failure triggers the exit hook.
func (d *Dumper) Run(ctx context.Context, src Source) error {
	start := time.Now()
	queue := make(chan *account.Account, queueDepth)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(queue)
		for {
			a, err := src.Next(gctx)
			if errors.Is(err, io.EOF) {
				return nil
			}
			if err != nil {
				return err
			}

			n := d.scanned.Add(1)
			if n%progressEvery == 0 {
				log.Debugf("scanned %s accounts, matched %s",
					humanize.Comma(int64(n)), humanize.Comma(int64(d.matched.Load())))
			}

			select {
			case queue <- a:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
	})

	g.Go(func() error {
		for a := range queue {
			if !d.filter.IsMatch(a) {
				continue
			}
			if err := d.sink.Write(a); err != nil {
				return d.sinkFailed(err)
			}
			d.matched.Add(1)
		}
		if err := d.sink.Flush(); err != nil {
			return d.sinkFailed(err)
		}
		return nil
	})

	err := g.Wait()

	c := d.Counts()
	log.Debugf("scanned %s accounts, matched %s in %s",
		humanize.Comma(int64(c.Scanned)), humanize.Comma(int64(c.Matched)), time.Since(start).Round(time.Millisecond))

	return err
}

func (d *Dumper) sinkFailed(err error) error {
	log.Debugf("sink write failed: %v", err)
	exit(1)
	return fmt.Errorf("%w: %w", ErrSinkClosed, err)
}

// Counts is safe to call while Run is in progress.
func (d *Dumper) Counts() Counts {
	return Counts{
		Scanned: d.scanned.Load(),
		Matched: d.matched.Load(),
	}
}
