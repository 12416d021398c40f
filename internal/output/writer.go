// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/snapgpa/snapgpa/internal/account"
)

// Formats lists the accepted --output values.
var Formats = []string{"csv", "tsv", "json", "yaml"}

// RecordWriter emits matched accounts. Write errors are final: the caller is
// expected to stop at the first one.
type RecordWriter interface {
	Write(a *account.Account) error
	Flush() error
}

// NewRecordWriter returns a RecordWriter for format. header only affects csv
// and tsv, where the column row is written ahead of the first record.
func NewRecordWriter(w io.Writer, format string, header bool) (RecordWriter, error) {
	switch strings.ToLower(format) {
	case "", "csv":
		return newDelimitedWriter(w, ',', header), nil
	case "tsv":
		return newDelimitedWriter(w, '\t', header), nil
	case "json":
		bw := bufio.NewWriterSize(w, 1<<16)
		return &jsonWriter{buf: bw, enc: json.NewEncoder(bw)}, nil
	case "yaml":
		bw := bufio.NewWriterSize(w, 1<<16)
		return &yamlWriter{buf: bw, enc: yaml.NewEncoder(bw)}, nil
	default:
		return nil, fmt.Errorf("unknown output format %q (valid: %s)", format, strings.Join(Formats, ", "))
	}
}

type delimitedWriter struct {
	w          *csv.Writer
	needHeader bool
}

func newDelimitedWriter(w io.Writer, comma rune, header bool) *delimitedWriter {
	cw := csv.NewWriter(w)
	cw.Comma = comma
	return &delimitedWriter{w: cw, needHeader: header}
}

func (d *delimitedWriter) Write(a *account.Account) error {
	if d.needHeader {
		if err := d.w.Write(Columns); err != nil {
			return err
		}
		d.needHeader = false
	}
	if err := d.w.Write(NewRecord(a).Fields()); err != nil {
		return err
	}
	// csv.Writer buffers internally and only reports errors on Flush.
	return d.w.Error()
}

func (d *delimitedWriter) Flush() error {
	d.w.Flush()
	return d.w.Error()
}

type jsonWriter struct {
	buf *bufio.Writer
	enc *json.Encoder
}

func (j *jsonWriter) Write(a *account.Account) error {
	return j.enc.Encode(NewRecord(a))
}

func (j *jsonWriter) Flush() error {
	return j.buf.Flush()
}

type yamlWriter struct {
	buf *bufio.Writer
	enc *yaml.Encoder
}

func (y *yamlWriter) Write(a *account.Account) error {
	return y.enc.Encode(NewRecord(a))
}

func (y *yamlWriter) Flush() error {
	if err := y.enc.Close(); err != nil {
		return err
	}
	return y.buf.Flush()
}
