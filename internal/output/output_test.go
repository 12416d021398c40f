// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package output

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"

	"github.com/snapgpa/snapgpa/internal/account"
)

const (
	usdcMint     = "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v"
	tokenProgram = "TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA"
)

func sample() *account.Account {
	return &account.Account{
		Pubkey:       account.MustParsePubkey(usdcMint),
		Owner:        account.MustParsePubkey(tokenProgram),
		DataLen:      3,
		Lamports:     1461600,
		Slot:         250,
		ID:           4,
		Offset:       144,
		WriteVersion: 99,
		Data:         []byte{1, 2, 3},
	}
}

func TestNewRecord(t *testing.T) {
	r := NewRecord(sample())

	assert.Equal(t, usdcMint, r.Pubkey)
	assert.Equal(t, tokenProgram, r.Owner)
	assert.Equal(t, "AQID", r.Data)
	assert.Equal(t, []string{usdcMint, tokenProgram, "3", "1461600", "250", "4", "144", "99", "AQID"}, r.Fields())
	assert.Len(t, r.Fields(), len(Columns))
}

func TestDelimitedWriter(t *testing.T) {
	tests := []struct {
		name   string
		format string
		header bool
		want   string
	}{
		{
			name:   "csv with header",
			format: "csv",
			header: true,
			want: "pubkey,owner,data_len,lamports,slot,id,offset,write_version,data\n" +
				usdcMint + "," + tokenProgram + ",3,1461600,250,4,144,99,AQID\n",
		},
		{
			name:   "csv noheader",
			format: "csv",
			want:   usdcMint + "," + tokenProgram + ",3,1461600,250,4,144,99,AQID\n",
		},
		{
			name:   "tsv",
			format: "tsv",
			header: true,
			want: strings.Join(Columns, "\t") + "\n" +
				strings.Join([]string{usdcMint, tokenProgram, "3", "1461600", "250", "4", "144", "99", "AQID"}, "\t") + "\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			w, err := NewRecordWriter(&buf, tt.format, tt.header)
			require.NoError(t, err)

			require.NoError(t, w.Write(sample()))
			require.NoError(t, w.Flush())
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestHeaderOnlyWithRecords(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewRecordWriter(&buf, "csv", true)
	require.NoError(t, err)

	require.NoError(t, w.Flush())
	assert.Empty(t, buf.String())
}

func TestJSONWriter(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewRecordWriter(&buf, "json", true)
	require.NoError(t, err)

	require.NoError(t, w.Write(sample()))
	require.NoError(t, w.Write(sample()))
	require.NoError(t, w.Flush())

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	doc := gjson.Parse(lines[0])
	assert.Equal(t, usdcMint, doc.Get("pubkey").String())
	assert.Equal(t, int64(1461600), doc.Get("lamports").Int())
	assert.Equal(t, int64(144), doc.Get("offset").Int())
	assert.Equal(t, "AQID", doc.Get("data").String())
}

func TestYAMLWriter(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewRecordWriter(&buf, "yaml", false)
	require.NoError(t, err)

	require.NoError(t, w.Write(sample()))
	require.NoError(t, w.Write(sample()))
	require.NoError(t, w.Flush())

	dec := yaml.NewDecoder(&buf)
	var count int
	for {
		var r Record
		if err := dec.Decode(&r); err != nil {
			break
		}
		assert.Equal(t, tokenProgram, r.Owner)
		assert.Equal(t, uint64(99), r.WriteVersion)
		count++
	}
	assert.Equal(t, 2, count)
}

func TestUnknownFormat(t *testing.T) {
	_, err := NewRecordWriter(&bytes.Buffer{}, "xml", true)
	assert.ErrorContains(t, err, "unknown output format")
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, errors.New("broken pipe") }

func TestWriteErrorSurfaces(t *testing.T) {
	for _, format := range Formats {
		t.Run(format, func(t *testing.T) {
			w, err := NewRecordWriter(failWriter{}, format, true)
			require.NoError(t, err)

			var sawErr bool
			for range 5000 {
				if err := w.Write(sample()); err != nil {
					sawErr = true
					break
				}
			}
			if !sawErr {
				sawErr = w.Flush() != nil
			}
			assert.True(t, sawErr)
		})
	}
}

func TestSortStats(t *testing.T) {
	rows := []StatsRow{
		{Owner: "b", Accounts: 5, Lamports: 10},
		{Owner: "a", Accounts: 9, Lamports: 10},
		{Owner: "c", Accounts: 1, Lamports: 30},
	}

	tests := []struct {
		name string
		spec string
		want []string
	}{
		{name: "owner", spec: "owner", want: []string{"a", "b", "c"}},
		{name: "accounts desc", spec: "-accounts", want: []string{"a", "b", "c"}},
		{name: "accounts", spec: "accounts", want: []string{"c", "b", "a"}},
		{name: "lamports then owner desc", spec: "lamports,-owner", want: []string{"b", "a", "c"}},
		{name: "unknown keeps order", spec: "bogus", want: []string{"b", "a", "c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := append([]StatsRow(nil), rows...)
			SortStats(got, tt.spec)

			var owners []string
			for _, r := range got {
				owners = append(owners, r.Owner)
			}
			assert.Equal(t, tt.want, owners)
		})
	}
}

func TestStatsTable(t *testing.T) {
	rows := []StatsRow{
		{Owner: tokenProgram, Accounts: 1234567, DataBytes: 165 * 1234567, Lamports: 2039280},
	}

	var buf bytes.Buffer
	StatsTable(rows, &buf, TableOptions{Titles: true, Padding: 2, Footer: "1 owner"})

	out := buf.String()
	assert.Contains(t, out, "accounts")
	assert.Contains(t, out, tokenProgram)
	assert.Contains(t, out, "1,234,567")
	assert.Contains(t, out, "2,039,280")
	assert.Contains(t, out, "1 owner")
}

func TestStatsTableEmpty(t *testing.T) {
	var buf bytes.Buffer
	StatsTable(nil, &buf, TableOptions{Titles: true})
	assert.Empty(t, buf.String())
}
