// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"encoding/base64"
	"strconv"

	"github.com/snapgpa/snapgpa/internal/account"
)

// Columns is the header row and the field order of every format.
var Columns = []string{
	"pubkey",
	"owner",
	"data_len",
	"lamports",
	"slot",
	"id",
	"offset",
	"write_version",
	"data",
}

// Record is one emitted account. Data is standard padded base-64.
type Record struct {
	Pubkey       string `json:"pubkey" yaml:"pubkey"`
	Owner        string `json:"owner" yaml:"owner"`
	DataLen      uint64 `json:"data_len" yaml:"data_len"`
	Lamports     uint64 `json:"lamports" yaml:"lamports"`
	Slot         uint64 `json:"slot" yaml:"slot"`
	ID           uint64 `json:"id" yaml:"id"`
	Offset       int    `json:"offset" yaml:"offset"`
	WriteVersion uint64 `json:"write_version" yaml:"write_version"`
	Data         string `json:"data" yaml:"data"`
}

// NewRecord builds the output row for a.
func NewRecord(a *account.Account) Record {
	return Record{
		Pubkey:       a.Pubkey.String(),
		Owner:        a.Owner.String(),
		DataLen:      a.DataLen,
		Lamports:     a.Lamports,
		Slot:         a.Slot,
		ID:           a.ID,
		Offset:       a.Offset,
		WriteVersion: a.WriteVersion,
		Data:         base64.StdEncoding.EncodeToString(a.Data),
	}
}

// Fields returns the record's values in Columns order.
func (r Record) Fields() []string {
	return []string{
		r.Pubkey,
		r.Owner,
		strconv.FormatUint(r.DataLen, 10),
		strconv.FormatUint(r.Lamports, 10),
		strconv.FormatUint(r.Slot, 10),
		strconv.FormatUint(r.ID, 10),
		strconv.Itoa(r.Offset),
		strconv.FormatUint(r.WriteVersion, 10),
		r.Data,
	}
}
