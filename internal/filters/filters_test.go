// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package filters

import (
	"embed"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mr-tron/base58"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/snapgpa/snapgpa/internal/account"
)

//go:embed testdata/*.yaml
var testDataFS embed.FS

const (
	tokenProgram = "TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA"
	token2022    = "TokenzQdBNbLqP5VEhdkAS6EPFLC1PHnBqCXEpPxuEb"
)

// errsByName maps the wantErr names used in testdata to sentinels.
var errsByName = map[string]error{
	"InvalidOwnerFilterSyntax":  ErrInvalidOwnerFilterSyntax,
	"InvalidOwnerPubkey":        ErrInvalidOwnerPubkey,
	"InvalidSizeFilter":         ErrInvalidSizeFilter,
	"MultipleSizeFilter":        ErrMultipleSizeFilter,
	"InvalidBytesMemcmpFilter":  ErrInvalidBytesMemcmpFilter,
	"InvalidOffsetMemcmpFilter": ErrInvalidOffsetMemcmpFilter,
	"InvalidMemcmpFileFilter":   ErrInvalidMemcmpFileFilter,
	"UnknownFilter":             ErrUnknownFilter,
}

// testOwnerSpecCase represents a single test case for TestNewOwnerFilter.
type testOwnerSpecCase struct {
	Name        string `yaml:"name"`
	Spec        string `yaml:"spec"`
	WantErr     string `yaml:"wantErr"`
	WantSize    uint64 `yaml:"wantSize"`
	WantMemcmps int    `yaml:"wantMemcmps"`
}

// loadTestData loads test data from embedded YAML files.
func loadTestData(filename string, v interface{}) error {
	data, err := testDataFS.ReadFile("testdata/" + filename)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, v)
}

// pk returns a pubkey with every byte set to b.
func pk(b byte) account.Pubkey {
	var p account.Pubkey
	for i := range p {
		p[i] = b
	}
	return p
}

// writeFile writes lines to a temp file and returns its path.
func writeFile(t *testing.T, lines ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "list.txt")
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0o600))
	return path
}

func TestNewOwnerFilter(t *testing.T) {
	var tests []testOwnerSpecCase
	require.NoError(t, loadTestData("filters_test_owner_specs.yaml", &tests))
	require.NotEmpty(t, tests)

	for _, tt := range tests {
		t.Run(tt.Name, func(t *testing.T) {
			of, err := NewOwnerFilter(tt.Spec)

			if tt.WantErr != "" {
				want, ok := errsByName[tt.WantErr]
				require.True(t, ok, "unknown wantErr %s", tt.WantErr)
				require.Error(t, err)
				assert.ErrorIs(t, err, want)

				var pe *ParseError
				require.ErrorAs(t, err, &pe)
				assert.Equal(t, tt.Spec, pe.Spec)
				assert.Nil(t, of)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tokenProgram, of.owner.String())
			if tt.WantSize != 0 {
				require.NotNil(t, of.size)
				assert.Equal(t, tt.WantSize, *of.size)
			} else {
				assert.Nil(t, of.size)
			}
			assert.Len(t, of.memcmps, tt.WantMemcmps)
		})
	}
}

func TestNewOwnerFilterPreservesOptionOrder(t *testing.T) {
	of, err := NewOwnerFilter(tokenProgram + ",memcmp:0x01@0,memcmp:0x0203@8,memcmp:4@16")
	require.NoError(t, err)
	require.Len(t, of.memcmps, 3)

	assert.Equal(t, uint64(0), of.memcmps[0].offset)
	assert.Equal(t, []byte{0x01}, of.memcmps[0].bytes)
	assert.Equal(t, uint64(8), of.memcmps[1].offset)
	assert.Equal(t, []byte{0x02, 0x03}, of.memcmps[1].bytes)
	assert.Equal(t, uint64(16), of.memcmps[2].offset)
	assert.Equal(t, []byte{0x03}, of.memcmps[2].bytes)
}

func TestNewOwnerFilterMemcmpFile(t *testing.T) {
	values := []account.Pubkey{pk(1), pk(2), pk(3)}

	t.Run("hex and base58 lines", func(t *testing.T) {
		path := writeFile(t,
			"0x"+strings.Repeat("01", 32),
			"",
			"   ",
			"  "+values[1].String()+"  ",
			"0x"+strings.Repeat("03", 32),
		)
		of, err := NewOwnerFilter(tokenProgram + ",memcmpfile:" + path + "@32")
		require.NoError(t, err)
		require.Len(t, of.memcmps, 1)
		assert.Len(t, of.memcmps[0].anyOf, 3)
		assert.Equal(t, uint64(32), of.memcmps[0].offset)
	})

	t.Run("31 byte line fails", func(t *testing.T) {
		path := writeFile(t,
			values[0].String(),
			"0x"+strings.Repeat("aa", 31),
		)
		_, err := NewOwnerFilter(tokenProgram + ",memcmpfile:" + path + "@0")
		assert.ErrorIs(t, err, ErrInvalidMemcmpFileFilter)
	})

	t.Run("33 byte base58 line fails", func(t *testing.T) {
		path := writeFile(t, base58.Encode(make([]byte, 33)))
		_, err := NewOwnerFilter(tokenProgram + ",memcmpfile:" + path + "@0")
		assert.ErrorIs(t, err, ErrInvalidMemcmpFileFilter)
	})

	t.Run("undecodable line fails", func(t *testing.T) {
		path := writeFile(t, "0xnothex")
		_, err := NewOwnerFilter(tokenProgram + ",memcmpfile:" + path + "@0")
		assert.ErrorIs(t, err, ErrInvalidMemcmpFileFilter)
	})

	t.Run("empty path fails", func(t *testing.T) {
		_, err := NewOwnerFilter(tokenProgram + ",memcmpfile:@0")
		assert.ErrorIs(t, err, ErrInvalidMemcmpFileFilter)
	})
}

func TestNew(t *testing.T) {
	t.Run("comma joined pubkeys", func(t *testing.T) {
		f, err := New([]string{"a,b", "c"}, "", nil)
		require.NoError(t, err)
		assert.Len(t, f.pubkeys, 3)
		assert.Contains(t, f.pubkeys, "a")
		assert.Contains(t, f.pubkeys, "b")
		assert.Contains(t, f.pubkeys, "c")
		assert.False(t, f.Empty())
	})

	t.Run("pubkey file", func(t *testing.T) {
		path := writeFile(t, "  one  ", "", "\t", "two", "one")
		f, err := New(nil, path, nil)
		require.NoError(t, err)
		assert.Len(t, f.pubkeys, 2)
		assert.Contains(t, f.pubkeys, "one")
		assert.Contains(t, f.pubkeys, "two")
	})

	t.Run("missing pubkey file", func(t *testing.T) {
		_, err := New(nil, filepath.Join(t.TempDir(), "nope.txt"), nil)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("owner order preserved", func(t *testing.T) {
		f, err := New(nil, "", []string{token2022, tokenProgram + ",size:165"})
		require.NoError(t, err)
		require.Len(t, f.owners, 2)
		assert.Equal(t, token2022, f.owners[0].owner.String())
		assert.Equal(t, tokenProgram, f.owners[1].owner.String())
	})

	t.Run("first bad owner aborts", func(t *testing.T) {
		f, err := New([]string{"a"}, "", []string{tokenProgram, tokenProgram + ",size:1,size:2", "bad,"})
		assert.Nil(t, f)
		assert.ErrorIs(t, err, ErrMultipleSizeFilter)
	})

	t.Run("no inputs", func(t *testing.T) {
		f, err := New(nil, "", nil)
		require.NoError(t, err)
		assert.True(t, f.Empty())
	})
}

func TestIsMatchEmptyFilter(t *testing.T) {
	f, err := New(nil, "", nil)
	require.NoError(t, err)

	for _, a := range []*account.Account{
		{},
		{Pubkey: pk(9), Owner: pk(7), DataLen: 3, Data: []byte{1, 2, 3}},
	} {
		assert.True(t, f.IsMatch(a))
	}
}

func TestIsMatchPubkeySet(t *testing.T) {
	target := pk(5)
	f, err := New([]string{target.String()}, "", []string{tokenProgram + ",size:165"})
	require.NoError(t, err)

	// Matches regardless of owner or data.
	assert.True(t, f.IsMatch(&account.Account{Pubkey: target, Owner: pk(1)}))
	assert.True(t, f.IsMatch(&account.Account{Pubkey: target, Owner: pk(2), DataLen: 1, Data: []byte{0}}))
	assert.False(t, f.IsMatch(&account.Account{Pubkey: pk(6), Owner: pk(1)}))
}

func TestIsMatchSize(t *testing.T) {
	f, err := New(nil, "", []string{tokenProgram + ",size:165"})
	require.NoError(t, err)
	owner := account.MustParsePubkey(tokenProgram)

	tests := []struct {
		name    string
		dataLen uint64
		want    bool
	}{
		{name: "164", dataLen: 164, want: false},
		{name: "165", dataLen: 165, want: true},
		{name: "166", dataLen: 166, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := &account.Account{Owner: owner, DataLen: tt.dataLen, Data: make([]byte, tt.dataLen)}
			assert.Equal(t, tt.want, f.IsMatch(a))
		})
	}
}

func TestIsMatchMemcmp(t *testing.T) {
	f, err := New(nil, "", []string{tokenProgram + ",memcmp:0x0601@44"})
	require.NoError(t, err)
	owner := account.MustParsePubkey(tokenProgram)

	data := func(n int, at44 ...byte) []byte {
		b := make([]byte, n)
		copy(b[44:], at44)
		return b
	}

	tests := []struct {
		name string
		data []byte
		want bool
	}{
		{name: "exact at offset", data: data(46, 0x06, 0x01), want: true},
		{name: "longer payload", data: data(82, 0x06, 0x01), want: true},
		{name: "wrong second byte", data: data(82, 0x06, 0x02), want: false},
		{name: "45 bytes", data: data(45, 0x06), want: false},
		{name: "empty", data: nil, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := &account.Account{Owner: owner, DataLen: uint64(len(tt.data)), Data: tt.data}
			assert.Equal(t, tt.want, f.IsMatch(a))
		})
	}
}

func TestIsMatchMemcmpFile(t *testing.T) {
	values := []account.Pubkey{pk(1), pk(2), pk(3)}
	path := writeFile(t, values[0].String(), values[1].String(), values[2].String())

	f, err := New(nil, "", []string{tokenProgram + ",memcmpfile:" + path + "@32"})
	require.NoError(t, err)
	owner := account.MustParsePubkey(tokenProgram)

	withValue := func(v account.Pubkey) *account.Account {
		data := make([]byte, 72)
		copy(data[32:], v[:])
		return &account.Account{Owner: owner, DataLen: 72, Data: data}
	}

	for _, v := range values {
		assert.True(t, f.IsMatch(withValue(v)), "value %s", v)
	}
	assert.False(t, f.IsMatch(withValue(pk(4))))

	short := &account.Account{Owner: owner, DataLen: 63, Data: make([]byte, 63)}
	assert.False(t, f.IsMatch(short))
}

func TestIsMatchOwnerSpecsAreOred(t *testing.T) {
	// The first spec matches the owner but fails on size; evaluation must move
	// on to the next spec rather than continue within the first.
	f, err := New(nil, "", []string{
		tokenProgram + ",size:165",
		tokenProgram + ",memcmp:0x07@0",
	})
	require.NoError(t, err)
	owner := account.MustParsePubkey(tokenProgram)

	assert.True(t, f.IsMatch(&account.Account{Owner: owner, DataLen: 82, Data: []byte{0x07}}))
	assert.False(t, f.IsMatch(&account.Account{Owner: owner, DataLen: 82, Data: []byte{0x08}}))
	assert.True(t, f.IsMatch(&account.Account{Owner: owner, DataLen: 165, Data: []byte{0x08}}))
}

func TestIsMatchOwnerMismatchSkipsConstraints(t *testing.T) {
	f, err := New(nil, "", []string{tokenProgram + ",memcmp:0x01@1000000"})
	require.NoError(t, err)

	other := &account.Account{Owner: account.MustParsePubkey(token2022), DataLen: 0}
	assert.False(t, f.IsMatch(other))

	owner := &account.Account{Owner: account.MustParsePubkey(tokenProgram)}
	assert.False(t, f.IsMatch(owner))
}

func TestIsMatchOwnerWithoutOptions(t *testing.T) {
	f, err := New(nil, "", []string{token2022})
	require.NoError(t, err)

	assert.True(t, f.IsMatch(&account.Account{Owner: account.MustParsePubkey(token2022)}))
	assert.False(t, f.IsMatch(&account.Account{Owner: account.MustParsePubkey(tokenProgram)}))
}

func TestMemCmpIsMatchOffsetOverflow(t *testing.T) {
	m := &MemCmp{offset: ^uint64(0), bytes: []byte{1}}
	assert.False(t, m.IsMatch([]byte{1, 2, 3}))

	d := &MemCmp{offset: ^uint64(0) - 10, anyOf: map[digest]struct{}{}}
	assert.False(t, d.IsMatch(make([]byte, 64)))
}

func TestString(t *testing.T) {
	f, err := New([]string{"a,b"}, "", []string{tokenProgram + ",size:82,memcmp:0x06@44"})
	require.NoError(t, err)
	assert.Equal(t, "pubkeys=2 owners=["+tokenProgram+",size:82,memcmp:0x06@44]", f.String())
}
