// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package aws

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/retry"
	s3v2 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGetter struct {
	body   string
	err    error
	bucket string
	key    string
}

func (f *fakeGetter) GetObject(_ context.Context, in *s3v2.GetObjectInput, _ ...func(*s3v2.Options)) (*s3v2.GetObjectOutput, error) {
	f.bucket = awsv2.ToString(in.Bucket)
	f.key = awsv2.ToString(in.Key)
	if f.err != nil {
		return nil, f.err
	}
	return &s3v2.GetObjectOutput{
		Body:          io.NopCloser(strings.NewReader(f.body)),
		ContentLength: awsv2.Int64(int64(len(f.body))),
	}, nil
}

func TestOptions(t *testing.T) {
	tests := []struct {
		name    string
		opts    []Option
		profile string
		region  string
	}{
		{name: "none"},
		{name: "profile", opts: []Option{WithProfile("snapshots")}, profile: "snapshots"},
		{name: "region", opts: []Option{WithRegion("us-west-2")}, region: "us-west-2"},
		{name: "last wins", opts: []Option{WithRegion("us-east-1"), WithRegion("eu-west-1")}, region: "eu-west-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var o options
			for _, opt := range tt.opts {
				opt(&o)
			}
			assert.Equal(t, tt.profile, o.profile)
			assert.Equal(t, tt.region, o.region)
		})
	}
}

func TestWithRetryer(t *testing.T) {
	var o options
	WithRetryer(func() awsv2.Retryer { return retry.NewStandard() })(&o)

	require.NotNil(t, o.retryer)
	assert.NotNil(t, o.retryer())
}

func TestLoadAWSConfig_WithRegion(t *testing.T) {
	cfg, err := LoadAWSConfig(context.Background(), WithRegion("us-west-2"))

	assert.NoError(t, err)
	assert.Equal(t, "us-west-2", cfg.Region)
}

func TestNewS3(t *testing.T) {
	cfg, err := LoadAWSConfig(context.Background(), WithRegion("us-east-1"))
	require.NoError(t, err)

	assert.IsType(t, &s3v2.Client{}, NewS3(cfg))
}

func TestOpenObject(t *testing.T) {
	t.Run("streams body", func(t *testing.T) {
		getter := &fakeGetter{body: "snapshot bytes"}

		obj, err := OpenObject(context.Background(), getter, "snaps", "mainnet/snapshot-1.tar.zst")
		require.NoError(t, err)
		defer obj.Close()

		assert.Equal(t, "snaps", getter.bucket)
		assert.Equal(t, "mainnet/snapshot-1.tar.zst", getter.key)
		assert.Equal(t, int64(14), obj.Size)

		b, err := io.ReadAll(obj)
		require.NoError(t, err)
		assert.Equal(t, "snapshot bytes", string(b))
	})

	t.Run("missing key", func(t *testing.T) {
		_, err := OpenObject(context.Background(), &fakeGetter{}, "snaps", "")
		assert.ErrorIs(t, err, ErrEmptyLocation)
	})

	t.Run("get fails", func(t *testing.T) {
		boom := errors.New("access denied")
		_, err := OpenObject(context.Background(), &fakeGetter{err: boom}, "snaps", "k")
		assert.ErrorIs(t, err, boom)
		assert.Contains(t, err.Error(), "s3://snaps/k")
	})
}
