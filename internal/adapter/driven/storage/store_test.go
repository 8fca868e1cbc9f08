package storage

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diillson/weekly-usage-report/internal/shared/types"
)

type fakeS3 struct {
	objects      map[string][]byte
	contentTypes map[string]string
}

func newFakeS3() *fakeS3 {
	return &fakeS3{objects: map[string][]byte{}, contentTypes: map[string]string{}}
}

func (f *fakeS3) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	data, ok := f.objects[aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key)]
	if !ok {
		return nil, errors.New("NoSuchKey")
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	k := aws.ToString(in.Bucket) + "/" + aws.ToString(in.Key)
	f.objects[k] = data
	f.contentTypes[k] = aws.ToString(in.ContentType)
	return &s3.PutObjectOutput{}, nil
}

func TestParseS3URI(t *testing.T) {
	tests := []struct {
		in          string
		bucket, key string
		ok          bool
	}{
		{"s3://reports/weekly/report.csv", "reports", "weekly/report.csv", true},
		{"s3://reports", "reports", "", true},
		{"s3://", "", "", false},
		{"s3:///key", "", "", false},
		{"/tmp/report.csv", "", "", false},
		{"S3://reports/x", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			bucket, key, ok := ParseS3URI(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.bucket, bucket)
			assert.Equal(t, tt.key, key)
		})
	}
}

func TestJoin(t *testing.T) {
	s := NewStoreWithClient(newFakeS3())

	assert.Equal(t, "s3://reports/weekly/report.csv", s.Join("s3://reports/weekly/", "report.csv"))
	assert.Equal(t, "s3://reports/report.csv", s.Join("s3://reports", "report.csv"))
	assert.Equal(t, filepath.Join("out", "report.csv"), s.Join("out", "report.csv"))
}

func TestStore_Local(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s := NewStore(Options{})

	location := filepath.Join(dir, "nested", "report.csv")
	written, err := s.Write(ctx, location, []byte(`"a"`), "text/csv")
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(written))

	data, err := s.Read(ctx, location)
	require.NoError(t, err)
	assert.Equal(t, `"a"`, string(data))

	_, err = s.Read(ctx, filepath.Join(dir, "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestStore_EmptyLocation(t *testing.T) {
	s := NewStore(Options{})

	_, err := s.Read(context.Background(), "")
	assert.ErrorIs(t, err, types.ErrEmptyLocation)
	_, err = s.Write(context.Background(), "", nil, "")
	assert.ErrorIs(t, err, types.ErrEmptyLocation)
}

func TestStore_S3(t *testing.T) {
	ctx := context.Background()
	client := newFakeS3()
	s := NewStoreWithClient(client)

	written, err := s.Write(ctx, "s3://reports/weekly/report.csv", []byte("data"), "text/csv")
	require.NoError(t, err)
	assert.Equal(t, "s3://reports/weekly/report.csv", written)
	assert.Equal(t, "text/csv", client.contentTypes["reports/weekly/report.csv"])

	data, err := s.Read(ctx, "s3://reports/weekly/report.csv")
	require.NoError(t, err)
	assert.Equal(t, "data", string(data))

	_, err = s.Read(ctx, "s3://reports/none")
	assert.ErrorContains(t, err, "s3://reports/none")
}
