package repository

import "context"

// ObjectStore reads and writes whole files, on local disk or in S3
// ("s3://bucket/key"). Each call is a single blocking hand-off.
type ObjectStore interface {
	Read(ctx context.Context, location string) ([]byte, error)
	Write(ctx context.Context, location string, data []byte, contentType string) (string, error)
	Join(dir, name string) string
}
