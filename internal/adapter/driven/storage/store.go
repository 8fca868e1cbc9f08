package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/diillson/weekly-usage-report/internal/domain/repository"
	"github.com/diillson/weekly-usage-report/internal/shared/types"
)

const s3Scheme = "s3://"

// S3API is the subset of the S3 client the store needs.
type S3API interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Options seleciona o perfil e a região AWS usados para locais s3://.
type Options struct {
	Profile string
	Region  string
}

// StoreImpl implementa o ObjectStore sobre o disco local e o S3.
type StoreImpl struct {
	opts Options

	mu     sync.Mutex
	client S3API
}

// NewStore cria um ObjectStore. O cliente S3 só é criado no primeiro acesso s3://.
func NewStore(opts Options) repository.ObjectStore {
	return &StoreImpl{opts: opts}
}

// NewStoreWithClient cria um ObjectStore com um cliente S3 já pronto.
func NewStoreWithClient(client S3API) *StoreImpl {
	return &StoreImpl{client: client}
}

// Read returns the whole content at location.
func (s *StoreImpl) Read(ctx context.Context, location string) ([]byte, error) {
	if location == "" {
		return nil, types.ErrEmptyLocation
	}
	if bucket, key, ok := ParseS3URI(location); ok {
		client, err := s.s3Client(ctx)
		if err != nil {
			return nil, err
		}
		out, err := client.GetObject(ctx, &s3.GetObjectInput{
			Bucket: aws.String(bucket),
			Key:    aws.String(key),
		})
		if err != nil {
			return nil, fmt.Errorf("error reading %s: %w", location, err)
		}
		defer out.Body.Close()

		data, err := io.ReadAll(out.Body)
		if err != nil {
			return nil, fmt.Errorf("error reading %s: %w", location, err)
		}
		return data, nil
	}

	data, err := os.ReadFile(location)
	if err != nil {
		return nil, fmt.Errorf("error reading file: %w", err)
	}
	return data, nil
}

// Write stores data at location and returns where it ended up: an absolute path
// for local files, the s3:// URI otherwise.
func (s *StoreImpl) Write(ctx context.Context, location string, data []byte, contentType string) (string, error) {
	if location == "" {
		return "", types.ErrEmptyLocation
	}
	if bucket, key, ok := ParseS3URI(location); ok {
		client, err := s.s3Client(ctx)
		if err != nil {
			return "", err
		}
		input := &s3.PutObjectInput{
			Bucket: aws.String(bucket),
			Key:    aws.String(key),
			Body:   bytes.NewReader(data),
		}
		if contentType != "" {
			input.ContentType = aws.String(contentType)
		}
		if _, err := client.PutObject(ctx, input); err != nil {
			return "", fmt.Errorf("error writing %s: %w", location, err)
		}
		return location, nil
	}

	if dir := filepath.Dir(location); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("error creating output directory '%s': %w", dir, err)
		}
	}
	if err := os.WriteFile(location, data, 0644); err != nil {
		return "", fmt.Errorf("error writing file: %w", err)
	}
	return filepath.Abs(location)
}

// Join appends name to dir, keeping forward slashes for s3:// prefixes.
func (s *StoreImpl) Join(dir, name string) string {
	if strings.HasPrefix(dir, s3Scheme) {
		bucket, prefix, _ := ParseS3URI(dir)
		return s3Scheme + bucket + "/" + strings.TrimPrefix(path.Join(prefix, name), "/")
	}
	return filepath.Join(dir, name)
}

// ParseS3URI splits "s3://bucket/key" into bucket and key.
func ParseS3URI(location string) (bucket, key string, ok bool) {
	rest, found := strings.CutPrefix(location, s3Scheme)
	if !found || rest == "" {
		return "", "", false
	}
	bucket, key, _ = strings.Cut(rest, "/")
	if bucket == "" {
		return "", "", false
	}
	return bucket, key, true
}

func (s *StoreImpl) s3Client(ctx context.Context) (S3API, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.client != nil {
		return s.client, nil
	}

	var loadOpts []func(*config.LoadOptions) error
	if s.opts.Profile != "" {
		loadOpts = append(loadOpts, config.WithSharedConfigProfile(s.opts.Profile))
	}
	if s.opts.Region != "" {
		loadOpts = append(loadOpts, config.WithRegion(s.opts.Region))
	}
	cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config for profile %s: %w", s.opts.Profile, err)
	}

	s.client = s3.NewFromConfig(cfg)
	return s.client, nil
}
