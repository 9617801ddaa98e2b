package storage

import (
	"context"
	"errors"

	"github.com/smk-kristen-pedan/order-tracker/services"
)

// S3Storage keeps every key as one object under a prefix
type S3Storage struct {
	s3     services.S3Interface
	prefix string
}

// NewS3Storage stores objects as <prefix><key>.json
func NewS3Storage(s3 services.S3Interface, prefix string) *S3Storage {
	return &S3Storage{s3: s3, prefix: prefix}
}

func (s *S3Storage) objectKey(key string) string {
	return s.prefix + key + ".json"
}

// Get downloads the object for key, returning ErrNotFound when it is missing
func (s *S3Storage) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := s.s3.GetObject(ctx, s.objectKey(key))
	if errors.Is(err, services.ErrObjectNotFound) {
		return nil, ErrNotFound
	}
	return data, err
}

// Set uploads value as the object for key
func (s *S3Storage) Set(ctx context.Context, key string, value []byte) error {
	return s.s3.PutObject(ctx, s.objectKey(key), value, "application/json")
}

// Ping uses the bucket check when the client offers one
func (s *S3Storage) Ping(ctx context.Context) error {
	if p, ok := s.s3.(interface{ Ping(context.Context) error }); ok {
		return p.Ping(ctx)
	}
	return nil
}

// Close is a no-op; the S3 client holds no connection to release
func (s *S3Storage) Close() error { return nil }
