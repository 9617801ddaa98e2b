// Package storage provides the key-value backends the order store persists into.
package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"
	"github.com/smk-kristen-pedan/order-tracker/config"
	"github.com/smk-kristen-pedan/order-tracker/services"
)

// ErrNotFound is returned by Get when nothing is stored under the key
var ErrNotFound = errors.New("storage: key not found")

// Storage is a byte-oriented key-value store
type Storage interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Ping(ctx context.Context) error
	Close() error
}

// FromConfig opens the backend selected by STORAGE_DRIVER.
// s3 is only used by the s3 driver and may be nil otherwise.
func FromConfig(cfg *config.Config, s3 services.S3Interface) (Storage, error) {
	switch cfg.StorageDriver {
	case config.StorageMemory:
		return NewMemoryStorage(), nil
	case config.StorageFile:
		return NewFileStorage(cfg.StorageDir)
	case config.StorageSQLite, config.StoragePostgres:
		db, err := config.ConnectDatabase(cfg)
		if err != nil {
			return nil, err
		}
		return NewGormStorage(db)
	case config.StorageRedis:
		return NewRedisStorage(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		}), nil
	case config.StorageS3:
		if s3 == nil {
			return nil, fmt.Errorf("s3 storage driver requires an S3 client")
		}
		return NewS3Storage(s3, "state/"), nil
	}
	return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
}
