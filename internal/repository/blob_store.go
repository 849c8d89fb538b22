package repository

import (
	"context"
	"errors"
)

// ErrBlobNotFound key 不存在
var ErrBlobNotFound = errors.New("blob not found")

// BlobStore 键值字节存储，对应浏览器 localStorage：Put 整体覆盖，后写者胜
type BlobStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, data []byte) error
	Delete(ctx context.Context, key string) error
}
