package repository

import (
	"context"

	"github.com/d60-Lab/calora-explore/config"
	"github.com/d60-Lab/calora-explore/pkg/cache"
	"github.com/d60-Lab/calora-explore/pkg/database"
)

// OpenBlobStore 按 storage.driver 创建存储；返回的关闭函数释放底层连接
func OpenBlobStore(ctx context.Context, cfg *config.Config) (BlobStore, func() error, error) {
	noop := func() error { return nil }
	switch cfg.Storage.Driver {
	case "memory":
		return NewMemoryBlobStore(), noop, nil
	case "sqlite", "postgres":
		db, err := database.InitDB(cfg)
		if err != nil {
			return nil, nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, nil, err
		}
		return NewGormBlobStore(db), sqlDB.Close, nil
	case "redis":
		client, err := cache.InitRedis(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		return NewRedisBlobStore(client, cfg.Redis.Prefix, cfg.Redis.TTL), client.Close, nil
	default:
		store, err := NewFileBlobStore(cfg.Storage.Dir)
		if err != nil {
			return nil, nil, err
		}
		return store, noop, nil
	}
}
