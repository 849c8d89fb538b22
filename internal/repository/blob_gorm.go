package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/d60-Lab/calora-explore/internal/model"
)

type gormBlobStore struct {
	db *gorm.DB
}

// NewGormBlobStore 基于 explore_blobs 表，sqlite / postgres 通用
func NewGormBlobStore(db *gorm.DB) BlobStore { return &gormBlobStore{db: db} }

func keyEq(key string) clause.Eq {
	return clause.Eq{Column: clause.Column{Name: "key"}, Value: key}
}

func (s *gormBlobStore) Get(ctx context.Context, key string) ([]byte, error) {
	var b model.Blob
	err := s.db.WithContext(ctx).Where(keyEq(key)).First(&b).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrBlobNotFound
	}
	if err != nil {
		return nil, err
	}
	return []byte(b.Payload), nil
}

func (s *gormBlobStore) Put(ctx context.Context, key string, data []byte) error {
	b := &model.Blob{Key: key, Payload: string(data), UpdatedAt: time.Now()}
	// 整体覆盖：冲突时更新 payload
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
	}).Create(b).Error
}

func (s *gormBlobStore) Delete(ctx context.Context, key string) error {
	return s.db.WithContext(ctx).Where(keyEq(key)).Delete(&model.Blob{}).Error
}
