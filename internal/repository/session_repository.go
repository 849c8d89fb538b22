package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/d60-Lab/calora-explore/internal/model"
)

// ErrNoSession 会话 key 不存在或无法解析
var ErrNoSession = errors.New("no session account")

// SessionRepository 读取登录账户；Explore 只读不写
type SessionRepository interface {
	Current(ctx context.Context) (*model.Account, error)
}

type sessionRepository struct {
	blobs    BlobStore
	key      string
	validate *validator.Validate
}

func NewSessionRepository(blobs BlobStore, key string) SessionRepository {
	return &sessionRepository{blobs: blobs, key: key, validate: validator.New()}
}

func (r *sessionRepository) Current(ctx context.Context) (*model.Account, error) {
	data, err := r.blobs.Get(ctx, r.key)
	if errors.Is(err, ErrBlobNotFound) {
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, err
	}

	var acc model.Account
	if err := json.Unmarshal(data, &acc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoSession, err)
	}
	if err := r.validate.Struct(&acc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoSession, err)
	}
	return &acc, nil
}
