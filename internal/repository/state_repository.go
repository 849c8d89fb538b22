package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/d60-Lab/calora-explore/internal/model"
)

// ErrStateNotFound 没有可用的持久化状态：key 不存在、JSON 损坏或结构校验失败。
// 存储读取失败（超时、连接错误）不属于此类，原样返回
var ErrStateNotFound = errors.New("explore state not found")

// StateRepository Explore 状态的读写
type StateRepository interface {
	Load(ctx context.Context) (*model.ExploreState, error)
	Save(ctx context.Context, state *model.ExploreState) error
	Clear(ctx context.Context) error
}

type stateRepository struct {
	blobs    BlobStore
	key      string
	validate *validator.Validate
}

// NewStateRepository 状态以 JSON 整体写在 key 下
func NewStateRepository(blobs BlobStore, key string) StateRepository {
	return &stateRepository{blobs: blobs, key: key, validate: validator.New()}
}

func (r *stateRepository) Load(ctx context.Context) (*model.ExploreState, error) {
	data, err := r.blobs.Get(ctx, r.key)
	if errors.Is(err, ErrBlobNotFound) {
		return nil, ErrStateNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read state: %w", err)
	}

	state, err := DecodeState(data, r.validate)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStateNotFound, err)
	}
	return state, nil
}

func (r *stateRepository) Save(ctx context.Context, state *model.ExploreState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}
	return r.blobs.Put(ctx, r.key, data)
}

func (r *stateRepository) Clear(ctx context.Context) error {
	return r.blobs.Delete(ctx, r.key)
}

// DecodeState 解析并校验持久化 blob；任何不合法的结构都返回错误
func DecodeState(data []byte, v *validator.Validate) (*model.ExploreState, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil, errors.New("empty state")
	}

	var state model.ExploreState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("decode state: %w", err)
	}
	if v == nil {
		v = validator.New()
	}
	if err := v.Struct(&state); err != nil {
		return nil, fmt.Errorf("validate state: %w", err)
	}
	if err := checkState(&state); err != nil {
		return nil, err
	}
	state.Normalize()
	return &state, nil
}

func checkState(s *model.ExploreState) error {
	users := make(map[string]struct{}, len(s.Users))
	for _, u := range s.Users {
		if _, dup := users[u.ID]; dup {
			return fmt.Errorf("duplicate user id %q", u.ID)
		}
		users[u.ID] = struct{}{}
	}

	posts := make(map[string]struct{}, len(s.Posts))
	for _, p := range s.Posts {
		if _, dup := posts[p.ID]; dup {
			return fmt.Errorf("duplicate post id %q", p.ID)
		}
		posts[p.ID] = struct{}{}
	}

	for key, msgs := range s.Messages {
		for _, m := range msgs {
			if model.ConversationKey(m.From, m.To) != key {
				return fmt.Errorf("message %q filed under %q", m.ID, key)
			}
		}
	}
	return nil
}
