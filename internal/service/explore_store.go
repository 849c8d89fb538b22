package service

import (
	"context"
	"errors"
	"hash/fnv"
	"math"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/d60-Lab/calora-explore/internal/model"
	"github.com/d60-Lab/calora-explore/internal/repository"
	"github.com/d60-Lab/calora-explore/internal/seed"
	"github.com/d60-Lab/calora-explore/pkg/logger"
)

// errNoop 引用的用户或动态不存在：不修改、不持久化、不报错
var errNoop = errors.New("noop")

var avatarPalette = []string{"#f97316", "#22c55e", "#6366f1", "#0ea5e9", "#ec4899", "#eab308", "#14b8a6"}

// ExploreStore 持有 Explore 状态的唯一写入者。每次变更在返回前写回存储。
type ExploreStore struct {
	mu      sync.Mutex
	state   *model.ExploreState
	account model.Account

	repo   repository.StateRepository
	events *ActivityPublisher
	now    func() time.Time
	newID  func() string
	seed   func() *model.ExploreState

	// readOnly 启动时读取存储失败，变更只保留在内存中
	readOnly bool
}

// Option 构造 ExploreStore 时的可选项
type Option func(*ExploreStore)

// WithClock 替换时间源
func WithClock(now func() time.Time) Option { return func(s *ExploreStore) { s.now = now } }

// WithIDGenerator 替换新动态、评论、私信的 ID 生成
func WithIDGenerator(newID func() string) Option { return func(s *ExploreStore) { s.newID = newID } }

// WithSeed 替换种子数据，首次加载与 Reset 使用
func WithSeed(seed func() *model.ExploreState) Option { return func(s *ExploreStore) { s.seed = seed } }

// WithPublisher 变更成功后广播 ActivityEvent
func WithPublisher(p *ActivityPublisher) Option { return func(s *ExploreStore) { s.events = p } }

// NewExploreStore 加载持久化状态；不存在或损坏时使用种子数据，并确保当前用户存在
func NewExploreStore(ctx context.Context, repo repository.StateRepository, account model.Account, opts ...Option) *ExploreStore {
	s := &ExploreStore{
		repo:    repo,
		account: account,
		now:     time.Now,
		newID:   func() string { return uuid.New().String() },
		seed:    seed.Generate,
	}
	for _, opt := range opts {
		opt(s)
	}

	state, err := repo.Load(ctx)
	dirty := false
	writable := true
	switch {
	case errors.Is(err, repository.ErrStateNotFound):
		logger.Info("explore state unavailable, using seed", zap.Error(err))
		state = s.seed()
		dirty = true
	case err != nil:
		// 读取失败时存储里可能仍有真实数据，本次运行不写回
		logger.Error("load explore state failed, using seed without persisting", zap.Error(err))
		state = s.seed()
		writable = false
	}
	state.Normalize()
	if s.ensureCurrentUser(state) {
		dirty = true
	}
	s.state = state
	s.readOnly = !writable
	if dirty {
		s.persist(ctx)
	}
	return s
}

// ensureCurrentUser 当前用户不在 users 中时按会话账户合成一条
func (s *ExploreStore) ensureCurrentUser(st *model.ExploreState) bool {
	changed := false
	if st.IsFollowing(s.account.ID) {
		st.ToggleFollowing(s.account.ID)
		changed = true
	}
	if me := st.User(s.account.ID); me != nil {
		if changed {
			me.Following = len(st.Following)
		}
		return changed
	}
	me := model.User{
		ID:          s.account.ID,
		Name:        s.account.Name,
		Handle:      handleFor(s.account),
		Title:       "Calora member",
		AvatarColor: avatarColor(s.account.ID),
		Following:   len(st.Following),
	}
	if me.Name == "" {
		me.Name = "You"
	}
	st.Users = append([]model.User{me}, st.Users...)
	return true
}

func handleFor(acc model.Account) string {
	base := acc.Name
	if at := strings.Index(acc.Email, "@"); at > 0 {
		base = acc.Email[:at]
	}
	base = strings.ToLower(strings.Join(strings.Fields(base), ""))
	if base == "" {
		base = acc.ID
	}
	return "@" + base
}

func avatarColor(id string) string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(id))
	return avatarPalette[h.Sum32()%uint32(len(avatarPalette))]
}

// apply 串行执行一次变更：fn 返回 errNoop 时什么都不做，返回其他错误时不持久化
func (s *ExploreStore) apply(ctx context.Context, fn func(st *model.ExploreState) (*model.ActivityEvent, error)) error {
	s.mu.Lock()
	ev, err := fn(s.state)
	if err != nil {
		s.mu.Unlock()
		if errors.Is(err, errNoop) {
			return nil
		}
		return err
	}
	s.persist(ctx)
	s.mu.Unlock()

	if ev != nil {
		if err := s.events.Publish(ctx, *ev); err != nil {
			logger.Warn("publish activity failed", zap.String("kind", string(ev.Kind)), zap.Error(err))
		}
	}
	return nil
}

// persist 失败只记录日志，内存中的变更保留
func (s *ExploreStore) persist(ctx context.Context) {
	if s.readOnly {
		logger.Warn("explore state not persisted: storage was unreadable at startup")
		return
	}
	if err := s.repo.Save(ctx, s.state); err != nil {
		logger.Warn("persist explore state failed", zap.Error(err))
	}
}

// ToggleFollow 未关注则关注，已关注则取消；返回切换后的状态
func (s *ExploreStore) ToggleFollow(ctx context.Context, userID string) (bool, error) {
	var following bool
	err := s.apply(ctx, func(st *model.ExploreState) (*model.ActivityEvent, error) {
		if userID == s.account.ID {
			return nil, ErrFollowSelf
		}
		target := st.User(userID)
		if target == nil {
			return nil, errNoop
		}
		following = st.ToggleFollowing(userID)
		if following {
			target.Followers++
		} else if target.Followers > 0 {
			target.Followers--
		}
		if me := st.User(s.account.ID); me != nil {
			me.Following = len(st.Following)
		}

		kind := model.ActivityFollow
		if !following {
			kind = model.ActivityUnfollow
		}
		return &model.ActivityEvent{Kind: kind, ActorID: s.account.ID, TargetUserID: userID, At: s.now()}, nil
	})
	return following, err
}

// ToggleLike 切换 actingUserID 对动态的点赞；引用不存在时返回 nil
func (s *ExploreStore) ToggleLike(ctx context.Context, postID, actingUserID string) (*model.Post, error) {
	var out *model.Post
	err := s.apply(ctx, func(st *model.ExploreState) (*model.ActivityEvent, error) {
		post := st.Post(postID)
		if post == nil || st.User(actingUserID) == nil {
			return nil, errNoop
		}
		liked := post.ToggleLike(actingUserID)
		cp := post.Clone()
		out = &cp
		if !liked {
			return nil, nil
		}
		return &model.ActivityEvent{Kind: model.ActivityLike, ActorID: actingUserID, TargetUserID: post.UserID, PostID: postID, At: s.now()}, nil
	})
	return out, err
}

// ToggleReaction 每个用户在一条动态上最多持有一个表情
func (s *ExploreStore) ToggleReaction(ctx context.Context, postID, actingUserID, emoji string) (*model.Post, error) {
	emoji = strings.TrimSpace(emoji)
	var out *model.Post
	err := s.apply(ctx, func(st *model.ExploreState) (*model.ActivityEvent, error) {
		if emoji == "" {
			return nil, ErrEmptyEmoji
		}
		post := st.Post(postID)
		if post == nil || st.User(actingUserID) == nil {
			return nil, errNoop
		}
		active := post.ToggleReaction(actingUserID, emoji)
		cp := post.Clone()
		out = &cp
		if !active {
			return nil, nil
		}
		return &model.ActivityEvent{Kind: model.ActivityReaction, ActorID: actingUserID, TargetUserID: post.UserID, PostID: postID, Text: emoji, At: s.now()}, nil
	})
	return out, err
}

// AddComment 追加评论，空白内容被拒绝
func (s *ExploreStore) AddComment(ctx context.Context, postID, actingUserID, text string) (*model.Comment, error) {
	text = strings.TrimSpace(text)
	var out *model.Comment
	err := s.apply(ctx, func(st *model.ExploreState) (*model.ActivityEvent, error) {
		if text == "" {
			return nil, ErrEmptyComment
		}
		post := st.Post(postID)
		if post == nil || st.User(actingUserID) == nil {
			return nil, errNoop
		}
		c := model.Comment{ID: s.newID(), UserID: actingUserID, Text: text, CreatedAt: s.now()}
		post.Comments = append(post.Comments, c)
		out = &c
		return &model.ActivityEvent{Kind: model.ActivityComment, ActorID: actingUserID, TargetUserID: post.UserID, PostID: postID, Text: text, At: c.CreatedAt}, nil
	})
	return out, err
}

// CreatePost 标题与摘要必填；无法解析的数值按 0 处理；新动态放在最前
func (s *ExploreStore) CreatePost(ctx context.Context, authorID string, draft model.PostDraft) (*model.Post, error) {
	title := strings.TrimSpace(draft.Title)
	summary := strings.TrimSpace(draft.Summary)
	var out *model.Post
	err := s.apply(ctx, func(st *model.ExploreState) (*model.ActivityEvent, error) {
		if title == "" {
			return nil, ErrEmptyTitle
		}
		if summary == "" {
			return nil, ErrEmptySummary
		}
		if st.User(authorID) == nil {
			return nil, errNoop
		}

		post := model.Post{
			ID:        s.newID(),
			UserID:    authorID,
			Type:      model.PostTypeActivity,
			Title:     title,
			Summary:   summary,
			Calories:  parseAmount(draft.Calories),
			CreatedAt: s.now(),
			Likes:     []string{},
			Reactions: map[string][]string{},
			Comments:  []model.Comment{},
		}
		if model.PostType(strings.TrimSpace(draft.Type)) == model.PostTypeMeal {
			post.Type = model.PostTypeMeal
			post.Protein = parseAmount(draft.Protein)
			post.Carbs = parseAmount(draft.Carbs)
			post.Fats = parseAmount(draft.Fats)
		} else {
			post.Duration = parseAmount(draft.Duration)
		}

		st.Posts = append([]model.Post{post}, st.Posts...)
		cp := post.Clone()
		out = &cp
		return &model.ActivityEvent{Kind: model.ActivityPost, ActorID: authorID, PostID: post.ID, Text: title, At: post.CreatedAt}, nil
	})
	return out, err
}

// parseAmount 非数字、负数、NaN/Inf 一律为 0
func parseAmount(raw string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

// SendMessage 追加到按参与者排序后的会话 key 下，会话不存在时创建
func (s *ExploreStore) SendMessage(ctx context.Context, fromID, toID, text string) (*model.Message, error) {
	text = strings.TrimSpace(text)
	var out *model.Message
	err := s.apply(ctx, func(st *model.ExploreState) (*model.ActivityEvent, error) {
		if text == "" {
			return nil, ErrEmptyMessage
		}
		if st.User(fromID) == nil || st.User(toID) == nil {
			return nil, errNoop
		}
		m := model.Message{ID: s.newID(), From: fromID, To: toID, Text: text, CreatedAt: s.now()}
		key := model.ConversationKey(fromID, toID)
		st.Messages[key] = append(st.Messages[key], m)
		out = &m
		return &model.ActivityEvent{Kind: model.ActivityMessage, ActorID: fromID, TargetUserID: toID, Text: text, At: m.CreatedAt}, nil
	})
	return out, err
}

// Reset 丢弃当前状态，重新使用种子数据并持久化
func (s *ExploreStore) Reset(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.seed()
	st.Normalize()
	s.ensureCurrentUser(st)
	s.state = st
	s.persist(ctx)
}

// Snapshot 当前状态的深拷贝
func (s *ExploreStore) Snapshot() *model.ExploreState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// CurrentUser 当前会话用户在 Explore 中的卡片
func (s *ExploreStore) CurrentUser() model.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u := s.state.User(s.account.ID); u != nil {
		return *u
	}
	return model.User{ID: s.account.ID, Name: s.account.Name}
}

// CurrentUserID 会话账户 ID
func (s *ExploreStore) CurrentUserID() string { return s.account.ID }
