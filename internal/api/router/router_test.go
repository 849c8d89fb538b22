package router

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d60-Lab/calora-explore/config"
	"github.com/d60-Lab/calora-explore/internal/api/handler"
	"github.com/d60-Lab/calora-explore/internal/model"
	"github.com/d60-Lab/calora-explore/internal/repository"
	"github.com/d60-Lab/calora-explore/internal/seed"
	"github.com/d60-Lab/calora-explore/internal/service"
)

func init() { gin.SetMode(gin.TestMode) }

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func setupRouter(t *testing.T) (*gin.Engine, *service.ExploreStore) {
	t.Helper()
	now := time.Date(2026, 10, 19, 9, 30, 0, 0, time.UTC)
	repo := repository.NewStateRepository(repository.NewMemoryBlobStore(), "calora.explore.v1")
	store := service.NewExploreStore(context.Background(), repo, model.Account{ID: "me", Name: "Ana"},
		service.WithClock(func() time.Time { return now }),
		service.WithSeed(func() *model.ExploreState { return seed.GenerateAt(now) }),
	)
	cfg := &config.Config{RateLimit: config.RateLimitConfig{RPS: 1000, Burst: 1000}}
	return Setup(cfg, handler.New(store, service.NewNotificationInbox(nil, 0))), store
}

func do(t *testing.T, r *gin.Engine, method, path string, body interface{}, headers ...string) (int, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	}
	return w.Code, env
}

func TestHealthz(t *testing.T) {
	r, _ := setupRouter(t)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestFeedAndTrending(t *testing.T) {
	r, _ := setupRouter(t)

	code, env := do(t, r, http.MethodGet, "/api/v1/explore/feed", nil)
	require.Equal(t, http.StatusOK, code)
	var feed []model.Post
	require.NoError(t, json.Unmarshal(env.Data, &feed))
	assert.Equal(t, "p1", feed[0].ID)

	code, env = do(t, r, http.MethodGet, "/api/v1/explore/trending?limit=2", nil)
	require.Equal(t, http.StatusOK, code)
	var trending []model.Post
	require.NoError(t, json.Unmarshal(env.Data, &trending))
	require.Len(t, trending, 2)
	assert.Equal(t, "p3", trending[0].ID)
}

func TestToggleFollow(t *testing.T) {
	r, store := setupRouter(t)

	code, env := do(t, r, http.MethodPost, "/api/v1/explore/follows/u2/toggle", nil)
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"user_id":"u2","following":true}`, string(env.Data))
	assert.Contains(t, store.Snapshot().Following, "u2")

	code, env = do(t, r, http.MethodPost, "/api/v1/explore/follows/me/toggle", nil)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, service.ErrFollowSelf.Error(), env.Message)
}

func TestCreatePost(t *testing.T) {
	r, store := setupRouter(t)

	code, env := do(t, r, http.MethodPost, "/api/v1/explore/posts", map[string]interface{}{
		"type": "meal", "title": "Greek yogurt", "summary": "With berries", "calories": 210, "protein": "18", "carbs": "n/a",
	})
	require.Equal(t, http.StatusOK, code)
	var post model.Post
	require.NoError(t, json.Unmarshal(env.Data, &post))
	assert.Equal(t, 210.0, post.Calories)
	assert.Equal(t, 18.0, post.Protein)
	assert.Zero(t, post.Carbs)
	assert.Equal(t, "me", post.UserID)

	before := len(store.Snapshot().Posts)
	code, env = do(t, r, http.MethodPost, "/api/v1/explore/posts", map[string]string{"title": "", "summary": "x"})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, service.ErrEmptyTitle.Error(), env.Message)
	assert.Len(t, store.Snapshot().Posts, before)
}

func TestReactionsLikesAndComments(t *testing.T) {
	r, store := setupRouter(t)

	code, _ := do(t, r, http.MethodPost, "/api/v1/explore/posts/p4/like", nil, handler.UserHeader, "u2")
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, store.Snapshot().Post("p4").Likes, "u2")

	code, _ = do(t, r, http.MethodPost, "/api/v1/explore/posts/p4/reactions", map[string]string{"emoji": "🔥"})
	require.Equal(t, http.StatusOK, code)
	code, _ = do(t, r, http.MethodPost, "/api/v1/explore/posts/p4/reactions", map[string]string{"emoji": "💪"})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "💪", func() string { p := store.Snapshot().Post("p4"); return p.ReactionOf("me") }())

	code, _ = do(t, r, http.MethodPost, "/api/v1/explore/posts/p4/reactions", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, code)

	code, env := do(t, r, http.MethodPost, "/api/v1/explore/posts/p4/comments", map[string]string{"text": "   "})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, service.ErrEmptyComment.Error(), env.Message)

	code, env = do(t, r, http.MethodPost, "/api/v1/explore/posts/missing/comments", map[string]string{"text": "hello"})
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "null", string(env.Data))
}

func TestMessages(t *testing.T) {
	r, _ := setupRouter(t)

	code, _ := do(t, r, http.MethodPost, "/api/v1/explore/messages", map[string]string{"to_user_id": "u2", "text": "Coffee after the ride?"})
	require.Equal(t, http.StatusOK, code)
	code, _ = do(t, r, http.MethodPost, "/api/v1/explore/messages", map[string]string{"to_user_id": "me", "text": "Sure"}, handler.UserHeader, "u2")
	require.Equal(t, http.StatusOK, code)

	code, env := do(t, r, http.MethodGet, "/api/v1/explore/conversations/u2", nil)
	require.Equal(t, http.StatusOK, code)
	var msgs []model.Message
	require.NoError(t, json.Unmarshal(env.Data, &msgs))
	assert.Len(t, msgs, 2)

	code, env = do(t, r, http.MethodGet, "/api/v1/explore/conversations", nil)
	require.Equal(t, http.StatusOK, code)
	var inbox []model.ConversationSummary
	require.NoError(t, json.Unmarshal(env.Data, &inbox))
	require.Len(t, inbox, 1)
	assert.Equal(t, "u2", inbox[0].WithUserID)

	code, env = do(t, r, http.MethodPost, "/api/v1/explore/messages", map[string]string{"to_user_id": "u2", "text": ""})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, service.ErrEmptyMessage.Error(), env.Message)
}

func TestReset(t *testing.T) {
	r, store := setupRouter(t)
	_, err := store.ToggleFollow(context.Background(), "u4")
	require.NoError(t, err)

	code, _ := do(t, r, http.MethodPost, "/api/v1/explore/reset", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, seed.DefaultFollowing, store.Snapshot().Following)
}
