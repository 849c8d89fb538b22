package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d60-Lab/calora-explore/internal/model"
	"github.com/d60-Lab/calora-explore/internal/repository"
	"github.com/d60-Lab/calora-explore/internal/seed"
)

const testKey = "calora.explore.v1"

var testNow = time.Date(2026, 10, 19, 9, 30, 0, 0, time.UTC)

// countingRepo 记录 Save 次数，可注入失败
type countingRepo struct {
	repository.StateRepository
	saves   int
	saveErr error
}

func (r *countingRepo) Save(ctx context.Context, st *model.ExploreState) error {
	r.saves++
	if r.saveErr != nil {
		return r.saveErr
	}
	return r.StateRepository.Save(ctx, st)
}

type fixture struct {
	store *ExploreStore
	repo  *countingRepo
	blobs repository.BlobStore
}

func newFixture(t *testing.T, opts ...Option) *fixture {
	t.Helper()
	blobs := repository.NewMemoryBlobStore()
	return newFixtureWithBlobs(t, blobs, opts...)
}

func newFixtureWithBlobs(t *testing.T, blobs repository.BlobStore, opts ...Option) *fixture {
	t.Helper()
	repo := &countingRepo{StateRepository: repository.NewStateRepository(blobs, testKey)}
	seq := 0
	base := []Option{
		WithClock(func() time.Time { return testNow }),
		WithIDGenerator(func() string { seq++; return fmt.Sprintf("id-%d", seq) }),
		WithSeed(func() *model.ExploreState { return seed.GenerateAt(testNow) }),
	}
	store := NewExploreStore(context.Background(), repo, model.Account{ID: "me", Name: "Ana Costa", Email: "ana.costa@calora.app"}, append(base, opts...)...)
	return &fixture{store: store, repo: repo, blobs: blobs}
}

func (f *fixture) persisted(t *testing.T) *model.ExploreState {
	t.Helper()
	st, err := repository.NewStateRepository(f.blobs, testKey).Load(context.Background())
	require.NoError(t, err)
	return st
}

func TestNewExploreStore_FreshLoadUsesSeedAndSynthesizesCurrentUser(t *testing.T) {
	f := newFixture(t)
	st := f.store.Snapshot()

	assert.Equal(t, seed.DefaultFollowing, st.Following)
	assert.Len(t, st.Posts, len(seed.GenerateAt(testNow).Posts))

	me := st.User("me")
	require.NotNil(t, me)
	assert.Equal(t, "Ana Costa", me.Name)
	assert.Equal(t, "@ana.costa", me.Handle)
	assert.Equal(t, len(seed.DefaultFollowing), me.Following)
	assert.Equal(t, "me", st.Users[0].ID)
}

func TestNewExploreStore_MalformedStateFallsBackToSeed(t *testing.T) {
	blobs := repository.NewMemoryBlobStore()
	require.NoError(t, blobs.Put(context.Background(), testKey, []byte(`{"users": [oops`)))

	var f *fixture
	require.NotPanics(t, func() { f = newFixtureWithBlobs(t, blobs) })
	assert.Equal(t, seed.DefaultFollowing, f.store.Snapshot().Following)
	assert.Equal(t, seed.DefaultFollowing, f.persisted(t).Following)
}

func TestNewExploreStore_LoadsPersistedState(t *testing.T) {
	blobs := repository.NewMemoryBlobStore()
	stored := seed.GenerateAt(testNow)
	stored.Following = []string{"u4"}
	stored.Users = append(stored.Users, model.User{ID: "me", Name: "Stored Me"})
	require.NoError(t, repository.NewStateRepository(blobs, testKey).Save(context.Background(), stored))

	f := newFixtureWithBlobs(t, blobs)
	st := f.store.Snapshot()
	assert.Equal(t, []string{"u4"}, st.Following)
	assert.Equal(t, "Stored Me", st.User("me").Name)
	assert.Zero(t, f.repo.saves, "nothing changed, nothing to persist")
}

// flakyBlobStore 前 failures 次 Get 返回存储错误
type flakyBlobStore struct {
	repository.BlobStore
	failures int
}

func (s *flakyBlobStore) Get(ctx context.Context, key string) ([]byte, error) {
	if s.failures > 0 {
		s.failures--
		return nil, errors.New("i/o timeout")
	}
	return s.BlobStore.Get(ctx, key)
}

func TestNewExploreStore_ReadErrorKeepsPersistedState(t *testing.T) {
	ctx := context.Background()
	blobs := repository.NewMemoryBlobStore()
	f := newFixtureWithBlobs(t, blobs)
	_, err := f.store.CreatePost(ctx, "me", model.PostDraft{Title: "Tempo run", Summary: "8k"})
	require.NoError(t, err)
	want := len(f.persisted(t).Posts)

	g := newFixtureWithBlobs(t, &flakyBlobStore{BlobStore: blobs, failures: 1})
	assert.Len(t, g.store.Snapshot().Posts, len(seed.GenerateAt(testNow).Posts), "serves seed in memory")
	assert.Zero(t, g.repo.saves)

	_, err = g.store.ToggleLike(ctx, "p1", "me")
	require.NoError(t, err)
	assert.Len(t, f.persisted(t).Posts, want, "stored state is not overwritten")
}

func TestNewExploreStore_SeededAccountDoesNotFollowSelf(t *testing.T) {
	ctx := context.Background()
	blobs := repository.NewMemoryBlobStore()
	repo := repository.NewStateRepository(blobs, testKey)
	store := NewExploreStore(ctx, repo, model.Account{ID: "u1", Name: "Maya Chen"},
		WithClock(func() time.Time { return testNow }),
		WithSeed(func() *model.ExploreState { return seed.GenerateAt(testNow) }))

	st := store.Snapshot()
	assert.Equal(t, []string{"u3"}, st.Following)
	assert.Equal(t, 1, st.User("u1").Following)

	stored, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"u3"}, stored.Following)

	following, err := store.ToggleFollow(ctx, "u3")
	require.NoError(t, err)
	assert.False(t, following)
	assert.Empty(t, store.Snapshot().Following)
}

func TestToggleFollow_FreshLoadPersistsDefaultsPlusTarget(t *testing.T) {
	f := newFixture(t)

	following, err := f.store.ToggleFollow(context.Background(), "u2")
	require.NoError(t, err)
	assert.True(t, following)

	want := append(append([]string(nil), seed.DefaultFollowing...), "u2")
	assert.Equal(t, want, f.store.Snapshot().Following)
	assert.Equal(t, want, f.persisted(t).Following)
}

func TestToggleFollow_RoundTripAdjustsCounts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	before := f.store.Snapshot().User("u2").Followers

	_, err := f.store.ToggleFollow(ctx, "u2")
	require.NoError(t, err)
	assert.Equal(t, before+1, f.store.Snapshot().User("u2").Followers)
	assert.Equal(t, 3, f.store.CurrentUser().Following)

	following, err := f.store.ToggleFollow(ctx, "u2")
	require.NoError(t, err)
	assert.False(t, following)
	assert.Equal(t, before, f.store.Snapshot().User("u2").Followers)
	assert.Equal(t, seed.DefaultFollowing, f.store.Snapshot().Following)
}

func TestToggleFollow_SelfIsRejected(t *testing.T) {
	f := newFixture(t)
	saves := f.repo.saves

	_, err := f.store.ToggleFollow(context.Background(), "me")
	assert.ErrorIs(t, err, ErrFollowSelf)
	assert.True(t, IsValidationError(err))
	assert.Equal(t, saves, f.repo.saves)
	assert.NotContains(t, f.store.Snapshot().Following, "me")
}

func TestToggleFollow_UnknownUserIsNoop(t *testing.T) {
	f := newFixture(t)
	saves := f.repo.saves

	following, err := f.store.ToggleFollow(context.Background(), "ghost")
	assert.NoError(t, err)
	assert.False(t, following)
	assert.Equal(t, saves, f.repo.saves)
}

func TestToggleLike_TwiceRestoresLikeSet(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	for _, post := range f.store.Snapshot().Posts {
		for _, user := range []string{"me", "u1", "u2"} {
			before := f.store.Snapshot().Post(post.ID).Likes
			_, err := f.store.ToggleLike(ctx, post.ID, user)
			require.NoError(t, err)
			_, err = f.store.ToggleLike(ctx, post.ID, user)
			require.NoError(t, err)
			assert.ElementsMatch(t, before, f.store.Snapshot().Post(post.ID).Likes, "post %s user %s", post.ID, user)
		}
	}
}

func TestToggleLike_PersistsAndReturnsCopy(t *testing.T) {
	f := newFixture(t)
	post, err := f.store.ToggleLike(context.Background(), "p4", "me")
	require.NoError(t, err)
	require.NotNil(t, post)
	assert.Contains(t, post.Likes, "me")
	assert.Contains(t, f.persisted(t).Post("p4").Likes, "me")

	post.Likes = nil
	assert.Contains(t, f.store.Snapshot().Post("p4").Likes, "me")
}

func TestToggleLike_MissingReferencesAreNoops(t *testing.T) {
	f := newFixture(t)
	saves := f.repo.saves

	post, err := f.store.ToggleLike(context.Background(), "nope", "me")
	assert.NoError(t, err)
	assert.Nil(t, post)

	post, err = f.store.ToggleLike(context.Background(), "p1", "ghost")
	assert.NoError(t, err)
	assert.Nil(t, post)
	assert.Equal(t, saves, f.repo.saves)
}

func TestToggleReaction_SwitchKeepsSingleReaction(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	pairs := [][2]string{{"🔥", "💪"}, {"😋", "🔥"}, {"👏", "❤️"}}
	for _, pair := range pairs {
		_, err := f.store.ToggleReaction(ctx, "p2", "me", pair[0])
		require.NoError(t, err)
		post, err := f.store.ToggleReaction(ctx, "p2", "me", pair[1])
		require.NoError(t, err)

		assert.Contains(t, post.Reactions[pair[1]], "me")
		assert.NotContains(t, post.Reactions[pair[0]], "me")
		held := 0
		for _, ids := range post.Reactions {
			for _, id := range ids {
				if id == "me" {
					held++
				}
			}
		}
		assert.Equal(t, 1, held)
	}
}

func TestToggleReaction_SameEmojiClears(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.store.ToggleReaction(ctx, "p4", "me", "🔥")
	require.NoError(t, err)
	post, err := f.store.ToggleReaction(ctx, "p4", "me", "🔥")
	require.NoError(t, err)
	assert.Equal(t, "", post.ReactionOf("me"))
}

func TestToggleReaction_EmptyEmojiRejected(t *testing.T) {
	f := newFixture(t)
	_, err := f.store.ToggleReaction(context.Background(), "p1", "me", "  ")
	assert.ErrorIs(t, err, ErrEmptyEmoji)
}

func TestAddComment(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	before := len(f.store.Snapshot().Post("p1").Comments)

	_, err := f.store.AddComment(ctx, "p1", "me", " \t\n")
	assert.ErrorIs(t, err, ErrEmptyComment)
	assert.Len(t, f.store.Snapshot().Post("p1").Comments, before)

	c, err := f.store.AddComment(ctx, "p1", "me", "  Nice pace!  ")
	require.NoError(t, err)
	assert.Equal(t, model.Comment{ID: "id-1", UserID: "me", Text: "Nice pace!", CreatedAt: testNow}, *c)

	comments := f.persisted(t).Post("p1").Comments
	require.Len(t, comments, before+1)
	assert.Equal(t, "Nice pace!", comments[len(comments)-1].Text)
}

func TestCreatePost_Validation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	before := len(f.store.Snapshot().Posts)

	_, err := f.store.CreatePost(ctx, "me", model.PostDraft{Title: "", Summary: "x"})
	assert.ErrorIs(t, err, ErrEmptyTitle)
	_, err = f.store.CreatePost(ctx, "me", model.PostDraft{Title: "x", Summary: "   "})
	assert.ErrorIs(t, err, ErrEmptySummary)

	assert.Len(t, f.store.Snapshot().Posts, before)
	assert.Len(t, f.persisted(t).Posts, before)
}

func TestCreatePost_MealDefaultsUnparseableNumbers(t *testing.T) {
	f := newFixture(t)
	post, err := f.store.CreatePost(context.Background(), "me", model.PostDraft{
		Type: "meal", Title: " Oats ", Summary: "Overnight oats", Calories: "420", Protein: "abc", Carbs: "55.5", Fats: "-3", Duration: "99",
	})
	require.NoError(t, err)
	assert.Equal(t, "id-1", post.ID)
	assert.Equal(t, model.PostTypeMeal, post.Type)
	assert.Equal(t, "Oats", post.Title)
	assert.Equal(t, 420.0, post.Calories)
	assert.Zero(t, post.Protein)
	assert.Equal(t, 55.5, post.Carbs)
	assert.Zero(t, post.Fats)
	assert.Zero(t, post.Duration)
	assert.Equal(t, testNow, post.CreatedAt)

	st := f.store.Snapshot()
	assert.Equal(t, "id-1", st.Posts[0].ID, "new posts are prepended")
	assert.Equal(t, "id-1", Feed(st)[0].ID)
}

func TestCreatePost_ActivityIsDefaultType(t *testing.T) {
	f := newFixture(t)
	post, err := f.store.CreatePost(context.Background(), "me", model.PostDraft{Type: "yoga", Title: "Flow", Summary: "Evening", Duration: "45", Protein: "10"})
	require.NoError(t, err)
	assert.Equal(t, model.PostTypeActivity, post.Type)
	assert.Equal(t, 45.0, post.Duration)
	assert.Zero(t, post.Protein)
}

func TestCreatePost_UnknownAuthorIsNoop(t *testing.T) {
	f := newFixture(t)
	post, err := f.store.CreatePost(context.Background(), "ghost", model.PostDraft{Title: "t", Summary: "s"})
	assert.NoError(t, err)
	assert.Nil(t, post)
}

func TestSendMessage_Symmetric(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.store.SendMessage(ctx, "me", "u2", "hey")
	require.NoError(t, err)
	_, err = f.store.SendMessage(ctx, "u2", "me", "hi back")
	require.NoError(t, err)

	st := f.store.Snapshot()
	thread := st.Messages[model.ConversationKey("me", "u2")]
	require.Len(t, thread, 2)
	assert.Equal(t, Conversation(st, "me", "u2"), Conversation(st, "u2", "me"))
	assert.Len(t, f.persisted(t).Messages[model.ConversationKey("u2", "me")], 2)
}

func TestSendMessage_Rejections(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.store.SendMessage(ctx, "me", "u2", " ")
	assert.ErrorIs(t, err, ErrEmptyMessage)

	m, err := f.store.SendMessage(ctx, "me", "ghost", "hello")
	assert.NoError(t, err)
	assert.Nil(t, m)
	assert.NotContains(t, f.store.Snapshot().Messages, model.ConversationKey("me", "ghost"))
}

func TestSaveFailureKeepsMutation(t *testing.T) {
	f := newFixture(t)
	f.repo.saveErr = errors.New("disk full")

	_, err := f.store.ToggleFollow(context.Background(), "u2")
	assert.NoError(t, err)
	assert.Contains(t, f.store.Snapshot().Following, "u2")
}

func TestReset(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.store.ToggleFollow(ctx, "u2")
	require.NoError(t, err)

	f.store.Reset(ctx)
	assert.Equal(t, seed.DefaultFollowing, f.store.Snapshot().Following)
	assert.Equal(t, seed.DefaultFollowing, f.persisted(t).Following)
	assert.NotNil(t, f.store.Snapshot().User("me"))
}
