package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"sort"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/d60-Lab/calora-explore/config"
	"github.com/d60-Lab/calora-explore/internal/model"
	"github.com/d60-Lab/calora-explore/internal/repository"
	"github.com/d60-Lab/calora-explore/internal/service"
	"github.com/d60-Lab/calora-explore/pkg/logger"
)

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

func pct(vs []time.Duration, p float64) time.Duration {
	if len(vs) == 0 {
		return 0
	}
	xs := append([]time.Duration(nil), vs...)
	sort.Slice(xs, func(i, j int) bool { return xs[i] < xs[j] })
	k := int(math.Ceil(p*float64(len(xs)))) - 1
	if k < 0 {
		k = 0
	}
	if k >= len(xs) {
		k = len(xs) - 1
	}
	return xs[k]
}

func envInt(key string, def int) int {
	if s := os.Getenv(key); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v > 0 {
			return v
		}
	}
	return def
}

// 每次变更都整体写回存储：测量不同存储驱动下单次变更 + 持久化的耗时，
// 以及状态增长（评论、私信不断追加）对写入耗时的影响。
func main() {
	cfg := must(config.Load())
	if err := logger.Init(cfg.Log.Level, cfg.Log.Format); err != nil {
		panic(err)
	}
	defer logger.Sync()

	ctx := context.Background()
	blobs, closeBlobs := func() (repository.BlobStore, func() error) {
		b, c, err := repository.OpenBlobStore(ctx, cfg)
		if err != nil {
			panic(err)
		}
		return b, c
	}()
	defer closeBlobs()

	// 独立 key，不覆盖正在使用的状态
	repo := repository.NewStateRepository(blobs, cfg.Storage.Key+".bench")
	_ = repo.Clear(ctx)
	defer func() { _ = repo.Clear(ctx) }()

	N := envInt("N", 2000)
	store := service.NewExploreStore(ctx, repo, model.Account{ID: "bench", Name: "Bench Runner"})
	posts := store.Snapshot().Posts

	ops := []struct {
		name string
		run  func(i int) error
	}{
		{"toggleLike", func(i int) error {
			_, err := store.ToggleLike(ctx, posts[i%len(posts)].ID, "bench")
			return err
		}},
		{"toggleReaction", func(i int) error {
			emojis := []string{"🔥", "💪", "😋"}
			_, err := store.ToggleReaction(ctx, posts[i%len(posts)].ID, "bench", emojis[i%len(emojis)])
			return err
		}},
		{"toggleFollow", func(i int) error {
			_, err := store.ToggleFollow(ctx, fmt.Sprintf("u%d", i%5+1))
			return err
		}},
		{"addComment", func(i int) error {
			_, err := store.AddComment(ctx, posts[i%len(posts)].ID, "bench", fmt.Sprintf("comment %d", i))
			return err
		}},
		{"sendMessage", func(i int) error {
			_, err := store.SendMessage(ctx, "bench", fmt.Sprintf("u%d", i%5+1), fmt.Sprintf("message %d", i))
			return err
		}},
		{"createPost", func(i int) error {
			_, err := store.CreatePost(ctx, "bench", model.PostDraft{Title: fmt.Sprintf("post %d", i), Summary: "bench", Calories: strconv.Itoa(i)})
			return err
		}},
	}

	fmt.Printf("driver=%s N=%d\n", cfg.Storage.Driver, N)
	for _, op := range ops {
		recs := make([]time.Duration, 0, N)
		t0 := time.Now()
		for i := 0; i < N; i++ {
			st := time.Now()
			if err := op.run(i); err != nil {
				logger.Warn("op failed", zap.String("op", op.name), zap.Error(err))
				continue
			}
			recs = append(recs, time.Since(st))
		}
		total := time.Since(t0)
		fmt.Printf("%-15s total: %v, per op: %v, p50: %v, p95: %v, p99: %v\n",
			op.name, total, total/time.Duration(N), pct(recs, 0.50), pct(recs, 0.95), pct(recs, 0.99))
	}

	st := store.Snapshot()
	data := must(blobs.Get(ctx, cfg.Storage.Key+".bench"))
	fmt.Printf("final state: users=%d posts=%d threads=%d blob=%dB\n", len(st.Users), len(st.Posts), len(st.Messages), len(data))

	q0 := time.Now()
	_ = service.Trending(st, service.DefaultTrendingLimit)
	fmt.Printf("trending over %d posts: %v\n", len(st.Posts), time.Since(q0))
	q1 := time.Now()
	_ = service.Feed(st)
	fmt.Printf("feed over %d posts: %v\n", len(st.Posts), time.Since(q1))
}
