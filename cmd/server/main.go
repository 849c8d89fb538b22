package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/d60-Lab/calora-explore/config"
	"github.com/d60-Lab/calora-explore/internal/api/handler"
	"github.com/d60-Lab/calora-explore/internal/api/router"
	"github.com/d60-Lab/calora-explore/internal/model"
	"github.com/d60-Lab/calora-explore/internal/repository"
	"github.com/d60-Lab/calora-explore/internal/service"
	"github.com/d60-Lab/calora-explore/pkg/logger"
	"github.com/d60-Lab/calora-explore/pkg/tracing"
)

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

func main() {
	cfg := must(config.Load())
	if err := logger.Init(cfg.Log.Level, cfg.Log.Format); err != nil {
		panic(err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Sentry.DSN != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: cfg.Sentry.DSN, Environment: cfg.Sentry.Environment}); err != nil {
			logger.Warn("sentry init failed", zap.Error(err))
		}
		defer sentry.Flush(2 * time.Second)
	}

	shutdownTracing, err := tracing.Init(ctx, cfg.Tracing)
	if err != nil {
		logger.Fatal("init tracing", zap.Error(err))
	}

	blobs, closeBlobs, err := repository.OpenBlobStore(ctx, cfg)
	if err != nil {
		logger.Fatal("open storage", zap.String("driver", cfg.Storage.Driver), zap.Error(err))
	}
	defer closeBlobs()

	account := currentAccount(ctx, cfg, repository.NewSessionRepository(blobs, cfg.Storage.SessionKey))

	pubsub := gochannel.NewGoChannel(gochannel.Config{OutputChannelBuffer: 256}, logger.NewWatermillAdapter(logger.L()))
	defer pubsub.Close()

	inbox := service.NewNotificationInbox(pubsub, 0)
	stopInbox, err := inbox.Start(ctx)
	if err != nil {
		logger.Fatal("start notification inbox", zap.Error(err))
	}

	store := service.NewExploreStore(ctx, repository.NewStateRepository(blobs, cfg.Storage.Key), account,
		service.WithPublisher(service.NewActivityPublisher(pubsub)))

	gin.SetMode(cfg.Server.Mode)
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router.Setup(cfg, handler.New(store, inbox)),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Info("explore server listening", zap.String("addr", srv.Addr), zap.String("storage", cfg.Storage.Driver), zap.String("user", account.ID))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("listen", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}
	if err := stopInbox(shutdownCtx); err != nil {
		logger.Warn("notification inbox shutdown", zap.Error(err))
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		logger.Warn("tracing shutdown", zap.Error(err))
	}
}

// currentAccount 会话存储中没有账户时使用配置里的兜底账户
func currentAccount(ctx context.Context, cfg *config.Config, sessions repository.SessionRepository) model.Account {
	acc, err := sessions.Current(ctx)
	if err != nil {
		logger.Info("no session account, using fallback", zap.String("id", cfg.Session.FallbackID), zap.Error(err))
		return model.Account{ID: cfg.Session.FallbackID, Name: cfg.Session.FallbackName, Email: cfg.Session.FallbackEmail}
	}
	return *acc
}
