package router

import (
	"net/http"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/d60-Lab/calora-explore/config"
	_ "github.com/d60-Lab/calora-explore/docs"
	"github.com/d60-Lab/calora-explore/internal/api/handler"
	"github.com/d60-Lab/calora-explore/internal/api/middleware"
)

// Setup 注册中间件与路由
func Setup(cfg *config.Config, h *handler.Handler) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Logger(), middleware.Recovery())
	if cfg.Sentry.DSN != "" {
		r.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}
	if cfg.Tracing.Enabled {
		r.Use(otelgin.Middleware(cfg.Tracing.ServiceName))
	}
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	r.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	limit := middleware.RateLimit(cfg.RateLimit.RPS, cfg.RateLimit.Burst)

	v1 := r.Group("/api/v1/explore")
	{
		v1.GET("/state", h.State)
		v1.GET("/me", h.Me)
		v1.GET("/feed", h.Feed)
		v1.GET("/trending", h.Trending)
		v1.GET("/post-counts", h.PostCounts)
		v1.GET("/suggestions", h.Suggestions)
		v1.GET("/notifications", h.Notifications)
		v1.GET("/conversations", h.Conversations)
		v1.GET("/conversations/:user_id", h.Conversation)

		w := v1.Group("", limit)
		w.POST("/follows/:user_id/toggle", h.ToggleFollow)
		w.POST("/posts", h.CreatePost)
		w.POST("/posts/:post_id/like", h.ToggleLike)
		w.POST("/posts/:post_id/reactions", h.ToggleReaction)
		w.POST("/posts/:post_id/comments", h.AddComment)
		w.POST("/messages", h.SendMessage)
		w.POST("/reset", h.Reset)
	}
	return r
}
