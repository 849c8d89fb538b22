package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/calora-explore/internal/service"
	"github.com/d60-Lab/calora-explore/pkg/response"
)

// State 完整 Explore 状态
// @Summary 获取 Explore 状态
// @Tags Explore
// @Produce json
// @Success 200 {object} response.Response{data=model.ExploreState}
// @Router /api/v1/explore/state [get]
func (h *Handler) State(c *gin.Context) {
	response.Success(c, h.store.Snapshot())
}

// Me 当前会话用户
// @Summary 当前用户
// @Tags Explore
// @Produce json
// @Success 200 {object} response.Response{data=model.User}
// @Router /api/v1/explore/me [get]
func (h *Handler) Me(c *gin.Context) {
	response.Success(c, h.store.CurrentUser())
}

// Feed 时间线
// @Summary 动态时间线（倒序）
// @Tags Explore
// @Produce json
// @Param scope query string false "all 或 following" default(all)
// @Success 200 {object} response.Response{data=[]model.Post}
// @Router /api/v1/explore/feed [get]
func (h *Handler) Feed(c *gin.Context) {
	st := h.store.Snapshot()
	if c.DefaultQuery("scope", "all") == "following" {
		response.Success(c, service.FollowingFeed(st, h.actingUser(c)))
		return
	}
	response.Success(c, service.Feed(st))
}

// Trending 热门动态
// @Summary 热门动态
// @Tags Explore
// @Produce json
// @Param limit query int false "条数" default(3)
// @Success 200 {object} response.Response{data=[]model.Post}
// @Router /api/v1/explore/trending [get]
func (h *Handler) Trending(c *gin.Context) {
	limit := queryInt(c, "limit", service.DefaultTrendingLimit)
	response.Success(c, service.Trending(h.store.Snapshot(), limit))
}

// PostCounts 每个用户的动态数
// @Summary 用户动态数
// @Tags Explore
// @Produce json
// @Success 200 {object} response.Response{data=map[string]int}
// @Router /api/v1/explore/post-counts [get]
func (h *Handler) PostCounts(c *gin.Context) {
	response.Success(c, service.PostCounts(h.store.Snapshot()))
}

// Suggestions 推荐关注
// @Summary 推荐关注
// @Tags 关系链
// @Produce json
// @Param limit query int false "条数" default(5)
// @Success 200 {object} response.Response{data=[]model.User}
// @Router /api/v1/explore/suggestions [get]
func (h *Handler) Suggestions(c *gin.Context) {
	limit := queryInt(c, "limit", 5)
	response.Success(c, service.Suggestions(h.store.Snapshot(), h.actingUser(c), limit))
}

// Notifications 当前操作用户的通知，新的在前
// @Summary 通知列表
// @Tags Explore
// @Produce json
// @Param limit query int false "条数" default(20)
// @Success 200 {object} response.Response{data=[]model.Notification}
// @Router /api/v1/explore/notifications [get]
func (h *Handler) Notifications(c *gin.Context) {
	if h.notifications == nil {
		response.Success(c, []struct{}{})
		return
	}
	response.Success(c, h.notifications.Notifications(h.actingUser(c), queryInt(c, "limit", 20)))
}

// Reset 清空并恢复种子数据
// @Summary 重置 Explore 数据
// @Tags Explore
// @Produce json
// @Success 200 {object} response.Response
// @Router /api/v1/explore/reset [post]
func (h *Handler) Reset(c *gin.Context) {
	h.store.Reset(c.Request.Context())
	response.Success(c, nil)
}
