package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/calora-explore/internal/service"
	"github.com/d60-Lab/calora-explore/pkg/response"
)

// UserHeader 覆盖当前操作用户（单标签页调试用）
const UserHeader = "X-User-ID"

// Handler Explore HTTP 入口
type Handler struct {
	store         *service.ExploreStore
	notifications *service.NotificationInbox
}

func New(store *service.ExploreStore, notifications *service.NotificationInbox) *Handler {
	return &Handler{store: store, notifications: notifications}
}

// actingUser 请求头未指定时为会话用户
func (h *Handler) actingUser(c *gin.Context) string {
	if id := c.GetHeader(UserHeader); id != "" {
		return id
	}
	return h.store.CurrentUserID()
}

// fail 输入错误返回 400 与提示，其余为 500
func fail(c *gin.Context, err error) {
	if service.IsValidationError(err) {
		response.BadRequest(c, err.Error())
		return
	}
	response.InternalError(c, err)
}

func queryInt(c *gin.Context, key string, def int) int {
	v, err := strconv.Atoi(c.DefaultQuery(key, strconv.Itoa(def)))
	if err != nil || v < 0 {
		return def
	}
	return v
}
