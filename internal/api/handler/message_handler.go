package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/calora-explore/internal/service"
	"github.com/d60-Lab/calora-explore/pkg/response"
)

type sendMessageRequest struct {
	ToUserID string `json:"to_user_id" binding:"required"`
	Text     string `json:"text"`
}

// Conversations 当前用户的会话列表
// @Summary 会话列表
// @Tags 私信
// @Produce json
// @Success 200 {object} response.Response{data=[]model.ConversationSummary}
// @Router /api/v1/explore/conversations [get]
func (h *Handler) Conversations(c *gin.Context) {
	response.Success(c, service.Inbox(h.store.Snapshot(), h.actingUser(c)))
}

// Conversation 与某用户的消息记录
// @Summary 会话消息
// @Tags 私信
// @Produce json
// @Param user_id path string true "对方用户ID"
// @Success 200 {object} response.Response{data=[]model.Message}
// @Router /api/v1/explore/conversations/{user_id} [get]
func (h *Handler) Conversation(c *gin.Context) {
	response.Success(c, service.Conversation(h.store.Snapshot(), h.actingUser(c), c.Param("user_id")))
}

// SendMessage 发送私信
// @Summary 发送私信
// @Tags 私信
// @Accept json
// @Produce json
// @Param request body sendMessageRequest true "私信"
// @Success 200 {object} response.Response{data=model.Message}
// @Failure 400 {object} response.Response
// @Router /api/v1/explore/messages [post]
func (h *Handler) SendMessage(c *gin.Context) {
	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	msg, err := h.store.SendMessage(c.Request.Context(), h.actingUser(c), req.ToUserID, req.Text)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, msg)
}
