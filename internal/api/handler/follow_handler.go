package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/calora-explore/pkg/response"
)

// ToggleFollow 关注 / 取消关注
// @Summary 切换关注
// @Tags 关系链
// @Produce json
// @Param user_id path string true "用户ID"
// @Success 200 {object} response.Response{data=map[string]interface{}}
// @Failure 400 {object} response.Response
// @Router /api/v1/explore/follows/{user_id}/toggle [post]
func (h *Handler) ToggleFollow(c *gin.Context) {
	userID := c.Param("user_id")
	following, err := h.store.ToggleFollow(c.Request.Context(), userID)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, gin.H{"user_id": userID, "following": following})
}
