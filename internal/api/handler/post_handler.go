package handler

import (
	"bytes"
	"encoding/json"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/calora-explore/internal/model"
	"github.com/d60-Lab/calora-explore/pkg/response"
)

// formValue 表单数值字段：接受字符串或数字，原样交给服务层解析
type formValue string

func (v *formValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*v = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = formValue(s)
		return nil
	}
	*v = formValue(data)
	return nil
}

type createPostRequest struct {
	Type     string    `json:"type"`
	Title    string    `json:"title"`
	Summary  string    `json:"summary"`
	Calories formValue `json:"calories"`
	Protein  formValue `json:"protein"`
	Carbs    formValue `json:"carbs"`
	Fats     formValue `json:"fats"`
	Duration formValue `json:"duration"`
}

func (r createPostRequest) draft() model.PostDraft {
	return model.PostDraft{
		Type:     r.Type,
		Title:    r.Title,
		Summary:  r.Summary,
		Calories: string(r.Calories),
		Protein:  string(r.Protein),
		Carbs:    string(r.Carbs),
		Fats:     string(r.Fats),
		Duration: string(r.Duration),
	}
}

type reactionRequest struct {
	Emoji string `json:"emoji" binding:"required"`
}

type commentRequest struct {
	Text string `json:"text"`
}

// CreatePost 发布动态
// @Summary 发布动态
// @Tags 动态
// @Accept json
// @Produce json
// @Param request body createPostRequest true "动态内容"
// @Success 200 {object} response.Response{data=model.Post}
// @Failure 400 {object} response.Response
// @Router /api/v1/explore/posts [post]
func (h *Handler) CreatePost(c *gin.Context) {
	var req createPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	post, err := h.store.CreatePost(c.Request.Context(), h.actingUser(c), req.draft())
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, post)
}

// ToggleLike 点赞 / 取消点赞
// @Summary 切换点赞
// @Tags 动态
// @Produce json
// @Param post_id path string true "动态ID"
// @Success 200 {object} response.Response{data=model.Post}
// @Router /api/v1/explore/posts/{post_id}/like [post]
func (h *Handler) ToggleLike(c *gin.Context) {
	post, err := h.store.ToggleLike(c.Request.Context(), c.Param("post_id"), h.actingUser(c))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, post)
}

// ToggleReaction 切换表情，同一用户只保留一个
// @Summary 切换表情
// @Tags 动态
// @Accept json
// @Produce json
// @Param post_id path string true "动态ID"
// @Param request body reactionRequest true "表情"
// @Success 200 {object} response.Response{data=model.Post}
// @Failure 400 {object} response.Response
// @Router /api/v1/explore/posts/{post_id}/reactions [post]
func (h *Handler) ToggleReaction(c *gin.Context) {
	var req reactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	post, err := h.store.ToggleReaction(c.Request.Context(), c.Param("post_id"), h.actingUser(c), req.Emoji)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, post)
}

// AddComment 发表评论
// @Summary 发表评论
// @Tags 动态
// @Accept json
// @Produce json
// @Param post_id path string true "动态ID"
// @Param request body commentRequest true "评论内容"
// @Success 200 {object} response.Response{data=model.Comment}
// @Failure 400 {object} response.Response
// @Router /api/v1/explore/posts/{post_id}/comments [post]
func (h *Handler) AddComment(c *gin.Context) {
	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	comment, err := h.store.AddComment(c.Request.Context(), c.Param("post_id"), h.actingUser(c), req.Text)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, comment)
}
