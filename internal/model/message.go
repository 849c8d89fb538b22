package model

import (
	"sort"
	"strings"
	"time"
)

// ConversationDelimiter 会话 key 中两个用户 ID 的分隔符
const ConversationDelimiter = "__"

// Message 私信，只追加
type Message struct {
	ID        string    `json:"id" validate:"required"`
	From      string    `json:"from" validate:"required"`
	To        string    `json:"to" validate:"required"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

// ConversationKey 两个参与者排序后拼接，与收发方向无关
func ConversationKey(a, b string) string {
	ids := []string{a, b}
	sort.Strings(ids)
	return strings.Join(ids, ConversationDelimiter)
}

// ConversationSummary 会话列表项
type ConversationSummary struct {
	Key         string  `json:"key"`
	WithUserID  string  `json:"withUserId"`
	LastMessage Message `json:"lastMessage"`
	Count       int     `json:"count"`
}
