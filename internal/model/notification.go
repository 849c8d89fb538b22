package model

import "time"

// Notification 通知收件箱条目（按 user_id 切分）
type Notification struct {
	ID        string       `json:"id"`
	UserID    string       `json:"userId"`
	Kind      ActivityKind `json:"kind"`
	ActorID   string       `json:"actorId"`
	PostID    string       `json:"postId,omitempty"`
	Text      string       `json:"text,omitempty"`
	CreatedAt time.Time    `json:"createdAt"`
}
