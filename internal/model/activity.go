package model

import "time"

// ActivityKind 动态变更事件类型
type ActivityKind string

const (
	ActivityFollow   ActivityKind = "follow"
	ActivityUnfollow ActivityKind = "unfollow"
	ActivityLike     ActivityKind = "like"
	ActivityReaction ActivityKind = "reaction"
	ActivityComment  ActivityKind = "comment"
	ActivityPost     ActivityKind = "post"
	ActivityMessage  ActivityKind = "message"
)

// ActivityEvent 每次成功变更后广播的事件
type ActivityEvent struct {
	Kind         ActivityKind `json:"kind"`
	ActorID      string       `json:"actorId"`
	TargetUserID string       `json:"targetUserId,omitempty"`
	PostID       string       `json:"postId,omitempty"`
	Text         string       `json:"text,omitempty"`
	At           time.Time    `json:"at"`
}
