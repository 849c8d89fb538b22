package service

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/d60-Lab/calora-explore/internal/model"
	"github.com/d60-Lab/calora-explore/pkg/logger"
)

const defaultInboxCapacity = 100

// NotificationInbox 订阅 ActivityEvent 并扇出到被互动用户的收件箱（最新在前，有上限）
type NotificationInbox struct {
	sub      message.Subscriber
	capacity int

	mu    sync.RWMutex
	inbox map[string][]model.Notification
}

func NewNotificationInbox(sub message.Subscriber, capacity int) *NotificationInbox {
	if capacity <= 0 {
		capacity = defaultInboxCapacity
	}
	return &NotificationInbox{sub: sub, capacity: capacity, inbox: make(map[string][]model.Notification)}
}

// Start 订阅 ActivityTopic；返回停止函数，等待消费协程退出
func (n *NotificationInbox) Start(ctx context.Context) (func(context.Context) error, error) {
	ctx, cancel := context.WithCancel(ctx)
	messages, err := n.sub.Subscribe(ctx, ActivityTopic)
	if err != nil {
		cancel()
		return nil, err
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for msg := range messages {
			n.handle(msg)
		}
	}()

	return func(stopCtx context.Context) error {
		cancel()
		select {
		case <-done:
			return nil
		case <-stopCtx.Done():
			return stopCtx.Err()
		}
	}, nil
}

func (n *NotificationInbox) handle(msg *message.Message) {
	defer msg.Ack()
	var ev model.ActivityEvent
	if err := json.Unmarshal(msg.Payload, &ev); err != nil {
		logger.Warn("drop malformed activity event", zap.String("uuid", msg.UUID), zap.Error(err))
		return
	}
	n.Deliver(ev)
}

// Deliver 写入目标用户的收件箱；自己对自己的互动与无目标事件不产生通知
func (n *NotificationInbox) Deliver(ev model.ActivityEvent) bool {
	if ev.TargetUserID == "" || ev.TargetUserID == ev.ActorID || ev.Kind == model.ActivityUnfollow {
		return false
	}
	item := model.Notification{
		ID:        uuid.New().String(),
		UserID:    ev.TargetUserID,
		Kind:      ev.Kind,
		ActorID:   ev.ActorID,
		PostID:    ev.PostID,
		Text:      ev.Text,
		CreatedAt: ev.At,
	}

	n.mu.Lock()
	defer n.mu.Unlock()
	list := append([]model.Notification{item}, n.inbox[ev.TargetUserID]...)
	if len(list) > n.capacity {
		list = list[:n.capacity]
	}
	n.inbox[ev.TargetUserID] = list
	return true
}

// Notifications 最新的 limit 条；limit <= 0 时返回全部
func (n *NotificationInbox) Notifications(userID string, limit int) []model.Notification {
	n.mu.RLock()
	defer n.mu.RUnlock()
	list := n.inbox[userID]
	if limit > 0 && len(list) > limit {
		list = list[:limit]
	}
	out := make([]model.Notification, len(list))
	copy(out, list)
	return out
}
