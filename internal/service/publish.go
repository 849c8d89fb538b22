package service

import (
	"context"
	"encoding/json"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/d60-Lab/calora-explore/internal/model"
)

// ActivityTopic Explore 变更事件的 topic
const ActivityTopic = "explore.activity"

// ActivityPublisher 把 ActivityEvent 以 JSON 发布到 watermill
type ActivityPublisher struct {
	pub   message.Publisher
	topic string
}

func NewActivityPublisher(pub message.Publisher) *ActivityPublisher {
	return &ActivityPublisher{pub: pub, topic: ActivityTopic}
}

// Publish nil 接收者时静默忽略
func (p *ActivityPublisher) Publish(ctx context.Context, ev model.ActivityEvent) error {
	if p == nil || p.pub == nil {
		return nil
	}
	payload, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.Metadata.Set("kind", string(ev.Kind))
	msg.SetContext(ctx)
	return p.pub.Publish(p.topic, msg)
}
