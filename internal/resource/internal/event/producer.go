package event

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ecodeclub/mq-api"
)

type Producer interface {
	Produce(ctx context.Context, evt ResourceChangeEvent) error
}

type ResourceChangeProducer struct {
	producer mq.Producer
}

func NewResourceChangeProducer(q mq.MQ) (*ResourceChangeProducer, error) {
	p, err := q.Producer(ResourceChangeEvent{}.Topic())
	if err != nil {
		return nil, err
	}
	return &ResourceChangeProducer{producer: p}, nil
}

func (p *ResourceChangeProducer) Produce(ctx context.Context, evt ResourceChangeEvent) error {
	data, err := json.Marshal(&evt)
	if err != nil {
		return fmt.Errorf("序列化失败: %w", err)
	}
	_, err = p.producer.Produce(ctx, &mq.Message{Value: data})
	if err != nil {
		return fmt.Errorf("发送资源变更消息失败: %w", err)
	}
	return nil
}
