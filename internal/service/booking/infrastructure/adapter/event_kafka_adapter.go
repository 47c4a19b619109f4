package adapter

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/segmentio/kafka-go"

	"lodge/internal/pkg/mq"
	"lodge/internal/service/booking/domain"
)

// EventKafkaAdapter 实现了 domain.EventPublisher 接口。
// 以预订 ID 作为消息 key，同一条预订的事件保持有序。
type EventKafkaAdapter struct {
	writer *kafka.Writer
}

func NewEventKafkaAdapter(writer *kafka.Writer) *EventKafkaAdapter {
	return &EventKafkaAdapter{writer: writer}
}

// PublishReservationEvent 把预订事件发到消息总线
func (a *EventKafkaAdapter) PublishReservationEvent(ctx context.Context, event *domain.ReservationEvent) error {
	eventBytes, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal reservation event: %w", err)
	}
	// mq.ProduceMessage 会自动注入追踪上下文
	return mq.ProduceMessage(ctx, a.writer, []byte(event.ReservationID.String()), eventBytes)
}

// Close 关闭底层的 Kafka writer
func (a *EventKafkaAdapter) Close() error {
	return a.writer.Close()
}
