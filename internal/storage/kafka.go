package storage

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/segmentio/kafka-go"

	"mealhub/internal/domain"
)

type KafkaPublisher struct {
	Orders  *kafka.Writer
	Reviews *kafka.Writer
}

func NewKafkaPublisher(orders, reviews *kafka.Writer) *KafkaPublisher {
	return &KafkaPublisher{Orders: orders, Reviews: reviews}
}

func (p *KafkaPublisher) PublishOrderEvent(ctx context.Context, event domain.OrderEvent) error {
	payload, _ := json.Marshal(event)
	return p.Orders.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.OrderID),
		Value: payload,
	})
}

func (p *KafkaPublisher) PublishReviewEvent(ctx context.Context, event domain.ReviewEvent) error {
	payload, _ := json.Marshal(event)
	return p.Reviews.WriteMessages(ctx, kafka.Message{
		Key:   []byte(strconv.Itoa(event.RestaurantID)),
		Value: payload,
	})
}
