package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"mealhub/internal/domain"
)

// eventEnvelope covers the fields of both order and review events; Type
// decides which ones matter.
type eventEnvelope struct {
	Type         string    `json:"type"`
	RestaurantID int       `json:"restaurant_id"`
	NewAverage   float64   `json:"new_average"`
	Timestamp    time.Time `json:"timestamp"`
}

// Consumer keeps the Redis analytics keys in sync with the order and
// review topics. Malformed messages are logged and skipped; the loop
// only stops when the context does.
type Consumer struct {
	Reader    *kafka.Reader
	Analytics AnalyticsStore
	Log       *zap.Logger
}

func NewConsumer(reader *kafka.Reader, analytics AnalyticsStore, log *zap.Logger) *Consumer {
	return &Consumer{
		Reader:    reader,
		Analytics: analytics,
		Log:       log,
	}
}

func (c *Consumer) Start(ctx context.Context) {
	c.Log.Info("starting analytics consumer")
	for {
		message, err := c.Reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			c.Log.Warn("read message failed", zap.Error(err))
			continue
		}
		c.Process(ctx, message.Value)
	}
}

func (c *Consumer) Process(ctx context.Context, value []byte) {
	var event eventEnvelope
	if err := json.Unmarshal(value, &event); err != nil {
		c.Log.Warn("unmarshal event failed", zap.Error(err))
		return
	}

	switch event.Type {
	case domain.EventOrderCreated:
		day := event.Timestamp.Format("2006-01-02")
		if err := c.Analytics.IncrementDailyOrders(ctx, event.RestaurantID, day); err != nil {
			c.Log.Warn("daily order count update failed",
				zap.Int("restaurant_id", event.RestaurantID),
				zap.Error(err))
		}
	case domain.EventReviewRecorded:
		if err := c.Analytics.UpdateTopRated(ctx, event.RestaurantID, event.NewAverage); err != nil {
			c.Log.Warn("top-rated update failed",
				zap.Int("restaurant_id", event.RestaurantID),
				zap.Error(err))
		}
	default:
		c.Log.Debug("skipping event", zap.String("type", event.Type))
	}
}
