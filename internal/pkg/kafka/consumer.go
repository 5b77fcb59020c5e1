package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/ds124wfegd/imagetools/internal/entity"
	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
)

type EventHandler func(ctx context.Context, event entity.OperationEvent) error

type Consumer struct {
	reader *kafka.Reader
}

func NewConsumer(brokers []string, topic, groupID string) *Consumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        brokers,
		Topic:          topic,
		GroupID:        groupID,
		MinBytes:       1,
		MaxBytes:       10e6, // 10MB
		CommitInterval: time.Second,
		StartOffset:    kafka.FirstOffset,
	})
	return &Consumer{reader: reader}
}

// Run reads events until ctx is cancelled. Malformed messages and handler
// failures are logged and skipped.
func (c *Consumer) Run(ctx context.Context, handle EventHandler) error {
	logrus.WithField("topic", c.reader.Config().Topic).Info("operation event consumer started")

	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil
			}
			logrus.WithError(err).Error("error reading message from Kafka")
			continue
		}

		event, err := decodeEvent(msg.Value)
		if err != nil {
			logrus.WithError(err).WithFields(logrus.Fields{
				"partition": msg.Partition,
				"offset":    msg.Offset,
			}).Warn("failed to parse operation event")
			continue
		}

		if err := handle(ctx, event); err != nil {
			logrus.WithError(err).WithField("event_id", event.ID).Error("operation event handler failed")
		}
	}
}

func (c *Consumer) Close() error {
	return c.reader.Close()
}

func decodeEvent(value []byte) (entity.OperationEvent, error) {
	var event entity.OperationEvent
	if err := json.Unmarshal(value, &event); err != nil {
		return entity.OperationEvent{}, err
	}
	if event.ID == "" || event.Operation == "" {
		return entity.OperationEvent{}, errors.New("event without id or operation")
	}
	return event, nil
}
