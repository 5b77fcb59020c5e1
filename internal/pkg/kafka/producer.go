package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/ds124wfegd/imagetools/config"
	"github.com/ds124wfegd/imagetools/internal/entity"
	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
)

type Producer interface {
	Publish(ctx context.Context, event entity.OperationEvent) error
	Close() error
}

type kafkaProducer struct {
	writer *kafka.Writer
}

// NewProducer connects to the configured brokers. When publishing is disabled
// or no broker answers, events are only logged.
func NewProducer(cfg config.KafkaConfig) Producer {
	if !cfg.Enabled || len(cfg.Brokers) == 0 {
		logrus.Info("Kafka publishing disabled, operation events will be logged only")
		return &logProducer{}
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 10 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
		Async:        cfg.Async,
		Completion: func(messages []kafka.Message, err error) {
			if err != nil {
				logrus.WithError(err).WithField("messages", len(messages)).Warn("failed to deliver operation events")
			}
		},
	}

	// Проверяем подключение и создаем топик
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	conn, err := kafka.DialContext(ctx, "tcp", cfg.Brokers[0])
	if err != nil {
		logrus.WithError(err).Warn("Kafka connection failed, using log producer instead")
		return &logProducer{}
	}
	defer conn.Close()

	err = conn.CreateTopics(kafka.TopicConfig{
		Topic:             cfg.Topic,
		NumPartitions:     1,
		ReplicationFactor: 1,
	})
	if err != nil {
		logrus.WithError(err).Debug("could not create topic (might already exist)")
	}

	logrus.WithField("brokers", cfg.Brokers).Info("Connected to Kafka")
	if !cfg.Async {
		logrus.Warn("Kafka async publishing is off, every request waits for the broker ack")
	}
	return &kafkaProducer{writer: writer}
}

func (p *kafkaProducer) Publish(ctx context.Context, event entity.OperationEvent) error {
	value, err := json.Marshal(event)
	if err != nil {
		return err
	}

	msg := kafka.Message{
		Key:   []byte(event.Operation),
		Value: value,
		Time:  event.Time,
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return err
	}
	return nil
}

func (p *kafkaProducer) Close() error {
	return p.writer.Close()
}

// logProducer is used when Kafka is disabled or unreachable.
type logProducer struct{}

func NewLogProducer() Producer {
	return &logProducer{}
}

func (p *logProducer) Publish(_ context.Context, event entity.OperationEvent) error {
	logrus.WithFields(logrus.Fields{
		"event_id":  event.ID,
		"operation": event.Operation,
		"status":    event.Status,
	}).Debug("operation event")
	return nil
}

func (p *logProducer) Close() error {
	return nil
}
