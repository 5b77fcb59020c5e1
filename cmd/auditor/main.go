package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/ds124wfegd/imagetools/config"
	"github.com/ds124wfegd/imagetools/internal/entity"
	"github.com/ds124wfegd/imagetools/internal/pkg/kafka"
	"github.com/sirupsen/logrus"
)

func main() {
	logrus.SetFormatter(new(logrus.JSONFormatter))

	consumer := kafka.NewConsumer(
		strings.Split(config.GetEnv("KAFKA_BROKERS", "localhost:9094"), ","),
		config.GetEnv("KAFKA_TOPIC", "image-operations"),
		config.GetEnv("KAFKA_GROUP_ID", "image-operations-auditor"),
	)
	defer consumer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err := consumer.Run(ctx, func(_ context.Context, event entity.OperationEvent) error {
		logrus.WithFields(logrus.Fields{
			"event_id":     event.ID,
			"request_id":   event.RequestID,
			"operation":    event.Operation,
			"filename":     event.Filename,
			"format":       event.Format,
			"width":        event.Width,
			"height":       event.Height,
			"output_bytes": event.OutputBytes,
			"status":       event.Status,
			"error":        event.Error,
			"duration_ms":  event.DurationMs,
		}).Info("image operation")
		return nil
	})
	if err != nil {
		logrus.Errorf("operation event consumer stopped: %s", err.Error())
		os.Exit(1)
	}
}
