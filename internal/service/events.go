package service

import (
	"context"
	"mime/multipart"
	"time"

	"github.com/ds124wfegd/imagetools/internal/entity"
	"github.com/ds124wfegd/imagetools/internal/pkg/reqmeta"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const publishTimeout = 5 * time.Second

type operation struct {
	event entity.OperationEvent
	start time.Time
}

func (s *imageService) begin(ctx context.Context, name string, file *multipart.FileHeader) *operation {
	op := &operation{
		event: entity.OperationEvent{
			ID:        uuid.New().String(),
			RequestID: reqmeta.RequestID(ctx),
			Operation: name,
		},
		start: time.Now(),
	}
	if file != nil {
		op.event.Filename = file.Filename
	}
	return op
}

func (op *operation) observe(img *entity.DecodedImage) {
	op.event.Format = img.Format
	op.event.Width = img.Width()
	op.event.Height = img.Height()
}

// finish logs the outcome and publishes the event. Publishing failures never
// affect the response.
func (s *imageService) finish(ctx context.Context, op *operation, out *entity.EncodedImage, err error) {
	op.event.Time = time.Now().UTC()
	op.event.DurationMs = time.Since(op.start).Milliseconds()

	entry := logrus.WithFields(logrus.Fields{
		"request_id": op.event.RequestID,
		"operation":  op.event.Operation,
		"filename":   op.event.Filename,
		"duration":   op.event.DurationMs,
	})

	if err != nil {
		kind := entity.KindOf(err)
		op.event.Status = "failed"
		op.event.Error = kind.String()
		if kind == entity.KindProcessing {
			entry.WithError(err).Error("image operation failed")
		} else {
			entry.WithError(err).Info("image rejected")
		}
	} else {
		op.event.Status = "success"
		if out != nil {
			op.event.OutputBytes = len(out.Data)
		}
		entry.Debug("image operation completed")
	}

	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()
	if perr := s.producer.Publish(pubCtx, op.event); perr != nil {
		entry.WithError(perr).Warn("failed to publish operation event")
	}
}
