package worker

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/edugrade/similarity-service/internal/models"
	"github.com/edugrade/similarity-service/internal/service"
	"github.com/edugrade/similarity-service/internal/worker/queue"
)

// DetectionWorker consumes batch requests from the queue and runs them on the
// worker pool, keeping long batch runs off the HTTP path.
type DetectionWorker interface {
	Start(ctx context.Context) error
	Stop() error
}

type detectionWorker struct {
	pool      *Pool
	consumer  queue.Consumer
	handler   *queue.MessageHandler
	detection service.DetectionService
	logger    zerolog.Logger
	cancel    context.CancelFunc
	done      chan struct{}
}

func NewDetectionWorker(
	pool *Pool,
	consumer queue.Consumer,
	handler *queue.MessageHandler,
	detection service.DetectionService,
	logger zerolog.Logger,
) DetectionWorker {
	return &detectionWorker{
		pool:      pool,
		consumer:  consumer,
		handler:   handler,
		detection: detection,
		logger:    logger,
	}
}

func (w *detectionWorker) Start(ctx context.Context) error {
	ctx, w.cancel = context.WithCancel(ctx)

	w.pool.Start()

	messages, err := w.consumer.Consume(ctx)
	if err != nil {
		return err
	}

	w.done = make(chan struct{})
	go func() {
		defer close(w.done)
		for msg := range messages {
			w.dispatch(ctx, msg)
		}
		w.logger.Info().Msg("Detection worker message loop ended")
	}()

	w.logger.Info().Msg("Detection worker started")
	return nil
}

func (w *detectionWorker) dispatch(ctx context.Context, msg queue.Message) {
	event, err := w.handler.ParseBatchRequest(msg.Body)
	if err != nil {
		w.logger.Error().Err(err).Msg("Dropping malformed batch request")
		msg.Nack(false, false)
		return
	}

	w.pool.Submit(func() {
		scope := models.BatchScope{
			Course:         event.Course,
			SubmissionType: event.SubmissionType,
		}

		if _, err := w.detection.RunBatch(ctx, scope); err != nil {
			w.logger.Error().Err(err).
				Str("course", scope.Course).
				Msg("Queued batch run failed, requeueing")
			msg.Nack(false, true)
			return
		}
		msg.Ack(false)
	})
}

// Stop drains the message loop before stopping the pool: dispatch submits to
// the pool, so the pool's task channel must outlive the loop.
func (w *detectionWorker) Stop() error {
	if w.cancel != nil {
		w.cancel()
	}
	if err := w.consumer.Close(); err != nil {
		w.logger.Error().Err(err).Msg("Failed to close consumer")
	}
	if w.done != nil {
		<-w.done
	}
	w.pool.Stop()
	return nil
}
