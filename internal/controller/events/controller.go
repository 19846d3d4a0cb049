package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ashabelnikov/file-pipeline/internal/dto"
	kafkapc "github.com/ashabelnikov/file-pipeline/internal/infrastructure/kafka"
	"github.com/ashabelnikov/file-pipeline/internal/metrics"
	"github.com/ashabelnikov/file-pipeline/internal/usecase"
	"github.com/ashabelnikov/file-pipeline/pkg/logger"
	"github.com/segmentio/kafka-go"
)

// EventsController feeds bucket notifications to the ingest pipeline.
// Distinct messages may be handled by concurrent workers; the records of
// one message are processed sequentially, and duplicate delivery is safe
// because terminal status writes are idempotent overwrites.
type EventsController struct {
	ingest usecase.IngestUseCase
	ec     *kafkapc.EventConsumer
	logger logger.Interface

	commitTimeout  time.Duration
	processTimeout time.Duration

	workers int
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup

	started atomic.Bool
}

func New(
	ingest usecase.IngestUseCase,
	ec *kafkapc.EventConsumer,
	l logger.Interface,
	commitTimeout time.Duration,
	processTimeout time.Duration,
	workers int,
) *EventsController {
	return &EventsController{
		ingest:         ingest,
		ec:             ec,
		logger:         l,
		commitTimeout:  commitTimeout,
		processTimeout: processTimeout,
		workers:        workers,
	}
}

func (c *EventsController) Start(ctx context.Context) error {
	if !c.started.CompareAndSwap(false, true) {
		return fmt.Errorf("EventsController - Start - controller already started")
	}

	c.ctx, c.cancel = context.WithCancel(ctx)

	tasks := make(chan kafka.Message, c.workers*2)

	for i := 0; i < c.workers; i++ {
		c.wg.Add(1)
		go c.worker(tasks)
	}

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		defer close(tasks)

		for {
			select {
			case <-c.ctx.Done():
				return
			default:
				event, err := c.ec.ReadEvent(c.ctx)
				if err != nil {
					if !errors.Is(err, context.Canceled) {
						c.logger.Error(err, "EventsController - Start - c.ec.ReadEvent")
					}
					continue
				}

				select {
				case tasks <- event:
				case <-c.ctx.Done():
					return
				}
			}
		}
	}()

	return nil
}

// processMessage walks the notification batch. Records are independent:
// one record's failure never aborts the rest.
func (c *EventsController) processMessage(ctx context.Context, msg kafka.Message) {
	var event ObjectCreatedEvent

	err := json.Unmarshal(msg.Value, &event)
	if err != nil {
		// Malformed payloads are not retriable, drop with a trace.
		c.logger.Error(err, "EventsController - processMessage - json.Unmarshal")

		return
	}

	for _, rec := range event.Records {
		key, err := url.QueryUnescape(rec.S3.Object.Key)
		if err != nil {
			c.logger.Error(err, "EventsController - processMessage - url.QueryUnescape")

			continue
		}

		res := c.ingest.ProcessRecord(ctx, dto.StorageRecord{
			Bucket: rec.S3.Bucket.Name,
			Key:    key,
		})

		metrics.IngestRecords.WithLabelValues(string(res.Disposition)).Inc()
		if res.StatusErr != nil {
			metrics.StatusWriteFailures.Inc()
		}

		switch res.Disposition {
		case dto.DispositionCompleted:
			metrics.CompressionRatio.Observe(res.Ratio)
			c.logger.Info("ingest - completed, fileId=%s, key=%s, ratio=%.2f", res.FileID, res.ProcessedKey, res.Ratio)
		case dto.DispositionSkipped:
			c.logger.Info("ingest - skipped, key=%s, reason: %s", key, res.SkipReason)
		case dto.DispositionFailed:
			c.logger.Error(res.Err, "EventsController - processMessage - record failed")
		}
	}
}

func (c *EventsController) worker(tasks <-chan kafka.Message) {
	defer c.wg.Done()

	for event := range tasks {
		func() {
			defer func() {
				if r := recover(); r != nil {
					c.logger.Error(fmt.Errorf("panic %v", r), "EventsController - worker - panic")
				}
			}()

			processCtx, processCancel := context.WithTimeout(c.ctx, c.processTimeout)
			c.processMessage(processCtx, event)
			processCancel()

			// Committed regardless of per-record outcomes; redelivery comes
			// from consumer-group semantics only, not from failed records.
			commitCtx, commitCancel := context.WithTimeout(c.ctx, c.commitTimeout)
			err := c.ec.CommitEvent(commitCtx, event)
			commitCancel()
			if err != nil {
				c.logger.Error(err, "EventsController - worker - c.ec.CommitEvent")
			}
		}()
	}
}

func (c *EventsController) Shutdown(ctx context.Context) error {
	if !c.started.Load() {
		return nil
	}

	if c.cancel != nil {
		c.cancel()
	}

	done := make(chan struct{})

	go func() {
		c.wg.Wait()
		c.ec.Close()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return nil
	}
}
