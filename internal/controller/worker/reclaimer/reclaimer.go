package reclaimer

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ashabelnikov/file-pipeline/internal/usecase"
	"github.com/ashabelnikov/file-pipeline/pkg/logger"
)

// Reclaimer deletes status records past their expiry instant. The pipeline
// itself never reads or extends expiresAt.
type Reclaimer struct {
	files  usecase.FileUseCase
	logger logger.Interface

	interval time.Duration

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	started atomic.Bool
}

func New(files usecase.FileUseCase, l logger.Interface, interval time.Duration) *Reclaimer {
	return &Reclaimer{
		files:    files,
		logger:   l,
		interval: interval,
	}
}

func (r *Reclaimer) Start(ctx context.Context) error {
	if !r.started.CompareAndSwap(false, true) {
		return fmt.Errorf("Reclaimer - Start - worker already started")
	}

	r.ctx, r.cancel = context.WithCancel(ctx)

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()

		ticker := time.NewTicker(r.interval)
		defer ticker.Stop()

		for {
			select {
			case <-r.ctx.Done():
				return
			case <-ticker.C:
				err := r.files.ReclaimExpired(r.ctx)
				if err != nil {
					r.logger.Error(err, "Reclaimer - Start - r.files.ReclaimExpired")
				}
			}
		}
	}()

	return nil
}

func (r *Reclaimer) Shutdown(ctx context.Context) error {
	if !r.started.Load() {
		return nil
	}

	if r.cancel != nil {
		r.cancel()
	}

	done := make(chan struct{})

	go func() {
		r.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return nil
	}
}
