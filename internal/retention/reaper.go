// Package retention removes chat messages that outlived their TTL.
package retention

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"github.com/skillbridge/skillbridge/internal/app/services"
	"github.com/skillbridge/skillbridge/internal/pkg/filestorage"
)

// expiredMessageStore deletes expired rows and reports their attachments
type expiredMessageStore interface {
	DeleteExpired(ctx context.Context) ([]string, error)
}

// Reaper periodically deletes expired messages and their attachment blobs.
// Read paths already filter expired rows, so the reaper only reclaims space;
// its interval never affects visibility.
type Reaper struct {
	messages expiredMessageStore
	storage  filestorage.FileStorage
	interval time.Duration
	logger   zerolog.Logger

	stop     chan struct{}
	stopOnce sync.Once
	done     chan struct{}
	started  atomic.Bool
}

// NewReaper creates a new Reaper
func NewReaper(messages expiredMessageStore, storage filestorage.FileStorage, interval time.Duration, logger zerolog.Logger) *Reaper {
	return &Reaper{
		messages: messages,
		storage:  storage,
		interval: interval,
		logger:   logger,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start runs the reap loop until Stop is called or the context ends
func (r *Reaper) Start(ctx context.Context) {
	if !r.started.CompareAndSwap(false, true) {
		return
	}
	go r.run(ctx)
}

// Stop terminates the loop and waits for the in-flight sweep to finish.
// Stopping a reaper that never started is a no-op.
func (r *Reaper) Stop() {
	r.stopOnce.Do(func() {
		close(r.stop)
	})
	if r.started.Load() {
		<-r.done
	}
}

func (r *Reaper) run(ctx context.Context) {
	defer close(r.done)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.logger.Info().Dur("interval", r.interval).Msg("Message reaper started")

	for {
		select {
		case <-ticker.C:
			r.sweep(ctx)
		case <-r.stop:
			r.logger.Info().Msg("Message reaper stopped")
			return
		case <-ctx.Done():
			r.logger.Info().Msg("Message reaper stopped")
			return
		}
	}
}

// sweep removes one batch of expired messages and their blobs
func (r *Reaper) sweep(ctx context.Context) {
	fileNames, err := r.messages.DeleteExpired(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("Failed to delete expired messages")
		return
	}

	for _, fileName := range fileNames {
		if err := r.storage.DeleteFile(services.AttachmentPath(fileName)); err != nil {
			r.logger.Warn().Err(err).Str("file", fileName).Msg("Failed to delete expired attachment")
		}
	}

	if len(fileNames) > 0 {
		r.logger.Debug().Int("attachments", len(fileNames)).Msg("Reaped expired attachments")
	}
}
