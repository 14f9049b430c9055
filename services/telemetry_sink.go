package services

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/blogem/honeypot-telemetry/models"
	"github.com/blogem/honeypot-telemetry/repositories"
)

// TelemetrySink persists records off the request path
type TelemetrySink interface {
	// Submit enqueues a record and returns without waiting for storage.
	// It reports false when the record was dropped.
	Submit(record *models.RequestRecord) bool
	// Close stops intake and waits for accepted records to be written
	Close(ctx context.Context) error
}

// telemetrySink feeds a single writer goroutine through a bounded queue.
// Delivery is at-most-once: full queue, closed sink and store errors all drop.
type telemetrySink struct {
	repo  repositories.RequestRepository
	log   *zap.Logger
	queue chan *models.RequestRecord
	done  chan struct{}

	mu        sync.RWMutex
	closed    bool
	closeOnce sync.Once
}

// NewTelemetrySink starts the writer; Close must be called at shutdown
func NewTelemetrySink(repo repositories.RequestRepository, queueSize int, log *zap.Logger) TelemetrySink {
	if queueSize <= 0 {
		queueSize = 1
	}
	if log == nil {
		log = zap.NewNop()
	}

	s := &telemetrySink{
		repo:  repo,
		log:   log,
		queue: make(chan *models.RequestRecord, queueSize),
		done:  make(chan struct{}),
	}
	go s.writeLoop()

	return s
}

func (s *telemetrySink) Submit(record *models.RequestRecord) bool {
	if record == nil {
		return false
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		s.log.Warn("telemetry sink closed, dropping record",
			zap.String("ip", record.ClientAddress),
			zap.String("path", record.Path))
		return false
	}

	select {
	case s.queue <- record:
		return true
	default:
		s.log.Warn("telemetry queue full, dropping record",
			zap.String("ip", record.ClientAddress),
			zap.String("path", record.Path),
			zap.Int("capacity", cap(s.queue)))
		return false
	}
}

func (s *telemetrySink) Close(ctx context.Context) error {
	s.closeOnce.Do(func() {
		s.mu.Lock()
		s.closed = true
		close(s.queue)
		s.mu.Unlock()
	})

	select {
	case <-s.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// writeLoop is the only writer to the store; inserts keep submission order
func (s *telemetrySink) writeLoop() {
	defer close(s.done)

	for record := range s.queue {
		// persistence has no deadline; a record lands or is dropped
		if err := s.repo.Create(context.Background(), record); err != nil {
			s.log.Error("failed to persist request record",
				zap.String("ip", record.ClientAddress),
				zap.String("method", record.Method),
				zap.String("path", record.Path),
				zap.Error(err))
		}
	}
}
