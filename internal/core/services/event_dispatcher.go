package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/SscSPs/journal_workflow_app/internal/core/domain"
	portssvc "github.com/SscSPs/journal_workflow_app/internal/core/ports/services"
	"github.com/panjf2000/ants/v2"
)

// defaultPublishTimeout bounds a single publish attempt.
const defaultPublishTimeout = 5 * time.Second

// EventDispatcherConfig sizes the publishing worker pool.
type EventDispatcherConfig struct {
	PoolSize       int
	PublishTimeout time.Duration
}

// entryEventDispatcher publishes committed entry events on a worker pool so
// request handling never waits on the broker. Delivery is best effort: when
// every worker is busy the event is dropped and logged.
type entryEventDispatcher struct {
	publisher portssvc.EntryEventPublisher
	pool      *ants.Pool
	logger    *slog.Logger
	timeout   time.Duration

	mu       sync.Mutex // guards closed and inflight.Add
	closed   bool
	inflight sync.WaitGroup
}

// NewEntryEventDispatcher creates a dispatcher backed by an ants pool.
func NewEntryEventDispatcher(publisher portssvc.EntryEventPublisher, cfg EventDispatcherConfig, logger *slog.Logger) (portssvc.EntryEventDispatcher, error) {
	if publisher == nil {
		return nil, fmt.Errorf("event publisher is required")
	}
	pool, err := ants.NewPool(cfg.PoolSize, ants.WithNonblocking(true))
	if err != nil {
		return nil, fmt.Errorf("failed to create event worker pool: %w", err)
	}
	timeout := cfg.PublishTimeout
	if timeout <= 0 {
		timeout = defaultPublishTimeout
	}
	return &entryEventDispatcher{
		publisher: publisher,
		pool:      pool,
		logger:    logger,
		timeout:   timeout,
	}, nil
}

var _ portssvc.EntryEventDispatcher = (*entryEventDispatcher)(nil)

func (d *entryEventDispatcher) Dispatch(event domain.EntryEvent) {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		d.logger.Warn("Event dispatcher closed, dropping entry event",
			slog.String("entry_id", event.EntryID),
			slog.Int64("version", event.Version))
		return
	}
	d.inflight.Add(1)
	d.mu.Unlock()

	err := d.pool.Submit(func() {
		defer d.inflight.Done()
		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		defer cancel()
		if err := d.publisher.PublishEntryEvent(ctx, event); err != nil {
			d.logger.Error("Failed to publish entry event",
				slog.String("entry_id", event.EntryID),
				slog.String("operation", string(event.Operation)),
				slog.Int64("version", event.Version),
				slog.String("error", err.Error()))
		}
	})
	if err != nil {
		d.inflight.Done()
		d.logger.Error("Failed to submit entry event to worker pool",
			slog.String("entry_id", event.EntryID),
			slog.String("error", err.Error()))
	}
}

// Close waits for in-flight publishes, then releases the pool and the
// publisher. Events dispatched after Close are dropped.
func (d *entryEventDispatcher) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	d.mu.Unlock()

	d.inflight.Wait()
	d.logger.Info("Shutting down event worker pool", slog.Int("running_workers", d.pool.Running()))
	d.pool.Release()
	if err := d.publisher.Close(); err != nil {
		d.logger.Error("Failed to close event publisher", slog.String("error", err.Error()))
	}
}

// logEventPublisher writes events to the log. It stands in for the broker
// when no Kafka brokers are configured.
type logEventPublisher struct {
	logger *slog.Logger
}

// NewLogEventPublisher creates a publisher that only logs events.
func NewLogEventPublisher(logger *slog.Logger) portssvc.EntryEventPublisher {
	return &logEventPublisher{logger: logger}
}

func (p *logEventPublisher) PublishEntryEvent(ctx context.Context, event domain.EntryEvent) error {
	p.logger.InfoContext(ctx, "Entry event",
		slog.String("entry_id", event.EntryID),
		slog.String("operation", string(event.Operation)),
		slog.String("from_status", string(event.FromStatus)),
		slog.String("to_status", string(event.ToStatus)),
		slog.String("actor_id", event.ActorID),
		slog.Int64("version", event.Version))
	return nil
}

func (p *logEventPublisher) Close() error { return nil }
