package services

import (
	"context"

	"github.com/SscSPs/journal_workflow_app/internal/core/domain"
)

// EntryEventPublisher delivers a committed lifecycle event to downstream consumers.
type EntryEventPublisher interface {
	PublishEntryEvent(ctx context.Context, event domain.EntryEvent) error
	Close() error
}

// EntryEventDispatcher hands events to a publisher without blocking the caller.
type EntryEventDispatcher interface {
	Dispatch(event domain.EntryEvent)
	Close()
}
