package repositories

import (
	"context"

	"github.com/SscSPs/journal_workflow_app/internal/core/domain"
)

// JournalEntryReader defines read operations for journal entries.
type JournalEntryReader interface {
	// FindEntryByID retrieves an entry with its lines, ordered by line number.
	FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// ListEntries retrieves entry headers (without lines), newest entry date first, using
	// token-based pagination. A nil status lists every state.
	ListEntries(ctx context.Context, status *domain.EntryStatus, limit int, nextToken *string) ([]domain.JournalEntry, *string, error)

	// FindLinesByEntryIDs retrieves lines for several entries, grouped by entry ID.
	FindLinesByEntryIDs(ctx context.Context, entryIDs []string) (map[string][]domain.JournalLine, error)
}

// JournalEntryWriter defines write operations for journal entries. Every write
// appends event to the entry's history in the same database transaction.
type JournalEntryWriter interface {
	// CreateEntry inserts a new entry and its lines.
	CreateEntry(ctx context.Context, entry domain.JournalEntry, event domain.EntryEvent) error

	// UpdateEntry replaces the entry's header, status, side records and lines, provided
	// the stored version still equals expectedVersion. The stored version becomes
	// expectedVersion+1. Returns apperrors.ErrConflict when the version has moved on.
	UpdateEntry(ctx context.Context, entry domain.JournalEntry, expectedVersion int64, event domain.EntryEvent) error

	// DeleteEntry removes the entry and its lines under the same version check as UpdateEntry.
	// History rows are kept.
	DeleteEntry(ctx context.Context, entryID string, expectedVersion int64, event domain.EntryEvent) error
}

// EntryHistoryReader reads the append-only transition history.
type EntryHistoryReader interface {
	// ListEntryEvents returns an entry's events, oldest first.
	ListEntryEvents(ctx context.Context, entryID string) ([]domain.EntryEvent, error)
}

// JournalEntryRepositoryFacade combines all journal-entry repository interfaces
type JournalEntryRepositoryFacade interface {
	JournalEntryReader
	JournalEntryWriter
	EntryHistoryReader
}
