package services

import (
	"context"

	"github.com/SscSPs/journal_workflow_app/internal/core/domain"
	"github.com/SscSPs/journal_workflow_app/internal/dto"
)

// JournalEntryReaderSvc defines read operations for journal entries. Readers need at least VIEWER.
type JournalEntryReaderSvc interface {
	// GetEntry retrieves an entry with its lines.
	GetEntry(ctx context.Context, entryID string, actingUserID string) (*domain.JournalEntry, error)

	// ListEntries retrieves a page of entries with their lines.
	ListEntries(ctx context.Context, params dto.ListJournalEntriesParams, actingUserID string) ([]domain.JournalEntry, *string, error)

	// GetEntryHistory lists every accepted mutation of an entry, oldest first.
	GetEntryHistory(ctx context.Context, entryID string, actingUserID string) ([]domain.EntryEvent, error)
}

// JournalEntryWriterSvc defines draft editing operations.
type JournalEntryWriterSvc interface {
	// CreateEntry stores a new DRAFT entry at version 1. Drafts may be unbalanced.
	CreateEntry(ctx context.Context, req dto.CreateJournalEntryRequest, actingUserID string) (*domain.JournalEntry, error)

	// UpdateEntry replaces a DRAFT entry's header and lines.
	UpdateEntry(ctx context.Context, entryID string, req dto.UpdateJournalEntryRequest, actingUserID string) (*domain.JournalEntry, error)

	// DeleteEntry removes a DRAFT entry.
	DeleteEntry(ctx context.Context, entryID string, expectedVersion int64, actingUserID string) error
}

// JournalEntryWorkflowSvc defines the approval transitions. Every call must
// present the version the caller last read.
type JournalEntryWorkflowSvc interface {
	SubmitEntry(ctx context.Context, entryID string, expectedVersion int64, actingUserID string) (*domain.JournalEntry, error)
	ApproveEntry(ctx context.Context, entryID string, expectedVersion int64, actingUserID string) (*domain.JournalEntry, error)
	RejectEntry(ctx context.Context, entryID string, expectedVersion int64, reason string, actingUserID string) (*domain.JournalEntry, error)
	ConfirmEntry(ctx context.Context, entryID string, expectedVersion int64, actingUserID string) (*domain.JournalEntry, error)
}

// JournalEntryValidatorSvc runs the submit checks without persisting anything.
type JournalEntryValidatorSvc interface {
	ValidateDraft(ctx context.Context, req dto.CreateJournalEntryRequest, actingUserID string) (*dto.DraftValidation, error)
}

// JournalEntrySvcFacade combines all journal-entry service interfaces
type JournalEntrySvcFacade interface {
	JournalEntryReaderSvc
	JournalEntryWriterSvc
	JournalEntryWorkflowSvc
	JournalEntryValidatorSvc
}
