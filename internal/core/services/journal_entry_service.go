package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/SscSPs/journal_workflow_app/internal/apperrors"
	"github.com/SscSPs/journal_workflow_app/internal/core/domain"
	portsrepo "github.com/SscSPs/journal_workflow_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/journal_workflow_app/internal/core/ports/services"
	"github.com/SscSPs/journal_workflow_app/internal/core/workflow"
	"github.com/SscSPs/journal_workflow_app/internal/dto"
	"github.com/SscSPs/journal_workflow_app/internal/utils/accounting"
)

// journalEntryService persists the workflow engine's decisions. Every mutation
// runs resolve role, authorize, load, version check, evaluate, persist with
// its history event, then dispatch the event.
type journalEntryService struct {
	BaseService
	entryRepo   portsrepo.JournalEntryRepositoryFacade
	accountRepo portsrepo.AccountReader
	dispatcher  portssvc.EntryEventDispatcher
	now         func() time.Time
	newID       func() string
}

// JournalEntryServiceOption is a functional option for configuring the journal entry service
type JournalEntryServiceOption func(*journalEntryService)

// WithEventDispatcher publishes committed lifecycle events through d.
func WithEventDispatcher(d portssvc.EntryEventDispatcher) JournalEntryServiceOption {
	return func(s *journalEntryService) {
		s.dispatcher = d
	}
}

// WithClock overrides the time source used for side records and audit fields.
func WithClock(now func() time.Time) JournalEntryServiceOption {
	return func(s *journalEntryService) {
		s.now = now
	}
}

// WithIDGenerator overrides the generator used for entry, line and event IDs.
func WithIDGenerator(newID func() string) JournalEntryServiceOption {
	return func(s *journalEntryService) {
		s.newID = newID
	}
}

// NewJournalEntryService creates a new JournalEntryService.
func NewJournalEntryService(
	entryRepo portsrepo.JournalEntryRepositoryFacade,
	accountRepo portsrepo.AccountReader,
	roles portssvc.RoleResolver,
	options ...JournalEntryServiceOption,
) portssvc.JournalEntrySvcFacade {
	svc := &journalEntryService{
		BaseService: BaseService{Roles: roles},
		entryRepo:   entryRepo,
		accountRepo: accountRepo,
		now:         func() time.Time { return time.Now().UTC() },
		newID:       uuid.NewString,
	}
	for _, opt := range options {
		opt(svc)
	}
	return svc
}

var _ portssvc.JournalEntrySvcFacade = (*journalEntryService)(nil)

func (s *journalEntryService) GetEntry(ctx context.Context, entryID string, actingUserID string) (*domain.JournalEntry, error) {
	if _, err := s.AuthorizeOperation(ctx, actingUserID, domain.OpView); err != nil {
		return nil, err
	}
	entry, err := s.entryRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to get journal entry", slog.String("entry_id", entryID))
		}
		return nil, err
	}
	return entry, nil
}

func (s *journalEntryService) ListEntries(ctx context.Context, params dto.ListJournalEntriesParams, actingUserID string) ([]domain.JournalEntry, *string, error) {
	if _, err := s.AuthorizeOperation(ctx, actingUserID, domain.OpView); err != nil {
		return nil, nil, err
	}

	var status *domain.EntryStatus
	if params.Status != "" {
		st := domain.EntryStatus(params.Status)
		if !st.IsValid() {
			return nil, nil, fmt.Errorf("%w: unknown status %q", apperrors.ErrValidation, params.Status)
		}
		status = &st
	}

	entries, nextToken, err := s.entryRepo.ListEntries(ctx, status, params.Limit, params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list journal entries")
		return nil, nil, err
	}
	if len(entries) == 0 {
		return entries, nextToken, nil
	}

	ids := make([]string, len(entries))
	for i := range entries {
		ids[i] = entries[i].EntryID
	}
	lines, err := s.entryRepo.FindLinesByEntryIDs(ctx, ids)
	if err != nil {
		s.LogError(ctx, err, "Failed to load journal lines", slog.Int("entry_count", len(ids)))
		return nil, nil, err
	}
	for i := range entries {
		entries[i].Lines = lines[entries[i].EntryID]
	}
	return entries, nextToken, nil
}

func (s *journalEntryService) GetEntryHistory(ctx context.Context, entryID string, actingUserID string) ([]domain.EntryEvent, error) {
	if _, err := s.AuthorizeOperation(ctx, actingUserID, domain.OpView); err != nil {
		return nil, err
	}
	events, err := s.entryRepo.ListEntryEvents(ctx, entryID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list entry history", slog.String("entry_id", entryID))
		return nil, err
	}
	if len(events) == 0 {
		return nil, fmt.Errorf("%w: no history for journal entry %s", apperrors.ErrNotFound, entryID)
	}
	return events, nil
}

func (s *journalEntryService) CreateEntry(ctx context.Context, req dto.CreateJournalEntryRequest, actingUserID string) (*domain.JournalEntry, error) {
	role, err := s.AuthorizeOperation(ctx, actingUserID, domain.OpCreate)
	if err != nil {
		return nil, err
	}

	now := s.now()
	candidate := domain.JournalEntry{
		EntryDate:   req.Date.Time,
		Description: req.Description,
		Lines:       req.ToDomainLines(),
	}
	decision, err := workflow.Evaluate(workflow.Request{
		Entry:      &candidate,
		Operation:  domain.OpCreate,
		ActingRole: role,
		ActorID:    actingUserID,
		At:         now,
	})
	if err != nil {
		return nil, err
	}

	entry := decision.Apply(candidate)
	entry.EntryID = s.newID()
	entry.Version = 1
	entry.AuditFields = domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     actingUserID,
		LastUpdatedAt: now,
		LastUpdatedBy: actingUserID,
	}
	s.assignLineIDs(entry.Lines, true)

	event := s.newEvent(entry.EntryID, decision, 1)
	if err := s.entryRepo.CreateEntry(ctx, entry, event); err != nil {
		s.LogError(ctx, err, "Failed to create journal entry")
		return nil, err
	}

	s.LogInfo(ctx, "Journal entry created", slog.String("entry_id", entry.EntryID), slog.Int("line_count", len(entry.Lines)))
	s.dispatch(event)
	return &entry, nil
}

func (s *journalEntryService) UpdateEntry(ctx context.Context, entryID string, req dto.UpdateJournalEntryRequest, actingUserID string) (*domain.JournalEntry, error) {
	edit := func(stored domain.JournalEntry) domain.JournalEntry {
		stored.EntryDate = req.Date.Time
		stored.Description = req.Description
		stored.Lines = req.ToDomainLines()
		return stored
	}
	return s.mutate(ctx, entryID, req.Version, domain.OpEdit, "", actingUserID, edit)
}

func (s *journalEntryService) DeleteEntry(ctx context.Context, entryID string, expectedVersion int64, actingUserID string) error {
	_, err := s.mutate(ctx, entryID, expectedVersion, domain.OpDelete, "", actingUserID, nil)
	return err
}

func (s *journalEntryService) SubmitEntry(ctx context.Context, entryID string, expectedVersion int64, actingUserID string) (*domain.JournalEntry, error) {
	return s.mutate(ctx, entryID, expectedVersion, domain.OpSubmit, "", actingUserID, nil)
}

func (s *journalEntryService) ApproveEntry(ctx context.Context, entryID string, expectedVersion int64, actingUserID string) (*domain.JournalEntry, error) {
	return s.mutate(ctx, entryID, expectedVersion, domain.OpApprove, "", actingUserID, nil)
}

func (s *journalEntryService) RejectEntry(ctx context.Context, entryID string, expectedVersion int64, reason string, actingUserID string) (*domain.JournalEntry, error) {
	return s.mutate(ctx, entryID, expectedVersion, domain.OpReject, reason, actingUserID, nil)
}

func (s *journalEntryService) ConfirmEntry(ctx context.Context, entryID string, expectedVersion int64, actingUserID string) (*domain.JournalEntry, error) {
	return s.mutate(ctx, entryID, expectedVersion, domain.OpConfirm, "", actingUserID, nil)
}

func (s *journalEntryService) ValidateDraft(ctx context.Context, req dto.CreateJournalEntryRequest, actingUserID string) (*dto.DraftValidation, error) {
	if _, err := s.AuthorizeOperation(ctx, actingUserID, domain.OpCreate); err != nil {
		return nil, err
	}

	candidate := domain.JournalEntry{
		EntryDate:   req.Date.Time,
		Description: req.Description,
		Lines:       workflow.NormalizeLines(req.ToDomainLines()),
	}
	result := &dto.DraftValidation{Totals: accounting.ComputeTotals(candidate.Lines)}
	if err := workflow.Validate(&candidate); err != nil {
		result.Problem = err
		return result, nil
	}
	if err := s.checkAccounts(ctx, candidate.Lines); err != nil {
		if !errors.Is(err, apperrors.ErrValidation) {
			return nil, err
		}
		result.Problem = err
	}
	return result, nil
}

// mutate applies op to a stored entry. change, when set, produces the edited
// candidate from the stored entry before evaluation.
func (s *journalEntryService) mutate(
	ctx context.Context,
	entryID string,
	expectedVersion int64,
	op domain.Operation,
	reason string,
	actingUserID string,
	change func(domain.JournalEntry) domain.JournalEntry,
) (*domain.JournalEntry, error) {
	logger := s.GetLogger(ctx).With(slog.String("entry_id", entryID), slog.String("operation", string(op)))

	role, err := s.AuthorizeOperation(ctx, actingUserID, op)
	if err != nil {
		return nil, err
	}

	stored, err := s.entryRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to load journal entry", slog.String("error", err.Error()))
		}
		return nil, err
	}
	if stored.Version != expectedVersion {
		return nil, fmt.Errorf("%w: journal entry %s is at version %d, not %d",
			apperrors.ErrConflict, entryID, stored.Version, expectedVersion)
	}

	candidate := *stored
	if change != nil {
		candidate = change(candidate)
	}

	now := s.now()
	decision, err := workflow.Evaluate(workflow.Request{
		Entry:           &candidate,
		Operation:       op,
		ActingRole:      role,
		ActorID:         actingUserID,
		RejectionReason: reason,
		At:              now,
	})
	if err != nil {
		logger.Debug("Operation refused", slog.String("reason", err.Error()))
		return nil, err
	}

	if op == domain.OpSubmit {
		if err := s.checkAccounts(ctx, decision.NormalizedLines); err != nil {
			return nil, err
		}
	}

	newVersion := expectedVersion + 1
	event := s.newEvent(entryID, decision, newVersion)

	if decision.Removed {
		if err := s.entryRepo.DeleteEntry(ctx, entryID, expectedVersion, event); err != nil {
			if !errors.Is(err, apperrors.ErrConflict) && !errors.Is(err, apperrors.ErrNotFound) {
				logger.Error("Failed to delete journal entry", slog.String("error", err.Error()))
			}
			return nil, err
		}
		logger.Info("Journal entry deleted")
		s.dispatch(event)
		return nil, nil
	}

	entry := decision.Apply(candidate)
	entry.Version = newVersion
	entry.LastUpdatedAt = now
	entry.LastUpdatedBy = actingUserID
	s.assignLineIDs(entry.Lines, op == domain.OpEdit)

	if err := s.entryRepo.UpdateEntry(ctx, entry, expectedVersion, event); err != nil {
		if !errors.Is(err, apperrors.ErrConflict) && !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to update journal entry", slog.String("error", err.Error()))
		}
		return nil, err
	}

	logger.Info("Journal entry updated",
		slog.String("from_status", string(decision.FromStatus)),
		slog.String("to_status", string(decision.NewStatus)),
		slog.Int64("version", newVersion))
	s.dispatch(event)
	return &entry, nil
}

// checkAccounts rejects the first line whose account is unknown or inactive.
func (s *journalEntryService) checkAccounts(ctx context.Context, lines []domain.JournalLine) error {
	ids := make([]string, 0, len(lines))
	seen := make(map[string]struct{}, len(lines))
	for _, l := range lines {
		if _, ok := seen[l.AccountID]; ok {
			continue
		}
		seen[l.AccountID] = struct{}{}
		ids = append(ids, l.AccountID)
	}

	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, ids)
	if err != nil {
		s.LogError(ctx, err, "Failed to load accounts for journal lines")
		return fmt.Errorf("failed to check line accounts: %w", err)
	}
	for i, l := range lines {
		acc, ok := accounts[l.AccountID]
		if !ok || !acc.IsActive {
			return &workflow.IncompleteLineError{LineIndex: i, Reason: "unknown or inactive account"}
		}
	}
	return nil
}

// assignLineIDs gives every line an ID. Edits replace the whole line set, so
// regenerate discards the old IDs.
func (s *journalEntryService) assignLineIDs(lines []domain.JournalLine, regenerate bool) {
	for i := range lines {
		if regenerate || lines[i].LineID == "" {
			lines[i].LineID = s.newID()
		}
	}
}

func (s *journalEntryService) newEvent(entryID string, d workflow.Decision, version int64) domain.EntryEvent {
	event := domain.EntryEvent{
		EventID:    s.newID(),
		EntryID:    entryID,
		Operation:  d.Operation,
		FromStatus: d.FromStatus,
		ToStatus:   d.NewStatus,
		ActorID:    d.Side.Actor,
		Reason:     d.Side.Reason,
		Version:    version,
		OccurredAt: d.Side.At,
	}
	if d.Removed {
		event.ToStatus = ""
	}
	if event.Reason != nil && strings.TrimSpace(*event.Reason) == "" {
		event.Reason = nil
	}
	return event
}

func (s *journalEntryService) dispatch(event domain.EntryEvent) {
	if s.dispatcher == nil {
		return
	}
	s.dispatcher.Dispatch(event)
}
