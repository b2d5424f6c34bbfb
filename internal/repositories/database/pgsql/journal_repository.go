package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/SscSPs/journal_workflow_app/internal/apperrors"
	"github.com/SscSPs/journal_workflow_app/internal/core/domain"
	portsrepo "github.com/SscSPs/journal_workflow_app/internal/core/ports/repositories"
	"github.com/SscSPs/journal_workflow_app/internal/models"
	"github.com/SscSPs/journal_workflow_app/internal/utils/mapping"
	"github.com/SscSPs/journal_workflow_app/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
)

const (
	defaultListLimit = 20

	entryColumns = `entry_id, entry_date, description, status, version,
		submitted_by, submitted_at, approved_by, approved_at,
		rejected_by, rejected_at, rejection_reason, confirmed_by, confirmed_at,
		created_at, created_by, last_updated_at, last_updated_by`

	lineColumns = `line_id, entry_id, line_number, account_id, debit_amount, credit_amount, memo`

	eventColumns = `event_id, entry_id, operation, from_status, to_status, actor_id, reason, version, occurred_at`
)

type PgxJournalEntryRepository struct {
	BaseRepository
}

// newPgxJournalEntryRepository creates a new repository for journal entries, their lines and history.
func newPgxJournalEntryRepository(db DB) portsrepo.JournalEntryRepositoryFacade {
	return &PgxJournalEntryRepository{BaseRepository: BaseRepository{DB: db}}
}

// Ensure PgxJournalEntryRepository implements portsrepo.JournalEntryRepositoryFacade
var _ portsrepo.JournalEntryRepositoryFacade = (*PgxJournalEntryRepository)(nil)

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (models.JournalEntry, error) {
	var m models.JournalEntry
	err := row.Scan(
		&m.EntryID,
		&m.EntryDate,
		&m.Description,
		&m.Status,
		&m.Version,
		&m.SubmittedBy,
		&m.SubmittedAt,
		&m.ApprovedBy,
		&m.ApprovedAt,
		&m.RejectedBy,
		&m.RejectedAt,
		&m.RejectionReason,
		&m.ConfirmedBy,
		&m.ConfirmedAt,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// CreateEntry inserts the entry header, its lines and the create event in one transaction.
func (r *PgxJournalEntryRepository) CreateEntry(ctx context.Context, entry domain.JournalEntry, event domain.EntryEvent) error {
	m := mapping.ToModelJournalEntry(entry)

	return r.inTx(ctx, func(tx pgx.Tx) error {
		query := `
			INSERT INTO journal_entries (entry_id, entry_date, description, status, version, created_at, created_by, last_updated_at, last_updated_by)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
		`
		_, err := tx.Exec(ctx, query,
			m.EntryID,
			m.EntryDate,
			m.Description,
			m.Status,
			m.Version,
			m.CreatedAt,
			m.CreatedBy,
			m.LastUpdatedAt,
			m.LastUpdatedBy,
		)
		if err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("%w: journal entry %s already exists", apperrors.ErrDuplicate, m.EntryID)
			}
			return apperrors.NewAppError(500, "failed to insert journal entry "+m.EntryID, err)
		}

		if err := insertLines(ctx, tx, m.EntryID, entry.Lines); err != nil {
			return err
		}
		return insertEvent(ctx, tx, event)
	})
}

// UpdateEntry rewrites the entry if the stored version still equals expectedVersion.
func (r *PgxJournalEntryRepository) UpdateEntry(ctx context.Context, entry domain.JournalEntry, expectedVersion int64, event domain.EntryEvent) error {
	m := mapping.ToModelJournalEntry(entry)

	return r.inTx(ctx, func(tx pgx.Tx) error {
		query := `
			UPDATE journal_entries
			SET entry_date = $1, description = $2, status = $3, version = version + 1,
			    submitted_by = $4, submitted_at = $5, approved_by = $6, approved_at = $7,
			    rejected_by = $8, rejected_at = $9, rejection_reason = $10,
			    confirmed_by = $11, confirmed_at = $12,
			    last_updated_at = $13, last_updated_by = $14
			WHERE entry_id = $15 AND version = $16;
		`
		cmdTag, err := tx.Exec(ctx, query,
			m.EntryDate,
			m.Description,
			m.Status,
			m.SubmittedBy,
			m.SubmittedAt,
			m.ApprovedBy,
			m.ApprovedAt,
			m.RejectedBy,
			m.RejectedAt,
			m.RejectionReason,
			m.ConfirmedBy,
			m.ConfirmedAt,
			m.LastUpdatedAt,
			m.LastUpdatedBy,
			m.EntryID,
			expectedVersion,
		)
		if err != nil {
			return apperrors.NewAppError(500, "failed to update journal entry "+m.EntryID, err)
		}
		if cmdTag.RowsAffected() == 0 {
			return fmt.Errorf("journal entry %s is no longer at version %d: %w", m.EntryID, expectedVersion, apperrors.ErrConflict)
		}

		if _, err := tx.Exec(ctx, `DELETE FROM journal_lines WHERE entry_id = $1;`, m.EntryID); err != nil {
			return apperrors.NewAppError(500, "failed to clear lines of journal entry "+m.EntryID, err)
		}
		if err := insertLines(ctx, tx, m.EntryID, entry.Lines); err != nil {
			return err
		}
		return insertEvent(ctx, tx, event)
	})
}

// DeleteEntry removes the entry (lines cascade) if the stored version still equals expectedVersion.
func (r *PgxJournalEntryRepository) DeleteEntry(ctx context.Context, entryID string, expectedVersion int64, event domain.EntryEvent) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		cmdTag, err := tx.Exec(ctx, `DELETE FROM journal_entries WHERE entry_id = $1 AND version = $2;`, entryID, expectedVersion)
		if err != nil {
			return apperrors.NewAppError(500, "failed to delete journal entry "+entryID, err)
		}
		if cmdTag.RowsAffected() == 0 {
			return fmt.Errorf("journal entry %s is no longer at version %d: %w", entryID, expectedVersion, apperrors.ErrConflict)
		}
		return insertEvent(ctx, tx, event)
	})
}

func insertLines(ctx context.Context, q Querier, entryID string, lines []domain.JournalLine) error {
	query := `
		INSERT INTO journal_lines (line_id, entry_id, line_number, account_id, debit_amount, credit_amount, memo)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	for _, l := range mapping.ToModelJournalLines(entryID, lines) {
		_, err := q.Exec(ctx, query,
			l.LineID,
			l.EntryID,
			l.LineNumber,
			l.AccountID,
			l.DebitAmount,
			l.CreditAmount,
			l.Memo,
		)
		if err != nil {
			return apperrors.NewAppError(500, fmt.Sprintf("failed to insert line %d of journal entry %s", l.LineNumber, entryID), err)
		}
	}
	return nil
}

func insertEvent(ctx context.Context, q Querier, event domain.EntryEvent) error {
	m := mapping.ToModelEntryEvent(event)
	query := `
		INSERT INTO journal_entry_events (event_id, entry_id, operation, from_status, to_status, actor_id, reason, version, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := q.Exec(ctx, query,
		m.EventID,
		m.EntryID,
		m.Operation,
		m.FromStatus,
		m.ToStatus,
		m.ActorID,
		m.Reason,
		m.Version,
		m.OccurredAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to record history for journal entry "+m.EntryID, err)
	}
	return nil
}

// FindEntryByID retrieves an entry and its lines.
func (r *PgxJournalEntryRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE entry_id = $1;`

	m, err := scanEntry(r.DB.QueryRow(ctx, query, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find journal entry by ID "+entryID, err)
	}

	lines, err := r.FindLinesByEntryIDs(ctx, []string{entryID})
	if err != nil {
		return nil, err
	}

	entry := mapping.ToDomainJournalEntry(m, nil)
	entry.Lines = lines[entryID]
	if entry.Lines == nil {
		entry.Lines = []domain.JournalLine{}
	}
	return &entry, nil
}

// FindLinesByEntryIDs retrieves lines for several entries, grouped by entry and ordered by line number.
func (r *PgxJournalEntryRepository) FindLinesByEntryIDs(ctx context.Context, entryIDs []string) (map[string][]domain.JournalLine, error) {
	result := make(map[string][]domain.JournalLine, len(entryIDs))
	if len(entryIDs) == 0 {
		return result, nil
	}

	query := `SELECT ` + lineColumns + ` FROM journal_lines WHERE entry_id = ANY($1) ORDER BY entry_id, line_number;`
	rows, err := r.DB.Query(ctx, query, entryIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query journal lines", err)
	}
	defer rows.Close()

	grouped := make(map[string][]models.JournalLine, len(entryIDs))
	for rows.Next() {
		var l models.JournalLine
		if err := rows.Scan(
			&l.LineID,
			&l.EntryID,
			&l.LineNumber,
			&l.AccountID,
			&l.DebitAmount,
			&l.CreditAmount,
			&l.Memo,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan journal line row", err)
		}
		grouped[l.EntryID] = append(grouped[l.EntryID], l)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating journal line rows", err)
	}

	for id, ls := range grouped {
		result[id] = mapping.ToDomainJournalLines(ls)
	}
	return result, nil
}

// ListEntries retrieves a page of entry headers ordered by entry date, creation
// time and ID, newest first. The returned token is nil on the last page.
func (r *PgxJournalEntryRepository) ListEntries(ctx context.Context, status *domain.EntryStatus, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	// One extra row tells us whether another page exists.
	fetchLimit := limit + 1

	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE TRUE`
	args := []any{}

	if status != nil {
		args = append(args, string(*status))
		query += ` AND status = $` + strconv.Itoa(len(args))
	}
	if nextToken != nil && *nextToken != "" {
		cursor, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", err)
		}
		args = append(args, cursor.EntryDate, cursor.CreatedAt, cursor.EntryID)
		n := len(args)
		query += fmt.Sprintf(` AND (entry_date, created_at, entry_id) < ($%d, $%d, $%d)`, n-2, n-1, n)
	}
	args = append(args, fetchLimit)
	query += ` ORDER BY entry_date DESC, created_at DESC, entry_id DESC LIMIT $` + strconv.Itoa(len(args)) + `;`

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query journal entries", err)
	}
	defer rows.Close()

	entries := make([]domain.JournalEntry, 0, fetchLimit)
	for rows.Next() {
		m, err := scanEntry(rows)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan journal entry row", err)
		}
		entries = append(entries, mapping.ToDomainJournalEntry(m, nil))
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating journal entry rows", err)
	}

	var newNextToken *string
	if len(entries) > limit {
		last := entries[limit-1]
		token := pagination.EncodeToken(pagination.Cursor{EntryDate: last.EntryDate, CreatedAt: last.CreatedAt, EntryID: last.EntryID})
		newNextToken = &token
		entries = entries[:limit]
	}
	return entries, newNextToken, nil
}

// ListEntryEvents returns an entry's history, oldest first. Events outlive deleted entries.
func (r *PgxJournalEntryRepository) ListEntryEvents(ctx context.Context, entryID string) ([]domain.EntryEvent, error) {
	query := `SELECT ` + eventColumns + ` FROM journal_entry_events WHERE entry_id = $1 ORDER BY occurred_at, version;`
	rows, err := r.DB.Query(ctx, query, entryID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query history for journal entry "+entryID, err)
	}
	defer rows.Close()

	events := []domain.EntryEvent{}
	for rows.Next() {
		var m models.EntryEvent
		if err := rows.Scan(
			&m.EventID,
			&m.EntryID,
			&m.Operation,
			&m.FromStatus,
			&m.ToStatus,
			&m.ActorID,
			&m.Reason,
			&m.Version,
			&m.OccurredAt,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan history row for journal entry "+entryID, err)
		}
		events = append(events, mapping.ToDomainEntryEvent(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating history rows for journal entry "+entryID, err)
	}
	return events, nil
}
