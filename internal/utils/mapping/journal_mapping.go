package mapping

import (
	"github.com/SscSPs/journal_workflow_app/internal/core/domain"
	"github.com/SscSPs/journal_workflow_app/internal/models"
)

// ToModelJournalEntry converts a domain JournalEntry header to a model JournalEntry
func ToModelJournalEntry(d domain.JournalEntry) models.JournalEntry {
	return models.JournalEntry{
		EntryID:         d.EntryID,
		EntryDate:       d.EntryDate,
		Description:     d.Description,
		Status:          string(d.Status),
		Version:         d.Version,
		SubmittedBy:     d.SubmittedBy,
		SubmittedAt:     d.SubmittedAt,
		ApprovedBy:      d.ApprovedBy,
		ApprovedAt:      d.ApprovedAt,
		RejectedBy:      d.RejectedBy,
		RejectedAt:      d.RejectedAt,
		RejectionReason: d.RejectionReason,
		ConfirmedBy:     d.ConfirmedBy,
		ConfirmedAt:     d.ConfirmedAt,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournalEntry converts a model JournalEntry and its lines to a domain JournalEntry
func ToDomainJournalEntry(m models.JournalEntry, lines []models.JournalLine) domain.JournalEntry {
	return domain.JournalEntry{
		EntryID:         m.EntryID,
		EntryDate:       m.EntryDate,
		Description:     m.Description,
		Status:          domain.EntryStatus(m.Status),
		Version:         m.Version,
		Lines:           ToDomainJournalLines(lines),
		SubmittedBy:     m.SubmittedBy,
		SubmittedAt:     m.SubmittedAt,
		ApprovedBy:      m.ApprovedBy,
		ApprovedAt:      m.ApprovedAt,
		RejectedBy:      m.RejectedBy,
		RejectedAt:      m.RejectedAt,
		RejectionReason: m.RejectionReason,
		ConfirmedBy:     m.ConfirmedBy,
		ConfirmedAt:     m.ConfirmedAt,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelJournalLines converts domain lines to model lines belonging to entryID
func ToModelJournalLines(entryID string, ds []domain.JournalLine) []models.JournalLine {
	ms := make([]models.JournalLine, len(ds))
	for i, d := range ds {
		ms[i] = models.JournalLine{
			LineID:       d.LineID,
			EntryID:      entryID,
			LineNumber:   d.LineNumber,
			AccountID:    d.AccountID,
			DebitAmount:  d.DebitAmount,
			CreditAmount: d.CreditAmount,
			Memo:         d.Memo,
		}
	}
	return ms
}

// ToDomainJournalLines converts model lines to domain lines
func ToDomainJournalLines(ms []models.JournalLine) []domain.JournalLine {
	ds := make([]domain.JournalLine, len(ms))
	for i, m := range ms {
		ds[i] = domain.JournalLine{
			LineID:       m.LineID,
			LineNumber:   m.LineNumber,
			AccountID:    m.AccountID,
			DebitAmount:  m.DebitAmount,
			CreditAmount: m.CreditAmount,
			Memo:         m.Memo,
		}
	}
	return ds
}

// ToModelEntryEvent converts a domain EntryEvent to a model EntryEvent. Empty
// statuses become NULL.
func ToModelEntryEvent(d domain.EntryEvent) models.EntryEvent {
	return models.EntryEvent{
		EventID:    d.EventID,
		EntryID:    d.EntryID,
		Operation:  string(d.Operation),
		FromStatus: statusPtr(d.FromStatus),
		ToStatus:   statusPtr(d.ToStatus),
		ActorID:    d.ActorID,
		Reason:     d.Reason,
		Version:    d.Version,
		OccurredAt: d.OccurredAt,
	}
}

// ToDomainEntryEvent converts a model EntryEvent to a domain EntryEvent
func ToDomainEntryEvent(m models.EntryEvent) domain.EntryEvent {
	e := domain.EntryEvent{
		EventID:    m.EventID,
		EntryID:    m.EntryID,
		Operation:  domain.Operation(m.Operation),
		ActorID:    m.ActorID,
		Reason:     m.Reason,
		Version:    m.Version,
		OccurredAt: m.OccurredAt,
	}
	if m.FromStatus != nil {
		e.FromStatus = domain.EntryStatus(*m.FromStatus)
	}
	if m.ToStatus != nil {
		e.ToStatus = domain.EntryStatus(*m.ToStatus)
	}
	return e
}

func statusPtr(s domain.EntryStatus) *string {
	if s == "" {
		return nil
	}
	v := string(s)
	return &v
}
