package domain

import "time"

// EntryEvent records one accepted mutation of a journal entry. Events are
// append-only, so rejection reasons survive later edits and resubmissions.
type EntryEvent struct {
	EventID    string      `json:"eventID"`
	EntryID    string      `json:"entryID"`
	Operation  Operation   `json:"operation"`
	FromStatus EntryStatus `json:"fromStatus,omitempty"` // Empty for create
	ToStatus   EntryStatus `json:"toStatus,omitempty"`   // Empty for delete
	ActorID    string      `json:"actorID"`
	Reason     *string     `json:"reason,omitempty"`
	Version    int64       `json:"version"` // Entry version after the mutation
	OccurredAt time.Time   `json:"occurredAt"`
}
