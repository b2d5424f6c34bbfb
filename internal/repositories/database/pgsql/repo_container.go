package pgsql

import (
	portsrepo "github.com/SscSPs/journal_workflow_app/internal/core/ports/repositories"
)

// NewRepositoryProvider wires every Postgres repository onto db.
func NewRepositoryProvider(db DB) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo:      newPgxAccountRepository(db),
		UserRepo:         newPgxUserRepository(db),
		JournalEntryRepo: newPgxJournalEntryRepository(db),
	}
}
