package services

import (
	portsrepo "github.com/SscSPs/journal_workflow_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/journal_workflow_app/internal/core/ports/services"
	"github.com/SscSPs/journal_workflow_app/internal/platform/config"
)

// NewServiceContainer wires every service. dispatcher may be nil, in which
// case lifecycle events are only recorded in the history table.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, dispatcher portssvc.EntryEventDispatcher) *portssvc.ServiceContainer {
	userSvc := NewUserService(repos.UserRepo)

	var journalOpts []JournalEntryServiceOption
	if dispatcher != nil {
		journalOpts = append(journalOpts, WithEventDispatcher(dispatcher))
	}

	return &portssvc.ServiceContainer{
		Account:      NewAccountService(repos.AccountRepo, userSvc),
		User:         userSvc,
		Auth:         NewAuthService(cfg, repos.UserRepo),
		JournalEntry: NewJournalEntryService(repos.JournalEntryRepo, repos.AccountRepo, userSvc, journalOpts...),
	}
}
