package services_test

import (
	"context"
	"sync"
	"time"

	"github.com/SscSPs/journal_workflow_app/internal/core/domain"
	portsrepo "github.com/SscSPs/journal_workflow_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/journal_workflow_app/internal/core/ports/services"
	"github.com/stretchr/testify/mock"
)

// --- Mock JournalEntryRepository ---
type MockJournalEntryRepository struct {
	mock.Mock
}

var _ portsrepo.JournalEntryRepositoryFacade = (*MockJournalEntryRepository)(nil)

func (m *MockJournalEntryRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	// Hand out a copy so the service cannot mutate the fixture.
	entry := *args.Get(0).(*domain.JournalEntry)
	entry.Lines = append([]domain.JournalLine(nil), entry.Lines...)
	return &entry, args.Error(1)
}

func (m *MockJournalEntryRepository) ListEntries(ctx context.Context, status *domain.EntryStatus, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	args := m.Called(ctx, status, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var next *string
	if args.Get(1) != nil {
		tok := args.Get(1).(string)
		next = &tok
	}
	return args.Get(0).([]domain.JournalEntry), next, args.Error(2)
}

func (m *MockJournalEntryRepository) FindLinesByEntryIDs(ctx context.Context, entryIDs []string) (map[string][]domain.JournalLine, error) {
	args := m.Called(ctx, entryIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string][]domain.JournalLine), args.Error(1)
}

func (m *MockJournalEntryRepository) CreateEntry(ctx context.Context, entry domain.JournalEntry, event domain.EntryEvent) error {
	args := m.Called(ctx, entry, event)
	return args.Error(0)
}

func (m *MockJournalEntryRepository) UpdateEntry(ctx context.Context, entry domain.JournalEntry, expectedVersion int64, event domain.EntryEvent) error {
	args := m.Called(ctx, entry, expectedVersion, event)
	return args.Error(0)
}

func (m *MockJournalEntryRepository) DeleteEntry(ctx context.Context, entryID string, expectedVersion int64, event domain.EntryEvent) error {
	args := m.Called(ctx, entryID, expectedVersion, event)
	return args.Error(0)
}

func (m *MockJournalEntryRepository) ListEntryEvents(ctx context.Context, entryID string) ([]domain.EntryEvent, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.EntryEvent), args.Error(1)
}

// --- Mock AccountRepository ---
type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountReader = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, activeOnly bool, limit int, offset int) ([]domain.Account, error) {
	args := m.Called(ctx, activeOnly, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

// --- Mock UserRepository ---
type MockUserRepository struct {
	mock.Mock
}

var _ portsrepo.UserRepositoryFacade = (*MockUserRepository)(nil)

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUsers(ctx context.Context, limit int, offset int) ([]domain.User, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateUserRole(ctx context.Context, userID string, role domain.Role, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, userID, role, updatedBy, updatedAt)
	return args.Error(0)
}

func (m *MockUserRepository) MarkUserDeleted(ctx context.Context, userID string, deletedAt time.Time, deletedBy string) error {
	args := m.Called(ctx, userID, deletedAt, deletedBy)
	return args.Error(0)
}

// --- Mock RoleResolver ---
type MockRoleResolver struct {
	mock.Mock
}

var _ portssvc.RoleResolver = (*MockRoleResolver)(nil)

func (m *MockRoleResolver) ResolveRole(ctx context.Context, userID string) (domain.Role, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(domain.Role), args.Error(1)
}

// --- Recording dispatcher ---
type recordingDispatcher struct {
	mu     sync.Mutex
	events []domain.EntryEvent
	closed bool
}

var _ portssvc.EntryEventDispatcher = (*recordingDispatcher)(nil)

func (d *recordingDispatcher) Dispatch(event domain.EntryEvent) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, event)
}

func (d *recordingDispatcher) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closed = true
}

func (d *recordingDispatcher) Events() []domain.EntryEvent {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]domain.EntryEvent(nil), d.events...)
}

// --- Mock EntryEventPublisher ---
type MockEntryEventPublisher struct {
	mock.Mock
}

var _ portssvc.EntryEventPublisher = (*MockEntryEventPublisher)(nil)

func (m *MockEntryEventPublisher) PublishEntryEvent(ctx context.Context, event domain.EntryEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockEntryEventPublisher) Close() error {
	args := m.Called()
	return args.Error(0)
}
