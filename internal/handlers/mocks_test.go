package handlers_test

import (
	"context"

	"github.com/SscSPs/journal_workflow_app/internal/core/domain"
	portssvc "github.com/SscSPs/journal_workflow_app/internal/core/ports/services"
	"github.com/SscSPs/journal_workflow_app/internal/dto"
	"github.com/stretchr/testify/mock"
)

// --- Mock JournalEntryService ---
type MockJournalEntryService struct {
	mock.Mock
}

var _ portssvc.JournalEntrySvcFacade = (*MockJournalEntryService)(nil)

func (m *MockJournalEntryService) entryResult(args mock.Arguments) (*domain.JournalEntry, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalEntryService) GetEntry(ctx context.Context, entryID string, actingUserID string) (*domain.JournalEntry, error) {
	return m.entryResult(m.Called(ctx, entryID, actingUserID))
}

func (m *MockJournalEntryService) ListEntries(ctx context.Context, params dto.ListJournalEntriesParams, actingUserID string) ([]domain.JournalEntry, *string, error) {
	args := m.Called(ctx, params, actingUserID)
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

func (m *MockJournalEntryService) GetEntryHistory(ctx context.Context, entryID string, actingUserID string) ([]domain.EntryEvent, error) {
	args := m.Called(ctx, entryID, actingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.EntryEvent), args.Error(1)
}

func (m *MockJournalEntryService) CreateEntry(ctx context.Context, req dto.CreateJournalEntryRequest, actingUserID string) (*domain.JournalEntry, error) {
	return m.entryResult(m.Called(ctx, req, actingUserID))
}

func (m *MockJournalEntryService) UpdateEntry(ctx context.Context, entryID string, req dto.UpdateJournalEntryRequest, actingUserID string) (*domain.JournalEntry, error) {
	return m.entryResult(m.Called(ctx, entryID, req, actingUserID))
}

func (m *MockJournalEntryService) DeleteEntry(ctx context.Context, entryID string, expectedVersion int64, actingUserID string) error {
	args := m.Called(ctx, entryID, expectedVersion, actingUserID)
	return args.Error(0)
}

func (m *MockJournalEntryService) SubmitEntry(ctx context.Context, entryID string, expectedVersion int64, actingUserID string) (*domain.JournalEntry, error) {
	return m.entryResult(m.Called(ctx, entryID, expectedVersion, actingUserID))
}

func (m *MockJournalEntryService) ApproveEntry(ctx context.Context, entryID string, expectedVersion int64, actingUserID string) (*domain.JournalEntry, error) {
	return m.entryResult(m.Called(ctx, entryID, expectedVersion, actingUserID))
}

func (m *MockJournalEntryService) RejectEntry(ctx context.Context, entryID string, expectedVersion int64, reason string, actingUserID string) (*domain.JournalEntry, error) {
	return m.entryResult(m.Called(ctx, entryID, expectedVersion, reason, actingUserID))
}

func (m *MockJournalEntryService) ConfirmEntry(ctx context.Context, entryID string, expectedVersion int64, actingUserID string) (*domain.JournalEntry, error) {
	return m.entryResult(m.Called(ctx, entryID, expectedVersion, actingUserID))
}

func (m *MockJournalEntryService) ValidateDraft(ctx context.Context, req dto.CreateJournalEntryRequest, actingUserID string) (*dto.DraftValidation, error) {
	args := m.Called(ctx, req, actingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.DraftValidation), args.Error(1)
}

// --- Mock UserService ---
type MockUserService struct {
	mock.Mock
}

var _ portssvc.UserSvcFacade = (*MockUserService)(nil)

func (m *MockUserService) userResult(args mock.Arguments) (*domain.User, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) GetUserByID(ctx context.Context, userID string, actingUserID string) (*domain.User, error) {
	return m.userResult(m.Called(ctx, userID, actingUserID))
}

func (m *MockUserService) ListUsers(ctx context.Context, params dto.ListUsersParams, actingUserID string) ([]domain.User, error) {
	args := m.Called(ctx, params, actingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserService) CreateUser(ctx context.Context, req dto.CreateUserRequest, actingUserID string) (*domain.User, error) {
	return m.userResult(m.Called(ctx, req, actingUserID))
}

func (m *MockUserService) UpdateUserRole(ctx context.Context, userID string, req dto.UpdateUserRoleRequest, actingUserID string) (*domain.User, error) {
	return m.userResult(m.Called(ctx, userID, req, actingUserID))
}

func (m *MockUserService) DeactivateUser(ctx context.Context, userID string, actingUserID string) error {
	args := m.Called(ctx, userID, actingUserID)
	return args.Error(0)
}

func (m *MockUserService) ResolveRole(ctx context.Context, userID string) (domain.Role, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(domain.Role), args.Error(1)
}

func (m *MockUserService) EnsureAdmin(ctx context.Context, email string, password string) error {
	args := m.Called(ctx, email, password)
	return args.Error(0)
}

// --- Mock AccountService ---
type MockAccountService struct {
	mock.Mock
}

var _ portssvc.AccountSvcFacade = (*MockAccountService)(nil)

func (m *MockAccountService) GetAccountByID(ctx context.Context, accountID string, actingUserID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID, actingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) ListAccounts(ctx context.Context, params dto.ListAccountsParams, actingUserID string) ([]domain.Account, error) {
	args := m.Called(ctx, params, actingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

// --- Mock AuthService ---
type MockAuthService struct {
	mock.Mock
}

var _ portssvc.AuthSvcFacade = (*MockAuthService)(nil)

func (m *MockAuthService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.LoginResponse), args.Error(1)
}
