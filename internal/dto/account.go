package dto

import (
	"github.com/SscSPs/journal_workflow_app/internal/core/domain"
)

// ListAccountsParams defines query parameters for listing accounts.
type ListAccountsParams struct {
	Limit           int  `form:"limit,default=100" binding:"min=1,max=500"`
	Offset          int  `form:"offset,default=0" binding:"min=0"`
	IncludeInactive bool `form:"includeInactive"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID   string             `json:"accountID"`
	Code        string             `json:"code"`
	Name        string             `json:"name"`
	AccountType domain.AccountType `json:"accountType"`
	IsActive    bool               `json:"isActive"`
}

// ListAccountsResponse wraps a page of accounts.
type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:   acc.AccountID,
		Code:        acc.Code,
		Name:        acc.Name,
		AccountType: acc.AccountType,
		IsActive:    acc.IsActive,
	}
}

// ToListAccountsResponse converts a slice of domain.Account to ListAccountsResponse DTO
func ToListAccountsResponse(accounts []domain.Account) ListAccountsResponse {
	list := make([]AccountResponse, len(accounts))
	for i := range accounts {
		list[i] = ToAccountResponse(&accounts[i])
	}
	return ListAccountsResponse{Accounts: list}
}
