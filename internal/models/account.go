package models

// Account is a row of the accounts table.
type Account struct {
	AccountID   string `db:"account_id"`
	Code        string `db:"code"`
	Name        string `db:"name"`
	AccountType string `db:"account_type"`
	IsActive    bool   `db:"is_active"`
}
