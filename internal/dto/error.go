package dto

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error   string         `json:"error"`
	Code    string         `json:"code"`
	Details map[string]any `json:"details,omitempty"`
}

// ValidateJournalEntryResponse is returned by the dry-run validation endpoint.
type ValidateJournalEntryResponse struct {
	Valid       bool           `json:"valid"`
	TotalDebit  string         `json:"totalDebit"`
	TotalCredit string         `json:"totalCredit"`
	Difference  string         `json:"difference"`
	Error       *ErrorResponse `json:"error,omitempty"`
}
