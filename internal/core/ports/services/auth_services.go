package services

import (
	"context"

	"github.com/SscSPs/journal_workflow_app/internal/dto"
)

// AuthSvcFacade issues access tokens for email/password credentials.
type AuthSvcFacade interface {
	// Login verifies credentials and returns a signed access token. Wrong
	// credentials and deactivated users both yield apperrors.ErrUnauthorized.
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
}
