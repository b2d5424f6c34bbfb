package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/journal_workflow_app/internal/apperrors"
	portsrepo "github.com/SscSPs/journal_workflow_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/journal_workflow_app/internal/core/ports/services"
	"github.com/SscSPs/journal_workflow_app/internal/dto"
	"github.com/SscSPs/journal_workflow_app/internal/platform/config"
	"github.com/SscSPs/journal_workflow_app/internal/utils"
)

var errInvalidCredentials = fmt.Errorf("%w: invalid email or password", apperrors.ErrUnauthorized)

// authService issues JWT access tokens for email/password credentials.
type authService struct {
	BaseService
	cfg      *config.Config
	userRepo portsrepo.UserReader
}

// NewAuthService creates a new AuthService.
func NewAuthService(cfg *config.Config, userRepo portsrepo.UserReader) portssvc.AuthSvcFacade {
	return &authService{cfg: cfg, userRepo: userRepo}
}

var _ portssvc.AuthSvcFacade = (*authService)(nil)

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, strings.TrimSpace(req.Email))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, errInvalidCredentials
		}
		s.LogError(ctx, err, "Failed to look up user for login")
		return nil, fmt.Errorf("failed to log in: %w", err)
	}

	if !user.IsActive || user.DeletedAt != nil {
		s.GetLogger(ctx).Warn("Login attempt by deactivated user", slog.String("user_id", user.UserID))
		return nil, errInvalidCredentials
	}
	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, errInvalidCredentials
	}

	token, expiresAt, err := utils.GenerateJWT(user.UserID, s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		s.LogError(ctx, err, "Failed to generate access token", slog.String("user_id", user.UserID))
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	s.LogInfo(ctx, "User logged in", slog.String("user_id", user.UserID))
	return &dto.LoginResponse{Token: token, ExpiresAt: expiresAt}, nil
}
