package services

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"github.com/Atharvasurya/punjab-alumni-sih/internal/pkg/apperrors"
	"github.com/Atharvasurya/punjab-alumni-sih/internal/pkg/auth"
	"github.com/Atharvasurya/punjab-alumni-sih/internal/pkg/metrics"
)

// AuthService handles login and logout
type AuthService interface {
	Login(ctx context.Context, username, password string) (string, *auth.Session, error)
	Logout(ctx context.Context, token string) error
}

type authServiceImpl struct {
	credentials *auth.Credentials
	sessions    *auth.SessionService
	logger      zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(credentials *auth.Credentials, sessions *auth.SessionService, logger zerolog.Logger) AuthService {
	return &authServiceImpl{
		credentials: credentials,
		sessions:    sessions,
		logger:      logger,
	}
}

// Login checks the credentials and opens a session, returning its token
func (s *authServiceImpl) Login(ctx context.Context, username, password string) (string, *auth.Session, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		metrics.LoginAttempts.WithLabelValues("invalid_request").Inc()
		return "", nil, apperrors.NewCustomError(apperrors.ErrBadRequest, "Username and password are required")
	}

	role, err := s.credentials.Authenticate(username, password)
	if err != nil {
		metrics.LoginAttempts.WithLabelValues("rejected").Inc()
		s.logger.Warn().Str("username", username).Msg("Rejected login attempt")
		return "", nil, apperrors.NewCustomError(apperrors.ErrInvalidCredentials, "Invalid credentials")
	}

	token, session, err := s.sessions.Issue(ctx, role, username)
	if err != nil {
		metrics.LoginAttempts.WithLabelValues("error").Inc()
		s.logger.Error().Err(err).Str("username", username).Msg("Failed to open session")
		return "", nil, err
	}

	metrics.LoginAttempts.WithLabelValues("success").Inc()
	s.logger.Info().Str("role", string(role)).Str("sessionId", session.ID).Msg("User logged in")
	return token, session, nil
}

// Logout revokes the session behind token. A missing token is not an error.
func (s *authServiceImpl) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.sessions.Revoke(ctx, token); err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		s.logger.Error().Err(err).Msg("Failed to revoke session")
		return err
	}
	return nil
}
