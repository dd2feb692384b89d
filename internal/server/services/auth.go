package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/dmitrijs2005/gophauth/internal/logging"
	"github.com/dmitrijs2005/gophauth/internal/server/auth"
	"github.com/dmitrijs2005/gophauth/internal/server/models"
)

// AuthService is the facade the transports call. It combines the credential
// store, the token issuer and verifier, and the session registry.
//
// A presented token is accepted only when its signature and expiry check out
// AND its session has not been revoked.
type AuthService struct {
	credentials *CredentialStore
	registry    *SessionRegistry
	issuer      *auth.Issuer
	verifier    *auth.Verifier
	logger      logging.Logger
	now         func() time.Time
}

func NewAuthService(
	credentials *CredentialStore,
	registry *SessionRegistry,
	issuer *auth.Issuer,
	verifier *auth.Verifier,
	logger logging.Logger,
) *AuthService {
	return &AuthService{
		credentials: credentials,
		registry:    registry,
		issuer:      issuer,
		verifier:    verifier,
		logger:      logger.With("module", "auth"),
		now:         time.Now,
	}
}

func (s *AuthService) Register(ctx context.Context, username, password, role string) (*models.User, error) {
	return s.credentials.Register(ctx, username, password, role)
}

// Login checks the credentials, mints a token and records its session.
func (s *AuthService) Login(ctx context.Context, username, password, originAddress string) (string, error) {
	if username == "" || password == "" {
		return "", fmt.Errorf("%w: username and password are required", common.ErrorValidation)
	}

	u, err := s.credentials.Authenticate(ctx, username, password)
	if err != nil {
		if errors.Is(err, common.ErrInvalidCredentials) {
			s.logger.Info(ctx, "login rejected", "username", username, "origin", originAddress)
		}
		return "", err
	}

	issuedAt := s.now()
	token, err := s.issuer.Issue(u.ID, u.Role, issuedAt, originAddress)
	if err != nil {
		s.logger.Error(ctx, "token signing failed", "user_id", u.ID, "error", err)
		return "", common.ErrorInternal
	}

	if err := s.registry.Record(ctx, token, u.ID, issuedAt, originAddress); err != nil {
		return "", err
	}

	s.logger.Info(ctx, "login succeeded", "user_id", u.ID, "origin", originAddress)
	return token, nil
}

// Logout revokes token. Returns common.ErrorNotFound when no session matched,
// which includes a second logout of the same token.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return fmt.Errorf("%w: token is required", common.ErrorValidation)
	}

	n, err := s.registry.Revoke(ctx, token)
	if err != nil {
		return err
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

// VerifyPresented returns the claims of a valid, unrevoked token.
func (s *AuthService) VerifyPresented(ctx context.Context, token string) (*auth.Claims, error) {
	if token == "" {
		return nil, fmt.Errorf("%w: token is required", common.ErrorValidation)
	}

	claims, err := s.verifier.Verify(token)
	if err != nil {
		return nil, err
	}

	active, err := s.registry.IsActive(ctx, token)
	if err != nil {
		return nil, err
	}
	if !active {
		return nil, common.ErrInvalidToken
	}
	return claims, nil
}

// Authorize returns the user ID carried by token when its role equals
// requiredRole.
func (s *AuthService) Authorize(ctx context.Context, token, requiredRole string) (string, error) {
	if token == "" {
		return "", common.ErrUnauthenticated
	}

	claims, err := s.VerifyPresented(ctx, token)
	if err != nil {
		return "", err
	}
	if claims.Role != requiredRole {
		return "", common.ErrForbidden
	}
	return claims.UserID, nil
}

func (s *AuthService) RequireAdmin(ctx context.Context, token string) (string, error) {
	return s.Authorize(ctx, token, common.RoleAdmin)
}
