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
	"github.com/dmitrijs2005/gophauth/internal/server/repositories/users"
)

// CredentialStore owns user identity records: it hashes passwords on the
// way in and compares them on the way out.
type CredentialStore struct {
	repo    users.Repository
	hasher  *auth.Hasher
	timeout time.Duration
	logger  logging.Logger
}

func NewCredentialStore(repo users.Repository, hasher *auth.Hasher, timeout time.Duration, logger logging.Logger) *CredentialStore {
	return &CredentialStore{
		repo:    repo,
		hasher:  hasher,
		timeout: timeout,
		logger:  logger.With("module", "credentials"),
	}
}

// Register creates a user. Returns common.ErrorValidation for an empty field
// and common.ErrorAlreadyExists when the username is taken.
func (s *CredentialStore) Register(ctx context.Context, username, password, role string) (*models.User, error) {
	if username == "" || password == "" || role == "" {
		return nil, fmt.Errorf("%w: username, password and role are required", common.ErrorValidation)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		if errors.Is(err, common.ErrorValidation) {
			return nil, err
		}
		s.logger.Error(ctx, "password hashing failed", "username", username, "error", err)
		return nil, common.ErrorInternal
	}

	sctx, cancel := storeContext(ctx, s.timeout)
	defer cancel()

	u, err := s.repo.Create(sctx, &models.User{UserName: username, PasswordHash: hash, Role: role})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, err
		}
		s.logger.Error(ctx, "user insert failed", "username", username, "error", err)
		return nil, common.ErrorInternal
	}

	s.logger.Info(ctx, "user registered", "user_id", u.ID, "username", username, "role", role)
	return u, nil
}

// FindByUsername is a read-only lookup. Returns common.ErrorNotFound when absent.
func (s *CredentialStore) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	sctx, cancel := storeContext(ctx, s.timeout)
	defer cancel()

	u, err := s.repo.GetUserByLogin(sctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, err
		}
		s.logger.Error(ctx, "user lookup failed", "username", username, "error", err)
		return nil, common.ErrorInternal
	}
	return u, nil
}

// Authenticate returns the user when password matches. An unknown username
// and a wrong password both yield common.ErrInvalidCredentials after one
// bcrypt comparison each.
func (s *CredentialStore) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	u, err := s.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.hasher.CompareDummy(password)
			return nil, common.ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.hasher.Compare(u.PasswordHash, password) {
		return nil, common.ErrInvalidCredentials
	}
	return u, nil
}
