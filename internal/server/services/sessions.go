package services

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/dmitrijs2005/gophauth/internal/logging"
	"github.com/dmitrijs2005/gophauth/internal/server/models"
	"github.com/dmitrijs2005/gophauth/internal/server/repositories/sessions"
)

// SessionRegistry is the persisted set of issued, unrevoked tokens.
type SessionRegistry struct {
	repo    sessions.Repository
	timeout time.Duration
	logger  logging.Logger
}

func NewSessionRegistry(repo sessions.Repository, timeout time.Duration, logger logging.Logger) *SessionRegistry {
	return &SessionRegistry{
		repo:    repo,
		timeout: timeout,
		logger:  logger.With("module", "sessions"),
	}
}

// Record persists a session. Tokens are unique by construction and the user
// was just authenticated, so every failure here is common.ErrorInternal.
func (r *SessionRegistry) Record(ctx context.Context, token, userID string, issuedAt time.Time, originAddress string) error {
	sctx, cancel := storeContext(ctx, r.timeout)
	defer cancel()

	s := &models.Session{
		Token:        token,
		UserID:       userID,
		LoginTime:    issuedAt,
		LoginAddress: originAddress,
	}
	if err := r.repo.Create(sctx, s); err != nil {
		r.logger.Error(ctx, "session insert failed", "user_id", userID, "error", err)
		return common.ErrorInternal
	}
	return nil
}

// Revoke deletes the session for token and returns how many rows went away.
func (r *SessionRegistry) Revoke(ctx context.Context, token string) (int64, error) {
	sctx, cancel := storeContext(ctx, r.timeout)
	defer cancel()

	n, err := r.repo.Delete(sctx, token)
	if err != nil {
		r.logger.Error(ctx, "session delete failed", "error", err)
		return 0, common.ErrorInternal
	}
	return n, nil
}

// IsActive reports whether token has a session record.
func (r *SessionRegistry) IsActive(ctx context.Context, token string) (bool, error) {
	sctx, cancel := storeContext(ctx, r.timeout)
	defer cancel()

	_, err := r.repo.Find(sctx, token)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, common.ErrorNotFound):
		return false, nil
	default:
		r.logger.Error(ctx, "session lookup failed", "error", err)
		return false, common.ErrorInternal
	}
}
