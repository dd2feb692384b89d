// Package services contains the server-side business logic: the credential
// store, the session registry and the AuthService facade that the transport
// layer calls.
package services

import (
	"context"
	"time"
)

// DefaultStoreTimeout bounds a single repository call when none is configured.
const DefaultStoreTimeout = 5 * time.Second

// storeContext derives the context for one repository call. A non-positive
// timeout only inherits the parent's deadline.
func storeContext(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}
