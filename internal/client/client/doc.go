// Package client talks to a gophauth server: the JSON HTTP API for the
// credential and session operations, and the gRPC health service.
//
// # Error Handling
//
// Non-2xx answers come back as *APIError, which carries the server's message
// and unwraps to one of the sentinels below so callers can use errors.Is:
// ErrBadRequest, ErrUnauthorized, ErrForbidden, ErrNotFound, ErrConflict,
// ErrUnavailable. Transport failures also unwrap to ErrUnavailable.
package client
