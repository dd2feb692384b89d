package httpapi

import (
	"net"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/gophauth/internal/common"
)

const (
	msgHeaderRequired = "Authorization header is required"
	msgBearerMissing  = "Bearer token is missing"
)

// bearerToken extracts the token from "Authorization: Bearer <token>".
// present reports whether the header was sent at all; a present header with
// no usable token yields ("", true).
func bearerToken(r *http.Request) (token string, present bool) {
	header := strings.TrimSpace(r.Header.Get(common.AuthorizationHeaderName))
	if header == "" {
		return "", false
	}

	scheme, rest, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, common.BearerScheme) {
		return "", true
	}
	return strings.TrimSpace(rest), true
}

// originAddress is the client's best-effort network identity: the first
// X-Forwarded-For hop when present, else the host part of RemoteAddr.
func originAddress(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if first = strings.TrimSpace(first); first != "" {
			return first
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
