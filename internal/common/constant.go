package common

// AuthorizationHeaderName is the HTTP header carrying the bearer token.
const AuthorizationHeaderName = "Authorization"

// BearerScheme is the authorization scheme expected in AuthorizationHeaderName.
const BearerScheme = "Bearer"

// Roles known to the service. Any non-empty role may be registered; only
// RoleAdmin grants access to the admin area.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)
