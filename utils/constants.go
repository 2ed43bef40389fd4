package utils

import "time"

// ContextKey is the type for request-scoped values carried on a context.
type ContextKey string

const (
	RequestIDKey  ContextKey = "request_id"
	UserAgentKey  ContextKey = "user_agent"
	IPAddressKey  ContextKey = "ip_address"
	ReferrerKey   ContextKey = "referrer"
	EndpointKey   ContextKey = "endpoint"
	CancelFuncKey ContextKey = "cancel_func"
)

// Token time constants
const (
	// AccessTokenTTL is the default time-to-live for access tokens (24 hours)
	AccessTokenTTL = 24 * time.Hour

	// RefreshTokenTTL is the default time-to-live for refresh tokens (7 days)
	RefreshTokenTTL = 7 * 24 * time.Hour
)

// Resolution constants
const (
	// StoreCallTimeout bounds each individual lookup a resolution performs.
	// Expiry is treated the same as a store error.
	StoreCallTimeout = 5 * time.Second

	// UsernameCacheTTL is how long a username to user id mapping may be served
	// from cache during resolution.
	UsernameCacheTTL = 30 * time.Second
)
