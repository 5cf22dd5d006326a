package session

// TokenStore persists one client's token pair across restarts. The
// store never inspects token shape or expiry; the backend invalidates
// sessions by answering 401.
//
// Implementations live under storage/tokens. All operations must be
// idempotent: clearing an already-cleared store is a no-op.
type TokenStore interface {
	// AccessToken returns the persisted access token, or "" when absent.
	AccessToken() string
	// RefreshToken returns the persisted refresh token, or "" when absent.
	RefreshToken() string
	// SetTokens persists both values, overwriting any existing pair.
	SetTokens(access, refresh string) error
	// ClearTokens removes both values.
	ClearTokens() error
	// Authenticated reports whether an access token is present.
	Authenticated() bool
}
