// Package session holds the bearer token for the current Mirador session.
// The store is the single source of truth for authenticated state: a present
// token means authenticated, an absent token means not. No expiry is checked
// locally; an expired token is discovered when the server answers 401.
package session

// Store is the interface the gateway client reads the bearer token from.
// It is injected at client construction so tests can substitute an
// in-memory implementation for the file-backed one.
type Store interface {
	// Token returns the current bearer token, or "" if none is set.
	Token() string

	// SetToken stores the token, overwriting any prior value. The token is
	// treated as opaque; no format validation is performed.
	SetToken(token string) error

	// Clear removes the stored token. Clearing an empty store is a no-op.
	Clear() error

	// IsAuthenticated reports whether a token is present.
	IsAuthenticated() bool
}
