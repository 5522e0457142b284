package session

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims holds the subset of JWT claims the CLI displays in `session status`.
// The token is decoded WITHOUT signature verification: the client never
// trusts these values for access decisions, expiry is only ever discovered
// through a 401 from the server.
type Claims struct {
	Subject   string    // sub claim, the username
	ExpiresAt time.Time // exp claim, zero if absent
	IssuedAt  time.Time // iat claim, zero if absent
}

// DecodeClaims decodes the payload of a bearer token for display purposes.
// Returns an error if the token is not a parseable JWT.
func DecodeClaims(token string) (*Claims, error) {
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("failed to decode token: %w", err)
	}

	out := &Claims{}
	if sub, err := claims.GetSubject(); err == nil {
		out.Subject = sub
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		out.ExpiresAt = exp.Time
	}
	if iat, err := claims.GetIssuedAt(); err == nil && iat != nil {
		out.IssuedAt = iat.Time
	}
	return out, nil
}
