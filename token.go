package authkit

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrTokenMalformed is returned by [Session.Claims] when the access token
// does not parse as a JWT.
var ErrTokenMalformed = errors.New("malformed access token")

// TokenClaims are the display-relevant claims of the backend-issued access
// token. They are decoded without signature verification: the client holds
// no verification key and the backend is the sole authority on token
// validity. Claims inform display only — the session gate never consults
// them.
type TokenClaims struct {
	UserID    int64
	TokenType string
	TokenID   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Expired reports whether the token's exp claim lies at or before now. A
// token without an exp claim never reports expired.
func (c TokenClaims) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && !c.ExpiresAt.After(now)
}

// Claims decodes the access token's payload.
func (s *Session) Claims() (TokenClaims, error) {
	var out TokenClaims
	if s == nil || s.AccessToken == "" {
		return out, ErrTokenMalformed
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(s.AccessToken, claims); err != nil {
		return out, fmt.Errorf("%w: %v", ErrTokenMalformed, err)
	}

	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		out.ExpiresAt = exp.Time
	}
	if iat, err := claims.GetIssuedAt(); err == nil && iat != nil {
		out.IssuedAt = iat.Time
	}
	if v, ok := claims["user_id"].(float64); ok {
		out.UserID = int64(v)
	}
	if v, ok := claims["token_type"].(string); ok {
		out.TokenType = v
	}
	if v, ok := claims["jti"].(string); ok {
		out.TokenID = v
	}
	return out, nil
}
