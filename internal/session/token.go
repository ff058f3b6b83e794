package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenExpiry decodes the stored access token without verifying the
// signature (the client has no key material) and reports its exp claim.
// Returns false when no token is stored or it carries no expiry. There is
// no refresh path: an expired token simply means the session is over.
func (s *Session) TokenExpiry() (time.Time, bool) {
	token := s.store.AccessToken()
	if token == "" {
		return time.Time{}, false
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
