package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenExpiry inspects the stored credential's exp claim without verifying
// the signature. The server remains the authority on validity; this only
// lets commands suggest a refresh before a request is bound to fail. A
// missing or unparseable token yields ok=false, never an error.
func (g *Gateway) TokenExpiry() (expiry time.Time, ok bool) {
	sess := g.store.Get()
	if !sess.Authenticated() {
		return time.Time{}, false
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(sess.Token, claims); err != nil {
		return time.Time{}, false
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

// TokenExpiresWithin reports whether the credential expires inside d.
// Opaque (non-JWT) tokens report false; they carry no readable expiry.
func (g *Gateway) TokenExpiresWithin(d time.Duration) bool {
	expiry, ok := g.TokenExpiry()
	return ok && time.Until(expiry) < d
}
