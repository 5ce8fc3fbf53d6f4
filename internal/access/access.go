// Package access gates screen transitions on the current session. It mirrors
// the server's authorization for UX only; the server remains the authority.
package access

import (
	"github.com/userdeck/userdeck/internal/session"
)

// Requirement is what a screen declares about who may open it.
type Requirement int

const (
	// RequireNone allows everyone, anonymous included.
	RequireNone Requirement = iota
	// RequireAuthenticated allows any logged-in user.
	RequireAuthenticated
	// RequireAdmin allows only logged-in users with the admin role.
	RequireAdmin
)

// Screen identifies a redirect target.
type Screen string

const (
	// ScreenLogin is where anonymous users are sent.
	ScreenLogin Screen = "login"
	// ScreenDashboard is the default authenticated landing.
	ScreenDashboard Screen = "dashboard"
)

// Decision is the outcome of a gate check: either allow, or redirect to a
// named screen. Exactly one of the two holds.
type Decision struct {
	Allow      bool
	RedirectTo Screen
}

// Allow is the decision that lets the transition through.
var Allow = Decision{Allow: true}

// Redirect builds a redirecting decision.
func Redirect(target Screen) Decision {
	return Decision{RedirectTo: target}
}

// Decide is a pure function of the session and the screen's requirement.
// No I/O, no side effects; deterministic given the two inputs.
func Decide(sess session.Session, req Requirement) Decision {
	switch req {
	case RequireAuthenticated:
		if !sess.Authenticated() {
			return Redirect(ScreenLogin)
		}
	case RequireAdmin:
		if !sess.Authenticated() {
			return Redirect(ScreenLogin)
		}
		if sess.Role != session.RoleAdmin {
			return Redirect(ScreenDashboard)
		}
	}
	return Allow
}
