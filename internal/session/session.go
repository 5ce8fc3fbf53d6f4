package session

// Role is the coarse authorization tag attached to a session. It controls
// which screens and endpoints the client will even attempt.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Session is the credential/role pair for the current user. Role is present
// iff Token is present; an empty token means anonymous.
type Session struct {
	Token string `json:"token"`
	Role  Role   `json:"role"`
}

// Authenticated reports whether the session holds a credential.
func (s Session) Authenticated() bool {
	return s.Token != ""
}

// Store holds the current session. It is the single source of truth for
// "is a user logged in" and is written only by the auth gateway; everything
// else just reads it.
type Store interface {
	// Set replaces the session with the given credential and role.
	Set(token string, role Role) error

	// Clear destroys the session.
	Clear() error

	// Get returns the current session (zero value when anonymous).
	Get() Session

	// IsAuthenticated reports whether a credential is present.
	IsAuthenticated() bool

	// HasRole reports whether the session is authenticated with the role.
	HasRole(role Role) bool
}
