package api

// API endpoint paths. Kept in one place so the public allow-list below and
// the callers stay in agreement.
const (
	PathHealthCheck    = "/api/health-check"
	PathLogin          = "/api/auth/login"
	PathRegister       = "/api/auth/register"
	PathForgotPassword = "/api/auth/forgot-password"
	PathResetPassword  = "/api/auth/reset-password"
	PathLogout         = "/api/auth/logout"
	PathRefresh        = "/api/auth/refresh"
	PathMe             = "/api/auth/me"
	PathChangePassword = "/api/auth/change-password"
	PathProfile        = "/api/users/profile"
	PathAdminUsers     = "/api/admin/users"
)

// publicPaths are reachable without a credential; the bearer header is never
// attached to them, even when a session exists.
var publicPaths = map[string]struct{}{
	PathHealthCheck:    {},
	PathLogin:          {},
	PathRegister:       {},
	PathForgotPassword: {},
	PathResetPassword:  {},
}

// IsPublic reports whether a path is on the unauthenticated allow-list.
func IsPublic(path string) bool {
	_, ok := publicPaths[path]
	return ok
}
