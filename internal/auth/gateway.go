// Package auth performs login, registration, logout, and token refresh, and
// is the only component allowed to write session state.
package auth

import (
	"context"

	"github.com/userdeck/userdeck/internal/api"
	"github.com/userdeck/userdeck/internal/apierr"
	"github.com/userdeck/userdeck/internal/log"
	"github.com/userdeck/userdeck/internal/session"
)

// RoleRef is the role object nested in auth responses.
type RoleRef struct {
	Name string `json:"name"`
}

// Account is the caller's account as auth endpoints return it.
type Account struct {
	ID          int     `json:"id"`
	Email       string  `json:"email"`
	FirstName   string  `json:"first_name"`
	LastName    string  `json:"last_name"`
	DisplayName string  `json:"display_name"`
	Role        RoleRef `json:"role"`
}

// LoginResult is the decoded payload of a successful login.
type LoginResult struct {
	Token   string  `json:"token"`
	Account Account `json:"account"`
}

// RegisterPayload is the body of a registration request.
type RegisterPayload struct {
	FirstName            string `json:"first_name"`
	LastName             string `json:"last_name"`
	Email                string `json:"email"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
}

// Gateway drives the authentication endpoints and mirrors their outcomes
// into the session store.
type Gateway struct {
	api   *api.Client
	store session.Store
	log   *log.Logger
}

// NewGateway creates a gateway over the given client and store.
func NewGateway(client *api.Client, store session.Store, logger *log.Logger) *Gateway {
	if logger == nil {
		logger = log.L()
	}
	return &Gateway{api: client, store: store, log: logger}
}

// Login authenticates with email and password. A transport-level success is
// not enough: the response must carry both a token and a role, otherwise
// the login fails with a client-kind error and the store is left untouched.
// On success the session store is updated and the payload returned so the
// caller can pick a landing screen by role.
func (g *Gateway) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	env, err := g.api.Post(ctx, api.PathLogin, map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return nil, err
	}

	var result LoginResult
	if !env.OK() || env.Decode(&result) != nil {
		return nil, apierr.Client("Login failed")
	}
	if result.Token == "" || result.Account.Role.Name == "" {
		return nil, apierr.Client("Login failed")
	}

	if err := g.store.Set(result.Token, session.Role(result.Account.Role.Name)); err != nil {
		return nil, err
	}

	g.log.Debug("logged in", "email", email, "role", result.Account.Role.Name)
	return &result, nil
}

// Register creates an account. It never touches the session store;
// registration does not imply login.
func (g *Gateway) Register(ctx context.Context, payload RegisterPayload) (*api.Envelope, error) {
	return g.api.Post(ctx, api.PathRegister, payload)
}

// Logout notifies the server on a best-effort basis, then unconditionally
// clears the session. Teardown happens even when the server call fails:
// the local session must never outlive the user's intent to leave.
func (g *Gateway) Logout(ctx context.Context) error {
	if _, err := g.api.Post(ctx, api.PathLogout, nil); err != nil {
		g.log.Debug("logout notification failed", "error", err)
	}
	return g.store.Clear()
}

// Refresh exchanges the current credential for a new one. On success only
// the token changes; the role is not re-derived. On failure the existing
// session is left untouched and the error surfaced so the caller can decide
// whether to force a logout.
func (g *Gateway) Refresh(ctx context.Context) error {
	current := g.store.Get()
	if !current.Authenticated() {
		return apierr.Client("Not logged in")
	}

	env, err := g.api.Post(ctx, api.PathRefresh, nil)
	if err != nil {
		return err
	}

	var result struct {
		Token string `json:"token"`
	}
	if !env.OK() || env.Decode(&result) != nil || result.Token == "" {
		return apierr.Client("Failed to refresh token")
	}

	return g.store.Set(result.Token, current.Role)
}

// Me fetches the account behind the current credential.
func (g *Gateway) Me(ctx context.Context) (*Account, error) {
	env, err := g.api.Get(ctx, api.PathMe)
	if err != nil {
		return nil, err
	}

	var result struct {
		Account Account `json:"account"`
	}
	if err := env.Decode(&result); err != nil {
		apiErr := apierr.Client("Unexpected response from server.")
		apiErr.Cause = err
		return nil, apiErr
	}
	return &result.Account, nil
}

// ChangePassword rotates the caller's password.
func (g *Gateway) ChangePassword(ctx context.Context, current, next string) error {
	_, err := g.api.Post(ctx, api.PathChangePassword, map[string]string{
		"current_password":      current,
		"password":              next,
		"password_confirmation": next,
	})
	return err
}

// ForgotPassword requests a reset email. Public endpoint.
func (g *Gateway) ForgotPassword(ctx context.Context, email string) error {
	_, err := g.api.Post(ctx, api.PathForgotPassword, map[string]string{"email": email})
	return err
}

// ResetPassword redeems a reset token. Public endpoint.
func (g *Gateway) ResetPassword(ctx context.Context, token, password string) error {
	_, err := g.api.Post(ctx, api.PathResetPassword, map[string]string{
		"token":                 token,
		"password":              password,
		"password_confirmation": password,
	})
	return err
}
