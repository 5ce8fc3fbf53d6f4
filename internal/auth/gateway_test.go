package auth

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/userdeck/userdeck/internal/api"
	"github.com/userdeck/userdeck/internal/apierr"
	"github.com/userdeck/userdeck/internal/session"
)

func newTestServer(t *testing.T, handler http.Handler) *httptest.Server {
	t.Helper()

	listener, err := net.Listen("tcp4", "127.0.0.1:0")
	if err != nil {
		t.Skipf("unable to start test server: %v", err)
	}

	server := &httptest.Server{
		Listener: listener,
		Config:   &http.Server{Handler: handler},
	}
	server.Start()
	t.Cleanup(server.Close)
	return server
}

func newGateway(t *testing.T, handler http.Handler) (*Gateway, *session.MemoryStore) {
	t.Helper()
	server := newTestServer(t, handler)
	store := session.NewMemoryStore()
	client := api.New(server.URL, 5*time.Second, store, nil)
	return NewGateway(client, store, nil), store
}

const loginSuccessBody = `{
	"status": "success",
	"data": {
		"token": "tok-fresh",
		"account": {"id": 1, "email": "ann@example.com", "role": {"name": "admin"}}
	}
}`

func TestLoginSuccess(t *testing.T) {
	gw, store := newGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, api.PathLogin, r.URL.Path)
		// The login request itself must not carry a stale credential.
		assert.Empty(t, r.Header.Get("Authorization"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "ann@example.com", body["email"])

		w.Write([]byte(loginSuccessBody))
	}))

	result, err := gw.Login(context.Background(), "ann@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "tok-fresh", result.Token)
	assert.Equal(t, "admin", result.Account.Role.Name)

	assert.True(t, store.IsAuthenticated())
	assert.True(t, store.HasRole(session.RoleAdmin))
}

func TestLoginMissingRole(t *testing.T) {
	gw, store := newGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// HTTP success, but no usable session material.
		w.Write([]byte(`{"status":"success","data":{"token":"tok-x","account":{"id":1,"role":{}}}}`))
	}))

	_, err := gw.Login(context.Background(), "ann@example.com", "secret")
	require.Error(t, err)
	assert.True(t, apierr.IsKind(err, apierr.KindClient))
	assert.Equal(t, "Login failed", err.(*apierr.Error).Message)
	assert.False(t, store.IsAuthenticated(), "a failed login must leave the session unchanged")
}

func TestLoginMissingToken(t *testing.T) {
	gw, store := newGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"success","data":{"account":{"id":1,"role":{"name":"user"}}}}`))
	}))

	_, err := gw.Login(context.Background(), "ann@example.com", "secret")
	require.Error(t, err)
	assert.True(t, apierr.IsKind(err, apierr.KindClient))
	assert.False(t, store.IsAuthenticated())
}

func TestLoginBadCredentials(t *testing.T) {
	gw, store := newGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"status":"error","message":"Invalid credentials"}`))
	}))

	_, err := gw.Login(context.Background(), "ann@example.com", "wrong")
	require.Error(t, err)
	assert.True(t, apierr.IsKind(err, apierr.KindClient))
	assert.Equal(t, "Invalid credentials", err.(*apierr.Error).Message)
	assert.False(t, store.IsAuthenticated())
}

func TestRegisterDoesNotTouchSession(t *testing.T) {
	gw, store := newGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, api.PathRegister, r.URL.Path)
		w.Write([]byte(`{"status":"success","message":"Registered"}`))
	}))

	env, err := gw.Register(context.Background(), RegisterPayload{
		Email: "new@example.com", Password: "pw", PasswordConfirmation: "pw",
	})
	require.NoError(t, err)
	assert.True(t, env.OK())
	assert.False(t, store.IsAuthenticated(), "registration does not imply login")
}

func TestLogoutClearsEvenOnServerError(t *testing.T) {
	gw, store := newGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	require.NoError(t, store.Set("tok", session.RoleUser))

	require.NoError(t, gw.Logout(context.Background()))
	assert.False(t, store.IsAuthenticated())
	assert.Equal(t, session.Session{}, store.Get())
}

func TestLogoutClearsOnSuccess(t *testing.T) {
	var notified bool
	gw, store := newGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		notified = true
		require.Equal(t, api.PathLogout, r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		w.Write([]byte(`{"status":"success"}`))
	}))
	require.NoError(t, store.Set("tok", session.RoleUser))

	require.NoError(t, gw.Logout(context.Background()))
	assert.True(t, notified)
	assert.False(t, store.IsAuthenticated())
}

func TestRefreshReplacesTokenOnly(t *testing.T) {
	gw, store := newGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, api.PathRefresh, r.URL.Path)
		w.Write([]byte(`{"status":"success","data":{"token":"tok-new"}}`))
	}))
	require.NoError(t, store.Set("tok-old", session.RoleAdmin))

	require.NoError(t, gw.Refresh(context.Background()))
	got := store.Get()
	assert.Equal(t, "tok-new", got.Token)
	assert.Equal(t, session.RoleAdmin, got.Role, "refresh must not re-derive the role")
}

func TestRefreshFailureLeavesSession(t *testing.T) {
	gw, store := newGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"status":"error","message":"Token expired"}`))
	}))
	require.NoError(t, store.Set("tok-old", session.RoleUser))

	err := gw.Refresh(context.Background())
	require.Error(t, err)
	assert.True(t, apierr.IsKind(err, apierr.KindClient))
	assert.Equal(t, session.Session{Token: "tok-old", Role: session.RoleUser}, store.Get())
}

func TestRefreshWhenAnonymous(t *testing.T) {
	gw, _ := newGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("refresh must not hit the server without a session")
	}))

	err := gw.Refresh(context.Background())
	require.Error(t, err)
	assert.True(t, apierr.IsKind(err, apierr.KindClient))
}

func TestTokenExpiry(t *testing.T) {
	store := session.NewMemoryStore()
	gw := NewGateway(nil, store, nil)

	// No session, no expiry.
	_, ok := gw.TokenExpiry()
	assert.False(t, ok)

	// Opaque token: no readable expiry, still no error.
	require.NoError(t, store.Set("opaque-token", session.RoleUser))
	_, ok = gw.TokenExpiry()
	assert.False(t, ok)
	assert.False(t, gw.TokenExpiresWithin(time.Hour))

	// JWT with an exp claim half an hour out.
	exp := time.Now().Add(30 * time.Minute)
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "1",
		"exp": exp.Unix(),
	}).SignedString([]byte("server-side-secret"))
	require.NoError(t, err)
	require.NoError(t, store.Set(signed, session.RoleUser))

	got, ok := gw.TokenExpiry()
	require.True(t, ok)
	assert.WithinDuration(t, exp, got, time.Second)
	assert.True(t, gw.TokenExpiresWithin(time.Hour))
	assert.False(t, gw.TokenExpiresWithin(time.Minute))
}
