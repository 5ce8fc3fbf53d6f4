package profile

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/userdeck/userdeck/internal/account"
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

func newEditor(t *testing.T, handler http.Handler) *Editor {
	t.Helper()
	server := newTestServer(t, handler)
	store := session.NewMemoryStore()
	require.NoError(t, store.Set("tok", session.RoleUser))
	return NewEditor(api.New(server.URL, 5*time.Second, store, nil), nil)
}

const profileBody = `{
	"status": "success",
	"data": {
		"account": {"id": 3, "email": "ann@example.com", "display_name": "Ann Example"},
		"date_of_birth": "1990-06-15",
		"phone": "555-0100"
	}
}`

func TestOpenSeedsDraft(t *testing.T) {
	editor := newEditor(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, api.PathProfile, r.URL.Path)
		w.Write([]byte(profileBody))
	}))

	draft, err := editor.Open(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ann@example.com", draft.Email)
	assert.Equal(t, "Ann Example", draft.DisplayName)
	assert.Equal(t, "1990-06-15", draft.BirthDate)
	assert.True(t, editor.Saved())
}

func TestSaveSuccess(t *testing.T) {
	var putBody account.Draft
	editor := newEditor(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			w.Write([]byte(profileBody))
			return
		}
		require.Equal(t, http.MethodPut, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&putBody))
		w.Write([]byte(`{"status":"success","message":"Profile updated"}`))
	}))

	draft, err := editor.Open(context.Background())
	require.NoError(t, err)

	draft.DisplayName = "Ann B. Example"
	require.NoError(t, editor.Save(context.Background(), draft))

	assert.Equal(t, "Ann B. Example", putBody.DisplayName)
	assert.True(t, editor.Saved())

	current, ok := editor.Current()
	require.True(t, ok)
	assert.Equal(t, "Ann B. Example", current.Account.DisplayName)
}

func TestSaveFutureBirthDateNeverHitsNetwork(t *testing.T) {
	var puts atomic.Int32
	editor := newEditor(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPut {
			puts.Add(1)
		}
		w.Write([]byte(profileBody))
	}))

	future := time.Now().AddDate(0, 0, 2).Format("2006-01-02")
	err := editor.Save(context.Background(), account.Draft{
		DisplayName: "Ann",
		Email:       "ann@example.com",
		BirthDate:   future,
	})

	require.Error(t, err)
	apiErr := err.(*apierr.Error)
	assert.Equal(t, apierr.KindValidation, apiErr.Kind)
	assert.NotEmpty(t, apiErr.Field("date_of_birth"))
	assert.Zero(t, puts.Load())
}

func TestSaveServerRejection(t *testing.T) {
	editor := newEditor(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			w.Write([]byte(profileBody))
			return
		}
		w.WriteHeader(http.StatusUnprocessableEntity)
		fmt.Fprint(w, `{"status":"error","errors":{"email":["Email already taken"]}}`)
	}))

	draft, err := editor.Open(context.Background())
	require.NoError(t, err)

	draft.Email = "taken@example.com"
	err = editor.Save(context.Background(), draft)

	require.Error(t, err)
	assert.Equal(t, "Email already taken", err.(*apierr.Error).Message)
	assert.False(t, editor.Saved())

	// The confirmed state still shows the pre-edit email.
	current, _ := editor.Current()
	assert.Equal(t, "ann@example.com", current.Account.Email)
}
