// Package profile is the self-service analogue of the admin directory,
// scoped to the caller's own record.
package profile

import (
	"context"

	"github.com/userdeck/userdeck/internal/account"
	"github.com/userdeck/userdeck/internal/api"
	"github.com/userdeck/userdeck/internal/apierr"
	"github.com/userdeck/userdeck/internal/log"
)

// Profile is the caller's own record as the profile endpoint returns it.
type Profile struct {
	Account account.Account `json:"account"`
	// Extra profile fields live alongside the account.
	BirthDate string `json:"date_of_birth,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Address   string `json:"address,omitempty"`
}

// Editor edits the caller's own profile. There is no collection behind it;
// a confirmed save simply makes the draft the saved state.
type Editor struct {
	api *api.Client
	log *log.Logger

	current Profile
	loaded  bool
	saved   bool
}

// NewEditor creates an editor over the given client.
func NewEditor(client *api.Client, logger *log.Logger) *Editor {
	if logger == nil {
		logger = log.L()
	}
	return &Editor{api: client, log: logger}
}

// Open fetches the profile and returns a draft seeded with its current
// editable fields. The draft is the caller's to mutate; it touches nothing
// until Save confirms it against the server.
func (e *Editor) Open(ctx context.Context) (account.Draft, error) {
	env, err := e.api.Get(ctx, api.PathProfile)
	if err != nil {
		return account.Draft{}, err
	}

	var p Profile
	if !env.OK() || env.Decode(&p) != nil {
		return account.Draft{}, apierr.Client("Failed to load profile")
	}

	e.current = p
	e.loaded = true
	e.saved = true

	draft := account.DraftFrom(p.Account)
	draft.BirthDate = p.BirthDate
	draft.Phone = p.Phone
	draft.Address = p.Address
	return draft, nil
}

// Current returns the last profile confirmed by the server.
func (e *Editor) Current() (Profile, bool) {
	return e.current, e.loaded
}

// Saved reports whether the last opened draft matches saved state.
func (e *Editor) Saved() bool {
	return e.saved
}

// Save validates the draft and submits it. Validation adds the birth-date
// rule on top of the shared draft checks; a local rejection issues no
// network call. On success the draft becomes the saved state; nothing is
// reloaded because there is no collection to reconcile.
func (e *Editor) Save(ctx context.Context, draft account.Draft) error {
	if err := account.ValidateDraft(draft); err != nil {
		return err
	}

	env, err := e.api.Put(ctx, api.PathProfile, draft)
	if err != nil {
		e.saved = false
		return err
	}
	if !env.OK() {
		e.saved = false
		return apierr.Client(env.Message)
	}

	e.current.Account.FirstName = draft.FirstName
	e.current.Account.LastName = draft.LastName
	e.current.Account.DisplayName = draft.DisplayName
	e.current.Account.Email = draft.Email
	e.current.BirthDate = draft.BirthDate
	e.current.Phone = draft.Phone
	e.current.Address = draft.Address
	e.saved = true

	e.log.Debug("profile saved")
	return nil
}
