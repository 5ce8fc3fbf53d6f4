// Package directory owns the admin-side account collection: loading it,
// mutating it against the server, and keeping the local copy consistent
// with what the server confirmed.
package directory

import (
	"context"
	"fmt"

	"github.com/userdeck/userdeck/internal/account"
	"github.com/userdeck/userdeck/internal/api"
	"github.com/userdeck/userdeck/internal/apierr"
	"github.com/userdeck/userdeck/internal/log"
)

// Directory holds the account collection fetched from the admin listing.
// It is the sole owner of the slice; callers only ever see copies.
type Directory struct {
	api *api.Client
	log *log.Logger

	guard
	state collectionState
}

// NewDirectory creates an empty directory over the given client.
func NewDirectory(client *api.Client, logger *log.Logger) *Directory {
	if logger == nil {
		logger = log.L()
	}
	return &Directory{
		api:   client,
		log:   logger,
		guard: newGuard(),
	}
}

// Load fetches the full collection and replaces the local one wholesale.
// On failure the existing (possibly stale) collection is kept, so a failed
// background refresh never blanks the screen.
func (d *Directory) Load(ctx context.Context) error {
	env, err := d.api.Get(ctx, api.PathAdminUsers)
	if err != nil {
		return err
	}

	var accounts []account.Account
	if !env.OK() || env.Decode(&accounts) != nil {
		return apierr.Client("Failed to load users")
	}

	d.state.replace(accounts)
	d.log.Debug("directory loaded", "count", len(accounts))
	return nil
}

// Accounts returns a copy of the collection in server response order.
func (d *Directory) Accounts() []account.Account {
	return d.state.snapshot()
}

// Find returns the account with the given id from the local collection.
func (d *Directory) Find(id int) (account.Account, bool) {
	return d.state.find(id)
}

// Remove deletes an account. The server call happens first; the row leaves
// the local collection only after the server confirms, so a failed delete
// never shows a phantom-removed row. Caller confirmation is a UI concern
// and is not enforced here.
func (d *Directory) Remove(ctx context.Context, id int) error {
	release, err := d.acquire(id)
	if err != nil {
		return err
	}
	defer release()

	env, err := d.api.Delete(ctx, userPath(id))
	if err != nil {
		return err
	}
	if !env.OK() {
		return apierr.Client(env.Message)
	}

	d.state.remove(id)
	d.log.Debug("account removed", "id", id)
	return nil
}

// Update edits an account. The draft is validated locally first; a local
// rejection returns a validation error keyed to the field without any
// network call. On server confirmation the whole collection is reloaded so
// server-derived fields stay authoritative rather than patching one row.
func (d *Directory) Update(ctx context.Context, id int, draft account.Draft) error {
	if err := account.ValidateDraft(draft); err != nil {
		return err
	}

	release, err := d.acquire(id)
	if err != nil {
		return err
	}
	defer release()

	env, err := d.api.Put(ctx, userPath(id), draft)
	if err != nil {
		return err
	}
	if !env.OK() {
		return apierr.Client(env.Message)
	}

	d.log.Debug("account updated", "id", id)
	return d.Load(ctx)
}

func userPath(id int) string {
	return fmt.Sprintf("/api/users/%d", id)
}
