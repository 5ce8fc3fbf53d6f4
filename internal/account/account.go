// Package account holds the account types shared by the admin directory and
// the self-service profile editor, plus their client-side field validation.
package account

import (
	"time"
)

// Account is one row of the admin listing, as returned by the server. The
// server owns every derived field (display name included); the client never
// recomputes them.
type Account struct {
	ID          int       `json:"id"`
	Email       string    `json:"email"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	DisplayName string    `json:"display_name"`
	Role        string    `json:"role"`
	CreatedAt   time.Time `json:"created_at,omitempty"`
}

// Draft is the editable copy of an account's profile fields. It is created
// when an edit opens, merged only after a confirmed server response, and
// never partially persisted.
type Draft struct {
	FirstName   string `json:"first_name,omitempty"`
	LastName    string `json:"last_name,omitempty"`
	DisplayName string `json:"display_name,omitempty"`
	Email       string `json:"email,omitempty"`
	// BirthDate uses YYYY-MM-DD; empty means not supplied.
	BirthDate string `json:"date_of_birth,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Address   string `json:"address,omitempty"`
}

// DraftFrom seeds a draft with an account's current editable fields.
func DraftFrom(a Account) Draft {
	return Draft{
		FirstName:   a.FirstName,
		LastName:    a.LastName,
		DisplayName: a.DisplayName,
		Email:       a.Email,
	}
}
