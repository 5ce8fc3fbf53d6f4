package account

import (
	"regexp"
	"strings"
	"time"

	"github.com/userdeck/userdeck/internal/apierr"
)

// emailPattern accepts local@domain.tld where the domain has at least one
// dot and every label is at least one character.
var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s.]+(\.[^@\s.]+)+$`)

const birthDateLayout = "2006-01-02"

// ValidEmail reports whether s is a syntactically plausible address. This is
// a submission gate, not a deliverability check; the server has the last
// word.
func ValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// ValidateDraft checks a draft before any network call and returns a
// validation-kind error keyed to the first offending field, or nil. The
// returned error has the same shape as a server-side 422, so callers render
// both identically.
func ValidateDraft(d Draft) error {
	if strings.TrimSpace(d.DisplayName) == "" {
		return apierr.ValidationField("display_name", "Display name is required")
	}
	if !ValidEmail(d.Email) {
		return apierr.ValidationField("email", "Please enter a valid email address")
	}
	if d.BirthDate != "" {
		if err := validateBirthDate(d.BirthDate, time.Now()); err != nil {
			return err
		}
	}
	return nil
}

// validateBirthDate rejects unparseable dates and dates after today.
// Comparison is at day granularity in the caller's local clock.
func validateBirthDate(value string, now time.Time) error {
	birth, err := time.ParseInLocation(birthDateLayout, value, now.Location())
	if err != nil {
		return apierr.ValidationField("date_of_birth", "Birth date must use YYYY-MM-DD")
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if birth.After(today) {
		return apierr.ValidationField("date_of_birth", "Birth date cannot be in the future")
	}
	return nil
}
