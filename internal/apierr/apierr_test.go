package apierr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeNetwork(t *testing.T) {
	cause := fmt.Errorf("dial tcp: connection refused")
	err := Normalize(0, nil, cause)

	assert.Equal(t, KindNetwork, err.Kind)
	assert.True(t, errors.Is(err, cause), "network errors should unwrap to the transport failure")
	assert.Contains(t, err.Message, "Unable to connect")
}

func TestNormalizeServer(t *testing.T) {
	err := Normalize(500, []byte(`{"message":"stack trace with secrets"}`), nil)

	assert.Equal(t, KindServer, err.Kind)
	// Raw server text is suppressed for 5xx.
	assert.NotContains(t, err.Message, "secrets")

	err = Normalize(503, nil, nil)
	assert.Equal(t, KindServer, err.Kind)
}

func TestNormalizeValidation(t *testing.T) {
	body := []byte(`{"status":"error","errors":{"email":["Email already taken"]}}`)
	err := Normalize(422, body, nil)

	require.Equal(t, KindValidation, err.Kind)
	assert.Equal(t, "Email already taken", err.Message)
	assert.Equal(t, "Email already taken", err.Field("email"))
}

func TestNormalizeValidationMultiField(t *testing.T) {
	body := []byte(`{"errors":{"name":["Name is required"],"email":["Email is invalid","Email is taken"]}}`)
	err := Normalize(422, body, nil)

	require.Equal(t, KindValidation, err.Kind)
	// Keys are walked in sorted order, so "email" wins over "name".
	assert.Equal(t, "Email is invalid", err.Message)
	// The full map stays available for per-field display.
	assert.Equal(t, []string{"Name is required"}, err.Fields["name"])
	assert.Len(t, err.Fields["email"], 2)
}

func TestNormalizeValidationScalarValues(t *testing.T) {
	// The field map may carry a bare string instead of a list per field.
	body := []byte(`{"status":"error","errors":{"email":"Email already taken"}}`)
	err := Normalize(422, body, nil)

	require.Equal(t, KindValidation, err.Kind)
	assert.Equal(t, "Email already taken", err.Message)
	assert.Equal(t, "Email already taken", err.Field("email"))

	// Mixed shapes in one response decode field by field.
	body = []byte(`{"errors":{"email":"Email is invalid","name":["Name is required"]}}`)
	err = Normalize(422, body, nil)

	require.Equal(t, KindValidation, err.Kind)
	assert.Equal(t, "Email is invalid", err.Message)
	assert.Equal(t, []string{"Name is required"}, err.Fields["name"])
}

func TestNormalizeValidationEmptyBody(t *testing.T) {
	err := Normalize(422, []byte(`{}`), nil)

	assert.Equal(t, KindValidation, err.Kind)
	assert.NotEmpty(t, err.Message)
}

func TestNormalizeClient(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{
			name:    "message from server",
			status:  403,
			body:    `{"status":"error","message":"You are not allowed to do that"}`,
			wantMsg: "You are not allowed to do that",
		},
		{
			name:    "no message falls back",
			status:  404,
			body:    `{}`,
			wantMsg: "An error occurred. Please try again.",
		},
		{
			name:    "malformed body falls back",
			status:  400,
			body:    `<html>bad gateway page</html>`,
			wantMsg: "An error occurred. Please try again.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Normalize(tt.status, []byte(tt.body), nil)
			assert.Equal(t, KindClient, err.Kind)
			assert.Equal(t, tt.wantMsg, err.Message)
		})
	}
}

func TestKindOf(t *testing.T) {
	err := Client("nope")
	wrapped := fmt.Errorf("users list: %w", err)

	kind, ok := KindOf(wrapped)
	require.True(t, ok)
	assert.Equal(t, KindClient, kind)

	assert.True(t, IsKind(wrapped, KindClient))
	assert.False(t, IsKind(wrapped, KindServer))

	_, ok = KindOf(fmt.Errorf("plain"))
	assert.False(t, ok)
}

func TestValidationField(t *testing.T) {
	err := ValidationField("email", "Please enter a valid email address")

	assert.Equal(t, KindValidation, err.Kind)
	assert.Equal(t, "Please enter a valid email address", err.Field("email"))
	assert.Empty(t, err.Field("name"))
}
