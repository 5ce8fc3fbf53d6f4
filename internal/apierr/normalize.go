package apierr

import (
	"encoding/json"
	"sort"
)

// envelope is the server's standard error body. Only the pieces the
// normalizer reads are decoded here.
type envelope struct {
	Message string      `json:"message"`
	Errors  fieldErrors `json:"errors"`
}

// fieldErrors decodes a field-error map whose values may be either a list
// of messages or a single message string; the API emits both shapes.
// Scalar values are lifted into one-element lists.
type fieldErrors map[string][]string

func (f *fieldErrors) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	out := make(map[string][]string, len(raw))
	for field, value := range raw {
		var list []string
		if err := json.Unmarshal(value, &list); err == nil {
			out[field] = list
			continue
		}
		var single string
		if err := json.Unmarshal(value, &single); err == nil {
			out[field] = []string{single}
		}
	}
	*f = out
	return nil
}

// Normalize maps a completed HTTP attempt onto the error taxonomy. Rules are
// checked in order, first match wins:
//
//  1. transportErr != nil (no response) -> network
//  2. status >= 500                     -> server
//  3. status == 422                     -> validation
//  4. any other status                  -> client
//
// Normalize performs no retries; it is a pure mapping.
func Normalize(status int, body []byte, transportErr error) *Error {
	if transportErr != nil {
		return Network(transportErr)
	}

	if status >= 500 {
		return Server()
	}

	var env envelope
	// A malformed body degrades to the generic fallback rather than failing.
	_ = json.Unmarshal(body, &env)

	if status == 422 {
		return Validation(map[string][]string(env.Errors))
	}

	return Client(env.Message)
}

// firstField picks the display message for a field-error map: the first
// value of the first key, keys walked in sorted order for determinism.
func firstField(fields map[string][]string) string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if len(fields[k]) > 0 {
			return fields[k][0]
		}
	}
	return clientFallback
}
