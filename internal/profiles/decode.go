package profiles

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// MaxBodyBytes caps every JSON request body.
const MaxBodyBytes = 1 << 20

// DecodeJSON reads a single JSON value from the request body into dst.
// Malformed bodies are reported as a ValidationError on field "body".
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)

	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		var typeErr *json.UnmarshalTypeError
		var maxErr *http.MaxBytesError
		switch {
		case errors.As(err, &typeErr):
			field := typeErr.Field
			if field == "" {
				field = "body"
			}
			return invalid(field, "has the wrong type")
		case errors.As(err, &maxErr):
			return invalid("body", "must not exceed %d bytes", maxErr.Limit)
		case errors.Is(err, io.EOF):
			return invalid("body", "must not be empty")
		default:
			return invalid("body", "is not valid JSON")
		}
	}
	if dec.More() {
		return invalid("body", "must contain a single JSON object")
	}
	return nil
}

// DecodeProfile decodes, normalizes and validates a profile body.
func DecodeProfile(w http.ResponseWriter, r *http.Request) (Profile, error) {
	var p Profile
	if err := DecodeJSON(w, r, &p); err != nil {
		return Profile{}, err
	}
	p = p.Normalize()
	if err := p.Validate(); err != nil {
		return Profile{}, fmt.Errorf("validate profile: %w", err)
	}
	return p, nil
}
