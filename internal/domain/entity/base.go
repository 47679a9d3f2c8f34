// Package entity holds the four aggregate types of the marketplace and
// their field-validation rules. Construction and partial update funnel
// through the same Apply path, so an instance that exists is valid.
package entity

import (
	"time"

	"github.com/google/uuid"

	"github.com/homecove/homecove/pkg/apperr"
)

// Model is the contract every entity satisfies towards the storage
// layer.
type Model interface {
	EntityID() string
	Apply(fields map[string]any) error
	Touch()
}

// Base carries the server-assigned identity and timestamps.
type Base struct {
	ID        string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func newBase() Base {
	now := time.Now().UTC()
	return Base{ID: uuid.NewString(), CreatedAt: now, UpdatedAt: now}
}

func (b *Base) EntityID() string { return b.ID }

// Touch bumps the modification timestamp.
func (b *Base) Touch() { b.UpdatedAt = time.Now().UTC() }

// JSON decoding hands us map[string]any payloads, so numbers arrive as
// float64 and every assignment must re-establish its type first.

func asString(field string, v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", apperr.Malformed(field, "type", field+" must be a string")
	}
	return s, nil
}

func asFloat(field string, v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	}
	return 0, apperr.Malformed(field, "type", field+" must be a number")
}

func asInt(field string, v any) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		if n != float64(int(n)) {
			return 0, apperr.Malformed(field, "type", field+" must be an integer")
		}
		return int(n), nil
	}
	return 0, apperr.Malformed(field, "type", field+" must be an integer")
}

func asBool(field string, v any) (bool, error) {
	b, ok := v.(bool)
	if !ok {
		return false, apperr.Malformed(field, "type", field+" must be a boolean")
	}
	return b, nil
}

func asStringSlice(field string, v any) ([]string, error) {
	switch s := v.(type) {
	case []string:
		return s, nil
	case []any:
		out := make([]string, 0, len(s))
		for _, e := range s {
			str, ok := e.(string)
			if !ok {
				return nil, apperr.Malformed(field, "type", field+" must be a list of strings")
			}
			out = append(out, str)
		}
		return out, nil
	}
	return nil, apperr.Malformed(field, "type", field+" must be a list of strings")
}

func unknownField(field string) error {
	return apperr.Malformed(field, "unknown_field", "unexpected field: "+field)
}
